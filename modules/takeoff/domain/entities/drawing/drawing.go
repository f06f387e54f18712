package drawing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Drawing is the container every imported component attaches to. The number
// is stored normalized; sheet suffixes make otherwise-identical numbers
// distinct drawings.
type Drawing struct {
	id        uuid.UUID
	projectID uuid.UUID
	number    string
	created   bool
	createdAt time.Time
	updatedAt time.Time
}

type Option func(*Drawing)

func WithID(id uuid.UUID) Option {
	return func(d *Drawing) {
		d.id = id
	}
}

func WithCreated(created bool) Option {
	return func(d *Drawing) {
		d.created = created
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(d *Drawing) {
		d.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(d *Drawing) {
		d.updatedAt = updatedAt
	}
}

func New(projectID uuid.UUID, number string, opts ...Option) *Drawing {
	d := &Drawing{
		id:        uuid.New(),
		projectID: projectID,
		number:    number,
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Drawing) ID() uuid.UUID {
	return d.id
}

func (d *Drawing) ProjectID() uuid.UUID {
	return d.projectID
}

func (d *Drawing) Number() string {
	return d.number
}

// Created reports whether the last upsert inserted this drawing rather than
// reusing an existing row.
func (d *Drawing) Created() bool {
	return d.created
}

func (d *Drawing) CreatedAt() time.Time {
	return d.createdAt
}

func (d *Drawing) UpdatedAt() time.Time {
	return d.updatedAt
}

type Repository interface {
	GetByNumber(ctx context.Context, projectID uuid.UUID, number string) (*Drawing, error)
	// UpsertMany inserts the missing drawings and resolves the rest,
	// tolerating concurrent writers. Every returned drawing carries its
	// persisted id and a created flag.
	UpsertMany(ctx context.Context, drawings []*Drawing) ([]*Drawing, error)
}
