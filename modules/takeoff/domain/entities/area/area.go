package area

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Area is a named physical plant area, auto-created during imports when a
// takeoff references a value the project does not know yet.
type Area struct {
	id        uuid.UUID
	projectID uuid.UUID
	name      string
	createdAt time.Time
}

type Option func(*Area)

func WithID(id uuid.UUID) Option {
	return func(a *Area) {
		a.id = id
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(a *Area) {
		a.createdAt = createdAt
	}
}

func New(projectID uuid.UUID, name string, opts ...Option) *Area {
	a := &Area{
		id:        uuid.New(),
		projectID: projectID,
		name:      name,
		createdAt: time.Now(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Area) ID() uuid.UUID {
	return a.id
}

func (a *Area) ProjectID() uuid.UUID {
	return a.projectID
}

func (a *Area) Name() string {
	return a.name
}

func (a *Area) CreatedAt() time.Time {
	return a.createdAt
}

type Repository interface {
	// ExistingNames answers with one batched query which of the given
	// names are already present in the project.
	ExistingNames(ctx context.Context, projectID uuid.UUID, names []string) (map[string]uuid.UUID, error)
	// UpsertMany creates the given areas, resolving to the existing id
	// when a concurrent writer got there first. Returns name->id plus the
	// number actually inserted.
	UpsertMany(ctx context.Context, projectID uuid.UUID, names []string) (map[string]uuid.UUID, int, error)
}
