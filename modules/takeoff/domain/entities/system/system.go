package system

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// System is a named test system, auto-created during imports when a takeoff
// references a value the project does not know yet.
type System struct {
	id        uuid.UUID
	projectID uuid.UUID
	name      string
	createdAt time.Time
}

type Option func(*System)

func WithID(id uuid.UUID) Option {
	return func(s *System) {
		s.id = id
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(s *System) {
		s.createdAt = createdAt
	}
}

func New(projectID uuid.UUID, name string, opts ...Option) *System {
	s := &System{
		id:        uuid.New(),
		projectID: projectID,
		name:      name,
		createdAt: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *System) ID() uuid.UUID {
	return s.id
}

func (s *System) ProjectID() uuid.UUID {
	return s.projectID
}

func (s *System) Name() string {
	return s.name
}

func (s *System) CreatedAt() time.Time {
	return s.createdAt
}

type Repository interface {
	// ExistingNames answers with one batched query which of the given
	// names are already present in the project.
	ExistingNames(ctx context.Context, projectID uuid.UUID, names []string) (map[string]uuid.UUID, error)
	// UpsertMany creates the given systems, resolving to the existing id
	// when a concurrent writer got there first. Returns name->id plus the
	// number actually inserted.
	UpsertMany(ctx context.Context, projectID uuid.UUID, names []string) (map[string]uuid.UUID, int, error)
}
