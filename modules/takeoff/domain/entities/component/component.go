package component

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fieldtrak/fieldtrak/modules/takeoff/domain/importer"
)

// Component is one persisted takeoff record: a single sequenced unit on a
// drawing, unique by identity key within its project.
type Component struct {
	id            uuid.UUID
	projectID     uuid.UUID
	drawingID     uuid.UUID
	areaID        *uuid.UUID
	systemID      *uuid.UUID
	identityKey   importer.IdentityKey
	category      importer.Category
	commodityCode string
	size          string
	spec          string
	sequence      int
	description   string
	spoolID       string
	weldID        string
	insulation    string
	paintCode     string
	heatTrace     string
	material      string
	attributes    map[string]string
	createdAt     time.Time
	updatedAt     time.Time
}

type Option func(*Component)

func WithID(id uuid.UUID) Option {
	return func(c *Component) {
		c.id = id
	}
}

func WithArea(id *uuid.UUID) Option {
	return func(c *Component) {
		c.areaID = id
	}
}

func WithSystem(id *uuid.UUID) Option {
	return func(c *Component) {
		c.systemID = id
	}
}

func WithSize(size string) Option {
	return func(c *Component) {
		c.size = size
	}
}

func WithSpec(spec string) Option {
	return func(c *Component) {
		c.spec = spec
	}
}

func WithSequence(seq int) Option {
	return func(c *Component) {
		c.sequence = seq
	}
}

func WithDescription(description string) Option {
	return func(c *Component) {
		c.description = description
	}
}

func WithSpoolID(spoolID string) Option {
	return func(c *Component) {
		c.spoolID = spoolID
	}
}

func WithWeldID(weldID string) Option {
	return func(c *Component) {
		c.weldID = weldID
	}
}

func WithInsulation(insulation string) Option {
	return func(c *Component) {
		c.insulation = insulation
	}
}

func WithPaintCode(paintCode string) Option {
	return func(c *Component) {
		c.paintCode = paintCode
	}
}

func WithHeatTrace(heatTrace string) Option {
	return func(c *Component) {
		c.heatTrace = heatTrace
	}
}

func WithMaterial(material string) Option {
	return func(c *Component) {
		c.material = material
	}
}

func WithAttributes(attributes map[string]string) Option {
	return func(c *Component) {
		c.attributes = attributes
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(c *Component) {
		c.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(c *Component) {
		c.updatedAt = updatedAt
	}
}

func New(
	projectID uuid.UUID,
	drawingID uuid.UUID,
	identityKey importer.IdentityKey,
	category importer.Category,
	commodityCode string,
	opts ...Option,
) *Component {
	c := &Component{
		id:            uuid.New(),
		projectID:     projectID,
		drawingID:     drawingID,
		identityKey:   identityKey,
		category:      category,
		commodityCode: commodityCode,
		sequence:      1,
		createdAt:     time.Now(),
		updatedAt:     time.Now(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Component) ID() uuid.UUID {
	return c.id
}

func (c *Component) ProjectID() uuid.UUID {
	return c.projectID
}

func (c *Component) DrawingID() uuid.UUID {
	return c.drawingID
}

func (c *Component) AreaID() *uuid.UUID {
	return c.areaID
}

func (c *Component) SystemID() *uuid.UUID {
	return c.systemID
}

func (c *Component) IdentityKey() importer.IdentityKey {
	return c.identityKey
}

func (c *Component) Category() importer.Category {
	return c.category
}

func (c *Component) CommodityCode() string {
	return c.commodityCode
}

func (c *Component) Size() string {
	return c.size
}

func (c *Component) Spec() string {
	return c.spec
}

func (c *Component) Sequence() int {
	return c.sequence
}

func (c *Component) Description() string {
	return c.description
}

func (c *Component) SpoolID() string {
	return c.spoolID
}

func (c *Component) WeldID() string {
	return c.weldID
}

func (c *Component) Insulation() string {
	return c.insulation
}

func (c *Component) PaintCode() string {
	return c.paintCode
}

func (c *Component) HeatTrace() string {
	return c.heatTrace
}

func (c *Component) Material() string {
	return c.material
}

func (c *Component) Attributes() map[string]string {
	return c.attributes
}

func (c *Component) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Component) UpdatedAt() time.Time {
	return c.updatedAt
}

type Repository interface {
	// ExistingIdentityKeys answers with one batched query which of the
	// given keys already exist in the project.
	ExistingIdentityKeys(ctx context.Context, projectID uuid.UUID, keys []importer.IdentityKey) (map[importer.IdentityKey]struct{}, error)
	// InsertBatch persists components in fixed-size chunks. Chunking is an
	// implementation detail; a failed chunk fails the whole call.
	InsertBatch(ctx context.Context, components []*Component, batchSize int) (int, error)
	CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error)
}
