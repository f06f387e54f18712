package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/fieldtrak/fieldtrak/modules/takeoff/domain/entities/drawing"
	"github.com/fieldtrak/fieldtrak/modules/takeoff/infrastructure/persistence/models"
	"github.com/fieldtrak/fieldtrak/pkg/composables"
)

var ErrDrawingNotFound = fmt.Errorf("drawing not found")

const (
	drawingFindQuery = `SELECT id, project_id, number, created_at, updated_at FROM drawings`

	// xmax = 0 distinguishes a fresh insert from a reused row.
	drawingUpsertQuery = `
		INSERT INTO drawings (id, project_id, number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (project_id, number) DO UPDATE SET updated_at = EXCLUDED.updated_at
		RETURNING id, (xmax = 0) AS created
	`
)

type DrawingRepository struct{}

func NewDrawingRepository() drawing.Repository {
	return &DrawingRepository{}
}

func (r *DrawingRepository) GetByNumber(ctx context.Context, projectID uuid.UUID, number string) (*drawing.Drawing, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	query := drawingFindQuery + " WHERE project_id = $1 AND number = $2"
	var m models.Drawing
	if err := tx.QueryRow(ctx, query, projectID.String(), number).Scan(
		&m.ID,
		&m.ProjectID,
		&m.Number,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return nil, ErrDrawingNotFound
	}

	return toDomainDrawing(&m)
}

func (r *DrawingRepository) UpsertMany(ctx context.Context, drawings []*drawing.Drawing) ([]*drawing.Drawing, error) {
	if len(drawings) == 0 {
		return nil, nil
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	out := make([]*drawing.Drawing, 0, len(drawings))
	for _, d := range drawings {
		var idStr string
		var created bool
		if err := tx.QueryRow(
			ctx,
			drawingUpsertQuery,
			d.ID().String(),
			d.ProjectID().String(),
			d.Number(),
			d.CreatedAt(),
			d.UpdatedAt(),
		).Scan(&idStr, &created); err != nil {
			return nil, errors.Wrapf(err, "failed to upsert drawing %q", d.Number())
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, errors.Wrap(err, "invalid drawing id")
		}
		out = append(out, drawing.New(
			d.ProjectID(),
			d.Number(),
			drawing.WithID(id),
			drawing.WithCreated(created),
			drawing.WithCreatedAt(d.CreatedAt()),
			drawing.WithUpdatedAt(d.UpdatedAt()),
		))
	}
	return out, nil
}
