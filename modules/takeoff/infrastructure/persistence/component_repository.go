package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fieldtrak/fieldtrak/modules/takeoff/domain/entities/component"
	"github.com/fieldtrak/fieldtrak/modules/takeoff/domain/importer"
	"github.com/fieldtrak/fieldtrak/pkg/composables"
)

const (
	componentExistingKeysQuery = `SELECT identity_key FROM components WHERE project_id = $1 AND identity_key = ANY($2)`

	componentInsertQuery = `
		INSERT INTO components (
			id, project_id, drawing_id, area_id, system_id,
			identity_key, category, commodity_code, size, spec, sequence,
			description, spool_id, weld_id, insulation, paint_code, heat_trace, material,
			attributes, created_at, updated_at
		)
		VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17, $18,
			$19, $20, $21
		)
	`

	componentCountQuery = `SELECT COUNT(*) FROM components WHERE project_id = $1`
)

type ComponentRepository struct{}

func NewComponentRepository() component.Repository {
	return &ComponentRepository{}
}

func (r *ComponentRepository) ExistingIdentityKeys(
	ctx context.Context,
	projectID uuid.UUID,
	keys []importer.IdentityKey,
) (map[importer.IdentityKey]struct{}, error) {
	out := make(map[importer.IdentityKey]struct{}, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	raw := make([]string, len(keys))
	for i, k := range keys {
		raw[i] = string(k)
	}

	rows, err := tx.Query(ctx, componentExistingKeysQuery, projectID.String(), raw)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query identity keys")
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, errors.Wrap(err, "failed to scan identity key")
		}
		out[importer.IdentityKey(key)] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return out, nil
}

func (r *ComponentRepository) InsertBatch(ctx context.Context, components []*component.Component, batchSize int) (int, error) {
	if len(components) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = len(components)
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get transaction")
	}

	inserted := 0
	for start := 0; start < len(components); start += batchSize {
		end := start + batchSize
		if end > len(components) {
			end = len(components)
		}
		n, err := r.insertChunk(ctx, tx, components[start:end])
		if err != nil {
			return 0, err
		}
		inserted += n
	}
	return inserted, nil
}

func (r *ComponentRepository) insertChunk(ctx context.Context, tx interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}, chunk []*component.Component) (int, error) {
	batch := &pgx.Batch{}
	for _, c := range chunk {
		m, err := toDBComponent(c)
		if err != nil {
			return 0, errors.Wrapf(err, "failed to encode component %q", c.IdentityKey())
		}
		batch.Queue(
			componentInsertQuery,
			m.ID, m.ProjectID, m.DrawingID, m.AreaID, m.SystemID,
			m.IdentityKey, m.Category, m.CommodityCode, m.Size, m.Spec, m.Sequence,
			m.Description, m.SpoolID, m.WeldID, m.Insulation, m.PaintCode, m.HeatTrace, m.Material,
			m.Attributes, m.CreatedAt, m.UpdatedAt,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer func() { _ = results.Close() }()

	for i := range chunk {
		if _, err := results.Exec(); err != nil {
			return 0, errors.Wrapf(err, "failed to insert component %q", chunk[i].IdentityKey())
		}
	}
	return len(chunk), nil
}

func (r *ComponentRepository) CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get transaction")
	}
	var count int64
	if err := tx.QueryRow(ctx, componentCountQuery, projectID.String()).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count components")
	}
	return count, nil
}
