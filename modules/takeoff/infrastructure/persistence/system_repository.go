package persistence

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/fieldtrak/fieldtrak/modules/takeoff/domain/entities/system"
	"github.com/fieldtrak/fieldtrak/pkg/composables"
)

const (
	systemExistingQuery = `SELECT id, name FROM systems WHERE project_id = $1 AND name = ANY($2)`

	systemUpsertQuery = `
		INSERT INTO systems (id, project_id, name, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (project_id, name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, (xmax = 0) AS created
	`
)

type SystemRepository struct{}

func NewSystemRepository() system.Repository {
	return &SystemRepository{}
}

func (r *SystemRepository) ExistingNames(ctx context.Context, projectID uuid.UUID, names []string) (map[string]uuid.UUID, error) {
	out := make(map[string]uuid.UUID, len(names))
	if len(names) == 0 {
		return out, nil
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, systemExistingQuery, projectID.String(), names)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query systems")
	}
	defer rows.Close()

	for rows.Next() {
		var idStr, name string
		if err := rows.Scan(&idStr, &name); err != nil {
			return nil, errors.Wrap(err, "failed to scan system row")
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, errors.Wrap(err, "invalid system id")
		}
		out[name] = id
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return out, nil
}

func (r *SystemRepository) UpsertMany(ctx context.Context, projectID uuid.UUID, names []string) (map[string]uuid.UUID, int, error) {
	out := make(map[string]uuid.UUID, len(names))
	if len(names) == 0 {
		return out, 0, nil
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to get transaction")
	}

	created := 0
	now := time.Now()
	for _, name := range names {
		var idStr string
		var inserted bool
		if err := tx.QueryRow(
			ctx,
			systemUpsertQuery,
			uuid.New().String(),
			projectID.String(),
			name,
			now,
		).Scan(&idStr, &inserted); err != nil {
			return nil, 0, errors.Wrapf(err, "failed to upsert system %q", name)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, 0, errors.Wrap(err, "invalid system id")
		}
		out[name] = id
		if inserted {
			created++
		}
	}
	return out, created, nil
}
