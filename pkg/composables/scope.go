package composables

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fieldtrak/fieldtrak/pkg/configuration"
	"github.com/fieldtrak/fieldtrak/pkg/constants"
)

var ErrNoProjectID = errors.New("no project id found in context")

func WithProjectID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, constants.ProjectIDKey, id)
}

func UseProjectID(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(constants.ProjectIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, ErrNoProjectID
	}
	return id, nil
}

// ApplyProjectScope sets the project GUC on the transaction so row-level
// policies restrict every statement to the current project.
func ApplyProjectScope(ctx context.Context, tx pgx.Tx) error {
	if configuration.Use().ScopeEnforce != "enforce" {
		return nil
	}
	projectID, err := UseProjectID(ctx)
	if err != nil {
		return fmt.Errorf("project scope requires project in context: %w", err)
	}
	_, err = tx.Exec(ctx, "SELECT set_config('app.current_project', $1, true)", projectID.String())
	if err != nil {
		return fmt.Errorf("failed to set project scope: %w", err)
	}
	return nil
}
