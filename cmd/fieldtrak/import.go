package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/fieldtrak/fieldtrak/modules/takeoff/domain/importer"
	"github.com/fieldtrak/fieldtrak/modules/takeoff/infrastructure/persistence"
	"github.com/fieldtrak/fieldtrak/modules/takeoff/services"
	"github.com/fieldtrak/fieldtrak/pkg/composables"
	"github.com/fieldtrak/fieldtrak/pkg/configuration"
	"github.com/fieldtrak/fieldtrak/pkg/eventbus"
)

// newImportCommand imports a takeoff file from the command line, bypassing
// HTTP. Without --confirm it only prints the preview.
func newImportCommand() *cobra.Command {
	var (
		projectFlag string
		confirm     bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Preview or run a takeoff import from a local file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := configuration.Use()
			logger := conf.Logger()

			projectID, err := uuid.Parse(projectFlag)
			if err != nil {
				return fmt.Errorf("--project must be a uuid: %w", err)
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			info, err := f.Stat()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute*5)
			defer cancel()
			pool, err := pgxpool.New(ctx, conf.Database.Opts)
			if err != nil {
				return err
			}
			defer pool.Close()
			ctx = composables.WithPool(ctx, pool)

			areas := persistence.NewAreaRepository()
			systems := persistence.NewSystemRepository()
			components := persistence.NewComponentRepository()
			parser := services.NewParseService(conf.Import)
			previews := services.NewPreviewService(parser, components, areas, systems, conf.Import)

			preview, err := previews.PreviewInTx(ctx, projectID, info.Name(), info.Size(), f)
			if err != nil {
				return err
			}
			printJSON(cmd, preview)

			if preview.Blocking {
				return fmt.Errorf("import blocked: %d error row(s)", preview.ErrorCount)
			}
			if !confirm {
				return nil
			}

			if _, err := f.Seek(0, 0); err != nil {
				return err
			}
			rows, err := confirmableRows(cmd.Context(), parser, info, f)
			if err != nil {
				return err
			}

			imports := services.NewImportService(
				persistence.NewDrawingRepository(),
				areas,
				systems,
				components,
				eventbus.NewEventPublisher(logger),
				conf.Import,
			)
			result, err := imports.Execute(ctx, &importer.ImportPayload{
				ProjectID: projectID,
				Rows:      rows,
			})
			if err != nil {
				return err
			}
			printJSON(cmd, result)
			if !result.Success {
				return fmt.Errorf("import rejected: %s", result.Error)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&projectFlag, "project", "", "target project id (required)")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "execute the import after a clean preview")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

// confirmableRows builds the payload rows an interactive client would post
// after a clean preview: every parsed row minus the skipped ones. Skip
// classification does not depend on store state, so an empty snapshot is
// enough here; the executor revalidates against the live store anyway.
func confirmableRows(ctx context.Context, parser *services.ParseService, info os.FileInfo, f *os.File) ([]*importer.ParsedRow, error) {
	file, err := parser.Parse(info.Name(), info.Size(), f)
	if err != nil {
		return nil, err
	}
	mapping := importer.MapHeaders(file.Headers)
	if mapping.Blocked() {
		return nil, fmt.Errorf("header mapping is blocked")
	}
	rows := make([]*importer.ParsedRow, 0, len(file.Records))
	for _, record := range file.Records {
		rows = append(rows, importer.BuildRow(record.Number, file.Headers, record.Cells, mapping))
	}

	validation, err := importer.ValidateRows(ctx, rows, nil, configuration.Use().Import.YieldEvery)
	if err != nil {
		return nil, err
	}
	var confirmed []*importer.ParsedRow
	for _, result := range validation.Results {
		if result.Status == importer.StatusSkipped {
			continue
		}
		confirmed = append(confirmed, result.Row)
	}
	return confirmed, nil
}

func printJSON(cmd *cobra.Command, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
}
