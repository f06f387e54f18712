package services

import (
	"context"
	"io"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/fieldtrak/fieldtrak/modules/takeoff/domain/entities/area"
	"github.com/fieldtrak/fieldtrak/modules/takeoff/domain/entities/component"
	"github.com/fieldtrak/fieldtrak/modules/takeoff/domain/entities/system"
	"github.com/fieldtrak/fieldtrak/modules/takeoff/domain/importer"
	"github.com/fieldtrak/fieldtrak/pkg/composables"
	"github.com/fieldtrak/fieldtrak/pkg/configuration"
)

// PreviewService runs the read-only half of an import: parse, map headers,
// validate rows against the current store and summarize. It never writes.
type PreviewService struct {
	parser     *ParseService
	components component.Repository
	areas      area.Repository
	systems    system.Repository
	limits     configuration.ImportOptions
}

func NewPreviewService(
	parser *ParseService,
	components component.Repository,
	areas area.Repository,
	systems system.Repository,
	limits configuration.ImportOptions,
) *PreviewService {
	return &PreviewService{
		parser:     parser,
		components: components,
		areas:      areas,
		systems:    systems,
		limits:     limits,
	}
}

// Preview parses the upload and assembles the confirmation summary. A
// mapping-level block (ambiguous headers or a required field with no match)
// short-circuits before any row is validated.
func (s *PreviewService) Preview(ctx context.Context, projectID uuid.UUID, filename string, size int64, r io.Reader) (*importer.Preview, error) {
	file, err := s.parser.Parse(filename, size, r)
	if err != nil {
		return nil, err
	}
	mapping := importer.MapHeaders(file.Headers)
	if mapping.Blocked() {
		return &importer.Preview{
			Mappings:        mapping.Mappings,
			UnmappedHeaders: mapping.Unmapped,
			Suggestions:     mapping.Suggestions,
			TotalRows:       len(file.Records),
			Blocking:        true,
		}, nil
	}

	rows := buildRows(file, mapping)

	validation, err := s.validate(ctx, projectID, rows)
	if err != nil {
		return nil, err
	}

	dims, err := importer.DiscoverDimensions(ctx, projectID, validation.Valid(), s.areas, s.systems)
	if err != nil {
		return nil, errors.Wrap(err, "dimension discovery failed")
	}

	return importer.AssemblePreview(mapping, validation, dims, s.limits.SampleSize), nil
}

// buildRows converts every parsed record, carrying the physical row number
// through so issues reported downstream line up with the spreadsheet.
func buildRows(file *TableFile, mapping *importer.MappingResult) []*importer.ParsedRow {
	rows := make([]*importer.ParsedRow, 0, len(file.Records))
	for _, record := range file.Records {
		rows = append(rows, importer.BuildRow(record.Number, file.Headers, record.Cells, mapping))
	}
	return rows
}

// validate fetches the store snapshot with one batched key lookup, then runs
// the row validator. Runs inside a read transaction so the snapshot and
// dimension lookups see consistent state.
func (s *PreviewService) validate(ctx context.Context, projectID uuid.UUID, rows []*importer.ParsedRow) (*importer.Validation, error) {
	candidates := importer.CandidateKeys(rows)
	existing, err := s.components.ExistingIdentityKeys(ctx, projectID, candidates)
	if err != nil {
		return nil, errors.Wrap(err, "identity key lookup failed")
	}
	validation, err := importer.ValidateRows(ctx, rows, existing, s.limits.YieldEvery)
	if err != nil {
		return nil, errors.Wrap(err, "row validation aborted")
	}
	return validation, nil
}

// PreviewInTx wraps Preview in a transaction carrying the project scope.
func (s *PreviewService) PreviewInTx(ctx context.Context, projectID uuid.UUID, filename string, size int64, r io.Reader) (*importer.Preview, error) {
	ctx = composables.WithProjectID(ctx, projectID)
	var preview *importer.Preview
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		preview, err = s.Preview(txCtx, projectID, filename, size, r)
		return err
	})
	if err != nil {
		return nil, err
	}
	return preview, nil
}
