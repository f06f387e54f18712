package services

import (
	"context"
	"sort"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/fieldtrak/fieldtrak/modules/takeoff/domain/entities/area"
	"github.com/fieldtrak/fieldtrak/modules/takeoff/domain/entities/component"
	"github.com/fieldtrak/fieldtrak/modules/takeoff/domain/entities/drawing"
	"github.com/fieldtrak/fieldtrak/modules/takeoff/domain/entities/system"
	"github.com/fieldtrak/fieldtrak/modules/takeoff/domain/importer"
	"github.com/fieldtrak/fieldtrak/pkg/composables"
	"github.com/fieldtrak/fieldtrak/pkg/configuration"
	"github.com/fieldtrak/fieldtrak/pkg/eventbus"
	"github.com/fieldtrak/fieldtrak/pkg/metrics"
)

// errImportBlocked forces a rollback when revalidation rejects the payload.
// Nothing has been written at that point, but rolling back keeps the
// all-or-nothing contract obvious.
var errImportBlocked = errors.New("import blocked by validation")

// errImportAborted forces a rollback when the write sequence itself fails,
// e.g. a unique-constraint violation from a concurrent writer. The caller
// still receives the structured zero-count result.
var errImportAborted = errors.New("import aborted by write failure")

// ImportService is the write half of an import. Everything between
// revalidation and the last component insert happens in one transaction;
// on any failure the store is untouched and every result count is zero.
type ImportService struct {
	drawings   drawing.Repository
	areas      area.Repository
	systems    system.Repository
	components component.Repository
	publisher  eventbus.EventBus
	limits     configuration.ImportOptions
}

func NewImportService(
	drawings drawing.Repository,
	areas area.Repository,
	systems system.Repository,
	components component.Repository,
	publisher eventbus.EventBus,
	limits configuration.ImportOptions,
) *ImportService {
	return &ImportService{
		drawings:   drawings,
		areas:      areas,
		systems:    systems,
		components: components,
		publisher:  publisher,
		limits:     limits,
	}
}

// Execute runs a confirmed import payload. The preview the client saw is
// advisory: rows are revalidated from scratch against current store state,
// and any row that no longer passes blocks the whole import.
func (s *ImportService) Execute(ctx context.Context, payload *importer.ImportPayload) (*importer.ImportResult, error) {
	start := time.Now()
	ctx = composables.WithProjectID(ctx, payload.ProjectID)
	logger := composables.UseLogger(ctx)

	var result *importer.ImportResult
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var txErr error
		result, txErr = s.executeInTx(txCtx, payload, start)
		return txErr
	})
	if err != nil && !errors.Is(err, errImportBlocked) && !errors.Is(err, errImportAborted) {
		metrics.ImportsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}

	if result.Success {
		metrics.ImportsTotal.WithLabelValues("success").Inc()
		metrics.ComponentsCreated.Add(float64(result.ComponentsCreated))
		s.publisher.Publish(importer.NewImportCompletedEvent(payload.ProjectID, result))
		logger.WithField("components", result.ComponentsCreated).
			WithField("durationMs", result.DurationMs).
			Info("import committed")
	} else {
		outcome := "blocked"
		if errors.Is(err, errImportAborted) {
			outcome = "failure"
		}
		metrics.ImportsTotal.WithLabelValues(outcome).Inc()
		s.publisher.Publish(importer.NewImportFailedEvent(payload.ProjectID, result))
		logger.WithField("error", result.Error).
			WithField("details", len(result.Details)).
			Warn("import rejected")
	}
	metrics.ImportDuration.Observe(time.Since(start).Seconds())

	return result, nil
}

// executeInTx does the real work inside an open transaction. Split out so
// tests can drive it with fake repositories and no pool.
func (s *ImportService) executeInTx(ctx context.Context, payload *importer.ImportPayload, start time.Time) (*importer.ImportResult, error) {
	if len(payload.Rows) == 0 {
		return importer.Failure("payload contains no rows", nil, ms(start)), errImportBlocked
	}
	if len(payload.Rows) > s.limits.MaxRows {
		return importer.Failure("payload exceeds the row limit", nil, ms(start)), errImportBlocked
	}

	// The payload echoes rows the client saw at preview time; re-normalize
	// before anything derives identity from them.
	renormalized := importer.RenormalizeRows(payload.Rows)

	validation, err := s.revalidate(ctx, payload.ProjectID, renormalized)
	if err != nil {
		return nil, err
	}
	if details := blockingDetails(validation); len(details) > 0 {
		return importer.Failure("one or more rows failed validation", details, ms(start)), errImportBlocked
	}
	rows := validation.Valid()

	areaIDs, areasCreated, err := s.upsertDimension(ctx, payload, importer.DimensionArea, rows, func(r *importer.ParsedRow) string { return r.Area })
	if err != nil {
		return s.abort(ctx, err, "area upsert failed", start)
	}
	systemIDs, systemsCreated, err := s.upsertDimension(ctx, payload, importer.DimensionSystem, rows, func(r *importer.ParsedRow) string { return r.System })
	if err != nil {
		return s.abort(ctx, err, "system upsert failed", start)
	}

	drawingIDs, created, reused, err := s.upsertDrawings(ctx, payload, rows)
	if err != nil {
		return s.abort(ctx, err, "drawing upsert failed", start)
	}

	components, byCategory := buildComponents(payload, rows, drawingIDs, areaIDs, systemIDs)
	inserted, err := s.components.InsertBatch(ctx, components, s.limits.BatchSize)
	if err != nil {
		return s.abort(ctx, err, "component insert failed", start)
	}

	result := &importer.ImportResult{
		Success:           true,
		ComponentsCreated: inserted,
		DrawingsCreated:   created,
		DrawingsReused:    reused,
		ByCategory:        byCategory,
		DurationMs:        ms(start),
	}
	if areasCreated > 0 || systemsCreated > 0 {
		result.DimensionsCreated = map[importer.DimensionType]int{}
		if areasCreated > 0 {
			result.DimensionsCreated[importer.DimensionArea] = areasCreated
		}
		if systemsCreated > 0 {
			result.DimensionsCreated[importer.DimensionSystem] = systemsCreated
		}
	}
	return result, nil
}

func (s *ImportService) revalidate(ctx context.Context, projectID uuid.UUID, rows []*importer.ParsedRow) (*importer.Validation, error) {
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

// abort maps a write-sequence failure onto the zero-count result. The
// underlying cause is logged, not echoed to the client.
func (s *ImportService) abort(ctx context.Context, err error, message string, start time.Time) (*importer.ImportResult, error) {
	composables.UseLogger(ctx).WithError(err).Error(message)
	return importer.Failure(message, nil, ms(start)), errImportAborted
}

// upsertDimension creates the union of the client-confirmed names and the
// values present on the valid rows. A name the client confirmed but no row
// references is still created.
func (s *ImportService) upsertDimension(
	ctx context.Context,
	payload *importer.ImportPayload,
	dimType importer.DimensionType,
	rows []*importer.ParsedRow,
	get func(*importer.ParsedRow) string,
) (map[string]uuid.UUID, int, error) {
	set := make(map[string]struct{})
	for _, name := range payload.DimensionsToCreate[dimType] {
		if n := importer.NormalizeLabel(name); n != "" {
			set[n] = struct{}{}
		}
	}
	for _, row := range rows {
		if v := get(row); v != "" {
			set[v] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil, 0, nil
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)

	var (
		ids     map[string]uuid.UUID
		created int
		err     error
	)
	switch dimType {
	case importer.DimensionArea:
		ids, created, err = s.areas.UpsertMany(ctx, payload.ProjectID, names)
	case importer.DimensionSystem:
		ids, created, err = s.systems.UpsertMany(ctx, payload.ProjectID, names)
	}
	if err != nil {
		return nil, 0, errors.Wrapf(err, "failed to upsert %s dimension", dimType)
	}
	return ids, created, nil
}

func (s *ImportService) upsertDrawings(
	ctx context.Context,
	payload *importer.ImportPayload,
	rows []*importer.ParsedRow,
) (map[string]uuid.UUID, int, int, error) {
	seen := make(map[string]struct{})
	var drawings []*drawing.Drawing
	for _, row := range rows {
		if _, ok := seen[row.Drawing]; ok {
			continue
		}
		seen[row.Drawing] = struct{}{}
		drawings = append(drawings, drawing.New(payload.ProjectID, row.Drawing))
	}

	upserted, err := s.drawings.UpsertMany(ctx, drawings)
	if err != nil {
		return nil, 0, 0, errors.Wrap(err, "drawing upsert failed")
	}

	ids := make(map[string]uuid.UUID, len(upserted))
	created, reused := 0, 0
	for _, d := range upserted {
		ids[d.Number()] = d.ID()
		if d.Created() {
			created++
		} else {
			reused++
		}
	}
	return ids, created, reused, nil
}

// buildComponents materializes quantity expansion: a valid row with quantity
// N becomes N components with sequence 1..N, each carrying its own identity
// key.
func buildComponents(
	payload *importer.ImportPayload,
	rows []*importer.ParsedRow,
	drawingIDs map[string]uuid.UUID,
	areaIDs map[string]uuid.UUID,
	systemIDs map[string]uuid.UUID,
) ([]*component.Component, map[importer.Category]int) {
	var components []*component.Component
	byCategory := make(map[importer.Category]int)

	for _, row := range rows {
		var areaID, systemID *uuid.UUID
		if id, ok := areaIDs[row.Area]; ok && row.Area != "" {
			areaID = &id
		}
		if id, ok := systemIDs[row.System]; ok && row.System != "" {
			systemID = &id
		}

		for seq := 1; seq <= row.Quantity; seq++ {
			components = append(components, component.New(
				payload.ProjectID,
				drawingIDs[row.Drawing],
				importer.KeyFor(row, seq),
				row.Category,
				row.CommodityCode,
				component.WithArea(areaID),
				component.WithSystem(systemID),
				component.WithSize(row.Size),
				component.WithSpec(row.Spec),
				component.WithSequence(seq),
				component.WithDescription(row.Description),
				component.WithSpoolID(row.SpoolID),
				component.WithWeldID(row.WeldID),
				component.WithInsulation(row.Insulation),
				component.WithPaintCode(row.PaintCode),
				component.WithHeatTrace(row.HeatTrace),
				component.WithMaterial(row.Material),
				component.WithAttributes(row.Attributes),
			))
			byCategory[row.Category]++
		}
	}
	return components, byCategory
}

// blockingDetails flattens every skipped and error row into the failure
// report. The executor receives only client-confirmed rows, so anything that
// is not valid here blocks the import.
func blockingDetails(v *importer.Validation) []importer.RowError {
	var details []importer.RowError
	for _, r := range v.Results {
		if r.Status == importer.StatusValid {
			continue
		}
		details = append(details, importer.RowError{
			Row:     r.RowNumber,
			Issue:   string(r.Reason),
			Context: r.Message,
		})
	}
	return details
}

func ms(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
