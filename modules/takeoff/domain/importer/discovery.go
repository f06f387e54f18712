package importer

import (
	"context"
	"sort"

	"github.com/google/uuid"
)

// DimensionType names an optional grouping attribute that may need
// auto-creation during an import.
type DimensionType string

const (
	DimensionArea   DimensionType = "area"
	DimensionSystem DimensionType = "system"
)

type DimensionStatus string

const (
	DimensionExists     DimensionStatus = "exists"
	DimensionWillCreate DimensionStatus = "will_create"
)

// DimensionDiscovery is one unique dimension value with its resolution
// against the store. Computed fresh per import attempt, never cached.
type DimensionDiscovery struct {
	Type   DimensionType   `json:"type"`
	Name   string          `json:"name"`
	Status DimensionStatus `json:"status"`
	ID     uuid.UUID       `json:"id,omitempty"`
}

// DimensionLookup resolves which of the given names already exist within the
// project scope. Implementations must answer with a single batched query.
type DimensionLookup interface {
	ExistingNames(ctx context.Context, projectID uuid.UUID, names []string) (map[string]uuid.UUID, error)
}

// DiscoverDimensions extracts the unique non-empty area and system values
// from the valid rows and resolves each against the store. Rows with an
// empty value simply link to no dimension; that is not an error.
func DiscoverDimensions(
	ctx context.Context,
	projectID uuid.UUID,
	rows []*ParsedRow,
	areas DimensionLookup,
	systems DimensionLookup,
) ([]DimensionDiscovery, error) {
	areaNames := uniqueValues(rows, func(r *ParsedRow) string { return r.Area })
	systemNames := uniqueValues(rows, func(r *ParsedRow) string { return r.System })

	var out []DimensionDiscovery

	resolved, err := resolveDimension(ctx, projectID, DimensionArea, areaNames, areas)
	if err != nil {
		return nil, err
	}
	out = append(out, resolved...)

	resolved, err = resolveDimension(ctx, projectID, DimensionSystem, systemNames, systems)
	if err != nil {
		return nil, err
	}
	out = append(out, resolved...)

	return out, nil
}

func resolveDimension(
	ctx context.Context,
	projectID uuid.UUID,
	dimType DimensionType,
	names []string,
	lookup DimensionLookup,
) ([]DimensionDiscovery, error) {
	if len(names) == 0 {
		return nil, nil
	}
	existing, err := lookup.ExistingNames(ctx, projectID, names)
	if err != nil {
		return nil, err
	}
	out := make([]DimensionDiscovery, 0, len(names))
	for _, name := range names {
		if id, ok := existing[name]; ok {
			out = append(out, DimensionDiscovery{Type: dimType, Name: name, Status: DimensionExists, ID: id})
		} else {
			out = append(out, DimensionDiscovery{Type: dimType, Name: name, Status: DimensionWillCreate})
		}
	}
	return out, nil
}

func uniqueValues(rows []*ParsedRow, get func(*ParsedRow) string) []string {
	set := make(map[string]struct{})
	for _, row := range rows {
		if v := get(row); v != "" {
			set[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
