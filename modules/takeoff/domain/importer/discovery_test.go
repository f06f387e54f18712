package importer

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticLookup struct {
	known map[string]uuid.UUID
	calls int
}

func (l *staticLookup) ExistingNames(_ context.Context, _ uuid.UUID, names []string) (map[string]uuid.UUID, error) {
	l.calls++
	out := make(map[string]uuid.UUID)
	for _, n := range names {
		if id, ok := l.known[n]; ok {
			out[n] = id
		}
	}
	return out, nil
}

func TestDiscoverDimensions(t *testing.T) {
	northID := uuid.New()
	areas := &staticLookup{known: map[string]uuid.UUID{"NORTH RACK": northID}}
	systems := &staticLookup{known: map[string]uuid.UUID{}}

	rows := []*ParsedRow{
		{Area: "NORTH RACK", System: "TP-001"},
		{Area: "SOUTH RACK", System: "TP-001"},
		{Area: "NORTH RACK"},
		{},
	}

	dims, err := DiscoverDimensions(context.Background(), uuid.New(), rows, areas, systems)
	require.NoError(t, err)
	require.Len(t, dims, 3)

	assert.Equal(t, []DimensionDiscovery{
		{Type: DimensionArea, Name: "NORTH RACK", Status: DimensionExists, ID: northID},
		{Type: DimensionArea, Name: "SOUTH RACK", Status: DimensionWillCreate},
		{Type: DimensionSystem, Name: "TP-001", Status: DimensionWillCreate},
	}, dims)

	// One batched lookup per dimension type.
	assert.Equal(t, 1, areas.calls)
	assert.Equal(t, 1, systems.calls)
}

func TestDiscoverDimensions_NoValues(t *testing.T) {
	areas := &staticLookup{}
	systems := &staticLookup{}
	dims, err := DiscoverDimensions(context.Background(), uuid.New(), []*ParsedRow{{}, {}}, areas, systems)
	require.NoError(t, err)
	assert.Empty(t, dims)
	assert.Zero(t, areas.calls)
	assert.Zero(t, systems.calls)
}
