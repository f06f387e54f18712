package importer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemblePreview(t *testing.T) {
	rows := []*ParsedRow{
		validRow(1),
		{Number: 2, Drawing: "P-2", TypeRaw: "Gasket", QuantityRaw: "1", CommodityCode: "X"},
		{Number: 3, Drawing: "", TypeRaw: "Valve", QuantityRaw: "1", CommodityCode: "X"},
	}
	v, err := ValidateRows(context.Background(), rows, nil, 200)
	require.NoError(t, err)

	mapping := MapHeaders([]string{"drawing", "type", "quantity", "commodity_code", "crew note"})
	p := AssemblePreview(mapping, v, nil, 10)

	assert.Equal(t, 3, p.TotalRows)
	assert.Equal(t, 1, p.ValidCount)
	assert.Equal(t, 1, p.SkippedCount)
	assert.Equal(t, 1, p.ErrorCount)
	assert.Equal(t, map[ReasonCode]int{ReasonUnsupportedType: 1}, p.SkippedByReason)
	assert.Equal(t, map[ReasonCode]int{ReasonMissingRequiredField: 1}, p.ErrorsByReason)
	assert.Len(t, p.Issues, 2)
	assert.Equal(t, []string{"crew note"}, p.UnmappedHeaders)
	assert.True(t, p.Blocking)

	require.Len(t, p.SampleRows, 1)
	assert.Equal(t, 1, p.SampleRows[0].Number)
}

func TestAssemblePreview_SampleCap(t *testing.T) {
	var rows []*ParsedRow
	for i := 1; i <= 8; i++ {
		r := validRow(i)
		r.Drawing = NormalizeDrawing("P-" + string(rune('0'+i)))
		rows = append(rows, r)
	}
	v, err := ValidateRows(context.Background(), rows, nil, 200)
	require.NoError(t, err)

	p := AssemblePreview(MapHeaders([]string{"drawing", "type", "quantity", "commodity_code"}), v, nil, 3)
	assert.Len(t, p.SampleRows, 3)
	assert.Equal(t, 8, p.ValidCount)
	assert.False(t, p.Blocking)
}
