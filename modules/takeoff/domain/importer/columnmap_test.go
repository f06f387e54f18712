package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapHeaders_Tiers(t *testing.T) {
	result := MapHeaders([]string{"drawing", "Type", "QTY", "commodity_code"})
	require.Len(t, result.Mappings, 4)

	byField := map[Field]FieldMapping{}
	for _, m := range result.Mappings {
		byField[m.Field] = m
	}

	assert.Equal(t, ConfidenceExact, byField[FieldDrawing].Confidence)
	assert.Equal(t, TierExact, byField[FieldDrawing].Tier)

	assert.Equal(t, ConfidenceCaseInsensitive, byField[FieldType].Confidence)
	assert.Equal(t, TierCaseInsensitive, byField[FieldType].Tier)

	assert.Equal(t, ConfidenceSynonym, byField[FieldQuantity].Confidence)
	assert.Equal(t, TierSynonym, byField[FieldQuantity].Tier)

	assert.Equal(t, ConfidenceExact, byField[FieldCommodityCode].Confidence)

	assert.Empty(t, result.MissingRequired)
	assert.False(t, result.Blocked())
}

func TestMapHeaders_FirstMatchWinsDeterministically(t *testing.T) {
	headers := []string{"drawing", "type", "quantity", "commodity_code"}
	first := MapHeaders(headers)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first.Mappings, MapHeaders(headers).Mappings)
	}
}

func TestMapHeaders_AmbiguityBlocks(t *testing.T) {
	result := MapHeaders([]string{"drawing", "DWG", "type", "quantity", "commodity_code"})
	require.Len(t, result.Ambiguous, 1)
	assert.Equal(t, FieldDrawing, result.Ambiguous[0].Field)
	assert.Equal(t, "drawing", result.Ambiguous[0].First)
	assert.Equal(t, "DWG", result.Ambiguous[0].Second)
	assert.True(t, result.Blocked())
}

func TestMapHeaders_MissingRequiredBlocks(t *testing.T) {
	result := MapHeaders([]string{"drawing", "type", "quantity"})
	require.Len(t, result.MissingRequired, 1)
	assert.Equal(t, FieldCommodityCode, result.MissingRequired[0])
	assert.True(t, result.Blocked())
}

func TestMapHeaders_UnmappedRideAlong(t *testing.T) {
	result := MapHeaders([]string{"drawing", "type", "quantity", "commodity_code", "crew note"})
	assert.Equal(t, []string{"crew note"}, result.Unmapped)
	assert.False(t, result.Blocked())

	_, mapped := result.FieldFor("crew note")
	assert.False(t, mapped)
}

func TestMapHeaders_SuggestionsForNearMisses(t *testing.T) {
	result := MapHeaders([]string{"drawing", "type", "quantity", "commodity_code", "drawin"})
	require.Contains(t, result.Unmapped, "drawin")
	assert.NotEmpty(t, result.Suggestions["drawin"])
}

// Mixed header styles from a typical field takeoff export.
func TestMapHeaders_MixedSpreadsheet(t *testing.T) {
	result := MapHeaders([]string{"Drawing Number", "TYPE", "Qty", "Cmdty Code", "Size", "Area", "Notes"})

	require.False(t, result.Blocked())
	byHeader := map[string]FieldMapping{}
	for _, m := range result.Mappings {
		byHeader[m.RawHeader] = m
	}
	assert.Equal(t, FieldDrawing, byHeader["Drawing Number"].Field)
	assert.Equal(t, FieldType, byHeader["TYPE"].Field)
	assert.Equal(t, FieldQuantity, byHeader["Qty"].Field)
	assert.Equal(t, FieldCommodityCode, byHeader["Cmdty Code"].Field)
	assert.Equal(t, FieldSize, byHeader["Size"].Field)
	assert.Equal(t, FieldArea, byHeader["Area"].Field)
	assert.Equal(t, []string{"Notes"}, result.Unmapped)
}
