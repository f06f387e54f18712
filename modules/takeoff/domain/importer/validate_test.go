package importer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRow(number int) *ParsedRow {
	return &ParsedRow{
		Number:        number,
		Drawing:       "P-91010",
		TypeRaw:       "Valve",
		QuantityRaw:   "1",
		CommodityCode: "VLV-GATE-6",
		Size:          "6",
	}
}

func mustValidate(t *testing.T, rows []*ParsedRow, existing map[IdentityKey]struct{}) *Validation {
	t.Helper()
	v, err := ValidateRows(context.Background(), rows, existing, 200)
	require.NoError(t, err)
	return v
}

func TestValidateRows_Partition(t *testing.T) {
	rows := []*ParsedRow{
		validRow(1),
		{Number: 2, Drawing: "", TypeRaw: "Valve", QuantityRaw: "1", CommodityCode: "X"},
		{Number: 3, Drawing: "P-1", TypeRaw: "Gasket", QuantityRaw: "1", CommodityCode: "X"},
		{Number: 4, Drawing: "P-1", TypeRaw: "Valve", QuantityRaw: "0", CommodityCode: "X"},
	}
	v := mustValidate(t, rows, nil)

	valid, skipped, errs := v.Counts()
	assert.Equal(t, 1, valid)
	assert.Equal(t, 2, skipped)
	assert.Equal(t, 1, errs)
	assert.Equal(t, len(rows), valid+skipped+errs)

	assert.Equal(t, StatusError, v.Results[1].Status)
	assert.Equal(t, ReasonMissingRequiredField, v.Results[1].Reason)
	assert.Equal(t, StatusSkipped, v.Results[2].Status)
	assert.Equal(t, ReasonUnsupportedType, v.Results[2].Reason)
	assert.Equal(t, StatusSkipped, v.Results[3].Status)
	assert.Equal(t, ReasonInvalidOrZeroQuantity, v.Results[3].Reason)
}

func TestValidateRows_InvalidQuantityValues(t *testing.T) {
	for _, q := range []string{"abc", "-1", "1.5"} {
		row := validRow(1)
		row.QuantityRaw = q
		v := mustValidate(t, []*ParsedRow{row}, nil)
		assert.Equal(t, StatusSkipped, v.Results[0].Status, "quantity %q", q)
		assert.Equal(t, ReasonInvalidOrZeroQuantity, v.Results[0].Reason)
	}
}

func TestValidateRows_IntraFileDuplicateFlagsBothRows(t *testing.T) {
	rows := []*ParsedRow{validRow(1), validRow(2)}
	v := mustValidate(t, rows, nil)

	require.Equal(t, StatusError, v.Results[0].Status)
	require.Equal(t, StatusError, v.Results[1].Status)
	assert.Equal(t, ReasonDuplicateIdentityKey, v.Results[0].Reason)
	assert.Equal(t, ReasonDuplicateIdentityKey, v.Results[1].Reason)
	assert.Equal(t, 2, v.Results[0].DuplicateOf)
	assert.Equal(t, 1, v.Results[1].DuplicateOf)
}

func TestValidateRows_StoreDuplicate(t *testing.T) {
	row := validRow(1)
	existing := map[IdentityKey]struct{}{
		"P-91010::VLV-GATE-6::6::1": {},
	}
	v := mustValidate(t, []*ParsedRow{row}, existing)

	assert.Equal(t, StatusError, v.Results[0].Status)
	assert.Equal(t, ReasonDuplicateIdentityKey, v.Results[0].Reason)
	assert.Zero(t, v.Results[0].DuplicateOf)
}

func TestValidateRows_QuantityExpansionCollides(t *testing.T) {
	// Two valves of the same commodity on the same drawing: quantities 2 and
	// 1 overlap at sequence 1, so both rows must error.
	first := validRow(1)
	first.QuantityRaw = "2"
	second := validRow(2)

	v := mustValidate(t, []*ParsedRow{first, second}, nil)
	assert.Equal(t, StatusError, v.Results[0].Status)
	assert.Equal(t, StatusError, v.Results[1].Status)
}

func TestValidateRows_SequencelessCategoryWithQuantity(t *testing.T) {
	row := &ParsedRow{
		Number:        1,
		Drawing:       "P-91010",
		TypeRaw:       "Field Weld",
		QuantityRaw:   "2",
		CommodityCode: "FW",
		WeldID:        "FW-014",
		Size:          "6",
	}
	v := mustValidate(t, []*ParsedRow{row}, nil)
	require.Equal(t, StatusError, v.Results[0].Status)
	assert.Equal(t, ReasonDuplicateIdentityKey, v.Results[0].Reason)
	// Self-collision, not a cross-row duplicate.
	assert.Zero(t, v.Results[0].DuplicateOf)
}

func TestValidateRows_SkippedRowsNeverBlock(t *testing.T) {
	rows := []*ParsedRow{
		validRow(1),
		{Number: 2, Drawing: "P-1", TypeRaw: "Gasket", QuantityRaw: "1", CommodityCode: "X"},
	}
	v := mustValidate(t, rows, nil)
	assert.False(t, v.Blocking())
	assert.Len(t, v.Valid(), 1)
}

func TestValidateRows_Deterministic(t *testing.T) {
	build := func() []*ParsedRow {
		rows := []*ParsedRow{validRow(1), validRow(2), {Number: 3, Drawing: "P-2", TypeRaw: "Support", QuantityRaw: "4", CommodityCode: "SUP-1"}}
		return rows
	}
	first := mustValidate(t, build(), nil)
	second := mustValidate(t, build(), nil)
	assert.Equal(t, first.Results, second.Results)
}

func TestValidateRows_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rows := make([]*ParsedRow, 0, 10)
	for i := 1; i <= 10; i++ {
		r := validRow(i)
		r.Drawing = "P-" + r.QuantityRaw + string(rune('A'+i))
		rows = append(rows, r)
	}
	_, err := ValidateRows(ctx, rows, nil, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCandidateKeys_MatchesValidationUniverse(t *testing.T) {
	rows := []*ParsedRow{
		validRow(1),
		{Number: 2, Drawing: "P-2", TypeRaw: "Support", QuantityRaw: "2", CommodityCode: "SUP-1"},
		{Number: 3, Drawing: "P-3", TypeRaw: "Gasket", QuantityRaw: "1", CommodityCode: "X"},
		{Number: 4, Drawing: "", TypeRaw: "Valve", QuantityRaw: "1", CommodityCode: "X"},
	}
	keys := CandidateKeys(rows)
	assert.Equal(t, []IdentityKey{
		"P-2::SUP-1::::1",
		"P-2::SUP-1::::2",
		"P-91010::VLV-GATE-6::6::1",
	}, keys)

	// The pre-pass must not mutate the rows it inspects.
	assert.Zero(t, rows[0].Quantity)
	assert.Empty(t, rows[0].Category)
}
