package importer

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strconv"
	"strings"
)

// Validation holds one result per input row plus the intra-file identity key
// index. count(valid) + count(skipped) + count(error) always equals the
// number of input rows.
type Validation struct {
	Results []ValidationResult

	keyOwner  map[IdentityKey]int
	rowIndex  map[int]int
	storeHits int
}

// Valid returns the rows accepted into the executor payload, in file order.
func (v *Validation) Valid() []*ParsedRow {
	var out []*ParsedRow
	for _, r := range v.Results {
		if r.Status == StatusValid {
			out = append(out, r.Row)
		}
	}
	return out
}

func (v *Validation) Counts() (valid, skipped, errs int) {
	for _, r := range v.Results {
		switch r.Status {
		case StatusValid:
			valid++
		case StatusSkipped:
			skipped++
		case StatusError:
			errs++
		}
	}
	return valid, skipped, errs
}

// Blocking reports whether any row prevents the import from proceeding.
func (v *Validation) Blocking() bool {
	for _, r := range v.Results {
		if r.Status == StatusError {
			return true
		}
	}
	return false
}

// ValidateRows classifies every row as valid, skipped or error. Checks run
// in a fixed order and the first failing check wins. The function is
// deterministic given the same rows and store snapshot; it runs once to
// build the preview and again inside the import transaction.
//
// After every yieldEvery rows the loop hands the scheduler back so large
// files do not monopolize it; yielding never changes the computed result.
func ValidateRows(ctx context.Context, rows []*ParsedRow, existing map[IdentityKey]struct{}, yieldEvery int) (*Validation, error) {
	v := &Validation{
		Results:  make([]ValidationResult, len(rows)),
		keyOwner: make(map[IdentityKey]int),
		rowIndex: make(map[int]int, len(rows)),
	}

	for i, row := range rows {
		if yieldEvery > 0 && i > 0 && i%yieldEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			runtime.Gosched()
		}

		v.rowIndex[row.Number] = i
		v.Results[i] = validateRow(row, v, existing)
	}

	return v, nil
}

func validateRow(row *ParsedRow, v *Validation, existing map[IdentityKey]struct{}) ValidationResult {
	if missing := missingRequired(row); len(missing) > 0 {
		return ValidationResult{
			RowNumber: row.Number,
			Status:    StatusError,
			Reason:    ReasonMissingRequiredField,
			Message:   "missing required field(s): " + strings.Join(missing, ", "),
			Row:       row,
		}
	}

	category, ok := ParseCategory(row.TypeRaw)
	if !ok {
		return ValidationResult{
			RowNumber: row.Number,
			Status:    StatusSkipped,
			Reason:    ReasonUnsupportedType,
			Message:   fmt.Sprintf("unsupported type %q", strings.TrimSpace(row.TypeRaw)),
			Row:       row,
		}
	}
	row.Category = category

	quantity, err := strconv.Atoi(strings.TrimSpace(row.QuantityRaw))
	if err != nil || quantity < 0 {
		return ValidationResult{
			RowNumber: row.Number,
			Status:    StatusSkipped,
			Reason:    ReasonInvalidOrZeroQuantity,
			Message:   fmt.Sprintf("quantity %q is not a non-negative integer", strings.TrimSpace(row.QuantityRaw)),
			Row:       row,
		}
	}
	if quantity == 0 {
		return ValidationResult{
			RowNumber: row.Number,
			Status:    StatusSkipped,
			Reason:    ReasonInvalidOrZeroQuantity,
			Message:   "quantity is zero: nothing to create",
			Row:       row,
		}
	}
	row.Quantity = quantity

	for _, key := range ExpandKeys(row) {
		if owner, taken := v.keyOwner[key]; taken {
			if owner == row.Number {
				// sequence-less category expanded to N identical keys
				return ValidationResult{
					RowNumber: row.Number,
					Status:    StatusError,
					Reason:    ReasonDuplicateIdentityKey,
					Message:   fmt.Sprintf("quantity expansion repeats identity key %q for a category without a sequence", key),
					Row:       row,
				}
			}
			v.flagDuplicate(owner, row.Number, key)
			return ValidationResult{
				RowNumber:   row.Number,
				Status:      StatusError,
				Reason:      ReasonDuplicateIdentityKey,
				Message:     fmt.Sprintf("duplicate identity key %q (also row %d)", key, owner),
				DuplicateOf: owner,
				Row:         row,
			}
		}
		if _, found := existing[key]; found {
			v.storeHits++
			return ValidationResult{
				RowNumber: row.Number,
				Status:    StatusError,
				Reason:    ReasonDuplicateIdentityKey,
				Message:   fmt.Sprintf("identity key %q already exists", key),
				Row:       row,
			}
		}
		v.keyOwner[key] = row.Number
	}

	return ValidationResult{
		RowNumber: row.Number,
		Status:    StatusValid,
		Row:       row,
	}
}

// flagDuplicate retroactively turns the first claimant of a colliding key
// into an error so both rows surface the conflict.
func (v *Validation) flagDuplicate(ownerNumber, otherNumber int, key IdentityKey) {
	idx, ok := v.rowIndex[ownerNumber]
	if !ok {
		return
	}
	result := &v.Results[idx]
	if result.Status == StatusError {
		return
	}
	result.Status = StatusError
	result.Reason = ReasonDuplicateIdentityKey
	result.Message = fmt.Sprintf("duplicate identity key %q (also row %d)", key, otherNumber)
	result.DuplicateOf = otherNumber
}

func missingRequired(row *ParsedRow) []string {
	var missing []string
	if row.Drawing == "" {
		missing = append(missing, string(FieldDrawing))
	}
	if strings.TrimSpace(row.TypeRaw) == "" {
		missing = append(missing, string(FieldType))
	}
	if strings.TrimSpace(row.QuantityRaw) == "" {
		missing = append(missing, string(FieldQuantity))
	}
	if row.CommodityCode == "" {
		missing = append(missing, string(FieldCommodityCode))
	}
	return missing
}

// CandidateKeys computes every identity key the file could try to insert,
// applying the same category and quantity rules as validation without
// touching the rows. Used to fetch the store snapshot in one batched lookup.
func CandidateKeys(rows []*ParsedRow) []IdentityKey {
	seen := make(map[IdentityKey]struct{})
	var keys []IdentityKey
	for _, row := range rows {
		if len(missingRequired(row)) > 0 {
			continue
		}
		category, ok := ParseCategory(row.TypeRaw)
		if !ok {
			continue
		}
		quantity, err := strconv.Atoi(strings.TrimSpace(row.QuantityRaw))
		if err != nil || quantity <= 0 {
			continue
		}
		candidate := *row
		candidate.Category = category
		candidate.Quantity = quantity
		for _, key := range ExpandKeys(&candidate) {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
