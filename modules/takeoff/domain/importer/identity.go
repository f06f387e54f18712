package importer

import (
	"strconv"
	"strings"
)

// IdentityKey is the deterministic composite distinguishing one candidate
// component from every other, within a file and against the store. The same
// computation runs on the preview path and inside the import transaction;
// the two must never diverge.
type IdentityKey string

const keySep = "::"

// KeyFor computes the identity key for one candidate at the given sequence.
// Key shape is category specific:
//   - Spool: the piece mark alone identifies the component.
//   - Field Weld: one weld per drawing+weld+size, no sequence.
//   - everything else: drawing, commodity code, size and sequence.
func KeyFor(row *ParsedRow, seq int) IdentityKey {
	switch row.Category {
	case CategorySpool:
		return IdentityKey("SPOOL" + keySep + spoolRef(row))
	case CategoryFieldWeld:
		return IdentityKey(strings.Join([]string{row.Drawing, weldRef(row), row.Size}, keySep))
	default:
		return IdentityKey(strings.Join([]string{row.Drawing, row.CommodityCode, row.Size, strconv.Itoa(seq)}, keySep))
	}
}

// ExpandKeys performs quantity expansion: a row with quantity N yields N
// candidate keys with sequence 1..N. Categories whose key omits the sequence
// produce identical keys for N > 1, which the duplicate check then rejects.
func ExpandKeys(row *ParsedRow) []IdentityKey {
	if row.Quantity <= 0 {
		return nil
	}
	keys := make([]IdentityKey, 0, row.Quantity)
	for seq := 1; seq <= row.Quantity; seq++ {
		keys = append(keys, KeyFor(row, seq))
	}
	return keys
}

func spoolRef(row *ParsedRow) string {
	if row.SpoolID != "" {
		return row.SpoolID
	}
	return row.CommodityCode
}

func weldRef(row *ParsedRow) string {
	if row.WeldID != "" {
		return row.WeldID
	}
	return row.CommodityCode
}
