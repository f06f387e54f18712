package importer

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Confidence tiers, strictly ordered. First match wins per header.
const (
	ConfidenceExact           = 100
	ConfidenceCaseInsensitive = 95
	ConfidenceSynonym         = 85
)

const (
	TierExact           = "exact"
	TierCaseInsensitive = "case_insensitive"
	TierSynonym         = "synonym"
)

// FieldMapping associates one raw header with exactly one canonical field.
type FieldMapping struct {
	RawHeader  string `json:"rawHeader"`
	Field      Field  `json:"canonicalField"`
	Confidence int    `json:"confidence"`
	Tier       string `json:"tier"`
}

// AmbiguousMapping records two raw headers resolving to the same canonical
// field. Ambiguity is a blocking condition and is never auto-corrected.
type AmbiguousMapping struct {
	Field  Field  `json:"canonicalField"`
	First  string `json:"firstHeader"`
	Second string `json:"secondHeader"`
}

// MappingResult is the column mapper's full output for one file.
type MappingResult struct {
	Mappings        []FieldMapping      `json:"mappings"`
	Unmapped        []string            `json:"unmappedHeaders"`
	Suggestions     map[string][]string `json:"suggestions,omitempty"`
	MissingRequired []Field             `json:"missingRequiredFields"`
	Ambiguous       []AmbiguousMapping  `json:"ambiguousMappings"`

	headerField map[string]Field
}

// Blocked reports whether mapping alone prevents the import: an ambiguous
// header collision or a required field with no match.
func (m *MappingResult) Blocked() bool {
	return len(m.Ambiguous) > 0 || len(m.MissingRequired) > 0
}

// FieldFor resolves the canonical field a raw header mapped to.
func (m *MappingResult) FieldFor(header string) (Field, bool) {
	f, ok := m.headerField[header]
	return f, ok
}

// MapHeaders resolves raw headers to canonical fields using the three-tier
// algorithm: byte-for-byte equality (100), case-insensitive equality (95),
// then the static synonym table (85). Unmatched headers are not an error;
// their values ride along as opaque attributes.
func MapHeaders(headers []string) *MappingResult {
	result := &MappingResult{
		headerField: make(map[string]Field, len(headers)),
	}
	claimed := make(map[Field]string, len(headers))

	for _, header := range headers {
		field, tier, ok := matchHeader(header)
		if !ok {
			result.Unmapped = append(result.Unmapped, header)
			continue
		}
		if first, taken := claimed[field]; taken {
			result.Ambiguous = append(result.Ambiguous, AmbiguousMapping{
				Field:  field,
				First:  first,
				Second: header,
			})
			continue
		}
		claimed[field] = header
		result.headerField[header] = field
		confidence := ConfidenceExact
		switch tier {
		case TierCaseInsensitive:
			confidence = ConfidenceCaseInsensitive
		case TierSynonym:
			confidence = ConfidenceSynonym
		}
		result.Mappings = append(result.Mappings, FieldMapping{
			RawHeader:  header,
			Field:      field,
			Confidence: confidence,
			Tier:       tier,
		})
	}

	for _, required := range RequiredFields {
		if _, ok := claimed[required]; !ok {
			result.MissingRequired = append(result.MissingRequired, required)
		}
	}

	if len(result.Unmapped) > 0 {
		result.Suggestions = suggestHeaders(result.Unmapped)
	}

	return result
}

func matchHeader(header string) (Field, string, bool) {
	for _, field := range AllFields() {
		if header == string(field) {
			return field, TierExact, true
		}
	}
	for _, field := range AllFields() {
		if strings.EqualFold(header, string(field)) {
			return field, TierCaseInsensitive, true
		}
	}
	needle := strings.ToLower(collapseWhitespace(strings.TrimSpace(header)))
	for _, field := range AllFields() {
		for _, syn := range synonyms[field] {
			if needle == syn {
				return field, TierSynonym, true
			}
		}
	}
	return "", "", false
}

// suggestHeaders offers near-miss candidates for headers that matched no
// tier. Advisory only: suggestions are never applied automatically.
func suggestHeaders(unmapped []string) map[string][]string {
	candidates := make([]string, 0, 64)
	for _, field := range AllFields() {
		candidates = append(candidates, string(field))
		candidates = append(candidates, synonyms[field]...)
	}

	out := make(map[string][]string, len(unmapped))
	for _, header := range unmapped {
		ranks := fuzzy.RankFindNormalizedFold(strings.TrimSpace(header), candidates)
		sort.Sort(ranks)
		var picks []string
		for _, r := range ranks {
			if r.Distance > len(r.Target) {
				continue
			}
			picks = append(picks, r.Target)
			if len(picks) == 3 {
				break
			}
		}
		if len(picks) > 0 {
			out[header] = picks
		}
	}
	return out
}
