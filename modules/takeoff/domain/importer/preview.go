package importer

// Preview is the read-only summary shown for user confirmation. It is
// advisory: the executor revalidates from scratch against current store
// state, so a stale preview may legally differ from the final outcome.
type Preview struct {
	Mappings        []FieldMapping      `json:"fieldMappings"`
	UnmappedHeaders []string            `json:"unmappedHeaders,omitempty"`
	Suggestions     map[string][]string `json:"suggestions,omitempty"`

	TotalRows    int `json:"totalRows"`
	ValidCount   int `json:"validCount"`
	SkippedCount int `json:"skippedCount"`
	ErrorCount   int `json:"errorCount"`

	SkippedByReason map[ReasonCode]int `json:"skippedByReason,omitempty"`
	ErrorsByReason  map[ReasonCode]int `json:"errorsByReason,omitempty"`

	// Issues lists every skipped and error row with its 1-based number.
	Issues []ValidationResult `json:"issues,omitempty"`

	SampleRows []*ParsedRow         `json:"sampleRows,omitempty"`
	Dimensions []DimensionDiscovery `json:"dimensions,omitempty"`

	// Blocking is true while any error row remains; skipped rows never
	// block.
	Blocking bool `json:"blocking"`
}

// AssemblePreview combines mapping, validation and discovery outputs into
// one summary object.
func AssemblePreview(mapping *MappingResult, v *Validation, dims []DimensionDiscovery, sampleSize int) *Preview {
	p := &Preview{
		Mappings:        mapping.Mappings,
		UnmappedHeaders: mapping.Unmapped,
		Suggestions:     mapping.Suggestions,
		TotalRows:       len(v.Results),
		Dimensions:      dims,
	}

	for _, result := range v.Results {
		switch result.Status {
		case StatusValid:
			p.ValidCount++
			if len(p.SampleRows) < sampleSize {
				p.SampleRows = append(p.SampleRows, result.Row)
			}
		case StatusSkipped:
			p.SkippedCount++
			if p.SkippedByReason == nil {
				p.SkippedByReason = make(map[ReasonCode]int)
			}
			p.SkippedByReason[result.Reason]++
			p.Issues = append(p.Issues, result)
		case StatusError:
			p.ErrorCount++
			if p.ErrorsByReason == nil {
				p.ErrorsByReason = make(map[ReasonCode]int)
			}
			p.ErrorsByReason[result.Reason]++
			p.Issues = append(p.Issues, result)
		}
	}

	p.Blocking = p.ErrorCount > 0
	return p
}
