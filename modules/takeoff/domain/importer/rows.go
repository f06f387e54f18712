package importer

// ParsedRow is one input row after mapping: canonical required values,
// optional grouping attributes, and the unmapped header/value pairs carried
// through untouched. Immutable once built; row numbering is 1-based with the
// header excluded.
type ParsedRow struct {
	Number int `json:"row"`

	Drawing       string `json:"drawing"`
	TypeRaw       string `json:"type"`
	QuantityRaw   string `json:"quantity"`
	CommodityCode string `json:"commodityCode"`

	Size        string `json:"size,omitempty"`
	Spec        string `json:"spec,omitempty"`
	Area        string `json:"area,omitempty"`
	System      string `json:"system,omitempty"`
	Description string `json:"description,omitempty"`
	SpoolID     string `json:"spoolId,omitempty"`
	WeldID      string `json:"weldId,omitempty"`
	Insulation  string `json:"insulation,omitempty"`
	PaintCode   string `json:"paintCode,omitempty"`
	HeatTrace   string `json:"heatTrace,omitempty"`
	Material    string `json:"material,omitempty"`

	Attributes map[string]string `json:"unmappedAttributes,omitempty"`

	// Filled by the validator once the row passes categorization.
	Category Category `json:"category,omitempty"`
	Quantity int      `json:"-"`
}

// BuildRow constructs a ParsedRow from one record using the mapping result.
// Canonical values are normalized here so preview and executor agree on
// identity; unmapped cells keep their raw text.
func BuildRow(number int, headers []string, record []string, mapping *MappingResult) *ParsedRow {
	row := &ParsedRow{Number: number}
	for i, header := range headers {
		value := ""
		if i < len(record) {
			value = record[i]
		}
		field, ok := mapping.FieldFor(header)
		if !ok {
			if value != "" {
				if row.Attributes == nil {
					row.Attributes = make(map[string]string)
				}
				row.Attributes[header] = value
			}
			continue
		}
		switch field {
		case FieldDrawing:
			row.Drawing = NormalizeDrawing(value)
		case FieldType:
			row.TypeRaw = value
		case FieldQuantity:
			row.QuantityRaw = value
		case FieldCommodityCode:
			row.CommodityCode = NormalizeLabel(value)
		case FieldSize:
			row.Size = NormalizeSize(value)
		case FieldSpec:
			row.Spec = NormalizeLabel(value)
		case FieldArea:
			row.Area = NormalizeLabel(value)
		case FieldSystem:
			row.System = NormalizeLabel(value)
		case FieldDescription:
			row.Description = value
		case FieldSpoolID:
			row.SpoolID = NormalizeLabel(value)
		case FieldWeldID:
			row.WeldID = NormalizeLabel(value)
		case FieldInsulation:
			row.Insulation = NormalizeLabel(value)
		case FieldPaintCode:
			row.PaintCode = NormalizeLabel(value)
		case FieldHeatTrace:
			row.HeatTrace = NormalizeLabel(value)
		case FieldMaterial:
			row.Material = NormalizeLabel(value)
		}
	}
	return row
}

// Renormalized returns a copy of the row with every canonical field passed
// through its normalizer again. Payload rows are echoed back by the client
// after preview; the executor must not trust that the echo is still
// canonical, or an un-normalized drawing would compute a different identity
// key and slip past deduplication. Normalizers are idempotent, so rows that
// were already canonical come back unchanged.
func (r *ParsedRow) Renormalized() *ParsedRow {
	c := *r
	c.Drawing = NormalizeDrawing(r.Drawing)
	c.CommodityCode = NormalizeLabel(r.CommodityCode)
	c.Size = NormalizeSize(r.Size)
	c.Spec = NormalizeLabel(r.Spec)
	c.Area = NormalizeLabel(r.Area)
	c.System = NormalizeLabel(r.System)
	c.SpoolID = NormalizeLabel(r.SpoolID)
	c.WeldID = NormalizeLabel(r.WeldID)
	c.Insulation = NormalizeLabel(r.Insulation)
	c.PaintCode = NormalizeLabel(r.PaintCode)
	c.HeatTrace = NormalizeLabel(r.HeatTrace)
	c.Material = NormalizeLabel(r.Material)
	return &c
}

// RenormalizeRows renormalizes every row, leaving the originals untouched.
func RenormalizeRows(rows []*ParsedRow) []*ParsedRow {
	out := make([]*ParsedRow, len(rows))
	for i, row := range rows {
		out[i] = row.Renormalized()
	}
	return out
}

// RowStatus is the closed three-way classification of a validated row.
type RowStatus int

const (
	StatusValid RowStatus = iota
	StatusSkipped
	StatusError
)

func (s RowStatus) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusSkipped:
		return "skipped"
	case StatusError:
		return "error"
	}
	return "unknown"
}

func (s RowStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// ReasonCode tags why a row was skipped or rejected.
type ReasonCode string

const (
	ReasonMissingRequiredField  ReasonCode = "missing_required_field"
	ReasonUnsupportedType       ReasonCode = "unsupported_type"
	ReasonInvalidOrZeroQuantity ReasonCode = "invalid_or_zero_quantity"
	ReasonDuplicateIdentityKey  ReasonCode = "duplicate_identity_key"
)

// ValidationResult tags exactly one input row with its status. Skipped rows
// never block an import; error rows always do.
type ValidationResult struct {
	RowNumber   int        `json:"row"`
	Status      RowStatus  `json:"status"`
	Reason      ReasonCode `json:"reason,omitempty"`
	Message     string     `json:"message,omitempty"`
	DuplicateOf int        `json:"duplicateOf,omitempty"`
	Row         *ParsedRow `json:"-"`
}
