package importer

// Field is a canonical takeoff column. Raw spreadsheet headers are resolved
// to fields by the column mapper; everything that does not resolve is carried
// through as an opaque attribute.
type Field string

const (
	FieldDrawing       Field = "drawing"
	FieldType          Field = "type"
	FieldQuantity      Field = "quantity"
	FieldCommodityCode Field = "commodity_code"

	FieldSize        Field = "size"
	FieldSpec        Field = "spec"
	FieldArea        Field = "area"
	FieldSystem      Field = "system"
	FieldDescription Field = "description"
	FieldSpoolID     Field = "spool_id"
	FieldWeldID      Field = "weld_id"
	FieldInsulation  Field = "insulation"
	FieldPaintCode   Field = "paint_code"
	FieldHeatTrace   Field = "heat_trace"
	FieldMaterial    Field = "material"
)

// RequiredFields must all resolve through the column mapper or the file is
// rejected before any row processing.
var RequiredFields = []Field{
	FieldDrawing,
	FieldType,
	FieldQuantity,
	FieldCommodityCode,
}

var OptionalFields = []Field{
	FieldSize,
	FieldSpec,
	FieldArea,
	FieldSystem,
	FieldDescription,
	FieldSpoolID,
	FieldWeldID,
	FieldInsulation,
	FieldPaintCode,
	FieldHeatTrace,
	FieldMaterial,
}

func AllFields() []Field {
	out := make([]Field, 0, len(RequiredFields)+len(OptionalFields))
	out = append(out, RequiredFields...)
	out = append(out, OptionalFields...)
	return out
}

func (f Field) Required() bool {
	for _, r := range RequiredFields {
		if f == r {
			return true
		}
	}
	return false
}

// synonyms is the static tier-3 table. Loaded once, never mutated at
// runtime; matching is case-insensitive with collapsed whitespace.
var synonyms = map[Field][]string{
	FieldDrawing:       {"drawings", "drawing number", "drawing no", "dwg", "dwg no", "dwg number", "sheet", "iso", "isometric"},
	FieldType:          {"component type", "item type", "category", "class"},
	FieldQuantity:      {"qty", "qty reqd", "quantity required", "count"},
	FieldCommodityCode: {"cmdty code", "commodity", "commodity codes", "material code", "item code", "ident code"},
	FieldSize:          {"sizes", "dia", "diameter", "nominal size", "nps", "size 1"},
	FieldSpec:          {"specification", "piping spec", "pipe spec", "spec code"},
	FieldArea:          {"areas", "location", "zone", "unit area"},
	FieldSystem:        {"systems", "test system", "test package", "test pack", "tp"},
	FieldDescription:   {"desc", "item description", "component description"},
	FieldSpoolID:       {"spool", "spool id", "spool number", "spool no", "piece mark"},
	FieldWeldID:        {"weld", "weld id", "weld number", "weld no"},
	FieldInsulation:    {"insul", "insulation type", "insulation spec"},
	FieldPaintCode:     {"paint", "paint spec", "coating"},
	FieldHeatTrace:     {"tracing", "heat tracing", "ht"},
	FieldMaterial:      {"matl", "material of construction", "moc"},
}

// Category is a supported component classification. Unknown classifications
// are expected in real takeoffs and skip their rows without blocking.
type Category string

const (
	CategorySpool        Category = "Spool"
	CategoryPipePiece    Category = "Pipe Piece"
	CategoryValve        Category = "Valve"
	CategoryFitting      Category = "Fitting"
	CategoryFlange       Category = "Flange"
	CategorySupport      Category = "Support"
	CategoryInstrument   Category = "Instrument"
	CategoryFieldWeld    Category = "Field Weld"
	CategoryThreadedPipe Category = "Threaded Pipe"
	CategoryMisc         Category = "Misc"
)

var Categories = []Category{
	CategorySpool,
	CategoryPipePiece,
	CategoryValve,
	CategoryFitting,
	CategoryFlange,
	CategorySupport,
	CategoryInstrument,
	CategoryFieldWeld,
	CategoryThreadedPipe,
	CategoryMisc,
}

// ParseCategory matches a raw classification value case-insensitively
// against the closed category set.
func ParseCategory(raw string) (Category, bool) {
	label := NormalizeLabel(raw)
	for _, c := range Categories {
		if NormalizeLabel(string(c)) == label {
			return c, true
		}
	}
	return "", false
}
