package importer

import "github.com/google/uuid"

// ImportPayload is the complete client-validated unit sent to the executor.
// Skipped rows are excluded before the payload is built; the executor never
// sees them.
type ImportPayload struct {
	ProjectID          uuid.UUID                  `json:"projectId" validate:"required"`
	Rows               []*ParsedRow               `json:"rows" validate:"required,min=1"`
	Mappings           []FieldMapping             `json:"fieldMappings"`
	DimensionsToCreate map[DimensionType][]string `json:"dimensionsToCreate,omitempty"`
}

// RowError is one blocking row in a failed import.
type RowError struct {
	Row     int    `json:"row"`
	Issue   string `json:"issue"`
	Context string `json:"context,omitempty"`
}

// ImportResult reports a committed import or a structured failure. Partial
// success is not representable: on failure every count is zero.
type ImportResult struct {
	Success bool `json:"success"`

	ComponentsCreated int                   `json:"recordsCreated"`
	DrawingsCreated   int                   `json:"containersCreated"`
	DrawingsReused    int                   `json:"containersReused"`
	DimensionsCreated map[DimensionType]int `json:"dimensionsCreated,omitempty"`
	ByCategory        map[Category]int      `json:"recordsByCategory,omitempty"`

	DurationMs int64 `json:"durationMs"`

	Error   string     `json:"error,omitempty"`
	Details []RowError `json:"details,omitempty"`
}

// Failure builds the zero-count result for an aborted attempt.
func Failure(message string, details []RowError, durationMs int64) *ImportResult {
	return &ImportResult{
		Success:    false,
		Error:      message,
		Details:    details,
		DurationMs: durationMs,
	}
}
