package dtos

import (
	"github.com/google/uuid"

	"github.com/fieldtrak/fieldtrak/modules/takeoff/domain/importer"
)

// ImportRequest is the confirmed payload posted after preview. It mirrors
// the preview response the client received; the server re-derives everything
// it does not trust.
type ImportRequest struct {
	Rows               []*importer.ParsedRow               `json:"rows" validate:"required,min=1,dive,required"`
	FieldMappings      []importer.FieldMapping             `json:"fieldMappings"`
	DimensionsToCreate map[importer.DimensionType][]string `json:"dimensionsToCreate"`
}

func (r *ImportRequest) ToPayload(projectID uuid.UUID) *importer.ImportPayload {
	return &importer.ImportPayload{
		ProjectID:          projectID,
		Rows:               r.Rows,
		Mappings:           r.FieldMappings,
		DimensionsToCreate: r.DimensionsToCreate,
	}
}
