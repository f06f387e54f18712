package persistence

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/fieldtrak/fieldtrak/modules/takeoff/domain/entities/component"
	"github.com/fieldtrak/fieldtrak/modules/takeoff/domain/entities/drawing"
	"github.com/fieldtrak/fieldtrak/modules/takeoff/domain/importer"
	"github.com/fieldtrak/fieldtrak/modules/takeoff/infrastructure/persistence/models"
	"github.com/fieldtrak/fieldtrak/pkg/mapping"
)

func toDomainDrawing(m *models.Drawing) (*drawing.Drawing, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	projectID, err := uuid.Parse(m.ProjectID)
	if err != nil {
		return nil, err
	}
	return drawing.New(
		projectID,
		m.Number,
		drawing.WithID(id),
		drawing.WithCreated(m.Created),
		drawing.WithCreatedAt(m.CreatedAt),
		drawing.WithUpdatedAt(m.UpdatedAt),
	), nil
}

func toDBComponent(c *component.Component) (*models.Component, error) {
	var attributes []byte
	if len(c.Attributes()) > 0 {
		data, err := json.Marshal(c.Attributes())
		if err != nil {
			return nil, err
		}
		attributes = data
	}
	m := &models.Component{
		ID:            c.ID().String(),
		ProjectID:     c.ProjectID().String(),
		DrawingID:     c.DrawingID().String(),
		IdentityKey:   string(c.IdentityKey()),
		Category:      string(c.Category()),
		CommodityCode: c.CommodityCode(),
		Size:          mapping.ValueToSQLNullString(c.Size()),
		Spec:          mapping.ValueToSQLNullString(c.Spec()),
		Sequence:      c.Sequence(),
		Description:   mapping.ValueToSQLNullString(c.Description()),
		SpoolID:       mapping.ValueToSQLNullString(c.SpoolID()),
		WeldID:        mapping.ValueToSQLNullString(c.WeldID()),
		Insulation:    mapping.ValueToSQLNullString(c.Insulation()),
		PaintCode:     mapping.ValueToSQLNullString(c.PaintCode()),
		HeatTrace:     mapping.ValueToSQLNullString(c.HeatTrace()),
		Material:      mapping.ValueToSQLNullString(c.Material()),
		Attributes:    attributes,
		CreatedAt:     c.CreatedAt(),
		UpdatedAt:     c.UpdatedAt(),
	}
	if c.AreaID() != nil {
		m.AreaID = mapping.ValueToSQLNullString(c.AreaID().String())
	}
	if c.SystemID() != nil {
		m.SystemID = mapping.ValueToSQLNullString(c.SystemID().String())
	}
	return m, nil
}

func toDomainComponent(m *models.Component) (*component.Component, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	projectID, err := uuid.Parse(m.ProjectID)
	if err != nil {
		return nil, err
	}
	drawingID, err := uuid.Parse(m.DrawingID)
	if err != nil {
		return nil, err
	}

	opts := []component.Option{
		component.WithID(id),
		component.WithSize(mapping.SQLNullStringToValue(m.Size)),
		component.WithSpec(mapping.SQLNullStringToValue(m.Spec)),
		component.WithSequence(m.Sequence),
		component.WithDescription(mapping.SQLNullStringToValue(m.Description)),
		component.WithSpoolID(mapping.SQLNullStringToValue(m.SpoolID)),
		component.WithWeldID(mapping.SQLNullStringToValue(m.WeldID)),
		component.WithInsulation(mapping.SQLNullStringToValue(m.Insulation)),
		component.WithPaintCode(mapping.SQLNullStringToValue(m.PaintCode)),
		component.WithHeatTrace(mapping.SQLNullStringToValue(m.HeatTrace)),
		component.WithMaterial(mapping.SQLNullStringToValue(m.Material)),
		component.WithCreatedAt(m.CreatedAt),
		component.WithUpdatedAt(m.UpdatedAt),
	}

	if m.AreaID.Valid {
		areaID, err := uuid.Parse(m.AreaID.String)
		if err != nil {
			return nil, err
		}
		opts = append(opts, component.WithArea(&areaID))
	}
	if m.SystemID.Valid {
		systemID, err := uuid.Parse(m.SystemID.String)
		if err != nil {
			return nil, err
		}
		opts = append(opts, component.WithSystem(&systemID))
	}
	if len(m.Attributes) > 0 {
		attributes := make(map[string]string)
		if err := json.Unmarshal(m.Attributes, &attributes); err != nil {
			return nil, err
		}
		opts = append(opts, component.WithAttributes(attributes))
	}

	return component.New(
		projectID,
		drawingID,
		importer.IdentityKey(m.IdentityKey),
		importer.Category(m.Category),
		m.CommodityCode,
		opts...,
	), nil
}
