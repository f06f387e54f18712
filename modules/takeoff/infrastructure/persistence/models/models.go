package models

import (
	"database/sql"
	"time"
)

type Drawing struct {
	ID        string
	ProjectID string
	Number    string
	Created   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Area struct {
	ID        string
	ProjectID string
	Name      string
	CreatedAt time.Time
}

type System struct {
	ID        string
	ProjectID string
	Name      string
	CreatedAt time.Time
}

type Component struct {
	ID            string
	ProjectID     string
	DrawingID     string
	AreaID        sql.NullString
	SystemID      sql.NullString
	IdentityKey   string
	Category      string
	CommodityCode string
	Size          sql.NullString
	Spec          sql.NullString
	Sequence      int
	Description   sql.NullString
	SpoolID       sql.NullString
	WeldID        sql.NullString
	Insulation    sql.NullString
	PaintCode     sql.NullString
	HeatTrace     sql.NullString
	Material      sql.NullString
	Attributes    []byte
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
