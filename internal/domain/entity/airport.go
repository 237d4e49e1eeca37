package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airport is airport master data keyed by IATA code. The pipeline uses it to
// reject heuristically extracted codes that match no known airport.
type Airport struct {
	ID          uint
	AirportCode string
	AirportName string
	CityCode    string
	CityName    string
	GmtTz       string
	TzName      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt
}
