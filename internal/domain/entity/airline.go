package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airline is carrier master data used to sanity-check derived airline codes
// before a schedule lookup is attempted.
type Airline struct {
	ID        uint
	Code      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}
