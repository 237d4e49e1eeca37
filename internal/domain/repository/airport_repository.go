package repository

import (
	"context"

	"skyline-ingest/internal/domain/entity"
)

// AirportRepository defines the interface for airport master data.
type AirportRepository interface {
	GetByAirportCode(ctx context.Context, code string) (*entity.Airport, error)
}
