package repository

import (
	"context"

	"skyline-ingest/internal/domain/entity"
)

// AirlineRepository defines the interface for airline master data.
type AirlineRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Airline, error)
}
