package usecase

import (
	"context"

	"skyline-ingest/internal/domain/entity"
)

// CaptureHandler defines the interface for capture source handlers
type CaptureHandler interface {
	// CanHandle determines if this handler can process the given capture source
	CanHandle(source entity.CaptureSource) bool

	// Process runs the capture through the ingestion pipeline
	Process(ctx context.Context, capture *entity.RawCapture) (*entity.FlightTicketRecord, error)
}

// SourceRouter routes captures to the appropriate handler based on source
type SourceRouter interface {
	// Register registers a handler for specific capture sources
	Register(handler CaptureHandler)

	// GetHandler returns the appropriate handler for a given source
	GetHandler(source entity.CaptureSource) CaptureHandler
}
