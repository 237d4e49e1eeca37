package usecase

import (
	"context"

	"skyline-ingest/internal/domain/entity"
)

// CaptureHandlerAdapter adapts the TicketProcessor to the CaptureHandler
// interface for a fixed set of capture sources.
type CaptureHandlerAdapter struct {
	processor interface {
		ProcessCapture(ctx context.Context, capture *entity.RawCapture) (*entity.FlightTicketRecord, error)
	}
	name    string
	sources []entity.CaptureSource
}

// NewCaptureHandlerAdapter creates a new capture handler adapter
func NewCaptureHandlerAdapter(processor interface {
	ProcessCapture(ctx context.Context, capture *entity.RawCapture) (*entity.FlightTicketRecord, error)
}, name string, sources []entity.CaptureSource) *CaptureHandlerAdapter {
	return &CaptureHandlerAdapter{
		processor: processor,
		name:      name,
		sources:   sources,
	}
}

// CanHandle checks if this handler covers the capture source
func (a *CaptureHandlerAdapter) CanHandle(source entity.CaptureSource) bool {
	for _, s := range a.sources {
		if s == source {
			return true
		}
	}
	return false
}

// Process runs the capture through the processor
func (a *CaptureHandlerAdapter) Process(ctx context.Context, capture *entity.RawCapture) (*entity.FlightTicketRecord, error) {
	return a.processor.ProcessCapture(ctx, capture)
}
