package router

import (
	"skyline-ingest/internal/domain/entity"
	"skyline-ingest/internal/usecase"
	"skyline-ingest/pkg/logger"
)

// SourceRouter routes captures to the appropriate handler based on their
// capture source.
type SourceRouter struct {
	handlers []usecase.CaptureHandler
	logger   logger.Logger
}

// NewSourceRouter creates a new source router
func NewSourceRouter(logger logger.Logger) *SourceRouter {
	return &SourceRouter{
		handlers: make([]usecase.CaptureHandler, 0),
		logger:   logger,
	}
}

// Register registers a handler for specific capture sources
func (r *SourceRouter) Register(handler usecase.CaptureHandler) {
	r.handlers = append(r.handlers, handler)
	r.logger.Info("Registered capture handler", "handler", handler)
}

// GetHandler returns the appropriate handler for a given capture source
func (r *SourceRouter) GetHandler(source entity.CaptureSource) usecase.CaptureHandler {
	for _, handler := range r.handlers {
		if handler.CanHandle(source) {
			return handler
		}
	}
	return nil
}
