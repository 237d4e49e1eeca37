package repository

import (
	"context"

	"skyline-ingest/internal/domain/entity"
)

// TicketRepository defines the interface for the ticket collection. The
// collection is append-only; the pipeline never updates or deletes a record,
// and repeated scans of the same document produce distinct records.
type TicketRepository interface {
	Append(ctx context.Context, record *entity.FlightTicketRecord) error
	FindAll(ctx context.Context) ([]entity.FlightTicketRecord, error)
}
