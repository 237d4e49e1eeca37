package repository

import (
	"context"

	"skyline-ingest/internal/domain/entity"
)

// ScheduleRepository defines the interface for external timetable lookups.
// A failed lookup is an error to the caller, which degrades it to "no
// enrichment"; implementations must tolerate any subset of response fields
// being absent.
type ScheduleRepository interface {
	Lookup(ctx context.Context, key entity.ScheduleLookupKey) (*entity.ScheduleLookupResult, error)
}
