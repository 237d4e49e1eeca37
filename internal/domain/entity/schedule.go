// internal/domain/entity/schedule.go
package entity

// ScheduleLookupKey addresses one flight leg in the external timetable
// service. It is derived deterministically from a flight number and an ISO
// date; when derivation fails no lookup is attempted.
type ScheduleLookupKey struct {
	AirlineCode  string
	FlightNumber string
	DateCompact  string // YYYYMMDD
}

// ScheduleLookupResult carries whatever the timetable service knew about the
// flight. Any subset of fields may be absent.
type ScheduleLookupResult struct {
	DepartureScheduled *string
	DepartureActual    *string
	ArrivalScheduled   *string
	ArrivalActual      *string
	Status             *string
}
