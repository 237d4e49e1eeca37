package usecase

import (
	"strings"
	"time"

	"skyline-ingest/internal/domain/entity"
)

// TicketFields is the unified draft field set handed to the assembler.
// Both the barcode decoder and the heuristic extractor reduce to this shape;
// every field is optional.
type TicketFields struct {
	PassengerName    *string
	FlightNumber     *string
	FlightDate       *string
	OriginAirport    *string
	DestAirport      *string
	Seat             *string
	BookingReference *string
	DepartureTime    *string
	ArrivalTime      *string
}

// CaptureMeta carries the capture-level attributes that end up on the record
// unchanged.
type CaptureMeta struct {
	BarcodeType string
	RawPayload  string
	Source      string
}

// AssembleRecord builds the canonical ticket record from a draft field set.
// The output always carries the full key set no matter how many inputs were
// nil, so downstream consumers never see a missing key.
func AssembleRecord(fields TicketFields, meta CaptureMeta, now time.Time) *entity.FlightTicketRecord {
	barcodeType := strings.ToUpper(strings.TrimSpace(meta.BarcodeType))
	if barcodeType == "" {
		barcodeType = "UNKNOWN"
	}

	return &entity.FlightTicketRecord{
		Passenger: entity.PassengerInfo{
			Name: fields.PassengerName,
		},
		Flight: entity.FlightInfo{
			Number: fields.FlightNumber,
			Date:   fields.FlightDate,
			Departure: entity.LegInfo{
				Airport:       fields.OriginAirport,
				ScheduledTime: fields.DepartureTime,
			},
			Arrival: entity.LegInfo{
				Airport:       fields.DestAirport,
				ScheduledTime: fields.ArrivalTime,
			},
		},
		Seat:             fields.Seat,
		BookingReference: fields.BookingReference,
		BarcodeType:      barcodeType,
		RawPayload:       meta.RawPayload,
		CapturedAt:       now,
		Source:           meta.Source,
	}
}

// MergeSchedule folds a timetable lookup result into a copy of the record.
// Absent lookup fields never overwrite known values, airport codes are never
// replaced, and status is only set while the record has none.
func MergeSchedule(record *entity.FlightTicketRecord, result *entity.ScheduleLookupResult) *entity.FlightTicketRecord {
	merged := record.Clone()
	if result == nil {
		return merged
	}

	if result.DepartureScheduled != nil {
		merged.Flight.Departure.ScheduledTime = result.DepartureScheduled
	}
	if result.DepartureActual != nil {
		merged.Flight.Departure.ActualTime = result.DepartureActual
	}
	if result.ArrivalScheduled != nil {
		merged.Flight.Arrival.ScheduledTime = result.ArrivalScheduled
	}
	if result.ArrivalActual != nil {
		merged.Flight.Arrival.ActualTime = result.ArrivalActual
	}
	if merged.Flight.Status == nil && result.Status != nil {
		merged.Flight.Status = result.Status
	}

	return merged
}
