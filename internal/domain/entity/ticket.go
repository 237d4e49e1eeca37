// internal/domain/entity/ticket.go
package entity

import (
	"time"
)

// CaptureSource identifies the capture adapter that produced a scan.
type CaptureSource string

const (
	SourceCamera  CaptureSource = "camera"
	SourceGallery CaptureSource = "gallery"
	SourceOCR     CaptureSource = "ocr"
)

// LegInfo describes one end of a flight. ScheduledTime and ActualTime are
// HH:MM strings filled in by schedule enrichment.
type LegInfo struct {
	Airport       *string `json:"airport" bson:"airport"`
	ScheduledTime *string `json:"scheduledTime" bson:"scheduledTime"`
	ActualTime    *string `json:"actualTime" bson:"actualTime"`
}

// PassengerInfo holds passenger identity fields.
type PassengerInfo struct {
	Name *string `json:"name" bson:"name"`
}

// FlightInfo holds the flight portion of a ticket record.
type FlightInfo struct {
	Number    *string `json:"number" bson:"number"`
	Date      *string `json:"date" bson:"date"`
	Departure LegInfo `json:"departure" bson:"departure"`
	Arrival   LegInfo `json:"arrival" bson:"arrival"`
	Status    *string `json:"status" bson:"status"`
}

// FlightTicketRecord is the canonical output of the ingestion pipeline. Every
// key is always serialized, possibly as null; consumers rely on the fixed
// shape. Once assembled a record is immutable and only ever appended to the
// collection.
type FlightTicketRecord struct {
	Passenger        PassengerInfo `json:"passenger" bson:"passenger"`
	Flight           FlightInfo    `json:"flight" bson:"flight"`
	Seat             *string       `json:"seat" bson:"seat"`
	BookingReference *string       `json:"bookingReference" bson:"bookingReference"`
	BarcodeType      string        `json:"barcodeType" bson:"barcodeType"`
	RawPayload       string        `json:"rawPayload" bson:"rawPayload"`
	CapturedAt       time.Time     `json:"capturedAt" bson:"capturedAt"`
	Source           string        `json:"source" bson:"source"`
}

// Clone returns a deep copy so enrichment can produce an updated record
// without mutating the draft it was given.
func (r *FlightTicketRecord) Clone() *FlightTicketRecord {
	c := *r
	c.Passenger.Name = cloneStr(r.Passenger.Name)
	c.Flight.Number = cloneStr(r.Flight.Number)
	c.Flight.Date = cloneStr(r.Flight.Date)
	c.Flight.Status = cloneStr(r.Flight.Status)
	c.Flight.Departure = cloneLeg(r.Flight.Departure)
	c.Flight.Arrival = cloneLeg(r.Flight.Arrival)
	c.Seat = cloneStr(r.Seat)
	c.BookingReference = cloneStr(r.BookingReference)
	return &c
}

func cloneLeg(l LegInfo) LegInfo {
	return LegInfo{
		Airport:       cloneStr(l.Airport),
		ScheduledTime: cloneStr(l.ScheduledTime),
		ActualTime:    cloneStr(l.ActualTime),
	}
}

func cloneStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
