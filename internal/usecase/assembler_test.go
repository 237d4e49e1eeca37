package usecase

import (
	"encoding/json"
	"testing"
	"time"

	"skyline-ingest/internal/domain/entity"
)

var assembleTime = time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func TestAssembleRecordEmptyFieldsKeepFullKeySet(t *testing.T) {
	record := AssembleRecord(TicketFields{}, CaptureMeta{
		BarcodeType: "pdf417",
		RawPayload:  "garbage",
		Source:      "camera",
	}, assembleTime)

	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{"passenger", "flight", "seat", "bookingReference", "barcodeType", "rawPayload", "capturedAt", "source"} {
		if _, ok := keys[key]; !ok {
			t.Errorf("missing top-level key %q", key)
		}
	}

	var flight map[string]json.RawMessage
	if err := json.Unmarshal(keys["flight"], &flight); err != nil {
		t.Fatalf("unmarshal flight: %v", err)
	}
	for _, key := range []string{"number", "date", "departure", "arrival", "status"} {
		if _, ok := flight[key]; !ok {
			t.Errorf("missing flight key %q", key)
		}
	}

	if record.BarcodeType != "PDF417" {
		t.Errorf("barcodeType: got %q, want PDF417", record.BarcodeType)
	}
	if !record.CapturedAt.Equal(assembleTime) {
		t.Errorf("capturedAt: got %v, want %v", record.CapturedAt, assembleTime)
	}
	if record.Source != "camera" {
		t.Errorf("source: got %q, want camera", record.Source)
	}
}

func TestAssembleRecordDefaultsBarcodeType(t *testing.T) {
	record := AssembleRecord(TicketFields{}, CaptureMeta{Source: "ocr"}, assembleTime)
	if record.BarcodeType != "UNKNOWN" {
		t.Errorf("barcodeType: got %q, want UNKNOWN", record.BarcodeType)
	}
}

func TestMergeScheduleFillsTimesAndStatus(t *testing.T) {
	draft := AssembleRecord(TicketFields{
		FlightNumber:  strPtr("LH87"),
		FlightDate:    strPtr("2025-08-14"),
		OriginAirport: strPtr("FRA"),
		DestAirport:   strPtr("JFK"),
	}, CaptureMeta{Source: "camera"}, assembleTime)

	merged := MergeSchedule(draft, &entity.ScheduleLookupResult{
		DepartureScheduled: strPtr("14:30"),
		ArrivalScheduled:   strPtr("17:45"),
		ArrivalActual:      strPtr("17:50"),
		Status:             strPtr("Arrived"),
	})

	if got := *merged.Flight.Departure.ScheduledTime; got != "14:30" {
		t.Errorf("departure scheduled: got %q", got)
	}
	if merged.Flight.Departure.ActualTime != nil {
		t.Errorf("departure actual should stay nil, got %q", *merged.Flight.Departure.ActualTime)
	}
	if got := *merged.Flight.Arrival.ActualTime; got != "17:50" {
		t.Errorf("arrival actual: got %q", got)
	}
	if got := *merged.Flight.Status; got != "Arrived" {
		t.Errorf("status: got %q", got)
	}

	// Airports are never touched by enrichment.
	if got := *merged.Flight.Departure.Airport; got != "FRA" {
		t.Errorf("departure airport: got %q", got)
	}
	if got := *merged.Flight.Arrival.Airport; got != "JFK" {
		t.Errorf("arrival airport: got %q", got)
	}
}

func TestMergeScheduleNeverOverwritesWithNil(t *testing.T) {
	draft := AssembleRecord(TicketFields{
		FlightNumber:  strPtr("LH87"),
		DepartureTime: strPtr("14:30"),
	}, CaptureMeta{Source: "ocr"}, assembleTime)
	draft.Flight.Status = strPtr("Scheduled")

	merged := MergeSchedule(draft, &entity.ScheduleLookupResult{
		Status: strPtr("Delayed"),
	})

	if got := *merged.Flight.Departure.ScheduledTime; got != "14:30" {
		t.Errorf("departure scheduled was overwritten: got %q", got)
	}
	if got := *merged.Flight.Status; got != "Scheduled" {
		t.Errorf("existing status was overwritten: got %q", got)
	}
}

func TestMergeScheduleDoesNotMutateDraft(t *testing.T) {
	draft := AssembleRecord(TicketFields{FlightNumber: strPtr("LH87")}, CaptureMeta{Source: "camera"}, assembleTime)

	merged := MergeSchedule(draft, &entity.ScheduleLookupResult{
		DepartureScheduled: strPtr("14:30"),
	})

	if draft.Flight.Departure.ScheduledTime != nil {
		t.Error("draft record was mutated by merge")
	}
	if merged == draft {
		t.Error("merge must return a copy, not the draft itself")
	}
}

func TestMergeScheduleNilResultIsNoop(t *testing.T) {
	draft := AssembleRecord(TicketFields{FlightNumber: strPtr("LH87")}, CaptureMeta{Source: "camera"}, assembleTime)

	merged := MergeSchedule(draft, nil)

	a, _ := json.Marshal(draft)
	b, _ := json.Marshal(merged)
	if string(a) != string(b) {
		t.Errorf("nil result changed the record:\n%s\n%s", a, b)
	}
}
