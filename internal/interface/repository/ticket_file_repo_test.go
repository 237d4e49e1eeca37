package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"skyline-ingest/internal/domain/entity"
	"skyline-ingest/pkg/logger"
)

type testLogger struct{}

func (testLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (testLogger) Info(msg string, keysAndValues ...interface{})  {}
func (testLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (testLogger) Error(msg string, keysAndValues ...interface{}) {}
func (testLogger) Fatal(msg string, keysAndValues ...interface{}) {}

func (l testLogger) With(keysAndValues ...interface{}) logger.Logger { return l }

func strPtr(s string) *string { return &s }

func sampleRecord(flight string) *entity.FlightTicketRecord {
	return &entity.FlightTicketRecord{
		Passenger: entity.PassengerInfo{Name: strPtr("JOHN SMITH")},
		Flight: entity.FlightInfo{
			Number:    strPtr(flight),
			Date:      strPtr("2025-08-14"),
			Departure: entity.LegInfo{Airport: strPtr("FRA")},
			Arrival:   entity.LegInfo{Airport: strPtr("JFK")},
		},
		Seat:        strPtr("025A"),
		BarcodeType: "PDF417",
		RawPayload:  "raw",
		CapturedAt:  time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC),
		Source:      "camera",
	}
}

func TestFileTicketRepositoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flugtickets.json")
	repo := NewFileTicketRepository(path, testLogger{})
	ctx := context.Background()

	if err := repo.Append(ctx, sampleRecord("LH87")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := repo.Append(ctx, sampleRecord("UA1234")); err != nil {
		t.Fatalf("append: %v", err)
	}

	// A fresh repository instance must see the same collection.
	reloaded := NewFileTicketRepository(path, testLogger{})
	records, err := reloaded.FindAll(ctx)
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if *records[0].Flight.Number != "LH87" || *records[1].Flight.Number != "UA1234" {
		t.Errorf("append order lost: %q, %q", *records[0].Flight.Number, *records[1].Flight.Number)
	}
}

func TestFileTicketRepositoryWritesWrapperShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flugtickets.json")
	repo := NewFileTicketRepository(path, testLogger{})

	if err := repo.Append(context.Background(), sampleRecord("LH87")); err != nil {
		t.Fatalf("append: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("persisted document is not a JSON object: %v", err)
	}
	if _, ok := doc["flightTicketScan"]; !ok {
		t.Error("missing flightTicketScan wrapper key")
	}

	// Human-readable, indented output.
	if !strings.Contains(string(data), "\n  ") {
		t.Error("document is not indented")
	}
}

func TestFileTicketRepositoryLoadsLegacyBareArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flugtickets.json")

	legacy, err := json.Marshal([]entity.FlightTicketRecord{*sampleRecord("LH87")})
	if err != nil {
		t.Fatalf("marshal legacy: %v", err)
	}
	if err := os.WriteFile(path, legacy, 0o644); err != nil {
		t.Fatalf("write legacy: %v", err)
	}

	repo := NewFileTicketRepository(path, testLogger{})
	ctx := context.Background()

	records, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(records) != 1 || *records[0].Flight.Number != "LH87" {
		t.Fatalf("legacy collection not loaded: %+v", records)
	}

	// Appending migrates the file to the wrapper shape.
	if err := repo.Append(ctx, sampleRecord("UA1234")); err != nil {
		t.Fatalf("append: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var doc ticketDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(doc.FlightTicketScan) != 2 {
		t.Errorf("got %d records after migration, want 2", len(doc.FlightTicketScan))
	}
}

func TestFileTicketRepositoryMissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.json")
	repo := NewFileTicketRepository(path, testLogger{})

	records, err := repo.FindAll(context.Background())
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}

func TestFileTicketRepositoryCorruptFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flugtickets.json")
	if err := os.WriteFile(path, []byte("not json at all"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	repo := NewFileTicketRepository(path, testLogger{})
	if _, err := repo.FindAll(context.Background()); err == nil {
		t.Error("expected error for corrupt collection file")
	}
	if err := repo.Append(context.Background(), sampleRecord("LH87")); err == nil {
		t.Error("append over a corrupt collection must fail loudly")
	}
}

func TestFileTicketRepositoryNullRecordFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flugtickets.json")
	repo := NewFileTicketRepository(path, testLogger{})

	empty := &entity.FlightTicketRecord{
		BarcodeType: "UNKNOWN",
		Source:      "ocr",
		CapturedAt:  time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC),
	}
	if err := repo.Append(context.Background(), empty); err != nil {
		t.Fatalf("append: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	// Nulled fields stay present as explicit nulls.
	if !strings.Contains(string(data), `"seat": null`) {
		t.Errorf("seat key missing or omitted:\n%s", data)
	}
	if !strings.Contains(string(data), `"bookingReference": null`) {
		t.Errorf("bookingReference key missing or omitted:\n%s", data)
	}
}
