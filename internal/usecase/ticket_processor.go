package usecase

import (
	"context"
	"regexp"
	"strings"
	"time"

	"skyline-ingest/internal/domain/entity"
	"skyline-ingest/internal/domain/repository"
	"skyline-ingest/pkg/bcbp"
	"skyline-ingest/pkg/logger"
	"skyline-ingest/pkg/metrics"
	"skyline-ingest/pkg/textextract"
)

// embeddedMarker is searched for inside longer symbology-prefixed payloads
// when the payload does not decode from offset zero.
const embeddedMarker = "M1"

// TicketProcessor runs the travel-document ingestion pipeline: decode the
// barcode payload, fall back to heuristic text extraction, assemble the
// canonical record, enrich it with schedule data and append it to the
// collection. Every capture attempt yields a record, possibly mostly empty.
type TicketProcessor struct {
	ticketRepo   repository.TicketRepository
	scheduleRepo repository.ScheduleRepository
	airlineRepo  repository.AirlineRepository
	airportRepo  repository.AirportRepository
	logger       logger.Logger
	metrics      *metrics.Metrics
	nowFn        func() time.Time
}

// NewTicketProcessor creates a new ticket processor. The airline and airport
// repositories are optional master-data refinements and may be nil, as may the
// metrics handle.
func NewTicketProcessor(
	ticketRepo repository.TicketRepository,
	scheduleRepo repository.ScheduleRepository,
	airlineRepo repository.AirlineRepository,
	airportRepo repository.AirportRepository,
	logger logger.Logger,
	m *metrics.Metrics,
) *TicketProcessor {
	return &TicketProcessor{
		ticketRepo:   ticketRepo,
		scheduleRepo: scheduleRepo,
		airlineRepo:  airlineRepo,
		airportRepo:  airportRepo,
		logger:       logger,
		metrics:      m,
		nowFn:        time.Now,
	}
}

// ProcessCapture runs one capture through the full pipeline and returns the
// final appended record. The only hard failure is an inability to persist the
// collection; decode, extraction and enrichment problems degrade to nulled
// fields instead.
func (tp *TicketProcessor) ProcessCapture(ctx context.Context, capture *entity.RawCapture) (*entity.FlightTicketRecord, error) {
	now := tp.nowFn()

	fields, decoded := tp.decodeFields(capture.Payload, now)
	if !decoded {
		tp.logger.Info("Barcode decode failed, falling back to text extraction", "source", capture.Source)
		if tp.metrics != nil {
			tp.metrics.ExtractorFallbacks.Inc()
		}
		fields = tp.extractFields(ctx, capture.Payload)
	}

	draft := AssembleRecord(fields, CaptureMeta{
		BarcodeType: capture.BarcodeType,
		RawPayload:  capture.Payload,
		Source:      string(capture.Source),
	}, now)

	record := tp.enrich(ctx, draft)

	if err := tp.ticketRepo.Append(ctx, record); err != nil {
		tp.logger.Error("Failed to append ticket record", "error", err)
		return nil, err
	}

	tp.logger.Info("Ticket record appended",
		"source", record.Source,
		"decoded", decoded,
		"flight", strValue(record.Flight.Number))

	return record, nil
}

// decodeFields attempts a structured BCBP decode. Payloads that carry the
// boarding-pass block behind a symbology prefix are retried from the first
// "M1" occurrence when at least a full mandatory block remains.
func (tp *TicketProcessor) decodeFields(payload string, now time.Time) (TicketFields, bool) {
	raw := strings.TrimSpace(payload)

	pass := bcbp.Decode(raw, now)
	if pass == nil {
		if idx := strings.Index(raw, embeddedMarker); idx >= 0 {
			candidate := raw[idx:]
			if len(candidate) >= 58 {
				pass = bcbp.Decode(candidate, now)
			}
		}
	}
	if pass == nil {
		return TicketFields{}, false
	}

	return TicketFields{
		PassengerName:    pass.PassengerName,
		FlightNumber:     pass.FlightNumber,
		FlightDate:       pass.FlightDate,
		OriginAirport:    pass.OriginAirport,
		DestAirport:      pass.DestAirport,
		Seat:             pass.Seat,
		BookingReference: pass.BookingReference,
	}, true
}

// extractFields runs the heuristic extractor and, when airport master data is
// wired, drops extracted airport codes that match no known airport.
func (tp *TicketProcessor) extractFields(ctx context.Context, text string) TicketFields {
	extracted := textextract.Extract(text)

	fields := TicketFields{
		FlightNumber:  extracted.FlightNumber,
		FlightDate:    extracted.Date,
		OriginAirport: extracted.From,
		DestAirport:   extracted.To,
		DepartureTime: extracted.DepartureTime,
		ArrivalTime:   extracted.ArrivalTime,
	}

	if tp.airportRepo != nil {
		fields.OriginAirport = tp.verifyAirport(ctx, fields.OriginAirport)
		fields.DestAirport = tp.verifyAirport(ctx, fields.DestAirport)
	}

	return fields
}

func (tp *TicketProcessor) verifyAirport(ctx context.Context, code *string) *string {
	if code == nil {
		return nil
	}
	if _, err := tp.airportRepo.GetByAirportCode(ctx, *code); err != nil {
		tp.logger.Warn("Dropping unknown extracted airport code", "code", *code)
		return nil
	}
	return code
}

// flightNumberRe splits a combined flight number into carrier letters and the
// numeric suffix, tolerating zero padding and an optional operational suffix
// letter.
var flightNumberRe = regexp.MustCompile(`^([A-Z]{2,3})\s*0*([0-9]{1,4}[A-Z]?)$`)

// deriveLookupKey derives the timetable lookup key from the record's flight
// number and ISO date. Derivation failure means the lookup is skipped.
func deriveLookupKey(flightNumber, isoDate *string) (entity.ScheduleLookupKey, bool) {
	if flightNumber == nil || isoDate == nil {
		return entity.ScheduleLookupKey{}, false
	}

	m := flightNumberRe.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(*flightNumber)))
	if m == nil {
		return entity.ScheduleLookupKey{}, false
	}

	compact := strings.ReplaceAll(strings.TrimSpace(*isoDate), "-", "")
	if len(compact) != 8 {
		return entity.ScheduleLookupKey{}, false
	}

	return entity.ScheduleLookupKey{
		AirlineCode:  m[1],
		FlightNumber: m[2],
		DateCompact:  compact,
	}, true
}

// enrich looks up schedule data for the draft record and merges it in. Any
// failure along the way leaves the draft unchanged; enrichment completes
// before the record is considered final.
func (tp *TicketProcessor) enrich(ctx context.Context, draft *entity.FlightTicketRecord) *entity.FlightTicketRecord {
	key, ok := deriveLookupKey(draft.Flight.Number, draft.Flight.Date)
	if !ok {
		tp.logger.Info("Skipping schedule lookup, no derivable key")
		return draft
	}

	if tp.airlineRepo != nil {
		if _, err := tp.airlineRepo.GetByCode(ctx, key.AirlineCode); err != nil {
			tp.logger.Warn("Skipping schedule lookup for unknown carrier", "code", key.AirlineCode)
			return draft
		}
	}

	result, err := tp.scheduleRepo.Lookup(ctx, key)
	if err != nil {
		tp.logger.Warn("Schedule lookup failed, keeping draft record",
			"flight", key.AirlineCode+key.FlightNumber,
			"error", err)
		if tp.metrics != nil {
			tp.metrics.EnrichmentFailures.Inc()
		}
		return draft
	}

	return MergeSchedule(draft, result)
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
