package bcbp

import (
	"strconv"
	"strings"
	"time"
)

// BoardingPass holds the mandatory items decoded from a bar-coded boarding
// pass payload. Every field is best-effort; a field the payload left blank is
// nil.
type BoardingPass struct {
	PassengerName    *string
	BookingReference *string
	OriginAirport    *string
	DestAirport      *string
	CarrierCode      *string
	FlightNumber     *string
	FlightDate       *string
	Seat             *string
}

// minPayloadLen is the length of the IATA BCBP mandatory item block.
const minPayloadLen = 58

// formatMarker is the leading format code. Only the 'M' itself is checked;
// the leg-count digit that follows it is not interpreted, so multi-leg passes
// decode their first leg only.
const formatMarker = 'M'

// field is one fixed-offset slice of the mandatory item layout.
type field struct {
	name  string
	start int
	end   int
}

// Mandatory item offsets, 0-indexed half-open ranges. Byte 47 between the
// julian date and the seat is the compartment/class code and is skipped.
var fieldTable = []field{
	{"name", 2, 22},
	{"pnr", 23, 30},
	{"from", 30, 33},
	{"to", 33, 36},
	{"carrier", 36, 39},
	{"flightNo", 39, 44},
	{"julian", 44, 47},
	{"seat", 48, 52},
}

// Decode parses a raw barcode payload into a BoardingPass. It returns nil on
// any input that is not a plausible BCBP payload and never panics; the caller
// supplies the reference instant used to resolve the julian flight date.
func Decode(raw string, ref time.Time) *BoardingPass {
	s := strings.TrimSpace(raw)
	if len(s) < minPayloadLen || s[0] != formatMarker {
		return nil
	}

	slices := make(map[string]string, len(fieldTable))
	for _, f := range fieldTable {
		if f.start < 0 || f.end > len(s) || f.start > f.end {
			return nil
		}
		slices[f.name] = strings.TrimSpace(s[f.start:f.end])
	}

	pass := &BoardingPass{
		PassengerName:    normalizeName(slices["name"]),
		BookingReference: emptyToNil(slices["pnr"]),
		OriginAirport:    emptyToNil(slices["from"]),
		DestAirport:      emptyToNil(slices["to"]),
		CarrierCode:      emptyToNil(slices["carrier"]),
		Seat:             emptyToNil(slices["seat"]),
	}

	if carrier := slices["carrier"]; carrier != "" && slices["flightNo"] != "" {
		number := carrier + normalizeFlightNumber(slices["flightNo"])
		pass.FlightNumber = &number
	}

	if day, err := strconv.Atoi(slices["julian"]); err == nil {
		if iso, ok := ResolveDayOfYear(day, ref); ok {
			pass.FlightDate = &iso
		}
	}

	return pass
}

// normalizeName turns the BCBP "LAST/FIRST TITLE" form into "FIRST LAST".
// Only the first token after the slash is kept, dropping titles like MR.
func normalizeName(raw string) *string {
	s := strings.Join(strings.Fields(raw), " ")
	if s == "" {
		return nil
	}
	if idx := strings.Index(s, "/"); idx >= 0 {
		last := strings.TrimSpace(s[:idx])
		first := ""
		if rest := strings.Fields(s[idx+1:]); len(rest) > 0 {
			first = rest[0]
		}
		if full := strings.TrimSpace(first + " " + last); full != "" {
			return &full
		}
	}
	return &s
}

// normalizeFlightNumber strips the zero padding airlines use in the 5-char
// flight number field. A degenerate all-zero value is kept as-is rather than
// collapsing to the empty string.
func normalizeFlightNumber(raw string) string {
	stripped := strings.TrimLeft(raw, "0")
	if stripped == "" {
		return raw
	}
	return stripped
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
