// Package textextract pulls flight fields out of free-form OCR text. It is
// the fallback path when no structured barcode payload could be decoded, so
// everything here is best-effort: each field is resolved independently and an
// unmatched field is simply left nil.
package textextract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Fields is the heuristic counterpart of a decoded boarding pass. Every field
// is independently optional.
type Fields struct {
	FlightNumber  *string
	From          *string
	To            *string
	Date          *string
	DepartureTime *string
	ArrivalTime   *string
}

// strategy resolves one field group from the normalized text. Strategies run
// in declaration order; each setter exits early once its fields are set, so
// new patterns can be appended or reordered without touching control flow.
type strategy struct {
	name  string
	apply func(upper string, f *Fields)
}

var strategies = []strategy{
	{"flight-number", applyFlightNumber},
	{"route", applyRoute},
	{"date", applyDate},
	{"times", applyTimes},
}

// Extract runs every strategy over the text and returns whatever matched.
// It always returns and never panics; a text with no recognizable flight
// information yields the zero Fields.
func Extract(text string) Fields {
	upper := strings.ToUpper(strings.Join(strings.Fields(text), " "))

	var f Fields
	for _, s := range strategies {
		s.apply(upper, &f)
	}
	return f
}

var flightNumberRe = regexp.MustCompile(`\b([A-Z]{2,3})\s?-?\s?(\d{2,4}[A-Z]?)\b`)

func applyFlightNumber(upper string, f *Fields) {
	if f.FlightNumber != nil {
		return
	}
	if m := flightNumberRe.FindStringSubmatch(upper); m != nil {
		number := m[1] + m[2]
		f.FlightNumber = &number
	}
}

var (
	routeRe     = regexp.MustCompile(`\b([A-Z]{3})\b\s*(?:-|–|→|>|TO)\s*\b([A-Z]{3})\b`)
	depLabelRe  = regexp.MustCompile(`\bDEP\s*[:\-]?\s*([A-Z]{3})\b`)
	arrLabelRe  = regexp.MustCompile(`\bARR\s*[:\-]?\s*([A-Z]{3})\b`)
	iataTokenRe = regexp.MustCompile(`\b[A-Z]{3}\b`)
)

func applyRoute(upper string, f *Fields) {
	if f.From != nil && f.To != nil {
		return
	}

	if m := routeRe.FindStringSubmatch(upper); m != nil {
		f.From, f.To = &m[1], &m[2]
		return
	}

	if m := depLabelRe.FindStringSubmatch(upper); m != nil {
		f.From = &m[1]
	}
	if m := arrLabelRe.FindStringSubmatch(upper); m != nil {
		f.To = &m[1]
	}
	if f.From != nil && f.To != nil {
		return
	}

	// Weakest signal: the first two distinct 3-letter tokens anywhere. A
	// single candidate code is too ambiguous to call a route.
	codes := iataTokenRe.FindAllString(upper, -1)
	if len(codes) < 2 {
		return
	}
	if f.From == nil {
		f.From = &codes[0]
	}
	if f.To == nil {
		for i := range codes {
			if codes[i] != *f.From {
				f.To = &codes[i]
				break
			}
		}
	}
}

var monthNum = map[string]int{
	"JAN": 1, "FEB": 2, "MAR": 3, "APR": 4, "MAY": 5, "JUN": 6,
	"JUL": 7, "AUG": 8, "SEP": 9, "OCT": 10, "NOV": 11, "DEC": 12,
}

var (
	dmyRe   = regexp.MustCompile(`\b(\d{1,2})[./-](\d{1,2})[./-](\d{2,4})\b`)
	ymdRe   = regexp.MustCompile(`\b(\d{4})[/-](\d{1,2})[/-](\d{1,2})\b`)
	dMonYRe = regexp.MustCompile(`\b(\d{1,2})\s+(JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC)\s+(\d{2,4})\b`)
	monDYRe = regexp.MustCompile(`\b(JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC)\s+(\d{1,2}),?\s+(\d{2,4})\b`)
)

// applyDate tries the supported date shapes in order of reliability. Numeric
// dd/mm dates are read day-first; two-digit years are assumed 20xx.
func applyDate(upper string, f *Fields) {
	if f.Date != nil {
		return
	}

	if m := dmyRe.FindStringSubmatch(upper); m != nil {
		f.Date = isoDate(expandYear(m[3]), atoi(m[2]), atoi(m[1]))
		return
	}
	if m := ymdRe.FindStringSubmatch(upper); m != nil {
		f.Date = isoDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
		return
	}
	if m := dMonYRe.FindStringSubmatch(upper); m != nil {
		f.Date = isoDate(expandYear(m[3]), monthNum[m[2]], atoi(m[1]))
		return
	}
	if m := monDYRe.FindStringSubmatch(upper); m != nil {
		f.Date = isoDate(expandYear(m[3]), monthNum[m[1]], atoi(m[2]))
	}
}

var (
	colonTimeRe   = regexp.MustCompile(`\b(\d{1,2}:\d{2})\b`)
	compactTimeRe = regexp.MustCompile(`\b(\d{4})\b`)
	depTimeRe     = regexp.MustCompile(`\b(?:DEP|STD)\s*[:\-]?\s*(\d{1,2}:\d{2})`)
	arrTimeRe     = regexp.MustCompile(`\b(?:ARR|STA)\s*[:\-]?\s*(\d{1,2}:\d{2})`)
)

// applyTimes prefers labeled departure/arrival times, then falls back to the
// first two HH:MM occurrences in document order, then to 4-digit compact
// times.
func applyTimes(upper string, f *Fields) {
	if f.DepartureTime != nil && f.ArrivalTime != nil {
		return
	}

	if m := depTimeRe.FindStringSubmatch(upper); m != nil && f.DepartureTime == nil {
		f.DepartureTime = &m[1]
	}
	if m := arrTimeRe.FindStringSubmatch(upper); m != nil && f.ArrivalTime == nil {
		f.ArrivalTime = &m[1]
	}

	colonTimes := colonTimeRe.FindAllString(upper, -1)
	if f.DepartureTime == nil && len(colonTimes) > 0 {
		f.DepartureTime = &colonTimes[0]
	}
	if f.ArrivalTime == nil && len(colonTimes) > 1 {
		f.ArrivalTime = &colonTimes[1]
	}
	if f.DepartureTime != nil && f.ArrivalTime != nil {
		return
	}

	compact := compactTimeRe.FindAllString(upper, -1)
	if f.DepartureTime == nil && len(compact) > 0 {
		t := compact[0][:2] + ":" + compact[0][2:]
		f.DepartureTime = &t
	}
	if f.ArrivalTime == nil && len(compact) > 1 {
		t := compact[1][:2] + ":" + compact[1][2:]
		f.ArrivalTime = &t
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func expandYear(s string) int {
	if len(s) == 2 {
		return 2000 + atoi(s)
	}
	return atoi(s)
}

func isoDate(year, month, day int) *string {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return nil
	}
	d := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	return &d
}
