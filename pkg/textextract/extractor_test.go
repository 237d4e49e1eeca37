package textextract

import (
	"testing"
)

func TestExtractTypicalBoardingPassText(t *testing.T) {
	text := "BOARDING PASS\nLH441  FRA-JFK\n12/03/2025\nGATE B42"

	f := Extract(text)

	assertStr(t, "flight number", f.FlightNumber, "LH441")
	assertStr(t, "from", f.From, "FRA")
	assertStr(t, "to", f.To, "JFK")
	// Numeric dates are read day-first: 12/03 is March 12.
	assertStr(t, "date", f.Date, "2025-03-12")
}

func TestExtractFlightNumberVariants(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"compact", "FLIGHT LH441 DEPARTS SOON", "LH441"},
		{"spaced", "FLIGHT LH 441", "LH441"},
		{"hyphenated", "UA-1234 TO DENVER", "UA1234"},
		{"three letter carrier", "SAS123 COPENHAGEN", "SAS123"},
		{"suffix letter", "BA 142A LONDON", "BA142A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Extract(tt.text)
			assertStr(t, "flight number", f.FlightNumber, tt.expected)
		})
	}
}

func TestExtractRouteFallbacks(t *testing.T) {
	t.Run("arrow separator", func(t *testing.T) {
		f := Extract("ZRH → LHR 0815")
		assertStr(t, "from", f.From, "ZRH")
		assertStr(t, "to", f.To, "LHR")
	})

	t.Run("TO separator", func(t *testing.T) {
		f := Extract("VIE TO CDG")
		assertStr(t, "from", f.From, "VIE")
		assertStr(t, "to", f.To, "CDG")
	})

	t.Run("labeled codes", func(t *testing.T) {
		f := Extract("DEP: MUC ARR: OSL")
		assertStr(t, "from", f.From, "MUC")
		assertStr(t, "to", f.To, "OSL")
	})

	t.Run("bare token fallback uses first two distinct codes", func(t *testing.T) {
		f := Extract("HAM HAM TXL")
		assertStr(t, "from", f.From, "HAM")
		assertStr(t, "to", f.To, "TXL")
	})

	t.Run("single code is not a route", func(t *testing.T) {
		f := Extract("GATE LHR BOARDING")
		if f.From != nil || f.To != nil {
			t.Errorf("expected nil route for lone code, got from=%v to=%v", f.From, f.To)
		}
	})

	t.Run("no codes at all", func(t *testing.T) {
		f := Extract("no airports here 1234")
		if f.From != nil || f.To != nil {
			t.Errorf("expected nil route, got from=%v to=%v", f.From, f.To)
		}
	})
}

func TestExtractDateFormats(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"dmy slashes", "12/03/2025", "2025-03-12"},
		{"dmy dots", "07.11.2025", "2025-11-07"},
		{"dmy two digit year", "12/03/25", "2025-03-12"},
		{"ymd", "2025-03-12", "2025-03-12"},
		{"day month name year", "12 MAR 2025", "2025-03-12"},
		{"month name day year", "MAR 12, 2025", "2025-03-12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Extract(tt.text)
			assertStr(t, "date", f.Date, tt.expected)
		})
	}

	t.Run("no date", func(t *testing.T) {
		f := Extract("FRA JFK BOARDING")
		if f.Date != nil {
			t.Errorf("expected nil date, got %q", *f.Date)
		}
	})
}

func TestExtractTimes(t *testing.T) {
	t.Run("labeled times win", func(t *testing.T) {
		f := Extract("10:00 CHECK-IN DEP: 14:30 STA: 17:45")
		assertStr(t, "departure time", f.DepartureTime, "14:30")
		assertStr(t, "arrival time", f.ArrivalTime, "17:45")
	})

	t.Run("document order fallback", func(t *testing.T) {
		f := Extract("FRA 14:30 JFK 17:45")
		assertStr(t, "departure time", f.DepartureTime, "14:30")
		assertStr(t, "arrival time", f.ArrivalTime, "17:45")
	})

	t.Run("compact times", func(t *testing.T) {
		f := Extract("DEPARTURE 1430 ARRIVAL 1745")
		assertStr(t, "departure time", f.DepartureTime, "14:30")
		assertStr(t, "arrival time", f.ArrivalTime, "17:45")
	})

	t.Run("single time leaves arrival nil", func(t *testing.T) {
		f := Extract("BOARDING 09:15")
		assertStr(t, "departure time", f.DepartureTime, "09:15")
		if f.ArrivalTime != nil {
			t.Errorf("expected nil arrival time, got %q", *f.ArrivalTime)
		}
	})
}

func TestExtractEmptyInput(t *testing.T) {
	f := Extract("")
	if f.FlightNumber != nil || f.From != nil || f.To != nil || f.Date != nil ||
		f.DepartureTime != nil || f.ArrivalTime != nil {
		t.Errorf("expected zero fields for empty input, got %+v", f)
	}
}

func assertStr(t *testing.T, field string, got *string, want string) {
	t.Helper()
	if got == nil {
		t.Fatalf("%s: got nil, want %q", field, want)
	}
	if *got != want {
		t.Errorf("%s: got %q, want %q", field, *got, want)
	}
}
