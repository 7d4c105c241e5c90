package app

import (
	"errors"
	"math"
	"strings"
	"testing"

	"wandr_ingest/internal/domain"
)

func TestNormalizeRow_FullRow(t *testing.T) {
	rec := domain.Record{
		"reservation_number": "R1",
		"traveller_name":     "Jane",
		"arrival_date":       "01 Jan 2024",
		"departure_date":     "03 Jan 2024",
		"gross_amount":       "1,234.50",
	}
	br, err := NormalizeRow(rec, DialectFor(""), 0)
	if err != nil {
		t.Fatalf("NormalizeRow: %v", err)
	}
	if br.BookingID != "R1" || br.Synthesized {
		t.Errorf("booking id = %q (synthesized=%v), want R1", br.BookingID, br.Synthesized)
	}
	if br.TravellerName != "Jane" {
		t.Errorf("traveller name = %q", br.TravellerName)
	}
	assertDate(t, "arrival", br.ArrivalDate, "2024-01-01")
	assertDate(t, "departure", br.DepartureDate, "2024-01-03")
	assertDate(t, "booked on", br.BookedOn, "2024-01-01")       // defaults to arrival
	assertDate(t, "cancellation", br.CancellationDate, "2024-01-03") // defaults to departure
	if br.GrossAmount != 1234.50 {
		t.Errorf("gross amount = %v, want 1234.50", br.GrossAmount)
	}
	if br.GuestCount != 1 {
		t.Errorf("guest count = %d, want default 1", br.GuestCount)
	}
	if br.HotelName != defaultHotelName {
		t.Errorf("hotel = %q, want %q", br.HotelName, defaultHotelName)
	}
	if br.Channel != "OTHERS" || br.Status != "Unknown" {
		t.Errorf("channel/status = %q/%q, want OTHERS/Unknown", br.Channel, br.Status)
	}
	if br.Country != "Unknown" || br.Region != "Unknown" {
		t.Errorf("country/region = %q/%q, want Unknown/Unknown", br.Country, br.Region)
	}
	if len(br.RawJSON) == 0 || !strings.Contains(string(br.RawJSON), "reservation_number") {
		t.Errorf("raw json not captured: %s", br.RawJSON)
	}
}

func TestNormalizeRow_SkipRule(t *testing.T) {
	cases := []struct {
		name string
		rec  domain.Record
		skip bool
	}{
		{"empty row", domain.Record{}, true},
		{"garbage dates only", domain.Record{"arrival_date": "n/a", "departure_date": "??"}, true},
		{"only booking id", domain.Record{"reservation_number": "R9"}, false},
		{"only booked on", domain.Record{"reservation_date": "01 Jan 2024"}, false},
		{"arrival and departure, no id", domain.Record{"arrival_date": "01 Jan 2024", "departure_date": "02 Jan 2024"}, false},
		{"arrival only, no id", domain.Record{"arrival_date": "01 Jan 2024"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NormalizeRow(tc.rec, DialectFor(""), 0)
			if tc.skip {
				if !errors.Is(err, domain.ErrSkipRow) {
					t.Fatalf("err = %v, want ErrSkipRow", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
		})
	}
}

func TestNormalizeRow_SynthesizedID(t *testing.T) {
	rec := domain.Record{"arrival_date": "01 Jan 2024", "departure_date": "02 Jan 2024"}
	br, err := NormalizeRow(rec, DialectFor(""), 0)
	if err != nil {
		t.Fatalf("NormalizeRow: %v", err)
	}
	if !br.Synthesized || !strings.HasPrefix(br.BookingID, "GEN-") {
		t.Fatalf("booking id = %q (synthesized=%v), want GEN- prefix", br.BookingID, br.Synthesized)
	}

	other, err := NormalizeRow(rec, DialectFor(""), 0)
	if err != nil {
		t.Fatalf("NormalizeRow: %v", err)
	}
	if other.BookingID == br.BookingID {
		t.Fatalf("synthesized ids collided: %q", br.BookingID)
	}
}

func TestNormalizeRow_DateDefaulting(t *testing.T) {
	// booked on present, arrival missing: arrival inherits booked on and
	// departure becomes arrival plus one day.
	br, err := NormalizeRow(domain.Record{
		"reservation_number": "R2",
		"reservation_date":   "10 Jan 2024",
	}, DialectFor(""), 0)
	if err != nil {
		t.Fatalf("NormalizeRow: %v", err)
	}
	assertDate(t, "booked on", br.BookedOn, "2024-01-10")
	assertDate(t, "arrival", br.ArrivalDate, "2024-01-10")
	assertDate(t, "departure", br.DepartureDate, "2024-01-11")
	assertDate(t, "cancellation", br.CancellationDate, "2024-01-11")
}

func TestNormalizeRow_ExplicitCancellation(t *testing.T) {
	br, err := NormalizeRow(domain.Record{
		"reservation_number":        "R3",
		"arrival_date":              "10 Jan 2024",
		"departure_date":            "12 Jan 2024",
		"cancellation_no_show_date": "11 Jan 2024",
	}, DialectFor("zuzu"), 0)
	if err != nil {
		t.Fatalf("NormalizeRow: %v", err)
	}
	assertDate(t, "cancellation", br.CancellationDate, "2024-01-11")
}

func TestNormalizeRow_NameFallsBackToEmail(t *testing.T) {
	br, err := NormalizeRow(domain.Record{
		"reservation_number": "R4",
		"traveller_email":    "jane@example.com",
	}, DialectFor(""), 0)
	if err != nil {
		t.Fatalf("NormalizeRow: %v", err)
	}
	if br.TravellerName != "jane@example.com" {
		t.Fatalf("traveller name = %q, want email fallback", br.TravellerName)
	}
}

func TestNormalizeRow_HotelAliasAndChannel(t *testing.T) {
	br, err := NormalizeRow(domain.Record{
		"reservation_number": "R5",
		"property":           "Settl. Pisa A",
		"source":             "GO MMT",
		"booking_status":     "Booked",
		"guest_count":        "3",
	}, DialectFor(""), 0)
	if err != nil {
		t.Fatalf("NormalizeRow: %v", err)
	}
	if br.HotelName != "Wandr Centauri" {
		t.Errorf("hotel = %q, want Wandr Centauri", br.HotelName)
	}
	if br.Channel != "MMT" {
		t.Errorf("channel = %q, want MMT (source fallback)", br.Channel)
	}
	if br.Status != "Confirmed" {
		t.Errorf("status = %q, want Confirmed", br.Status)
	}
	if br.GuestCount != 3 {
		t.Errorf("guest count = %d, want 3", br.GuestCount)
	}
}

func TestNormalizeRow_ChannelBeatsSource(t *testing.T) {
	br, err := NormalizeRow(domain.Record{
		"reservation_number": "R6",
		"channel":            "Agoda",
		"source":             "GO MMT",
	}, DialectFor(""), 0)
	if err != nil {
		t.Fatalf("NormalizeRow: %v", err)
	}
	if br.Channel != "Agoda" {
		t.Fatalf("channel = %q, want Agoda", br.Channel)
	}
}

func TestCleanGrossAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1,234.50", 1234.50},
		{"INR 950.00", 950},
		{"₹2,000", 2000},
		{"007", 7},
		{"-12.5", -12.5},
		{"-007.5", -7.5},
		{"", 0},
		{",,.", 0},
		{"abc", 0},
		{"-0", 0},
		{"-0.00", 0},
	}
	for _, tc := range cases {
		got := CleanGrossAmount(tc.in)
		if got != tc.want {
			t.Errorf("CleanGrossAmount(%q) = %v, want %v", tc.in, got, tc.want)
		}
		if got == 0 && math.Signbit(got) {
			t.Errorf("CleanGrossAmount(%q) returned negative zero", tc.in)
		}
	}
}

func TestParseGuestCount(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"3", 3},
		{" 2 ", 2},
		{"0", 1},
		{"-1", 1},
		{"", 1},
		{"two", 1},
	}
	for _, tc := range cases {
		if got := parseGuestCount(tc.in); got != tc.want {
			t.Errorf("parseGuestCount(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func assertDate(t *testing.T, label string, got *string, want string) {
	t.Helper()
	if got == nil {
		t.Errorf("%s = nil, want %s", label, want)
		return
	}
	if *got != want {
		t.Errorf("%s = %s, want %s", label, *got, want)
	}
}
