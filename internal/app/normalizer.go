package app

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"wandr_ingest/internal/domain"
)

// defaultHotelName labels rows whose export carries no property column at
// all (single-property Cloudbeds exports).
const defaultHotelName = "Cloudbeds"

// NormalizeRow maps one raw record onto the canonical intermediate booking
// record: header probing per dialect, alias/channel/status resolution, date
// normalization and defaulting. Pure, no persistence. A wrapped ErrSkipRow
// means the row carries too little identity to process.
func NormalizeRow(rec domain.Record, d Dialect, defaultYear int) (domain.BookingRecord, error) {
	bookingID := probe(rec, d, FieldBookingID)

	bookedOn := NormalizeDate(probe(rec, d, FieldBookedOn), defaultYear)
	arrival := NormalizeDate(probe(rec, d, FieldArrivalDate), defaultYear)
	departure := NormalizeDate(probe(rec, d, FieldDepartureDate), defaultYear)

	// Insufficient identity: nothing to key the booking on and no date to
	// anchor it. Anything else is processable.
	if bookingID == "" && (arrival == nil || departure == nil) && bookedOn == nil {
		return domain.BookingRecord{}, fmt.Errorf("%w: no booking id and no usable dates", domain.ErrSkipRow)
	}

	out := domain.BookingRecord{BookingID: bookingID}
	if bookingID == "" {
		out.BookingID = generateBookingID()
		out.Synthesized = true
	}

	// Date defaulting chain, in order.
	if bookedOn == nil && arrival != nil {
		bookedOn = arrival
	}
	if arrival == nil {
		arrival = bookedOn
	}
	if departure == nil && arrival != nil {
		next := addDays(*arrival, 1)
		departure = &next
	}
	cancellation := NormalizeDate(probe(rec, d, FieldCancellationDate), defaultYear)
	if cancellation == nil {
		cancellation = departure
	}
	out.BookedOn = bookedOn
	out.ArrivalDate = arrival
	out.DepartureDate = departure
	out.CancellationDate = cancellation

	out.TravellerEmail = probe(rec, d, FieldTravellerEmail)
	out.TravellerPhone = probe(rec, d, FieldTravellerPhone)
	out.TravellerName = probe(rec, d, FieldTravellerName)
	if out.TravellerName == "" {
		out.TravellerName = out.TravellerEmail
	}
	out.Gender = probe(rec, d, FieldGender)
	out.DateOfBirth = NormalizeDate(probe(rec, d, FieldDateOfBirth), defaultYear)

	hotel := probe(rec, d, FieldHotel)
	if hotel == "" {
		hotel = defaultHotelName
	}
	out.HotelName = ResolveHotelName(hotel)
	out.RoomType = probe(rec, d, FieldRoomType)

	channel := probe(rec, d, FieldChannel)
	if channel == "" {
		channel = probe(rec, d, FieldSource)
	}
	out.Channel = MapChannel(channel)
	out.Status = MapStatus(probe(rec, d, FieldStatus))
	out.RatePlan = probe(rec, d, FieldRatePlan)

	out.Country = probe(rec, d, FieldCountry)
	if out.Country == "" {
		out.Country = "Unknown"
	}
	out.Region = probe(rec, d, FieldRegion)
	if out.Region == "" {
		out.Region = "Unknown"
	}

	out.GuestCount = parseGuestCount(probe(rec, d, FieldGuestCount))
	out.GrossAmount = CleanGrossAmount(probe(rec, d, FieldGrossAmount))

	raw, err := json.Marshal(rec)
	if err != nil {
		log.Error().Err(err).Str("context", "NormalizeRow").Msg("failed to marshal raw row")
	}
	out.RawJSON = raw

	return out, nil
}

// generateBookingID synthesizes an addressable id for rows whose export
// dropped the reservation number.
func generateBookingID() string {
	return fmt.Sprintf("GEN-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:5])
}

var nonAmountChars = regexp.MustCompile(`[^0-9.\-]`)

// CleanGrossAmount turns a raw money string ("1,234.50", "INR 900", "-0")
// into a float. Unparseable input is zero, and negative zero collapses to
// plain zero.
func CleanGrossAmount(raw string) float64 {
	s := nonAmountChars.ReplaceAllString(raw, "")
	neg := strings.HasPrefix(s, "-")
	body := strings.TrimPrefix(s, "-")
	for len(body) > 1 && body[0] == '0' && body[1] >= '0' && body[1] <= '9' {
		body = body[1:]
	}
	if neg {
		body = "-" + body
	}
	f, err := strconv.ParseFloat(body, 64)
	if err != nil {
		return 0
	}
	if f == 0 {
		return 0
	}
	return f
}

func parseGuestCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
