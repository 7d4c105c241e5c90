package app

import (
	"strings"

	"wandr_ingest/internal/domain"
)

// Field names one logical booking attribute, independent of which header a
// given export spells it under.
type Field string

const (
	FieldBookingID        Field = "booking_id"
	FieldTravellerName    Field = "traveller_name"
	FieldTravellerEmail   Field = "traveller_email"
	FieldTravellerPhone   Field = "traveller_phone"
	FieldDateOfBirth      Field = "date_of_birth"
	FieldGender           Field = "gender"
	FieldBookedOn         Field = "booked_on"
	FieldArrivalDate      Field = "arrival_date"
	FieldDepartureDate    Field = "departure_date"
	FieldCancellationDate Field = "cancellation_date"
	FieldHotel            Field = "hotel"
	FieldRoomType         Field = "room_type"
	FieldChannel          Field = "channel"
	FieldSource           Field = "source"
	FieldStatus           Field = "status"
	FieldRatePlan         Field = "rate_plan"
	FieldCountry          Field = "country"
	FieldRegion           Field = "region"
	FieldGuestCount       Field = "guest_count"
	FieldGrossAmount      Field = "gross_amount"
)

// Dialect is one export format: an ordered list of accepted (normalized)
// header names per logical field, probed first-non-empty-wins, plus the
// headers uploads claiming this dialect must carry.
type Dialect struct {
	Name            string
	Fields          map[Field][]string
	RequiredHeaders []string
}

var cloudbedsDialect = Dialect{
	Name: "cloudbeds",
	Fields: map[Field][]string{
		FieldBookingID:        {"reservation_number"},
		FieldTravellerName:    {"traveller_name", "name"},
		FieldTravellerEmail:   {"traveller_email", "email"},
		FieldTravellerPhone:   {"phone_number", "mobile_number", "mobile"},
		FieldDateOfBirth:      {"date_of_birth"},
		FieldGender:           {"gender"},
		FieldBookedOn:         {"reservation_date"},
		FieldArrivalDate:      {"arrival_date"},
		FieldDepartureDate:    {"departure_date", "check_out_date"},
		FieldCancellationDate: {"cancellation_date"},
		FieldHotel:            {"property", "hotel"},
		FieldRoomType:         {"room_type"},
		FieldChannel:          {"channel"},
		FieldSource:           {"source"},
		FieldStatus:           {"booking_status"},
		FieldRatePlan:         {"rate_plan"},
		FieldCountry:          {"country"},
		FieldRegion:           {"region"},
		FieldGuestCount:       {"adults", "guest_count"},
		FieldGrossAmount:      {"grand_total"},
	},
	RequiredHeaders: []string{
		"reservation_number", "traveller_name", "traveller_email", "phone_number",
		"mobile_number", "date_of_birth", "gender", "reservation_date",
		"arrival_date", "departure_date", "channel", "booking_status",
		"room_type", "country", "adults", "children", "grand_total",
	},
}

var zuzuDialect = Dialect{
	Name: "zuzu",
	Fields: map[Field][]string{
		FieldBookingID:        {"channel_booking_id"},
		FieldTravellerName:    {"traveller_name"},
		FieldTravellerEmail:   {"traveller_email"},
		FieldTravellerPhone:   {"mobile_number", "phone_number", "mobile"},
		FieldDateOfBirth:      {"date_of_birth"},
		FieldGender:           {"gender"},
		FieldBookedOn:         {"booking_date", "booked_on"},
		FieldArrivalDate:      {"arrival_date"},
		FieldDepartureDate:    {"departure_date"},
		FieldCancellationDate: {"cancellation_no_show_date"},
		FieldHotel:            {"property", "hotel"},
		FieldRoomType:         {"room_type"},
		FieldChannel:          {"channel"},
		FieldSource:           {"source"},
		FieldStatus:           {"booking_status"},
		FieldRatePlan:         {"rate_plan"},
		FieldCountry:          {"country"},
		FieldRegion:           {"region"},
		FieldGuestCount:       {"guest_count"},
		FieldGrossAmount:      {"gross_amount"},
	},
	RequiredHeaders: []string{
		"channel_booking_id", "traveller_name", "traveller_email", "date_of_birth",
		"booking_date", "arrival_date", "departure_date", "cancellation_no_show_date",
		"channel", "booking_status", "room_type", "rate_plan", "country",
		"guest_count", "gross_amount",
	},
}

// genericDialect merges every header spelling any source has used. Uploads
// without a dialect hint go through this one, with no header validation.
var genericDialect = Dialect{
	Name: "generic",
	Fields: map[Field][]string{
		FieldBookingID:        {"reservation_number", "channel_booking_id", "booking_id"},
		FieldTravellerName:    {"traveller_name", "name", "guest_name"},
		FieldTravellerEmail:   {"traveller_email", "email"},
		FieldTravellerPhone:   {"phone_number", "mobile_number", "mobile", "phone"},
		FieldDateOfBirth:      {"date_of_birth", "dob"},
		FieldGender:           {"gender"},
		FieldBookedOn:         {"reservation_date", "booking_date", "booked_on"},
		FieldArrivalDate:      {"arrival_date", "check_in_date", "checkin_date"},
		FieldDepartureDate:    {"check_out_date", "departure_date", "checkout_date"},
		FieldCancellationDate: {"cancellation_no_show_date", "cancellation_date"},
		FieldHotel:            {"property", "hotel", "hotel_name"},
		FieldRoomType:         {"room_type"},
		FieldChannel:          {"channel"},
		FieldSource:           {"source"},
		FieldStatus:           {"booking_status", "status", "reservation_status"},
		FieldRatePlan:         {"rate_plan"},
		FieldCountry:          {"country"},
		FieldRegion:           {"region"},
		FieldGuestCount:       {"guest_count", "adults"},
		FieldGrossAmount:      {"gross_amount", "grand_total", "total_amount"},
	},
}

// DialectFor selects a dialect by upload hint; unknown or empty hints fall
// back to the merged generic mapping.
func DialectFor(hint string) Dialect {
	switch strings.ToLower(strings.TrimSpace(hint)) {
	case "cloudbeds":
		return cloudbedsDialect
	case "zuzu":
		return zuzuDialect
	default:
		return genericDialect
	}
}

// probe returns the first non-empty value among the dialect's accepted
// headers for a field, trimmed.
func probe(rec domain.Record, d Dialect, f Field) string {
	for _, header := range d.Fields[f] {
		if v := strings.TrimSpace(rec[header]); v != "" {
			return v
		}
	}
	return ""
}
