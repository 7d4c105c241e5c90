package app

import "strings"

/********** hotel alias registry (single source of truth) **********/

// legacyPrefix marks exports from the pre-rebrand property system.
const legacyPrefix = "Settl."

// hotelAlias maps one canonical hotel to every raw spelling seen in the
// wild. Order matters: the first entry that matches wins.
type hotelAlias struct {
	canonical string
	aliases   []string
}

var hotelAliases = []hotelAlias{
	{"Wandr Centauri", []string{"Settl. Pisa A", "Settl. Pisa B", "Settl.Pisa block b", "Settl. Pisa Block B", "Settl.Pisa", "settl.Pisa A", "Settl.pisa Block A", "Settl.Pisa Block B", "Settl. Pisa Block A", "Settl Pisa Block B", "Settl.pisa", "Settl.Pisa block A", "settl.pisa block B"}},
	{"Wandr Alberia", []string{"Settl. Alba"}},
	{"Wandr Lepus", []string{"Settl. Lumia", "settl. Lumia"}},
	{"Wandr Tiaki", []string{"Settl. Tavira", "Settl Tavira"}},
	{"Wandr Leo", []string{"Settl. Colmar", "Settl.colmar", "Sttl.Colmar"}},
	{"Wandr Serpens", []string{"Settl. Sorrento"}},
	{"Wandr Taurus", []string{"Settl. Alberti", "Setll.Alberti"}},
	{"Wandr Vela", []string{"Settl. Verona"}},
	{"Wandr Sagitta", []string{"Settl. Samoa"}},
	{"Wandr Urbian", []string{"Settl. Urbino"}},
	{"Wandr Alcor", []string{"Settl. Athea"}},
	{"Wandr Pilar", []string{"Settl. Prague", "Settl Prague"}},
	{"Wandr Gemini", []string{"Settl. Delvin"}},
	{"Wandr Aries", []string{"Settl. Arlon", "settl. Arlon"}},
	{"Wandr Auriga", []string{"Settl. Hallstatt", "settl. Hallstatt"}},
	{"Wandr Sarin", []string{"Settl. Sofia"}},
	{"Wandr Mizar", []string{"Settl. Springfield", "settl. Springfield"}},
	{"Wandr Vega", []string{"Settl. Vienna"}},
	{"Wandr Ogma", []string{"Settl. Oslo"}},
	{"Wandr Azura", []string{"Settl. Azore"}},
	{"Wandr Dorado", []string{"Settl. Deia", "Settl Deia"}},
	{"Wandr Polaris", []string{"Settl. Bologna"}},
	{"Wandr Nodus", []string{"Settl. Nola"}},
	{"Wandr Deneb", []string{"Settl. Dinant"}},
	{"Wandr Orion", []string{"Settl. Tellaro", "Settl Tellaro"}},
	{"Wandr Berlin", []string{"Settl. Bosa"}},
	{"Wandr Naos", []string{"Settl. Norcia"}},
	{"Wandr Sirius", []string{"Settl. Santana"}},
	{"Wandr Salm", []string{"Settl. Santorini"}},
	{"Wandr Caroli", []string{"Settl. Contes"}},
	{"Wandr Virgo", []string{"Settl. Vernazza"}},
	{"Wandr Libertas", []string{"Settl. Lugano"}},
	{"Wandr Mensa", []string{"Settl. Monsanto", "settl. Monsanto"}},
	{"Wandr Rigel", []string{"Settl. Reine"}},
	{"Wandr Sargas", []string{"Settl. Samara"}},
	{"Wandr Rigarus", []string{"Settl. Riga"}},
	{"Wandr Meleph", []string{"Settl. Minori"}},
	{"Wandr Carina", []string{"Settl. Belfort"}},
	{"Wandr Altair", []string{"Settl. Altea"}},
	{"Wandr Gomeisa", []string{"Settl. Gorbio"}},
	{"Wandr Clarion", []string{"Settl. Clare"}},
	{"Wandr Blaze", []string{"Settl. Bron"}},
	{"Wandr Almira", []string{"Settl. Amalfi"}},
	{"Wandr Scorpious", []string{"Settl. Siena Block A", "Settl. Siena A Block", "Settl. Siena", "Settl.siena", "Sttl.siena A", "Settl.siena Block A"}},
}

// ResolveHotelName maps a raw export hotel name to its canonical name.
// Unmatched names pass through unchanged.
func ResolveHotelName(raw string) string {
	name := convertLegacyName(raw)
	name = correctSpelling(name)
	return mergeLegacyNames(name)
}

func convertLegacyName(raw string) string {
	cleaned := raw
	if strings.HasPrefix(raw, legacyPrefix) {
		cleaned = strings.TrimSpace(raw[len(legacyPrefix):])
	}
	for _, h := range hotelAliases {
		for _, alias := range h.aliases {
			if alias == raw || strings.HasSuffix(alias, cleaned) {
				return h.canonical
			}
		}
	}
	return raw
}

// correctSpelling fixes two recurring misspellings of canonical names.
func correctSpelling(name string) string {
	switch name {
	case "Wandr Riganus":
		return "Wandr Rigarus"
	case "Wandr Scorpius":
		return "Wandr Scorpious"
	}
	return name
}

// mergeLegacyNames folds the two pre-merger names of the Ulsoor property
// into its post-merger name. Hardcoded exception, not table-driven.
func mergeLegacyNames(name string) string {
	if name == "Wandr Coles road" || name == "Settl. Ulsoor" {
		return "Wandr Settl Ulsoor"
	}
	return name
}

/********** channel registry **********/

type channelAlias struct {
	canonical string
	aliases   []string
}

var channelAliases = []channelAlias{
	{"MMT", []string{"GO MMT", "MakeMyTrip", "GoibiboPrepay"}},
	{"Booking", []string{"Booking.Com", "Booking.comPostpay"}},
	{"Expedia", []string{"Expedia", "ExpediaPostpay", "ExpediaPrepay"}},
	{"Agoda", []string{"Agoda", "AgodaPrepay"}},
	{"Airbnb", []string{"AirBnB", "AirbnbPrepay"}},
	{"Booking engine", []string{"BEIscheduled", "GoogleScheduled", "Zuzu"}},
	{"B2B", []string{"B2B", "Broker Network"}},
	{"Ctrip", []string{"CtripPrepay"}},
	{"Extension", []string{"Extension", "LS Extension", "Wandr Extension", "Settl Extension"}},
	{"Walkin", []string{"HotelOfflinePostpay", "HotelOfflinePrepay", "HotelWalk-in"}},
	{"Inbound Call", []string{"Inbound", "inbound"}},
}

// MapChannel canonicalizes a raw channel/source string. Anything empty or
// unrecognized lands in "OTHERS".
func MapChannel(raw string) string {
	channel := strings.TrimSpace(raw)
	if channel == "" {
		return "OTHERS"
	}
	for _, c := range channelAliases {
		for _, alias := range c.aliases {
			if alias == channel {
				return c.canonical
			}
		}
		if strings.EqualFold(channel, c.canonical) {
			return c.canonical
		}
	}
	return "OTHERS"
}

/********** status registry **********/

type statusAlias struct {
	canonical string
	aliases   []string
}

var statusAliases = []statusAlias{
	{"Check-in", []string{"Auto checked-in", "Check In", "Checked In", "Checked-in", "Complete checked in", "One-click checked in"}},
	{"Check-out", []string{"Auto checked-out", "Check Out", "Completed", "Completed ", "Complete checked out", "One-click checked out"}},
	{"Confirmed", []string{"Booked", "Confirmed", "Confirmed modified", "Confirmed Modify", "Reserved"}},
	{"Cancelled", []string{"Cancelled", "Cancel", "Cancelled Already"}},
	{"No show", []string{"No Show", "No-show", "Noshow Test"}},
}

// MapStatus canonicalizes a raw booking status. Empty becomes "Unknown";
// an unmatched status passes through unchanged so novel PMS statuses stay
// visible in the data instead of collapsing into a bucket.
func MapStatus(raw string) string {
	status := strings.TrimSpace(raw)
	if status == "" {
		return "Unknown"
	}
	for _, s := range statusAliases {
		for _, alias := range s.aliases {
			if alias == status {
				return s.canonical
			}
		}
	}
	return status
}
