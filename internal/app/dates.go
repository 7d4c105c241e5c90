package app

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// canonicalDate is the storage date format, no time component.
const canonicalDate = "2006-01-02"

// dateLayout is one explicit format attempt. List order is the tie-break:
// ambiguous strings like "01/02/2024" resolve per whichever layout matches
// first (day-first beats month-first here).
type dateLayout struct {
	layout       string
	twoDigitYear bool
	noYear       bool
}

var dateLayouts = []dateLayout{
	{layout: "2 Jan 2006 15:04:05"},
	{layout: "2 Jan 2006 15:04"},
	{layout: "2 Jan 2006"},
	{layout: "2006-1-2"},
	{layout: "2-1-2006"},
	{layout: "1-2-2006"},
	{layout: "2006/1/2"},
	{layout: "2/1/2006"},
	{layout: "1/2/2006"},
	{layout: "2.1.2006"},
	{layout: "2-Jan-06", twoDigitYear: true},
	{layout: "2-Jan-2006"},
	{layout: "2-January-2006"},
	{layout: "Jan 2 2006"},
	{layout: "January 2 2006"},
	{layout: "2006-1-2 15:04:05"},
	{layout: "2006-1-2 15:04"},
	{layout: "2-1-2006 15:04:05"},
	{layout: "2-1-2006 15:04"},
	{layout: "1-2-2006 15:04:05"},
	{layout: "1-2-2006 15:04"},
	{layout: "2/1/06", twoDigitYear: true},
	{layout: "1/2/06", twoDigitYear: true},
	{layout: "2.1.06", twoDigitYear: true},
	{layout: "2 Jan", noYear: true},
	{layout: "Jan 2", noYear: true},
	{layout: "2-1", noYear: true},
	{layout: "1-2", noYear: true},
}

var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"20060102",
}

// freeTextLayouts approximate a lenient general-purpose date parse for the
// long tail of exports that embed locale-style timestamps.
var freeTextLayouts = []string{
	time.RFC1123,
	time.RFC1123Z,
	time.RFC850,
	time.ANSIC,
	time.UnixDate,
	"Jan 2, 2006",
	"January 2, 2006",
	"Mon Jan 2 2006",
	"Mon, 2 Jan 2006",
}

const monthAlt = `(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)`

var (
	reDayMonthYear = regexp.MustCompile(`(?i)^(\d{1,2})\s+` + monthAlt + `\s+(\d{4})(\s+\d{1,2}:\d{2}(:\d{2})?)?$`)
	reDayMonth     = regexp.MustCompile(`(?i)^(\d{1,2})\s+` + monthAlt + `$`)
	reMonthDay     = regexp.MustCompile(`(?i)^` + monthAlt + `\s+(\d{1,2})$`)
)

var monthsByAbbr = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// NormalizeDate parses an arbitrary export date string into the canonical
// "YYYY-MM-DD" form. nil means "unknown date": callers default or skip, a
// parse miss is never a fatal fault. defaultYear fills layouts that carry
// no year at all; zero means the current calendar year.
func NormalizeDate(raw string, defaultYear int) *string {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "N/A") {
		return nil
	}
	if defaultYear <= 0 {
		defaultYear = time.Now().Year()
	}

	for _, dl := range dateLayouts {
		t, err := time.Parse(dl.layout, s)
		if err != nil {
			continue
		}
		if dl.twoDigitYear {
			// Century pivot: two-digit year < 50 is 2000s, else 1900s.
			yy := t.Year() % 100
			century := 1900
			if yy < 50 {
				century = 2000
			}
			t = time.Date(century+yy, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
		if dl.noYear {
			t = time.Date(defaultYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
		return canonical(t)
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return canonical(t)
		}
	}

	for _, layout := range freeTextLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return canonical(t)
		}
	}

	if out := parseMonthNameForms(s, defaultYear); out != nil {
		return out
	}

	log.Warn().Str("value", raw).Msg("failed to parse date, returning null")
	return nil
}

// parseMonthNameForms covers case-insensitive "<day> <Mon> <year> [time]",
// "<day> <Mon>" and "<Mon> <day>" spellings the layout list misses.
func parseMonthNameForms(s string, defaultYear int) *string {
	if m := reDayMonthYear.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[3])
		return monthNameDate(day, m[2], year)
	}
	if m := reDayMonth.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		return monthNameDate(day, m[2], defaultYear)
	}
	if m := reMonthDay.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[2])
		return monthNameDate(day, m[1], defaultYear)
	}
	return nil
}

func monthNameDate(day int, monthAbbr string, year int) *string {
	month, ok := monthsByAbbr[strings.ToLower(monthAbbr)]
	if !ok {
		return nil
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != month {
		// time.Date normalized an out-of-range day; treat as unparseable.
		return nil
	}
	return canonical(t)
}

func canonical(t time.Time) *string {
	out := t.Format(canonicalDate)
	return &out
}

// addDays shifts a canonical date string by whole calendar days.
func addDays(date string, days int) string {
	t, err := time.Parse(canonicalDate, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, days).Format(canonicalDate)
}
