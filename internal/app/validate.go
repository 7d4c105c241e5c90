package app

import (
	"fmt"
	"strings"

	"wandr_ingest/internal/domain"
)

// ValidateBatch checks a dialect-hinted upload before anything is
// persisted: every required header must be present and every row must carry
// its mandatory fields. Generic uploads skip validation entirely.
// A non-nil return is always a *domain.ValidationError.
func ValidateBatch(records []domain.Record, d Dialect) error {
	if len(d.RequiredHeaders) == 0 || len(records) == 0 {
		return nil
	}

	var problems []string
	if missing := missingHeaders(records[0], d.RequiredHeaders); len(missing) > 0 {
		problems = append(problems, fmt.Sprintf("missing headers: %s", strings.Join(missing, ", ")))
	} else {
		for i, rec := range records {
			problems = append(problems, validateRow(rec, d, i+2)...) // +2: header line, 1-based
		}
	}

	if len(problems) > 0 {
		return &domain.ValidationError{Problems: problems}
	}
	return nil
}

func missingHeaders(rec domain.Record, required []string) []string {
	var missing []string
	for _, h := range required {
		if _, ok := rec[h]; !ok {
			missing = append(missing, h)
		}
	}
	return missing
}

func validateRow(rec domain.Record, d Dialect, line int) []string {
	var problems []string
	if probe(rec, d, FieldBookingID) == "" {
		problems = append(problems, fmt.Sprintf("row %d: missing reservation number or channel booking id", line))
	}
	if probe(rec, d, FieldTravellerName) == "" && probe(rec, d, FieldTravellerEmail) == "" {
		problems = append(problems, fmt.Sprintf("row %d: missing traveller name and traveller email", line))
	}
	if probe(rec, d, FieldArrivalDate) == "" {
		problems = append(problems, fmt.Sprintf("row %d: missing arrival date", line))
	}
	if probe(rec, d, FieldDepartureDate) == "" {
		problems = append(problems, fmt.Sprintf("row %d: missing departure date", line))
	}
	if probe(rec, d, FieldGrossAmount) == "" {
		problems = append(problems, fmt.Sprintf("row %d: missing gross amount", line))
	}
	return problems
}
