// Package csvfile reads delimited export files into ordered header->value
// records, normalizing header spellings so dialect tables can match on one
// canonical form.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"wandr_ingest/internal/domain"
)

type Reader struct{}

func New() *Reader { return &Reader{} }

// Read loads the whole file into memory in row order. Ragged rows are
// tolerated: short rows leave trailing fields empty, extra cells are
// dropped.
func (r *Reader) Read(path string) ([]domain.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decode csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		if i == 0 {
			h = strings.TrimPrefix(h, "\uFEFF") // Excel exports love a BOM
		}
		headers[i] = NormalizeHeader(h)
	}

	out := make([]domain.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(domain.Record, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// NormalizeHeader lower-cases a header and collapses every run of
// non-alphanumerics to a single underscore:
// "Cancellation/No show date" -> "cancellation_no_show_date".
func NormalizeHeader(h string) string {
	var b strings.Builder
	b.Grow(len(h))
	prevUnderscore := true // also swallows leading separators
	for _, r := range strings.ToLower(strings.TrimSpace(h)) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if alnum {
			b.WriteRune(r)
			prevUnderscore = false
			continue
		}
		if !prevUnderscore {
			b.WriteByte('_')
			prevUnderscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
