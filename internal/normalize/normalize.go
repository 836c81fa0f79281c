// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize projects source-shaped tables onto the canonical schema
// (title, abstract, authors, year, source). Each function returns a new table
// with exactly one output row per input row, in input order.
package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/corpus-builder/pkg/types"
)

// FromArxiv keeps title, abstract and authors, takes year from created_year
// and tags every row as arxiv.
func FromArxiv(t types.ArxivTable) types.CanonicalTable {
	out := make(types.CanonicalTable, len(t))
	for i, r := range t {
		out[i] = types.CanonicalRecord{
			Title:    r.Title,
			Abstract: r.Abstract,
			Authors:  r.Authors,
			Year:     r.CreatedYear,
			Source:   types.SourceArxiv,
		}
	}
	return out
}

// FromACM keeps Title, Abstract and Authors, derives year from Date published
// and tags every row as acm. A date without a leading integer year fails the
// whole table.
func FromACM(t types.ACMTable) (types.CanonicalTable, error) {
	out := make(types.CanonicalTable, len(t))
	for i, r := range t {
		year, err := ACMYear(r.DatePublished)
		if err != nil {
			return nil, fmt.Errorf("acm row %d: %w", i, err)
		}
		out[i] = types.CanonicalRecord{
			Title:    r.Title,
			Abstract: r.Abstract,
			Authors:  r.Authors,
			Year:     year,
			Source:   types.SourceACM,
		}
	}
	return out, nil
}

// ACMYear returns the integer before the first "-" of a published date:
// "2021-05-01" and "2021-05-01 00:00:00" give 2021, "2019" gives 2019.
func ACMYear(date string) (int, error) {
	head, _, _ := strings.Cut(date, "-")
	year, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0, fmt.Errorf("%w: date published %q has no leading year", types.ErrCoerce, date)
	}
	return year, nil
}
