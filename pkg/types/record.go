// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// Source identifies which dataset a canonical row came from.
type Source string

const (
	SourceArxiv Source = "arxiv"
	SourceACM   Source = "acm"
)

// Column names of the extractor output, in output order.
const (
	ColID          = "id"
	ColTitle       = "title"
	ColAbstract    = "abstract"
	ColCategories  = "categories"
	ColDOI         = "doi"
	ColCreated     = "created"
	ColCreatedYear = "created_year"
	ColUpdated     = "updated"
	ColAuthors     = "authors"
	ColYear        = "year"
	ColSource      = "source"
)

// Column names of the externally exported ACM table.
const (
	ACMColTitle         = "Title"
	ACMColAbstract      = "Abstract"
	ACMColAuthors       = "Authors"
	ACMColDatePublished = "Date published"
)

// ArxivSchema is the column set of the extractor output.
var ArxivSchema = Schema{
	{Name: ColID, Kind: KindString},
	{Name: ColTitle, Kind: KindString},
	{Name: ColAbstract, Kind: KindString},
	{Name: ColCategories, Kind: KindString},
	{Name: ColDOI, Kind: KindString},
	{Name: ColCreated, Kind: KindTime},
	{Name: ColCreatedYear, Kind: KindInt},
	{Name: ColUpdated, Kind: KindTime},
	{Name: ColAuthors, Kind: KindString},
}

// CanonicalSchema is the shared column set both sources are normalized into.
var CanonicalSchema = Schema{
	{Name: ColTitle, Kind: KindString},
	{Name: ColAbstract, Kind: KindString},
	{Name: ColAuthors, Kind: KindString},
	{Name: ColYear, Kind: KindInt},
	{Name: ColSource, Kind: KindString},
}

// ArxivRecord is one row of the extractor output.
type ArxivRecord struct {
	ID         string    `json:"id" yaml:"id"`
	Title      string    `json:"title" yaml:"title"`
	Abstract   string    `json:"abstract" yaml:"abstract"`
	Categories string    `json:"categories" yaml:"categories"`
	DOI        string    `json:"doi" yaml:"doi"`
	Created    time.Time `json:"created" yaml:"created"`

	// CreatedYear is the year of the first version's creation timestamp.
	CreatedYear int `json:"created_year" yaml:"created_year"`

	// Updated is the record's update_date.
	Updated time.Time `json:"updated" yaml:"updated"`
	Authors string    `json:"authors" yaml:"authors"`
}

// ArxivTable is an ordered set of extractor rows.
type ArxivTable []ArxivRecord

// Frame converts the table to a Frame with ArxivSchema. A nil table yields a
// frame with the full header and no rows.
func (t ArxivTable) Frame() Frame {
	rows := make([][]any, len(t))
	for i, r := range t {
		rows[i] = []any{
			r.ID, r.Title, r.Abstract, r.Categories, r.DOI,
			Naive(r.Created), int64(r.CreatedYear), Naive(r.Updated), r.Authors,
		}
	}
	return Frame{Schema: ArxivSchema, Rows: rows}
}

// ArxivTableFromFrame reads an arxiv-shaped frame. Extra columns are ignored.
func ArxivTableFromFrame(f Frame) (ArxivTable, error) {
	idx, err := f.require(ArxivSchema.Names()...)
	if err != nil {
		return nil, err
	}
	out := make(ArxivTable, 0, len(f.Rows))
	for n, row := range f.Rows {
		created, err := AsTime(cell(row, idx[5]))
		if err != nil {
			return nil, fmt.Errorf("row %d %s: %w", n, ColCreated, err)
		}
		year, err := AsInt(cell(row, idx[6]))
		if err != nil {
			return nil, fmt.Errorf("row %d %s: %w", n, ColCreatedYear, err)
		}
		updated, err := AsTime(cell(row, idx[7]))
		if err != nil {
			return nil, fmt.Errorf("row %d %s: %w", n, ColUpdated, err)
		}
		out = append(out, ArxivRecord{
			ID:          AsString(cell(row, idx[0])),
			Title:       AsString(cell(row, idx[1])),
			Abstract:    AsString(cell(row, idx[2])),
			Categories:  AsString(cell(row, idx[3])),
			DOI:         AsString(cell(row, idx[4])),
			Created:     created,
			CreatedYear: year,
			Updated:     updated,
			Authors:     AsString(cell(row, idx[8])),
		})
	}
	return out, nil
}

// ArxivSelectionFromFrame reads only the title, abstract, authors and
// created_year columns of an arxiv-shaped frame, the ones the normalizer
// keeps. Other columns may be absent and are never parsed.
func ArxivSelectionFromFrame(f Frame) (ArxivTable, error) {
	idx, err := f.require(ColTitle, ColAbstract, ColAuthors, ColCreatedYear)
	if err != nil {
		return nil, err
	}
	out := make(ArxivTable, 0, len(f.Rows))
	for n, row := range f.Rows {
		year, err := AsInt(cell(row, idx[3]))
		if err != nil {
			return nil, fmt.Errorf("row %d %s: %w", n, ColCreatedYear, err)
		}
		out = append(out, ArxivRecord{
			Title:       AsString(cell(row, idx[0])),
			Abstract:    AsString(cell(row, idx[1])),
			Authors:     AsString(cell(row, idx[2])),
			CreatedYear: year,
		})
	}
	return out, nil
}

// ACMRecord is the subset of an ACM Digital Library export row the pipeline reads.
type ACMRecord struct {
	Title    string
	Abstract string
	Authors  string

	// DatePublished is kept as text; the normalizer derives the year from it.
	DatePublished string
}

// ACMTable is an ordered set of ACM rows.
type ACMTable []ACMRecord

// ACMTableFromFrame reads an acm-shaped frame. Only Title, Abstract, Authors
// and Date published are required; other export columns are ignored.
func ACMTableFromFrame(f Frame) (ACMTable, error) {
	idx, err := f.require(ACMColTitle, ACMColAbstract, ACMColAuthors, ACMColDatePublished)
	if err != nil {
		return nil, err
	}
	out := make(ACMTable, 0, len(f.Rows))
	for _, row := range f.Rows {
		out = append(out, ACMRecord{
			Title:         AsString(cell(row, idx[0])),
			Abstract:      AsString(cell(row, idx[1])),
			Authors:       AsString(cell(row, idx[2])),
			DatePublished: AsString(cell(row, idx[3])),
		})
	}
	return out, nil
}

// CanonicalRecord is one row of the shared schema.
type CanonicalRecord struct {
	Title    string `json:"title" yaml:"title"`
	Abstract string `json:"abstract" yaml:"abstract"`
	Authors  string `json:"authors" yaml:"authors"`
	Year     int    `json:"year" yaml:"year"`
	Source   Source `json:"source" yaml:"source"`
}

// CanonicalTable is an ordered set of canonical rows.
type CanonicalTable []CanonicalRecord

// Frame converts the table to a Frame with CanonicalSchema.
func (t CanonicalTable) Frame() Frame {
	rows := make([][]any, len(t))
	for i, r := range t {
		rows[i] = []any{r.Title, r.Abstract, r.Authors, int64(r.Year), string(r.Source)}
	}
	return Frame{Schema: CanonicalSchema, Rows: rows}
}

// CanonicalTableFromFrame reads a canonical-shaped frame.
func CanonicalTableFromFrame(f Frame) (CanonicalTable, error) {
	idx, err := f.require(CanonicalSchema.Names()...)
	if err != nil {
		return nil, err
	}
	out := make(CanonicalTable, 0, len(f.Rows))
	for n, row := range f.Rows {
		year, err := AsInt(cell(row, idx[3]))
		if err != nil {
			return nil, fmt.Errorf("row %d %s: %w", n, ColYear, err)
		}
		out = append(out, CanonicalRecord{
			Title:    AsString(cell(row, idx[0])),
			Abstract: AsString(cell(row, idx[1])),
			Authors:  AsString(cell(row, idx[2])),
			Year:     year,
			Source:   Source(AsString(cell(row, idx[4]))),
		})
	}
	return out, nil
}
