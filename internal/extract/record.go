// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/segmentio/encoding/json"

	"github.com/pdiddy/corpus-builder/pkg/types"
)

var (
	// ErrMissingField marks a record that lacks a field the extractor needs.
	ErrMissingField = errors.New("missing field")

	// ErrMalformedRecord marks a line that is not a decodable metadata record.
	ErrMalformedRecord = errors.New("malformed record")
)

// LineError ties a record failure to its 1-based line in the input.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// sourceVersion is one entry of a record's version history.
type sourceVersion struct {
	Version string `json:"version"`
	Created string `json:"created"`
}

// Validate validates the version entry.
func (v sourceVersion) Validate() error {
	return validation.ValidateStruct(&v,
		validation.Field(&v.Created, validation.Required),
	)
}

// sourceRecord is one line of the arXiv metadata snapshot. Pointer fields
// tell an absent key apart from an empty value.
type sourceRecord struct {
	ID         *string         `json:"id"`
	Submitter  string          `json:"submitter"`
	Authors    string          `json:"authors"`
	Title      *string         `json:"title"`
	Categories string          `json:"categories"`
	DOI        *string         `json:"doi"`
	Abstract   *string         `json:"abstract"`
	Versions   []sourceVersion `json:"versions"`
	UpdateDate *string         `json:"update_date"`
}

// Validate checks that the keys the extractor reads are present. Empty
// values are accepted; doi may be null.
func (r *sourceRecord) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID, validation.NotNil),
		validation.Field(&r.Title, validation.NotNil),
		validation.Field(&r.Abstract, validation.NotNil),
		validation.Field(&r.Versions, validation.Required),
		validation.Field(&r.UpdateDate, validation.NotNil, validation.Date(types.DateLayout)),
	)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// created returns the creation timestamp of the first version.
func (r *sourceRecord) created() string {
	return r.Versions[0].Created
}

// decodeRecord parses and validates one input line.
func decodeRecord(line []byte) (*sourceRecord, error) {
	var rec sourceRecord
	if err := json.Unmarshal(line, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingField, err)
	}
	return &rec, nil
}

// CreatedYear returns the year of a version timestamp such as
// "Mon, 2 Apr 2007 19:18:42 GMT": the fourth space-separated token.
func CreatedYear(ts string) (int, error) {
	parts := strings.Split(ts, " ")
	if len(parts) < 4 {
		return 0, fmt.Errorf("%w: timestamp %q has no year token", ErrMalformedRecord, ts)
	}
	year, err := strconv.Atoi(parts[3])
	if err != nil {
		return 0, fmt.Errorf("%w: timestamp %q: year %q is not a number", ErrMalformedRecord, ts, parts[3])
	}
	return year, nil
}

var createdLayouts = []string{
	"Mon, _2 Jan 2006 15:04:05 MST",
	time.RFC1123Z,
}

// parseCreated parses a version timestamp and drops its zone.
func parseCreated(ts string) (time.Time, error) {
	for _, layout := range createdLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return types.Naive(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognized timestamp %q", ErrMalformedRecord, ts)
}

// toArxivRecord builds the output row for a record that passed the filters.
func toArxivRecord(rec *sourceRecord, year int) (types.ArxivRecord, error) {
	created, err := parseCreated(rec.created())
	if err != nil {
		return types.ArxivRecord{}, err
	}
	var updated time.Time
	if date := deref(rec.UpdateDate); date != "" {
		updated, err = time.Parse(types.DateLayout, date)
		if err != nil {
			return types.ArxivRecord{}, fmt.Errorf("%w: update_date %q", ErrMalformedRecord, date)
		}
	}
	return types.ArxivRecord{
		ID:          deref(rec.ID),
		Title:       deref(rec.Title),
		Abstract:    deref(rec.Abstract),
		Categories:  rec.Categories,
		DOI:         deref(rec.DOI),
		Created:     created,
		CreatedYear: year,
		Updated:     types.Naive(updated),
		Authors:     rec.Authors,
	}, nil
}
