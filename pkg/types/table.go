// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the corpus-builder pipeline:
// typed record tables for each source shape, the canonical merged row, the
// explicit column schema descriptor, and the untyped Frame that table file
// codecs read and write.
package types

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrMissingColumn is returned when a table lacks a column its shape requires.
var ErrMissingColumn = errors.New("missing column")

// ErrCoerce is returned when a cell value cannot be converted to its column kind.
var ErrCoerce = errors.New("cannot coerce value")

// Kind is the storage type of a column.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindTime
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindTime:
		return "time"
	default:
		return "string"
	}
}

// Column names one column of a table and its storage kind.
type Column struct {
	Name string `json:"name" yaml:"name"`
	Kind Kind   `json:"kind" yaml:"kind"`
}

// Schema is an ordered list of columns.
type Schema []Column

// Names returns the column names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

// Index returns the position of the named column, or -1.
func (s Schema) Index(name string) int {
	for i, c := range s {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Equal reports whether both schemas have the same names and kinds in the same order.
func (s Schema) Equal(o Schema) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// Frame is a materialized table with loosely typed cells. Cell values are
// string, int64, time.Time or nil. Readers of untyped formats (spreadsheet,
// CSV) produce string cells; typed readers produce the column kind.
type Frame struct {
	Schema Schema
	Rows   [][]any
}

// Len returns the number of rows.
func (f Frame) Len() int { return len(f.Rows) }

// require returns the column positions of names, failing on the first one absent.
func (f Frame) require(names ...string) ([]int, error) {
	idx := make([]int, len(names))
	for i, n := range names {
		idx[i] = f.Schema.Index(n)
		if idx[i] < 0 {
			return nil, fmt.Errorf("%w %q (have %s)", ErrMissingColumn, n, strings.Join(f.Schema.Names(), ", "))
		}
	}
	return idx, nil
}

// cell returns row[i], tolerating short rows.
func cell(row []any, i int) any {
	if i < len(row) {
		return row[i]
	}
	return nil
}

// Naive drops the location of t while keeping its wall clock, so downstream
// writers always see a zone-less timestamp.
func Naive(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// TimeLayout is the textual form used for timestamps in untyped formats.
const TimeLayout = "2006-01-02 15:04:05"

// DateLayout is the textual form of a date without a time of day.
const DateLayout = "2006-01-02"

// AsString renders any cell value as text.
func AsString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format(TimeLayout)
	default:
		return fmt.Sprint(x)
	}
}

// AsInt coerces a cell to an integer. Text cells must hold an integer,
// optionally written with a zero fraction ("2019.0") as spreadsheets often do.
func AsInt(v any) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case float64:
		if x != math.Trunc(x) {
			return 0, fmt.Errorf("%w: %v to int", ErrCoerce, x)
		}
		return int(x), nil
	case string:
		s := strings.TrimSpace(x)
		if n, err := strconv.Atoi(s); err == nil {
			return n, nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) {
			return int(f), nil
		}
		return 0, fmt.Errorf("%w: %q to int", ErrCoerce, x)
	default:
		return 0, fmt.Errorf("%w: %T to int", ErrCoerce, v)
	}
}

var timeLayouts = []string{
	TimeLayout,
	DateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"Mon, _2 Jan 2006 15:04:05 MST",
	time.RFC1123Z,
}

// AsTime coerces a cell to a naive timestamp. Empty cells yield the zero time.
func AsTime(v any) (time.Time, error) {
	switch x := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return Naive(x), nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return time.Time{}, nil
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return Naive(t), nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: %q to time", ErrCoerce, x)
	default:
		return time.Time{}, fmt.Errorf("%w: %T to time", ErrCoerce, v)
	}
}
