// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract streams the arXiv metadata snapshot and keeps the records
// that fall in the configured year range and pass the keyword policy.
// The pass is sequential; only the current line and the kept rows are held
// in memory.
package extract

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/charmap"

	"github.com/pdiddy/corpus-builder/pkg/types"
)

// maxLineSize bounds a single input line. Snapshot lines are a few KB; some
// abstracts with inline LaTeX run much longer.
const maxLineSize = 16 << 20

// Result holds the kept rows and the counts of one extraction pass.
type Result struct {
	Rows types.ArxivTable

	// Missing is true when the input file did not exist.
	Missing bool

	Scanned int
	Kept    int
	TooOld  int

	// Rejected counts records dropped by keyword group, keyed by the first
	// group that had no matching term.
	Rejected map[string]int

	// Skipped counts malformed lines dropped in lenient mode.
	Skipped int
}

// NoMatch returns the number of records dropped by the keyword policy.
func (r Result) NoMatch() int {
	n := 0
	for _, c := range r.Rejected {
		n += c
	}
	return n
}

// Run extracts from the file at cfg.InputPath. A missing file is reported on
// w and yields an empty result, not an error.
func Run(cfg types.ExtractConfig, w io.Writer) (Result, error) {
	dir := filepath.Dir(cfg.InputPath)
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	fmt.Fprintf(w, "searching for the input in: %s\n", abs)
	files, _ := filepath.Glob(filepath.Join(dir, "*"))
	fmt.Fprintf(w, "files found in the directory: %v\n", files)

	f, err := os.Open(cfg.InputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(w, "warning: input %s was not found, please provide it; returning an empty table\n", cfg.InputPath)
			return Result{Missing: true, Rejected: map[string]int{}}, nil
		}
		return Result{}, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	return Scan(f, cfg, w)
}

// Scan reads newline-delimited JSON records from r and keeps those created in
// cfg.MinYear or later whose abstract satisfies cfg.Policy. Source order is
// preserved. A malformed line aborts the pass with a *LineError unless
// cfg.Lenient is set, in which case it is reported on w and skipped.
func Scan(r io.Reader, cfg types.ExtractConfig, w io.Writer) (Result, error) {
	src, err := decodeInput(r, cfg.Encoding)
	if err != nil {
		return Result{}, err
	}

	matcher := NewMatcher(cfg.Policy)
	res := Result{Rejected: make(map[string]int)}

	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for sc.Scan() {
		line++
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		res.Scanned++

		row, kept, miss, err := process(raw, cfg.MinYear, matcher)
		if err != nil {
			lerr := &LineError{Line: line, Err: err}
			if !cfg.Lenient {
				return Result{}, lerr
			}
			fmt.Fprintf(w, "warning: skipping %v\n", lerr)
			res.Skipped++
			continue
		}

		switch {
		case kept:
			res.Rows = append(res.Rows, row)
			res.Kept++
		case miss != "":
			res.Rejected[miss]++
		default:
			res.TooOld++
		}
	}
	if err := sc.Err(); err != nil {
		return Result{}, fmt.Errorf("reading input at line %d: %w", line+1, err)
	}

	fmt.Fprintf(w, "scanned: %d, kept: %d, too old: %d, no keyword match: %d, skipped: %d\n",
		res.Scanned, res.Kept, res.TooOld, res.NoMatch(), res.Skipped)
	return res, nil
}

// process decodes one line and applies the filters. A dropped record has
// kept false and miss set to the failing keyword group, or empty when it was
// dropped by the year floor.
func process(raw []byte, minYear int, matcher *Matcher) (row types.ArxivRecord, kept bool, miss string, err error) {
	rec, err := decodeRecord(raw)
	if err != nil {
		return row, false, "", err
	}

	year, err := CreatedYear(rec.created())
	if err != nil {
		return row, false, "", err
	}
	if year < minYear {
		return row, false, "", nil
	}

	if group := matcher.FirstMiss(deref(rec.Abstract)); group != "" {
		return row, false, group, nil
	}

	row, err = toArxivRecord(rec, year)
	if err != nil {
		return row, false, "", err
	}
	return row, true, "", nil
}

func decodeInput(r io.Reader, encoding string) (io.Reader, error) {
	switch encoding {
	case types.EncodingLatin1, "":
		return charmap.ISO8859_1.NewDecoder().Reader(r), nil
	case types.EncodingUTF8:
		return r, nil
	default:
		return nil, fmt.Errorf("unsupported input encoding %q", encoding)
	}
}
