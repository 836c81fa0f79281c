// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge unions canonical tables and removes near-duplicate papers by
// normalized title, keeping the first occurrence.
package merge

import (
	"strings"

	"github.com/pdiddy/corpus-builder/pkg/types"
)

// Result holds the merged table and dedup statistics.
type Result struct {
	Rows types.CanonicalTable

	// Input is the number of rows before deduplication.
	Input int

	// DupsRemoved is the number of rows dropped as duplicates.
	DupsRemoved int
}

// Merge concatenates arxiv then acm rows and deduplicates the result.
func Merge(arxiv, acm types.CanonicalTable) Result {
	all := Concat(arxiv, acm)
	rows, removed := Deduplicate(all)
	return Result{Rows: rows, Input: len(all), DupsRemoved: removed}
}

// Concat returns a new table holding the rows of each table in argument order.
func Concat(tables ...types.CanonicalTable) types.CanonicalTable {
	n := 0
	for _, t := range tables {
		n += len(t)
	}
	out := make(types.CanonicalTable, 0, n)
	for _, t := range tables {
		out = append(out, t...)
	}
	return out
}

// Deduplicate keeps the first row for each title Key and drops the rest,
// preserving the order of survivors. It returns the new table and the number
// of rows removed.
func Deduplicate(t types.CanonicalTable) (types.CanonicalTable, int) {
	seen := make(map[string]struct{}, len(t))
	out := make(types.CanonicalTable, 0, len(t))
	for _, r := range t {
		key := Key(r.Title)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out, len(t) - len(out)
}

// Key returns the dedup key of a title: lowercased, with every character
// outside ASCII a-z and 0-9 removed. Spaces, punctuation and non-ASCII
// letters all drop out, so "Deep Learning" and "deep   learning!!" collide.
func Key(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
