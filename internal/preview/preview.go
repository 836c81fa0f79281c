// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package preview prints the head of a table for inspection on a terminal.
package preview

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/pdiddy/corpus-builder/pkg/types"
)

// Write prints the column header and up to limit rows of f to w. Cells are
// cut to width display columns; line breaks inside cells are shown as spaces.
// A limit of zero or less prints every row.
func Write(w io.Writer, f types.Frame, limit, width int) {
	if width < 4 {
		width = 4
	}
	n := f.Len()
	if limit <= 0 || limit > n {
		limit = n
	}

	table := make([][]string, 0, limit+1)
	table = append(table, f.Schema.Names())
	for _, row := range f.Rows[:limit] {
		cells := make([]string, len(f.Schema))
		for i := range cells {
			if i < len(row) {
				cells[i] = cellText(row[i], width)
			}
		}
		table = append(table, cells)
	}

	widths := make([]int, len(f.Schema))
	for _, row := range table {
		for i, c := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(c))
		}
	}

	for r, row := range table {
		fmt.Fprintln(w, formatRow(row, widths))
		if r == 0 {
			rule := make([]string, len(widths))
			for i, wd := range widths {
				rule[i] = strings.Repeat("-", wd)
			}
			fmt.Fprintln(w, formatRow(rule, widths))
		}
	}

	fmt.Fprintf(w, "\n%d rows x %d columns", n, len(f.Schema))
	if limit < n {
		fmt.Fprintf(w, " (showing %d)", limit)
	}
	fmt.Fprintln(w)
}

func formatRow(cells []string, widths []int) string {
	var sb strings.Builder
	for i, c := range cells {
		if i > 0 {
			sb.WriteString("  ")
		}
		if i == len(cells)-1 {
			sb.WriteString(c)
			continue
		}
		sb.WriteString(runewidth.FillRight(c, widths[i]))
	}
	return strings.TrimRight(sb.String(), " ")
}

func cellText(v any, width int) string {
	s := strings.Join(strings.Fields(types.AsString(v)), " ")
	return runewidth.Truncate(s, width, "...")
}
