// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package preview

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/corpus-builder/pkg/types"
)

func sample() types.Frame {
	return types.CanonicalTable{
		{Title: "Short", Abstract: "line one\nline two", Authors: "A", Year: 2020, Source: types.SourceArxiv},
		{Title: "日本語のタイトル", Abstract: "abs", Authors: "B", Year: 2021, Source: types.SourceACM},
		{Title: "Third", Abstract: "abs", Authors: "C", Year: 2022, Source: types.SourceACM},
	}.Frame()
}

func TestWriteLimitsRows(t *testing.T) {
	var buf bytes.Buffer
	Write(&buf, sample(), 2, 40)
	out := buf.String()

	assert.Contains(t, out, "title")
	assert.Contains(t, out, "Short")
	assert.NotContains(t, out, "Third")
	assert.Contains(t, out, "3 rows x 5 columns (showing 2)")
	assert.Contains(t, out, "line one line two")
}

func TestWriteAllRows(t *testing.T) {
	var buf bytes.Buffer
	Write(&buf, sample(), 0, 40)
	assert.Contains(t, buf.String(), "Third")
	assert.NotContains(t, buf.String(), "showing")
}

func TestWriteTruncatesWideCells(t *testing.T) {
	var buf bytes.Buffer
	Write(&buf, sample(), 0, 8)
	out := buf.String()

	assert.Contains(t, out, "日本...")
	assert.NotContains(t, out, "日本語のタイトル")
}

func TestWriteAlignsByDisplayWidth(t *testing.T) {
	var buf bytes.Buffer
	Write(&buf, sample(), 0, 40)

	lines := strings.Split(buf.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	want := runewidth.StringWidth(lines[0][:strings.Index(lines[0], "abstract")])
	for _, tc := range []struct {
		line int
		cell string
	}{{2, "line one"}, {3, "abs"}} {
		l := lines[tc.line]
		assert.Equal(t, want, runewidth.StringWidth(l[:strings.Index(l, tc.cell)]), "row %q", l)
	}
}

func TestWriteEmptyFrame(t *testing.T) {
	var buf bytes.Buffer
	Write(&buf, types.ArxivTable(nil).Frame(), 5, 20)
	assert.Contains(t, buf.String(), "created_year")
	assert.Contains(t, buf.String(), "0 rows x 9 columns")
}
