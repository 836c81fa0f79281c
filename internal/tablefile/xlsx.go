// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tablefile

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/corpus-builder/pkg/types"
)

// writeXLSX writes f to the first sheet with a header row. Timestamps are
// written as text in types.TimeLayout so they read back unchanged. Text longer
// than the spreadsheet cell limit (excelize.TotalCellChars) is cut to the limit
// and a warning is logged for each cut cell.
func writeXLSX(path string, f types.Frame) error {
	book := excelize.NewFile()
	defer book.Close()

	sheet := book.GetSheetName(0)
	sw, err := book.NewStreamWriter(sheet)
	if err != nil {
		return err
	}

	header := make([]any, len(f.Schema))
	for i, name := range f.Schema.Names() {
		header[i] = name
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	values := make([]any, len(f.Schema))
	for n, row := range f.Rows {
		for i := range values {
			values[i] = xlsxValue(cellAt(row, i))
			if text, ok := values[i].(string); ok {
				if cut, chars := fitCell(text); chars > 0 {
					slog.Warn("spreadsheet cell truncated", "path", path, "row", n+2,
						"column", f.Schema[i].Name, "chars", chars, "limit", excelize.TotalCellChars)
					values[i] = cut
				}
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, n+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, values); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return book.SaveAs(path)
}

func xlsxValue(v any) any {
	switch x := v.(type) {
	case nil:
		return ""
	case time.Time:
		return types.AsString(x)
	case int64, int, float64:
		return x
	default:
		return types.AsString(x)
	}
}

// fitCell cuts s to excelize.TotalCellChars characters. chars is the original
// length when s was cut, and 0 otherwise.
func fitCell(s string) (cut string, chars int) {
	if len(s) <= excelize.TotalCellChars {
		return s, 0
	}
	n := utf8.RuneCountInString(s)
	if n <= excelize.TotalCellChars {
		return s, 0
	}
	return string([]rune(s)[:excelize.TotalCellChars]), n
}

func cellAt(row []any, i int) any {
	if i < len(row) {
		return row[i]
	}
	return nil
}

// readXLSX reads the first sheet; its first row is the header. All cells are
// returned as text. Numeric cells carrying a date format are rendered in
// types.TimeLayout rather than as serial day numbers.
func readXLSX(path string) (types.Frame, error) {
	book, err := excelize.OpenFile(path)
	if err != nil {
		return types.Frame{}, err
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return types.Frame{}, errors.New("workbook has no sheets")
	}
	sheet := sheets[0]

	rows, err := book.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return types.Frame{}, err
	}
	if len(rows) == 0 {
		return types.Frame{}, errors.New("empty sheet")
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = cleanCell(h)
	}

	dates := dateDetector{book: book, sheet: sheet}
	if props, err := book.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		dates.date1904 = *props.Date1904
	}

	f := types.Frame{Schema: untypedSchema(header)}
	for r, cells := range rows[1:] {
		if isBlankRow(cells) {
			continue
		}
		row := make([]any, len(header))
		for c := range row {
			v := ""
			if c < len(cells) {
				v = cells[c]
			}
			if s, ok := dates.render(c, r+2, v); ok {
				v = s
			}
			row[c] = v
		}
		f.Rows = append(f.Rows, row)
	}
	return f, nil
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// dateDetector converts serial-number cells whose style is a date format.
type dateDetector struct {
	book     *excelize.File
	sheet    string
	date1904 bool
}

// render returns the date text for the cell at 0-based column col and
// 1-based row, or false when the cell is not a date.
func (d dateDetector) render(col, row int, raw string) (string, bool) {
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", false
	}
	name, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return "", false
	}
	styleID, err := d.book.GetCellStyle(d.sheet, name)
	if err != nil || styleID == 0 {
		return "", false
	}
	style, err := d.book.GetStyle(styleID)
	if err != nil || !isDateFormat(style) {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(serial, d.date1904)
	if err != nil {
		return "", false
	}
	return t.Format(types.TimeLayout), true
}

// isDateFormat reports whether a cell style displays its number as a date.
func isDateFormat(style *excelize.Style) bool {
	if style.CustomNumFmt != nil {
		return strings.ContainsAny(stripLiterals(strings.ToLower(*style.CustomNumFmt)), "yd")
	}
	switch n := style.NumFmt; {
	case n >= 14 && n <= 22, n >= 27 && n <= 36, n >= 45 && n <= 47, n >= 50 && n <= 58:
		return true
	}
	return false
}

// stripLiterals drops [bracketed] modifiers and "quoted" text from a number
// format code, leaving only the placeholders.
func stripLiterals(code string) string {
	var b strings.Builder
	var closer rune
	for _, r := range code {
		switch {
		case closer != 0:
			if r == closer {
				closer = 0
			}
		case r == '[':
			closer = ']'
		case r == '"':
			closer = '"'
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
