// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tablefile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/corpus-builder/pkg/types"
)

func writeCSV(path string, f types.Frame) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write(f.Schema.Names()); err != nil {
		return err
	}
	record := make([]string, len(f.Schema))
	for _, row := range f.Rows {
		for i := range record {
			record[i] = ""
			if i < len(row) {
				record[i] = types.AsString(row[i])
			}
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return out.Close()
}

func readCSV(path string) (types.Frame, error) {
	in, err := os.Open(path)
	if err != nil {
		return types.Frame{}, err
	}
	defer in.Close()

	r := csv.NewReader(in)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return types.Frame{}, errors.New("empty csv")
		}
		return types.Frame{}, err
	}
	for i := range header {
		header[i] = cleanCell(header[i])
	}

	f := types.Frame{Schema: untypedSchema(header)}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return types.Frame{}, fmt.Errorf("row %d: %w", len(f.Rows)+1, err)
		}
		row := make([]any, len(header))
		for i := range row {
			if i < len(rec) {
				row[i] = rec[i]
			} else {
				row[i] = ""
			}
		}
		f.Rows = append(f.Rows, row)
	}
	return f, nil
}
