// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tablefile

import (
	"fmt"
	"os"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/pdiddy/corpus-builder/pkg/types"
)

// arrowBatchRows is the number of rows per record batch.
const arrowBatchRows = 64 * 1024

// naiveTimestamp has no time zone: values are wall-clock times.
var naiveTimestamp = &arrow.TimestampType{Unit: arrow.Microsecond}

// arrowSchema maps a table schema to Arrow fields. Every column is nullable.
func arrowSchema(s types.Schema) *arrow.Schema {
	fields := make([]arrow.Field, len(s))
	for i, c := range s {
		var dt arrow.DataType
		switch c.Kind {
		case types.KindInt:
			dt = arrow.PrimitiveTypes.Int64
		case types.KindTime:
			dt = naiveTimestamp
		default:
			dt = arrow.BinaryTypes.String
		}
		fields[i] = arrow.Field{Name: c.Name, Type: dt, Nullable: true}
	}
	return arrow.NewSchema(fields, nil)
}

func writeArrow(path string, f types.Frame) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	mem := memory.NewGoAllocator()
	schema := arrowSchema(f.Schema)

	w, err := ipc.NewFileWriter(out, ipc.WithSchema(schema), ipc.WithAllocator(mem))
	if err != nil {
		return fmt.Errorf("creating arrow writer: %w", err)
	}

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	for start := 0; start < len(f.Rows); start += arrowBatchRows {
		end := min(start+arrowBatchRows, len(f.Rows))
		for _, row := range f.Rows[start:end] {
			for i, c := range f.Schema {
				if err := appendArrow(b.Field(i), c, cellAt(row, i)); err != nil {
					return err
				}
			}
		}
		rec := b.NewRecord()
		err := w.Write(rec)
		rec.Release()
		if err != nil {
			return fmt.Errorf("writing record batch: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("closing arrow writer: %w", err)
	}
	return out.Close()
}

func appendArrow(b array.Builder, c types.Column, v any) error {
	if v == nil {
		b.AppendNull()
		return nil
	}
	switch c.Kind {
	case types.KindInt:
		n, err := types.AsInt(v)
		if err != nil {
			return fmt.Errorf("column %s: %w", c.Name, err)
		}
		b.(*array.Int64Builder).Append(int64(n))
	case types.KindTime:
		t, err := types.AsTime(v)
		if err != nil {
			return fmt.Errorf("column %s: %w", c.Name, err)
		}
		if t.IsZero() {
			b.AppendNull()
			return nil
		}
		b.(*array.TimestampBuilder).Append(arrow.Timestamp(t.UnixMicro()))
	default:
		b.(*array.StringBuilder).Append(types.AsString(v))
	}
	return nil
}

func readArrow(path string) (types.Frame, error) {
	in, err := os.Open(path)
	if err != nil {
		return types.Frame{}, err
	}
	defer in.Close()

	r, err := ipc.NewFileReader(in, ipc.WithAllocator(memory.NewGoAllocator()))
	if err != nil {
		return types.Frame{}, fmt.Errorf("opening arrow file: %w", err)
	}
	defer r.Close()

	schema := r.Schema()
	f := types.Frame{Schema: make(types.Schema, schema.NumFields())}
	for i, field := range schema.Fields() {
		f.Schema[i] = types.Column{Name: field.Name, Kind: kindOf(field.Type)}
	}

	for n := 0; n < r.NumRecords(); n++ {
		rec, err := r.Record(n)
		if err != nil {
			return types.Frame{}, fmt.Errorf("reading record batch %d: %w", n, err)
		}
		for j := 0; j < int(rec.NumRows()); j++ {
			row := make([]any, rec.NumCols())
			for i := range row {
				row[i] = arrowValue(rec.Column(i), j)
			}
			f.Rows = append(f.Rows, row)
		}
	}
	return f, nil
}

func kindOf(dt arrow.DataType) types.Kind {
	switch dt.ID() {
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64:
		return types.KindInt
	case arrow.TIMESTAMP, arrow.DATE32, arrow.DATE64:
		return types.KindTime
	default:
		return types.KindString
	}
}

func arrowValue(col arrow.Array, j int) any {
	if col.IsNull(j) {
		return nil
	}
	switch a := col.(type) {
	case *array.String:
		return a.Value(j)
	case *array.LargeString:
		return a.Value(j)
	case *array.Int64:
		return a.Value(j)
	case *array.Int32:
		return int64(a.Value(j))
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return types.Naive(a.Value(j).ToTime(unit))
	case *array.Date32:
		return a.Value(j).ToTime()
	case *array.Date64:
		return a.Value(j).ToTime()
	default:
		return col.ValueStr(j)
	}
}
