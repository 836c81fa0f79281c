// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tablefile

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/corpus-builder/pkg/types"
)

// writeSQLite stores f as table "data" in a fresh database file. Row order is
// kept in the rowid.
func writeSQLite(path string, f types.Frame) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing old database: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	cols := make([]string, len(f.Schema))
	marks := make([]string, len(f.Schema))
	for i, c := range f.Schema {
		cols[i] = quoteIdent(c.Name) + " " + sqlType(c.Kind)
		marks[i] = "?"
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(tableName), strings.Join(cols, ", "))
	if _, err := db.Exec(create); err != nil {
		return fmt.Errorf("creating table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s VALUES (%s)", quoteIdent(tableName), strings.Join(marks, ", ")))
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(f.Schema))
	for n, row := range f.Rows {
		for i, c := range f.Schema {
			args[i] = sqlValue(c.Kind, cellAt(row, i))
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("inserting row %d: %w", n, err)
		}
	}
	return tx.Commit()
}

func sqlType(k types.Kind) string {
	switch k {
	case types.KindInt:
		return "INTEGER"
	case types.KindTime:
		return "TIMESTAMP"
	default:
		return "TEXT"
	}
}

// sqlValue converts a cell for insertion. Times are stored as zone-less text.
func sqlValue(k types.Kind, v any) any {
	if v == nil {
		return nil
	}
	switch k {
	case types.KindInt:
		if n, err := types.AsInt(v); err == nil {
			return int64(n)
		}
		return types.AsString(v)
	case types.KindTime:
		t, err := types.AsTime(v)
		if err != nil {
			return types.AsString(v)
		}
		if t.IsZero() {
			return nil
		}
		return t.Format(types.TimeLayout)
	default:
		return types.AsString(v)
	}
}

func readSQLite(path string) (types.Frame, error) {
	if _, err := os.Stat(path); err != nil {
		return types.Frame{}, err
	}
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return types.Frame{}, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(fmt.Sprintf("SELECT * FROM %s ORDER BY rowid", quoteIdent(tableName)))
	if err != nil {
		return types.Frame{}, fmt.Errorf("querying table: %w", err)
	}
	defer rows.Close()

	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return types.Frame{}, fmt.Errorf("reading columns: %w", err)
	}
	f := types.Frame{Schema: make(types.Schema, len(colTypes))}
	for i, ct := range colTypes {
		f.Schema[i] = types.Column{Name: ct.Name(), Kind: kindOfSQL(ct.DatabaseTypeName())}
	}

	for rows.Next() {
		vals := make([]any, len(colTypes))
		ptrs := make([]any, len(colTypes))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return types.Frame{}, fmt.Errorf("scanning row %d: %w", len(f.Rows), err)
		}
		for i, v := range vals {
			switch x := v.(type) {
			case []byte:
				vals[i] = string(x)
			case time.Time:
				vals[i] = types.Naive(x)
			}
		}
		f.Rows = append(f.Rows, vals)
	}
	return f, rows.Err()
}

func kindOfSQL(decl string) types.Kind {
	switch strings.ToUpper(decl) {
	case "INTEGER", "INT", "BIGINT":
		return types.KindInt
	case "TIMESTAMP", "DATETIME", "DATE":
		return types.KindTime
	default:
		return types.KindString
	}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
