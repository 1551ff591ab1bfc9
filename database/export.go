package database

import (
	"context"
	"fmt"

	"github.com/Alex-H307/cafe-system/generator"
	"github.com/Alex-H307/cafe-system/schema"
	"github.com/Alex-H307/cafe-system/table"
	"github.com/jackc/pgx/v5"
)

// Beginner is the part of a pgx pool or connection that Export needs.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// RowSource yields the rows of one model.
type RowSource func(m schema.Model) ([]table.Record, error)

// Export mirrors every table into PostgreSQL inside one transaction: existing
// tables are dropped, recreated, filled with COPY, and the foreign keys are
// added last. It returns the number of rows copied per table.
func Export(ctx context.Context, db Beginner, registry *schema.Registry, rows RowSource) (map[string]int64, error) {
	create, err := generator.GenerateSQL(registry)
	if err != nil {
		return nil, err
	}
	models := registry.Models()
	tablesSQL, fkSQL := create[:len(models)], create[len(models):]

	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin export: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, stmt := range append(generator.GenerateDropSQL(registry), tablesSQL...) {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return nil, fmt.Errorf("exec %q: %w", stmt, err)
		}
	}

	counts := make(map[string]int64, len(models))
	for _, m := range models {
		records, err := rows(m)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", m.Name, err)
		}
		data, err := convertRows(m, records)
		if err != nil {
			return nil, fmt.Errorf("convert %s: %w", m.Name, err)
		}
		n, err := tx.CopyFrom(ctx, pgx.Identifier{generator.TableName(m)}, m.FieldNames(), pgx.CopyFromRows(data))
		if err != nil {
			return nil, fmt.Errorf("copy %s: %w", m.Name, err)
		}
		counts[m.Name] = n
	}

	for _, stmt := range fkSQL {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return nil, fmt.Errorf("exec %q: %w", stmt, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit export: %w", err)
	}
	return counts, nil
}

func convertRows(m schema.Model, records []table.Record) ([][]interface{}, error) {
	out := make([][]interface{}, 0, len(records))
	for _, rec := range records {
		if len(rec) != len(m.Fields) {
			return nil, fmt.Errorf("row %q has %d fields, want %d", rec.Key(), len(rec), len(m.Fields))
		}
		row := make([]interface{}, len(rec))
		for i, f := range m.Fields {
			v, err := generator.ConvertValue(f, rec[i])
			if err != nil {
				return nil, fmt.Errorf("row %q: %w", rec.Key(), err)
			}
			row[i] = v
		}
		out = append(out, row)
	}
	return out, nil
}
