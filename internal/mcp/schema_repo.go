package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/2beens/liftlog/internal/db"
)

// SchemaRepo provides the liftlog DB schema (information_schema) data.
type SchemaRepo interface {
	GetColumns(ctx context.Context) ([]SchemaColumn, error)
}

// SchemaColumn represents one row from information_schema.columns.
type SchemaColumn struct {
	TableName  string
	ColumnName string
	DataType   string
	IsNullable string
	ColumnDef  *string
}

var liftlogTables = []string{
	"exercise", "workout_session", "exercise_entry", "exercise_set", "weight_log",
	"routine", "routine_exercise", "routine_set",
}

type querierSchemaRepo struct {
	db db.Querier
}

func NewSchemaRepo(db db.Querier) SchemaRepo {
	return &querierSchemaRepo{db: db}
}

func (r *querierSchemaRepo) GetColumns(ctx context.Context) ([]SchemaColumn, error) {
	rows, err := r.db.Query(
		ctx,
		`
			SELECT table_name, column_name, data_type, is_nullable, column_default
			FROM information_schema.columns
			WHERE table_schema = 'public' AND table_name = ANY($1)
			ORDER BY table_name, ordinal_position
		`,
		liftlogTables,
	)
	if err != nil {
		return nil, fmt.Errorf("query information_schema: %w", err)
	}
	defer rows.Close()

	var cols []SchemaColumn
	for rows.Next() {
		var c SchemaColumn
		if err := rows.Scan(&c.TableName, &c.ColumnName, &c.DataType, &c.IsNullable, &c.ColumnDef); err != nil {
			return nil, fmt.Errorf("scan column row: %w", err)
		}
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("column rows: %w", err)
	}
	return cols, nil
}

// formatSchema renders the columns as one markdown table per DB table.
func formatSchema(cols []SchemaColumn) string {
	if len(cols) == 0 {
		return "# Liftlog DB Schema\n\nNo liftlog tables found in the database.\n"
	}

	byTable := make(map[string][]SchemaColumn)
	for _, c := range cols {
		byTable[c.TableName] = append(byTable[c.TableName], c)
	}
	tables := make([]string, 0, len(byTable))
	for t := range byTable {
		tables = append(tables, t)
	}
	sort.Strings(tables)

	var b strings.Builder
	b.WriteString("# Liftlog DB Schema\n")
	for _, table := range tables {
		b.WriteString("\n## ")
		b.WriteString(table)
		b.WriteString("\n\n| Column | Type | Nullable | Default |\n|--------|------|----------|---------|\n")
		for _, c := range byTable[table] {
			def := "-"
			if c.ColumnDef != nil && *c.ColumnDef != "" {
				def = *c.ColumnDef
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", c.ColumnName, c.DataType, c.IsNullable, def)
		}
	}
	return b.String()
}
