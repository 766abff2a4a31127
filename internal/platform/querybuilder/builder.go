// Package querybuilder renders the small set of postgres statements the
// repositories need, numbering placeholders as $1, $2, ...
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// writer accumulates SQL text and its positional arguments.
type writer struct {
	sql  strings.Builder
	args []any
}

func (w *writer) bind(value any) {
	w.args = append(w.args, value)
	w.sql.WriteString("$")
	w.sql.WriteString(strconv.Itoa(len(w.args)))
}

// expr writes raw SQL, binding each '?' to the next value.
func (w *writer) expr(raw string, values []any) {
	next := 0
	for i := 0; i < len(raw); i++ {
		if raw[i] == '?' && next < len(values) {
			w.bind(values[next])
			next++
			continue
		}
		w.sql.WriteByte(raw[i])
	}
}

func (w *writer) where(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			w.sql.WriteString(" WHERE ")
		} else {
			w.sql.WriteString(" AND ")
		}
		c.write(w)
	}
}

func (w *writer) done() (string, []any, error) {
	return w.sql.String(), w.args, nil
}

type Condition interface {
	write(w *writer)
}

type conditionFunc func(w *writer)

func (f conditionFunc) write(w *writer) { f(w) }

func Eq(column string, value any) Condition {
	return conditionFunc(func(w *writer) {
		w.sql.WriteString(column)
		w.sql.WriteString(" = ")
		w.bind(value)
	})
}

func IsNull(column string) Condition {
	return conditionFunc(func(w *writer) {
		w.sql.WriteString(column)
		w.sql.WriteString(" IS NULL")
	})
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 || strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select needs columns and a table")
	}

	var w writer
	fmt.Fprintf(&w.sql, "SELECT %s FROM %s", strings.Join(b.columns, ", "), b.table)
	w.where(b.where)
	if len(b.orderBy) > 0 {
		w.sql.WriteString(" ORDER BY ")
		w.sql.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.sql.WriteString(" LIMIT ")
		w.sql.WriteString(strconv.Itoa(b.limit))
	}
	return w.done()
}

type assignment struct {
	column string
	raw    string
	values []any
}

type UpdateBuilder struct {
	table  string
	sets   []assignment
	where  []Condition
	suffix string
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, raw: "?", values: []any{value}})
	return b
}

// SetExpr assigns a raw expression such as "version + 1" or "NOW()".
func (b *UpdateBuilder) SetExpr(column, raw string, values ...any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, raw: raw, values: values})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) Suffix(sql string) *UpdateBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" || len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update needs a table and at least one assignment")
	}

	var w writer
	w.sql.WriteString("UPDATE ")
	w.sql.WriteString(b.table)
	w.sql.WriteString(" SET ")
	for i, s := range b.sets {
		if i > 0 {
			w.sql.WriteString(", ")
		}
		w.sql.WriteString(s.column)
		w.sql.WriteString(" = ")
		w.expr(s.raw, s.values)
	}
	w.where(b.where)
	if b.suffix != "" {
		w.sql.WriteString(" ")
		w.sql.WriteString(b.suffix)
	}
	return w.done()
}

// Insert renders a single-row INSERT followed by an optional suffix such as
// an ON CONFLICT or RETURNING clause.
func Insert(table string, columns []string, values []any, suffix string) (string, []any, error) {
	if strings.TrimSpace(table) == "" || len(columns) == 0 {
		return "", nil, fmt.Errorf("insert needs a table and columns")
	}
	if len(columns) != len(values) {
		return "", nil, fmt.Errorf("insert has %d values for %d columns", len(values), len(columns))
	}

	var w writer
	fmt.Fprintf(&w.sql, "INSERT INTO %s (%s) VALUES (", table, strings.Join(columns, ", "))
	for i, v := range values {
		if i > 0 {
			w.sql.WriteString(", ")
		}
		w.bind(v)
	}
	w.sql.WriteString(")")
	if suffix = strings.TrimSpace(suffix); suffix != "" {
		w.sql.WriteString(" ")
		w.sql.WriteString(suffix)
	}
	return w.done()
}
