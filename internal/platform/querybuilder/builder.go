// Package querybuilder renders the small set of PostgreSQL statements the
// crawler repositories issue, numbering $n placeholders in argument order.
package querybuilder

import (
	"errors"
	"strconv"
	"strings"
)

// MaxBindParams is the PostgreSQL wire-protocol limit on bind parameters per statement.
const MaxBindParams = 65535

// Statement is a rendered query with its positional arguments.
type Statement struct {
	SQL  string
	Args []any
}

// writer accumulates SQL text and arguments; every bound value advances the
// placeholder counter.
type writer struct {
	sb   strings.Builder
	args []any
}

func (w *writer) text(s string) {
	w.sb.WriteString(s)
}

func (w *writer) bind(v any) {
	w.args = append(w.args, v)
	w.sb.WriteByte('$')
	w.sb.WriteString(strconv.Itoa(len(w.args)))
}

func (w *writer) statement() Statement {
	return Statement{SQL: w.sb.String(), Args: w.args}
}

type Condition interface {
	render(w *writer)
}

type eq struct {
	column string
	value  any
}

func Eq(column string, value any) Condition {
	return eq{column: column, value: value}
}

func (c eq) render(w *writer) {
	w.text(c.column)
	w.text(" = ")
	w.bind(c.value)
}

type expr struct {
	sql  string
	args []any
}

// Expr embeds a raw predicate. Each '?' binds the next value from args;
// surplus '?' characters are kept literally.
func Expr(sql string, args ...any) Condition {
	return expr{sql: sql, args: args}
}

func (c expr) render(w *writer) {
	next := 0
	for i := 0; i < len(c.sql); i++ {
		if c.sql[i] == '?' && next < len(c.args) {
			w.bind(c.args[next])
			next++
			continue
		}
		w.sb.WriteByte(c.sql[i])
	}
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

// Where adds conditions joined with AND.
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
	var w writer
	if err := b.render(&w); err != nil {
		return "", nil, err
	}
	st := w.statement()
	return st.SQL, st.Args, nil
}

// ExistsSQL renders SELECT EXISTS(<select>), which always yields one boolean row.
func (b *SelectBuilder) ExistsSQL() (string, []any, error) {
	var w writer
	w.text("SELECT EXISTS(")
	if err := b.render(&w); err != nil {
		return "", nil, err
	}
	w.text(")")
	st := w.statement()
	return st.SQL, st.Args, nil
}

func (b *SelectBuilder) render(w *writer) error {
	if len(b.columns) == 0 {
		return errors.New("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return errors.New("select table is required")
	}

	w.text("SELECT ")
	w.text(strings.Join(b.columns, ", "))
	w.text(" FROM ")
	w.text(b.table)
	for i, c := range b.where {
		if i == 0 {
			w.text(" WHERE ")
		} else {
			w.text(" AND ")
		}
		c.render(w)
	}
	if len(b.orderBy) > 0 {
		w.text(" ORDER BY ")
		w.text(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.text(" LIMIT ")
		w.text(strconv.Itoa(b.limit))
	}
	return nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

// Values appends one row; repeated calls render a multi-row VALUES list.
func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix is appended verbatim, e.g. an ON CONFLICT clause.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	st, err := b.Statement()
	if err != nil {
		return "", nil, err
	}
	return st.SQL, st.Args, nil
}

func (b *InsertBuilder) Statement() (Statement, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return Statement{}, errors.New("insert table is required")
	case len(b.columns) == 0:
		return Statement{}, errors.New("insert columns are required")
	case len(b.rows) == 0:
		return Statement{}, errors.New("insert values are required")
	}

	var w writer
	w.args = make([]any, 0, len(b.rows)*len(b.columns))
	w.text("INSERT INTO ")
	w.text(b.table)
	w.text(" (")
	w.text(strings.Join(b.columns, ", "))
	w.text(") VALUES ")
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return Statement{}, errors.New("insert row " + strconv.Itoa(i) + " has " +
				strconv.Itoa(len(row)) + " values, expected " + strconv.Itoa(len(b.columns)))
		}
		if i > 0 {
			w.text(", ")
		}
		w.text("(")
		for j, v := range row {
			if j > 0 {
				w.text(", ")
			}
			w.bind(v)
		}
		w.text(")")
	}
	if b.suffix != "" {
		w.text(" ")
		w.text(b.suffix)
	}
	return w.statement(), nil
}
