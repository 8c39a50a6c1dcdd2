// Package query provides SQL query construction with projection mapping.
package query

import (
	"fmt"
	"strings"
)

// ProjectionMap binds logical field names to qualified column references
// (alias.column) for a single table.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	fields  map[string]string
	ordered []string
}

// NewProjectionMap creates a ProjectionMap for the given schema, table, and alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema:  schema,
		table:   table,
		alias:   alias,
		fields:  make(map[string]string),
		ordered: make([]string, 0),
	}
}

// Project registers a column under a logical field name.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	qualified := fmt.Sprintf("%s.%s", p.alias, column)
	p.fields[field] = qualified
	p.ordered = append(p.ordered, qualified)
	return p
}

// From returns the fully qualified table reference with alias.
func (p *ProjectionMap) From() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// Column resolves a logical field name to its qualified column,
// returning the input unchanged when no mapping exists.
func (p *ProjectionMap) Column(field string) string {
	if col, ok := p.fields[field]; ok {
		return col
	}
	return field
}

// Columns returns the projected columns as a comma-separated list
// in registration order.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.ordered, ", ")
}
