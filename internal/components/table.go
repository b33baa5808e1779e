package components

import (
	"github.com/stratahub/strata-portal/internal/registry"
	"github.com/stratahub/strata-portal/internal/schema"
)

// Column is one read-only column of a generated table.
type Column struct {
	Field      string `json:"field"`
	Header     string `json:"header"`
	Relational bool   `json:"relational"`
}

// Table is the tabular listing component. Relational paths project attributes
// of preloaded relations.
type Table struct {
	base
	columns []Column
}

// TableData is a rendered listing, ready for the JSON surface.
type TableData struct {
	Columns []Column `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

type TableStrategy struct{}

func (TableStrategy) ComponentKind() registry.Kind { return registry.KindTable }

func (TableStrategy) Generate(cfg *registry.ModelConfig, fields []schema.ResolvedField) (registry.Component, error) {
	columns := make([]Column, 0, len(fields))
	for _, rf := range fields {
		columns = append(columns, Column{
			Field:      rf.Path,
			Header:     humanize(rf.Path),
			Relational: rf.Relational(),
		})
	}
	return &Table{
		base:    base{kind: registry.KindTable, model: cfg.ModelType(), fields: fields},
		columns: columns,
	}, nil
}

func (t *Table) Columns() []Column { return t.columns }

// Row projects one loaded entity onto the table's columns.
func (t *Table) Row(entity any) []any {
	row := make([]any, len(t.fields))
	for i, rf := range t.fields {
		row[i] = fieldValue(entity, rf)
	}
	return row
}

// Render projects a slice of loaded entities into a TableData.
func (t *Table) Render(entities any) TableData {
	data := TableData{Columns: t.columns, Rows: [][]any{}}
	eachEntity(entities, func(entity any) {
		data.Rows = append(data.Rows, t.Row(entity))
	})
	return data
}
