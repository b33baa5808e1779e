package components

import (
	"encoding/csv"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/stratahub/strata-portal/internal/registry"
	"github.com/stratahub/strata-portal/internal/schema"
)

// Resource is the bulk import/export component. The wire format is CSV with
// the resolved field paths as the header row.
type Resource struct {
	base
}

type ResourceStrategy struct{}

func (ResourceStrategy) ComponentKind() registry.Kind { return registry.KindResource }

func (ResourceStrategy) Generate(cfg *registry.ModelConfig, fields []schema.ResolvedField) (registry.Component, error) {
	return &Resource{
		base: base{kind: registry.KindResource, model: cfg.ModelType(), fields: fields},
	}, nil
}

// Header returns the CSV header row.
func (r *Resource) Header() []string { return r.FieldPaths() }

// ExportCSV writes the projected entities as CSV.
func (r *Resource) ExportCSV(w io.Writer, entities any) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(r.Header()); err != nil {
		return err
	}
	var writeErr error
	eachEntity(entities, func(entity any) {
		if writeErr != nil {
			return
		}
		record := make([]string, len(r.fields))
		for i, rf := range r.fields {
			record[i] = formatCell(fieldValue(entity, rf))
		}
		writeErr = cw.Write(record)
	})
	if writeErr != nil {
		return writeErr
	}
	cw.Flush()
	return cw.Error()
}

// ImportCSV reads rows into attribute maps keyed by field path, coercing cell
// text to the leaf attribute's Go type. The header must be a subset of the
// resource's resolved fields.
func (r *Resource) ImportCSV(reader io.Reader) ([]map[string]any, error) {
	cr := csv.NewReader(reader)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("resource: read header: %w", err)
	}

	byPath := make(map[string]schema.ResolvedField, len(r.fields))
	for _, rf := range r.fields {
		byPath[rf.Path] = rf
	}
	columns := make([]schema.ResolvedField, len(header))
	for i, name := range header {
		rf, ok := byPath[name]
		if !ok {
			return nil, fmt.Errorf("resource: column %q is not part of the %s resource", name, r.model.Name())
		}
		columns[i] = rf
	}

	var rows []map[string]any
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("resource: read row: %w", err)
		}
		row := make(map[string]any, len(record))
		for i, cell := range record {
			if i >= len(columns) {
				break
			}
			value, err := coerceCell(cell, columns[i].Leaf())
			if err != nil {
				return nil, fmt.Errorf("resource: column %q: %w", columns[i].Path, err)
			}
			row[columns[i].Path] = value
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func formatCell(v any) string {
	if v == nil {
		return ""
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}
	switch t := rv.Interface().(type) {
	case time.Time:
		return t.Format(time.RFC3339)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func coerceCell(cell string, leaf schema.Descriptor) (any, error) {
	if cell == "" {
		return nil, nil
	}
	t := leaf.GoType
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == timeType {
		return time.Parse(time.RFC3339, cell)
	}
	if t == reflect.TypeOf(uuid.UUID{}) {
		return uuid.Parse(cell)
	}
	switch t.Kind() {
	case reflect.Bool:
		return strconv.ParseBool(cell)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.ParseInt(cell, 10, 64)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.ParseUint(cell, 10, 64)
	case reflect.Float32, reflect.Float64:
		return strconv.ParseFloat(cell, 64)
	default:
		return cell, nil
	}
}
