// Package components holds the generation strategies the portal plugs into the
// registry's component factory: one strategy per component kind, each binding
// a resolved field list to a model's schema.
package components

import (
	"reflect"
	"strings"

	"github.com/stratahub/strata-portal/internal/registry"
	"github.com/stratahub/strata-portal/internal/schema"
)

// Strategies returns the portal's default generation strategy per kind.
func Strategies() []registry.Strategy {
	return []registry.Strategy{
		FormStrategy{},
		TableStrategy{},
		FilterSetStrategy{},
		SerializerStrategy{},
		ResourceStrategy{},
		AdminStrategy{},
	}
}

// base carries what every generated component shares: its kind, model and
// resolved field list.
type base struct {
	kind   registry.Kind
	model  reflect.Type
	fields []schema.ResolvedField
}

func (b *base) ComponentKind() registry.Kind { return b.kind }
func (b *base) Model() reflect.Type          { return b.model }

// FieldPaths returns the resolved field paths in resolution order.
func (b *base) FieldPaths() []string {
	out := make([]string, len(b.fields))
	for i, rf := range b.fields {
		out[i] = rf.Path
	}
	return out
}

// fieldValue walks a loaded entity along a resolved path. Nil pointers and
// unloaded relations along the way yield nil rather than panicking.
func fieldValue(entity any, rf schema.ResolvedField) any {
	v := reflect.ValueOf(entity)
	for _, goName := range rf.GoPath() {
		v = reflect.Indirect(v)
		if !v.IsValid() || v.Kind() != reflect.Struct {
			return nil
		}
		v = v.FieldByName(goName)
		if !v.IsValid() {
			return nil
		}
	}
	if v.Kind() == reflect.Ptr && v.IsNil() {
		return nil
	}
	return v.Interface()
}

// eachEntity iterates a slice of entities (or a single entity) produced by the
// storage layer.
func eachEntity(entities any, fn func(entity any)) {
	v := reflect.Indirect(reflect.ValueOf(entities))
	if v.Kind() != reflect.Slice {
		fn(entities)
		return
	}
	for i := 0; i < v.Len(); i++ {
		fn(v.Index(i).Interface())
	}
}

// humanize turns a field path into a display header: "owner__first_name"
// becomes "Owner First Name".
func humanize(path string) string {
	path = strings.ReplaceAll(path, schema.PathSeparator, "_")
	words := strings.Split(path, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
