package components

import (
	"fmt"
	"net/url"

	"gorm.io/gorm"

	"github.com/stratahub/strata-portal/internal/registry"
	"github.com/stratahub/strata-portal/internal/schema"
)

// Predicate is one query-parameter-driven filter of a generated filter set.
// Relational predicates join through a single to-one hop; deeper paths and
// to-many hops resolve to no predicate and are listed for display only.
type Predicate struct {
	Field      string `json:"field"`
	Column     string `json:"column"`
	Relation   string `json:"relation,omitempty"`
	Filterable bool   `json:"filterable"`
}

// FilterSet narrows list queries from URL query values, one predicate per
// resolved field.
type FilterSet struct {
	base
	predicates []Predicate
}

type FilterSetStrategy struct{}

func (FilterSetStrategy) ComponentKind() registry.Kind { return registry.KindFilterSet }

func (FilterSetStrategy) Generate(cfg *registry.ModelConfig, fields []schema.ResolvedField) (registry.Component, error) {
	predicates := make([]Predicate, 0, len(fields))
	for _, rf := range fields {
		predicates = append(predicates, predicateFor(rf))
	}
	return &FilterSet{
		base:       base{kind: registry.KindFilterSet, model: cfg.ModelType(), fields: fields},
		predicates: predicates,
	}, nil
}

func predicateFor(rf schema.ResolvedField) Predicate {
	p := Predicate{Field: rf.Path}
	leaf := rf.Leaf()
	if leaf.IsRelation() || leaf.Column == "" {
		return p
	}
	switch len(rf.Segments) {
	case 1:
		p.Column = leaf.Column
		p.Filterable = true
	case 2:
		if rf.Segments[0].Kind == schema.RelationOne {
			p.Relation = rf.Segments[0].GoName
			p.Column = leaf.Column
			p.Filterable = true
		}
	}
	return p
}

func (fs *FilterSet) Predicates() []Predicate { return fs.predicates }

// Apply appends a WHERE clause per predicate present in the query values.
// Values match exactly; range and substring operators stay with the caller.
func (fs *FilterSet) Apply(db *gorm.DB, values url.Values) *gorm.DB {
	for _, p := range fs.predicates {
		if !p.Filterable {
			continue
		}
		raw := values.Get(p.Field)
		if raw == "" {
			continue
		}
		if p.Relation != "" {
			// gorm aliases a joined to-one relation by its field name.
			db = db.Joins(p.Relation).
				Where(fmt.Sprintf("%q.%q = ?", p.Relation, p.Column), raw)
			continue
		}
		db = db.Where(fmt.Sprintf("%q = ?", p.Column), raw)
	}
	return db
}
