package registry

import "reflect"

// Kind identifies one generated interface artifact.
type Kind string

const (
	KindForm       Kind = "form"
	KindTable      Kind = "table"
	KindFilterSet  Kind = "filterset"
	KindSerializer Kind = "serializer"
	KindResource   Kind = "resource"
	KindAdmin      Kind = "admin"
)

var kinds = []Kind{KindForm, KindTable, KindFilterSet, KindSerializer, KindResource, KindAdmin}

// Kinds returns every component kind in a fixed order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// Editable reports whether the kind writes back to a single entity instance.
// Only forms do; every other kind is read-oriented and accepts relational paths.
func (k Kind) Editable() bool {
	return k == KindForm
}

func (k Kind) valid() bool {
	return k.index() >= 0
}

func (k Kind) index() int {
	for i, kk := range kinds {
		if kk == k {
			return i
		}
	}
	return -1
}

// Component is a generated (or override) interface artifact for one model.
// Concrete behavior lives on the generation strategies' result types; the
// registry only hands components out.
type Component interface {
	ComponentKind() Kind
	Model() reflect.Type
}

// Category groups configurations by the broad entity taxonomy. It affects
// enumeration only, never field resolution.
type Category string

const (
	CategoryGeneric     Category = "generic"
	CategoryCollection  Category = "collection"
	CategorySample      Category = "sample"
	CategoryMeasurement Category = "measurement"
)

// CategoryProvider lets a model place itself in the entity taxonomy.
// Models without it fall under CategoryGeneric.
type CategoryProvider interface {
	PortalCategory() Category
}
