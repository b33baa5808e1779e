package registry

import (
	"reflect"
	"sync"
)

// ModelConfig declares which fields each generated component uses for one
// model. Portal modules hand one ModelConfig per model to Registry.Register at
// startup; after that the configuration is immutable and components built from
// it are cached on it.
type ModelConfig struct {
	// Model is a pointer to the zero value of the configured model struct.
	Model any

	// Fields is the default fallback for any component kind without a more
	// specific list. Empty triggers smart-default computation from the schema.
	Fields []string

	// Per-kind field lists. Empty means "fall back to Fields".
	FormFields       []string
	TableFields      []string
	FilterFields     []string
	SerializerFields []string
	ResourceFields   []string

	// Exclude is removed from every computed list, regardless of source.
	Exclude []string

	// Per-kind override components. When set, the factory returns the
	// override verbatim and skips field resolution for that kind.
	FormClass       Component
	TableClass      Component
	FilterClass     Component
	SerializerClass Component
	ResourceClass   Component
	AdminClass      Component

	// Presentation metadata. No effect on resolution.
	DisplayName string
	Description string

	modelType reflect.Type
	category  Category
	slug      string
	registry  *Registry

	mu    sync.Mutex
	slots []buildSlot
}

type buildState int

const (
	slotUnbuilt buildState = iota
	slotBuilding
	slotBuilt
)

type buildSlot struct {
	state     buildState
	component Component
}

// ModelType is the registered model's struct type.
func (mc *ModelConfig) ModelType() reflect.Type { return mc.modelType }

// Category is derived from the model's place in the entity taxonomy.
func (mc *ModelConfig) Category() Category { return mc.category }

// Slug is the URL path segment for the model, derived from its table name.
func (mc *ModelConfig) Slug() string { return mc.slug }

// Component returns the cached or freshly generated component for a kind.
func (mc *ModelConfig) Component(kind Kind) (Component, error) {
	if mc.registry == nil {
		return nil, &UnregisteredModelError{Model: mc.name()}
	}
	return mc.registry.factory.Build(mc, kind)
}

func (mc *ModelConfig) name() string {
	if mc.modelType != nil {
		return mc.modelType.Name()
	}
	return reflect.Indirect(reflect.ValueOf(mc.Model)).Type().Name()
}

func (mc *ModelConfig) fieldsFor(kind Kind) []string {
	switch kind {
	case KindForm:
		return mc.FormFields
	case KindTable:
		return mc.TableFields
	case KindFilterSet:
		return mc.FilterFields
	case KindSerializer:
		return mc.SerializerFields
	case KindResource:
		return mc.ResourceFields
	default:
		// The admin panel has no list of its own; it always follows Fields.
		return nil
	}
}

func (mc *ModelConfig) overrideFor(kind Kind) Component {
	switch kind {
	case KindForm:
		return mc.FormClass
	case KindTable:
		return mc.TableClass
	case KindFilterSet:
		return mc.FilterClass
	case KindSerializer:
		return mc.SerializerClass
	case KindResource:
		return mc.ResourceClass
	case KindAdmin:
		return mc.AdminClass
	default:
		return nil
	}
}
