package registry

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/stratahub/strata-portal/internal/platform/logger"
	"github.com/stratahub/strata-portal/internal/schema"
)

// Registry is the process-wide catalogue of model configurations. It is
// constructed once at application bootstrap and passed by reference to every
// consumer; registration happens during single-threaded startup, lookups after
// that are read-only.
type Registry struct {
	mu     sync.RWMutex
	byType map[reflect.Type]*ModelConfig
	bySlug map[string]*ModelConfig
	order  []*ModelConfig

	introspector *schema.Introspector
	factory      *Factory
	log          *logger.Logger
}

func New(introspector *schema.Introspector, strategies []Strategy, log *logger.Logger) *Registry {
	return &Registry{
		byType:       make(map[reflect.Type]*ModelConfig),
		bySlug:       make(map[string]*ModelConfig),
		introspector: introspector,
		factory:      NewFactory(introspector, strategies, log),
		log:          log.With("component", "registry"),
	}
}

// Register adds a configuration to the registry. A model is registered exactly
// once; a second registration is a startup-time configuration bug and fails
// with DuplicateRegistrationError.
func (r *Registry) Register(cfg *ModelConfig) error {
	if cfg == nil || cfg.Model == nil {
		return fmt.Errorf("registry: configuration without a model")
	}
	t, err := modelType(cfg.Model)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byType[t]; exists {
		return &DuplicateRegistrationError{Model: t.Name()}
	}

	slug, err := r.introspector.TableName(t)
	if err != nil {
		return fmt.Errorf("registry: derive slug for %s: %w", t.Name(), err)
	}
	if other, exists := r.bySlug[slug]; exists {
		return fmt.Errorf("registry: slug %q of %s collides with %s", slug, t.Name(), other.name())
	}

	cfg.modelType = t
	cfg.slug = slug
	cfg.category = categoryOf(cfg.Model)
	cfg.registry = r
	cfg.slots = make([]buildSlot, len(kinds))
	if cfg.DisplayName == "" {
		cfg.DisplayName = t.Name()
	}

	r.byType[t] = cfg
	r.bySlug[slug] = cfg
	r.order = append(r.order, cfg)

	r.log.Debug("Registered model configuration",
		"model", t.Name(), "slug", slug, "category", string(cfg.category))
	return nil
}

// MustRegister panics on registration failure. Portal modules use it at
// startup where a failure must abort the process.
func (r *Registry) MustRegister(cfg *ModelConfig) {
	if err := r.Register(cfg); err != nil {
		panic(err)
	}
}

// Get returns the configuration for a model instance or pointer.
func (r *Registry) Get(model any) (*ModelConfig, error) {
	t, err := modelType(model)
	if err != nil {
		return nil, err
	}
	return r.GetType(t)
}

// GetType returns the configuration for a model type.
func (r *Registry) GetType(t reflect.Type) (*ModelConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.byType[t]
	if !ok {
		return nil, &UnregisteredModelError{Model: t.Name()}
	}
	return cfg, nil
}

// GetBySlug returns the configuration whose model table matches the URL segment.
func (r *Registry) GetBySlug(slug string) (*ModelConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.bySlug[slug]
	if !ok {
		return nil, &UnregisteredModelError{Model: slug}
	}
	return cfg, nil
}

// IsRegistered reports whether a configuration exists for the model.
func (r *Registry) IsRegistered(model any) bool {
	t, err := modelType(model)
	if err != nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byType[t]
	return ok
}

// All returns every configuration in registration order. Downstream UI
// (navigation, admin index) depends on this order being stable across calls.
func (r *Registry) All() []*ModelConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*ModelConfig, len(r.order))
	copy(out, r.order)
	return out
}

// ByCategory returns the configurations of one category in registration order.
func (r *Registry) ByCategory(category Category) []*ModelConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*ModelConfig
	for _, cfg := range r.order {
		if cfg.category == category {
			out = append(out, cfg)
		}
	}
	return out
}

// Models returns the registered model instances in registration order.
// The storage layer feeds these to auto-migration.
func (r *Registry) Models() []any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]any, len(r.order))
	for i, cfg := range r.order {
		out[i] = cfg.Model
	}
	return out
}

// Introspector exposes the schema introspector the registry resolves against.
func (r *Registry) Introspector() *schema.Introspector {
	return r.introspector
}

func modelType(model any) (reflect.Type, error) {
	t := reflect.TypeOf(model)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("registry: model %T is not a struct or struct pointer", model)
	}
	return t, nil
}

func categoryOf(model any) Category {
	if p, ok := model.(CategoryProvider); ok {
		return p.PortalCategory()
	}
	return CategoryGeneric
}
