package registry

import (
	"errors"
	"fmt"

	"github.com/stratahub/strata-portal/internal/platform/logger"
	"github.com/stratahub/strata-portal/internal/schema"
)

// Strategy generates the concrete component of one kind from a resolved field
// list. Strategies are supplied by the surrounding application; the factory
// only decides what fields they see.
type Strategy interface {
	ComponentKind() Kind
	Generate(cfg *ModelConfig, fields []schema.ResolvedField) (Component, error)
}

// Factory builds and memoizes components, one slot per configuration per kind,
// populated at most once.
type Factory struct {
	introspector *schema.Introspector
	strategies   map[Kind]Strategy
	log          *logger.Logger
}

func NewFactory(introspector *schema.Introspector, strategies []Strategy, log *logger.Logger) *Factory {
	byKind := make(map[Kind]Strategy, len(strategies))
	for _, s := range strategies {
		byKind[s.ComponentKind()] = s
	}
	return &Factory{
		introspector: introspector,
		strategies:   byKind,
		log:          log.With("component", "component-factory"),
	}
}

// Build returns the component of the given kind for a configuration, generating
// and caching it on first request.
func (f *Factory) Build(cfg *ModelConfig, kind Kind) (Component, error) {
	if !kind.valid() {
		return nil, fmt.Errorf("registry: unknown component kind %q", kind)
	}

	// The Building state is a re-entrancy guard, not a concurrency primitive:
	// generation recursively asking for its own in-progress component is a
	// configuration bug and fails fast.
	slot := &cfg.slots[kind.index()]
	cfg.mu.Lock()
	switch slot.state {
	case slotBuilt:
		c := slot.component
		cfg.mu.Unlock()
		return c, nil
	case slotBuilding:
		cfg.mu.Unlock()
		return nil, &CircularGenerationError{Model: cfg.name(), Kind: kind}
	}
	slot.state = slotBuilding
	cfg.mu.Unlock()

	component, err := f.generate(cfg, kind)

	cfg.mu.Lock()
	defer cfg.mu.Unlock()
	if err != nil {
		slot.state = slotUnbuilt
		return nil, err
	}
	slot.state = slotBuilt
	slot.component = component
	return component, nil
}

func (f *Factory) generate(cfg *ModelConfig, kind Kind) (Component, error) {
	if override := cfg.overrideFor(kind); override != nil {
		f.log.Debug("Using override component", "model", cfg.name(), "kind", string(kind))
		return override, nil
	}

	names, err := f.Resolve(cfg, kind)
	if err != nil {
		return nil, err
	}

	resolved := make([]schema.ResolvedField, 0, len(names))
	for _, name := range names {
		rf, err := f.introspector.ResolvePath(cfg.modelType, name)
		if err != nil {
			var notFound *schema.FieldNotFoundError
			if errors.As(err, &notFound) {
				return nil, &UnknownFieldError{Model: cfg.name(), Field: name}
			}
			return nil, err
		}
		resolved = append(resolved, rf)
	}

	strategy, ok := f.strategies[kind]
	if !ok {
		return nil, fmt.Errorf("registry: no generation strategy for kind %q", kind)
	}
	component, err := strategy.Generate(cfg, resolved)
	if err != nil {
		return nil, err
	}
	f.log.Debug("Generated component",
		"model", cfg.name(), "kind", string(kind), "fields", len(resolved))
	return component, nil
}
