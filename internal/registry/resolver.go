package registry

import (
	"strings"

	"github.com/stratahub/strata-portal/internal/schema"
)

// Resolve computes the final field list for one (configuration, kind) pair.
//
// Precedence is total and deterministic: the kind-specific list if non-empty,
// else Fields if non-empty, else smart defaults from the schema. Exclusions
// apply to whichever list won, relational paths are rejected for editable
// kinds, and duplicates collapse to their first occurrence.
func (f *Factory) Resolve(cfg *ModelConfig, kind Kind) ([]string, error) {
	list := cfg.fieldsFor(kind)
	if len(list) == 0 {
		list = cfg.Fields
	}
	if len(list) == 0 {
		defaults, err := f.smartDefaults(cfg)
		if err != nil {
			return nil, err
		}
		list = defaults
	}

	excluded := make(map[string]bool, len(cfg.Exclude))
	for _, name := range cfg.Exclude {
		excluded[name] = true
	}

	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, name := range list {
		if excluded[name] || seen[name] {
			continue
		}
		if kind.Editable() && strings.Contains(name, schema.PathSeparator) {
			return nil, &InvalidFieldPathError{Model: cfg.name(), Kind: kind, Path: name}
		}
		seen[name] = true
		out = append(out, name)
	}
	return out, nil
}

// smartDefaults enumerates every user-editable attribute in schema declaration
// order, skipping the primary identifier, type discriminators, internal
// pointer fields, and auto-populated attributes. An empty result is legal: a
// model with no editable attributes yields degenerate components.
func (f *Factory) smartDefaults(cfg *ModelConfig) ([]string, error) {
	descs, err := f.introspector.Describe(cfg.modelType)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, d := range descs {
		if !d.Editable || d.PrimaryKey || d.TypeDiscriminator || d.Internal {
			continue
		}
		names = append(names, d.Name)
	}
	return names, nil
}
