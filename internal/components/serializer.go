package components

import (
	"github.com/stratahub/strata-portal/internal/registry"
	"github.com/stratahub/strata-portal/internal/schema"
)

// Serializer is the API representation component: it projects loaded entities
// onto the resolved field list, keyed by field path.
type Serializer struct {
	base
}

type SerializerStrategy struct{}

func (SerializerStrategy) ComponentKind() registry.Kind { return registry.KindSerializer }

func (SerializerStrategy) Generate(cfg *registry.ModelConfig, fields []schema.ResolvedField) (registry.Component, error) {
	return &Serializer{
		base: base{kind: registry.KindSerializer, model: cfg.ModelType(), fields: fields},
	}, nil
}

// Serialize projects one loaded entity.
func (s *Serializer) Serialize(entity any) map[string]any {
	out := make(map[string]any, len(s.fields))
	for _, rf := range s.fields {
		out[rf.Path] = fieldValue(entity, rf)
	}
	return out
}

// SerializeList projects a slice of loaded entities.
func (s *Serializer) SerializeList(entities any) []map[string]any {
	out := []map[string]any{}
	eachEntity(entities, func(entity any) {
		out = append(out, s.Serialize(entity))
	})
	return out
}
