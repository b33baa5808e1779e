// Package lab is the portal module for laboratory content: instruments and
// the measurements they produce.
package lab

import (
	"github.com/stratahub/strata-portal/internal/registry"
	"github.com/stratahub/strata-portal/internal/types"
)

// Register declares the module's model configurations. Called once at startup.
func Register(reg *registry.Registry) error {
	configs := []*registry.ModelConfig{
		{
			Model:       &types.Instrument{},
			DisplayName: "Instrument",
			Description: "Lab device producing measurements",
			// No field lists: smart defaults drive every component.
		},
		{
			Model:            &types.Measurement{},
			DisplayName:      "Measurement",
			Description:      "Quantitative observation of a sample",
			Fields:           []string{"quantity", "value", "unit", "sample", "instrument", "measured_at"},
			TableFields:      []string{"quantity", "value", "unit", "sample__name", "instrument__name", "measured_at"},
			FilterFields:     []string{"quantity", "unit", "sample__name", "instrument__name"},
			SerializerFields: []string{"id", "quantity", "value", "unit", "sample__name", "instrument__name", "measured_at"},
		},
	}
	for _, cfg := range configs {
		if err := reg.Register(cfg); err != nil {
			return err
		}
	}
	return nil
}
