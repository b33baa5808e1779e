// Package geoscience is the portal module for field-collection content:
// projects, datasets and physical samples.
package geoscience

import (
	"github.com/stratahub/strata-portal/internal/registry"
	"github.com/stratahub/strata-portal/internal/types"
)

// Register declares the module's model configurations. Called once at startup.
func Register(reg *registry.Registry) error {
	configs := []*registry.ModelConfig{
		{
			Model:       &types.Project{},
			DisplayName: "Project",
			Description: "Top-level research effort",
			Fields:      []string{"name", "description", "status", "owner"},
			TableFields: []string{"name", "status", "owner__last_name", "created_at"},
		},
		{
			Model:        &types.Dataset{},
			DisplayName:  "Dataset",
			Description:  "Sample collection under a project",
			Fields:       []string{"name", "description", "license", "project"},
			TableFields:  []string{"name", "license", "project__name", "created_at"},
			FilterFields: []string{"license", "project__name"},
		},
		{
			Model:       &types.RockSample{},
			DisplayName: "Rock Sample",
			Description: "Physical specimen catalogued in the portal",
			// Smart defaults would also pull in tags; keep the curated list.
			Fields:           []string{"name", "location", "lithology", "collected_on", "dataset", "owner"},
			FormFields:       []string{"name", "location", "lithology", "collected_on", "dataset", "owner"},
			TableFields:      []string{"name", "location", "lithology", "dataset__name", "owner__last_name"},
			FilterFields:     []string{"lithology", "location", "dataset__name"},
			SerializerFields: []string{"id", "name", "location", "lithology", "collected_on", "dataset__name", "owner__email", "tags", "created_at"},
			ResourceFields:   []string{"name", "location", "lithology", "collected_on"},
		},
	}
	for _, cfg := range configs {
		if err := reg.Register(cfg); err != nil {
			return err
		}
	}
	return nil
}
