package components

import (
	"reflect"

	"github.com/stratahub/strata-portal/internal/registry"
	"github.com/stratahub/strata-portal/internal/schema"
)

// Panel is the administrative screen descriptor for one model, consumed by the
// admin endpoints.
type Panel struct {
	Model        string            `json:"model"`
	Slug         string            `json:"slug"`
	DisplayName  string            `json:"display_name"`
	Description  string            `json:"description,omitempty"`
	Category     registry.Category `json:"category"`
	ListDisplay  []string          `json:"list_display"`
	SearchFields []string          `json:"search_fields"`
}

// Admin is the administrative component.
type Admin struct {
	base
	panel Panel
}

type AdminStrategy struct{}

func (AdminStrategy) ComponentKind() registry.Kind { return registry.KindAdmin }

func (AdminStrategy) Generate(cfg *registry.ModelConfig, fields []schema.ResolvedField) (registry.Component, error) {
	panel := Panel{
		Model:        cfg.ModelType().Name(),
		Slug:         cfg.Slug(),
		DisplayName:  cfg.DisplayName,
		Description:  cfg.Description,
		Category:     cfg.Category(),
		ListDisplay:  []string{},
		SearchFields: []string{},
	}
	for _, rf := range fields {
		panel.ListDisplay = append(panel.ListDisplay, rf.Path)
		if searchable(rf.Leaf()) {
			panel.SearchFields = append(panel.SearchFields, rf.Path)
		}
	}
	return &Admin{
		base:  base{kind: registry.KindAdmin, model: cfg.ModelType(), fields: fields},
		panel: panel,
	}, nil
}

func (a *Admin) Panel() Panel { return a.panel }

func searchable(d schema.Descriptor) bool {
	if d.IsRelation() {
		return false
	}
	t := d.GoType
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Kind() == reflect.String
}
