package registry_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stratahub/strata-portal/internal/registry"
)

// componentPaths builds the component of one kind and returns the field paths
// the generation strategy received.
func componentPaths(t *testing.T, cfg *registry.ModelConfig, kind registry.Kind) []string {
	t.Helper()
	comp, err := cfg.Component(kind)
	if err != nil {
		t.Fatalf("build %s component: %v", kind, err)
	}
	stub, ok := comp.(*stubComponent)
	if !ok {
		t.Fatalf("unexpected component type %T", comp)
	}
	return stub.paths
}

func TestKindListTakesPrecedenceOverFields(t *testing.T) {
	reg := newTestRegistry(t)
	cfg := &registry.ModelConfig{
		Model:       &book{},
		Fields:      []string{"title", "genre"},
		TableFields: []string{"title", "author__email"},
	}
	if err := reg.Register(cfg); err != nil {
		t.Fatalf("register: %v", err)
	}

	if got := componentPaths(t, cfg, registry.KindTable); !reflect.DeepEqual(got, []string{"title", "author__email"}) {
		t.Fatalf("table fields: %v", got)
	}
	// Kinds without their own list fall back to Fields.
	if got := componentPaths(t, cfg, registry.KindForm); !reflect.DeepEqual(got, []string{"title", "genre"}) {
		t.Fatalf("form fields: %v", got)
	}
}

func TestSmartDefaults(t *testing.T) {
	reg := newTestRegistry(t)
	cfg := &registry.ModelConfig{Model: &book{}}
	if err := reg.Register(cfg); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Declaration order, minus the primary key, the discriminator, the owned
	// foreign-key column and the auto-populated timestamps.
	want := []string{"title", "genre", "author", "notes"}
	if got := componentPaths(t, cfg, registry.KindForm); !reflect.DeepEqual(got, want) {
		t.Fatalf("smart defaults: got %v, want %v", got, want)
	}
}

func TestSmartDefaultsSkipInternalAttributes(t *testing.T) {
	reg := newTestRegistry(t)
	cfg := &registry.ModelConfig{Model: &author{}}
	if err := reg.Register(cfg); err != nil {
		t.Fatalf("register: %v", err)
	}

	want := []string{"email"}
	if got := componentPaths(t, cfg, registry.KindForm); !reflect.DeepEqual(got, want) {
		t.Fatalf("smart defaults: got %v, want %v", got, want)
	}
}

func TestExcludeAppliesToEveryList(t *testing.T) {
	reg := newTestRegistry(t)
	cfg := &registry.ModelConfig{
		Model:       &book{},
		TableFields: []string{"title", "notes", "genre"},
		Exclude:     []string{"notes"},
	}
	if err := reg.Register(cfg); err != nil {
		t.Fatalf("register: %v", err)
	}

	if got := componentPaths(t, cfg, registry.KindTable); !reflect.DeepEqual(got, []string{"title", "genre"}) {
		t.Fatalf("explicit list: %v", got)
	}
	// Exclusions also apply when smart defaults won.
	if got := componentPaths(t, cfg, registry.KindForm); !reflect.DeepEqual(got, []string{"title", "genre", "author"}) {
		t.Fatalf("smart defaults: %v", got)
	}
}

func TestFormRejectsRelationalPaths(t *testing.T) {
	reg := newTestRegistry(t)
	cfg := &registry.ModelConfig{
		Model:       &book{},
		FormFields:  []string{"title", "author__email"},
		TableFields: []string{"title", "author__email"},
	}
	if err := reg.Register(cfg); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := cfg.Component(registry.KindForm)
	var invalid *registry.InvalidFieldPathError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidFieldPathError, got %T: %v", err, err)
	}
	if invalid.Path != "author__email" || invalid.Kind != registry.KindForm {
		t.Fatalf("unexpected error detail: %+v", invalid)
	}

	// The identical path is fine in a read-only component.
	if got := componentPaths(t, cfg, registry.KindTable); !reflect.DeepEqual(got, []string{"title", "author__email"}) {
		t.Fatalf("table fields: %v", got)
	}
}

func TestDuplicateFieldNamesCollapse(t *testing.T) {
	reg := newTestRegistry(t)
	cfg := &registry.ModelConfig{
		Model:  &book{},
		Fields: []string{"title", "genre", "title", "notes", "genre"},
	}
	if err := reg.Register(cfg); err != nil {
		t.Fatalf("register: %v", err)
	}

	want := []string{"title", "genre", "notes"}
	if got := componentPaths(t, cfg, registry.KindSerializer); !reflect.DeepEqual(got, want) {
		t.Fatalf("deduped fields: got %v, want %v", got, want)
	}
}

func TestEmptyResolutionIsLegal(t *testing.T) {
	reg := newTestRegistry(t)
	cfg := &registry.ModelConfig{
		Model:   &author{},
		Exclude: []string{"email"},
	}
	if err := reg.Register(cfg); err != nil {
		t.Fatalf("register: %v", err)
	}

	if got := componentPaths(t, cfg, registry.KindForm); len(got) != 0 {
		t.Fatalf("expected degenerate component, got fields %v", got)
	}
}
