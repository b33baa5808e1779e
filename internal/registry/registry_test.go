package registry_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/stratahub/strata-portal/internal/platform/logger"
	"github.com/stratahub/strata-portal/internal/registry"
	"github.com/stratahub/strata-portal/internal/schema"
)

// Test fixtures. author/book/shelf cover scalars, choices, discriminators,
// internal attributes and a to-one relation without dragging in the real
// portal models.
type author struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"not null"`
	Secret    string `portal:"internal"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type book struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"not null"`
	Genre     string `portal:"choice=fiction|nonfiction|reference"`
	Kind      string `portal:"discriminator"`
	AuthorID  uint
	Author    *author
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (book) PortalCategory() registry.Category { return registry.CategoryCollection }

type shelf struct {
	ID    uint `gorm:"primaryKey"`
	Label string
}

// stubComponent and stubStrategy observe what the factory feeds a strategy.
type stubComponent struct {
	kind  registry.Kind
	model reflect.Type
	paths []string
}

func (c *stubComponent) ComponentKind() registry.Kind { return c.kind }
func (c *stubComponent) Model() reflect.Type          { return c.model }

type stubStrategy struct {
	kind  registry.Kind
	calls *int
}

func (s stubStrategy) ComponentKind() registry.Kind { return s.kind }

func (s stubStrategy) Generate(cfg *registry.ModelConfig, fields []schema.ResolvedField) (registry.Component, error) {
	if s.calls != nil {
		*s.calls++
	}
	paths := make([]string, len(fields))
	for i, rf := range fields {
		paths[i] = rf.Path
	}
	return &stubComponent{kind: s.kind, model: cfg.ModelType(), paths: paths}, nil
}

func stubStrategies() []registry.Strategy {
	out := make([]registry.Strategy, 0, len(registry.Kinds()))
	for _, k := range registry.Kinds() {
		out = append(out, stubStrategy{kind: k})
	}
	return out
}

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	return registry.New(schema.NewIntrospector(), stubStrategies(), logger.NewNop())
}

func TestRegisterRejectsDuplicate(t *testing.T) {
	reg := newTestRegistry(t)
	if err := reg.Register(&registry.ModelConfig{Model: &book{}}); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	err := reg.Register(&registry.ModelConfig{Model: &book{}, Fields: []string{"title"}})
	if err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
	var dup *registry.DuplicateRegistrationError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateRegistrationError, got %T: %v", err, err)
	}
	if dup.Model != "book" {
		t.Fatalf("unexpected model in error: %q", dup.Model)
	}
}

func TestGetUnregisteredModel(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := reg.Get(&shelf{})
	var unreg *registry.UnregisteredModelError
	if !errors.As(err, &unreg) {
		t.Fatalf("expected UnregisteredModelError, got %T: %v", err, err)
	}
	if reg.IsRegistered(&shelf{}) {
		t.Fatal("IsRegistered reported an unregistered model")
	}
}

func TestGetAcceptsValueAndPointer(t *testing.T) {
	reg := newTestRegistry(t)
	if err := reg.Register(&registry.ModelConfig{Model: &book{}}); err != nil {
		t.Fatalf("register: %v", err)
	}

	byPtr, err := reg.Get(&book{})
	if err != nil {
		t.Fatalf("lookup by pointer: %v", err)
	}
	byVal, err := reg.Get(book{})
	if err != nil {
		t.Fatalf("lookup by value: %v", err)
	}
	if byPtr != byVal {
		t.Fatal("pointer and value lookups returned different configurations")
	}
}

func TestAllPreservesRegistrationOrder(t *testing.T) {
	reg := newTestRegistry(t)
	for _, m := range []any{&shelf{}, &book{}, &author{}} {
		if err := reg.Register(&registry.ModelConfig{Model: m}); err != nil {
			t.Fatalf("register %T: %v", m, err)
		}
	}

	want := []string{"shelf", "book", "author"}
	for pass := 0; pass < 2; pass++ {
		all := reg.All()
		if len(all) != len(want) {
			t.Fatalf("pass %d: got %d configurations, want %d", pass, len(all), len(want))
		}
		for i, cfg := range all {
			if cfg.ModelType().Name() != want[i] {
				t.Fatalf("pass %d: position %d is %s, want %s", pass, i, cfg.ModelType().Name(), want[i])
			}
		}
	}
}

func TestByCategory(t *testing.T) {
	reg := newTestRegistry(t)
	for _, m := range []any{&shelf{}, &book{}} {
		if err := reg.Register(&registry.ModelConfig{Model: m}); err != nil {
			t.Fatalf("register %T: %v", m, err)
		}
	}

	collections := reg.ByCategory(registry.CategoryCollection)
	if len(collections) != 1 || collections[0].ModelType().Name() != "book" {
		t.Fatalf("unexpected collection set: %+v", collections)
	}
	generic := reg.ByCategory(registry.CategoryGeneric)
	if len(generic) != 1 || generic[0].ModelType().Name() != "shelf" {
		t.Fatalf("unexpected generic set: %+v", generic)
	}
	if got := reg.ByCategory(registry.CategorySample); len(got) != 0 {
		t.Fatalf("expected no samples, got %d", len(got))
	}
}

func TestGetBySlug(t *testing.T) {
	reg := newTestRegistry(t)
	if err := reg.Register(&registry.ModelConfig{Model: &book{}}); err != nil {
		t.Fatalf("register: %v", err)
	}

	cfg, err := reg.GetBySlug("books")
	if err != nil {
		t.Fatalf("lookup by slug: %v", err)
	}
	if cfg.Slug() != "books" {
		t.Fatalf("unexpected slug: %q", cfg.Slug())
	}
	if _, err := reg.GetBySlug("nowhere"); err == nil {
		t.Fatal("expected unknown slug to fail")
	}
}

func TestDefaultDisplayName(t *testing.T) {
	reg := newTestRegistry(t)
	named := &registry.ModelConfig{Model: &book{}, DisplayName: "Bound Volume"}
	unnamed := &registry.ModelConfig{Model: &shelf{}}
	for _, cfg := range []*registry.ModelConfig{named, unnamed} {
		if err := reg.Register(cfg); err != nil {
			t.Fatalf("register: %v", err)
		}
	}
	if named.DisplayName != "Bound Volume" {
		t.Fatalf("explicit display name overwritten: %q", named.DisplayName)
	}
	if unnamed.DisplayName != "shelf" {
		t.Fatalf("default display name: got %q, want type name", unnamed.DisplayName)
	}
}

func TestModelsFollowsRegistrationOrder(t *testing.T) {
	reg := newTestRegistry(t)
	b, a := &book{}, &author{}
	for _, m := range []any{b, a} {
		if err := reg.Register(&registry.ModelConfig{Model: m}); err != nil {
			t.Fatalf("register %T: %v", m, err)
		}
	}
	models := reg.Models()
	if len(models) != 2 || models[0] != any(b) || models[1] != any(a) {
		t.Fatalf("unexpected Models(): %+v", models)
	}
}
