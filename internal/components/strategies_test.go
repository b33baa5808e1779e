package components_test

import (
	"testing"

	"github.com/stratahub/strata-portal/internal/components"
	"github.com/stratahub/strata-portal/internal/modules/geoscience"
	"github.com/stratahub/strata-portal/internal/modules/identity"
	"github.com/stratahub/strata-portal/internal/modules/lab"
	"github.com/stratahub/strata-portal/internal/platform/logger"
	"github.com/stratahub/strata-portal/internal/registry"
	"github.com/stratahub/strata-portal/internal/schema"
)

// newPortalRegistry wires the real strategies against the real portal modules.
func newPortalRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New(schema.NewIntrospector(), components.Strategies(), logger.NewNop())
	for _, register := range []func(*registry.Registry) error{
		identity.Register, geoscience.Register, lab.Register,
	} {
		if err := register(reg); err != nil {
			t.Fatalf("register module: %v", err)
		}
	}
	return reg
}

func buildComponent(t *testing.T, reg *registry.Registry, model any, kind registry.Kind) registry.Component {
	t.Helper()
	cfg, err := reg.Get(model)
	if err != nil {
		t.Fatalf("lookup %T: %v", model, err)
	}
	comp, err := cfg.Component(kind)
	if err != nil {
		t.Fatalf("build %s component for %T: %v", kind, model, err)
	}
	return comp
}
