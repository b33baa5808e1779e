package app

import (
	"github.com/stratahub/strata-portal/internal/components"
	"github.com/stratahub/strata-portal/internal/modules/geoscience"
	"github.com/stratahub/strata-portal/internal/modules/identity"
	"github.com/stratahub/strata-portal/internal/modules/lab"
	"github.com/stratahub/strata-portal/internal/platform/logger"
	"github.com/stratahub/strata-portal/internal/registry"
	"github.com/stratahub/strata-portal/internal/schema"
)

// wireRegistry builds the model registry and registers every portal module.
// Registration order fixes the enumeration order everywhere downstream.
func wireRegistry(log *logger.Logger) (*registry.Registry, error) {
	log.Info("Wiring model registry...")
	reg := registry.New(schema.NewIntrospector(), components.Strategies(), log)

	if err := identity.Register(reg); err != nil {
		return nil, err
	}
	if err := geoscience.Register(reg); err != nil {
		return nil, err
	}
	if err := lab.Register(reg); err != nil {
		return nil, err
	}
	return reg, nil
}
