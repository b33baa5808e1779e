package app

import (
	"github.com/stratahub/strata-portal/internal/clients/redis"
	httpH "github.com/stratahub/strata-portal/internal/http/handlers"
	"github.com/stratahub/strata-portal/internal/platform/logger"
	"github.com/stratahub/strata-portal/internal/registry"
	"github.com/stratahub/strata-portal/internal/repos"
)

type Handlers struct {
	Health *httpH.HealthHandler
	Auth   *httpH.AuthHandler
	Model  *httpH.ModelHandler
	Admin  *httpH.AdminHandler
}

func wireHandlers(
	log *logger.Logger, services Services, reg *registry.Registry,
	entityRepo repos.EntityRepo, cache *redis.ListCache,
) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(),
		Auth:   httpH.NewAuthHandler(log, services.Auth),
		Model:  httpH.NewModelHandler(log, reg, entityRepo, cache),
		Admin:  httpH.NewAdminHandler(log, reg),
	}
}
