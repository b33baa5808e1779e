package app

import (
	"gorm.io/gorm"

	"github.com/stratahub/strata-portal/internal/platform/logger"
	"github.com/stratahub/strata-portal/internal/services"
)

type Services struct {
	Auth services.AuthService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config) Services {
	log.Info("Wiring services...")
	return Services{
		Auth: services.NewAuthService(db, log, cfg.JWTSecretKey, cfg.AccessTokenTTL),
	}
}
