package app

import (
	"strings"
	"time"

	"github.com/stratahub/strata-portal/internal/platform/envutil"
	"github.com/stratahub/strata-portal/internal/platform/logger"
)

type Config struct {
	Addr           string
	Environment    string
	Version        string
	DBDriver       string
	AllowedOrigins []string
	JWTSecretKey   string
	AccessTokenTTL time.Duration
	ListCacheTTL   time.Duration
	SeedPath       string
}

func LoadConfig(log *logger.Logger) Config {
	accessTokenTTLSeconds := envutil.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	listCacheTTLSeconds := envutil.GetEnvAsInt("LIST_CACHE_TTL", 60, log)

	var origins []string
	for _, o := range strings.Split(envutil.GetEnv("ALLOWED_ORIGINS", "", log), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}

	return Config{
		Addr:           envutil.GetEnv("ADDR", ":8080", log),
		Environment:    envutil.GetEnv("APP_ENV", "development", log),
		Version:        envutil.GetEnv("APP_VERSION", "dev", log),
		DBDriver:       envutil.GetEnv("DB_DRIVER", "postgres", log),
		AllowedOrigins: origins,
		JWTSecretKey:   envutil.GetEnv("JWT_SECRET_KEY", "defaultsecret", log),
		AccessTokenTTL: time.Duration(accessTokenTTLSeconds) * time.Second,
		ListCacheTTL:   time.Duration(listCacheTTLSeconds) * time.Second,
		SeedPath:       envutil.GetEnv("SEED_PATH", "", log),
	}
}
