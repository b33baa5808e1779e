package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/stratahub/strata-portal/internal/platform/envutil"
	"github.com/stratahub/strata-portal/internal/platform/logger"
)

// PostgresService owns the portal's Postgres connection.
type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	host := envutil.GetEnv("POSTGRES_HOST", "localhost", log)
	port := envutil.GetEnv("POSTGRES_PORT", "5432", log)
	user := envutil.GetEnv("POSTGRES_USER", "postgres", log)
	password := envutil.GetEnv("POSTGRES_PASSWORD", "", log)
	name := envutil.GetEnv("POSTGRES_NAME", "strata", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)

	serviceLog.Info("Connecting to Postgres...")
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	return &PostgresService{db: conn, log: serviceLog}, nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}

// AutoMigrate creates and updates the tables of every registered model.
// The model list comes from the registry so portal modules never maintain a
// migration list by hand.
func (s *PostgresService) AutoMigrate(models ...any) error {
	s.log.Info("Auto migrating postgres tables...", "models", len(models))
	if err := s.db.AutoMigrate(models...); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}
