package db

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stratahub/strata-portal/internal/platform/envutil"
	"github.com/stratahub/strata-portal/internal/platform/logger"
)

// SQLiteService backs the portal in development and in tests, selected with
// DB_DRIVER=sqlite.
type SQLiteService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSQLiteService(log *logger.Logger) (*SQLiteService, error) {
	serviceLog := log.With("service", "SQLiteService")

	path := envutil.GetEnv("SQLITE_PATH", "strata.db", log)

	serviceLog.Info("Opening SQLite database...", "path", path)
	conn, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		serviceLog.Error("Failed to open SQLite database", "error", err)
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	return &SQLiteService{db: conn, log: serviceLog}, nil
}

func (s *SQLiteService) DB() *gorm.DB {
	return s.db
}

func (s *SQLiteService) AutoMigrate(models ...any) error {
	s.log.Info("Auto migrating sqlite tables...", "models", len(models))
	if err := s.db.AutoMigrate(models...); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}
