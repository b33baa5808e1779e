package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"reflect"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/stratahub/strata-portal/internal/platform/logger"
	"github.com/stratahub/strata-portal/internal/registry"
	"github.com/stratahub/strata-portal/internal/types"
)

// Seed loads development fixtures from a YAML file keyed by model slug:
//
//	users:
//	  - email: ada@example.com
//	    password: s3cret
//	projects:
//	  - name: Basin Survey
//
// A model is only seeded when its table is empty, so restarts don't duplicate
// rows. Plaintext "password" values are bcrypt-hashed before insert.
func Seed(ctx context.Context, db *gorm.DB, reg *registry.Registry, path string, log *logger.Logger) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var fixtures map[string][]map[string]any
	if err := yaml.Unmarshal(raw, &fixtures); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	// Registration order keeps owners before the rows that reference them.
	for _, cfg := range reg.All() {
		rows, present := fixtures[cfg.Slug()]
		if !present || len(rows) == 0 {
			continue
		}

		var count int64
		if err := db.WithContext(ctx).Model(reflect.New(cfg.ModelType()).Interface()).Count(&count).Error; err != nil {
			return fmt.Errorf("count %s: %w", cfg.Slug(), err)
		}
		if count > 0 {
			log.Debug("Seed skipped, table not empty", "model", cfg.Slug(), "rows", count)
			continue
		}

		for i, attrs := range rows {
			entity := reflect.New(cfg.ModelType()).Interface()
			if err := decodeAttributes(entity, attrs); err != nil {
				return fmt.Errorf("decode %s[%d]: %w", cfg.Slug(), i, err)
			}
			// Password never round-trips through JSON; hash and set it directly.
			if u, ok := entity.(*types.User); ok {
				if pw, ok := attrs["password"].(string); ok && pw != "" {
					hashed, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
					if err != nil {
						return fmt.Errorf("hash password for %s[%d]: %w", cfg.Slug(), i, err)
					}
					u.Password = string(hashed)
				}
			}
			if err := db.WithContext(ctx).Create(entity).Error; err != nil {
				return fmt.Errorf("insert %s[%d]: %w", cfg.Slug(), i, err)
			}
		}
		log.Info("Seeded fixtures", "model", cfg.Slug(), "rows", len(rows))
	}
	return nil
}

func decodeAttributes(entity any, attrs map[string]any) error {
	raw, err := json.Marshal(attrs)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, entity)
}
