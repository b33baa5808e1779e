package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/stratahub/strata-portal/internal/registry"
)

// Dataset groups the samples collected under one project.
type Dataset struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null;column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description"`
	License     string    `gorm:"not null;default:'CC-BY-4.0';column:license" json:"license" portal:"choice=CC-BY-4.0|CC0-1.0|proprietary"`
	ProjectID   uuid.UUID `gorm:"type:uuid;column:project_id" json:"project_id"`
	Project     *Project  `json:"project,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Dataset) TableName() string {
	return "datasets"
}

func (Dataset) PortalCategory() registry.Category {
	return registry.CategoryCollection
}
