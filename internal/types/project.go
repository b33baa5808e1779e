package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/stratahub/strata-portal/internal/registry"
)

// Project is the top-level container for a research effort.
type Project struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"not null;column:name" json:"name"`
	Description string         `gorm:"column:description" json:"description"`
	Status      string         `gorm:"not null;default:'active';column:status" json:"status" portal:"choice=active|completed|archived"`
	OwnerID     uuid.UUID      `gorm:"type:uuid;column:owner_id" json:"owner_id"`
	Owner       *User          `json:"owner,omitempty"`
	Metadata    datatypes.JSON `gorm:"column:metadata" json:"metadata"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

func (Project) PortalCategory() registry.Category {
	return registry.CategoryCollection
}
