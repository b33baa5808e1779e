package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/stratahub/strata-portal/internal/registry"
)

// RockSample is a physical specimen catalogued in the portal.
type RockSample struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"not null;column:name" json:"name"`
	Location    string         `gorm:"column:location" json:"location"`
	Lithology   string         `gorm:"column:lithology" json:"lithology" portal:"choice=igneous|sedimentary|metamorphic"`
	SampleType  string         `gorm:"column:sample_type" json:"sample_type" portal:"discriminator"`
	CollectedOn *time.Time     `gorm:"column:collected_on" json:"collected_on"`
	DatasetID   uuid.UUID      `gorm:"type:uuid;column:dataset_id" json:"dataset_id"`
	Dataset     *Dataset       `json:"dataset,omitempty"`
	OwnerID     uuid.UUID      `gorm:"type:uuid;column:owner_id" json:"owner_id"`
	Owner       *User          `json:"owner,omitempty"`
	Tags        datatypes.JSON `gorm:"column:tags" json:"tags"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

func (RockSample) TableName() string {
	return "rock_samples"
}

func (RockSample) PortalCategory() registry.Category {
	return registry.CategorySample
}
