package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/stratahub/strata-portal/internal/registry"
)

// Measurement is one quantitative observation of a sample.
type Measurement struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Quantity     string      `gorm:"not null;column:quantity" json:"quantity" portal:"choice=density|porosity|magnetic_susceptibility|grain_size"`
	Value        float64     `gorm:"not null;column:value" json:"value"`
	Unit         string      `gorm:"not null;column:unit" json:"unit"`
	SampleID     uuid.UUID   `gorm:"type:uuid;column:sample_id" json:"sample_id"`
	Sample       *RockSample `json:"sample,omitempty"`
	InstrumentID uuid.UUID   `gorm:"type:uuid;column:instrument_id" json:"instrument_id"`
	Instrument   *Instrument `json:"instrument,omitempty"`
	MeasuredAt   *time.Time  `gorm:"column:measured_at" json:"measured_at"`
	CreatedAt    time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null" json:"updated_at"`
}

func (Measurement) TableName() string {
	return "measurements"
}

func (Measurement) PortalCategory() registry.Category {
	return registry.CategoryMeasurement
}
