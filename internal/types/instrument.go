package types

import (
	"time"

	"github.com/google/uuid"
)

// Instrument is a lab device that produces measurements.
type Instrument struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"not null;column:name" json:"name"`
	Vendor       string    `gorm:"column:vendor" json:"vendor"`
	SerialNumber string    `gorm:"column:serial_number" json:"serial_number"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (Instrument) TableName() string {
	return "instruments"
}
