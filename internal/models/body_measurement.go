package models

import "time"

// BodyMeasurement is a row of the body-measurement ledger. The table is
// created with the meal ledger but nothing writes to it yet.
type BodyMeasurement struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	MeasurementTime time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"measurement_time"`
	WeightKg        float64   `gorm:"not null" json:"weight_kg"`
	BodyFatPct      *float64  `json:"body_fat_pct,omitempty"`
	MuscleMassPct   *float64  `json:"muscle_mass_pct,omitempty"`
	WaterPct        *float64  `json:"water_pct,omitempty"`
}

func (BodyMeasurement) TableName() string {
	return "body_measurements"
}
