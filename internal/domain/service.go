package domain

import "time"

// Service is a catalog entry describing a kind of care action
// (watering, pruning, ...). The catalog is seeded externally and
// read-only through this API.
type Service struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:120;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Service) TableName() string { return "servicios" }
