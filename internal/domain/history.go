package domain

import "time"

// History records that a service type was applied to a plant at a
// point in time. Entries written in one batch share one Fecha.
type History struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	PlantaID   string    `gorm:"size:36;not null;index" json:"planta_id"`
	ServicioID uint      `gorm:"not null" json:"servicio_id"`
	Fecha      time.Time `gorm:"not null" json:"fecha"`
}

func (History) TableName() string { return "historiales" }
