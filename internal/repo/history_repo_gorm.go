package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"siembra-valores-api/internal/domain"
	"siembra-valores-api/pkg/utils"
)

// ErrPlantNotFound aborts an Append before any write.
var ErrPlantNotFound = errors.New("plant not found")

// InvalidServicesError reports which of the requested servicio ids do
// exist, so the caller can retry with a corrected set. Even one bad id
// rejects the whole batch.
type InvalidServicesError struct {
	Valid []uint
}

func (e *InvalidServicesError) Error() string {
	return fmt.Sprintf("invalid service ids (%d valid)", len(e.Valid))
}

type HistoryRepo struct{ db *gorm.DB }

func NewHistoryRepo(db *gorm.DB) *HistoryRepo { return &HistoryRepo{db: db} }

// Append writes one historial per requested servicio id, all sharing
// one timestamp. Checks and inserts run inside a single transaction:
// either every entry is recorded or none are.
func (r *HistoryRepo) Append(ctx context.Context, plantaID string, servicioIDs []uint) (time.Time, error) {
	var fecha time.Time
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&domain.Plant{}).Where("id = ?", plantaID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrPlantNotFound
		}

		var valid []uint
		if err := tx.Model(&domain.Service{}).Where("id IN ?", servicioIDs).Pluck("id", &valid).Error; err != nil {
			return err
		}
		// duplicates in the request also land here: valid holds
		// distinct existing ids only
		if len(valid) != len(servicioIDs) {
			return &InvalidServicesError{Valid: valid}
		}

		fecha = time.Now()
		entries := make([]domain.History, 0, len(servicioIDs))
		for _, sid := range servicioIDs {
			entries = append(entries, domain.History{
				ID:         utils.NewID(),
				PlantaID:   plantaID,
				ServicioID: sid,
				Fecha:      fecha,
			})
		}
		return tx.Create(&entries).Error
	})
	return fecha, err
}

func (r *HistoryRepo) CountByPlant(ctx context.Context, plantaID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.History{}).Where("planta_id = ?", plantaID).Count(&n).Error
	return n, err
}
