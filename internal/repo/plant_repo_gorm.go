package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"siembra-valores-api/internal/domain"
)

// OverviewRow is one row of the usuarios→plantas→historiales→servicios
// left join. Plant and history columns are null together when a user
// has no plants or a plant has no history.
type OverviewRow struct {
	UserID              string
	UserName            string
	UserEmail           string
	PlantaID            *string
	PlantaName          *string
	HistorialID         *string
	ServicioID          *uint
	Fecha               *time.Time
	ServicioName        *string
	ServicioDescription *string
}

// HistoryRow is one row of the single-plant join.
type HistoryRow struct {
	PlantaID            string
	PlantaName          string
	HistorialID         *string
	ServicioID          *uint
	Fecha               *time.Time
	ServicioName        *string
	ServicioDescription *string
}

type PlantRepo struct{ db *gorm.DB }

func NewPlantRepo(db *gorm.DB) *PlantRepo { return &PlantRepo{db: db} }

func (r *PlantRepo) Create(ctx context.Context, p *domain.Plant) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PlantRepo) FindByID(ctx context.Context, id string) (*domain.Plant, error) {
	var p domain.Plant
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PlantRepo) List(ctx context.Context) ([]domain.Plant, error) {
	var plants []domain.Plant
	err := r.db.WithContext(ctx).Find(&plants).Error
	return plants, err
}

func (r *PlantRepo) ListByUser(ctx context.Context, usuarioID string) ([]domain.Plant, error) {
	var plants []domain.Plant
	err := r.db.WithContext(ctx).Where("usuario_id = ?", usuarioID).Find(&plants).Error
	return plants, err
}

// DeleteCascade removes the plant and its historiales as one unit.
// Returns false when no plant row matched; nothing is touched then.
func (r *PlantRepo) DeleteCascade(ctx context.Context, id string) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&domain.Plant{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true
		return tx.Where("planta_id = ?", id).Delete(&domain.History{}).Error
	})
	return deleted, err
}

// OverviewRows feeds the user-tree aggregator. Row order is whatever
// the store returns; the fold keys on first occurrence, not position.
func (r *PlantRepo) OverviewRows(ctx context.Context) ([]OverviewRow, error) {
	var rows []OverviewRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT u.id AS user_id, u.name AS user_name, u.email AS user_email,
		       p.id AS planta_id, p.name AS planta_name,
		       h.id AS historial_id, h.servicio_id, h.fecha,
		       s.name AS servicio_name, s.description AS servicio_description
		FROM usuarios u
		LEFT JOIN plantas p ON u.id = p.usuario_id
		LEFT JOIN historiales h ON p.id = h.planta_id
		LEFT JOIN servicios s ON h.servicio_id = s.id`).
		Scan(&rows).Error
	return rows, err
}

// HistoryRows feeds the single-plant aggregator. An empty result means
// the plant does not exist.
func (r *PlantRepo) HistoryRows(ctx context.Context, id string) ([]HistoryRow, error) {
	var rows []HistoryRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id AS planta_id, p.name AS planta_name,
		       h.id AS historial_id, h.servicio_id, h.fecha,
		       s.name AS servicio_name, s.description AS servicio_description
		FROM plantas p
		LEFT JOIN historiales h ON p.id = h.planta_id
		LEFT JOIN servicios s ON h.servicio_id = s.id
		WHERE p.id = ?`, id).
		Scan(&rows).Error
	return rows, err
}
