package repo

import (
	"context"

	"gorm.io/gorm"

	"siembra-valores-api/internal/domain"
)

type ServiceRepo struct{ db *gorm.DB }

func NewServiceRepo(db *gorm.DB) *ServiceRepo { return &ServiceRepo{db: db} }

func (r *ServiceRepo) List(ctx context.Context) ([]domain.Service, error) {
	var services []domain.Service
	err := r.db.WithContext(ctx).Find(&services).Error
	return services, err
}
