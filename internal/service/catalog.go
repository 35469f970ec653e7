package service

import (
	"context"
	"time"

	"siembra-valores-api/internal/core/cache"
	"siembra-valores-api/internal/domain"
	"siembra-valores-api/internal/repo"
)

const (
	catalogKey = "catalog:servicios"
	catalogTTL = 5 * time.Minute
)

// CatalogService serves the read-only servicios catalog. The catalog
// only changes through external seeding, so a short redis TTL is safe;
// with no cache configured every call hits the store.
type CatalogService struct {
	services *repo.ServiceRepo
	cache    *cache.Cache
}

func NewCatalogService(services *repo.ServiceRepo, c *cache.Cache) *CatalogService {
	return &CatalogService{services: services, cache: c}
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Service, error) {
	var list []domain.Service
	if s.cache != nil {
		out, err := cache.GetOrLoadJSON[[]domain.Service](s.cache, ctx, catalogKey, catalogTTL,
			func(ctx context.Context) (*[]domain.Service, error) {
				l, e := s.services.List(ctx)
				if e != nil {
					return nil, e
				}
				return &l, nil
			})
		if err != nil {
			return nil, Internal("Error al obtener los servicios", err)
		}
		if out != nil {
			list = *out
		}
	} else {
		var err error
		list, err = s.services.List(ctx)
		if err != nil {
			return nil, Internal("Error al obtener los servicios", err)
		}
	}
	if len(list) == 0 {
		return nil, NotFound("No se encontraron servicios")
	}
	return list, nil
}
