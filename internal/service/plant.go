package service

import (
	"context"
	"errors"

	"siembra-valores-api/internal/domain"
	"siembra-valores-api/internal/repo"
	"siembra-valores-api/pkg/utils"
)

type PlantService struct {
	plants    *repo.PlantRepo
	histories *repo.HistoryRepo
	users     *repo.UserRepo
}

func NewPlantService(plants *repo.PlantRepo, histories *repo.HistoryRepo, users *repo.UserRepo) *PlantService {
	return &PlantService{plants: plants, histories: histories, users: users}
}

// Overview returns every user with nested plantas and historiales.
// Zero users is not-found, distinct from users with empty lists.
func (s *PlantService) Overview(ctx context.Context) ([]UserTree, error) {
	rows, err := s.plants.OverviewRows(ctx)
	if err != nil {
		return nil, Internal("Error al obtener los usuarios, sus plantas y servicios", err)
	}
	if len(rows) == 0 {
		return nil, NotFound("No se encontraron usuarios")
	}
	return BuildUserTrees(rows), nil
}

func (s *PlantService) Get(ctx context.Context, id string) (*PlantDetail, error) {
	rows, err := s.plants.HistoryRows(ctx, id)
	if err != nil {
		return nil, Internal("Error al obtener las plantas y sus historiales", err)
	}
	detail, ok := BuildPlantDetail(rows)
	if !ok {
		return nil, NotFound("Planta no encontrada.")
	}
	return &detail, nil
}

func (s *PlantService) List(ctx context.Context) ([]domain.Plant, error) {
	plants, err := s.plants.List(ctx)
	if err != nil {
		return nil, Internal("Error al obtener las plantas", err)
	}
	if len(plants) == 0 {
		return nil, NotFound("No se encontraron plantas")
	}
	return plants, nil
}

func (s *PlantService) ListByUser(ctx context.Context, usuarioID string) ([]domain.Plant, error) {
	plants, err := s.plants.ListByUser(ctx, usuarioID)
	if err != nil {
		return nil, Internal("Error al obtener las plantas del usuario", err)
	}
	if len(plants) == 0 {
		return nil, NotFound("No se encontraron plantas para este usuario")
	}
	return plants, nil
}

// Create refuses to write a plant whose owner does not exist; every
// plant row must reference a usuarios row.
func (s *PlantService) Create(ctx context.Context, name, usuarioID string) (*domain.Plant, error) {
	owner, err := s.users.FindByID(ctx, usuarioID)
	if err != nil {
		return nil, Internal("Error al crear la planta", err)
	}
	if owner == nil {
		return nil, NotFound("Usuario no encontrado")
	}
	p := &domain.Plant{ID: utils.NewID(), Name: name, UsuarioID: usuarioID}
	if err := s.plants.Create(ctx, p); err != nil {
		return nil, Internal("Error al crear la planta", err)
	}
	return p, nil
}

// Delete removes the plant and, by policy, its historiales.
func (s *PlantService) Delete(ctx context.Context, id string) error {
	deleted, err := s.plants.DeleteCascade(ctx, id)
	if err != nil {
		return Internal("Error al eliminar la planta", err)
	}
	if !deleted {
		return NotFound("Planta no encontrada.")
	}
	return nil
}

// AddServices appends one historial per servicio id, all-or-nothing.
// An invalid id in the batch rejects the whole call and reports which
// requested ids do exist.
func (s *PlantService) AddServices(ctx context.Context, plantaID string, servicioIDs []uint) error {
	_, err := s.histories.Append(ctx, plantaID, servicioIDs)
	if err == nil {
		return nil
	}
	if errors.Is(err, repo.ErrPlantNotFound) {
		return NotFound("Planta no encontrada.")
	}
	var ise *repo.InvalidServicesError
	if errors.As(err, &ise) {
		return &Error{
			Code:  400,
			Msg:   "Algunos servicios no son válidos.",
			Extra: map[string]any{"validServiceIds": ise.Valid},
		}
	}
	return Internal("Error al añadir servicios a la planta.", err)
}
