package service

import (
	"context"
	"strings"

	"siembra-valores-api/internal/core/auth"
	"siembra-valores-api/internal/domain"
	"siembra-valores-api/internal/repo"
	"siembra-valores-api/pkg/utils"
)

type UserService struct {
	users *repo.UserRepo
	jwter *auth.JWTer
}

func NewUserService(users *repo.UserRepo, jwter *auth.JWTer) *UserService {
	return &UserService{users: users, jwter: jwter}
}

// Register stores a new user with a bcrypt hash. The email check runs
// first; the unique index backstops the check-then-insert race, with
// duplicate-key errors mapped to the same conflict answer.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, Internal("Error al crear el usuario", err)
	}
	if existing != nil {
		return nil, BadRequest("Ya existe un usuario con ese email")
	}

	u := &domain.User{
		ID:       utils.NewID(),
		Name:     name,
		Email:    email,
		Password: utils.HashPassword(password),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if isDupKey(err) {
			return nil, BadRequest("Ya existe un usuario con ese email")
		}
		return nil, Internal("Error al crear el usuario", err)
	}
	return u, nil
}

// Login verifies credentials and issues a bearer token carrying the
// user's id, email and name.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", Internal("Error al iniciar sesión", err)
	}
	if u == nil {
		return "", BadRequest("Usuario no encontrado")
	}
	if !utils.CheckPassword(password, u.Password) {
		return "", Unauthorized("Contraseña incorrecta")
	}
	tok, err := s.jwter.Issue(u.ID, u.Email, u.Name)
	if err != nil {
		return "", Internal("Error al iniciar sesión", err)
	}
	return tok, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, Internal("Error al obtener los usuarios", err)
	}
	if len(users) == 0 {
		return nil, NotFound("No se encontraron usuarios")
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, Internal("Error al obtener el usuario", err)
	}
	if u == nil {
		return nil, NotFound("Usuario no encontrado")
	}
	return u, nil
}

func isDupKey(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
