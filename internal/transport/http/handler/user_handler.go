package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"siembra-valores-api/internal/core/auth"
	"siembra-valores-api/internal/domain"
	"siembra-valores-api/internal/service"
	"siembra-valores-api/internal/transport/http/response"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler { return &UserHandler{svc: svc} }

// userOut is the public projection: the password hash never
// serializes, including on the registration response.
type userOut struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserOut(u *domain.User) userOut {
	return userOut{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
}

// GET /users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	out := make([]userOut, 0, len(users))
	for i := range users {
		out = append(out, toUserOut(&users[i]))
	}
	c.JSON(http.StatusOK, out)
}

// POST /users/create
func (h *UserHandler) Create(c *gin.Context) {
	var in struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Name == "" || in.Email == "" || in.Password == "" {
		response.Message(c, http.StatusBadRequest, "Faltan datos requeridos: name, email y password")
		return
	}
	u, err := h.svc.Register(c.Request.Context(), in.Name, in.Email, in.Password)
	if err != nil {
		response.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Usuario creado exitosamente",
		"user":    toUserOut(u),
	})
}

// POST /users/login
func (h *UserHandler) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Email == "" || in.Password == "" {
		response.Message(c, http.StatusBadRequest, "Faltan datos requeridos: email y password")
		return
	}
	tok, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		response.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Inicio de sesión exitoso",
		"token":   tok,
	})
}

// GET /users/get/:id
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": u.ID, "name": u.Name, "email": u.Email})
}

// GET /users/me (bearer token required)
func (h *UserHandler) Me(c *gin.Context) {
	v, ok := c.Get("claims")
	claims, castOK := v.(*auth.Claims)
	if !ok || !castOK {
		response.Message(c, http.StatusUnauthorized, "Token no proporcionado")
		return
	}
	u, err := h.svc.Get(c.Request.Context(), claims.ID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": u.ID, "name": u.Name, "email": u.Email})
}
