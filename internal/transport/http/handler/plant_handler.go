package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"siembra-valores-api/internal/service"
	"siembra-valores-api/internal/transport/http/response"
)

type PlantHandler struct {
	svc *service.PlantService
}

func NewPlantHandler(svc *service.PlantService) *PlantHandler { return &PlantHandler{svc: svc} }

// GET /plantas — every user with nested plantas and historiales.
func (h *PlantHandler) Overview(c *gin.Context) {
	trees, err := h.svc.Overview(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, trees)
}

// GET /plants
func (h *PlantHandler) List(c *gin.Context) {
	plants, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, plants)
}

// GET /plants/:id
func (h *PlantHandler) Get(c *gin.Context) {
	detail, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"planta": detail})
}

// GET /plants/user/:userId
func (h *PlantHandler) ListByUser(c *gin.Context) {
	plants, err := h.svc.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, plants)
}

// POST /plants/create
func (h *PlantHandler) Create(c *gin.Context) {
	var in struct {
		Name      string `json:"name"`
		UsuarioID string `json:"usuario_id"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Name == "" || in.UsuarioID == "" {
		response.Message(c, http.StatusBadRequest, "Faltan datos requeridos: name y usuario_id")
		return
	}
	p, err := h.svc.Create(c.Request.Context(), in.Name, in.UsuarioID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Planta creada exitosamente",
		"planta":  p,
	})
}

// DELETE /plants/delete/:id
func (h *PlantHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.Message(c, http.StatusBadRequest, "Falta el ID de la planta para eliminar.")
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Planta eliminada exitosamente.")
}

// POST /plants/add-services — all-or-nothing batch append.
func (h *PlantHandler) AddServices(c *gin.Context) {
	var in struct {
		PlantaID    string `json:"plantaId"`
		ServicioIDs []uint `json:"servicioIds"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.PlantaID == "" || len(in.ServicioIDs) == 0 {
		response.Message(c, http.StatusBadRequest, "PlantaId y una lista de servicioIds son requeridos.")
		return
	}
	if err := h.svc.AddServices(c.Request.Context(), in.PlantaID, in.ServicioIDs); err != nil {
		response.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":     "Servicios añadidos a la planta exitosamente.",
		"plantaId":    in.PlantaID,
		"servicioIds": in.ServicioIDs,
	})
}
