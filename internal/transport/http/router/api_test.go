package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"siembra-valores-api/internal/core/auth"
	"siembra-valores-api/internal/domain"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func newTestEngine(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "api.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Plant{},
		&domain.Service{},
		&domain.History{},
	))
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "siembra-valores", TTL: time.Hour}
	return NewAPIEngine(zap.NewNop(), db, jwter, nil), db
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&[]domain.Service{
		{ID: 1, Name: "Riego", Description: "Aplicación de agua"},
		{ID: 2, Name: "Poda", Description: "Corte de ramas"},
		{ID: 3, Name: "Fertilización", Description: "Abono"},
	}).Error)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestPlantLifecycle(t *testing.T) {
	r, db := newTestEngine(t)
	seedCatalog(t, db)

	w := doJSON(t, r, http.MethodPost, "/api/users/create", gin.H{
		"name": "Ana", "email": "ana@x.com", "password": "secreta",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")
	user := decode(t, w)["user"].(map[string]any)
	userID := user["id"].(string)

	w = doJSON(t, r, http.MethodPost, "/api/users/login", gin.H{
		"email": "ana@x.com", "password": "secreta",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	login := decode(t, w)
	assert.Equal(t, "Inicio de sesión exitoso", login["message"])
	assert.NotEmpty(t, login["token"])

	w = doJSON(t, r, http.MethodPost, "/api/plants/create", gin.H{
		"name": "Limonero", "usuario_id": userID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	planta := decode(t, w)["planta"].(map[string]any)
	plantID := planta["id"].(string)

	w = doJSON(t, r, http.MethodPost, "/api/plants/add-services", gin.H{
		"plantaId": plantID, "servicioIds": []uint{1, 2},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	added := decode(t, w)
	assert.Equal(t, "Servicios añadidos a la planta exitosamente.", added["message"])
	assert.Equal(t, plantID, added["plantaId"])
	assert.Len(t, added["servicioIds"], 2)

	w = doJSON(t, r, http.MethodGet, "/api/plants/"+plantID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	detail := decode(t, w)["planta"].(map[string]any)
	assert.Equal(t, "Limonero", detail["name"])
	historiales := detail["historiales"].([]any)
	require.Len(t, historiales, 2)
	first := historiales[0].(map[string]any)
	second := historiales[1].(map[string]any)
	assert.Equal(t, first["fecha"], second["fecha"], "batch shares one timestamp")
	assert.ElementsMatch(t, []string{"Riego", "Poda"},
		[]string{first["servicio_name"].(string), second["servicio_name"].(string)})

	w = doJSON(t, r, http.MethodGet, "/api/plantas", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var trees []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &trees))
	require.Len(t, trees, 1)
	assert.Equal(t, userID, trees[0]["user_id"])
	assert.Equal(t, "ana@x.com", trees[0]["user_email"])
	plantas := trees[0]["plantas"].([]any)
	require.Len(t, plantas, 1)
	assert.Len(t, plantas[0].(map[string]any)["historiales"], 2)

	w = doJSON(t, r, http.MethodDelete, "/api/plants/delete/"+plantID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Planta eliminada exitosamente.", decode(t, w)["message"])

	w = doJSON(t, r, http.MethodGet, "/api/plants/"+plantID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Planta no encontrada.", decode(t, w)["message"])

	var left int64
	require.NoError(t, db.Model(&domain.History{}).Count(&left).Error)
	assert.Zero(t, left, "history rows removed with the plant")
}

func TestAddServicesInvalidIDWritesNothing(t *testing.T) {
	r, db := newTestEngine(t)
	seedCatalog(t, db)

	w := doJSON(t, r, http.MethodPost, "/api/users/create", gin.H{
		"name": "Ana", "email": "ana@x.com", "password": "secreta",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	userID := decode(t, w)["user"].(map[string]any)["id"].(string)

	w = doJSON(t, r, http.MethodPost, "/api/plants/create", gin.H{
		"name": "Rosal", "usuario_id": userID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	plantID := decode(t, w)["planta"].(map[string]any)["id"].(string)

	w = doJSON(t, r, http.MethodPost, "/api/plants/add-services", gin.H{
		"plantaId": plantID, "servicioIds": []uint{1, 99},
	})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Algunos servicios no son válidos.", body["message"])
	assert.Equal(t, []any{float64(1)}, body["validServiceIds"])

	var n int64
	require.NoError(t, db.Model(&domain.History{}).Count(&n).Error)
	assert.Zero(t, n, "invalid batch writes nothing")
}

func TestEmptyListsAnswer404(t *testing.T) {
	r, _ := newTestEngine(t)

	for path, msg := range map[string]string{
		"/api/users":    "No se encontraron usuarios",
		"/api/plants":   "No se encontraron plantas",
		"/api/plantas":  "No se encontraron usuarios",
		"/api/services": "No se encontraron servicios",
	} {
		w := doJSON(t, r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, msg, decode(t, w)["message"], path)
	}
}

func TestValidationMessages(t *testing.T) {
	r, _ := newTestEngine(t)

	w := doJSON(t, r, http.MethodPost, "/api/users/create", gin.H{"name": "Ana"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Faltan datos requeridos: name, email y password", decode(t, w)["message"])

	w = doJSON(t, r, http.MethodPost, "/api/plants/create", gin.H{"name": "Rosal"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Faltan datos requeridos: name y usuario_id", decode(t, w)["message"])

	w = doJSON(t, r, http.MethodPost, "/api/plants/create", gin.H{"name": "Rosal", "usuario_id": "no-such-user"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Usuario no encontrado", decode(t, w)["message"])

	w = doJSON(t, r, http.MethodPost, "/api/plants/add-services", gin.H{"plantaId": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "PlantaId y una lista de servicioIds son requeridos.", decode(t, w)["message"])

	w = doJSON(t, r, http.MethodPost, "/api/users/login", gin.H{"email": "ana@x.com", "password": "mala"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Usuario no encontrado", decode(t, w)["message"])
}

func TestUsersMeRequiresToken(t *testing.T) {
	r, _ := newTestEngine(t)

	w := doJSON(t, r, http.MethodPost, "/api/users/create", gin.H{
		"name": "Ana", "email": "ana@x.com", "password": "secreta",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	userID := decode(t, w)["user"].(map[string]any)["id"].(string)

	w = doJSON(t, r, http.MethodGet, "/api/users/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token no proporcionado", decode(t, w)["message"])

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token inválido", decode(t, w)["message"])

	lw := doJSON(t, r, http.MethodPost, "/api/users/login", gin.H{
		"email": "ana@x.com", "password": "secreta",
	})
	require.Equal(t, http.StatusOK, lw.Code)
	token := decode(t, lw)["token"].(string)

	req = httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, userID, decode(t, w)["id"])

	w = doJSON(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
