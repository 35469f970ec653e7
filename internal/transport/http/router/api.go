package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"siembra-valores-api/internal/core/auth"
	"siembra-valores-api/internal/core/cache"
	"siembra-valores-api/internal/repo"
	"siembra-valores-api/internal/service"
	"siembra-valores-api/internal/transport/http/handler"
	mdw "siembra-valores-api/internal/transport/http/middleware"
)

// NewAPIEngine assembles the full HTTP surface. ch may be nil; the
// servicios catalog then skips the redis read-through.
func NewAPIEngine(l *zap.Logger, db *gorm.DB, jwter *auth.JWTer, ch *cache.Cache) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		cors.Default(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	userRepo := repo.NewUserRepo(db)
	plantRepo := repo.NewPlantRepo(db)
	serviceRepo := repo.NewServiceRepo(db)
	historyRepo := repo.NewHistoryRepo(db)

	userH := handler.NewUserHandler(service.NewUserService(userRepo, jwter))
	plantH := handler.NewPlantHandler(service.NewPlantService(plantRepo, historyRepo, userRepo))
	serviceH := handler.NewServiceHandler(service.NewCatalogService(serviceRepo, ch))

	api := r.Group("/api")
	{
		api.GET("/plantas", plantH.Overview)

		api.GET("/plants", plantH.List)
		api.GET("/plants/:id", plantH.Get)
		api.GET("/plants/user/:userId", plantH.ListByUser)
		api.POST("/plants/create", plantH.Create)
		api.DELETE("/plants/delete/:id", plantH.Delete)
		api.POST("/plants/add-services", plantH.AddServices)

		api.GET("/services", serviceH.List)

		api.GET("/users", userH.List)
		api.POST("/users/create", userH.Create)
		api.POST("/users/login", userH.Login)
		api.GET("/users/get/:id", userH.Get)

		me := api.Group("")
		me.Use(mdw.AuthJWT(jwter))
		me.GET("/users/me", userH.Me)
	}

	return r
}
