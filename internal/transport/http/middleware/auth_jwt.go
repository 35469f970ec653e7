package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"siembra-valores-api/internal/core/auth"
)

// AuthJWT requires a valid bearer token and exposes its claims to the
// handler. There are no roles: any valid token passes.
func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token no proporcionado"})
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token inválido"})
			return
		}
		c.Set("userId", claims.ID)
		c.Set("claims", claims)
		c.Next()
	}
}
