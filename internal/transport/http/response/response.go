package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"siembra-valores-api/internal/service"
)

// The wire contract uses real HTTP status codes with small JSON
// bodies: {"message": ...} on 4xx, {"error": ...} on 500.

// Fail maps a service error onto the response; anything that is not a
// *service.Error becomes a 500.
func Fail(c *gin.Context, err error) {
	var se *service.Error
	if !errors.As(err, &se) {
		se = service.Internal("internal error", err)
	}
	if se.Err != nil {
		_ = c.Error(se.Err) // surfaces in the access log
	}
	if se.Code >= http.StatusInternalServerError {
		c.JSON(se.Code, gin.H{"error": se.Msg})
		return
	}
	body := gin.H{"message": se.Msg}
	for k, v := range se.Extra {
		body[k] = v
	}
	c.JSON(se.Code, body)
}

// Message writes a bare message body with the given status.
func Message(c *gin.Context, status int, msg string) {
	if status >= http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(status, gin.H{"message": msg})
}
