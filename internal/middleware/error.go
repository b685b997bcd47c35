package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/meetocure/admin-api/pkg/errors"
	"github.com/meetocure/admin-api/pkg/httputil"
)

// NoRoute answers unknown paths with the 404 envelope
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		httputil.RespondWithError(c, apperrors.NotFoundMessage("Route not found"))
	}
}

// NoMethod answers a known path with an unsupported verb
func NoMethod() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"success": false, "message": "Method not allowed"})
	}
}

// ErrorHandler renders errors attached with c.Error when the handler wrote
// no response of its own
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		httputil.RespondWithError(c, c.Errors.Last().Err)
	}
}
