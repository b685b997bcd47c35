package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/meetocure/admin-api/pkg/errors"
	"github.com/meetocure/admin-api/pkg/httputil"
)

// Recovery handles panics and answers with the 500 envelope
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Interface("error", err).
					Str("stack", string(debug.Stack())).
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Str("client_ip", c.ClientIP()).
					Str("request_id", c.GetString(ContextRequestID)).
					Msg("Request panic recovered")

				httputil.Abort(c, apperrors.Internal("Internal server error", fmt.Errorf("panic: %v", err)))
			}
		}()
		c.Next()
	}
}
