package httputil

import (
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/meetocure/admin-api/pkg/errors"
)

var exposeErrors atomic.Bool

func init() {
	exposeErrors.Store(true)
}

// SetExposeErrors controls whether 500 responses carry the raw error text
func SetExposeErrors(expose bool) {
	exposeErrors.Store(expose)
}

// Option adds an optional member to a response body
type Option func(gin.H)

func WithMessage(message string) Option {
	return func(h gin.H) { h["message"] = message }
}

// WithCount sets count, including when it is zero
func WithCount(n int) Option {
	return func(h gin.H) { h["count"] = n }
}

// WithField adds an arbitrary top-level member
func WithField(key string, value interface{}) Option {
	return func(h gin.H) { h[key] = value }
}

// RespondWithSuccess writes {success:true, data} with the given status
func RespondWithSuccess(c *gin.Context, status int, data interface{}, opts ...Option) {
	body := gin.H{"success": true}
	if data != nil {
		body["data"] = data
	}
	for _, opt := range opts {
		opt(body)
	}
	c.JSON(status, body)
}

func RespondOK(c *gin.Context, data interface{}, opts ...Option) {
	RespondWithSuccess(c, http.StatusOK, data, opts...)
}

func RespondCreated(c *gin.Context, data interface{}, opts ...Option) {
	RespondWithSuccess(c, http.StatusCreated, data, opts...)
}

// RespondWithError converts err into the envelope. Errors that are not
// AppErrors are treated as internal.
func RespondWithError(c *gin.Context, err error) {
	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.Internal("Internal server error", err)
	}

	status := appErr.StatusCode()
	body := gin.H{"success": false, "message": appErr.Message}
	for k, v := range appErr.Fields {
		body[k] = v
	}

	if status >= http.StatusInternalServerError {
		log.Error().Err(appErr.Err).
			Str("request_id", c.GetString("request_id")).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg(appErr.Message)
		if exposeErrors.Load() && appErr.Err != nil {
			body["error"] = appErr.Err.Error()
		}
	}

	c.JSON(status, body)
}

// Abort is RespondWithError for middleware; it stops the handler chain
func Abort(c *gin.Context, err error) {
	RespondWithError(c, err)
	c.Abort()
}
