package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/meetocure/admin-api/pkg/errors"
	"github.com/meetocure/admin-api/pkg/httputil"
)

// SizeLimit rejects bodies larger than maxBytes and caps reads to the same
// limit when the length is not declared. A capped read fails with
// *http.MaxBytesError, which handler.BindJSON answers with 413. A
// non-positive limit disables it.
func SizeLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}

		if c.Request.ContentLength > maxBytes {
			httputil.Abort(c, apperrors.TooLarge(maxBytes))
			return
		}

		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
