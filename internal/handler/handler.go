package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/meetocure/admin-api/pkg/errors"
	"github.com/meetocure/admin-api/pkg/httputil"
)

// BindingMessage turns a binding error into a sentence a client can show
func BindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request body"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", name))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid email address", name))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s characters long", name, fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", name, strings.ReplaceAll(fe.Param(), " ", ", ")))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", name))
		}
	}
	return strings.Join(msgs, "; ")
}

// BindJSON binds the request body into req. On failure it writes a 400
// envelope, or 413 when the body was cut off by the size limit, and
// returns false.
func BindJSON(c *gin.Context, req interface{}) bool {
	return bind(c, req, "")
}

// BindJSONMessage is BindJSON with a fixed message for every 400
func BindJSONMessage(c *gin.Context, req interface{}, message string) bool {
	return bind(c, req, message)
}

func bind(c *gin.Context, req interface{}, message string) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		httputil.RespondWithError(c, apperrors.TooLarge(tooLarge.Limit))
		return false
	}
	if message == "" {
		message = BindingMessage(err)
	}
	httputil.RespondWithError(c, apperrors.Validation(message, err))
	return false
}
