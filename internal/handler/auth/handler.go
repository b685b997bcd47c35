package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/meetocure/admin-api/internal/handler"
	"github.com/meetocure/admin-api/internal/model"
	"github.com/meetocure/admin-api/internal/service/admin"
	"github.com/meetocure/admin-api/pkg/httputil"
)

const msgCredentialsRequired = "Email and password are required"

type Handler struct {
	svc *admin.Service
}

func NewHandler(svc *admin.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/login", h.Login)
	r.POST("/register", h.Register)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if !handler.BindJSONMessage(c, &req, msgCredentialsRequired) {
		return
	}

	user, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondOK(c, user, httputil.WithMessage("Login successful"))
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if !handler.BindJSONMessage(c, &req, msgCredentialsRequired) {
		return
	}

	if _, err := h.svc.Register(c.Request.Context(), req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondCreated(c, nil, httputil.WithMessage("Registration success"))
}
