package user

import (
	"github.com/gin-gonic/gin"

	"github.com/meetocure/admin-api/internal/handler"
	"github.com/meetocure/admin-api/internal/model"
	"github.com/meetocure/admin-api/internal/service/admin"
	"github.com/meetocure/admin-api/pkg/httputil"
)

// Handler manages back-office admin accounts under /users
type Handler struct {
	svc *admin.Service
}

func NewHandler(svc *admin.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.POST("", h.CreateUser)
		users.PATCH("/:id", h.UpdateUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
	}
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondOK(c, users, httputil.WithCount(len(users)))
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req model.CreateAdminRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	user, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondCreated(c, user, httputil.WithMessage("User created successfully"))
}

// UpdateUser serves both PATCH and PUT. A password in the body is ignored.
func (h *Handler) UpdateUser(c *gin.Context) {
	var req model.UpdateAdminRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	user, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondOK(c, user, httputil.WithMessage("User updated successfully"))
}

func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondOK(c, nil, httputil.WithMessage("User deleted successfully"))
}
