package stats

import (
	"github.com/gin-gonic/gin"

	"github.com/meetocure/admin-api/internal/service/stats"
	"github.com/meetocure/admin-api/pkg/httputil"
)

type Handler struct {
	svc *stats.Service
}

func NewHandler(svc *stats.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats/dashboard", h.Dashboard)
}

func (h *Handler) Dashboard(c *gin.Context) {
	dashboard, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondOK(c, dashboard)
}
