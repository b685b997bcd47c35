package settings

import (
	"github.com/gin-gonic/gin"

	"github.com/meetocure/admin-api/internal/handler"
	"github.com/meetocure/admin-api/internal/model"
	"github.com/meetocure/admin-api/internal/service/settings"
	"github.com/meetocure/admin-api/pkg/httputil"
)

type Handler struct {
	svc *settings.Service
}

func NewHandler(svc *settings.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/settings")
	{
		group.GET("", h.GetSettings)
		group.PATCH("/general", h.UpdateGeneral)
	}
}

func (h *Handler) GetSettings(c *gin.Context) {
	s, err := h.svc.Get(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondOK(c, s)
}

// UpdateGeneral answers with the merged general section only
func (h *Handler) UpdateGeneral(c *gin.Context) {
	var patch model.GeneralSettingsPatch
	if !handler.BindJSON(c, &patch) {
		return
	}

	general, err := h.svc.UpdateGeneral(c.Request.Context(), patch)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondOK(c, general, httputil.WithMessage("Settings updated successfully"))
}
