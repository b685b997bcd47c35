package doctor

import (
	"github.com/gin-gonic/gin"

	"github.com/meetocure/admin-api/internal/handler"
	"github.com/meetocure/admin-api/internal/model"
	"github.com/meetocure/admin-api/internal/service/doctor"
	"github.com/meetocure/admin-api/pkg/httputil"
)

type Handler struct {
	svc *doctor.Service
}

func NewHandler(svc *doctor.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	doctors := r.Group("/doctors")
	{
		doctors.GET("", h.ListDoctors)
		doctors.POST("", h.CreateDoctor)
		doctors.GET("/:id", h.GetDoctor)
		doctors.PATCH("/:id", h.UpdateStatus)
		doctors.DELETE("/:id", h.DeleteDoctor)
		doctors.GET("/:id/patients", h.ListPatients)
	}
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.svc.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondOK(c, doctors, httputil.WithCount(len(doctors)))
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	var req model.CreateDoctorRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	d, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondCreated(c, d, httputil.WithMessage("Doctor created successfully"))
}

func (h *Handler) GetDoctor(c *gin.Context) {
	d, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondOK(c, d)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req model.UpdateDoctorStatusRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	d, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.RegistrationStatus)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondOK(c, d, httputil.WithMessage("Doctor status updated successfully"))
}

// DeleteDoctor reports verificationDeleted so a partial cascade is visible
func (h *Handler) DeleteDoctor(c *gin.Context) {
	result, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondOK(c, result, httputil.WithMessage(result.Message))
}

func (h *Handler) ListPatients(c *gin.Context) {
	patients, err := h.svc.Patients(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondOK(c, patients)
}
