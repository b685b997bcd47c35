package patient

import (
	"github.com/gin-gonic/gin"

	"github.com/meetocure/admin-api/internal/handler"
	"github.com/meetocure/admin-api/internal/model"
	"github.com/meetocure/admin-api/internal/service/patient"
	"github.com/meetocure/admin-api/pkg/httputil"
)

type Handler struct {
	svc *patient.Service
}

func NewHandler(svc *patient.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.GET("", h.ListPatients)
		patients.POST("", h.RegisterPatient)
		patients.POST("/register", h.RegisterPatient)
		patients.GET("/:id", h.GetPatient)
		patients.PUT("/:id", h.UpdatePatient)
		patients.DELETE("/:id", h.DeletePatient)
		patients.GET("/:id/appointments", h.ListAppointments)
	}
}

func (h *Handler) ListPatients(c *gin.Context) {
	patients, err := h.svc.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondOK(c, patients, httputil.WithCount(len(patients)))
}

func (h *Handler) RegisterPatient(c *gin.Context) {
	var req model.RegisterPatientRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	registered, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondCreated(c, registered, httputil.WithMessage("Patient registered successfully"))
}

func (h *Handler) GetPatient(c *gin.Context) {
	profile, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondOK(c, profile)
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	var req model.UpdatePatientRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	details, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondOK(c, details, httputil.WithMessage("Patient updated successfully"))
}

func (h *Handler) DeletePatient(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondOK(c, nil, httputil.WithMessage("Patient deleted successfully"))
}

func (h *Handler) ListAppointments(c *gin.Context) {
	appointments, err := h.svc.Appointments(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondOK(c, appointments)
}
