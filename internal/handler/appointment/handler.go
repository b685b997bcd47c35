package appointment

import (
	"github.com/gin-gonic/gin"

	"github.com/meetocure/admin-api/internal/handler"
	"github.com/meetocure/admin-api/internal/model"
	"github.com/meetocure/admin-api/internal/service/appointment"
	"github.com/meetocure/admin-api/pkg/httputil"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("", h.ListAppointments)
		appointments.POST("", h.CreateAppointment)
		appointments.GET("/:id", h.GetAppointment)
		appointments.PUT("/:id", h.UpdateAppointment)
		appointments.PATCH("/:id/status", h.UpdateStatus)
		appointments.DELETE("/:id", h.DeleteAppointment)
	}
}

// ListAppointments accepts an optional ?date=YYYY-MM-DD and echoes it back
func (h *Handler) ListAppointments(c *gin.Context) {
	date := c.Query("date")
	appointments, err := h.service.List(c.Request.Context(), date)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var echoed interface{}
	if date != "" {
		echoed = date
	}
	httputil.RespondOK(c, appointments,
		httputil.WithCount(len(appointments)),
		httputil.WithField("date", echoed))
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondCreated(c, created, httputil.WithMessage("Appointment created successfully"))
}

func (h *Handler) GetAppointment(c *gin.Context) {
	appt, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondOK(c, appt)
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	var req model.UpdateAppointmentRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	appt, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondOK(c, appt, httputil.WithMessage("Appointment updated successfully"))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req model.UpdateAppointmentStatusRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	appt, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondOK(c, appt, httputil.WithMessage("Appointment status updated successfully"))
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	deleted, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondOK(c, deleted, httputil.WithMessage("Appointment deleted successfully"))
}
