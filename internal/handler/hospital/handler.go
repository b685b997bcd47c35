package hospital

import (
	"github.com/gin-gonic/gin"

	"github.com/meetocure/admin-api/internal/handler"
	"github.com/meetocure/admin-api/internal/model"
	"github.com/meetocure/admin-api/internal/service/hospital"
	"github.com/meetocure/admin-api/pkg/httputil"
)

type Handler struct {
	svc *hospital.Service
}

func NewHandler(svc *hospital.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts /hospitals. The static paths are registered before
// the :id routes so they read as intended.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	hospitals := r.Group("/hospitals")
	{
		hospitals.GET("", h.ListHospitals)
		hospitals.POST("", h.CreateHospital)
		hospitals.GET("/stats", h.Stats)
		hospitals.GET("/doctors/all", h.AllDoctors)
		hospitals.GET("/:id", h.GetHospital)
		hospitals.PUT("/:id", h.UpdateHospital)
		hospitals.DELETE("/:id", h.DeleteHospital)
		hospitals.GET("/:id/doctors", h.ListDoctors)
		hospitals.POST("/:id/doctors/:doctorId", h.AddDoctor)
		hospitals.DELETE("/:id/doctors/:doctorId", h.RemoveDoctor)
	}
}

func (h *Handler) ListHospitals(c *gin.Context) {
	hospitals, err := h.svc.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondOK(c, hospitals, httputil.WithCount(len(hospitals)))
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondOK(c, stats)
}

func (h *Handler) AllDoctors(c *gin.Context) {
	doctors, hospitals, err := h.svc.AllDoctors(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondOK(c, doctors,
		httputil.WithCount(len(doctors)),
		httputil.WithField("totalHospitals", hospitals))
}

func (h *Handler) GetHospital(c *gin.Context) {
	hosp, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondOK(c, hosp)
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.svc.Doctors(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondOK(c, doctors, httputil.WithCount(len(doctors)))
}

func (h *Handler) CreateHospital(c *gin.Context) {
	var req model.CreateHospitalRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	created, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondCreated(c, created, httputil.WithMessage("Hospital created successfully"))
}

func (h *Handler) UpdateHospital(c *gin.Context) {
	var req model.UpdateHospitalRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	hosp, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondOK(c, hosp, httputil.WithMessage("Hospital updated successfully"))
}

func (h *Handler) DeleteHospital(c *gin.Context) {
	result, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondOK(c, result, httputil.WithMessage("Hospital deleted successfully"))
}

func (h *Handler) AddDoctor(c *gin.Context) {
	result, err := h.svc.AddDoctor(c.Request.Context(), c.Param("id"), c.Param("doctorId"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondOK(c, result, httputil.WithMessage("Doctor added to hospital successfully"))
}

func (h *Handler) RemoveDoctor(c *gin.Context) {
	if err := h.svc.RemoveDoctor(c.Request.Context(), c.Param("id"), c.Param("doctorId")); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondOK(c, nil, httputil.WithMessage("Doctor removed from hospital successfully"))
}
