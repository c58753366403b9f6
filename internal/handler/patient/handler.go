package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Michael4-fab/MedicalLabSimulator/internal/handler"
	"github.com/Michael4-fab/MedicalLabSimulator/internal/model"
	"github.com/Michael4-fab/MedicalLabSimulator/internal/service/patient"
	"github.com/Michael4-fab/MedicalLabSimulator/internal/service/scheduling"
	"github.com/Michael4-fab/MedicalLabSimulator/pkg/validator"
)

type Handler struct {
	service    *patient.Service
	scheduling *scheduling.Service
	validator  *validator.Validator
}

func NewHandler(service *patient.Service, schedulingSvc *scheduling.Service, v *validator.Validator) *Handler {
	return &Handler{service: service, scheduling: schedulingSvc, validator: v}
}

func (h *Handler) RegisterPatient(c *gin.Context) {
	var req model.RegisterPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		handler.Error(c, err)
		return
	}

	p, err := h.service.RegisterPatient(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(p))
}

func (h *Handler) GetPatient(c *gin.Context) {
	p, err := h.service.GetPatient(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(p))
}

func (h *Handler) ListPatients(c *gin.Context) {
	patients, err := h.service.ListPatients(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}

func (h *Handler) ListAppointments(c *gin.Context) {
	appointments, err := h.scheduling.ListPatientAppointments(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.POST("", h.RegisterPatient)
		patients.GET("", h.ListPatients)
		patients.GET("/:id", h.GetPatient)
		patients.GET("/:id/appointments", h.ListAppointments)
	}
}
