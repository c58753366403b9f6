package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Michael4-fab/MedicalLabSimulator/internal/handler"
	"github.com/Michael4-fab/MedicalLabSimulator/internal/model"
	"github.com/Michael4-fab/MedicalLabSimulator/internal/service/scheduling"
	"github.com/Michael4-fab/MedicalLabSimulator/pkg/validator"
)

type Handler struct {
	service   *scheduling.Service
	validator *validator.Validator
}

func NewHandler(service *scheduling.Service, v *validator.Validator) *Handler {
	return &Handler{service: service, validator: v}
}

func (h *Handler) BookAppointment(c *gin.Context) {
	var req model.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		handler.Error(c, err)
		return
	}

	apt, err := h.service.BookAppointment(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(apt))
}

func (h *Handler) GetAppointment(c *gin.Context) {
	apt, err := h.service.GetAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(apt))
}

func (h *Handler) ListAppointments(c *gin.Context) {
	patientID := c.Query("patient_id")
	practitionerID := c.Query("practitioner_id")

	switch {
	case patientID != "":
		appointments, err := h.service.ListPatientAppointments(c.Request.Context(), patientID)
		if err != nil {
			handler.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
	case practitionerID != "":
		appointments, err := h.service.ListPractitionerAppointments(c.Request.Context(), practitionerID)
		if err != nil {
			handler.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
	default:
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("patient_id or practitioner_id is required"))
	}
}

// ApplyDecision handles a practitioner's accept/decline/reschedule
// action on an appointment.
func (h *Handler) ApplyDecision(c *gin.Context) {
	var req model.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		handler.Error(c, err)
		return
	}

	apt, err := h.service.ApplyDecision(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(apt))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.BookAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.POST("/:id/decision", h.ApplyDecision)
	}
}
