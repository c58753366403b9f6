package practitioner

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Michael4-fab/MedicalLabSimulator/internal/handler"
	"github.com/Michael4-fab/MedicalLabSimulator/internal/model"
	"github.com/Michael4-fab/MedicalLabSimulator/internal/service/practitioner"
	"github.com/Michael4-fab/MedicalLabSimulator/internal/service/scheduling"
	"github.com/Michael4-fab/MedicalLabSimulator/pkg/validator"
)

type Handler struct {
	directory  *practitioner.Service
	scheduling *scheduling.Service
	validator  *validator.Validator
}

func NewHandler(directory *practitioner.Service, schedulingSvc *scheduling.Service, v *validator.Validator) *Handler {
	return &Handler{directory: directory, scheduling: schedulingSvc, validator: v}
}

func (h *Handler) ListPractitioners(c *gin.Context) {
	practitioners, err := h.directory.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(practitioners))
}

func (h *Handler) ListAvailable(c *gin.Context) {
	practitioners, err := h.directory.ListAvailable(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(practitioners))
}

func (h *Handler) GetPractitioner(c *gin.Context) {
	p, err := h.directory.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(p))
}

func (h *Handler) GetAvailability(c *gin.Context) {
	availability, err := h.directory.GetAvailability(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"availability": availability}))
}

func (h *Handler) SetAvailability(c *gin.Context) {
	var req model.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		handler.Error(c, err)
		return
	}

	if err := h.scheduling.SetAvailability(c.Request.Context(), c.Param("id"), req.Availability); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"availability": req.Availability}))
}

// ToggleAvailability flips the flag; the new state is returned so the
// caller can reflect it immediately.
func (h *Handler) ToggleAvailability(c *gin.Context) {
	availability, err := h.scheduling.ToggleAvailability(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"availability": availability}))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	practitioners := r.Group("/practitioners")
	{
		practitioners.GET("", h.ListPractitioners)
		practitioners.GET("/available", h.ListAvailable)
		practitioners.GET("/:id", h.GetPractitioner)
		practitioners.GET("/:id/availability", h.GetAvailability)
		practitioners.PUT("/:id/availability", h.SetAvailability)
		practitioners.POST("/:id/availability/toggle", h.ToggleAvailability)
	}
}
