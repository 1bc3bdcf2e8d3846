package leadadmin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"quotelinker/internal/domain"
	"quotelinker/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	leads := rg.Group("/leads")
	{
		leads.GET("", h.ListLeads)
		leads.GET("/stats", h.GetStats)
		leads.GET("/:id", h.GetLead)
		leads.PATCH("/:id/status", h.UpdateStatus)
		leads.POST("/:id/contacted", h.MarkContacted)
	}
}

func (h *Handler) ListLeads(c *gin.Context) {
	var status *domain.LeadStatus
	if s := c.Query("status"); s != "" {
		v := domain.LeadStatus(s)
		status = &v
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	leads, total, err := h.service.List(c.Request.Context(), status, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list leads")
		return
	}

	response.Success(c, http.StatusOK, LeadListResponse{Leads: leads, Total: total})
}

func (h *Handler) GetLead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid lead ID")
		return
	}

	lead, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeLeadError(c, err)
		return
	}

	response.Success(c, http.StatusOK, lead)
}

func (h *Handler) GetStats(c *gin.Context) {
	counts, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load lead stats")
		return
	}
	response.Success(c, http.StatusOK, counts)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid lead ID")
		return
	}

	var req UpdateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid status payload")
		return
	}

	lead, err := h.service.UpdateStatus(c.Request.Context(), id, domain.LeadStatus(req.Status))
	if err != nil {
		h.writeLeadError(c, err)
		return
	}

	response.Success(c, http.StatusOK, lead)
}

func (h *Handler) MarkContacted(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid lead ID")
		return
	}

	lead, err := h.service.MarkContacted(c.Request.Context(), id)
	if err != nil {
		h.writeLeadError(c, err)
		return
	}

	response.Success(c, http.StatusOK, lead)
}

func (h *Handler) writeLeadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrLeadNotFound):
		response.Error(c, http.StatusNotFound, "LEAD_NOT_FOUND", "Lead not found")
	case errors.Is(err, ErrAlreadyConverted):
		response.Error(c, http.StatusConflict, "ALREADY_CONVERTED", "Converted leads cannot change status")
	case errors.Is(err, ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown lead status")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Lead operation failed")
	}
}
