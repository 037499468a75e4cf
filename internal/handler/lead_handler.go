package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lead-pipeline-api/internal/dto"
	"lead-pipeline-api/internal/repository"
	"lead-pipeline-api/internal/response"
	"lead-pipeline-api/internal/service"
)

// LeadHandler handles lead capture and management endpoints
type LeadHandler struct {
	leadService service.LeadService
}

func NewLeadHandler(leadService service.LeadService) *LeadHandler {
	return &LeadHandler{
		leadService: leadService,
	}
}

// CreateLead handles POST /leads
// @Summary      Capture a new lead
// @Description  Creates a lead, places it in the pipeline entry stage and queues background scoring
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateLeadRequest true "Lead capture request"
// @Success      201 {object} dto.LeadResponse "Lead captured"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /leads [post]
func (h *LeadHandler) CreateLead(c *gin.Context) {
	var req dto.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	lead, err := h.leadService.CaptureLead(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, lead)
}

// GetLead handles GET /leads/:leadId
// @Summary      Get a lead
// @Description  Returns a single lead with its current pipeline stage
// @Tags         leads
// @Produce      json
// @Param        leadId path string true "Lead ID"
// @Success      200 {object} dto.LeadResponse "Lead found"
// @Failure      400 {object} response.ErrorResponse "Invalid lead ID"
// @Failure      404 {object} response.ErrorResponse "Lead not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /leads/{leadId} [get]
func (h *LeadHandler) GetLead(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("leadId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid lead ID")
		return
	}

	lead, err := h.leadService.GetLead(c.Request.Context(), leadID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, lead)
}

// ListLeads handles GET /leads
// @Summary      List leads
// @Description  Lists leads filtered by status, source, assignee and capture date range
// @Tags         leads
// @Produce      json
// @Param        status query string false "Lead status filter"
// @Param        source query string false "Lead source filter"
// @Param        assigned_to query string false "Assignee filter"
// @Param        date_from query string false "Captured-at lower bound (RFC3339)"
// @Param        date_to query string false "Captured-at upper bound (RFC3339)"
// @Param        limit query int false "Page size"
// @Param        offset query int false "Page offset"
// @Success      200 {array} dto.LeadResponse "Leads"
// @Failure      400 {object} response.ErrorResponse "Invalid filter"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /leads [get]
func (h *LeadHandler) ListLeads(c *gin.Context) {
	filters := repository.LeadFilters{
		Status:     c.Query("status"),
		Source:     c.Query("source"),
		AssignedTo: c.Query("assigned_to"),
	}

	var ok bool
	if filters.DateFrom, ok = parseTimeQuery(c, "date_from"); !ok {
		return
	}
	if filters.DateTo, ok = parseTimeQuery(c, "date_to"); !ok {
		return
	}
	if filters.Limit, ok = parseIntQuery(c, "limit"); !ok {
		return
	}
	if filters.Offset, ok = parseIntQuery(c, "offset"); !ok {
		return
	}

	leads, err := h.leadService.ListLeads(c.Request.Context(), filters)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, leads)
}

// UpdateLead handles PUT /leads/:leadId
// @Summary      Update a lead
// @Description  Applies a partial update to a lead's contact and property details
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        leadId path string true "Lead ID"
// @Param        request body dto.UpdateLeadRequest true "Fields to update"
// @Success      200 {object} dto.LeadResponse "Updated lead"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Lead not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /leads/{leadId} [put]
func (h *LeadHandler) UpdateLead(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("leadId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid lead ID")
		return
	}

	var req dto.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	lead, err := h.leadService.UpdateLead(c.Request.Context(), leadID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, lead)
}

// ScoreLead handles POST /leads/:leadId/score
// @Summary      Rescore a lead
// @Description  Calls the scoring service synchronously and persists the new score
// @Tags         leads
// @Produce      json
// @Param        leadId path string true "Lead ID"
// @Success      200 {object} dto.LeadScoreResponse "Scoring result"
// @Failure      400 {object} response.ErrorResponse "Invalid lead ID"
// @Failure      404 {object} response.ErrorResponse "Lead not found"
// @Failure      500 {object} response.ErrorResponse "Scoring unavailable"
// @Router       /leads/{leadId}/score [post]
func (h *LeadHandler) ScoreLead(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("leadId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid lead ID")
		return
	}

	score, err := h.leadService.RescoreLead(c.Request.Context(), leadID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, score)
}

// parseTimeQuery reads an optional RFC3339 query parameter. It writes the
// error response itself and returns ok=false on a malformed value.
func parseTimeQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, name+" must be an RFC3339 timestamp")
		return nil, false
	}
	return &t, true
}

func parseIntQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, name+" must be a non-negative integer")
		return 0, false
	}
	return v, true
}
