package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lead-pipeline-api/internal/dto"
	"lead-pipeline-api/internal/response"
	"lead-pipeline-api/internal/service"
)

// PipelineHandler handles stage, activity, assignment and reporting endpoints
type PipelineHandler struct {
	pipelineService service.PipelineService
}

func NewPipelineHandler(pipelineService service.PipelineService) *PipelineHandler {
	return &PipelineHandler{
		pipelineService: pipelineService,
	}
}

// ListStages handles GET /pipeline/stages
// @Summary      List pipeline stages
// @Description  Returns the active pipeline stages in display order
// @Tags         pipeline
// @Produce      json
// @Success      200 {array} dto.StageResponse "Stages"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /stages [get]
func (h *PipelineHandler) ListStages(c *gin.Context) {
	stages, err := h.pipelineService.ListStages(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, stages)
}

// MoveLead handles POST /pipeline/leads/:leadId/move
// @Summary      Move a lead to another stage
// @Description  Records the transition in the stage history and derives the lead status from the target stage
// @Tags         pipeline
// @Accept       json
// @Produce      json
// @Param        leadId path string true "Lead ID"
// @Param        request body dto.MoveLeadRequest true "Target stage and reason"
// @Success      200 {object} dto.LeadResponse "Updated lead"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Lead or stage not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /leads/{leadId}/move [post]
func (h *PipelineHandler) MoveLead(c *gin.Context) {
	leadID, ok := parseLeadID(c)
	if !ok {
		return
	}

	var req dto.MoveLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}
	if req.ChangedBy == "" {
		req.ChangedBy = userIDFromContext(c)
	}

	lead, err := h.pipelineService.MoveLeadToStage(c.Request.Context(), leadID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, lead)
}

// LogActivity handles POST /pipeline/leads/:leadId/activities
// @Summary      Log an activity on a lead
// @Description  Records an activity; contact activities also bump the lead's contact attempt counters
// @Tags         pipeline
// @Accept       json
// @Produce      json
// @Param        leadId path string true "Lead ID"
// @Param        request body dto.LogActivityRequest true "Activity details"
// @Success      201 {object} dto.ActivityResponse "Logged activity"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Lead not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /leads/{leadId}/activities [post]
func (h *PipelineHandler) LogActivity(c *gin.Context) {
	leadID, ok := parseLeadID(c)
	if !ok {
		return
	}

	var req dto.LogActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}
	if req.CreatedBy == "" {
		req.CreatedBy = userIDFromContext(c)
	}

	activity, err := h.pipelineService.LogActivity(c.Request.Context(), leadID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, activity)
}

// GetActivities handles GET /pipeline/leads/:leadId/activities
// @Summary      List a lead's activities
// @Tags         pipeline
// @Produce      json
// @Param        leadId path string true "Lead ID"
// @Success      200 {array} dto.ActivityResponse "Activities, newest first"
// @Failure      400 {object} response.ErrorResponse "Invalid lead ID"
// @Failure      404 {object} response.ErrorResponse "Lead not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /leads/{leadId}/activities [get]
func (h *PipelineHandler) GetActivities(c *gin.Context) {
	leadID, ok := parseLeadID(c)
	if !ok {
		return
	}

	activities, err := h.pipelineService.GetActivities(c.Request.Context(), leadID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, activities)
}

// AssignLead handles POST /pipeline/leads/:leadId/assign
// @Summary      Assign a lead to a sales rep
// @Description  Deactivates any current assignment, creates the new active one and logs an audit note
// @Tags         pipeline
// @Accept       json
// @Produce      json
// @Param        leadId path string true "Lead ID"
// @Param        request body dto.AssignLeadRequest true "Assignment request"
// @Success      200 {object} dto.AssignmentResponse "Active assignment"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Lead not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /leads/{leadId}/assign [post]
func (h *PipelineHandler) AssignLead(c *gin.Context) {
	leadID, ok := parseLeadID(c)
	if !ok {
		return
	}

	var req dto.AssignLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}
	if req.AssignedBy == "" {
		req.AssignedBy = userIDFromContext(c)
	}

	assignment, err := h.pipelineService.AssignLead(c.Request.Context(), leadID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, assignment)
}

// GetHistory handles GET /pipeline/leads/:leadId/history
// @Summary      Get a lead's stage history
// @Tags         pipeline
// @Produce      json
// @Param        leadId path string true "Lead ID"
// @Success      200 {array} dto.HistoryResponse "Stage transitions, newest first"
// @Failure      400 {object} response.ErrorResponse "Invalid lead ID"
// @Failure      404 {object} response.ErrorResponse "Lead not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /leads/{leadId}/history [get]
func (h *PipelineHandler) GetHistory(c *gin.Context) {
	leadID, ok := parseLeadID(c)
	if !ok {
		return
	}

	history, err := h.pipelineService.GetHistory(c.Request.Context(), leadID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, history)
}

// GetOverview handles GET /pipeline/overview
// @Summary      Pipeline overview
// @Description  Per-stage lead counts, values and average scores plus pipeline totals
// @Tags         pipeline
// @Produce      json
// @Param        assigned_to query string false "Assignee filter"
// @Param        date_from query string false "Captured-at lower bound (RFC3339)"
// @Param        date_to query string false "Captured-at upper bound (RFC3339)"
// @Success      200 {object} dto.PipelineOverviewResponse "Overview"
// @Failure      400 {object} response.ErrorResponse "Invalid filter"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /overview [get]
func (h *PipelineHandler) GetOverview(c *gin.Context) {
	filters := dto.OverviewFilters{
		AssignedTo: c.Query("assigned_to"),
	}

	var ok bool
	if filters.DateFrom, ok = parseTimeQuery(c, "date_from"); !ok {
		return
	}
	if filters.DateTo, ok = parseTimeQuery(c, "date_to"); !ok {
		return
	}

	overview, err := h.pipelineService.GetOverview(c.Request.Context(), filters)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, overview)
}

// GetStaleLeads handles GET /pipeline/stale-leads
// @Summary      List stale leads
// @Description  Open leads with no contact within the given number of days (default 7)
// @Tags         pipeline
// @Produce      json
// @Param        days query int false "Staleness threshold in days"
// @Param        assigned_to query string false "Assignee filter"
// @Success      200 {object} dto.StaleLeadsResponse "Stale leads"
// @Failure      400 {object} response.ErrorResponse "Invalid days value"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /stale-leads [get]
func (h *PipelineHandler) GetStaleLeads(c *gin.Context) {
	days, ok := parseIntQuery(c, "days")
	if !ok {
		return
	}

	stale, err := h.pipelineService.GetStaleLeads(c.Request.Context(), days, c.Query("assigned_to"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, stale)
}

// GetAnalytics handles GET /pipeline/analytics
// @Summary      Pipeline analytics
// @Description  Stage duration averages and per-source conversion rates
// @Tags         pipeline
// @Produce      json
// @Success      200 {object} dto.PipelineAnalyticsResponse "Analytics"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /analytics [get]
func (h *PipelineHandler) GetAnalytics(c *gin.Context) {
	analytics, err := h.pipelineService.GetAnalytics(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, analytics)
}

func parseLeadID(c *gin.Context) (uuid.UUID, bool) {
	leadID, err := uuid.Parse(c.Param("leadId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid lead ID")
		return uuid.Nil, false
	}
	return leadID, true
}

// userIDFromContext returns the authenticated user ID, or "" when absent
func userIDFromContext(c *gin.Context) string {
	if userID, exists := c.Get("user_id"); exists {
		if s, ok := userID.(string); ok {
			return s
		}
	}
	return ""
}
