package handler

import (
	"net/http"

	"github.com/steelstack/crm-api/internal/service"
	"go.uber.org/zap"
)

// DashboardHandler serves aggregate reporting endpoints
type DashboardHandler struct {
	analyticsService *service.AnalyticsService
	logger           *zap.Logger
}

func NewDashboardHandler(analyticsService *service.AnalyticsService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// Dashboard godoc
// @Summary Dashboard overview with counts, pipeline value and recent activity
// @Tags dashboard
// @Produce json
// @Success 200 {object} domain.DashboardDTO
// @Router /dashboard [get]
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.analyticsService.Dashboard(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dashboard)
}

// DealsByMonth godoc
// @Summary Won deals grouped by close month and marketing medium
// @Tags dashboard
// @Produce json
// @Success 200 {array} domain.MonthlyBreakdownDTO
// @Router /dashboard/deals-by-month [get]
func (h *DashboardHandler) DealsByMonth(w http.ResponseWriter, r *http.Request) {
	breakdown, err := h.analyticsService.DealsByMonth(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, breakdown)
}

// LeadsByMonth godoc
// @Summary New leads grouped by creation month and traffic source
// @Tags dashboard
// @Produce json
// @Success 200 {array} domain.LeadBreakdownDTO
// @Router /dashboard/leads-by-month [get]
func (h *DashboardHandler) LeadsByMonth(w http.ResponseWriter, r *http.Request) {
	breakdown, err := h.analyticsService.LeadsByMonth(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, breakdown)
}
