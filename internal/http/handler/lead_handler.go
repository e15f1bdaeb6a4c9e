package handler

import (
	"net/http"

	"github.com/steelstack/crm-api/internal/domain"
	"github.com/steelstack/crm-api/internal/service"
	"go.uber.org/zap"
)

// LeadHandler accepts public web form submissions
type LeadHandler struct {
	leadService *service.LeadService
	logger      *zap.Logger
}

func NewLeadHandler(leadService *service.LeadService, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{
		leadService: leadService,
		logger:      logger,
	}
}

// Submit godoc
// @Summary Submit a lead from the public web form
// @Description Creates a contact or appends to an existing one, keeping first-touch attribution intact.
// @Tags leads
// @Accept json
// @Produce json
// @Param request body domain.LeadSubmissionRequest true "Lead"
// @Success 201 {object} map[string]string
// @Router /leads [post]
func (h *LeadHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req domain.LeadSubmissionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	contact, err := h.leadService.Submit(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.logger.Info("lead captured",
		zap.Uint("contact_id", contact.ID),
		zap.String("utm_source", req.UTMSource),
		zap.String("utm_medium", req.UTMMedium),
	)

	// Deliberately thin response, this endpoint is exposed to the internet
	respondJSON(w, http.StatusCreated, map[string]string{"status": "received"})
}
