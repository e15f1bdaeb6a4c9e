package handler

import (
	"net/http"

	"github.com/steelstack/crm-api/internal/domain"
	"github.com/steelstack/crm-api/internal/service"
	"go.uber.org/zap"
)

// ShippingHandler serves ZIP-to-ZIP freight estimates
type ShippingHandler struct {
	shippingService *service.ShippingService
	logger          *zap.Logger
}

func NewShippingHandler(shippingService *service.ShippingService, logger *zap.Logger) *ShippingHandler {
	return &ShippingHandler{
		shippingService: shippingService,
		logger:          logger,
	}
}

// Estimate godoc
// @Summary Estimate trucking cost between two ZIP codes
// @Tags shipping
// @Accept json
// @Produce json
// @Param request body domain.ShippingEstimateRequest true "Estimate parameters"
// @Success 200 {object} domain.ShippingEstimateDTO
// @Failure 502 {object} domain.APIError "Geocoding or routing backend unavailable"
// @Router /shipping/estimate [post]
func (h *ShippingHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req domain.ShippingEstimateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	estimate, err := h.shippingService.Estimate(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, estimate)
}
