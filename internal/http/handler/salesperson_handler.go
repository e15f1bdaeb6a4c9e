package handler

import (
	"net/http"

	"github.com/steelstack/crm-api/internal/domain"
	"github.com/steelstack/crm-api/internal/service"
	"go.uber.org/zap"
)

// SalespersonHandler manages the salesperson roster
type SalespersonHandler struct {
	salespersonService *service.SalespersonService
	logger             *zap.Logger
}

func NewSalespersonHandler(salespersonService *service.SalespersonService, logger *zap.Logger) *SalespersonHandler {
	return &SalespersonHandler{
		salespersonService: salespersonService,
		logger:             logger,
	}
}

// Create godoc
// @Summary Create a salesperson
// @Tags salespersons
// @Accept json
// @Produce json
// @Param request body domain.CreateSalespersonRequest true "Salesperson"
// @Success 201 {object} domain.SalespersonDTO
// @Router /salespersons [post]
func (h *SalespersonHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateSalespersonRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sp, err := h.salespersonService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, sp)
}

// List godoc
// @Summary List salespersons
// @Tags salespersons
// @Produce json
// @Success 200 {array} domain.SalespersonDTO
// @Router /salespersons [get]
func (h *SalespersonHandler) List(w http.ResponseWriter, r *http.Request) {
	sps, err := h.salespersonService.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sps)
}

// Get godoc
// @Summary Get a salesperson
// @Tags salespersons
// @Produce json
// @Param id path int true "Salesperson ID"
// @Success 200 {object} domain.SalespersonDTO
// @Router /salespersons/{id} [get]
func (h *SalespersonHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	sp, err := h.salespersonService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sp)
}

// Update godoc
// @Summary Update a salesperson
// @Tags salespersons
// @Accept json
// @Produce json
// @Param id path int true "Salesperson ID"
// @Param request body domain.UpdateSalespersonRequest true "Salesperson"
// @Success 200 {object} domain.SalespersonDTO
// @Router /salespersons/{id} [put]
func (h *SalespersonHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req domain.UpdateSalespersonRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sp, err := h.salespersonService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sp)
}

// Delete godoc
// @Summary Delete a salesperson, detaching their deals and quotes
// @Tags salespersons
// @Param id path int true "Salesperson ID"
// @Success 204
// @Router /salespersons/{id} [delete]
func (h *SalespersonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.salespersonService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
