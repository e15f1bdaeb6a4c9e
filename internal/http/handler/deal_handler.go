package handler

import (
	"net/http"

	"github.com/steelstack/crm-api/internal/domain"
	"github.com/steelstack/crm-api/internal/repository"
	"github.com/steelstack/crm-api/internal/service"
	"go.uber.org/zap"
)

// DealHandler serves CRUD operations plus the pipeline board and stage
// transitions for deals
type DealHandler struct {
	dealService *service.DealService
	logger      *zap.Logger
}

func NewDealHandler(dealService *service.DealService, logger *zap.Logger) *DealHandler {
	return &DealHandler{
		dealService: dealService,
		logger:      logger,
	}
}

// Create godoc
// @Summary Create a deal
// @Tags deals
// @Accept json
// @Produce json
// @Param request body domain.CreateDealRequest true "Deal"
// @Success 201 {object} domain.DealDTO
// @Router /deals [post]
func (h *DealHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateDealRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	deal, err := h.dealService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, deal)
}

// List godoc
// @Summary List deals
// @Tags deals
// @Produce json
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Param search query string false "Search by name"
// @Param stage query string false "Filter by stage"
// @Param salespersonId query int false "Filter by salesperson"
// @Param companyId query int false "Filter by company"
// @Success 200 {object} domain.PaginatedResponse
// @Router /deals [get]
func (h *DealHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	filters := &repository.DealFilters{
		Search:        r.URL.Query().Get("search"),
		SalespersonID: optionalUintQuery(r, "salespersonId"),
		CompanyID:     optionalUintQuery(r, "companyId"),
	}
	if raw := r.URL.Query().Get("stage"); raw != "" {
		stage := domain.DealStage(raw)
		if !stage.IsValid() {
			respondWithError(w, http.StatusBadRequest, "invalid stage filter")
			return
		}
		filters.Stage = &stage
	}

	result, err := h.dealService.List(r.Context(), page, pageSize, filters)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Pipeline godoc
// @Summary Pipeline board grouped by stage
// @Tags deals
// @Produce json
// @Success 200 {array} domain.PipelineColumnDTO
// @Router /deals/pipeline [get]
func (h *DealHandler) Pipeline(w http.ResponseWriter, r *http.Request) {
	columns, err := h.dealService.Pipeline(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, columns)
}

// Get godoc
// @Summary Get a deal
// @Tags deals
// @Produce json
// @Param id path int true "Deal ID"
// @Success 200 {object} domain.DealDTO
// @Router /deals/{id} [get]
func (h *DealHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	deal, err := h.dealService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, deal)
}

// Update godoc
// @Summary Update a deal (stage changes go through the stage endpoint)
// @Tags deals
// @Accept json
// @Produce json
// @Param id path int true "Deal ID"
// @Param request body domain.UpdateDealRequest true "Deal"
// @Success 200 {object} domain.DealDTO
// @Router /deals/{id} [put]
func (h *DealHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req domain.UpdateDealRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	deal, err := h.dealService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, deal)
}

// UpdateStage godoc
// @Summary Move a deal to another pipeline stage
// @Tags deals
// @Accept json
// @Produce json
// @Param id path int true "Deal ID"
// @Param request body domain.UpdateDealStageRequest true "Target stage"
// @Success 200 {object} domain.DealDTO
// @Failure 422 {object} domain.APIError "Closing without a reason"
// @Router /deals/{id}/stage [put]
func (h *DealHandler) UpdateStage(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req domain.UpdateDealStageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	deal, err := h.dealService.UpdateStage(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, deal)
}

// History godoc
// @Summary Stage transition history for a deal
// @Tags deals
// @Produce json
// @Param id path int true "Deal ID"
// @Success 200 {array} domain.DealStageHistoryDTO
// @Router /deals/{id}/history [get]
func (h *DealHandler) History(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	history, err := h.dealService.StageHistory(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, history)
}

// LinkContact godoc
// @Summary Link a contact to a deal
// @Tags deals
// @Param id path int true "Deal ID"
// @Param contactId path int true "Contact ID"
// @Success 204
// @Failure 409 {object} domain.APIError
// @Router /deals/{id}/contacts/{contactId} [post]
func (h *DealHandler) LinkContact(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	contactID, err := idParam(r, "contactId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.dealService.LinkContact(r.Context(), id, contactID); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UnlinkContact godoc
// @Summary Unlink a contact from a deal
// @Tags deals
// @Param id path int true "Deal ID"
// @Param contactId path int true "Contact ID"
// @Success 204
// @Router /deals/{id}/contacts/{contactId} [delete]
func (h *DealHandler) UnlinkContact(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	contactID, err := idParam(r, "contactId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.dealService.UnlinkContact(r.Context(), id, contactID); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete godoc
// @Summary Delete a deal
// @Tags deals
// @Param id path int true "Deal ID"
// @Success 204
// @Router /deals/{id} [delete]
func (h *DealHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.dealService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
