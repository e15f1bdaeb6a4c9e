package handler

import (
	"fmt"
	"net/http"

	"github.com/steelstack/crm-api/internal/domain"
	"github.com/steelstack/crm-api/internal/pdf"
	"github.com/steelstack/crm-api/internal/repository"
	"github.com/steelstack/crm-api/internal/service"
	"go.uber.org/zap"
)

// QuoteHandler serves quote CRUD, status transitions and PDF export
type QuoteHandler struct {
	quoteService *service.QuoteService
	renderer     *pdf.QuoteRenderer
	logger       *zap.Logger
}

func NewQuoteHandler(quoteService *service.QuoteService, renderer *pdf.QuoteRenderer, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
		renderer:     renderer,
		logger:       logger,
	}
}

// Create godoc
// @Summary Create a quote
// @Tags quotes
// @Accept json
// @Produce json
// @Param request body domain.CreateQuoteRequest true "Quote"
// @Success 201 {object} domain.QuoteDTO
// @Router /quotes [post]
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateQuoteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	quote, err := h.quoteService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, quote)
}

// List godoc
// @Summary List quotes
// @Tags quotes
// @Produce json
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Param search query string false "Search by number, customer or title"
// @Param status query string false "Filter by status"
// @Param salespersonId query int false "Filter by salesperson"
// @Param dealId query int false "Filter by deal"
// @Success 200 {object} domain.PaginatedResponse
// @Router /quotes [get]
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	filters := &repository.QuoteFilters{
		Search:        r.URL.Query().Get("search"),
		SalespersonID: optionalUintQuery(r, "salespersonId"),
		DealID:        optionalUintQuery(r, "dealId"),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.QuoteStatus(raw)
		if !status.IsValid() {
			respondWithError(w, http.StatusBadRequest, "invalid status filter")
			return
		}
		filters.Status = &status
	}

	result, err := h.quoteService.List(r.Context(), page, pageSize, filters)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Get godoc
// @Summary Get a quote with its line items
// @Tags quotes
// @Produce json
// @Param id path int true "Quote ID"
// @Success 200 {object} domain.QuoteDTO
// @Router /quotes/{id} [get]
func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	quote, err := h.quoteService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, quote)
}

// Update godoc
// @Summary Update a quote's header and replace its line items
// @Tags quotes
// @Accept json
// @Produce json
// @Param id path int true "Quote ID"
// @Param request body domain.UpdateQuoteRequest true "Quote"
// @Success 200 {object} domain.QuoteDTO
// @Router /quotes/{id} [put]
func (h *QuoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req domain.UpdateQuoteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	quote, err := h.quoteService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, quote)
}

// Send godoc
// @Summary Mark a draft quote as sent
// @Tags quotes
// @Produce json
// @Param id path int true "Quote ID"
// @Success 200 {object} domain.QuoteDTO
// @Router /quotes/{id}/send [post]
func (h *QuoteHandler) Send(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	quote, err := h.quoteService.MarkSent(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, quote)
}

// UpdateStatus godoc
// @Summary Set a quote's status
// @Tags quotes
// @Accept json
// @Produce json
// @Param id path int true "Quote ID"
// @Param request body domain.UpdateQuoteStatusRequest true "Status"
// @Success 200 {object} domain.QuoteDTO
// @Router /quotes/{id}/status [put]
func (h *QuoteHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req domain.UpdateQuoteStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	quote, err := h.quoteService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, quote)
}

// PDF godoc
// @Summary Render a quote as a PDF document
// @Tags quotes
// @Produce application/pdf
// @Param id path int true "Quote ID"
// @Success 200 {file} binary
// @Router /quotes/{id}/pdf [get]
func (h *QuoteHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	quote, err := h.quoteService.GetModel(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	data, err := h.renderer.Render(quote)
	if err != nil {
		h.logger.Error("quote pdf rendering failed", zap.Uint("quote_id", id), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to render PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", quote.QuoteNumber+".pdf"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Delete godoc
// @Summary Delete a quote and its line items
// @Tags quotes
// @Param id path int true "Quote ID"
// @Success 204
// @Router /quotes/{id} [delete]
func (h *QuoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.quoteService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
