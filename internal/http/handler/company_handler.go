package handler

import (
	"net/http"

	"github.com/steelstack/crm-api/internal/domain"
	"github.com/steelstack/crm-api/internal/service"
	"go.uber.org/zap"
)

// CompanyHandler serves CRUD operations for companies
type CompanyHandler struct {
	companyService *service.CompanyService
	logger         *zap.Logger
}

func NewCompanyHandler(companyService *service.CompanyService, logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
		logger:         logger,
	}
}

// Create godoc
// @Summary Create a company
// @Tags companies
// @Accept json
// @Produce json
// @Param request body domain.CreateCompanyRequest true "Company"
// @Success 201 {object} domain.CompanyDTO
// @Router /companies [post]
func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCompanyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	company, err := h.companyService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, company)
}

// List godoc
// @Summary List companies
// @Tags companies
// @Produce json
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Param search query string false "Search by name"
// @Success 200 {object} domain.PaginatedResponse
// @Router /companies [get]
func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	result, err := h.companyService.List(r.Context(), page, pageSize, r.URL.Query().Get("search"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Get godoc
// @Summary Get a company
// @Tags companies
// @Produce json
// @Param id path int true "Company ID"
// @Success 200 {object} domain.CompanyDTO
// @Router /companies/{id} [get]
func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	company, err := h.companyService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, company)
}

// Update godoc
// @Summary Update a company
// @Tags companies
// @Accept json
// @Produce json
// @Param id path int true "Company ID"
// @Param request body domain.UpdateCompanyRequest true "Company"
// @Success 200 {object} domain.CompanyDTO
// @Router /companies/{id} [put]
func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req domain.UpdateCompanyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	company, err := h.companyService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, company)
}

// Delete godoc
// @Summary Delete a company, detaching its contacts, deals and quotes
// @Tags companies
// @Param id path int true "Company ID"
// @Success 204
// @Router /companies/{id} [delete]
func (h *CompanyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.companyService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
