package handler

import (
	"net/http"

	"github.com/steelstack/crm-api/internal/domain"
	"github.com/steelstack/crm-api/internal/repository"
	"github.com/steelstack/crm-api/internal/service"
	"go.uber.org/zap"
)

// ContactHandler serves CRUD operations for contacts
type ContactHandler struct {
	contactService *service.ContactService
	logger         *zap.Logger
}

func NewContactHandler(contactService *service.ContactService, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		logger:         logger,
	}
}

// Create godoc
// @Summary Create a contact
// @Tags contacts
// @Accept json
// @Produce json
// @Param request body domain.CreateContactRequest true "Contact"
// @Success 201 {object} domain.ContactDTO
// @Router /contacts [post]
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateContactRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	contact, err := h.contactService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, contact)
}

// List godoc
// @Summary List contacts
// @Tags contacts
// @Produce json
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Param search query string false "Search in name, email, company"
// @Param companyId query int false "Filter by company"
// @Param utmSource query string false "Filter by UTM source"
// @Param utmMedium query string false "Filter by UTM medium"
// @Success 200 {object} domain.PaginatedResponse
// @Router /contacts [get]
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	filters := &repository.ContactFilters{
		Search:    r.URL.Query().Get("search"),
		CompanyID: optionalUintQuery(r, "companyId"),
		UTMSource: r.URL.Query().Get("utmSource"),
		UTMMedium: r.URL.Query().Get("utmMedium"),
	}

	result, err := h.contactService.List(r.Context(), page, pageSize, filters)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Get godoc
// @Summary Get a contact
// @Tags contacts
// @Produce json
// @Param id path int true "Contact ID"
// @Success 200 {object} domain.ContactDTO
// @Router /contacts/{id} [get]
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	contact, err := h.contactService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, contact)
}

// Update godoc
// @Summary Update a contact
// @Tags contacts
// @Accept json
// @Produce json
// @Param id path int true "Contact ID"
// @Param request body domain.UpdateContactRequest true "Contact"
// @Success 200 {object} domain.ContactDTO
// @Router /contacts/{id} [put]
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req domain.UpdateContactRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	contact, err := h.contactService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, contact)
}

// Delete godoc
// @Summary Delete a contact
// @Tags contacts
// @Param id path int true "Contact ID"
// @Success 204
// @Router /contacts/{id} [delete]
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.contactService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Touch godoc
// @Summary Record activity on a contact
// @Tags contacts
// @Param id path int true "Contact ID"
// @Success 204
// @Router /contacts/{id}/touch [post]
func (h *ContactHandler) Touch(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.contactService.TouchActivity(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
