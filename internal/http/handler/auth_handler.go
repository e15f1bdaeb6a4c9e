package handler

import (
	"net/http"

	"github.com/steelstack/crm-api/internal/auth"
	"github.com/steelstack/crm-api/internal/domain"
	"github.com/steelstack/crm-api/internal/service"
	"go.uber.org/zap"
)

// AuthHandler serves login, logout, session info and first-run setup
type AuthHandler struct {
	authService *service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login godoc
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body domain.LoginRequest true "Credentials"
// @Success 200 {object} domain.SessionDTO
// @Failure 401 {object} domain.APIError
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	token, session, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	auth.SetSessionCookie(w, token)
	respondJSON(w, http.StatusOK, session)
}

// Logout godoc
// @Summary Log out
// @Tags auth
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// Session godoc
// @Summary Current session
// @Tags auth
// @Produce json
// @Success 200 {object} domain.SessionDTO
// @Router /auth/session [get]
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	userCtx := auth.MustFromContext(r.Context())
	respondJSON(w, http.StatusOK, domain.SessionDTO{
		UserID:      userCtx.UserID,
		Username:    userCtx.Username,
		DisplayName: userCtx.DisplayName,
		Role:        userCtx.Role,
	})
}

// SetupStatus godoc
// @Summary Report whether first-run setup is still open
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /setup [get]
func (h *AuthHandler) SetupStatus(w http.ResponseWriter, r *http.Request) {
	has, err := h.authService.HasUsers(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to check setup status")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"setupRequired": !has})
}

// Setup godoc
// @Summary Create the first admin account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body domain.SetupRequest true "Initial admin"
// @Success 201 {object} domain.UserDTO
// @Failure 409 {object} domain.APIError
// @Router /setup [post]
func (h *AuthHandler) Setup(w http.ResponseWriter, r *http.Request) {
	var req domain.SetupRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.authService.Setup(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}
