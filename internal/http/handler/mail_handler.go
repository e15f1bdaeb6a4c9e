package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/steelstack/crm-api/internal/auth"
	"github.com/steelstack/crm-api/internal/domain"
	"github.com/steelstack/crm-api/internal/service"
	"go.uber.org/zap"
)

const oauthStateCookie = "crm_oauth_state"

// MailHandler drives the OAuth connect flow and read-only inbox access
type MailHandler struct {
	mailService *service.MailService
	logger      *zap.Logger
}

func NewMailHandler(mailService *service.MailService, logger *zap.Logger) *MailHandler {
	return &MailHandler{
		mailService: mailService,
		logger:      logger,
	}
}

func providerParam(r *http.Request) (domain.MailProvider, bool) {
	provider := domain.MailProvider(chi.URLParam(r, "provider"))
	return provider, provider.IsValid()
}

// Connect godoc
// @Summary Start the OAuth consent flow for a mail provider
// @Tags mail
// @Param provider path string true "outlook or gmail"
// @Success 302
// @Router /mail/{provider}/connect [get]
func (h *MailHandler) Connect(w http.ResponseWriter, r *http.Request) {
	provider, ok := providerParam(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "unknown mail provider")
		return
	}

	state := uuid.NewString()
	url, err := h.mailService.AuthURL(provider, state)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, url, http.StatusFound)
}

// Callback godoc
// @Summary OAuth redirect target, exchanges the code and stores tokens
// @Tags mail
// @Param provider path string true "outlook or gmail"
// @Param code query string true "Authorization code"
// @Param state query string true "CSRF state"
// @Success 302
// @Router /mail/{provider}/callback [get]
func (h *MailHandler) Callback(w http.ResponseWriter, r *http.Request) {
	provider, ok := providerParam(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "unknown mail provider")
		return
	}

	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		respondWithError(w, http.StatusBadRequest, "state mismatch")
		return
	}
	http.SetCookie(w, &http.Cookie{Name: oauthStateCookie, Value: "", Path: "/", MaxAge: -1})

	code := r.URL.Query().Get("code")
	if code == "" {
		respondWithError(w, http.StatusBadRequest, "missing authorization code")
		return
	}

	userCtx := auth.MustFromContext(r.Context())
	if err := h.mailService.Connect(r.Context(), userCtx.UserID, provider, code); err != nil {
		h.logger.Error("mail connect failed",
			zap.String("provider", string(provider)),
			zap.Uint("user_id", userCtx.UserID),
			zap.Error(err),
		)
		respondServiceError(w, err)
		return
	}

	http.Redirect(w, r, "/settings/mail", http.StatusFound)
}

// Status godoc
// @Summary Connection status per provider for the current user
// @Tags mail
// @Produce json
// @Success 200 {object} domain.MailStatusDTO
// @Router /mail/status [get]
func (h *MailHandler) Status(w http.ResponseWriter, r *http.Request) {
	userCtx := auth.MustFromContext(r.Context())
	status, err := h.mailService.Status(r.Context(), userCtx.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, status)
}

// Messages godoc
// @Summary List recent messages from a connected mailbox
// @Tags mail
// @Produce json
// @Param provider path string true "outlook or gmail"
// @Param limit query int false "Max messages (default 25)"
// @Param address query string false "Only messages from this sender"
// @Success 200 {array} domain.MailMessageDTO
// @Router /mail/{provider}/messages [get]
func (h *MailHandler) Messages(w http.ResponseWriter, r *http.Request) {
	provider, ok := providerParam(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "unknown mail provider")
		return
	}

	limit := 25
	if l := optionalUintQuery(r, "limit"); l != nil && *l > 0 && *l <= 100 {
		limit = int(*l)
	}

	userCtx := auth.MustFromContext(r.Context())
	messages, err := h.mailService.Messages(r.Context(), userCtx.UserID, provider, limit, r.URL.Query().Get("address"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, messages)
}

// Message godoc
// @Summary Fetch a single message with its body
// @Tags mail
// @Produce json
// @Param provider path string true "outlook or gmail"
// @Param messageId path string true "Provider message ID"
// @Success 200 {object} domain.MailMessageDTO
// @Router /mail/{provider}/messages/{messageId} [get]
func (h *MailHandler) Message(w http.ResponseWriter, r *http.Request) {
	provider, ok := providerParam(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "unknown mail provider")
		return
	}

	messageID := chi.URLParam(r, "messageId")
	if messageID == "" {
		respondWithError(w, http.StatusBadRequest, "missing message id")
		return
	}

	userCtx := auth.MustFromContext(r.Context())
	message, err := h.mailService.Message(r.Context(), userCtx.UserID, provider, messageID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, message)
}

// Disconnect godoc
// @Summary Remove stored tokens for a provider
// @Tags mail
// @Param provider path string true "outlook or gmail"
// @Success 204
// @Router /mail/{provider} [delete]
func (h *MailHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	provider, ok := providerParam(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "unknown mail provider")
		return
	}

	userCtx := auth.MustFromContext(r.Context())
	if err := h.mailService.Disconnect(r.Context(), userCtx.UserID, provider); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
