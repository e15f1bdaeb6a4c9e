package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/steelstack/crm-api/internal/config"
	"github.com/steelstack/crm-api/internal/domain"
	"github.com/steelstack/crm-api/internal/mail"
	"github.com/steelstack/crm-api/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/microsoft"
	"gorm.io/gorm"
)

// MailReader is the provider-neutral read surface of a mailbox client
type MailReader interface {
	ListMessages(ctx context.Context, accessToken string, limit int) ([]mail.Message, error)
	GetMessage(ctx context.Context, accessToken, id string) (*mail.Message, error)
	Profile(ctx context.Context, accessToken string) (string, error)
}

// MailService handles the OAuth lifecycle for connected mailboxes and
// proxies read-only message access.
//
// Access tokens are refreshed transparently: when a stored token is
// expired the refresh token is exchanged and the new pair persisted
// before the provider call goes out.
type MailService struct {
	tokenRepo *repository.MailTokenRepository
	outlook   MailReader
	gmail     MailReader
	configs   map[domain.MailProvider]*oauth2.Config
	logger    *zap.Logger
}

func NewMailService(
	tokenRepo *repository.MailTokenRepository,
	outlook MailReader,
	gmail MailReader,
	cfg *config.Config,
	logger *zap.Logger,
) *MailService {
	redirect := func(provider string) string {
		return fmt.Sprintf("%s/api/v1/mail/%s/callback", cfg.App.BaseURL, provider)
	}
	return &MailService{
		tokenRepo: tokenRepo,
		outlook:   outlook,
		gmail:     gmail,
		configs: map[domain.MailProvider]*oauth2.Config{
			domain.MailProviderOutlook: {
				ClientID:     cfg.Mail.Outlook.ClientID,
				ClientSecret: cfg.Mail.Outlook.ClientSecret,
				Scopes:       cfg.Mail.Outlook.Scopes,
				Endpoint:     microsoft.AzureADEndpoint("common"),
				RedirectURL:  redirect("outlook"),
			},
			domain.MailProviderGmail: {
				ClientID:     cfg.Mail.Gmail.ClientID,
				ClientSecret: cfg.Mail.Gmail.ClientSecret,
				Scopes:       cfg.Mail.Gmail.Scopes,
				Endpoint:     google.Endpoint,
				RedirectURL:  redirect("gmail"),
			},
		},
		logger: logger,
	}
}

// AuthURL returns the provider consent URL for the connect flow. The
// state parameter must be verified by the caller on callback.
func (s *MailService) AuthURL(provider domain.MailProvider, state string) (string, error) {
	cfg, ok := s.configs[provider]
	if !ok || cfg.ClientID == "" {
		return "", fmt.Errorf("%w: provider %s not configured", ErrInvalidInput, provider)
	}
	return cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce), nil
}

// Connect exchanges an authorization code and stores the token pair
func (s *MailService) Connect(ctx context.Context, userID uint, provider domain.MailProvider, code string) error {
	cfg, ok := s.configs[provider]
	if !ok {
		return fmt.Errorf("%w: unknown provider %s", ErrInvalidInput, provider)
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("oauth exchange failed: %w", err)
	}

	email := ""
	if reader := s.reader(provider); reader != nil {
		if addr, err := reader.Profile(ctx, token.AccessToken); err == nil {
			email = addr
		} else {
			s.logger.Warn("failed to read mailbox profile", zap.Error(err))
		}
	}

	record := &domain.MailToken{
		UserID:       userID,
		Provider:     provider,
		Email:        email,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
	}
	if err := s.tokenRepo.Upsert(ctx, record); err != nil {
		return fmt.Errorf("failed to store mail token: %w", err)
	}

	s.logger.Info("mailbox connected",
		zap.Uint("user_id", userID),
		zap.String("provider", string(provider)),
	)
	return nil
}

// Disconnect removes a stored token pair
func (s *MailService) Disconnect(ctx context.Context, userID uint, provider domain.MailProvider) error {
	return s.tokenRepo.Delete(ctx, userID, provider)
}

// Status reports which providers the user has connected
func (s *MailService) Status(ctx context.Context, userID uint) (*domain.MailStatusDTO, error) {
	tokens, err := s.tokenRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load mail tokens: %w", err)
	}

	status := &domain.MailStatusDTO{}
	for i := range tokens {
		switch tokens[i].Provider {
		case domain.MailProviderOutlook:
			status.Outlook = true
			status.OutlookEmail = tokens[i].Email
		case domain.MailProviderGmail:
			status.Gmail = true
			status.GmailEmail = tokens[i].Email
		}
	}
	return status, nil
}

// Messages lists the newest messages in the user's connected mailbox.
// A non-empty address narrows the listing to messages from that sender,
// which is how the contact detail view pulls up correspondence.
func (s *MailService) Messages(ctx context.Context, userID uint, provider domain.MailProvider, limit int, address string) ([]domain.MailMessageDTO, error) {
	accessToken, err := s.freshAccessToken(ctx, userID, provider)
	if err != nil {
		return nil, err
	}

	reader := s.reader(provider)
	if reader == nil {
		return nil, fmt.Errorf("%w: unknown provider %s", ErrInvalidInput, provider)
	}

	messages, err := reader.ListMessages(ctx, accessToken, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalUnavailable, err)
	}
	if address != "" {
		messages = filterBySender(messages, address)
	}
	return toMailDTOs(provider, messages), nil
}

func filterBySender(messages []mail.Message, address string) []mail.Message {
	filtered := messages[:0]
	for i := range messages {
		if strings.Contains(strings.ToLower(messages[i].From), strings.ToLower(address)) {
			filtered = append(filtered, messages[i])
		}
	}
	return filtered
}

// Message returns a single message with its full body
func (s *MailService) Message(ctx context.Context, userID uint, provider domain.MailProvider, id string) (*domain.MailMessageDTO, error) {
	accessToken, err := s.freshAccessToken(ctx, userID, provider)
	if err != nil {
		return nil, err
	}

	reader := s.reader(provider)
	if reader == nil {
		return nil, fmt.Errorf("%w: unknown provider %s", ErrInvalidInput, provider)
	}

	msg, err := reader.GetMessage(ctx, accessToken, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalUnavailable, err)
	}
	dto := toMailDTO(provider, msg)
	return &dto, nil
}

// freshAccessToken returns a valid access token for the user/provider,
// refreshing and persisting it when the stored one has expired
func (s *MailService) freshAccessToken(ctx context.Context, userID uint, provider domain.MailProvider) (string, error) {
	record, err := s.tokenRepo.Get(ctx, userID, provider)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrMailNotConnected
		}
		return "", err
	}

	// Refresh a minute early to avoid using a token that dies in flight
	if time.Until(record.Expiry) > time.Minute {
		return record.AccessToken, nil
	}

	cfg, ok := s.configs[provider]
	if !ok {
		return "", fmt.Errorf("%w: unknown provider %s", ErrInvalidInput, provider)
	}
	if record.RefreshToken == "" {
		return "", ErrMailNotConnected
	}

	source := cfg.TokenSource(ctx, &oauth2.Token{
		AccessToken:  record.AccessToken,
		RefreshToken: record.RefreshToken,
		Expiry:       record.Expiry,
	})
	token, err := source.Token()
	if err != nil {
		return "", fmt.Errorf("%w: token refresh failed: %v", ErrExternalUnavailable, err)
	}

	record.AccessToken = token.AccessToken
	if token.RefreshToken != "" {
		record.RefreshToken = token.RefreshToken
	}
	record.Expiry = token.Expiry
	if err := s.tokenRepo.Upsert(ctx, record); err != nil {
		s.logger.Warn("failed to persist refreshed token", zap.Error(err))
	}

	return token.AccessToken, nil
}

func (s *MailService) reader(provider domain.MailProvider) MailReader {
	switch provider {
	case domain.MailProviderOutlook:
		return s.outlook
	case domain.MailProviderGmail:
		return s.gmail
	}
	return nil
}

func toMailDTO(provider domain.MailProvider, msg *mail.Message) domain.MailMessageDTO {
	return domain.MailMessageDTO{
		ID:       msg.ID,
		Provider: provider,
		Subject:  msg.Subject,
		From:     msg.From,
		To:       msg.To,
		Date:     msg.Date,
		Snippet:  msg.Snippet,
		Body:     msg.Body,
	}
}

func toMailDTOs(provider domain.MailProvider, messages []mail.Message) []domain.MailMessageDTO {
	dtos := make([]domain.MailMessageDTO, len(messages))
	for i := range messages {
		dtos[i] = toMailDTO(provider, &messages[i])
	}
	return dtos
}
