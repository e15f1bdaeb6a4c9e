package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/steelstack/crm-api/internal/auth"
	"github.com/steelstack/crm-api/internal/domain"
	"github.com/steelstack/crm-api/internal/logger"
	"github.com/steelstack/crm-api/internal/mapper"
	"github.com/steelstack/crm-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthService handles login, logout and the first-run setup flow
type AuthService struct {
	userRepo *repository.UserRepository
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenManager
	logger   *zap.Logger
}

func NewAuthService(
	userRepo *repository.UserRepository,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenManager,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

// HasUsers reports whether any user accounts exist
func (s *AuthService) HasUsers(ctx context.Context) (bool, error) {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	return count > 0, nil
}

// Login verifies credentials and returns a signed session token. Unknown
// username, wrong password and deactivated account all return the same
// ErrUnauthorized so the response leaks nothing about which part failed.
func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (string, *domain.SessionDTO, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Burn a hash comparison anyway to keep timing uniform
			_ = s.hasher.Verify("$2a$12$invalidinvalidinvalidinvalidinvalidinvalid", req.Password)
			return "", nil, ErrUnauthorized
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.hasher.Verify(user.PasswordHash, req.Password) || !user.IsActive {
		s.logger.Info("login rejected", zap.String("username", req.Username))
		return "", nil, ErrUnauthorized
	}

	token, err := s.tokens.Sign(user)
	if err != nil {
		return "", nil, err
	}

	if err := s.userRepo.RecordLogin(ctx, user.ID); err != nil {
		s.logger.Warn("failed to record login time", zap.Error(err))
	}

	logger.WithUser(s.logger, user.ID, user.Username).Info("user logged in")

	return token, &domain.SessionDTO{
		UserID:      user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName(),
		Role:        user.Role,
	}, nil
}

// Setup creates the first admin account. Only valid while the users table
// is empty; afterwards it always fails with ErrSetupComplete.
func (s *AuthService) Setup(ctx context.Context, req *domain.SetupRequest) (*domain.UserDTO, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     req.Username,
		PasswordHash: hash,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}

	if err := s.userRepo.CreateFirstUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSetupComplete
		}
		return nil, fmt.Errorf("failed to create initial user: %w", err)
	}

	s.logger.Info("initial admin account created", zap.String("username", user.Username))

	dto := mapper.ToUserDTO(user)
	return &dto, nil
}
