package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/steelstack/crm-api/internal/auth"
	"github.com/steelstack/crm-api/internal/domain"
	"github.com/steelstack/crm-api/internal/mapper"
	"github.com/steelstack/crm-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserService manages user accounts. All operations are admin-only;
// the router enforces that.
type UserService struct {
	userRepo *repository.UserRepository
	hasher   *auth.PasswordHasher
	logger   *zap.Logger
}

func NewUserService(userRepo *repository.UserRepository, hasher *auth.PasswordHasher, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

func (s *UserService) Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.UserDTO, error) {
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
		Role:         req.Role,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: username already taken", ErrConflict)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created",
		zap.Uint("user_id", user.ID),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
	)

	dto := mapper.ToUserDTO(user)
	return &dto, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*domain.UserDTO, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	dto := mapper.ToUserDTO(user)
	return &dto, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.UserDTO, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return mapper.ToUserDTOs(users), nil
}

// Update changes user fields. Deactivation is a soft delete: the account
// stops working but its history stays attached. A user cannot deactivate
// themselves; callerID is the acting user.
func (s *UserService) Update(ctx context.Context, id, callerID uint, req *domain.UpdateUserRequest) (*domain.UserDTO, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.IsActive != nil && !*req.IsActive && id == callerID {
		return nil, ErrSelfDeactivation
	}

	if req.Password != "" {
		hash, err := s.hasher.Hash(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.Email = req.Email
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	dto := mapper.ToUserDTO(user)
	return &dto, nil
}

// Deactivate soft-deletes a user account
func (s *UserService) Deactivate(ctx context.Context, id, callerID uint) error {
	if id == callerID {
		return ErrSelfDeactivation
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	user.IsActive = false
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	s.logger.Info("user deactivated",
		zap.Uint("user_id", id),
		zap.Uint("by_user_id", callerID),
	)
	return nil
}
