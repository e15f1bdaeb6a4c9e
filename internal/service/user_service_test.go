package service

import (
	"context"
	"testing"

	"github.com/steelstack/crm-api/internal/auth"
	"github.com/steelstack/crm-api/internal/domain"
	"github.com/steelstack/crm-api/internal/repository"
	"github.com/steelstack/crm-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newUserService(t *testing.T) *UserService {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewUserService(repository.NewUserRepository(db), auth.NewPasswordHasher(4), zap.NewNop())
}

func TestUserCreate_DuplicateUsernameConflicts(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.CreateUserRequest{
		Username: "sales1",
		Password: "secret123",
		Role:     domain.RoleSalesperson,
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &domain.CreateUserRequest{
		Username: "sales1",
		Password: "other456",
		Role:     domain.RoleSalesperson,
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUserUpdate_SelfDeactivationBlocked(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	admin, err := svc.Create(ctx, &domain.CreateUserRequest{
		Username: "admin",
		Password: "secret123",
		Role:     domain.RoleAdmin,
	})
	require.NoError(t, err)

	off := false
	_, err = svc.Update(ctx, admin.ID, admin.ID, &domain.UpdateUserRequest{IsActive: &off})
	assert.ErrorIs(t, err, ErrSelfDeactivation)

	err = svc.Deactivate(ctx, admin.ID, admin.ID)
	assert.ErrorIs(t, err, ErrSelfDeactivation)
}

func TestUserDeactivate_ByAnotherAdmin(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	admin, err := svc.Create(ctx, &domain.CreateUserRequest{
		Username: "admin",
		Password: "secret123",
		Role:     domain.RoleAdmin,
	})
	require.NoError(t, err)
	rep, err := svc.Create(ctx, &domain.CreateUserRequest{
		Username: "rep",
		Password: "secret123",
		Role:     domain.RoleSalesperson,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, rep.ID, admin.ID))

	got, err := svc.GetByID(ctx, rep.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestUserUpdate_RoleChange(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	rep, err := svc.Create(ctx, &domain.CreateUserRequest{
		Username: "rep",
		Password: "secret123",
		Role:     domain.RoleSalesperson,
	})
	require.NoError(t, err)

	admin := domain.RoleAdmin
	updated, err := svc.Update(ctx, rep.ID, 999, &domain.UpdateUserRequest{Role: &admin})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
}
