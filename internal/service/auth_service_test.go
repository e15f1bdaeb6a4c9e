package service

import (
	"context"
	"testing"

	"github.com/steelstack/crm-api/internal/auth"
	"github.com/steelstack/crm-api/internal/config"
	"github.com/steelstack/crm-api/internal/domain"
	"github.com/steelstack/crm-api/internal/repository"
	"github.com/steelstack/crm-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T) (*AuthService, *auth.TokenManager, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	// cost 4 keeps bcrypt fast in tests
	hasher := auth.NewPasswordHasher(4)
	tokens := auth.NewTokenManager(&config.AuthConfig{
		JWTSecret:  "test-secret",
		SessionTTL: 60,
	}, "crm-test")
	return NewAuthService(repository.NewUserRepository(db), hasher, tokens, zap.NewNop()), tokens, db
}

func TestSetup_CreatesAdminThenLocks(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	has, err := svc.HasUsers(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	user, err := svc.Setup(ctx, &domain.SetupRequest{
		Username: "owner",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)

	// second attempt must fail even with different credentials
	_, err = svc.Setup(ctx, &domain.SetupRequest{
		Username: "intruder",
		Password: "hunter2hunter2",
	})
	assert.ErrorIs(t, err, ErrSetupComplete)

	has, err = svc.HasUsers(ctx)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestLogin_SucceedsAndSignsVerifiableToken(t *testing.T) {
	svc, tokens, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Setup(ctx, &domain.SetupRequest{
		Username:  "owner",
		Password:  "correct horse",
		FirstName: "Pat",
		LastName:  "Owner",
	})
	require.NoError(t, err)

	token, session, err := svc.Login(ctx, &domain.LoginRequest{
		Username: "owner",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "owner", session.Username)
	assert.Equal(t, "Pat Owner", session.DisplayName)

	userCtx, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, session.UserID, userCtx.UserID)
	assert.Equal(t, domain.RoleAdmin, userCtx.Role)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	svc, _, db := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Setup(ctx, &domain.SetupRequest{Username: "owner", Password: "correct horse"})
	require.NoError(t, err)

	_, _, unknownErr := svc.Login(ctx, &domain.LoginRequest{Username: "nobody", Password: "x"})
	_, _, wrongErr := svc.Login(ctx, &domain.LoginRequest{Username: "owner", Password: "wrong"})

	assert.ErrorIs(t, unknownErr, ErrUnauthorized)
	assert.ErrorIs(t, wrongErr, ErrUnauthorized)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())

	// deactivated accounts get the same answer
	require.NoError(t, db.Model(&domain.User{}).Where("username = ?", "owner").Update("is_active", false).Error)
	_, _, inactiveErr := svc.Login(ctx, &domain.LoginRequest{Username: "owner", Password: "correct horse"})
	assert.ErrorIs(t, inactiveErr, ErrUnauthorized)
	assert.Equal(t, unknownErr.Error(), inactiveErr.Error())
}

func TestLogin_RecordsLastLogin(t *testing.T) {
	svc, _, db := newAuthService(t)
	ctx := context.Background()

	created, err := svc.Setup(ctx, &domain.SetupRequest{Username: "owner", Password: "correct horse"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, &domain.LoginRequest{Username: "owner", Password: "correct horse"})
	require.NoError(t, err)

	var user domain.User
	require.NoError(t, db.First(&user, created.ID).Error)
	assert.NotNil(t, user.LastLoginAt)
}
