package repository

import (
	"context"
	"testing"

	"github.com/steelstack/crm-api/internal/domain"
	"github.com/steelstack/crm-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateFirstUser_OnlyEverCreatesOne(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := &domain.User{
		Username:     "owner",
		PasswordHash: "hash",
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	require.NoError(t, repo.CreateFirstUser(ctx, first))

	// a second bootstrap attempt fails even under a different username
	second := &domain.User{
		Username:     "other",
		PasswordHash: "hash",
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	err := repo.CreateFirstUser(ctx, second)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var count int64
	require.NoError(t, db.Model(&domain.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
