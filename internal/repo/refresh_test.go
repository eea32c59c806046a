package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/zest/product-api/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.RefreshToken{},
		&models.Product{},
		&models.Item{},
	))

	return &GormRepo{DB: db}
}

func createTestUser(t *testing.T, r *GormRepo, email string) *models.User {
	t.Helper()

	user := models.User{
		FullName:     "Test User",
		Email:        email,
		PasswordHash: "x",
		Enabled:      true,
	}
	require.NoError(t, r.CreateUser(context.Background(), &user))
	return &user
}

func TestRotateRefresh_CreatesThenOverwrites(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	user := createTestUser(t, r, "rotate@x.com")

	first, err := r.RotateRefresh(ctx, user.ID, "value-1", time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "value-1", first.Token)
	assert.False(t, first.Revoked)

	second, err := r.RotateRefresh(ctx, user.ID, "value-2", time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "value-2", second.Token)

	var count int64
	require.NoError(t, r.DB.Model(&models.RefreshToken{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRotateRefresh_ClearsRevokedFlag(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	user := createTestUser(t, r, "revived@x.com")

	token, err := r.RotateRefresh(ctx, user.ID, "value-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	require.NoError(t, r.DB.Model(token).Update("revoked", true).Error)

	rotated, err := r.RotateRefresh(ctx, user.ID, "value-2", time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, rotated.Revoked)
}

func TestClaimRefresh_UnknownValue(t *testing.T) {
	r := newTestRepo(t)

	_, err := r.ClaimRefresh(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ErrRefreshNotFound)
}

func TestClaimRefresh_Success_RevokesRow(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	user := createTestUser(t, r, "claim@x.com")

	token, err := r.RotateRefresh(ctx, user.ID, "claim-me", time.Now().Add(time.Hour))
	require.NoError(t, err)

	claimed, err := r.ClaimRefresh(ctx, "claim-me")
	require.NoError(t, err)
	assert.Equal(t, token.ID, claimed.ID)
	assert.Equal(t, user.ID, claimed.UserID)

	stored, err := r.FindRefreshByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.Revoked)
}

func TestClaimRefresh_SecondClaimFails(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	user := createTestUser(t, r, "double@x.com")

	_, err := r.RotateRefresh(ctx, user.ID, "once-only", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = r.ClaimRefresh(ctx, "once-only")
	require.NoError(t, err)

	_, err = r.ClaimRefresh(ctx, "once-only")
	assert.ErrorIs(t, err, ErrRefreshExpiredOrRevoked)
}

func TestClaimRefresh_Expired_MarksRevoked(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	user := createTestUser(t, r, "expired@x.com")

	_, err := r.RotateRefresh(ctx, user.ID, "stale", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = r.ClaimRefresh(ctx, "stale")
	assert.ErrorIs(t, err, ErrRefreshExpiredOrRevoked)

	stored, err := r.FindRefreshByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.Revoked)

	// a second presentation keeps failing the same way
	_, err = r.ClaimRefresh(ctx, "stale")
	assert.ErrorIs(t, err, ErrRefreshExpiredOrRevoked)
}

func TestFindRefreshByToken(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	user := createTestUser(t, r, "find@x.com")

	_, err := r.RotateRefresh(ctx, user.ID, "findable", time.Now().Add(time.Hour))
	require.NoError(t, err)

	found, err := r.FindRefreshByToken(ctx, "findable")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.UserID)
}
