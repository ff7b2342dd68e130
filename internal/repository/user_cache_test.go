package repository

import (
	"context"
	"testing"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupCacheTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	mr := miniredis.RunT(t)
	prev := cache.GetClient()
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(prev) })

	return db
}

// A profile update after a cached read must never touch the password hash:
// the cached copy is stored as JSON, where the hash is omitted.
func TestUserUpdatePreservesPasswordAfterCachedRead(t *testing.T) {
	db := setupCacheTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{
		Username: "leo",
		Email:    "leo@example.com",
		Password: "$2a$10$stored-bcrypt-hash",
		Bio:      "original bio",
	}
	require.NoError(t, db.Create(user).Error)

	// First read primes the cache, second read is served from it and comes
	// back without the password hash.
	primed, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$stored-bcrypt-hash", primed.Password)

	cached, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, cached.Password, "cached copy must not carry the hash")

	cached.Bio = "updated bio"
	require.NoError(t, repo.Update(ctx, cached))

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, "$2a$10$stored-bcrypt-hash", stored.Password, "password hash must survive a profile update")
	assert.Equal(t, "updated bio", stored.Bio)
	assert.Equal(t, "leo", stored.Username)
}

func TestUserUpdateInvalidatesCache(t *testing.T) {
	db := setupCacheTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "leo", Email: "leo@example.com", Password: "pw", Bio: "before"}
	require.NoError(t, db.Create(user).Error)

	_, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)

	user.Bio = "after"
	require.NoError(t, repo.Update(ctx, user))

	fresh, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", fresh.Bio)
}

func TestUserUpdateUnknownUser(t *testing.T) {
	db := setupCacheTestDB(t)
	repo := NewUserRepository(db)

	err := repo.Update(context.Background(), &models.User{ID: 999, Username: "ghost"})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
