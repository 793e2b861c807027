package review

import (
	"context"
	"testing"

	domain "github.com/example/marketplace-services/domain/review"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&domain.ProductReview{}, &domain.RestaurantReview{}), "failed to migrate test database")
	return db
}

func TestRepository_ProductReviews(t *testing.T) {
	repo := NewProductReviewRepository(setupTestDB(t))
	ctx := context.Background()

	for _, rev := range []domain.ProductReview{
		{UserID: "u1", ProductID: 1, Rating: 5, Comment: "great"},
		{UserID: "u2", ProductID: 1, Rating: 3},
		{UserID: "u1", ProductID: 2, Rating: 1},
	} {
		require.NoError(t, repo.Create(ctx, &rev))
		require.NotZero(t, rev.ID)
	}

	got, err := repo.ListBySubject(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "great", got[0].Comment)
	assert.Equal(t, "u2", got[1].UserID)

	none, err := repo.ListBySubject(ctx, 42)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	removed, err := repo.DeleteBySubject(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	left, err := repo.ListBySubject(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, left, 1)
}

func TestRepository_DeleteOwned(t *testing.T) {
	repo := NewRestaurantReviewRepository(setupTestDB(t))
	ctx := context.Background()

	rev := &domain.RestaurantReview{UserID: "author", RestaurantID: "r-1", Rating: 4}
	require.NoError(t, repo.Create(ctx, rev))

	tests := []struct {
		name    string
		id      int64
		userID  string
		wantErr error
	}{
		{"someone else's review", rev.ID, "stranger", domain.ErrNotFound},
		{"unknown review", rev.ID + 1, "author", domain.ErrNotFound},
		{"own review", rev.ID, "author", nil},
		{"already deleted", rev.ID, "author", domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.DeleteOwned(ctx, tt.id, tt.userID)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRepository_ReviewKindsAreSeparate(t *testing.T) {
	db := setupTestDB(t)
	products := NewProductReviewRepository(db)
	restaurants := NewRestaurantReviewRepository(db)
	ctx := context.Background()

	require.NoError(t, products.Create(ctx, &domain.ProductReview{UserID: "u1", ProductID: 1, Rating: 5}))
	require.NoError(t, restaurants.Create(ctx, &domain.RestaurantReview{UserID: "u1", RestaurantID: "1", Rating: 2}))

	got, err := restaurants.ListBySubject(ctx, "1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Rating)
}
