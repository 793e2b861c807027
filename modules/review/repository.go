package review

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/example/marketplace-services/domain/review"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// pgForeignKeyViolation is the PostgreSQL SQLSTATE for foreign_key_violation.
const pgForeignKeyViolation = "23503"

// Repository persists reviews of one kind. K is the type of the reviewed
// subject's identifier and subjectColumn the column holding it.
type Repository[T any, K comparable] struct {
	db            *gorm.DB
	subjectColumn string
}

// NewProductReviewRepository stores product reviews in the reviews table.
func NewProductReviewRepository(db *gorm.DB) *Repository[domain.ProductReview, int64] {
	return &Repository[domain.ProductReview, int64]{db: db, subjectColumn: "product_id"}
}

// NewRestaurantReviewRepository stores restaurant reviews in the restaurant_reviews table.
func NewRestaurantReviewRepository(db *gorm.DB) *Repository[domain.RestaurantReview, string] {
	return &Repository[domain.RestaurantReview, string]{db: db, subjectColumn: "restaurant_id"}
}

// ListBySubject returns the reviews of one subject ordered by id.
func (r *Repository[T, K]) ListBySubject(ctx context.Context, subject K) ([]T, error) {
	reviews := []T{}
	err := r.db.WithContext(ctx).
		Where(r.subjectColumn+" = ?", subject).
		Order("id ASC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// Create inserts a review.
func (r *Repository[T, K]) Create(ctx context.Context, rev *T) error {
	if err := r.db.WithContext(ctx).Create(rev).Error; err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrSubjectNotFound
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// DeleteOwned removes the review with id written by userID.
func (r *Repository[T, K]) DeleteOwned(ctx context.Context, id int64, userID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(new(T))
	if result.Error != nil {
		return fmt.Errorf("failed to delete review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteBySubject removes every review of a subject and returns how many were removed.
func (r *Repository[T, K]) DeleteBySubject(ctx context.Context, subject K) (int64, error) {
	result := r.db.WithContext(ctx).
		Where(r.subjectColumn+" = ?", subject).
		Delete(new(T))
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete reviews: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
