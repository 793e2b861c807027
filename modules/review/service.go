package review

import (
	"context"

	domain "github.com/example/marketplace-services/domain/review"
	"github.com/example/marketplace-services/domain/user"
	"github.com/example/marketplace-services/modules/userdetails"
)

// Store is the persistence port used by Service.
type Store[T any, K comparable] interface {
	ListBySubject(ctx context.Context, subject K) ([]T, error)
	Create(ctx context.Context, rev *T) error
	DeleteOwned(ctx context.Context, id int64, userID string) error
	DeleteBySubject(ctx context.Context, subject K) (int64, error)
}

// SubjectExists reports whether the reviewed product or restaurant is stored.
type SubjectExists[K comparable] func(ctx context.Context, subject K) (bool, error)

// Service implements review use cases for one kind of subject.
type Service[T any, K comparable] struct {
	store     Store[T, K]
	exists    SubjectExists[K]
	decorator *userdetails.Decorator
	build     func(userID string, subject K, in domain.CreateInput) T
	ownerOf   func(*T) string
	attach    func(*T, *user.Profile)
}

// ProductReviews is the review service of the products service.
type ProductReviews = Service[domain.ProductReview, int64]

// RestaurantReviews is the review service of the restaurants service.
type RestaurantReviews = Service[domain.RestaurantReview, string]

// NewProductReviewService creates the product review service.
func NewProductReviewService(store Store[domain.ProductReview, int64], exists SubjectExists[int64], decorator *userdetails.Decorator) *ProductReviews {
	return &ProductReviews{
		store:     store,
		exists:    exists,
		decorator: decorator,
		build: func(userID string, productID int64, in domain.CreateInput) domain.ProductReview {
			return domain.ProductReview{UserID: userID, ProductID: productID, Rating: in.Rating, Comment: in.Comment}
		},
		ownerOf: (*domain.ProductReview).OwnerKey,
		attach:  (*domain.ProductReview).AttachUserDetails,
	}
}

// NewRestaurantReviewService creates the restaurant review service.
func NewRestaurantReviewService(store Store[domain.RestaurantReview, string], exists SubjectExists[string], decorator *userdetails.Decorator) *RestaurantReviews {
	return &RestaurantReviews{
		store:     store,
		exists:    exists,
		decorator: decorator,
		build: func(userID string, restaurantID string, in domain.CreateInput) domain.RestaurantReview {
			return domain.RestaurantReview{UserID: userID, RestaurantID: restaurantID, Rating: in.Rating, Comment: in.Comment}
		},
		ownerOf: (*domain.RestaurantReview).OwnerKey,
		attach:  (*domain.RestaurantReview).AttachUserDetails,
	}
}

// List returns the reviews of a subject, decorated with reviewer profiles.
func (s *Service[T, K]) List(ctx context.Context, subject K) ([]T, error) {
	reviews, err := s.store.ListBySubject(ctx, subject)
	if err != nil {
		return nil, err
	}
	return userdetails.Decorate(ctx, s.decorator, reviews, s.ownerOf, s.attach), nil
}

// Create stores a review written by userID.
func (s *Service[T, K]) Create(ctx context.Context, userID string, subject K, in domain.CreateInput) (*T, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if s.exists != nil {
		ok, err := s.exists(ctx, subject)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrSubjectNotFound
		}
	}

	rev := s.build(userID, subject, in)
	if err := s.store.Create(ctx, &rev); err != nil {
		return nil, err
	}
	return &rev, nil
}

// Delete removes a review written by userID.
func (s *Service[T, K]) Delete(ctx context.Context, id int64, userID string) error {
	return s.store.DeleteOwned(ctx, id, userID)
}

// RemoveForSubject deletes the reviews left behind by a deleted subject.
func (s *Service[T, K]) RemoveForSubject(ctx context.Context, subject K) (int64, error) {
	return s.store.DeleteBySubject(ctx, subject)
}
