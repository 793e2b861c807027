package review

import (
	"errors"
	"fmt"
	"time"

	"github.com/example/marketplace-services/domain/user"
)

var (
	// ErrNotFound is returned when no review matches the id and reviewer.
	ErrNotFound = errors.New("review not found")
	// ErrSubjectNotFound is returned when the reviewed product or restaurant does not exist.
	ErrSubjectNotFound = errors.New("review subject not found")
	// ErrInvalidInput is returned when a request body fails validation.
	ErrInvalidInput = errors.New("invalid review input")
)

const (
	MinRating = 1
	MaxRating = 5
)

// ProductReview is a review of a product.
type ProductReview struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	ProductID int64     `gorm:"index;not null" json:"product_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`

	UserDetails *user.Profile `gorm:"-" json:"userDetails,omitempty"`
}

// TableName returns the table name for GORM.
func (ProductReview) TableName() string {
	return "reviews"
}

// OwnerKey returns the reviewer's identifier.
func (r *ProductReview) OwnerKey() string {
	return r.UserID
}

// AttachUserDetails sets the reviewer's profile.
func (r *ProductReview) AttachUserDetails(profile *user.Profile) {
	r.UserDetails = profile
}

// RestaurantReview is a review of a restaurant.
type RestaurantReview struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	UserID       string    `gorm:"index;not null" json:"user_id"`
	RestaurantID string    `gorm:"index;not null;size:36" json:"restaurant_id"`
	Rating       int       `gorm:"not null" json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`

	UserDetails *user.Profile `gorm:"-" json:"userDetails,omitempty"`
}

// TableName returns the table name for GORM.
func (RestaurantReview) TableName() string {
	return "restaurant_reviews"
}

// OwnerKey returns the reviewer's identifier.
func (r *RestaurantReview) OwnerKey() string {
	return r.UserID
}

// AttachUserDetails sets the reviewer's profile.
func (r *RestaurantReview) AttachUserDetails(profile *user.Profile) {
	r.UserDetails = profile
}

// CreateInput is the body accepted when posting a review.
type CreateInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Validate checks the rating range.
func (in CreateInput) Validate() error {
	if in.Rating < MinRating || in.Rating > MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, MinRating, MaxRating)
	}
	return nil
}
