package restaurant

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/example/marketplace-services/domain/restaurant"
	"gorm.io/gorm"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Repository handles restaurant persistence using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns restaurants newest first, optionally narrowed by city.
func (r *Repository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Restaurant, error) {
	query := r.db.WithContext(ctx).Model(&domain.Restaurant{})
	if filter.City != "" {
		query = query.Where("LOWER(city) LIKE LOWER(?)", filter.City)
	}

	var restaurants []domain.Restaurant
	err := query.
		Order("created_at DESC").
		Offset(clampOffset(filter.Offset)).
		Limit(clampLimit(filter.Limit)).
		Find(&restaurants).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	return restaurants, nil
}

// FindByOwner returns every restaurant owned by ownerID, newest first.
func (r *Repository) FindByOwner(ctx context.Context, ownerID string) ([]domain.Restaurant, error) {
	var restaurants []domain.Restaurant
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&restaurants).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find restaurants by owner: %w", err)
	}
	return restaurants, nil
}

// Exists reports whether a restaurant with the id is stored.
func (r *Repository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Restaurant{}).Where("restaurant_id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check restaurant: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new restaurant.
func (r *Repository) Create(ctx context.Context, rest *domain.Restaurant) error {
	if err := r.db.WithContext(ctx).Create(rest).Error; err != nil {
		return fmt.Errorf("failed to create restaurant: %w", err)
	}
	return nil
}

// UpdateOwned applies the non-nil fields of in to the restaurant owned by ownerID.
func (r *Repository) UpdateOwned(ctx context.Context, id, ownerID string, in domain.UpdateInput) (*domain.Restaurant, error) {
	var updated domain.Restaurant
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findOwned(tx, id, ownerID, &updated); err != nil {
			return err
		}

		cols := in.Columns()
		if len(cols) == 0 {
			return nil
		}
		if err := tx.Model(&updated).Updates(cols).Error; err != nil {
			return fmt.Errorf("failed to update restaurant: %w", err)
		}
		return tx.Where("restaurant_id = ?", id).First(&updated).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteOwned removes the restaurant owned by ownerID together with its
// reservations. It returns the number of reservations removed.
func (r *Repository) DeleteOwned(ctx context.Context, id, ownerID string) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rest domain.Restaurant
		if err := findOwned(tx, id, ownerID, &rest); err != nil {
			return err
		}

		res := tx.Where("restaurant_id = ?", id).Delete(&domain.Reservation{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete reservations: %w", res.Error)
		}
		removed = res.RowsAffected

		res = tx.Where("restaurant_id = ? AND owner_id = ?", id, ownerID).Delete(&domain.Restaurant{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete restaurant: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func findOwned(tx *gorm.DB, id, ownerID string, dest *domain.Restaurant) error {
	err := tx.Where("restaurant_id = ? AND owner_id = ?", id, ownerID).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to find restaurant: %w", err)
	}
	return nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

func clampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
