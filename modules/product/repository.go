package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "github.com/example/marketplace-services/domain/product"
	"gorm.io/gorm"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Repository handles product persistence using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns products matching the filter ordered by id.
// The search term applies to name OR description, and the category (when
// set) is required in addition to that.
func (r *Repository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Product, error) {
	query := r.db.WithContext(ctx).Model(&domain.Product{})

	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		query = query.Where(
			r.db.Where(`LOWER(name) LIKE LOWER(?) ESCAPE '\'`, pattern).
				Or(`LOWER(description) LIKE LOWER(?) ESCAPE '\'`, pattern),
		)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var products []domain.Product
	err := query.
		Order("id ASC").
		Offset(clampOffset(filter.Offset)).
		Limit(clampLimit(filter.Limit)).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// FindByID retrieves a product by id.
func (r *Repository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &p, nil
}

// FindByOwner returns every product owned by ownerID.
func (r *Repository) FindByOwner(ctx context.Context, ownerID string) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products by owner: %w", err)
	}
	return products, nil
}

// FindByIDs returns the products whose ids are in the set. Unknown ids are skipped.
func (r *Repository) FindByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	products := []domain.Product{}
	if len(ids) == 0 {
		return products, nil
	}
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products by ids: %w", err)
	}
	return products, nil
}

// Exists reports whether a product with the id is stored.
func (r *Repository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check product: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new product and fills its generated id.
func (r *Repository) Create(ctx context.Context, p *domain.Product) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// AdjustQuantity adds delta to the stored quantity in a single statement.
// The update only applies when the result stays non-negative.
func (r *Repository) AdjustQuantity(ctx context.Context, id int64, delta int) (*domain.Product, error) {
	var updated domain.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.Product{}).
			Where("id = ? AND quantity + ? >= 0", id, delta).
			Update("quantity", gorm.Expr("quantity + ?", delta))
		if result.Error != nil {
			return fmt.Errorf("failed to update quantity: %w", result.Error)
		}

		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&domain.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check product: %w", err)
			}
			if count == 0 {
				return domain.ErrNotFound
			}
			return domain.ErrInsufficientStock
		}

		return tx.First(&updated, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateOwned applies the non-nil fields of in to the product with id owned by ownerID.
func (r *Repository) UpdateOwned(ctx context.Context, id int64, ownerID string, in domain.UpdateInput) (*domain.Product, error) {
	var updated domain.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND owner_id = ?", id, ownerID).First(&updated).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("failed to find product: %w", err)
		}

		cols := in.Columns()
		if len(cols) == 0 {
			return nil
		}
		if err := tx.Model(&updated).Updates(cols).Error; err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		return tx.First(&updated, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteOwned removes the product with id owned by ownerID and returns the removed row.
func (r *Repository) DeleteOwned(ctx context.Context, id int64, ownerID string) (*domain.Product, error) {
	var deleted domain.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND owner_id = ?", id, ownerID).First(&deleted).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("failed to find product: %w", err)
		}

		result := tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&domain.Product{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete product: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

// likeEscaper makes a search term match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
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
