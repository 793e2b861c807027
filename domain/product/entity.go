package product

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/marketplace-services/domain/user"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when no product matches the id (and owner, for mutations).
	ErrNotFound = errors.New("product not found")
	// ErrInsufficientStock is returned when a quantity change would make stock negative.
	ErrInsufficientStock = errors.New("not enough products in stock")
	// ErrInvalidInput is returned when a request body fails validation.
	ErrInvalidInput = errors.New("invalid product input")
)

// Product represents a product listed by a vendor.
type Product struct {
	ID          int64           `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Category    string          `gorm:"index" json:"category"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Quantity    int             `gorm:"not null;default:0" json:"quantity"`
	OwnerID     string          `gorm:"index;not null" json:"owner_id"`
	Description string          `json:"description"`
	PhotoURL    string          `json:"photo_url"`

	UserDetails *user.Profile `gorm:"-" json:"userDetails,omitempty"`
}

// TableName returns the table name for GORM.
func (Product) TableName() string {
	return "products"
}

// OwnerKey returns the identifier used to look up the owner's profile.
func (p *Product) OwnerKey() string {
	return p.OwnerID
}

// AttachUserDetails sets the owner's profile.
func (p *Product) AttachUserDetails(profile *user.Profile) {
	p.UserDetails = profile
}

// ListFilter narrows a product listing.
// Search matches name or description; Category, when set, must also match.
type ListFilter struct {
	Search   string
	Category string
	Offset   int
	Limit    int
}

// CreateInput is the body accepted when creating a product.
type CreateInput struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Description string          `json:"description"`
	PhotoURL    string          `json:"photo_url"`
}

// Validate checks the create body.
func (in CreateInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if in.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalidInput)
	}
	return nil
}

// UpdateInput is a partial update; nil fields keep their stored value.
type UpdateInput struct {
	Name        *string          `json:"name"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity"`
	Description *string          `json:"description"`
	PhotoURL    *string          `json:"photo_url"`
}

// Validate checks the fields that are present.
func (in UpdateInput) Validate() error {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
	}
	if in.Price != nil && in.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalidInput)
	}
	return nil
}

// Columns returns the column values to write.
func (in UpdateInput) Columns() map[string]any {
	cols := make(map[string]any)
	if in.Name != nil {
		cols["name"] = *in.Name
	}
	if in.Category != nil {
		cols["category"] = *in.Category
	}
	if in.Price != nil {
		cols["price"] = *in.Price
	}
	if in.Quantity != nil {
		cols["quantity"] = *in.Quantity
	}
	if in.Description != nil {
		cols["description"] = *in.Description
	}
	if in.PhotoURL != nil {
		cols["photo_url"] = *in.PhotoURL
	}
	return cols
}
