package api

import (
	"context"

	"github.com/example/marketplace-services/domain/product"
	"github.com/example/marketplace-services/domain/restaurant"
	"github.com/example/marketplace-services/domain/review"
)

// ProductService is the product port used by the HTTP handlers.
type ProductService interface {
	List(ctx context.Context, filter product.ListFilter) ([]product.Product, error)
	Get(ctx context.Context, id int64) (*product.Product, error)
	ListByOwner(ctx context.Context, ownerID string) ([]product.Product, error)
	BulkGet(ctx context.Context, ids []int64) ([]product.Product, error)
	Create(ctx context.Context, ownerID string, in product.CreateInput) (*product.Product, error)
	AdjustQuantity(ctx context.Context, id int64, delta int) (*product.Product, error)
	Update(ctx context.Context, id int64, ownerID string, in product.UpdateInput) (*product.Product, error)
	Delete(ctx context.Context, id int64, ownerID string) (*product.Product, error)
}

// RestaurantService is the restaurant port used by the HTTP handlers.
type RestaurantService interface {
	List(ctx context.Context, filter restaurant.ListFilter) ([]restaurant.Restaurant, error)
	ListByOwner(ctx context.Context, ownerID string) ([]restaurant.Restaurant, error)
	Create(ctx context.Context, ownerID string, in restaurant.CreateInput) (*restaurant.Restaurant, error)
	Update(ctx context.Context, id, ownerID string, in restaurant.UpdateInput) (*restaurant.Restaurant, error)
	Delete(ctx context.Context, id, ownerID string) error
}

// ReviewService is the review port for reviews of subjects identified by K.
type ReviewService[T any, K comparable] interface {
	List(ctx context.Context, subject K) ([]T, error)
	Create(ctx context.Context, userID string, subject K, in review.CreateInput) (*T, error)
	Delete(ctx context.Context, id int64, userID string) error
}

// BulkProductsRequest is the body of POST /products/bulk.
// products_ids is the field name used by older clients.
type BulkProductsRequest struct {
	ProductIDs       []int64 `json:"product_ids"`
	LegacyProductIDs []int64 `json:"products_ids"`
}

// IDs returns the requested ids, or nil when the body named none.
func (r BulkProductsRequest) IDs() []int64 {
	if r.ProductIDs != nil {
		return r.ProductIDs
	}
	return r.LegacyProductIDs
}

// QuantityUpdateRequest is the body of PUT /products/quantity/:id.
type QuantityUpdateRequest struct {
	QuantityUpdate *int `json:"quantityUpdate"`
}

// MessageResponse is returned by mutations that have no row to return.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
