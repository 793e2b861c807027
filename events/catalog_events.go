package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// ProductDeletedEvent is emitted after an owner deletes a product.
type ProductDeletedEvent struct {
	ProductID int64     `json:"product_id"`
	OwnerID   string    `json:"owner_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

// ProductDeletedV1 is the typed event definition for product deletion.
// Subject: events.product.v1.product-deleted
var ProductDeletedV1 = helper.EventDefinition[ProductDeletedEvent](
	"product", "ProductDeleted", "v1",
)

// RestaurantDeletedEvent is emitted after an owner deletes a restaurant.
type RestaurantDeletedEvent struct {
	RestaurantID        string    `json:"restaurant_id"`
	OwnerID             string    `json:"owner_id"`
	ReservationsRemoved int64     `json:"reservations_removed"`
	DeletedAt           time.Time `json:"deleted_at"`
}

// RestaurantDeletedV1 is the typed event definition for restaurant deletion.
// Subject: events.restaurant.v1.restaurant-deleted
var RestaurantDeletedV1 = helper.EventDefinition[RestaurantDeletedEvent](
	"restaurant", "RestaurantDeleted", "v1",
)
