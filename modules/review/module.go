package review

import (
	"context"
	"fmt"
	"log"

	"github.com/example/marketplace-services/events"
	"github.com/example/marketplace-services/modules/database"
	"github.com/example/marketplace-services/modules/product"
	"github.com/example/marketplace-services/modules/restaurant"
	"github.com/example/marketplace-services/modules/userdetails"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// Module provides reviews for the subjects hosted by this process.
// A products service enables product reviews, a restaurants service
// enables restaurant reviews.
type Module struct {
	database    *database.Module
	decorator   *userdetails.Decorator
	products    *product.Module
	restaurants *restaurant.Module

	productReviews    *ProductReviews
	restaurantReviews *RestaurantReviews
}

var _ mono.Module = (*Module)(nil)
var _ mono.DependentModule = (*Module)(nil)
var _ mono.EventConsumerModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// Option enables a kind of review.
type Option func(*Module)

// WithProductReviews enables reviews keyed by product id.
func WithProductReviews(products *product.Module) Option {
	return func(m *Module) {
		m.products = products
	}
}

// WithRestaurantReviews enables reviews keyed by restaurant id.
func WithRestaurantReviews(restaurants *restaurant.Module) Option {
	return func(m *Module) {
		m.restaurants = restaurants
	}
}

// NewModule creates a review module on top of the shared database module.
func NewModule(db *database.Module, decorator *userdetails.Decorator, opts ...Option) *Module {
	m := &Module{
		database:  db,
		decorator: decorator,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the module name.
func (m *Module) Name() string {
	return "review"
}

// Dependencies returns the database plus the module of every enabled review kind.
func (m *Module) Dependencies() []string {
	deps := []string{"database"}
	if m.products != nil {
		deps = append(deps, m.products.Name())
	}
	if m.restaurants != nil {
		deps = append(deps, m.restaurants.Name())
	}
	return deps
}

// SetDependencyServiceContainer is a no-op; dependencies are held directly.
func (m *Module) SetDependencyServiceContainer(_ string, _ mono.ServiceContainer) {}

// Start builds the review services for the enabled kinds.
func (m *Module) Start(_ context.Context) error {
	if m.database == nil || m.database.DB() == nil {
		return fmt.Errorf("database dependency not started")
	}
	db := m.database.DB()

	if m.products != nil {
		if m.products.Service() == nil {
			return fmt.Errorf("product module must start before review module")
		}
		m.productReviews = NewProductReviewService(
			NewProductReviewRepository(db),
			m.products.Service().Exists,
			m.decorator,
		)
	}

	if m.restaurants != nil {
		if m.restaurants.Service() == nil {
			return fmt.Errorf("restaurant module must start before review module")
		}
		m.restaurantReviews = NewRestaurantReviewService(
			NewRestaurantReviewRepository(db),
			m.restaurants.Service().Exists,
			m.decorator,
		)
	}

	log.Printf("[review] Module started (product reviews: %t, restaurant reviews: %t)",
		m.productReviews != nil, m.restaurantReviews != nil)
	return nil
}

// Stop shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[review] Module stopped")
	return nil
}

// ProductReviews returns the product review service, or nil when disabled.
func (m *Module) ProductReviews() *ProductReviews {
	return m.productReviews
}

// RestaurantReviews returns the restaurant review service, or nil when disabled.
func (m *Module) RestaurantReviews() *RestaurantReviews {
	return m.restaurantReviews
}

// RegisterEventConsumers subscribes to deletions of reviewed subjects.
func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if m.products != nil {
		if err := helper.RegisterTypedEventConsumer(registry, events.ProductDeletedV1, m.handleProductDeleted, m); err != nil {
			return fmt.Errorf("failed to register ProductDeleted consumer: %w", err)
		}
	}
	if m.restaurants != nil {
		if err := helper.RegisterTypedEventConsumer(registry, events.RestaurantDeletedV1, m.handleRestaurantDeleted, m); err != nil {
			return fmt.Errorf("failed to register RestaurantDeleted consumer: %w", err)
		}
	}
	return nil
}

func (m *Module) handleProductDeleted(ctx context.Context, event events.ProductDeletedEvent, _ *mono.Msg) error {
	if m.productReviews == nil {
		return nil
	}
	removed, err := m.productReviews.RemoveForSubject(ctx, event.ProductID)
	if err != nil {
		return fmt.Errorf("failed to remove reviews of product %d: %w", event.ProductID, err)
	}
	log.Printf("[review] Removed %d reviews of deleted product %d", removed, event.ProductID)
	return nil
}

func (m *Module) handleRestaurantDeleted(ctx context.Context, event events.RestaurantDeletedEvent, _ *mono.Msg) error {
	if m.restaurantReviews == nil {
		return nil
	}
	removed, err := m.restaurantReviews.RemoveForSubject(ctx, event.RestaurantID)
	if err != nil {
		return fmt.Errorf("failed to remove reviews of restaurant %s: %w", event.RestaurantID, err)
	}
	log.Printf("[review] Removed %d reviews of deleted restaurant %s", removed, event.RestaurantID)
	return nil
}

// Health reports whether every enabled review kind is ready.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	enabled := m.products != nil || m.restaurants != nil
	started := (m.products == nil || m.productReviews != nil) &&
		(m.restaurants == nil || m.restaurantReviews != nil)

	return mono.HealthStatus{
		Healthy: enabled && started,
		Message: "operational",
		Details: map[string]any{
			"product_reviews":    m.productReviews != nil,
			"restaurant_reviews": m.restaurantReviews != nil,
		},
	}
}
