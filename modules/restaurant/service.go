package restaurant

import (
	"context"
	"log"
	"time"

	domain "github.com/example/marketplace-services/domain/restaurant"
	"github.com/example/marketplace-services/events"
	"github.com/example/marketplace-services/modules/userdetails"
	"github.com/go-monolith/mono"
)

// Store is the persistence port used by Service.
type Store interface {
	List(ctx context.Context, filter domain.ListFilter) ([]domain.Restaurant, error)
	FindByOwner(ctx context.Context, ownerID string) ([]domain.Restaurant, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, r *domain.Restaurant) error
	UpdateOwned(ctx context.Context, id, ownerID string, in domain.UpdateInput) (*domain.Restaurant, error)
	DeleteOwned(ctx context.Context, id, ownerID string) (int64, error)
}

// Service implements restaurant use cases.
type Service struct {
	store     Store
	decorator *userdetails.Decorator
	eventBus  mono.EventBus
}

// NewService creates a new Service. eventBus may be nil.
func NewService(store Store, decorator *userdetails.Decorator, eventBus mono.EventBus) *Service {
	return &Service{
		store:     store,
		decorator: decorator,
		eventBus:  eventBus,
	}
}

// List returns a decorated page of restaurants.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) ([]domain.Restaurant, error) {
	restaurants, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, restaurants), nil
}

// ListByOwner returns the caller's restaurants, decorated.
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]domain.Restaurant, error) {
	restaurants, err := s.store.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, restaurants), nil
}

// Exists reports whether the restaurant is stored.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	return s.store.Exists(ctx, id)
}

// Create stores a restaurant owned by ownerID.
func (s *Service) Create(ctx context.Context, ownerID string, in domain.CreateInput) (*domain.Restaurant, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	rest := &domain.Restaurant{
		OwnerID:     ownerID,
		Name:        in.Name,
		City:        in.City,
		Address:     in.Address,
		PhoneNumber: in.PhoneNumber,
	}
	if err := s.store.Create(ctx, rest); err != nil {
		return nil, err
	}
	return rest, nil
}

// Update applies a partial update to a restaurant owned by ownerID.
func (s *Service) Update(ctx context.Context, id, ownerID string, in domain.UpdateInput) (*domain.Restaurant, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.store.UpdateOwned(ctx, id, ownerID, in)
}

// Delete removes a restaurant owned by ownerID along with its reservations.
func (s *Service) Delete(ctx context.Context, id, ownerID string) error {
	removed, err := s.store.DeleteOwned(ctx, id, ownerID)
	if err != nil {
		return err
	}

	if s.eventBus != nil {
		event := events.RestaurantDeletedEvent{
			RestaurantID:        id,
			OwnerID:             ownerID,
			ReservationsRemoved: removed,
			DeletedAt:           time.Now(),
		}
		if err := events.RestaurantDeletedV1.Publish(s.eventBus, event, nil); err != nil {
			log.Printf("[restaurant] Warning: failed to publish RestaurantDeleted event for restaurant %s: %v", id, err)
		}
	}
	return nil
}

func (s *Service) decorate(ctx context.Context, restaurants []domain.Restaurant) []domain.Restaurant {
	return userdetails.Decorate(ctx, s.decorator, restaurants, (*domain.Restaurant).OwnerKey, (*domain.Restaurant).AttachUserDetails)
}
