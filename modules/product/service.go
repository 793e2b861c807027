package product

import (
	"context"
	"log"
	"time"

	domain "github.com/example/marketplace-services/domain/product"
	"github.com/example/marketplace-services/events"
	"github.com/example/marketplace-services/modules/userdetails"
	"github.com/go-monolith/mono"
)

// Store is the persistence port used by Service.
type Store interface {
	List(ctx context.Context, filter domain.ListFilter) ([]domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	FindByOwner(ctx context.Context, ownerID string) ([]domain.Product, error)
	FindByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, p *domain.Product) error
	AdjustQuantity(ctx context.Context, id int64, delta int) (*domain.Product, error)
	UpdateOwned(ctx context.Context, id int64, ownerID string, in domain.UpdateInput) (*domain.Product, error)
	DeleteOwned(ctx context.Context, id int64, ownerID string) (*domain.Product, error)
}

// Service implements product use cases. Reads are decorated with owner profiles.
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

// List returns a decorated page of products.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) ([]domain.Product, error) {
	products, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, products), nil
}

// Get returns a decorated product.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	decorated := s.decorate(ctx, []domain.Product{*p})[0]
	return &decorated, nil
}

// ListByOwner returns the decorated products of a vendor.
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]domain.Product, error) {
	products, err := s.store.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, products), nil
}

// BulkGet returns the decorated products for a set of ids.
func (s *Service) BulkGet(ctx context.Context, ids []int64) ([]domain.Product, error) {
	products, err := s.store.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, products), nil
}

// Exists reports whether the product is stored.
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	return s.store.Exists(ctx, id)
}

// Create stores a product owned by ownerID.
func (s *Service) Create(ctx context.Context, ownerID string, in domain.CreateInput) (*domain.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	p := &domain.Product{
		Name:        in.Name,
		Category:    in.Category,
		Price:       in.Price,
		Quantity:    in.Quantity,
		OwnerID:     ownerID,
		Description: in.Description,
		PhotoURL:    in.PhotoURL,
	}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// AdjustQuantity applies a signed stock delta.
func (s *Service) AdjustQuantity(ctx context.Context, id int64, delta int) (*domain.Product, error) {
	return s.store.AdjustQuantity(ctx, id, delta)
}

// Update applies a partial update to a product owned by ownerID.
func (s *Service) Update(ctx context.Context, id int64, ownerID string, in domain.UpdateInput) (*domain.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.store.UpdateOwned(ctx, id, ownerID, in)
}

// Delete removes a product owned by ownerID and announces it.
func (s *Service) Delete(ctx context.Context, id int64, ownerID string) (*domain.Product, error) {
	deleted, err := s.store.DeleteOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if s.eventBus != nil {
		event := events.ProductDeletedEvent{
			ProductID: deleted.ID,
			OwnerID:   deleted.OwnerID,
			DeletedAt: time.Now(),
		}
		if err := events.ProductDeletedV1.Publish(s.eventBus, event, nil); err != nil {
			log.Printf("[product] Warning: failed to publish ProductDeleted event for product %d: %v", deleted.ID, err)
		}
	}
	return deleted, nil
}

func (s *Service) decorate(ctx context.Context, products []domain.Product) []domain.Product {
	return userdetails.Decorate(ctx, s.decorator, products, (*domain.Product).OwnerKey, (*domain.Product).AttachUserDetails)
}
