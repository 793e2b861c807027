package product

import (
	"context"
	"fmt"
	"log"

	"github.com/example/marketplace-services/events"
	"github.com/example/marketplace-services/modules/database"
	"github.com/example/marketplace-services/modules/userdetails"
	"github.com/go-monolith/mono"
)

// Module provides the product catalog.
type Module struct {
	database  *database.Module
	decorator *userdetails.Decorator
	eventBus  mono.EventBus
	service   *Service
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.DependentModule = (*Module)(nil)
var _ mono.EventEmitterModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a product module on top of the shared database module.
func NewModule(db *database.Module, decorator *userdetails.Decorator) *Module {
	return &Module{
		database:  db,
		decorator: decorator,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "product"
}

// Dependencies returns the list of module dependencies.
func (m *Module) Dependencies() []string {
	return []string{"database"}
}

// SetDependencyServiceContainer is a no-op; the database module is held directly.
func (m *Module) SetDependencyServiceContainer(_ string, _ mono.ServiceContainer) {}

// SetEventBus receives the event bus used to publish ProductDeleted.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
	if m.service != nil {
		m.service.eventBus = bus
	}
}

// EmitEvents declares the events this module publishes.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.ProductDeletedV1.ToBase(),
	}
}

// Start wires the repository to the open database.
func (m *Module) Start(_ context.Context) error {
	if m.database == nil || m.database.DB() == nil {
		return fmt.Errorf("database dependency not started")
	}

	m.service = NewService(NewRepository(m.database.DB()), m.decorator, m.eventBus)
	log.Println("[product] Module started")
	return nil
}

// Stop shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[product] Module stopped")
	return nil
}

// Service returns the product service. It is nil until Start succeeds.
func (m *Module) Service() *Service {
	return m.service
}

// Health returns the health status of the module.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.service == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "service not initialized",
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
	}
}
