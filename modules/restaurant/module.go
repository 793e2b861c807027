package restaurant

import (
	"context"
	"fmt"
	"log"

	"github.com/example/marketplace-services/events"
	"github.com/example/marketplace-services/modules/database"
	"github.com/example/marketplace-services/modules/userdetails"
	"github.com/go-monolith/mono"
)

// Module provides restaurant management.
type Module struct {
	database  *database.Module
	decorator *userdetails.Decorator
	eventBus  mono.EventBus
	service   *Service
}

var _ mono.Module = (*Module)(nil)
var _ mono.DependentModule = (*Module)(nil)
var _ mono.EventEmitterModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

func NewModule(db *database.Module, decorator *userdetails.Decorator) *Module {
	return &Module{
		database:  db,
		decorator: decorator,
	}
}

func (m *Module) Name() string {
	return "restaurant"
}

func (m *Module) Dependencies() []string {
	return []string{"database"}
}

func (m *Module) SetDependencyServiceContainer(_ string, _ mono.ServiceContainer) {}

func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
	if m.service != nil {
		m.service.eventBus = bus
	}
}

func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.RestaurantDeletedV1.ToBase(),
	}
}

func (m *Module) Start(_ context.Context) error {
	if m.database == nil || m.database.DB() == nil {
		return fmt.Errorf("database dependency not started")
	}

	m.service = NewService(NewRepository(m.database.DB()), m.decorator, m.eventBus)
	log.Println("[restaurant] Module started")
	return nil
}

func (m *Module) Stop(_ context.Context) error {
	log.Println("[restaurant] Module stopped")
	return nil
}

// Service returns the restaurant service. It is nil until Start succeeds.
func (m *Module) Service() *Service {
	return m.service
}

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
