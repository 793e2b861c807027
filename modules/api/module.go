package api

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/example/marketplace-services/logging"
	"github.com/example/marketplace-services/modules/auth"
	productmodule "github.com/example/marketplace-services/modules/product"
	restaurantmodule "github.com/example/marketplace-services/modules/restaurant"
	reviewmodule "github.com/example/marketplace-services/modules/review"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// Config configures the HTTP server.
type Config struct {
	AppName        string
	Addr           string
	AllowedOrigins string
	RouteLog       logging.RouteLogger
}

// APIModule is the HTTP API module.
type APIModule struct {
	cfg           Config
	app           *fiber.App
	authContainer mono.ServiceContainer
	authAdapter   auth.AuthPort

	products    *productmodule.Module
	restaurants *restaurantmodule.Module
	reviews     *reviewmodule.Module
	checked     []mono.HealthCheckableModule
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// Option mounts a resource on the API.
type Option func(*APIModule)

// WithProducts mounts /api/v1/products.
func WithProducts(m *productmodule.Module) Option {
	return func(a *APIModule) {
		a.products = m
		a.checked = append(a.checked, m)
	}
}

// WithRestaurants mounts /api/v1/restaurants.
func WithRestaurants(m *restaurantmodule.Module) Option {
	return func(a *APIModule) {
		a.restaurants = m
		a.checked = append(a.checked, m)
	}
}

// WithReviews mounts /api/v1/reviews for whichever review kind the module enables.
func WithReviews(m *reviewmodule.Module) Option {
	return func(a *APIModule) {
		a.reviews = m
		a.checked = append(a.checked, m)
	}
}

// WithHealthChecks adds modules to the /health report.
func WithHealthChecks(mods ...mono.HealthCheckableModule) Option {
	return func(a *APIModule) {
		a.checked = append(a.checked, mods...)
	}
}

// NewModule creates a new APIModule.
func NewModule(cfg Config, opts ...Option) *APIModule {
	m := &APIModule{cfg: cfg}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
// Mounted resource modules must have started before routes are resolved.
func (m *APIModule) Dependencies() []string {
	deps := []string{"auth"}
	if m.products != nil {
		deps = append(deps, m.products.Name())
	}
	if m.restaurants != nil {
		deps = append(deps, m.restaurants.Name())
	}
	if m.reviews != nil {
		deps = append(deps, m.reviews.Name())
	}
	return deps
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authContainer = container
		m.authAdapter = auth.NewAuthAdapter(container)
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.authContainer == nil {
		return fmt.Errorf("auth dependency not set")
	}

	routes, err := m.resolveRoutes()
	if err != nil {
		return err
	}
	m.app = newApp(m.cfg, m.authAdapter, routes, m.healthReport)

	// Start server in goroutine with startup error detection
	errCh := make(chan error, 1)
	go func() {
		if err := m.app.Listen(m.cfg.Addr); err != nil {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed to start: %w", err)
	case <-time.After(100 * time.Millisecond):
	}

	log.Printf("[api] HTTP server started on %s", m.cfg.Addr)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(ctx context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.ShutdownWithContext(ctx)
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"addr": m.cfg.Addr,
		},
	}
}

// resolveRoutes collects the handlers of every mounted resource. Services are
// only available once their modules have started.
func (m *APIModule) resolveRoutes() (Routes, error) {
	var routes Routes

	if m.products != nil {
		svc := m.products.Service()
		if svc == nil {
			return Routes{}, fmt.Errorf("product module not started")
		}
		routes.Products = NewProductHandlers(svc, m.cfg.RouteLog)
	}

	if m.restaurants != nil {
		svc := m.restaurants.Service()
		if svc == nil {
			return Routes{}, fmt.Errorf("restaurant module not started")
		}
		routes.Restaurants = NewRestaurantHandlers(svc, m.cfg.RouteLog)
	}

	if m.reviews != nil {
		if svc := m.reviews.ProductReviews(); svc != nil {
			routes.Reviews = NewProductReviewHandlers(svc, m.cfg.RouteLog)
		} else if svc := m.reviews.RestaurantReviews(); svc != nil {
			routes.Reviews = NewRestaurantReviewHandlers(svc, m.cfg.RouteLog)
		} else {
			return Routes{}, fmt.Errorf("review module not started")
		}
	}

	return routes, nil
}

func (m *APIModule) healthReport(ctx context.Context) map[string]mono.HealthStatus {
	report := map[string]mono.HealthStatus{
		m.Name(): m.Health(ctx),
	}
	for _, mod := range m.checked {
		if named, ok := mod.(mono.Module); ok {
			report[named.Name()] = mod.Health(ctx)
		}
	}
	return report
}

// routeRegistrar is implemented by every resource's handler set.
type routeRegistrar interface {
	register(router fiber.Router, requireAuth fiber.Handler)
}

// Routes lists the resources served by one process. Nil entries are not mounted.
type Routes struct {
	Products    *ProductHandlers
	Restaurants *RestaurantHandlers
	Reviews     routeRegistrar
}

// newApp builds the Fiber application: middleware, resource routes, health
// endpoint and the plain-text 404 fallback.
func newApp(cfg Config, authPort auth.AuthPort, routes Routes, health func(context.Context) map[string]mono.HealthStatus) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	// Add middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} ${locals:requestid}\n",
	}))
	allowedOrigins := cfg.AllowedOrigins
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		report := health(c.UserContext())
		status := fiber.StatusOK
		for _, h := range report {
			if !h.Healthy {
				status = fiber.StatusServiceUnavailable
				break
			}
		}
		return c.Status(status).JSON(report)
	})

	requireAuth := AuthMiddleware(authPort)
	v1 := app.Group("/api/v1")

	if routes.Products != nil {
		routes.Products.register(v1.Group("/products"), requireAuth)
	}
	if routes.Restaurants != nil {
		routes.Restaurants.register(v1.Group("/restaurants"), requireAuth)
	}
	if routes.Reviews != nil {
		routes.Reviews.register(v1.Group("/reviews"), requireAuth)
	}

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).SendString("404 Not Found")
	})

	return app
}
