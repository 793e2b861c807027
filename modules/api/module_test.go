package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	productdomain "github.com/example/marketplace-services/domain/product"
	restaurantdomain "github.com/example/marketplace-services/domain/restaurant"
	reviewdomain "github.com/example/marketplace-services/domain/review"
	"github.com/example/marketplace-services/domain/user"
	"github.com/example/marketplace-services/logging"
	"github.com/example/marketplace-services/modules/database"
	productmodule "github.com/example/marketplace-services/modules/product"
	restaurantmodule "github.com/example/marketplace-services/modules/restaurant"
	reviewmodule "github.com/example/marketplace-services/modules/review"
	"github.com/example/marketplace-services/modules/userdetails"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

// profileFetcher answers every lookup with a profile per requested id.
type profileFetcher struct {
	calls int
}

func (f *profileFetcher) FetchBulk(_ context.Context, ids []string) ([]user.Profile, error) {
	f.calls++
	profiles := make([]user.Profile, 0, len(ids))
	for _, id := range ids {
		profiles = append(profiles, user.NewProfile(id, map[string]any{"name": "name of " + id}))
	}
	return profiles, nil
}

func newTestDatabase(t *testing.T, models ...any) *database.Module {
	t.Helper()
	ctx := context.Background()

	db := database.NewModuleWithDialector(sqlite.Open(":memory:"), database.Options{
		AutoMigrate:  true,
		MaxOpenConns: 1,
		Models:       models,
	})
	require.NoError(t, db.Start(ctx))
	t.Cleanup(func() { db.Stop(ctx) })
	return db
}

// newProductsApp serves products and product reviews the way the products
// service does, with a fake token validator that accepts "Bearer <user id>".
func newProductsApp(t *testing.T) (*fiber.App, *profileFetcher) {
	t.Helper()
	ctx := context.Background()

	db := newTestDatabase(t, &productdomain.Product{}, &reviewdomain.ProductReview{})
	fetcher := &profileFetcher{}
	decorator := userdetails.NewDecorator(fetcher, logging.Nop())

	products := productmodule.NewModule(db, decorator)
	reviews := reviewmodule.NewModule(db, decorator, reviewmodule.WithProductReviews(products))
	require.NoError(t, products.Start(ctx))
	require.NoError(t, reviews.Start(ctx))

	routes := Routes{
		Products: NewProductHandlers(products.Service(), logging.Nop()),
		Reviews:  NewProductReviewHandlers(reviews.ProductReviews(), logging.Nop()),
	}
	return newApp(Config{}, tokenAuth(), routes, noHealth), fetcher
}

// newRestaurantsApp serves restaurants and restaurant reviews.
func newRestaurantsApp(t *testing.T) *fiber.App {
	t.Helper()
	ctx := context.Background()

	db := newTestDatabase(t,
		&restaurantdomain.Restaurant{},
		&restaurantdomain.Reservation{},
		&reviewdomain.RestaurantReview{},
	)
	decorator := userdetails.NewDecorator(&profileFetcher{}, logging.Nop())

	restaurants := restaurantmodule.NewModule(db, decorator)
	reviews := reviewmodule.NewModule(db, decorator, reviewmodule.WithRestaurantReviews(restaurants))
	require.NoError(t, restaurants.Start(ctx))
	require.NoError(t, reviews.Start(ctx))

	routes := Routes{
		Restaurants: NewRestaurantHandlers(restaurants.Service(), logging.Nop()),
		Reviews:     NewRestaurantReviewHandlers(reviews.RestaurantReviews(), logging.Nop()),
	}
	return newApp(Config{}, tokenAuth(), routes, noHealth)
}

func noHealth(context.Context) map[string]mono.HealthStatus {
	return map[string]mono.HealthStatus{}
}

// call sends a JSON request. An empty userID sends no Authorization header.
func call(t *testing.T, app *fiber.App, method, path, userID string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+userID)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func TestApp_UnknownRouteIsPlainTextNotFound(t *testing.T) {
	app := newApp(Config{}, tokenAuth(), Routes{}, noHealth)

	for _, path := range []string{"/", "/api/v1/products", "/nope/at/all"} {
		status, body := call(t, app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusNotFound, status, path)
		assert.Equal(t, "404 Not Found", string(body), path)
	}
}

func TestApp_HealthReportsUnhealthyModules(t *testing.T) {
	healthy := func(context.Context) map[string]mono.HealthStatus {
		return map[string]mono.HealthStatus{"database": {Healthy: true, Message: "operational"}}
	}
	status, body := call(t, newApp(Config{}, tokenAuth(), Routes{}, healthy), http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"database"`)

	failing := func(context.Context) map[string]mono.HealthStatus {
		return map[string]mono.HealthStatus{
			"database": {Healthy: true},
			"product":  {Healthy: false, Message: "service not initialized"},
		}
	}
	status, body = call(t, newApp(Config{}, tokenAuth(), Routes{}, failing), http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Contains(t, string(body), "service not initialized")
}

func TestAPIModule_StartRequiresAuthDependency(t *testing.T) {
	m := NewModule(Config{Addr: ":0"})

	assert.Equal(t, "api", m.Name())
	assert.Equal(t, []string{"auth"}, m.Dependencies())
	assert.Error(t, m.Start(context.Background()))
	assert.NoError(t, m.Stop(context.Background()))
	assert.False(t, m.Health(context.Background()).Healthy)
}

func TestAPIModule_ResolveRoutesRequiresStartedModules(t *testing.T) {
	db := newTestDatabase(t, &productdomain.Product{})
	products := productmodule.NewModule(db, nil)

	m := NewModule(Config{}, WithProducts(products))
	_, err := m.resolveRoutes()
	assert.Error(t, err)

	require.NoError(t, products.Start(context.Background()))
	routes, err := m.resolveRoutes()
	require.NoError(t, err)
	assert.Equal(t, []string{"auth", "product"}, m.Dependencies())
	assert.NotNil(t, routes.Products)
	assert.Nil(t, routes.Restaurants)
	assert.Nil(t, routes.Reviews)

	report := m.healthReport(context.Background())
	assert.Contains(t, report, "api")
	assert.True(t, report["product"].Healthy)
}
