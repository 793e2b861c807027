package main

import (
	"github.com/example/marketplace-services/config"
	restaurantdomain "github.com/example/marketplace-services/domain/restaurant"
	reviewdomain "github.com/example/marketplace-services/domain/review"
	"github.com/example/marketplace-services/logging"
	"github.com/example/marketplace-services/modules/api"
	"github.com/example/marketplace-services/modules/auth"
	"github.com/example/marketplace-services/modules/database"
	"github.com/example/marketplace-services/modules/restaurant"
	"github.com/example/marketplace-services/modules/review"
	"github.com/example/marketplace-services/modules/userdetails"
	"github.com/go-monolith/mono"
)

var models = []any{
	&restaurantdomain.Restaurant{},
	&restaurantdomain.Reservation{},
	&reviewdomain.RestaurantReview{},
}

func databaseOptions(cfg config.Config) database.Options {
	return database.Options{
		DSN:          cfg.DatabaseURL,
		MaxOpenConns: cfg.DBMaxOpenConns,
		AutoMigrate:  cfg.DBAutoMigrate,
		Debug:        cfg.DBDebugQueries,
		Models:       models,
	}
}

// newModules builds the restaurants service. mono orders startup by Dependencies.
func newModules(cfg config.Config, db *database.Module, fetcher userdetails.Fetcher, routeLog logging.RouteLogger) []mono.Module {
	decorator := userdetails.NewDecorator(fetcher, routeLog)

	authModule := auth.NewModule(auth.JWTConfig{
		SecretKey: cfg.JWTSecretKey,
		Issuer:    cfg.JWTIssuer,
	})
	restaurants := restaurant.NewModule(db, decorator)
	reviews := review.NewModule(db, decorator, review.WithRestaurantReviews(restaurants))
	httpAPI := api.NewModule(
		api.Config{
			AppName:        "restaurants-service",
			Addr:           cfg.Addr(),
			AllowedOrigins: cfg.CORSAllowedOrigins,
			RouteLog:       routeLog,
		},
		api.WithRestaurants(restaurants),
		api.WithReviews(reviews),
		api.WithHealthChecks(db, authModule),
	)

	return []mono.Module{db, authModule, restaurants, reviews, httpAPI}
}
