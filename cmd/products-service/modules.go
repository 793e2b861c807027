package main

import (
	"github.com/example/marketplace-services/config"
	productdomain "github.com/example/marketplace-services/domain/product"
	reviewdomain "github.com/example/marketplace-services/domain/review"
	"github.com/example/marketplace-services/logging"
	"github.com/example/marketplace-services/modules/api"
	"github.com/example/marketplace-services/modules/auth"
	"github.com/example/marketplace-services/modules/database"
	"github.com/example/marketplace-services/modules/product"
	"github.com/example/marketplace-services/modules/review"
	"github.com/example/marketplace-services/modules/userdetails"
	"github.com/go-monolith/mono"
)

// models are the tables owned by the products service.
var models = []any{&productdomain.Product{}, &reviewdomain.ProductReview{}}

func databaseOptions(cfg config.Config) database.Options {
	return database.Options{
		DSN:          cfg.DatabaseURL,
		MaxOpenConns: cfg.DBMaxOpenConns,
		AutoMigrate:  cfg.DBAutoMigrate,
		Debug:        cfg.DBDebugQueries,
		Models:       models,
	}
}

// newModules builds the products service. Start order comes from each
// module's Dependencies, not from the order of the returned slice.
func newModules(cfg config.Config, db *database.Module, fetcher userdetails.Fetcher, routeLog logging.RouteLogger) []mono.Module {
	decorator := userdetails.NewDecorator(fetcher, routeLog)

	authModule := auth.NewModule(auth.JWTConfig{
		SecretKey: cfg.JWTSecretKey,
		Issuer:    cfg.JWTIssuer,
	})
	products := product.NewModule(db, decorator)
	reviews := review.NewModule(db, decorator, review.WithProductReviews(products))
	httpAPI := api.NewModule(
		api.Config{
			AppName:        "products-service",
			Addr:           cfg.Addr(),
			AllowedOrigins: cfg.CORSAllowedOrigins,
			RouteLog:       routeLog,
		},
		api.WithProducts(products),
		api.WithReviews(reviews),
		api.WithHealthChecks(db, authModule),
	)

	return []mono.Module{db, authModule, products, reviews, httpAPI}
}
