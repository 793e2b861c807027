package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/marketplace-services/config"
	"github.com/example/marketplace-services/logging"
	"github.com/example/marketplace-services/modules/database"
	"github.com/example/marketplace-services/modules/userdetails"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Products Service ===")

	cfg, err := config.Load(config.ProductsService)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, "products-service")
	routeLog := logging.NewRouteLogger(logger)

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register modules with the framework
	// mono starts them in dependency order
	modules := newModules(
		cfg,
		database.NewModule(databaseOptions(cfg)),
		userdetails.NewClient(cfg.UserDetailsURL, cfg.UserDetailsTimeout),
		routeLog,
	)
	for _, m := range modules {
		if err := app.Register(m); err != nil {
			log.Fatalf("Failed to register %s module: %v", m.Name(), err)
		}
	}

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg config.Config) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost%s):", cfg.Addr())
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  GET    /api/v1/products              - List products (search, category, offset, limit)")
	log.Println("  GET    /api/v1/products/:id          - Get a product")
	log.Println("  GET    /api/v1/products/vendor/:id   - List a vendor's products")
	log.Println("  POST   /api/v1/products/bulk         - Get products by ids")
	log.Println("  PUT    /api/v1/products/quantity/:id - Adjust stock")
	log.Println("  GET    /api/v1/reviews/:productId    - List a product's reviews")
	log.Println("  GET    /health                       - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  POST   /api/v1/products              - Create a product")
	log.Println("  PUT    /api/v1/products/:id          - Update your product")
	log.Println("  DELETE /api/v1/products/:id          - Delete your product")
	log.Println("  POST   /api/v1/reviews/:productId    - Review a product")
	log.Println("  DELETE /api/v1/reviews/:reviewId     - Delete your review")
	log.Println("")
	log.Printf("User details: %s/userDetails/bulk", cfg.UserDetailsURL)
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
