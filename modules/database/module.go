package database

import (
	"context"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options configures the connection pool.
type Options struct {
	DSN          string
	MaxOpenConns int
	AutoMigrate  bool
	Debug        bool
	// Models are created or altered on start when AutoMigrate is set.
	Models []any
}

// Module owns the process-wide gorm connection pool.
type Module struct {
	opts   Options
	dialer gorm.Dialector
	db     *gorm.DB
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a database module backed by PostgreSQL.
func NewModule(opts Options) *Module {
	return &Module{
		opts:   opts,
		dialer: postgres.Open(opts.DSN),
	}
}

// NewModuleWithDialector creates a database module for an arbitrary gorm dialect.
func NewModuleWithDialector(dialer gorm.Dialector, opts Options) *Module {
	return &Module{
		opts:   opts,
		dialer: dialer,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "database"
}

// Start opens the pool and, when enabled, migrates the registered models.
func (m *Module) Start(_ context.Context) error {
	logLevel := logger.Silent
	if m.opts.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(m.dialer, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	if m.opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(m.opts.MaxOpenConns)
	}

	if m.opts.AutoMigrate && len(m.opts.Models) > 0 {
		if err := db.AutoMigrate(m.opts.Models...); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	m.db = db
	log.Printf("[database] Module started (dialect: %s, auto-migrate: %t)", db.Dialector.Name(), m.opts.AutoMigrate)
	return nil
}

// Stop closes the pool.
func (m *Module) Stop(_ context.Context) error {
	if m.db == nil {
		return nil
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	m.db = nil
	log.Println("[database] Module stopped")
	return nil
}

// DB returns the connection pool. It is nil until Start succeeds.
func (m *Module) DB() *gorm.DB {
	return m.db
}

// Health pings the database.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	stats := sqlDB.Stats()
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"dialect":          m.db.Dialector.Name(),
			"open_connections": stats.OpenConnections,
			"in_use":           stats.InUse,
		},
	}
}
