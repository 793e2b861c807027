package database

import (
	"context"
	"testing"

	"github.com/example/marketplace-services/domain/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

func TestModule_Lifecycle(t *testing.T) {
	m := NewModuleWithDialector(sqlite.Open(":memory:"), Options{
		AutoMigrate:  true,
		MaxOpenConns: 1,
		Models:       []any{&product.Product{}},
	})
	ctx := context.Background()

	assert.Equal(t, "database", m.Name())
	assert.Nil(t, m.DB())

	health := m.Health(ctx)
	assert.False(t, health.Healthy)

	require.NoError(t, m.Start(ctx))
	require.NotNil(t, m.DB())
	assert.True(t, m.DB().Migrator().HasTable(&product.Product{}))

	health = m.Health(ctx)
	assert.True(t, health.Healthy)
	assert.Equal(t, "sqlite", health.Details["dialect"])

	require.NoError(t, m.Stop(ctx))
	assert.Nil(t, m.DB())
	assert.False(t, m.Health(ctx).Healthy)
	assert.NoError(t, m.Stop(ctx), "stopping twice is a no-op")
}

func TestModule_SkipsMigrationWhenDisabled(t *testing.T) {
	m := NewModuleWithDialector(sqlite.Open(":memory:"), Options{
		MaxOpenConns: 1,
		Models:       []any{&product.Product{}},
	})
	ctx := context.Background()

	require.NoError(t, m.Start(ctx))
	defer m.Stop(ctx)

	assert.False(t, m.DB().Migrator().HasTable(&product.Product{}))
}
