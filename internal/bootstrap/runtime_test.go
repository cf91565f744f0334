package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"socialfeed/internal/cache"
	"socialfeed/internal/config"
	"socialfeed/internal/database"
	"socialfeed/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runtimeConfig(t *testing.T, redisAddr string) *config.Config {
	return &config.Config{
		Env:                      "test",
		JWTSecret:                "bootstrap-test-secret-0123456789abcdef",
		DBDriver:                 database.DriverSQLite,
		DBSQLitePath:             filepath.Join(t.TempDir(), "runtime.db"),
		DBSchemaMode:             database.SchemaModeHybrid,
		DBMaxOpenConns:           5,
		DBMaxIdleConns:           2,
		DBConnMaxLifetimeMinutes: 5,
		RedisURL:                 redisAddr,
	}
}

func cleanup(t *testing.T) {
	t.Cleanup(func() {
		_ = cache.Close()
		_ = database.Close()
	})
}

func TestInitRuntime_ConnectsDatabaseAndRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := runtimeConfig(t, mr.Addr())
	cleanup(t)

	db, r, err := InitRuntime(cfg, Options{})
	require.NoError(t, err)
	require.NotNil(t, db)
	require.NotNil(t, r)
	assert.NoError(t, r.Ping(context.Background()).Err())

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Zero(t, users, "no demo data unless requested")
}

func TestInitRuntime_SeedsEmptyDatabaseOnce(t *testing.T) {
	cfg := runtimeConfig(t, "redis://:bad@[::1")
	cleanup(t)

	db, r, err := InitRuntime(cfg, Options{SeedDemoData: true})
	require.NoError(t, err)
	assert.Nil(t, r, "an unusable REDIS_URL leaves the cache disabled")

	var first int64
	require.NoError(t, db.Model(&models.User{}).Count(&first).Error)
	assert.Positive(t, first)

	require.NoError(t, seedIfEmpty(context.Background(), cfg, db))
	var second int64
	require.NoError(t, db.Model(&models.User{}).Count(&second).Error)
	assert.Equal(t, first, second)
}

func TestInitTracing_DisabledIsNoop(t *testing.T) {
	shutdown, err := InitTracing(&config.Config{Env: "test"})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}
