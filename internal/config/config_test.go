package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "trivia-api", cfg.Name)
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 10, cfg.Runtime.QuestionsPerPage)
	assert.Equal(t, 20*time.Second, cfg.GracefulShutdownTimeout)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, []string{"Content-Type", "Authorization", "true"}, cfg.CORS.AllowedHeaders)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("STORE_DRIVER", DriverSQLite)
	t.Setenv("SQLITE_PATH", "/tmp/trivia-test.db")
	t.Setenv("QUESTIONS_PER_PAGE", "5")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CATEGORY_CACHE_TTL", "30s")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "/tmp/trivia-test.db", cfg.SQLite.Path)
	assert.Equal(t, 5, cfg.Runtime.QuestionsPerPage)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 30*time.Second, cfg.Runtime.CategoryCacheTTL)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := Load(context.Background())
	assert.ErrorContains(t, err, "unknown STORE_DRIVER")
}

func TestLoadRejectsNonPositivePageSize(t *testing.T) {
	t.Setenv("QUESTIONS_PER_PAGE", "0")

	_, err := Load(context.Background())
	assert.ErrorContains(t, err, "QUESTIONS_PER_PAGE")
}

func TestPostgresConnString(t *testing.T) {
	p := Postgres{Host: "db", Port: 5433, User: "u", Password: "p", Database: "trivia", SSLMode: "require", MaxConns: 4}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=trivia sslmode=require pool_max_conns=4", p.ConnString())
}
