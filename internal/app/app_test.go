package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/question"
)

func TestOpenStoreDrivers(t *testing.T) {
	ctx := context.Background()

	for _, driver := range []string{config.DriverMemory, config.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			cfg := &config.App{
				Store:  config.Store{Driver: driver},
				SQLite: config.SQLite{Path: filepath.Join(t.TempDir(), "trivia.db")},
			}
			store, closeFn, err := OpenStore(ctx, cfg)
			require.NoError(t, err)
			defer closeFn()

			categories, err := store.ListCategories(ctx)
			require.NoError(t, err)
			assert.Equal(t, question.DefaultCategories, categories)
			assert.NoError(t, store.Ping(ctx))
		})
	}
}

func TestOpenStoreUnknownDriver(t *testing.T) {
	_, _, err := OpenStore(context.Background(), &config.App{Store: config.Store{Driver: "mongo"}})
	assert.Error(t, err)
}

func TestNewWithMemoryStore(t *testing.T) {
	cfg := &config.App{
		Name:     "trivia-api",
		Env:      "test",
		LogLevel: "error",
		HTTPAddr: "127.0.0.1:0",
		Store:    config.Store{Driver: config.DriverMemory},
		Runtime:  config.Runtime{QuestionsPerPage: 10},
	}
	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotNil(t, a.http)
	assert.Nil(t, a.warmer, "no warmer without a cache")
	assert.Nil(t, a.redis)
}
