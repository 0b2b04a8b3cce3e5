package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	"hotel-reservation-backend/config"
	"hotel-reservation-backend/internal/model"
)

func TestInit_SQLite(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          "file:db_init_test?mode=memory&cache=shared",
		MaxOpenConns: 1,
		LogLevel:     "silent",
	}

	gormDB, err := Init(cfg, zap.NewNop())
	require.NoError(t, err)
	sqlDB, _ := gormDB.DB()
	defer sqlDB.Close()

	assert.True(t, gormDB.Migrator().HasTable(&model.Room{}))
	assert.True(t, gormDB.Migrator().HasTable(&model.PushSubscription{}))

	// Migrations are repeatable.
	assert.NoError(t, Migrate(gormDB.WithContext(context.Background())))
}

func TestInit_UnsupportedDriver(t *testing.T) {
	_, err := Init(&config.DatabaseConfig{Driver: "oracle"}, zap.NewNop())
	assert.Error(t, err)
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, logLevel("silent"))
	assert.Equal(t, gormlogger.Info, logLevel("info"))
	assert.Equal(t, gormlogger.Warn, logLevel(""))
}
