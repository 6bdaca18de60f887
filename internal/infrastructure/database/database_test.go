package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func TestConnectInvalidDSN(t *testing.T) {
	db, err := Connect(Config{
		DatabaseURL: "://not-a-dsn",
		MaxIdle:     1,
		MaxOpen:     1,
		MaxLifetime: time.Minute,
		LogLevel:    gormlogger.Silent,
	})
	require.Error(t, err)
	assert.Nil(t, db)
}

func TestRegisterSchemaForAutoMigrate(t *testing.T) {
	before := len(SchemaRegistry)

	type fixture struct{ ID uint }
	RegisterSchemaForAutoMigrate(fixture{})
	t.Cleanup(func() { SchemaRegistry = SchemaRegistry[:before] })

	require.Len(t, SchemaRegistry, before+1)
	assert.IsType(t, fixture{}, SchemaRegistry[before])
}
