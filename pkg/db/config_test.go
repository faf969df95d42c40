package db

import (
	"testing"
	"time"

	"github.com/GuiTheDevv/shipping-management/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{Type: "sqlite"}.Validate())
	assert.NoError(t, Config{Type: "Postgres", Host: "db", Name: "shipments"}.Validate())
	assert.Error(t, Config{Type: "postgres", Name: "shipments"}.Validate())
	assert.Error(t, Config{Type: "mysql", Host: "db"}.Validate())
	assert.Error(t, Config{Type: "oracle", Host: "db", Name: "x"}.Validate())
}

func TestNewConfigConvertsSeconds(t *testing.T) {
	cfg := NewConfig(config.Config{DBType: "sqlite", DBConnMaxLifetime: 1800, DBConnMaxIdleTime: 300})
	assert.Equal(t, 30*time.Minute, cfg.ConnMaxLifetime)
	assert.Equal(t, 5*time.Minute, cfg.ConnMaxIdleTime)
}

func TestDialect(t *testing.T) {
	for _, typ := range []string{"postgres", "mysql", "sqlite"} {
		dialector, err := Dialect(Config{Type: typ, Host: "db", Name: "shipments"})
		assert.NoError(t, err, typ)
		assert.NotNil(t, dialector, typ)
	}
	_, err := Dialect(Config{Type: "oracle"})
	assert.Error(t, err)
}
