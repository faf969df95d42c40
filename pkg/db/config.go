package db

import (
	"errors"
	"strings"
	"time"
)

// Config describes the shipment store connection.
type Config struct {
	Type            string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxIdleConn     int
	MaxOpenConn     int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Validate rejects settings a dialect cannot connect with.
func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Type)) {
	case TypeSQLite:
		return nil
	case TypePostgres, TypeMySQL:
		if strings.TrimSpace(c.Host) == "" {
			return errors.New("database host is required")
		}
		if strings.TrimSpace(c.Name) == "" {
			return errors.New("database name is required")
		}
		return nil
	default:
		return errors.New("database type must be postgres, mysql or sqlite")
	}
}
