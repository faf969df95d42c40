package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationFromSQL(t *testing.T) {
	cases := map[string]string{
		"SELECT * FROM shipments":                         "SELECT",
		"  insert into shipments (shipment_id) values (1)": "INSERT",
		"TRUNCATE TABLE shipments":                        "TRUNCATE",
		"WITH x AS (SELECT 1) SELECT * FROM x":            "SELECT",
		"":                                                "UNKNOWN",
		"VACUUM":                                          "UNKNOWN",
	}
	for sql, want := range cases {
		assert.Equal(t, want, operationFromSQL(sql), sql)
	}
}

func TestParamsFilter(t *testing.T) {
	quiet := NewGormLogger(DefaultGormLoggerConfig())
	_, params := quiet.ParamsFilter(context.Background(), "SELECT ?", 1)
	assert.Nil(t, params)

	cfg := DefaultGormLoggerConfig()
	cfg.LogParams = true
	verbose := NewGormLogger(cfg)
	_, params = verbose.ParamsFilter(context.Background(), "SELECT ?", 1)
	assert.Equal(t, []interface{}{1}, params)
}
