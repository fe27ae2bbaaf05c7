package config

import (
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "BACKEND_MODE", "SESSION_TTL_MINUTES", "SHIPPING_FEE", "CORS_ALLOWED_ORIGINS", "BANK_QR_TEMPLATE"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, ":8085", cfg.HTTPAddr)
	assert.Equal(t, BackendHTTP, cfg.BackendMode)
	assert.Equal(t, 120*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.ShippingFee.Equal(decimal.NewFromInt(20000)))
	assert.Empty(t, cfg.AllowedOrigins)
	assert.Equal(t, "compact2", cfg.BankQRTemplate)
}

func TestFromEnvOverrides(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, cfg Config)
	}{
		{
			name: "postgres backend",
			env:  map[string]string{"BACKEND_MODE": "Postgres"},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, BackendPostgres, cfg.BackendMode)
			},
		},
		{
			name: "ttl minutes",
			env:  map[string]string{"SESSION_TTL_MINUTES": "30", "CATALOG_TTL_MINUTES": "1"},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
				assert.Equal(t, time.Minute, cfg.CatalogTTL)
			},
		},
		{
			name: "bad ttl falls back",
			env:  map[string]string{"SESSION_TTL_MINUTES": "-5"},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, 120*time.Minute, cfg.SessionTTL)
			},
		},
		{
			name: "shipping fee",
			env:  map[string]string{"SHIPPING_FEE": "15000"},
			check: func(t *testing.T, cfg Config) {
				assert.True(t, cfg.ShippingFee.Equal(decimal.NewFromInt(15000)))
			},
		},
		{
			name: "negative shipping fee ignored",
			env:  map[string]string{"SHIPPING_FEE": "-1"},
			check: func(t *testing.T, cfg Config) {
				assert.True(t, cfg.ShippingFee.Equal(decimal.NewFromInt(20000)))
			},
		},
		{
			name: "allowed origins",
			env:  map[string]string{"CORS_ALLOWED_ORIGINS": "http://a.test, ,http://b.test"},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			for key, value := range testCase.env {
				t.Setenv(key, value)
			}
			testCase.check(t, FromEnv())
		})
	}
}

func TestNewKafkaWriter(t *testing.T) {
	t.Setenv("KAFKA_BROKER", "")
	assert.Nil(t, NewKafkaWriter("storefront-events"))

	t.Setenv("KAFKA_BROKER", "kafka:9092")
	writer := NewKafkaWriter("storefront-events")
	require.NotNil(t, writer)
	assert.Equal(t, "storefront-events", writer.Topic)
	assert.IsType(t, &kafka.Hash{}, writer.Balancer)
}
