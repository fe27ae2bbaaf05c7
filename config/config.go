package config

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

const (
	BackendHTTP     = "http"
	BackendPostgres = "postgres"
)

type Config struct {
	HTTPAddr       string
	AllowedOrigins []string

	BackendMode string
	BackendURL  string

	EventsTopic string

	SessionTTL time.Duration
	CatalogTTL time.Duration

	ShippingFee decimal.Decimal

	BankCode        string
	BankAccount     string
	BankAccountName string
	BankQRTemplate  string
}

// FromEnv reads the service settings. Connection settings for Postgres, Redis
// and Kafka are read by their constructors below.
func FromEnv() Config {
	return Config{
		HTTPAddr:        getEnv("HTTP_ADDR", ":8085"),
		AllowedOrigins:  splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		BackendMode:     strings.ToLower(getEnv("BACKEND_MODE", BackendHTTP)),
		BackendURL:      getEnv("BACKEND_URL", "http://localhost:5000"),
		EventsTopic:     getEnv("EVENTS_TOPIC", "storefront-events"),
		SessionTTL:      getMinutes("SESSION_TTL_MINUTES", 120),
		CatalogTTL:      getMinutes("CATALOG_TTL_MINUTES", 5),
		ShippingFee:     getDecimal("SHIPPING_FEE", decimal.NewFromInt(20000)),
		BankCode:        getEnv("BANK_CODE", "MB"),
		BankAccount:     getEnv("BANK_ACCOUNT", "0000000000"),
		BankAccountName: os.Getenv("BANK_ACCOUNT_NAME"),
		BankQRTemplate:  getEnv("BANK_QR_TEMPLATE", "compact2"),
	}
}

func MustInitPostgres() *sql.DB {
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")

	connStr := "host=" + dbHost + " port=" + dbPort + " user=" + dbUser +
		" password=" + dbPassword + " dbname=" + dbName + " sslmode=disable"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: getEnv("REDIS_HOST", "localhost") + ":" + getEnv("REDIS_PORT", "6379"),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

// NewKafkaWriter returns nil when KAFKA_BROKER is unset; events are then not
// published.
func NewKafkaWriter(topic string) *kafka.Writer {
	broker := os.Getenv("KAFKA_BROKER")
	if broker == "" {
		return nil
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getMinutes(key string, defaultMinutes int) time.Duration {
	minutes, err := strconv.Atoi(os.Getenv(key))
	if err != nil || minutes <= 0 {
		minutes = defaultMinutes
	}
	return time.Duration(minutes) * time.Minute
}

func getDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	value, err := decimal.NewFromString(strings.TrimSpace(os.Getenv(key)))
	if err != nil || value.IsNegative() {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
