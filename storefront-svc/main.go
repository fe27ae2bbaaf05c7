package main

import (
	"log"
	"net/http"
	"time"

	"bistro-storefront/config"
	httpapi "bistro-storefront/storefront-svc/internal/api/http"
	"bistro-storefront/storefront-svc/internal/payment"
	"bistro-storefront/storefront-svc/internal/pricing"
	"bistro-storefront/storefront-svc/internal/service"
	"bistro-storefront/storefront-svc/internal/storage"
)

func main() {
	cfg := config.FromEnv()

	rdb := config.MustInitRedis()
	defer rdb.Close()
	cache := storage.NewRedisCache(rdb, cfg.CatalogTTL, cfg.SessionTTL)

	backend := newBackend(cfg)

	var publisher service.EventPublisher
	if writer := config.NewKafkaWriter(cfg.EventsTopic); writer != nil {
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)
	} else {
		log.Printf("WARNING: KAFKA_BROKER not set, storefront events will not be published")
	}

	bank := payment.BankAccount{
		BankCode:    cfg.BankCode,
		AccountNo:   cfg.BankAccount,
		AccountName: cfg.BankAccountName,
		Template:    cfg.BankQRTemplate,
	}
	svc := service.NewStorefrontService(backend, cache, cache, publisher,
		pricing.NewCalculator(cfg.ShippingFee), bank, payment.PNGGenerator{Size: 256})

	handler := httpapi.NewHandler(svc)
	httpapi.StartServer(cfg.HTTPAddr, httpapi.NewRouter(handler, cfg.AllowedOrigins))
}

func newBackend(cfg config.Config) service.Backend {
	if cfg.BackendMode == config.BackendPostgres {
		log.Printf("[storefront-svc] using PostgreSQL backend")
		return storage.NewPostgresRepository(config.MustInitPostgres())
	}
	log.Printf("[storefront-svc] using HTTP backend at %s", cfg.BackendURL)
	return storage.NewBackendClient(cfg.BackendURL, &http.Client{Timeout: 15 * time.Second})
}
