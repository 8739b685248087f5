package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	httpapi "food-delivery/checkout-svc/internal/api/http"
	"food-delivery/checkout-svc/internal/pricing"
	"food-delivery/checkout-svc/internal/service"
	"food-delivery/checkout-svc/internal/settings"
	"food-delivery/checkout-svc/internal/storage"
	"food-delivery/config"
)

func main() {
	config.LoadEnv()
	log := config.NewLogger("checkout-svc")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := config.MustInitPostgres(log)
	defer db.Close()

	rdb := config.MustInitRedis(log)
	defer rdb.Close()

	writer := config.NewKafkaWriter(config.GetEnv("ORDERS_TOPIC", "orders"))
	defer writer.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.WithError(err).Fatal("Failed to ensure schema")
	}

	cacheTTL := config.GetDuration("SETTINGS_CACHE_TTL", settings.DefaultTTL)
	shared := settings.NewLayeredProvider(storage.NewRedisSettingsCache(rdb), repo, cacheTTL, log)
	resolver := settings.NewResolver(
		settings.NewCache(cacheTTL),
		shared,
		config.GetDuration("SETTINGS_FETCH_TIMEOUT", settings.DefaultFetchTimeout),
		log,
	)

	carts := storage.NewRedisCartStore(rdb, config.GetDuration("CART_TTL", storage.DefaultCartTTL))
	carts.CheckoutTTL = config.GetDuration("CHECKOUT_CLAIM_TTL", storage.DefaultCheckoutTTL)
	promotion := pricing.NewPromotion(
		config.GetFloat("PROMO_FLAT_AMOUNT", 0),
		config.GetFloat("PROMO_MIN_SUBTOTAL", 0),
		config.GetFloat("PROMO_PERCENT", 0),
		config.GetFloat("PROMO_MAX_DISCOUNT", 0),
	)
	if promotion != nil {
		log.WithField("promotion", fmt.Sprintf("%+v", promotion)).Info("Store-wide promotion active")
	}
	quotes := service.NewQuoteService(carts, repo, repo, resolver, promotion, log)
	orders := service.NewOrderService(
		carts,
		quotes,
		repo,
		storage.NewKafkaPublisher(writer),
		service.DefaultQRGenerator{BaseURL: config.GetEnv("TRACKING_BASE_URL", "http://localhost")},
		log,
	)

	handler := httpapi.NewHandler(
		service.NewCartService(carts, repo, log),
		quotes,
		orders,
		service.NewSettingsService(repo, resolver, shared, log),
		service.NewCatalogService(repo, log),
		log,
	)

	if err := httpapi.StartServer(ctx, config.GetEnv("CHECKOUT_ADDR", ":8083"), httpapi.NewRouter(handler), log); err != nil {
		log.WithError(err).Fatal("Checkout Service stopped")
	}
}
