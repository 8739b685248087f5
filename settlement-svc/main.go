package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"food-delivery/config"
	httpapi "food-delivery/settlement-svc/internal/api/http"
	"food-delivery/settlement-svc/internal/service"
	"food-delivery/settlement-svc/internal/storage"

	"github.com/gorilla/mux"
)

func main() {
	config.LoadEnv()
	log := config.NewLogger("settlement-svc")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb := config.MustInitRedis(log)
	defer rdb.Close()

	reader := config.NewKafkaReader(config.GetEnv("ORDERS_TOPIC", "orders"), "settlement-svc-consumer")
	defer reader.Close()

	store := storage.NewStore(rdb, config.GetDuration("SETTLEMENT_RETENTION", storage.DefaultRetention))

	r := mux.NewRouter()
	httpapi.NewHandler(store, log).RegisterRoutes(r)
	srv := &http.Server{
		Addr:              config.GetEnv("SETTLEMENT_ADDR", ":8084"),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.WithField("addr", srv.Addr).Info("Settlement report API starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Settlement report API stopped")
			stop()
		}
	}()

	consumer := service.NewConsumer(reader, store, log)
	consumer.RetryDelay = config.GetDuration("SETTLEMENT_RETRY_DELAY", service.DefaultRetryDelay)
	consumer.MaxRetryDelay = config.GetDuration("SETTLEMENT_MAX_RETRY_DELAY", service.DefaultMaxRetryDelay)
	consumer.Start(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("Settlement report API shutdown")
	}
}
