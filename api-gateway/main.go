package main

import (
	"net/http"
	"time"

	"food-delivery/api-gateway/internal/gateway"
	"food-delivery/config"

	"github.com/rs/cors"
)

func main() {
	config.LoadEnv()
	log := config.NewLogger("api-gateway")

	gw := gateway.NewGateway(gateway.Config{
		CheckoutSvcURL:   config.GetEnv("CHECKOUT_SVC_URL", "http://localhost:8083"),
		SettlementSvcURL: config.GetEnv("SETTLEMENT_SVC_URL", "http://localhost:8084"),
	}, &http.Client{Timeout: config.GetDuration("UPSTREAM_TIMEOUT", 15*time.Second)}, log)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	addr := config.GetEnv("GATEWAY_ADDR", ":8080")
	log.WithField("addr", addr).Info("API Gateway starting")
	srv := &http.Server{Addr: addr, Handler: c.Handler(gw.SetupRoutes()), ReadHeaderTimeout: 5 * time.Second}
	if err := srv.ListenAndServe(); err != nil {
		log.WithError(err).Fatal("API Gateway stopped")
	}
}
