package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	CheckoutSvcURL   string
	SettlementSvcURL string
}

type Gateway struct {
	config Config
	client HTTPClient
	log    *logrus.Entry
}

func NewGateway(config Config, client HTTPClient, log *logrus.Entry) *Gateway {
	return &Gateway{
		config: config,
		client: client,
		log:    log,
	}
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "api-gateway",
	})
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	logger := g.log.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"target": targetURL,
	})
	logger.Debug("Proxying request")

	url := targetURL + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		logger.WithError(err).Error("Failed to build upstream request")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	for k, v := range r.Header {
		req.Header[k] = v
	}

	resp, err := g.client.Do(req)
	if err != nil {
		logger.WithError(err).Error("Upstream unavailable")
		http.Error(w, "Upstream unavailable", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		logger.WithError(err).Warn("Failed to copy upstream response")
	}
}

// RouteHandler sends settlement reports to settlement-svc and every other
// API path checkout-svc serves to checkout-svc.
func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	switch {
	case strings.HasPrefix(path, "/api/settlements/"):
		g.ProxyRequest(w, r, g.config.SettlementSvcURL)
	case hasAnyPrefix(path, "/api/carts/", "/api/orders/", "/api/settings/", "/api/restaurants/", "/api/menu-items/"),
		path == "/api/quote", path == "/api/restaurants":
		g.ProxyRequest(w, r, g.config.CheckoutSvcURL)
	default:
		g.log.WithField("path", path).Warn("Unmatched API route")
		http.Error(w, "API route not found", http.StatusNotFound)
	}
}

func (g *Gateway) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.PathPrefix("/api/").HandlerFunc(g.RouteHandler)
	return r
}

func hasAnyPrefix(path string, prefixes ...string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
