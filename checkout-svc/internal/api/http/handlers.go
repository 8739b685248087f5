package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"food-delivery/checkout-svc/internal/cart"
	"food-delivery/checkout-svc/internal/domain"
	"food-delivery/checkout-svc/internal/service"
	"food-delivery/checkout-svc/internal/settings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	Carts    service.CartServiceInterface
	Quotes   service.QuoteServiceInterface
	Orders   service.OrderServiceInterface
	Settings service.SettingsServiceInterface
	Catalog  service.CatalogServiceInterface
	Log      *logrus.Entry
}

func NewHandler(carts service.CartServiceInterface, quotes service.QuoteServiceInterface, orders service.OrderServiceInterface, settingsSvc service.SettingsServiceInterface, catalog service.CatalogServiceInterface, log *logrus.Entry) *Handler {
	return &Handler{
		Carts:    carts,
		Quotes:   quotes,
		Orders:   orders,
		Settings: settingsSvc,
		Catalog:  catalog,
		Log:      log,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/settings/delivery", h.getSettings).Methods("GET")
	r.HandleFunc("/api/settings/delivery", h.updateSettings).Methods("PUT")
	r.HandleFunc("/api/settings/delivery/refresh", h.refreshSettings).Methods("POST")

	r.HandleFunc("/api/carts/{cartId}", h.getCart).Methods("GET")
	r.HandleFunc("/api/carts/{cartId}", h.clearCart).Methods("DELETE")
	r.HandleFunc("/api/carts/{cartId}/items", h.addItem).Methods("POST")
	r.HandleFunc("/api/carts/{cartId}/items/{lineId}", h.updateLine).Methods("PATCH")
	r.HandleFunc("/api/carts/{cartId}/items/{lineId}", h.removeLine).Methods("DELETE")
	r.HandleFunc("/api/carts/{cartId}/quote", h.quoteCart).Methods("POST")
	r.HandleFunc("/api/carts/{cartId}/checkout", h.checkout).Methods("POST")

	r.HandleFunc("/api/quote", h.quoteLines).Methods("POST")

	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")

	r.HandleFunc("/api/restaurants", h.createRestaurant).Methods("POST")
	r.HandleFunc("/api/restaurants/{id}", h.getRestaurant).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}/menu", h.listMenu).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}/menu", h.addMenuItem).Methods("POST")
	r.HandleFunc("/api/menu-items/{id}/availability", h.setAvailability).Methods("PATCH")
}

type settingsResponse struct {
	Settings domain.DeliverySettings `json:"settings"`
	Source   settings.Source         `json:"source"`
}

type deliveryRequest struct {
	DeliveryPoint *domain.GeoPoint `json:"delivery_point"`
}

type quoteLinesRequest struct {
	RestaurantID  int                      `json:"restaurant_id"`
	Items         []service.AddItemRequest `json:"items"`
	DeliveryPoint *domain.GeoPoint         `json:"delivery_point"`
}

type availabilityRequest struct {
	Available *bool `json:"available"`
}

type availabilityResponse struct {
	ID        int  `json:"id"`
	Available bool `json:"available"`
}

type addItemResponse struct {
	Cart    *domain.Cart `json:"cart"`
	Cleared bool         `json:"cleared"`
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "checkout-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	s, source := h.Settings.Get(r.Context())
	writeJSON(w, http.StatusOK, settingsResponse{Settings: s, Source: source})
}

func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	var s domain.DeliverySettings
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Settings.Update(r.Context(), &s); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *Handler) refreshSettings(w http.ResponseWriter, r *http.Request) {
	s, source := h.Settings.Refresh(r.Context())
	writeJSON(w, http.StatusOK, settingsResponse{Settings: s, Source: source})
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.Carts.Get(r.Context(), mux.Vars(r)["cartId"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.Carts.Clear(r.Context(), mux.Vars(r)["cartId"]); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req service.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, cleared, err := h.Carts.AddItem(r.Context(), mux.Vars(r)["cartId"], req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, addItemResponse{Cart: c, Cleared: cleared})
}

func (h *Handler) updateLine(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	vars := mux.Vars(r)
	c, err := h.Carts.UpdateLine(r.Context(), vars["cartId"], vars["lineId"], req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) removeLine(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	c, err := h.Carts.RemoveLine(r.Context(), vars["cartId"], vars["lineId"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) quoteCart(w http.ResponseWriter, r *http.Request) {
	var req deliveryRequest
	if err := decodeOptional(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	quote, err := h.Quotes.Quote(r.Context(), mux.Vars(r)["cartId"], req.DeliveryPoint)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *Handler) quoteLines(w http.ResponseWriter, r *http.Request) {
	var req quoteLinesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	quote, err := h.Quotes.QuoteLines(r.Context(), req.RestaurantID, req.Items, req.DeliveryPoint)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req deliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.Orders.PlaceOrder(r.Context(), mux.Vars(r)["cartId"], req.DeliveryPoint)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid order id", http.StatusBadRequest)
		return
	}

	order, err := h.Orders.Get(r.Context(), orderID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid order id", http.StatusBadRequest)
		return
	}

	qr, err := h.Orders.GetQRCode(r.Context(), orderID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qr)
}

func (h *Handler) createRestaurant(w http.ResponseWriter, r *http.Request) {
	var rest domain.Restaurant
	if err := json.NewDecoder(r.Body).Decode(&rest); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Catalog.CreateRestaurant(r.Context(), &rest); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rest)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid restaurant id", http.StatusBadRequest)
		return
	}

	rest, err := h.Catalog.GetRestaurant(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handler) listMenu(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid restaurant id", http.StatusBadRequest)
		return
	}

	items, err := h.Catalog.ListMenu(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) addMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid restaurant id", http.StatusBadRequest)
		return
	}
	var item domain.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Catalog.AddMenuItem(r.Context(), id, &item); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) setAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid menu item id", http.StatusBadRequest)
		return
	}
	var req availabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Available == nil {
		http.Error(w, "available is required", http.StatusBadRequest)
		return
	}

	if err := h.Catalog.SetAvailability(r.Context(), id, *req.Available); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, availabilityResponse{ID: id, Available: *req.Available})
}

// decodeOptional accepts an empty body.
func decodeOptional(r *http.Request, v interface{}) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrCartNotFound),
		errors.Is(err, service.ErrMenuItemNotFound),
		errors.Is(err, service.ErrRestaurantNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, cart.ErrLineNotFound):
		return http.StatusNotFound
	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrInvalidItem),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrMissingDeliveryPoint),
		errors.Is(err, service.ErrMixedRestaurants),
		errors.Is(err, service.ErrInvalidRestaurant),
		errors.Is(err, service.ErrInvalidMenuItem),
		errors.Is(err, domain.ErrInvalidSettings):
		return http.StatusBadRequest
	case errors.Is(err, cart.ErrItemUnavailable),
		errors.Is(err, service.ErrCheckoutInProgress),
		errors.Is(err, service.ErrCartContended):
		return http.StatusConflict
	case errors.Is(err, service.ErrOutsideDeliveryRadius):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.Log.WithError(err).Error("Request failed")
		http.Error(w, "internal error", status)
		return
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
