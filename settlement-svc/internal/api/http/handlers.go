package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"food-delivery/settlement-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type Handler struct {
	Reports service.ReportInterface
	Log     *logrus.Entry
}

func NewHandler(reports service.ReportInterface, log *logrus.Entry) *Handler {
	return &Handler{Reports: reports, Log: log}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/settlements/{date}/restaurants/{restaurantId}", h.getRestaurantSettlement).Methods("GET")
	r.HandleFunc("/api/settlements/{date}/agents", h.getAgentPayouts).Methods("GET")
}

type agentPayoutResponse struct {
	Date        string  `json:"date"`
	AgentPayout float64 `json:"agent_payout"`
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "settlement-svc",
	})
}

func (h *Handler) getRestaurantSettlement(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, ok := parseDate(vars["date"])
	if !ok {
		http.Error(w, "Invalid date", http.StatusBadRequest)
		return
	}
	restaurantID, err := strconv.Atoi(vars["restaurantId"])
	if err != nil {
		http.Error(w, "Invalid restaurant ID", http.StatusBadRequest)
		return
	}

	summary, err := h.Reports.DailySettlement(r.Context(), date, restaurantID)
	if err != nil {
		h.Log.WithError(err).WithField("restaurant_id", restaurantID).Error("Error loading daily settlement")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) getAgentPayouts(w http.ResponseWriter, r *http.Request) {
	date, ok := parseDate(mux.Vars(r)["date"])
	if !ok {
		http.Error(w, "Invalid date", http.StatusBadRequest)
		return
	}

	total, err := h.Reports.AgentPayoutTotal(r.Context(), date)
	if err != nil {
		h.Log.WithError(err).Error("Error loading agent payouts")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, agentPayoutResponse{Date: date, AgentPayout: total})
}

// parseDate accepts YYYY-MM-DD or "today" (UTC).
func parseDate(value string) (string, bool) {
	if value == "today" {
		return time.Now().UTC().Format(dateLayout), true
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		return "", false
	}
	return value, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
