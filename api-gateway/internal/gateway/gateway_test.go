package gateway_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"food-delivery/api-gateway/internal/gateway"
	"food-delivery/api-gateway/internal/mocks"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var testConfig = gateway.Config{
	CheckoutSvcURL:   "http://checkout-svc",
	SettlementSvcURL: "http://settlement-svc",
}

func quietLogger() *logrus.Entry {
	logger, _ := test.NewNullLogger()
	return logrus.NewEntry(logger)
}

func okResponse(body string) *http.Response {
	resp := &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp
}

func TestGateway_HealthCheck(t *testing.T) {
	gw := gateway.NewGateway(testConfig, nil, quietLogger())

	rr := httptest.NewRecorder()
	gw.SetupRoutes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	json.NewDecoder(rr.Body).Decode(&body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "api-gateway", body["service"])
}

func TestGateway_RouteHandler(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		path        string
		expectedURL string
	}{
		{
			name:        "cart",
			method:      http.MethodPost,
			path:        "/api/carts/c1/items",
			expectedURL: "http://checkout-svc/api/carts/c1/items",
		},
		{
			name:        "stateless quote",
			method:      http.MethodPost,
			path:        "/api/quote",
			expectedURL: "http://checkout-svc/api/quote",
		},
		{
			name:        "delivery settings",
			method:      http.MethodPut,
			path:        "/api/settings/delivery",
			expectedURL: "http://checkout-svc/api/settings/delivery",
		},
		{
			name:        "order qr code",
			method:      http.MethodGet,
			path:        "/api/orders/7/qrcode",
			expectedURL: "http://checkout-svc/api/orders/7/qrcode",
		},
		{
			name:        "create restaurant",
			method:      http.MethodPost,
			path:        "/api/restaurants",
			expectedURL: "http://checkout-svc/api/restaurants",
		},
		{
			name:        "restaurant menu",
			method:      http.MethodGet,
			path:        "/api/restaurants/10/menu",
			expectedURL: "http://checkout-svc/api/restaurants/10/menu",
		},
		{
			name:        "menu item availability",
			method:      http.MethodPatch,
			path:        "/api/menu-items/7/availability",
			expectedURL: "http://checkout-svc/api/menu-items/7/availability",
		},
		{
			name:        "settlement report with query",
			method:      http.MethodGet,
			path:        "/api/settlements/2026-03-03/restaurants/10?format=json",
			expectedURL: "http://settlement-svc/api/settlements/2026-03-03/restaurants/10?format=json",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockClient := mocks.NewHTTPClient(t)
			mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
				return req.Method == testCase.method && req.URL.String() == testCase.expectedURL
			})).Return(okResponse(`{"ok":true}`), nil).Once()

			gw := gateway.NewGateway(testConfig, mockClient, quietLogger())
			rr := httptest.NewRecorder()
			gw.RouteHandler(rr, httptest.NewRequest(testCase.method, testCase.path, strings.NewReader(`{}`)))

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Contains(t, rr.Body.String(), "ok")
		})
	}
}

func TestGateway_RouteHandler_ForwardsHeaders(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Header.Get("Content-Type") == "application/json"
	})).Return(okResponse(`{}`), nil).Once()

	gw := gateway.NewGateway(testConfig, mockClient, quietLogger())
	req := httptest.NewRequest(http.MethodPost, "/api/carts/c1/checkout", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestGateway_RouteHandler_UnknownAPI(t *testing.T) {
	gw := gateway.NewGateway(testConfig, nil, quietLogger())

	rr := httptest.NewRecorder()
	gw.RouteHandler(rr, httptest.NewRequest(http.MethodGet, "/api/couriers", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGateway_RouteHandler_ProxyError(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	mockClient.On("Do", mock.Anything).Return(nil, errors.New("connection failed")).Once()

	gw := gateway.NewGateway(testConfig, mockClient, quietLogger())
	rr := httptest.NewRecorder()
	gw.RouteHandler(rr, httptest.NewRequest(http.MethodGet, "/api/carts/c1", nil))

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestGateway_RouteHandler_UpstreamStatusPassthrough(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	resp := okResponse(`{"error":"delivery point is outside the restaurant's delivery radius"}`)
	resp.StatusCode = http.StatusUnprocessableEntity
	mockClient.On("Do", mock.Anything).Return(resp, nil).Once()

	gw := gateway.NewGateway(testConfig, mockClient, quietLogger())
	rr := httptest.NewRecorder()
	gw.RouteHandler(rr, httptest.NewRequest(http.MethodPost, "/api/carts/c1/checkout", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "delivery radius")
}
