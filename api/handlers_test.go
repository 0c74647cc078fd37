package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"foodcart/geo"
	"foodcart/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	matcher := services.NewMatcher(
		geo.NewCache(),
		geo.NewClient("", "http://unused", time.Second),
		900*time.Second, 30*time.Second,
	)
	return NewServer(matcher, nil).Router()
}

func TestRegisterOrderRejectsMalformedJSON(t *testing.T) {
	router := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/order", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterOrderRejectsEmptyProducts(t *testing.T) {
	router := testRouter()

	body := `{"firstname":"Ann","phonenumber":"+100","address":"Main St 7","products":[]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/order", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not empty list of products")
}

func TestRegisterOrderRejectsMissingFields(t *testing.T) {
	router := testRouter()

	tests := []struct {
		name string
		body string
	}{
		{"no firstname", `{"phonenumber":"+100","address":"Main St 7","products":[{"product":1,"quantity":1}]}`},
		{"no address", `{"firstname":"Ann","phonenumber":"+100","products":[{"product":1,"quantity":1}]}`},
		{"bad quantity", `{"firstname":"Ann","phonenumber":"+100","address":"Main St 7","products":[{"product":1,"quantity":0}]}`},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/order", strings.NewReader(tt.body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, tt.name)
	}
}

func TestMarkOrderProcessedRejectsBadID(t *testing.T) {
	router := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/manager/orders/abc/processed", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
