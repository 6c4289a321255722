package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHealthEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := &Handlers{}
	router := gin.New()
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
	router.GET("/live", h.Live)
	router.GET("/version", h.Version)

	tests := []struct {
		path           string
		expectedStatus string
		statusField    string
	}{
		{"/health", "healthy", "status"},
		{"/ready", "ready", "status"},
		{"/live", "alive", "status"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", w.Code)
			}
			var resp map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if resp[tt.statusField] != tt.expectedStatus {
				t.Errorf("Expected %s %q, got %q", tt.statusField, tt.expectedStatus, resp[tt.statusField])
			}
		})
	}

	req := httptest.NewRequest("GET", "/version", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var version map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &version); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if version["service"] != "payments-service" {
		t.Errorf("Expected service payments-service, got %v", version["service"])
	}
}
