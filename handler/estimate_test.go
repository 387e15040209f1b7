package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yashsharma-007/Financeautomation/service"
)

func newEstimateHandler(t *testing.T) *EstimateHandler {
	t.Helper()
	registry := newTestRegistry(t)
	return NewEstimateHandler(service.NewEstimator(registry.TaxEstimates, 0.18))
}

func TestEstimateCreate(t *testing.T) {
	handler := newEstimateHandler(t)
	router := gin.New()
	router.POST("/estimates", handler.Create)

	w := postJSON(router, "/estimates", EstimateRequest{Income: 100000, Expenses: 40000})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if resp["gstLiability"] != float64(10800) {
		t.Errorf("Expected liability 10800, got %v", resp["gstLiability"])
	}
}

func TestEstimateCreateZeroIncome(t *testing.T) {
	handler := newEstimateHandler(t)
	router := gin.New()
	router.POST("/estimates", handler.Create)

	// A quiet period with no revenue is a valid submission
	w := postJSON(router, "/estimates", EstimateRequest{Income: 0, Expenses: 500})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 for zero income, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if resp["gstLiability"] != float64(0) {
		t.Errorf("Expected liability 0, got %v", resp["gstLiability"])
	}
}

func TestEstimateCreateValidation(t *testing.T) {
	handler := newEstimateHandler(t)
	router := gin.New()
	router.POST("/estimates", handler.Create)

	tests := []struct {
		name string
		body interface{}
	}{
		{"negative income", map[string]float64{"income": -5, "expenses": 0}},
		{"negative expenses", map[string]float64{"income": 100, "expenses": -1}},
		{"not json", "income=5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/estimates", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", w.Code)
			}
		})
	}
}

func TestEstimateHistory(t *testing.T) {
	handler := newEstimateHandler(t)
	router := gin.New()
	router.POST("/estimates", handler.Create)
	router.GET("/estimates", handler.History)

	postJSON(router, "/estimates", EstimateRequest{Income: 1000, Expenses: 0})
	postJSON(router, "/estimates", EstimateRequest{Income: 2000, Expenses: 500})

	req := httptest.NewRequest("GET", "/estimates", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response map[string][]map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(response["estimates"]) != 2 {
		t.Errorf("Expected 2 estimates in history, got %d", len(response["estimates"]))
	}
}
