// routes_test.go - Unit Tests fuer den HTTP-Router
//
// Testet den Score-Roundtrip und den Health-Endpoint mit httptest.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mlserve/tgiscore/api"
	"github.com/mlserve/tgiscore/scoring"
)

type echoBackend struct{}

func (echoBackend) Generate(_ context.Context, inputs string, _ map[string]any) (string, error) {
	return "out:" + inputs, nil
}

func testServer(task api.TaskType) *Server {
	return &Server{dispatcher: scoring.NewDispatcher(echoBackend{}, task)}
}

// TestScoreHandler testet den Roundtrip einer text-generation Payload
func TestScoreHandler(t *testing.T) {
	router := testServer(api.TaskTextGeneration).GenerateRoutes()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/score",
		strings.NewReader(`{"input_data":{"input_string":["p0","p1"]}}`))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Header().Get("X-Request-Id"))

	var results []map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Equal(t, []map[string]string{{"0": "out:p0"}, {"1": "out:p1"}}, results)
}

// TestScoreHandler_Error testet HTTP 200 mit Envelope bei kaputter Payload
func TestScoreHandler_Error(t *testing.T) {
	router := testServer(api.TaskTextGeneration).GenerateRoutes()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/score", strings.NewReader(`{"foo":1}`))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, "Fehler gehoeren ins Envelope, nicht in den HTTP-Status")

	var envelope scoring.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Contains(t, envelope.Error, "Expected input format")
}

// TestScoreHandler_RequestIDEcho testet die Uebernahme einer Client-ID
func TestScoreHandler_RequestIDEcho(t *testing.T) {
	router := testServer(api.TaskTextGeneration).GenerateRoutes()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/score",
		strings.NewReader(`{"input_data":{"input_string":[]}}`))
	req.Header.Set("X-Request-Id", "abc-123")
	router.ServeHTTP(w, req)

	require.Equal(t, "abc-123", w.Header().Get("X-Request-Id"))
}

// TestHealthHandler testet den Health-Endpoint ohne Backend
func TestHealthHandler(t *testing.T) {
	router := testServer(api.TaskTextGeneration).GenerateRoutes()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}
