package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"umkm-reels/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine_Health(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewEngine(&config.Config{CORSOrigins: []string{"http://localhost:3000"}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestNewEngine_CORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewEngine(&config.Config{CORSOrigins: []string{"http://localhost:3000"}})

	req := httptest.NewRequest(http.MethodOptions, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestInitSentry_NoDSN(t *testing.T) {
	flush := InitSentry(&config.Config{}, NewLogger(&config.Config{}, "test"))
	assert.NotPanics(t, flush)
}

func TestShutdown_Nil(t *testing.T) {
	assert.NoError(t, Shutdown(nil))
}
