package internal

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"umkm-reels/pkg/config"
	"umkm-reels/pkg/dbtest"
	"umkm-reels/pkg/jwt"
	"umkm-reels/pkg/logger"
	"umkm-reels/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	jwt    *jwt.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.Open(t)
	log := logger.NewWithOptions(logger.Options{Stdout: io.Discard, Stderr: io.Discard})
	jwtService := jwt.NewService("test-secret")

	return &testServer{
		router: NewRouter(&config.Config{}, log, db, nil, jwtService),
		db:     db,
		jwt:    jwtService,
	}
}

func (s *testServer) do(t *testing.T, method, path string, user *models.User, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	return w, decoded
}

func TestRouter_AdminOnly(t *testing.T) {
	s := newTestServer(t)
	seller, _ := dbtest.CreateSeller(t, s.db)

	w, _ := s.do(t, http.MethodGet, "/api/v1/stats", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, body := s.do(t, http.MethodGet, "/api/v1/stats", seller, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "This action is unauthorized.", body["message"])
}

func TestRouter_StaleAdminToken(t *testing.T) {
	s := newTestServer(t)
	admin := dbtest.CreateUser(t, s.db, models.RoleAdmin)
	stale := *admin
	require.NoError(t, s.db.Model(&models.User{}).Where("id = ?", admin.ID).Update("role", models.RoleOrdinary).Error)

	w, _ := s.do(t, http.MethodGet, "/api/v1/stats", &stale, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_BlockSeller(t *testing.T) {
	s := newTestServer(t)
	admin := dbtest.CreateUser(t, s.db, models.RoleAdmin)
	seller, profile := dbtest.CreateSeller(t, s.db)
	reel := dbtest.CreateReel(t, s.db, profile.ID, models.ReelStatusPublished)
	dbtest.CreateEvents(t, s.db, reel.ID, models.EventView, 4)

	w, body := s.do(t, http.MethodPost, "/api/v1/sellers/"+seller.ID+"/block", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["data"].(map[string]interface{})["is_blocked"])

	w, body = s.do(t, http.MethodGet, "/api/v1/sellers?per_page=10", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	sellers := body["data"].([]interface{})
	require.Len(t, sellers, 1)
	entry := sellers[0].(map[string]interface{})
	assert.Equal(t, true, entry["profile"].(map[string]interface{})["is_blocked"])
	assert.Equal(t, float64(1), entry["profile"].(map[string]interface{})["reels_count"])
	assert.Equal(t, float64(4), entry["stats"].(map[string]interface{})["total_views"])
	assert.Equal(t, float64(10), body["meta"].(map[string]interface{})["per_page"])

	w, body = s.do(t, http.MethodGet, "/api/v1/stats", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total_users"])
	assert.Equal(t, float64(1), data["total_sellers"])
	assert.Equal(t, float64(1), data["total_reels"])
	assert.Equal(t, float64(4), data["engagement"].(map[string]interface{})["total_views"])

	w, _ = s.do(t, http.MethodPost, "/api/v1/sellers/"+admin.ID+"/block", admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_ReelModerationAndReset(t *testing.T) {
	s := newTestServer(t)
	admin := dbtest.CreateUser(t, s.db, models.RoleAdmin)
	_, profile := dbtest.CreateSeller(t, s.db)
	reel := dbtest.CreateReel(t, s.db, profile.ID, models.ReelStatusPublished)
	dbtest.CreateEvents(t, s.db, reel.ID, models.EventShare, 2)

	w, body := s.do(t, http.MethodPost, "/api/v1/reels/"+reel.ID+"/block", admin, map[string]string{"reason": "Spam"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Spam", body["data"].(map[string]interface{})["blocked_reason"])

	w, body = s.do(t, http.MethodDelete, "/api/v1/engagement-events?reel_id="+reel.ID, admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), body["data"].(map[string]interface{})["deleted"])

	w, _ = s.do(t, http.MethodPost, "/api/v1/reels/"+reel.ID+"/unblock", admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_ChangeRole(t *testing.T) {
	s := newTestServer(t)
	admin := dbtest.CreateUser(t, s.db, models.RoleAdmin)
	user := dbtest.CreateUser(t, s.db, models.RoleOrdinary)

	w, body := s.do(t, http.MethodPut, "/api/v1/users/"+user.ID+"/role", admin, map[string]string{"role": "seller"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "seller", body["data"].(map[string]interface{})["role"])

	w, _ = s.do(t, http.MethodPut, "/api/v1/users/"+admin.ID+"/role", admin, map[string]string{"role": "ordinary"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
