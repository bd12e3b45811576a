package internal

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"umkm-reels/pkg/config"
	"umkm-reels/pkg/dbtest"
	"umkm-reels/pkg/jwt"
	"umkm-reels/pkg/logger"
	"umkm-reels/pkg/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	jwt    *jwt.Service
}

func newTestServer(t *testing.T, limit int) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	db := dbtest.Open(t)
	cfg := &config.Config{EngagementRateLimit: limit, EngagementRateWindow: time.Minute}
	log := logger.NewWithOptions(logger.Options{Stdout: io.Discard, Stderr: io.Discard})
	jwtService := jwt.NewService("test-secret")

	return &testServer{
		router: NewRouter(cfg, log, db, redisClient, jwtService),
		db:     db,
		jwt:    jwtService,
	}
}

func (s *testServer) do(t *testing.T, method, path string, user *models.User, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "198.51.100.7:40000"
	if user != nil {
		token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRouter_LikesShowUpInSellerStats(t *testing.T) {
	s := newTestServer(t, 100)
	seller, profile := dbtest.CreateSeller(t, s.db)
	reel := dbtest.CreateReel(t, s.db, profile.ID, models.ReelStatusPublished)

	for i := 0; i < 3; i++ {
		w := s.do(t, http.MethodPost, "/api/v1/engagement-events", nil, map[string]string{"reel_id": reel.ID, "event_type": "like"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := s.do(t, http.MethodGet, "/api/v1/seller/stats", seller, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["total_likes"])
	assert.Equal(t, float64(0), data["total_views"])
	assert.Equal(t, float64(0), data["total_shares"])
	assert.Equal(t, float64(0), data["total_click_wa"])

	w = s.do(t, http.MethodGet, "/api/v1/reels/"+reel.ID+"/stats", seller, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), decode(t, w)["data"].(map[string]interface{})["total_likes"])
}

func TestRouter_AuthenticatedActor(t *testing.T) {
	s := newTestServer(t, 100)
	_, profile := dbtest.CreateSeller(t, s.db)
	buyer := dbtest.CreateUser(t, s.db, models.RoleOrdinary)
	reel := dbtest.CreateReel(t, s.db, profile.ID, models.ReelStatusPublished)

	w := s.do(t, http.MethodPost, "/api/v1/engagement-events", buyer, map[string]string{"reel_id": reel.ID, "event_type": "view"})
	require.Equal(t, http.StatusCreated, w.Code)

	var event models.EngagementEvent
	require.NoError(t, s.db.First(&event).Error)
	assert.Equal(t, "user:"+buyer.ID, event.Actor)
}

func TestRouter_RateLimit(t *testing.T) {
	s := newTestServer(t, 2)
	_, profile := dbtest.CreateSeller(t, s.db)
	reel := dbtest.CreateReel(t, s.db, profile.ID, models.ReelStatusPublished)
	body := map[string]string{"reel_id": reel.ID, "event_type": "view"}

	assert.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/v1/engagement-events", nil, body).Code)
	assert.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/v1/engagement-events", nil, body).Code)

	w := s.do(t, http.MethodPost, "/api/v1/engagement-events", nil, body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	var count int64
	require.NoError(t, s.db.Model(&models.EngagementEvent{}).Count(&count).Error)
	assert.Equal(t, int64(2), count, "rejected requests are not queued")
}

func TestRouter_InvalidEventType(t *testing.T) {
	s := newTestServer(t, 100)
	_, profile := dbtest.CreateSeller(t, s.db)
	reel := dbtest.CreateReel(t, s.db, profile.ID, models.ReelStatusPublished)

	w := s.do(t, http.MethodPost, "/api/v1/engagement-events", nil, map[string]string{"reel_id": reel.ID, "event_type": "bookmark"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/engagement-events", nil, map[string]string{"reel_id": "6f1c1b9e-1111-4c2d-9e8f-0a1b2c3d4e5f", "event_type": "view"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_StatsAccess(t *testing.T) {
	s := newTestServer(t, 100)
	_, profile := dbtest.CreateSeller(t, s.db)
	other, _ := dbtest.CreateSeller(t, s.db)
	buyer := dbtest.CreateUser(t, s.db, models.RoleOrdinary)
	admin := dbtest.CreateUser(t, s.db, models.RoleAdmin)
	reel := dbtest.CreateReel(t, s.db, profile.ID, models.ReelStatusPublished)
	path := "/api/v1/reels/" + reel.ID + "/stats"

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, path, nil, nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, path, buyer, nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, path, other, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, path, admin, nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/api/v1/seller/stats", admin, nil).Code)
}
