// Package dbtest opens throwaway in-memory SQLite databases with the
// production schema so repositories can be tested without Postgres.
package dbtest

import (
	"testing"
	"time"

	"umkm-reels/pkg/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps the shared in-memory database alive and
	// serialises writers
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func CreateUser(t testing.TB, db *gorm.DB, role models.UserRole) *models.User {
	t.Helper()
	id := uuid.NewString()
	user := &models.User{
		ID:    id,
		Name:  "User " + id[:8],
		Email: id[:8] + "@example.com",
		Role:  role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateProfile(t testing.TB, db *gorm.DB, userID string) *models.Profile {
	t.Helper()
	profile := &models.Profile{
		UserID:   userID,
		Name:     "Warung " + userID[:8],
		Phone:    "081234567890",
		Category: "kuliner",
		IsOpen:   true,
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

// CreateSeller creates a seller user together with a profile.
func CreateSeller(t testing.TB, db *gorm.DB) (*models.User, *models.Profile) {
	t.Helper()
	user := CreateUser(t, db, models.RoleSeller)
	return user, CreateProfile(t, db, user.ID)
}

func CreateReel(t testing.TB, db *gorm.DB, profileID string, status models.ReelStatus) *models.Reel {
	t.Helper()
	reel := &models.Reel{
		ProfileID:   profileID,
		MediaType:   models.MediaTypeVideo,
		VideoURL:    "/storage/reels/" + profileID + "/" + uuid.NewString() + ".mp4",
		ProductName: "Keripik Singkong",
		Price:       15000,
		Category:    "kuliner",
		Status:      status,
	}
	require.NoError(t, db.Create(reel).Error)
	return reel
}

func CreateEvents(t testing.TB, db *gorm.DB, reelID string, eventType models.EventType, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		event := &models.EngagementEvent{
			ReelID:    reelID,
			Actor:     "ip:10.0.0.1",
			EventType: eventType,
			CreatedAt: time.Now(),
		}
		require.NoError(t, db.Create(event).Error)
	}
}
