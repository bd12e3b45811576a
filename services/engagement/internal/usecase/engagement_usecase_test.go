package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"umkm-reels/pkg/apperror"
	"umkm-reels/pkg/dbtest"
	"umkm-reels/pkg/engagement"
	"umkm-reels/pkg/logger"
	"umkm-reels/pkg/models"
	"umkm-reels/services/engagement/internal/repo/persistent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUseCase(t *testing.T) (EngagementUseCase, *gorm.DB) {
	t.Helper()
	db := dbtest.Open(t)
	log := logger.NewWithOptions(logger.Options{Stdout: io.Discard, Stderr: io.Discard})
	uc := NewEngagementUseCase(
		persistent.NewEventRepository(db),
		persistent.NewOwnerRepository(db),
		engagement.NewAggregator(db),
		log,
	)
	return uc, db
}

func requireKind(t *testing.T, err error, kind apperror.Kind) *apperror.Error {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperror.As(err)
	require.True(t, ok, "expected *apperror.Error, got %T: %v", err, err)
	require.Equal(t, kind, appErr.Kind, appErr.Message)
	return appErr
}

func TestRecord_ActorFromUserOrIP(t *testing.T) {
	uc, db := newUseCase(t)
	_, profile := dbtest.CreateSeller(t, db)
	reel := dbtest.CreateReel(t, db, profile.ID, models.ReelStatusPublished)
	ctx := context.Background()

	event, err := uc.Record(ctx, RecordInput{ReelID: reel.ID, EventType: models.EventView, ClientIP: "10.1.2.3"})
	require.NoError(t, err)
	assert.Equal(t, "ip:10.1.2.3", event.Actor)
	assert.NotEmpty(t, event.ID)
	assert.WithinDuration(t, time.Now(), event.CreatedAt, time.Minute)

	event, err = uc.Record(ctx, RecordInput{ReelID: reel.ID, EventType: models.EventLike, UserID: "u-1", ClientIP: "10.1.2.3"})
	require.NoError(t, err)
	assert.Equal(t, "user:u-1", event.Actor)

	var actors []string
	require.NoError(t, db.Model(&models.EngagementEvent{}).Pluck("actor", &actors).Error)
	assert.ElementsMatch(t, []string{"ip:10.1.2.3", "user:u-1"}, actors)
}

func TestRecord_NoDeduplication(t *testing.T) {
	uc, db := newUseCase(t)
	seller, profile := dbtest.CreateSeller(t, db)
	reel := dbtest.CreateReel(t, db, profile.ID, models.ReelStatusPublished)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := uc.Record(ctx, RecordInput{ReelID: reel.ID, EventType: models.EventLike, ClientIP: "127.0.0.1"})
		require.NoError(t, err)
	}

	stats, err := uc.SellerStats(ctx, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, engagement.Counts{Likes: 3}, stats.Counts)
	assert.Equal(t, int64(1), stats.ReelsCount)
}

func TestRecord_Rejections(t *testing.T) {
	uc, db := newUseCase(t)
	_, profile := dbtest.CreateSeller(t, db)
	reel := dbtest.CreateReel(t, db, profile.ID, models.ReelStatusPublished)
	ctx := context.Background()

	appErr := requireKind(t, mustErr(uc.Record(ctx, RecordInput{ReelID: reel.ID, EventType: "bookmark"})), apperror.KindValidation)
	assert.Contains(t, appErr.Fields, "event_type")

	requireKind(t, mustErr(uc.Record(ctx, RecordInput{ReelID: "not-a-uuid", EventType: models.EventView})), apperror.KindNotFound)
	requireKind(t, mustErr(uc.Record(ctx, RecordInput{ReelID: "9b2f7c43-5d6e-4f1a-8b3c-2d4e6f8a0b1c", EventType: models.EventView})), apperror.KindNotFound)

	var count int64
	require.NoError(t, db.Model(&models.EngagementEvent{}).Count(&count).Error)
	assert.Zero(t, count, "rejected events are not persisted")
}

func TestReelStats_Access(t *testing.T) {
	uc, db := newUseCase(t)
	owner, profile := dbtest.CreateSeller(t, db)
	other, _ := dbtest.CreateSeller(t, db)
	admin := dbtest.CreateUser(t, db, models.RoleAdmin)
	reel := dbtest.CreateReel(t, db, profile.ID, models.ReelStatusPublished)
	dbtest.CreateEvents(t, db, reel.ID, models.EventClickWA, 2)
	require.NoError(t, db.Model(&models.Reel{}).Where("id = ?", reel.ID).Update("is_blocked", true).Error)
	ctx := context.Background()

	stats, err := uc.ReelStats(ctx, owner.ID, reel.ID)
	require.NoError(t, err)
	assert.Equal(t, reel.ID, stats.ReelID)
	assert.Equal(t, int64(2), stats.ClickWA, "blocked reels still report to their owner")

	stats, err = uc.ReelStats(ctx, admin.ID, reel.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.ClickWA)

	_, err = uc.ReelStats(ctx, other.ID, reel.ID)
	requireKind(t, err, apperror.KindForbidden)

	_, err = uc.ReelStats(ctx, "unknown-user", reel.ID)
	requireKind(t, err, apperror.KindForbidden)

	_, err = uc.ReelStats(ctx, owner.ID, "9b2f7c43-5d6e-4f1a-8b3c-2d4e6f8a0b1c")
	requireKind(t, err, apperror.KindNotFound)
}

func TestSellerStats_WithoutProfile(t *testing.T) {
	uc, db := newUseCase(t)
	seller := dbtest.CreateUser(t, db, models.RoleSeller)

	_, err := uc.SellerStats(context.Background(), seller.ID)
	appErr := requireKind(t, err, apperror.KindNotFound)
	assert.Equal(t, "Profile not found", appErr.Message)
}

func TestSellerStats_ZeroFilled(t *testing.T) {
	uc, db := newUseCase(t)
	seller, profile := dbtest.CreateSeller(t, db)

	stats, err := uc.SellerStats(context.Background(), seller.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, stats.ProfileID)
	assert.Zero(t, stats.ReelsCount)
	assert.Equal(t, engagement.Counts{}, stats.Counts)
}

func mustErr(_ interface{}, err error) error {
	return err
}
