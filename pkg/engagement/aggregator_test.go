package engagement

import (
	"context"
	"testing"

	"umkm-reels/pkg/dbtest"
	"umkm-reels/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregator_ForReels_ZeroFilled(t *testing.T) {
	db := dbtest.Open(t)
	_, profile := dbtest.CreateSeller(t, db)
	reel := dbtest.CreateReel(t, db, profile.ID, models.ReelStatusPublished)
	dbtest.CreateEvents(t, db, reel.ID, models.EventLike, 3)

	counts, err := NewAggregator(db).ForReels(context.Background(), []string{reel.ID}, Options{})
	require.NoError(t, err)

	assert.Equal(t, Counts{Likes: 3}, counts)
}

func TestAggregator_ForReels_EmptySet(t *testing.T) {
	db := dbtest.Open(t)

	counts, err := NewAggregator(db).ForReels(context.Background(), nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, Counts{}, counts)
}

func TestAggregator_EachTypeCountedExactly(t *testing.T) {
	db := dbtest.Open(t)
	_, profile := dbtest.CreateSeller(t, db)
	reel := dbtest.CreateReel(t, db, profile.ID, models.ReelStatusPublished)
	agg := NewAggregator(db)
	ctx := context.Background()

	for _, et := range models.EventTypes {
		before, err := agg.ForReels(ctx, []string{reel.ID}, Options{})
		require.NoError(t, err)

		dbtest.CreateEvents(t, db, reel.ID, et, 1)

		after, err := agg.ForReels(ctx, []string{reel.ID}, Options{})
		require.NoError(t, err)

		for _, other := range models.EventTypes {
			if other == et {
				assert.Equal(t, before.Of(other)+1, after.Of(other), string(other))
			} else {
				assert.Equal(t, before.Of(other), after.Of(other), string(other))
			}
		}
	}
}

func TestAggregator_ForProfile_ExcludesBlockedByDefault(t *testing.T) {
	db := dbtest.Open(t)
	_, profile := dbtest.CreateSeller(t, db)
	visible := dbtest.CreateReel(t, db, profile.ID, models.ReelStatusPublished)
	blocked := dbtest.CreateReel(t, db, profile.ID, models.ReelStatusPublished)
	require.NoError(t, db.Model(blocked).Update("is_blocked", true).Error)

	dbtest.CreateEvents(t, db, visible.ID, models.EventView, 2)
	dbtest.CreateEvents(t, db, blocked.ID, models.EventView, 5)

	agg := NewAggregator(db)
	ctx := context.Background()

	counts, err := agg.ForProfile(ctx, profile.ID, Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.Views)

	counts, err = agg.ForProfile(ctx, profile.ID, Options{IncludeBlocked: true})
	require.NoError(t, err)
	assert.Equal(t, int64(7), counts.Views)
}

func TestAggregator_ForProfile_BlockedProfile(t *testing.T) {
	db := dbtest.Open(t)
	_, profile := dbtest.CreateSeller(t, db)
	reel := dbtest.CreateReel(t, db, profile.ID, models.ReelStatusPublished)
	dbtest.CreateEvents(t, db, reel.ID, models.EventShare, 4)
	require.NoError(t, db.Model(profile).Update("is_blocked", true).Error)

	agg := NewAggregator(db)

	counts, err := agg.ForProfile(context.Background(), profile.ID, Options{})
	require.NoError(t, err)
	assert.Equal(t, Counts{}, counts)

	counts, err = agg.ForProfile(context.Background(), profile.ID, Options{IncludeBlocked: true})
	require.NoError(t, err)
	assert.Equal(t, int64(4), counts.Shares)
}

func TestAggregator_ForProfiles(t *testing.T) {
	db := dbtest.Open(t)
	_, first := dbtest.CreateSeller(t, db)
	_, second := dbtest.CreateSeller(t, db)
	_, empty := dbtest.CreateSeller(t, db)

	r1 := dbtest.CreateReel(t, db, first.ID, models.ReelStatusPublished)
	r2 := dbtest.CreateReel(t, db, first.ID, models.ReelStatusDraft)
	r3 := dbtest.CreateReel(t, db, second.ID, models.ReelStatusPublished)

	dbtest.CreateEvents(t, db, r1.ID, models.EventLike, 2)
	dbtest.CreateEvents(t, db, r2.ID, models.EventLike, 1)
	dbtest.CreateEvents(t, db, r3.ID, models.EventClickWA, 3)

	result, err := NewAggregator(db).ForProfiles(context.Background(),
		[]string{first.ID, second.ID, empty.ID}, Options{IncludeBlocked: true})
	require.NoError(t, err)

	assert.Len(t, result, 3)
	assert.Equal(t, Counts{Likes: 3}, result[first.ID])
	assert.Equal(t, Counts{ClickWA: 3}, result[second.ID])
	assert.Equal(t, Counts{}, result[empty.ID])
}

func TestAggregator_ForPlatform_Unscoped(t *testing.T) {
	db := dbtest.Open(t)
	_, profile := dbtest.CreateSeller(t, db)
	reel := dbtest.CreateReel(t, db, profile.ID, models.ReelStatusDraft)
	blocked := dbtest.CreateReel(t, db, profile.ID, models.ReelStatusPublished)
	require.NoError(t, db.Model(blocked).Update("is_blocked", true).Error)

	dbtest.CreateEvents(t, db, reel.ID, models.EventView, 1)
	dbtest.CreateEvents(t, db, blocked.ID, models.EventView, 1)
	dbtest.CreateEvents(t, db, blocked.ID, models.EventClickWA, 2)

	counts, err := NewAggregator(db).ForPlatform(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Counts{Views: 2, ClickWA: 2}, counts)
}

func TestActor(t *testing.T) {
	assert.Equal(t, "user:abc", Actor("abc", "10.0.0.1"))
	assert.Equal(t, "ip:10.0.0.1", Actor("", "10.0.0.1"))
	assert.Equal(t, "ip:10.0.0.1", Actor("  ", "10.0.0.1"))
}
