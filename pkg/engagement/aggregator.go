package engagement

import (
	"context"
	"fmt"

	"umkm-reels/pkg/models"

	"gorm.io/gorm"
)

type Options struct {
	// IncludeBlocked also counts events of blocked reels and of reels whose
	// profile is blocked.
	IncludeBlocked bool
}

// Aggregator computes engagement totals on demand with one GROUP BY query
// per call. Nothing is cached or precomputed.
type Aggregator struct {
	db *gorm.DB
}

func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db}
}

type typeTotal struct {
	EventType models.EventType
	Total     int64
}

type profileTypeTotal struct {
	ProfileID string
	EventType models.EventType
	Total     int64
}

func (a *Aggregator) scoped(ctx context.Context, opts Options) *gorm.DB {
	q := a.db.WithContext(ctx).
		Table("engagement_events AS e").
		Joins("JOIN reels r ON r.id = e.reel_id")
	if !opts.IncludeBlocked {
		q = q.Joins("JOIN profiles p ON p.id = r.profile_id").
			Where("r.is_blocked = ? AND p.is_blocked = ?", false, false)
	}
	return q
}

func (a *Aggregator) ForReels(ctx context.Context, reelIDs []string, opts Options) (Counts, error) {
	var counts Counts
	if len(reelIDs) == 0 {
		return counts, nil
	}

	var rows []typeTotal
	err := a.scoped(ctx, opts).
		Select("e.event_type AS event_type, COUNT(*) AS total").
		Where("e.reel_id IN ?", reelIDs).
		Group("e.event_type").
		Scan(&rows).Error
	if err != nil {
		return counts, fmt.Errorf("aggregate reel engagement: %w", err)
	}

	for _, row := range rows {
		counts.Add(row.EventType, row.Total)
	}
	return counts, nil
}

func (a *Aggregator) ForProfile(ctx context.Context, profileID string, opts Options) (Counts, error) {
	var counts Counts

	var rows []typeTotal
	err := a.scoped(ctx, opts).
		Select("e.event_type AS event_type, COUNT(*) AS total").
		Where("r.profile_id = ?", profileID).
		Group("e.event_type").
		Scan(&rows).Error
	if err != nil {
		return counts, fmt.Errorf("aggregate profile engagement: %w", err)
	}

	for _, row := range rows {
		counts.Add(row.EventType, row.Total)
	}
	return counts, nil
}

// ForProfiles returns an entry for every requested profile, zero-filled when
// a profile has no reels or no events.
func (a *Aggregator) ForProfiles(ctx context.Context, profileIDs []string, opts Options) (map[string]Counts, error) {
	result := make(map[string]Counts, len(profileIDs))
	for _, id := range profileIDs {
		result[id] = Counts{}
	}
	if len(profileIDs) == 0 {
		return result, nil
	}

	var rows []profileTypeTotal
	err := a.scoped(ctx, opts).
		Select("r.profile_id AS profile_id, e.event_type AS event_type, COUNT(*) AS total").
		Where("r.profile_id IN ?", profileIDs).
		Group("r.profile_id, e.event_type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate profiles engagement: %w", err)
	}

	for _, row := range rows {
		c := result[row.ProfileID]
		c.Add(row.EventType, row.Total)
		result[row.ProfileID] = c
	}
	return result, nil
}

// ForPlatform counts every event regardless of moderation state.
func (a *Aggregator) ForPlatform(ctx context.Context) (Counts, error) {
	var counts Counts

	var rows []typeTotal
	err := a.db.WithContext(ctx).
		Model(&models.EngagementEvent{}).
		Select("event_type, COUNT(*) AS total").
		Group("event_type").
		Scan(&rows).Error
	if err != nil {
		return counts, fmt.Errorf("aggregate platform engagement: %w", err)
	}

	for _, row := range rows {
		counts.Add(row.EventType, row.Total)
	}
	return counts, nil
}
