package entity

import (
	"time"

	"umkm-reels/pkg/engagement"
	"umkm-reels/pkg/models"
)

type ReelModeration struct {
	ID            string            `json:"id"`
	ProfileID     string            `json:"profile_id"`
	ProductName   string            `json:"product_name"`
	Status        models.ReelStatus `json:"status"`
	IsBlocked     bool              `json:"is_blocked"`
	BlockedReason string            `json:"blocked_reason"`
	BlockedAt     *time.Time        `json:"blocked_at"`
}

// PlatformStats counts every row regardless of status or moderation flags.
type PlatformStats struct {
	TotalUsers   int64             `json:"total_users"`
	TotalSellers int64             `json:"total_sellers"`
	TotalReels   int64             `json:"total_reels"`
	Engagement   engagement.Counts `json:"engagement"`
}
