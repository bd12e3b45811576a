package entity

import (
	"time"

	"umkm-reels/pkg/engagement"
	"umkm-reels/pkg/models"
)

type Event struct {
	ID        string           `json:"id"`
	ReelID    string           `json:"reel_id"`
	Actor     string           `json:"-"`
	EventType models.EventType `json:"event_type"`
	CreatedAt time.Time        `json:"created_at"`
}

// ReelOwner ties a reel to the profile and user that own it.
type ReelOwner struct {
	ReelID    string
	ProfileID string
	UserID    string
}

type ReelStats struct {
	ReelID string `json:"reel_id"`
	engagement.Counts
}

type SellerStats struct {
	ProfileID  string `json:"profile_id"`
	ReelsCount int64  `json:"reels_count"`
	engagement.Counts
}
