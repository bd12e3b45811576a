package entity

import (
	"time"

	"umkm-reels/pkg/models"
)

type Reel struct {
	ID            string            `json:"id"`
	ProfileID     string            `json:"profile_id"`
	MediaType     models.MediaType  `json:"media_type"`
	VideoURL      string            `json:"video_url"`
	ImageURLs     []string          `json:"image_urls"`
	ThumbnailURL  string            `json:"thumbnail_url"`
	ProductName   string            `json:"product_name"`
	Caption       string            `json:"caption"`
	Price         int64             `json:"price"`
	Category      string            `json:"category"`
	Status        models.ReelStatus `json:"status"`
	IsBlocked     bool              `json:"is_blocked"`
	BlockedReason string            `json:"blocked_reason,omitempty"`
	BlockedAt     *time.Time        `json:"blocked_at,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`

	Profile *PublicProfile `json:"profile,omitempty"`
}

func (r *Reel) MediaURLs() []string {
	urls := make([]string, 0, len(r.ImageURLs)+2)
	if r.VideoURL != "" {
		urls = append(urls, r.VideoURL)
	}
	if r.ThumbnailURL != "" {
		urls = append(urls, r.ThumbnailURL)
	}
	return append(urls, r.ImageURLs...)
}

// ReelFilter narrows public listings.
type ReelFilter struct {
	ProfileID string
	Category  string
}
