package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ReelStatus string

const (
	ReelStatusDraft     ReelStatus = "draft"
	ReelStatusReview    ReelStatus = "review"
	ReelStatusPublished ReelStatus = "published"
)

var reelStatusOrder = map[ReelStatus]int{
	ReelStatusDraft:     0,
	ReelStatusReview:    1,
	ReelStatusPublished: 2,
}

func (s ReelStatus) Valid() bool {
	_, ok := reelStatusOrder[s]
	return ok
}

// CanTransitionTo allows staying put or moving exactly one step forward.
func (s ReelStatus) CanTransitionTo(next ReelStatus) bool {
	from, ok := reelStatusOrder[s]
	if !ok {
		return false
	}
	to, ok := reelStatusOrder[next]
	if !ok {
		return false
	}
	return to == from || to == from+1
}

type MediaType string

const (
	MediaTypeVideo MediaType = "video"
	MediaTypeImage MediaType = "image"
)

func (m MediaType) Valid() bool {
	return m == MediaTypeVideo || m == MediaTypeImage
}

type Reel struct {
	ID            string                      `gorm:"type:uuid;primary_key" json:"id"`
	ProfileID     string                      `gorm:"type:uuid;not null;index" json:"profile_id"`
	MediaType     MediaType                   `gorm:"type:varchar(10);not null" json:"media_type"`
	VideoURL      string                      `json:"video_url"`
	ImageURLs     datatypes.JSONSlice[string] `json:"image_urls"`
	ThumbnailURL  string                      `json:"thumbnail_url"`
	ProductName   string                      `gorm:"not null" json:"product_name"`
	Caption       string                      `json:"caption"`
	Price         int64                       `gorm:"not null;default:0" json:"price"`
	Category      string                      `gorm:"type:varchar(50);index" json:"category"`
	Status        ReelStatus                  `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	IsBlocked     bool                        `gorm:"not null;default:false" json:"is_blocked"`
	BlockedReason string                      `json:"blocked_reason"`
	BlockedAt     *time.Time                  `json:"blocked_at"`
	CreatedAt     time.Time                   `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`

	Profile *Profile `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"-"`
}

func (r *Reel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// MediaURLs lists every stored blob reference of the reel.
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
