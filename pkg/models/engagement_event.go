package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventType string

const (
	EventView    EventType = "view"
	EventLike    EventType = "like"
	EventShare   EventType = "share"
	EventClickWA EventType = "click_wa"
)

// EventTypes is the closed set of recordable engagement types.
var EventTypes = []EventType{EventView, EventLike, EventShare, EventClickWA}

func (e EventType) Valid() bool {
	for _, t := range EventTypes {
		if e == t {
			return true
		}
	}
	return false
}

// EngagementEvent is append-only: rows are never updated.
type EngagementEvent struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	ReelID    string    `gorm:"type:uuid;not null;index:idx_engagement_reel_type" json:"reel_id"`
	Actor     string    `gorm:"type:varchar(100);not null" json:"actor"`
	EventType EventType `gorm:"type:varchar(20);not null;index:idx_engagement_reel_type" json:"event_type"`
	CreatedAt time.Time `json:"created_at"`

	Reel *Reel `gorm:"foreignKey:ReelID;constraint:OnDelete:CASCADE" json:"-"`
}

func (e *EngagementEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

// All returns every model in dependency order.
func All() []interface{} {
	return []interface{}{&User{}, &Profile{}, &Reel{}, &EngagementEvent{}}
}
