package persistent

import (
	"context"

	"umkm-reels/pkg/models"

	"gorm.io/gorm"
)

type EventRepository interface {
	// Delete removes the events of one reel, or every event when reelID is
	// empty, and reports how many rows went.
	Delete(ctx context.Context, reelID string) (int64, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Delete(ctx context.Context, reelID string) (int64, error) {
	db := r.db.WithContext(ctx)
	if reelID == "" {
		db = db.Session(&gorm.Session{AllowGlobalUpdate: true})
	} else {
		db = db.Where("reel_id = ?", reelID)
	}

	result := db.Delete(&models.EngagementEvent{})
	return result.RowsAffected, result.Error
}
