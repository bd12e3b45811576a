package persistent

import (
	"context"

	"umkm-reels/pkg/models"
	"umkm-reels/services/engagement/internal/entity"

	"gorm.io/gorm"
)

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// Create appends one row. There is no uniqueness check; repeated calls
// record repeated events.
func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	m := &models.EngagementEvent{
		ReelID:    event.ReelID,
		Actor:     event.Actor,
		EventType: event.EventType,
		CreatedAt: event.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	event.ID = m.ID
	return nil
}
