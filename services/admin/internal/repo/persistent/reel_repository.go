package persistent

import (
	"context"
	"time"

	"umkm-reels/pkg/models"
	"umkm-reels/services/admin/internal/entity"

	"gorm.io/gorm"
)

type ReelRepository interface {
	GetByID(ctx context.Context, id string) (*entity.ReelModeration, error)
	SetBlocked(ctx context.Context, id string, blocked bool, reason string, at *time.Time) error
	Count(ctx context.Context) (int64, error)
}

type reelRepository struct {
	db *gorm.DB
}

func NewReelRepository(db *gorm.DB) ReelRepository {
	return &reelRepository{db: db}
}

func (r *reelRepository) GetByID(ctx context.Context, id string) (*entity.ReelModeration, error) {
	var reel models.Reel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&reel).Error; err != nil {
		return nil, translate(err)
	}
	return ToReelModerationEntity(&reel), nil
}

// SetBlocked writes the moderation fields only; the lifecycle status is left
// alone.
func (r *reelRepository) SetBlocked(ctx context.Context, id string, blocked bool, reason string, at *time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.Reel{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_blocked":     blocked,
			"blocked_reason": reason,
			"blocked_at":     at,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *reelRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Reel{}).Count(&count).Error
	return count, err
}
