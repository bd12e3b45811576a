package persistent

import (
	"context"
	"time"

	"umkm-reels/pkg/models"
	"umkm-reels/services/catalog/internal/entity"

	"gorm.io/gorm"
)

var reelUpdateColumns = []string{
	"product_name", "caption", "price", "category", "status", "updated_at",
}

type ReelRepository interface {
	Create(ctx context.Context, reel *entity.Reel) error
	GetByID(ctx context.Context, id string) (*entity.Reel, error)
	Update(ctx context.Context, reel *entity.Reel) error
	Delete(ctx context.Context, id string) error
	ListByProfile(ctx context.Context, profileID string, limit, offset int) ([]*entity.Reel, int64, error)
	ListPublished(ctx context.Context, filter entity.ReelFilter, limit, offset int) ([]*entity.Reel, int64, error)
	GetPublished(ctx context.Context, id string) (*entity.Reel, error)
}

type reelRepository struct {
	db *gorm.DB
}

func NewReelRepository(db *gorm.DB) ReelRepository {
	return &reelRepository{db: db}
}

func (r *reelRepository) Create(ctx context.Context, reel *entity.Reel) error {
	reelModel := ToReelModel(reel)
	if err := r.db.WithContext(ctx).Create(reelModel).Error; err != nil {
		return translate(err)
	}
	*reel = *ToReelEntity(reelModel)
	return nil
}

func (r *reelRepository) GetByID(ctx context.Context, id string) (*entity.Reel, error) {
	var reelModel models.Reel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&reelModel).Error; err != nil {
		return nil, translate(err)
	}
	return ToReelEntity(&reelModel), nil
}

func (r *reelRepository) Update(ctx context.Context, reel *entity.Reel) error {
	reelModel := ToReelModel(reel)
	reelModel.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.Reel{ID: reel.ID}).
		Select(reelUpdateColumns).
		Updates(reelModel)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	reel.UpdatedAt = reelModel.UpdatedAt
	return nil
}

// Delete removes the row; engagement events go with it via ON DELETE CASCADE.
func (r *reelRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Reel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *reelRepository) ListByProfile(ctx context.Context, profileID string, limit, offset int) ([]*entity.Reel, int64, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Reel{}).Where("profile_id = ?", profileID)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reelModels []models.Reel
	query := base().Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&reelModels).Error; err != nil {
		return nil, 0, err
	}

	return toReelEntities(reelModels), total, nil
}

func (r *reelRepository) visible(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Reel{}).
		Joins("JOIN profiles ON profiles.id = reels.profile_id").
		Where("reels.status = ?", models.ReelStatusPublished).
		Where("reels.is_blocked = ? AND profiles.is_blocked = ?", false, false)
}

// ListPublished returns published reels that are neither blocked themselves
// nor owned by a blocked profile.
func (r *reelRepository) ListPublished(ctx context.Context, filter entity.ReelFilter, limit, offset int) ([]*entity.Reel, int64, error) {
	base := func() *gorm.DB {
		q := r.visible(ctx)
		if filter.ProfileID != "" {
			q = q.Where("reels.profile_id = ?", filter.ProfileID)
		}
		if filter.Category != "" {
			q = q.Where("reels.category = ?", filter.Category)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reelModels []models.Reel
	query := base().
		Select("reels.*").
		Preload("Profile").
		Order("reels.created_at DESC").
		Order("reels.id DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&reelModels).Error; err != nil {
		return nil, 0, err
	}

	return toReelEntities(reelModels), total, nil
}

func (r *reelRepository) GetPublished(ctx context.Context, id string) (*entity.Reel, error) {
	var reelModel models.Reel
	err := r.visible(ctx).
		Select("reels.*").
		Preload("Profile").
		Where("reels.id = ?", id).
		First(&reelModel).Error
	if err != nil {
		return nil, translate(err)
	}
	return ToReelEntity(&reelModel), nil
}

func toReelEntities(reelModels []models.Reel) []*entity.Reel {
	reels := make([]*entity.Reel, len(reelModels))
	for i := range reelModels {
		reels[i] = ToReelEntity(&reelModels[i])
	}
	return reels
}
