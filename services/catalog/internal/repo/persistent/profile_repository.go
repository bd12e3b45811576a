package persistent

import (
	"context"
	"time"

	"umkm-reels/pkg/models"
	"umkm-reels/services/catalog/internal/entity"

	"gorm.io/gorm"
)

// seller-editable columns; is_blocked belongs to moderation
var profileUpdateColumns = []string{
	"name", "phone", "address", "latitude", "longitude", "category",
	"description", "avatar", "is_open", "hours", "updated_at",
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	GetByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	Update(ctx context.Context, profile *entity.Profile) error
	ListVisibleInBound(ctx context.Context, minLat, maxLat, minLng, maxLng float64) ([]*entity.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	profileModel := ToProfileModel(profile)
	if err := r.db.WithContext(ctx).Create(profileModel).Error; err != nil {
		return translate(err)
	}
	*profile = *ToProfileEntity(profileModel)
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	var profileModel models.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&profileModel).Error; err != nil {
		return nil, translate(err)
	}
	return ToProfileEntity(&profileModel), nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	var profileModel models.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profileModel).Error; err != nil {
		return nil, translate(err)
	}
	return ToProfileEntity(&profileModel), nil
}

func (r *profileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	profileModel := ToProfileModel(profile)
	profileModel.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.Profile{ID: profile.ID}).
		Select(profileUpdateColumns).
		Updates(profileModel)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	profile.UpdatedAt = profileModel.UpdatedAt
	return nil
}

func (r *profileRepository) ListVisibleInBound(ctx context.Context, minLat, maxLat, minLng, maxLng float64) ([]*entity.Profile, error) {
	var profileModels []models.Profile
	err := r.db.WithContext(ctx).
		Where("is_blocked = ?", false).
		Where("latitude BETWEEN ? AND ?", minLat, maxLat).
		Where("longitude BETWEEN ? AND ?", minLng, maxLng).
		Find(&profileModels).Error
	if err != nil {
		return nil, err
	}

	profiles := make([]*entity.Profile, len(profileModels))
	for i := range profileModels {
		profiles[i] = ToProfileEntity(&profileModels[i])
	}
	return profiles, nil
}
