package persistent

import (
	"context"

	"umkm-reels/pkg/models"
	"umkm-reels/services/engagement/internal/entity"

	"gorm.io/gorm"
)

// OwnerRepository resolves who owns reels and profiles. Engagement never
// writes to these tables.
type OwnerRepository interface {
	ReelOwner(ctx context.Context, reelID string) (*entity.ReelOwner, error)
	ProfileIDByUser(ctx context.Context, userID string) (string, error)
	CountReels(ctx context.Context, profileID string) (int64, error)
	UserRole(ctx context.Context, userID string) (models.UserRole, error)
}

type ownerRepository struct {
	db *gorm.DB
}

func NewOwnerRepository(db *gorm.DB) OwnerRepository {
	return &ownerRepository{db: db}
}

func (r *ownerRepository) ReelOwner(ctx context.Context, reelID string) (*entity.ReelOwner, error) {
	var owner entity.ReelOwner
	result := r.db.WithContext(ctx).
		Table("reels AS r").
		Select("r.id AS reel_id, r.profile_id AS profile_id, p.user_id AS user_id").
		Joins("JOIN profiles p ON p.id = r.profile_id").
		Where("r.id = ?", reelID).
		Limit(1).
		Scan(&owner)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &owner, nil
}

func (r *ownerRepository) ProfileIDByUser(ctx context.Context, userID string) (string, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).Select("id").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return "", translate(err)
	}
	return profile.ID, nil
}

func (r *ownerRepository) CountReels(ctx context.Context, profileID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Reel{}).Where("profile_id = ?", profileID).Count(&count).Error
	return count, err
}

func (r *ownerRepository) UserRole(ctx context.Context, userID string) (models.UserRole, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Select("role").Where("id = ?", userID).First(&user).Error; err != nil {
		return "", translate(err)
	}
	return user.Role, nil
}
