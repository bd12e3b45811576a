package persistent

import (
	"context"
	"errors"
	"time"

	"umkm-reels/pkg/models"
	"umkm-reels/services/admin/internal/entity"

	"gorm.io/gorm"
)

// SellerRepository reads seller users joined with their profile. Stats are
// filled in by the caller.
type SellerRepository interface {
	List(ctx context.Context, limit, offset int) ([]*entity.Seller, int64, error)
	Get(ctx context.Context, userID string) (*entity.Seller, error)
	SetBlocked(ctx context.Context, profileID string, blocked bool) error
}

type sellerRepository struct {
	db *gorm.DB
}

func NewSellerRepository(db *gorm.DB) SellerRepository {
	return &sellerRepository{db: db}
}

type reelCount struct {
	ProfileID string
	Total     int64
}

func (r *sellerRepository) List(ctx context.Context, limit, offset int) ([]*entity.Seller, int64, error) {
	db := r.db.WithContext(ctx)
	query := db.Model(&models.User{}).Where("role = ?", models.RoleSeller)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := query.Order("created_at DESC").Order("id").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	if len(users) == 0 {
		return []*entity.Seller{}, total, nil
	}

	userIDs := make([]string, len(users))
	for i := range users {
		userIDs[i] = users[i].ID
	}

	var profiles []models.Profile
	if err := db.Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
		return nil, 0, err
	}

	profileIDs := make([]string, len(profiles))
	byUser := make(map[string]*models.Profile, len(profiles))
	for i := range profiles {
		profileIDs[i] = profiles[i].ID
		byUser[profiles[i].UserID] = &profiles[i]
	}

	counts, err := r.reelCounts(ctx, profileIDs)
	if err != nil {
		return nil, 0, err
	}

	sellers := make([]*entity.Seller, len(users))
	for i := range users {
		seller := &entity.Seller{User: *ToUserEntity(&users[i])}
		if p, ok := byUser[users[i].ID]; ok {
			seller.Profile = ToSellerProfileEntity(p, counts[p.ID])
		}
		sellers[i] = seller
	}
	return sellers, total, nil
}

func (r *sellerRepository) Get(ctx context.Context, userID string) (*entity.Seller, error) {
	db := r.db.WithContext(ctx)

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, translate(err)
	}

	seller := &entity.Seller{User: *ToUserEntity(&user)}

	var profile models.Profile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	switch {
	case err == nil:
		counts, err := r.reelCounts(ctx, []string{profile.ID})
		if err != nil {
			return nil, err
		}
		seller.Profile = ToSellerProfileEntity(&profile, counts[profile.ID])
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	return seller, nil
}

func (r *sellerRepository) SetBlocked(ctx context.Context, profileID string, blocked bool) error {
	result := r.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", profileID).
		Updates(map[string]interface{}{"is_blocked": blocked, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sellerRepository) reelCounts(ctx context.Context, profileIDs []string) (map[string]int64, error) {
	result := make(map[string]int64, len(profileIDs))
	if len(profileIDs) == 0 {
		return result, nil
	}

	var rows []reelCount
	err := r.db.WithContext(ctx).Model(&models.Reel{}).
		Select("profile_id, COUNT(*) AS total").
		Where("profile_id IN ?", profileIDs).
		Group("profile_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.ProfileID] = row.Total
	}
	return result, nil
}
