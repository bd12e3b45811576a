package persistent

import (
	"umkm-reels/pkg/models"
	"umkm-reels/services/admin/internal/entity"
)

func ToUserEntity(m *models.User) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Role:      m.Role,
		Avatar:    m.Avatar,
		CreatedAt: m.CreatedAt,
	}
}

func ToSellerProfileEntity(m *models.Profile, reelsCount int64) *entity.SellerProfile {
	if m == nil {
		return nil
	}

	return &entity.SellerProfile{
		ID:          m.ID,
		Name:        m.Name,
		Phone:       m.Phone,
		Address:     m.Address,
		Latitude:    m.Latitude,
		Longitude:   m.Longitude,
		Category:    m.Category,
		Description: m.Description,
		Avatar:      m.Avatar,
		IsOpen:      m.IsOpen,
		Hours:       m.Hours,
		IsBlocked:   m.IsBlocked,
		ReelsCount:  reelsCount,
	}
}

func ToReelModerationEntity(m *models.Reel) *entity.ReelModeration {
	if m == nil {
		return nil
	}

	return &entity.ReelModeration{
		ID:            m.ID,
		ProfileID:     m.ProfileID,
		ProductName:   m.ProductName,
		Status:        m.Status,
		IsBlocked:     m.IsBlocked,
		BlockedReason: m.BlockedReason,
		BlockedAt:     m.BlockedAt,
	}
}
