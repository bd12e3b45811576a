package persistent

import (
	"umkm-reels/pkg/models"
	"umkm-reels/services/catalog/internal/entity"
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

func ToProfileEntity(m *models.Profile) *entity.Profile {
	if m == nil {
		return nil
	}

	return &entity.Profile{
		ID:          m.ID,
		UserID:      m.UserID,
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
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToProfileModel(e *entity.Profile) *models.Profile {
	if e == nil {
		return nil
	}

	return &models.Profile{
		ID:          e.ID,
		UserID:      e.UserID,
		Name:        e.Name,
		Phone:       e.Phone,
		Address:     e.Address,
		Latitude:    e.Latitude,
		Longitude:   e.Longitude,
		Category:    e.Category,
		Description: e.Description,
		Avatar:      e.Avatar,
		IsOpen:      e.IsOpen,
		Hours:       e.Hours,
		IsBlocked:   e.IsBlocked,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ToReelEntity(m *models.Reel) *entity.Reel {
	if m == nil {
		return nil
	}

	reel := &entity.Reel{
		ID:            m.ID,
		ProfileID:     m.ProfileID,
		MediaType:     m.MediaType,
		VideoURL:      m.VideoURL,
		ImageURLs:     []string(m.ImageURLs),
		ThumbnailURL:  m.ThumbnailURL,
		ProductName:   m.ProductName,
		Caption:       m.Caption,
		Price:         m.Price,
		Category:      m.Category,
		Status:        m.Status,
		IsBlocked:     m.IsBlocked,
		BlockedReason: m.BlockedReason,
		BlockedAt:     m.BlockedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if reel.ImageURLs == nil {
		reel.ImageURLs = []string{}
	}
	if m.Profile != nil {
		reel.Profile = ToProfileEntity(m.Profile).Public()
	}

	return reel
}

func ToReelModel(e *entity.Reel) *models.Reel {
	if e == nil {
		return nil
	}

	return &models.Reel{
		ID:            e.ID,
		ProfileID:     e.ProfileID,
		MediaType:     e.MediaType,
		VideoURL:      e.VideoURL,
		ImageURLs:     e.ImageURLs,
		ThumbnailURL:  e.ThumbnailURL,
		ProductName:   e.ProductName,
		Caption:       e.Caption,
		Price:         e.Price,
		Category:      e.Category,
		Status:        e.Status,
		IsBlocked:     e.IsBlocked,
		BlockedReason: e.BlockedReason,
		BlockedAt:     e.BlockedAt,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
