package entity

import (
	"time"

	"umkm-reels/pkg/engagement"
	"umkm-reels/pkg/models"
)

type User struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	Avatar    string          `json:"avatar"`
	CreatedAt time.Time       `json:"created_at"`
}

// SellerProfile is the admin view of a profile: public fields plus the
// moderation flag and the number of reels.
type SellerProfile struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Phone       string   `json:"phone"`
	Address     string   `json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Avatar      string   `json:"avatar"`
	IsOpen      bool     `json:"is_open"`
	Hours       string   `json:"hours"`
	IsBlocked   bool     `json:"is_blocked"`
	ReelsCount  int64    `json:"reels_count"`
}

type Seller struct {
	User
	Profile *SellerProfile    `json:"profile"`
	Stats   engagement.Counts `json:"stats"`
}

// SellerBlock is returned by block and unblock.
type SellerBlock struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsBlocked bool   `json:"is_blocked"`
}
