package entity

import (
	"time"

	"umkm-reels/pkg/models"
)

type User struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	Avatar    string          `json:"avatar"`
	CreatedAt time.Time       `json:"-"`
}
