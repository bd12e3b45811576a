package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is a seller's business listing. At most one exists per user.
type Profile struct {
	ID          string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID      string    `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Name        string    `gorm:"not null" json:"name"`
	Phone       string    `gorm:"type:varchar(20)" json:"phone"`
	Address     string    `json:"address"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	Category    string    `gorm:"type:varchar(50);not null;index" json:"category"`
	Description string    `json:"description"`
	Avatar      string    `json:"avatar"`
	IsOpen      bool      `gorm:"not null" json:"is_open"`
	Hours       string    `json:"hours"`
	IsBlocked   bool      `gorm:"not null;default:false;index" json:"is_blocked"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
