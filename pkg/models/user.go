package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleOrdinary UserRole = "ordinary"
	RoleSeller   UserRole = "seller"
	RoleAdmin    UserRole = "admin"
)

func ParseUserRole(s string) (UserRole, bool) {
	r := UserRole(s)
	return r, r.Valid()
}

func (r UserRole) Valid() bool {
	switch r {
	case RoleOrdinary, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// CanSell reports whether the role may own a business profile and reels.
func (r UserRole) CanSell() bool {
	return r == RoleSeller
}

func (r UserRole) CanModerate() bool {
	return r == RoleAdmin
}

// User rows are written by the identity provider; this backend only reads
// them and changes Role.
type User struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Role      UserRole  `gorm:"type:varchar(20);not null;default:'ordinary'" json:"role"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
