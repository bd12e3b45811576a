package entity

import "time"

type Profile struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Avatar      string    `json:"avatar"`
	IsOpen      bool      `json:"is_open"`
	Hours       string    `json:"hours"`
	IsBlocked   bool      `json:"is_blocked"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PublicProfile is the only shape of a profile anonymous visitors see.
type PublicProfile struct {
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
}

func (p *Profile) Public() *PublicProfile {
	return &PublicProfile{
		ID:          p.ID,
		Name:        p.Name,
		Phone:       p.Phone,
		Address:     p.Address,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		Category:    p.Category,
		Description: p.Description,
		Avatar:      p.Avatar,
		IsOpen:      p.IsOpen,
		Hours:       p.Hours,
	}
}

type NearbyProfile struct {
	*PublicProfile
	DistanceKM float64 `json:"distance_km"`
}
