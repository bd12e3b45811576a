package engagement

import (
	"strings"

	"umkm-reels/pkg/models"
)

// Counts holds one total per engagement type. Absent types stay zero.
type Counts struct {
	Views   int64 `json:"total_views"`
	Likes   int64 `json:"total_likes"`
	Shares  int64 `json:"total_shares"`
	ClickWA int64 `json:"total_click_wa"`
}

func (c *Counts) Add(eventType models.EventType, n int64) {
	switch eventType {
	case models.EventView:
		c.Views += n
	case models.EventLike:
		c.Likes += n
	case models.EventShare:
		c.Shares += n
	case models.EventClickWA:
		c.ClickWA += n
	}
}

func (c Counts) Of(eventType models.EventType) int64 {
	switch eventType {
	case models.EventView:
		return c.Views
	case models.EventLike:
		return c.Likes
	case models.EventShare:
		return c.Shares
	case models.EventClickWA:
		return c.ClickWA
	}
	return 0
}

// Actor identifies who recorded an event: the authenticated user when there
// is one, the client address otherwise.
func Actor(userID, clientIP string) string {
	if userID = strings.TrimSpace(userID); userID != "" {
		return "user:" + userID
	}
	return "ip:" + clientIP
}
