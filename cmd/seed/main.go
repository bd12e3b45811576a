package main

import (
	"context"
	"fmt"
	"os"

	"umkm-reels/pkg/config"
	"umkm-reels/pkg/database"
	"umkm-reels/pkg/engagement"
	"umkm-reels/pkg/jwt"
	"umkm-reels/pkg/logger"
	"umkm-reels/pkg/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg, log)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	defer database.Close(db)

	users, err := seedDatabase(context.Background(), db)
	if err != nil {
		log.Error("Failed to seed database: %v", err)
		os.Exit(1)
	}

	// development tokens, signed with the configured secret
	jwtService := jwt.NewService(cfg.JWTSecret)
	for _, user := range users {
		token, err := jwtService.GenerateToken(user.ID, string(user.Role))
		if err != nil {
			log.Error("Failed to sign token for %s: %v", user.Email, err)
			continue
		}
		fmt.Printf("%-8s %-24s %s\n", user.Role, user.Email, token)
	}

	log.Info("Database seeded successfully!")
}

type seedReel struct {
	name     string
	caption  string
	price    int64
	status   models.ReelStatus
	likes    int
	views    int
	clicksWA int
}

// seedDatabase is idempotent: users are matched by email and the seller's
// profile and reels are only created on the first run.
func seedDatabase(ctx context.Context, db *gorm.DB) ([]*models.User, error) {
	users := []*models.User{
		{Name: "Admin UMKM", Email: "admin@umkm.test", Role: models.RoleAdmin},
		{Name: "Bu Sari", Email: "sari@umkm.test", Role: models.RoleSeller},
		{Name: "Pak Budi", Email: "budi@umkm.test", Role: models.RoleOrdinary},
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, user := range users {
			if err := tx.Where(models.User{Email: user.Email}).Attrs(models.User{Name: user.Name, Role: user.Role}).FirstOrCreate(user).Error; err != nil {
				return fmt.Errorf("user %s: %w", user.Email, err)
			}
		}

		seller, buyer := users[1], users[2]
		lat, lng := -6.2088, 106.8456
		profile := &models.Profile{
			UserID:      seller.ID,
			Name:        "Warung Sari",
			Phone:       "081234567890",
			Address:     "Jl. Kebon Sirih No. 12, Jakarta Pusat",
			Latitude:    &lat,
			Longitude:   &lng,
			Category:    "kuliner",
			Description: "Keripik dan sambal rumahan",
			IsOpen:      true,
			Hours:       "08:00-20:00",
		}
		result := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).Create(profile)
		if result.Error != nil {
			return fmt.Errorf("profile: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil
		}

		reels := []seedReel{
			{name: "Keripik Pedas", caption: "Renyah, level 1-5", price: 12000, status: models.ReelStatusPublished, likes: 3, views: 12, clicksWA: 2},
			{name: "Sambal Bawang", caption: "Tanpa pengawet", price: 18000, status: models.ReelStatusPublished, likes: 1, views: 5},
			{name: "Rempeyek Kacang", price: 10000, status: models.ReelStatusDraft},
		}
		for i, r := range reels {
			reel := &models.Reel{
				ProfileID:    profile.ID,
				MediaType:    models.MediaTypeImage,
				ImageURLs:    []string{fmt.Sprintf("/storage/seed/reel-%d.jpg", i+1)},
				ThumbnailURL: fmt.Sprintf("/storage/seed/reel-%d_thumb.jpg", i+1),
				ProductName:  r.name,
				Caption:      r.caption,
				Price:        r.price,
				Category:     profile.Category,
				Status:       r.status,
			}
			if err := tx.Create(reel).Error; err != nil {
				return fmt.Errorf("reel %s: %w", r.name, err)
			}
			if err := seedEvents(tx, reel.ID, buyer.ID, r); err != nil {
				return err
			}
		}
		return nil
	})
	return users, err
}

func seedEvents(tx *gorm.DB, reelID, buyerID string, r seedReel) error {
	var events []models.EngagementEvent
	add := func(eventType models.EventType, n int, actor string) {
		for i := 0; i < n; i++ {
			events = append(events, models.EngagementEvent{ReelID: reelID, Actor: actor, EventType: eventType})
		}
	}
	add(models.EventView, r.views, engagement.Actor("", "127.0.0.1"))
	add(models.EventLike, r.likes, engagement.Actor(buyerID, ""))
	add(models.EventClickWA, r.clicksWA, engagement.Actor(buyerID, ""))
	if len(events) == 0 {
		return nil
	}
	if err := tx.Create(&events).Error; err != nil {
		return fmt.Errorf("events for %s: %w", r.name, err)
	}
	return nil
}
