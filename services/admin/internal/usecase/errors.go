package usecase

import (
	"context"
	"errors"
	"time"

	"umkm-reels/pkg/apperror"
	"umkm-reels/pkg/logger"
	"umkm-reels/pkg/queue"
	"umkm-reels/services/admin/internal/repo/persistent"
)

const (
	msgUnauthorized   = "This action is unauthorized."
	msgSellerNotFound = "Seller not found"
	msgReelNotFound   = "Reel not found"
	msgUserNotFound   = "User not found"

	publishTimeout = 5 * time.Second
)

// Publisher is satisfied by *queue.Client.
type Publisher interface {
	PublishModerationEvent(ctx context.Context, event queue.ModerationEvent) error
}

// requireAdmin re-reads the caller's role; a token issued before a demotion
// must not keep admin rights.
func requireAdmin(ctx context.Context, users persistent.UserRepository, userID string) error {
	user, err := users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return apperror.Forbidden(msgUnauthorized)
		}
		return apperror.Internal("failed to load user", err)
	}
	if !user.Role.CanModerate() {
		return apperror.Forbidden(msgUnauthorized)
	}
	return nil
}

// publish sends the event in the background. A missing or failing broker
// never fails the request.
func publish(publisher Publisher, log *logger.Logger, event queue.ModerationEvent) {
	if publisher == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := publisher.PublishModerationEvent(ctx, event); err != nil {
			log.Error("[MODERATION QUEUE] Failed to publish %s for %s: %v", event.Type, event.SubjectID, err)
		}
	}()
}
