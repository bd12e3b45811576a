package usecase

import (
	"context"
	"errors"
	"time"

	"umkm-reels/pkg/apperror"
	"umkm-reels/pkg/engagement"
	"umkm-reels/pkg/logger"
	"umkm-reels/pkg/models"
	"umkm-reels/pkg/queue"
	"umkm-reels/services/admin/internal/entity"
	"umkm-reels/services/admin/internal/repo/persistent"

	"github.com/google/uuid"
)

type ModerationUseCase interface {
	ListSellers(ctx context.Context, adminID string, limit, offset int) ([]*entity.Seller, int64, error)
	SetSellerBlocked(ctx context.Context, adminID, userID string, blocked bool) (*entity.SellerBlock, error)
	SetReelBlocked(ctx context.Context, adminID, reelID string, blocked bool, reason string) (*entity.ReelModeration, error)
	ChangeRole(ctx context.Context, adminID, userID string, role models.UserRole) (*entity.User, error)
}

type moderationUseCase struct {
	userRepo   persistent.UserRepository
	sellerRepo persistent.SellerRepository
	reelRepo   persistent.ReelRepository
	aggregator *engagement.Aggregator
	publisher  Publisher
	logger     *logger.Logger
}

// NewModerationUseCase accepts a nil publisher when no broker is configured.
func NewModerationUseCase(
	userRepo persistent.UserRepository,
	sellerRepo persistent.SellerRepository,
	reelRepo persistent.ReelRepository,
	aggregator *engagement.Aggregator,
	publisher Publisher,
	logger *logger.Logger,
) ModerationUseCase {
	return &moderationUseCase{
		userRepo:   userRepo,
		sellerRepo: sellerRepo,
		reelRepo:   reelRepo,
		aggregator: aggregator,
		publisher:  publisher,
		logger:     logger,
	}
}

func (uc *moderationUseCase) ListSellers(ctx context.Context, adminID string, limit, offset int) ([]*entity.Seller, int64, error) {
	if err := requireAdmin(ctx, uc.userRepo, adminID); err != nil {
		return nil, 0, err
	}

	sellers, total, err := uc.sellerRepo.List(ctx, limit, offset)
	if err != nil {
		uc.logger.Error("Failed to list sellers: %v", err)
		return nil, 0, apperror.Internal("failed to list sellers", err)
	}

	profileIDs := make([]string, 0, len(sellers))
	for _, s := range sellers {
		if s.Profile != nil {
			profileIDs = append(profileIDs, s.Profile.ID)
		}
	}

	stats, err := uc.aggregator.ForProfiles(ctx, profileIDs, engagement.Options{IncludeBlocked: true})
	if err != nil {
		return nil, 0, apperror.Internal("failed to aggregate engagement", err)
	}
	for _, s := range sellers {
		if s.Profile != nil {
			s.Stats = stats[s.Profile.ID]
		}
	}

	return sellers, total, nil
}

// SetSellerBlocked flips the profile flag. Individual reel flags are left
// untouched; read paths hide a blocked profile's reels on their own.
func (uc *moderationUseCase) SetSellerBlocked(ctx context.Context, adminID, userID string, blocked bool) (*entity.SellerBlock, error) {
	if err := requireAdmin(ctx, uc.userRepo, adminID); err != nil {
		return nil, err
	}

	if _, err := uuid.Parse(userID); err != nil {
		return nil, apperror.NotFound(msgSellerNotFound)
	}

	seller, err := uc.sellerRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, apperror.NotFound(msgSellerNotFound)
		}
		return nil, apperror.Internal("failed to load seller", err)
	}
	if seller.Role != models.RoleSeller || seller.Profile == nil {
		return nil, apperror.NotFound(msgSellerNotFound)
	}

	if seller.Profile.IsBlocked != blocked {
		if err := uc.sellerRepo.SetBlocked(ctx, seller.Profile.ID, blocked); err != nil {
			uc.logger.Error("Failed to update seller %s: %v", userID, err)
			return nil, apperror.Internal("failed to update seller", err)
		}

		eventType := queue.EventSellerUnblocked
		if blocked {
			eventType = queue.EventSellerBlocked
		}
		uc.logger.Info("Admin %s set seller %s blocked=%t", adminID, userID, blocked)
		publish(uc.publisher, uc.logger, queue.ModerationEvent{
			Type:       eventType,
			SubjectID:  userID,
			ActorID:    adminID,
			Attributes: map[string]string{"profile_id": seller.Profile.ID},
		})
	}

	return &entity.SellerBlock{ID: seller.ID, Name: seller.Name, IsBlocked: blocked}, nil
}

func (uc *moderationUseCase) SetReelBlocked(ctx context.Context, adminID, reelID string, blocked bool, reason string) (*entity.ReelModeration, error) {
	if err := requireAdmin(ctx, uc.userRepo, adminID); err != nil {
		return nil, err
	}

	if _, err := uuid.Parse(reelID); err != nil {
		return nil, apperror.NotFound(msgReelNotFound)
	}

	reel, err := uc.reelRepo.GetByID(ctx, reelID)
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, apperror.NotFound(msgReelNotFound)
		}
		return nil, apperror.Internal("failed to load reel", err)
	}

	var at *time.Time
	if blocked {
		now := time.Now()
		at = &now
	} else {
		reason = ""
	}

	if err := uc.reelRepo.SetBlocked(ctx, reelID, blocked, reason, at); err != nil {
		uc.logger.Error("Failed to update reel %s: %v", reelID, err)
		return nil, apperror.Internal("failed to update reel", err)
	}

	if reel.IsBlocked != blocked {
		eventType := queue.EventReelUnblocked
		if blocked {
			eventType = queue.EventReelBlocked
		}
		publish(uc.publisher, uc.logger, queue.ModerationEvent{
			Type:       eventType,
			SubjectID:  reelID,
			ActorID:    adminID,
			Reason:     reason,
			Attributes: map[string]string{"profile_id": reel.ProfileID},
		})
	}

	reel.IsBlocked = blocked
	reel.BlockedReason = reason
	reel.BlockedAt = at
	return reel, nil
}

func (uc *moderationUseCase) ChangeRole(ctx context.Context, adminID, userID string, role models.UserRole) (*entity.User, error) {
	if err := requireAdmin(ctx, uc.userRepo, adminID); err != nil {
		return nil, err
	}

	if !role.Valid() {
		return nil, apperror.Field("role", "The selected role is invalid.")
	}
	if userID == adminID {
		return nil, apperror.Field("role", "You cannot change your own role.")
	}

	if _, err := uuid.Parse(userID); err != nil {
		return nil, apperror.NotFound(msgUserNotFound)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, apperror.NotFound(msgUserNotFound)
		}
		return nil, apperror.Internal("failed to load user", err)
	}

	if user.Role == role {
		return user, nil
	}

	if err := uc.userRepo.UpdateRole(ctx, userID, role); err != nil {
		uc.logger.Error("Failed to change role of %s: %v", userID, err)
		return nil, apperror.Internal("failed to change role", err)
	}

	previous := user.Role
	user.Role = role
	publish(uc.publisher, uc.logger, queue.ModerationEvent{
		Type:       queue.EventUserRoleChanged,
		SubjectID:  userID,
		ActorID:    adminID,
		Attributes: map[string]string{"from": string(previous), "to": string(role)},
	})

	return user, nil
}
