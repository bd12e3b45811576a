package usecase

import (
	"context"
	"errors"
	"time"

	"umkm-reels/pkg/apperror"
	"umkm-reels/pkg/engagement"
	"umkm-reels/pkg/logger"
	"umkm-reels/pkg/models"
	"umkm-reels/services/engagement/internal/entity"
	"umkm-reels/services/engagement/internal/repo/persistent"

	"github.com/google/uuid"
)

const (
	msgUnauthorized    = "This action is unauthorized."
	msgReelNotFound    = "Reel not found"
	msgProfileNotFound = "Profile not found"
)

type RecordInput struct {
	ReelID    string
	EventType models.EventType
	UserID    string
	ClientIP  string
}

type EngagementUseCase interface {
	Record(ctx context.Context, input RecordInput) (*entity.Event, error)
	ReelStats(ctx context.Context, userID, reelID string) (*entity.ReelStats, error)
	SellerStats(ctx context.Context, userID string) (*entity.SellerStats, error)
}

type engagementUseCase struct {
	eventRepo  persistent.EventRepository
	ownerRepo  persistent.OwnerRepository
	aggregator *engagement.Aggregator
	logger     *logger.Logger
	now        func() time.Time
}

func NewEngagementUseCase(
	eventRepo persistent.EventRepository,
	ownerRepo persistent.OwnerRepository,
	aggregator *engagement.Aggregator,
	logger *logger.Logger,
) EngagementUseCase {
	return &engagementUseCase{
		eventRepo:  eventRepo,
		ownerRepo:  ownerRepo,
		aggregator: aggregator,
		logger:     logger,
		now:        time.Now,
	}
}

func (uc *engagementUseCase) Record(ctx context.Context, input RecordInput) (*entity.Event, error) {
	if !input.EventType.Valid() {
		return nil, apperror.Field("event_type", "The selected event type is invalid.")
	}

	if _, err := uc.reelOwner(ctx, input.ReelID); err != nil {
		return nil, err
	}

	event := &entity.Event{
		ReelID:    input.ReelID,
		Actor:     engagement.Actor(input.UserID, input.ClientIP),
		EventType: input.EventType,
		CreatedAt: uc.now(),
	}
	if err := uc.eventRepo.Create(ctx, event); err != nil {
		uc.logger.Error("Failed to record %s event for reel %s: %v", input.EventType, input.ReelID, err)
		return nil, apperror.Internal("failed to record event", err)
	}

	return event, nil
}

// ReelStats is available to the reel's owner and to admins. Events of
// blocked content are included.
func (uc *engagementUseCase) ReelStats(ctx context.Context, userID, reelID string) (*entity.ReelStats, error) {
	owner, err := uc.reelOwner(ctx, reelID)
	if err != nil {
		return nil, err
	}

	if owner.UserID != userID {
		role, err := uc.ownerRepo.UserRole(ctx, userID)
		if err != nil && !errors.Is(err, persistent.ErrNotFound) {
			return nil, apperror.Internal("failed to load user", err)
		}
		if !role.CanModerate() {
			return nil, apperror.Forbidden(msgUnauthorized)
		}
	}

	counts, err := uc.aggregator.ForReels(ctx, []string{owner.ReelID}, engagement.Options{IncludeBlocked: true})
	if err != nil {
		return nil, apperror.Internal("failed to aggregate engagement", err)
	}

	return &entity.ReelStats{ReelID: owner.ReelID, Counts: counts}, nil
}

// SellerStats totals every reel of the caller's profile, blocked ones
// included.
func (uc *engagementUseCase) SellerStats(ctx context.Context, userID string) (*entity.SellerStats, error) {
	profileID, err := uc.ownerRepo.ProfileIDByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, apperror.NotFound(msgProfileNotFound)
		}
		return nil, apperror.Internal("failed to load profile", err)
	}

	reels, err := uc.ownerRepo.CountReels(ctx, profileID)
	if err != nil {
		return nil, apperror.Internal("failed to count reels", err)
	}

	counts, err := uc.aggregator.ForProfile(ctx, profileID, engagement.Options{IncludeBlocked: true})
	if err != nil {
		return nil, apperror.Internal("failed to aggregate engagement", err)
	}

	return &entity.SellerStats{ProfileID: profileID, ReelsCount: reels, Counts: counts}, nil
}

func (uc *engagementUseCase) reelOwner(ctx context.Context, reelID string) (*entity.ReelOwner, error) {
	if _, err := uuid.Parse(reelID); err != nil {
		return nil, apperror.NotFound(msgReelNotFound)
	}

	owner, err := uc.ownerRepo.ReelOwner(ctx, reelID)
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, apperror.NotFound(msgReelNotFound)
		}
		return nil, apperror.Internal("failed to load reel", err)
	}
	return owner, nil
}
