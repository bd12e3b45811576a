package usecase

import (
	"context"
	"errors"

	"umkm-reels/pkg/apperror"
	"umkm-reels/pkg/engagement"
	"umkm-reels/pkg/logger"
	"umkm-reels/pkg/models"
	"umkm-reels/services/admin/internal/entity"
	"umkm-reels/services/admin/internal/repo/persistent"

	"github.com/google/uuid"
)

type StatsUseCase interface {
	Platform(ctx context.Context, adminID string) (*entity.PlatformStats, error)
	ResetEngagement(ctx context.Context, adminID, reelID string) (int64, error)
}

type statsUseCase struct {
	userRepo   persistent.UserRepository
	reelRepo   persistent.ReelRepository
	eventRepo  persistent.EventRepository
	aggregator *engagement.Aggregator
	logger     *logger.Logger
}

func NewStatsUseCase(
	userRepo persistent.UserRepository,
	reelRepo persistent.ReelRepository,
	eventRepo persistent.EventRepository,
	aggregator *engagement.Aggregator,
	logger *logger.Logger,
) StatsUseCase {
	return &statsUseCase{
		userRepo:   userRepo,
		reelRepo:   reelRepo,
		eventRepo:  eventRepo,
		aggregator: aggregator,
		logger:     logger,
	}
}

// Platform counts are unscoped: every status, blocked or not.
func (uc *statsUseCase) Platform(ctx context.Context, adminID string) (*entity.PlatformStats, error) {
	if err := requireAdmin(ctx, uc.userRepo, adminID); err != nil {
		return nil, err
	}

	var (
		stats entity.PlatformStats
		err   error
	)
	if stats.TotalUsers, err = uc.userRepo.Count(ctx); err != nil {
		return nil, apperror.Internal("failed to count users", err)
	}
	if stats.TotalSellers, err = uc.userRepo.CountByRole(ctx, models.RoleSeller); err != nil {
		return nil, apperror.Internal("failed to count sellers", err)
	}
	if stats.TotalReels, err = uc.reelRepo.Count(ctx); err != nil {
		return nil, apperror.Internal("failed to count reels", err)
	}
	if stats.Engagement, err = uc.aggregator.ForPlatform(ctx); err != nil {
		return nil, apperror.Internal("failed to aggregate engagement", err)
	}

	return &stats, nil
}

// ResetEngagement deletes the events of one reel, or of every reel when
// reelID is empty.
func (uc *statsUseCase) ResetEngagement(ctx context.Context, adminID, reelID string) (int64, error) {
	if err := requireAdmin(ctx, uc.userRepo, adminID); err != nil {
		return 0, err
	}

	if reelID != "" {
		if _, err := uuid.Parse(reelID); err != nil {
			return 0, apperror.NotFound(msgReelNotFound)
		}
		if _, err := uc.reelRepo.GetByID(ctx, reelID); err != nil {
			if errors.Is(err, persistent.ErrNotFound) {
				return 0, apperror.NotFound(msgReelNotFound)
			}
			return 0, apperror.Internal("failed to load reel", err)
		}
	}

	deleted, err := uc.eventRepo.Delete(ctx, reelID)
	if err != nil {
		uc.logger.Error("Failed to reset engagement: %v", err)
		return 0, apperror.Internal("failed to reset engagement", err)
	}

	uc.logger.Info("Admin %s deleted %d engagement events (reel=%q)", adminID, deleted, reelID)
	return deleted, nil
}
