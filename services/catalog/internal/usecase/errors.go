package usecase

import (
	"context"
	"errors"

	"umkm-reels/pkg/apperror"
	"umkm-reels/services/catalog/internal/entity"
	"umkm-reels/services/catalog/internal/repo/persistent"
)

const (
	msgUnauthorized    = "This action is unauthorized."
	msgProfileNotFound = "Profile not found"
	msgReelNotFound    = "Reel not found"
	msgUserNotFound    = "User not found"
	msgProfileExists   = "Profile already exists"
)

// notFoundOr maps a repository miss to a 404 with the given message and
// wraps everything else as an internal error.
func notFoundOr(err error, message string) error {
	if errors.Is(err, persistent.ErrNotFound) {
		return apperror.NotFound(message)
	}
	return apperror.Internal(message, err)
}

// requireSeller re-reads the role from the database; token claims may be
// stale after an admin changed it.
func requireSeller(ctx context.Context, users persistent.UserRepository, userID string) (*entity.User, error) {
	user, err := users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, apperror.Forbidden(msgUnauthorized)
		}
		return nil, apperror.Internal("failed to load user", err)
	}
	if !user.Role.CanSell() {
		return nil, apperror.Forbidden(msgUnauthorized)
	}
	return user, nil
}
