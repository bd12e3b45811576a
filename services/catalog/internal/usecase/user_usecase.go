package usecase

import (
	"context"

	"umkm-reels/services/catalog/internal/entity"
	"umkm-reels/services/catalog/internal/repo/persistent"
)

type UserUseCase interface {
	GetMe(ctx context.Context, userID string) (*entity.User, error)
}

type userUseCase struct {
	userRepo persistent.UserRepository
}

func NewUserUseCase(userRepo persistent.UserRepository) UserUseCase {
	return &userUseCase{userRepo: userRepo}
}

func (uc *userUseCase) GetMe(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, msgUserNotFound)
	}
	return user, nil
}
