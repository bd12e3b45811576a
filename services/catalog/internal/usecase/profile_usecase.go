package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"umkm-reels/pkg/apperror"
	"umkm-reels/pkg/config"
	"umkm-reels/pkg/logger"
	"umkm-reels/pkg/media"
	"umkm-reels/pkg/storage"
	"umkm-reels/services/catalog/internal/entity"
	"umkm-reels/services/catalog/internal/repo/persistent"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/skip2/go-qrcode"
)

const (
	DefaultNearbyRadiusKM = 5.0
	MaxNearbyRadiusKM     = 50.0
	qrCodeSize            = 256
)

type CreateProfileInput struct {
	Name        string
	Phone       string
	Address     string
	Latitude    *float64
	Longitude   *float64
	Category    string
	Description string
	Avatar      string
	IsOpen      *bool
	Hours       string
}

// UpdateProfileInput carries only the fields the seller sent.
type UpdateProfileInput struct {
	Name        *string
	Phone       *string
	Address     *string
	Latitude    *float64
	Longitude   *float64
	Category    *string
	Description *string
	Avatar      *string
	IsOpen      *bool
	Hours       *string
}

type NearbyQuery struct {
	Latitude  float64
	Longitude float64
	RadiusKM  float64
}

type ProfileUseCase interface {
	Create(ctx context.Context, userID string, input CreateProfileInput) (*entity.Profile, error)
	Update(ctx context.Context, userID string, input UpdateProfileInput) (*entity.Profile, error)
	GetOwn(ctx context.Context, userID string) (*entity.Profile, error)
	GetPublic(ctx context.Context, profileID string) (*entity.PublicProfile, error)
	ListPublicReels(ctx context.Context, profileID string, limit, offset int) ([]*entity.Reel, int64, error)
	Nearby(ctx context.Context, query NearbyQuery) ([]*entity.NearbyProfile, error)
	QRCode(ctx context.Context, profileID string) ([]byte, error)
}

type profileUseCase struct {
	userRepo       persistent.UserRepository
	profileRepo    persistent.ProfileRepository
	reelRepo       persistent.ReelRepository
	store          storage.Store
	avatarMaxBytes int
	publicBaseURL  string
	logger         *logger.Logger
}

func NewProfileUseCase(
	userRepo persistent.UserRepository,
	profileRepo persistent.ProfileRepository,
	reelRepo persistent.ReelRepository,
	store storage.Store,
	cfg *config.Config,
	logger *logger.Logger,
) ProfileUseCase {
	return &profileUseCase{
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		reelRepo:       reelRepo,
		store:          store,
		avatarMaxBytes: cfg.AvatarMaxBytes,
		publicBaseURL:  cfg.PublicBaseURL,
		logger:         logger,
	}
}

func (uc *profileUseCase) Create(ctx context.Context, userID string, input CreateProfileInput) (*entity.Profile, error) {
	if _, err := requireSeller(ctx, uc.userRepo, userID); err != nil {
		return nil, err
	}

	_, err := uc.profileRepo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		return nil, apperror.Conflict(msgProfileExists)
	case !errors.Is(err, persistent.ErrNotFound):
		return nil, apperror.Internal("failed to load profile", err)
	}

	profile := &entity.Profile{
		UserID:      userID,
		Name:        input.Name,
		Phone:       input.Phone,
		Address:     input.Address,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Category:    input.Category,
		Description: input.Description,
		IsOpen:      true,
		Hours:       input.Hours,
	}
	if input.IsOpen != nil {
		profile.IsOpen = *input.IsOpen
	}

	if input.Avatar != "" {
		ref, err := uc.storeAvatar(ctx, input.Avatar)
		if err != nil {
			return nil, err
		}
		profile.Avatar = ref
	}

	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		uc.discard(ctx, profile.Avatar)
		if errors.Is(err, persistent.ErrAlreadyExists) {
			return nil, apperror.Conflict(msgProfileExists)
		}
		return nil, apperror.Internal("failed to create profile", err)
	}

	uc.logger.Info("Profile %s created for user %s", profile.ID, userID)
	return profile, nil
}

func (uc *profileUseCase) Update(ctx context.Context, userID string, input UpdateProfileInput) (*entity.Profile, error) {
	if _, err := requireSeller(ctx, uc.userRepo, userID); err != nil {
		return nil, err
	}

	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, msgProfileNotFound)
	}

	if input.Name != nil {
		profile.Name = *input.Name
	}
	if input.Phone != nil {
		profile.Phone = *input.Phone
	}
	if input.Address != nil {
		profile.Address = *input.Address
	}
	if input.Latitude != nil {
		profile.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		profile.Longitude = input.Longitude
	}
	if input.Category != nil {
		profile.Category = *input.Category
	}
	if input.Description != nil {
		profile.Description = *input.Description
	}
	if input.IsOpen != nil {
		profile.IsOpen = *input.IsOpen
	}
	if input.Hours != nil {
		profile.Hours = *input.Hours
	}

	previousAvatar := profile.Avatar
	var storedAvatar string
	if input.Avatar != nil && *input.Avatar != previousAvatar {
		switch {
		case *input.Avatar == "":
			profile.Avatar = ""
		case media.IsDataURI(*input.Avatar):
			storedAvatar, err = uc.storeAvatar(ctx, *input.Avatar)
			if err != nil {
				return nil, err
			}
			profile.Avatar = storedAvatar
		default:
			return nil, apperror.Field("avatar", "The avatar must be a base64 encoded image.")
		}
	}

	// The new blob is written before the row and the old one removed only
	// after the row points away from it.
	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		uc.discard(ctx, storedAvatar)
		return nil, notFoundOr(err, msgProfileNotFound)
	}
	if profile.Avatar != previousAvatar {
		uc.discard(ctx, previousAvatar)
	}

	return profile, nil
}

func (uc *profileUseCase) GetOwn(ctx context.Context, userID string) (*entity.Profile, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, msgProfileNotFound)
	}
	return profile, nil
}

func (uc *profileUseCase) visibleProfile(ctx context.Context, profileID string) (*entity.Profile, error) {
	if _, err := uuid.Parse(profileID); err != nil {
		return nil, apperror.NotFound(msgProfileNotFound)
	}
	profile, err := uc.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, notFoundOr(err, msgProfileNotFound)
	}
	if profile.IsBlocked {
		return nil, apperror.NotFound(msgProfileNotFound)
	}
	return profile, nil
}

func (uc *profileUseCase) GetPublic(ctx context.Context, profileID string) (*entity.PublicProfile, error) {
	profile, err := uc.visibleProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return profile.Public(), nil
}

func (uc *profileUseCase) ListPublicReels(ctx context.Context, profileID string, limit, offset int) ([]*entity.Reel, int64, error) {
	if _, err := uc.visibleProfile(ctx, profileID); err != nil {
		return nil, 0, err
	}

	reels, total, err := uc.reelRepo.ListPublished(ctx, entity.ReelFilter{ProfileID: profileID}, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal("failed to list reels", err)
	}
	return reels, total, nil
}

// Nearby narrows candidates with a bounding box in SQL and then keeps the
// ones within the haversine radius, closest first.
func (uc *profileUseCase) Nearby(ctx context.Context, query NearbyQuery) ([]*entity.NearbyProfile, error) {
	radiusKM := query.RadiusKM
	if radiusKM <= 0 {
		radiusKM = DefaultNearbyRadiusKM
	}
	if radiusKM > MaxNearbyRadiusKM {
		radiusKM = MaxNearbyRadiusKM
	}

	center := orb.Point{query.Longitude, query.Latitude}
	bound := geo.NewBoundAroundPoint(center, radiusKM*1000)

	candidates, err := uc.profileRepo.ListVisibleInBound(ctx, bound.Min.Lat(), bound.Max.Lat(), bound.Min.Lon(), bound.Max.Lon())
	if err != nil {
		return nil, apperror.Internal("failed to search profiles", err)
	}

	result := make([]*entity.NearbyProfile, 0, len(candidates))
	for _, profile := range candidates {
		if profile.Latitude == nil || profile.Longitude == nil {
			continue
		}
		meters := geo.DistanceHaversine(center, orb.Point{*profile.Longitude, *profile.Latitude})
		if meters > radiusKM*1000 {
			continue
		}
		result = append(result, &entity.NearbyProfile{
			PublicProfile: profile.Public(),
			DistanceKM:    math.Round(meters/10) / 100,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DistanceKM < result[j].DistanceKM
	})
	return result, nil
}

func (uc *profileUseCase) QRCode(ctx context.Context, profileID string) ([]byte, error) {
	profile, err := uc.visibleProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	code, err := qrcode.New(uc.publicBaseURL+"/umkm/"+profile.ID, qrcode.Medium)
	if err != nil {
		return nil, apperror.Internal("failed to create QR code", err)
	}
	png, err := code.PNG(qrCodeSize)
	if err != nil {
		return nil, apperror.Internal("failed to render QR code", err)
	}
	return png, nil
}

func (uc *profileUseCase) storeAvatar(ctx context.Context, dataURI string) (string, error) {
	img, err := media.DecodeDataURI(dataURI, uc.avatarMaxBytes)
	if err != nil {
		switch {
		case errors.Is(err, media.ErrTooLarge):
			return "", apperror.Field("avatar", fmt.Sprintf("The avatar may not be greater than %d kilobytes.", uc.avatarMaxBytes/1024))
		case errors.Is(err, media.ErrUnsupportedImage):
			return "", apperror.Field("avatar", "The avatar must be a file of type: jpg, jpeg, png, gif, webp.")
		default:
			return "", apperror.Field("avatar", "The avatar must be an image.")
		}
	}

	key := fmt.Sprintf("avatars/%s.%s", uuid.New().String(), img.Ext)
	ref, err := uc.store.Put(ctx, key, bytes.NewReader(img.Data), img.ContentType)
	if err != nil {
		return "", apperror.Internal("failed to store avatar", err)
	}
	return ref, nil
}

// discard removes a blob and only logs on failure.
func (uc *profileUseCase) discard(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if err := uc.store.Delete(ctx, ref); err != nil {
		uc.logger.Warn("Failed to delete blob %s: %v", ref, err)
	}
}
