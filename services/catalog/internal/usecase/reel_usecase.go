package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"umkm-reels/pkg/apperror"
	"umkm-reels/pkg/logger"
	"umkm-reels/pkg/media"
	"umkm-reels/pkg/models"
	"umkm-reels/pkg/storage"
	"umkm-reels/services/catalog/internal/entity"
	"umkm-reels/services/catalog/internal/repo/persistent"

	"github.com/google/uuid"
)

const (
	MaxReelImages  = 10
	MaxVideoBytes  = 50 << 20
	MaxImageBytes  = 5 << 20
	thumbnailSize  = 480
	sniffHeadBytes = 512
)

type CreateReelInput struct {
	ProductName string
	Caption     string
	Price       int64
	Category    string
	MediaType   models.MediaType
	Status      models.ReelStatus
	Video       *multipart.FileHeader
	Images      []*multipart.FileHeader
}

type UpdateReelInput struct {
	ProductName *string
	Caption     *string
	Price       *int64
	Category    *string
	Status      *models.ReelStatus
}

type ReelUseCase interface {
	Create(ctx context.Context, userID string, input CreateReelInput) (*entity.Reel, error)
	Update(ctx context.Context, userID, reelID string, input UpdateReelInput) (*entity.Reel, error)
	Delete(ctx context.Context, userID, reelID string) error
	ListMine(ctx context.Context, userID string, limit, offset int) ([]*entity.Reel, int64, error)
	Feed(ctx context.Context, filter entity.ReelFilter, limit, offset int) ([]*entity.Reel, int64, error)
	Get(ctx context.Context, reelID string) (*entity.Reel, error)
}

type reelUseCase struct {
	userRepo    persistent.UserRepository
	profileRepo persistent.ProfileRepository
	reelRepo    persistent.ReelRepository
	store       storage.Store
	logger      *logger.Logger
}

func NewReelUseCase(
	userRepo persistent.UserRepository,
	profileRepo persistent.ProfileRepository,
	reelRepo persistent.ReelRepository,
	store storage.Store,
	logger *logger.Logger,
) ReelUseCase {
	return &reelUseCase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		reelRepo:    reelRepo,
		store:       store,
		logger:      logger,
	}
}

func (uc *reelUseCase) Create(ctx context.Context, userID string, input CreateReelInput) (*entity.Reel, error) {
	if _, err := requireSeller(ctx, uc.userRepo, userID); err != nil {
		return nil, err
	}

	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, msgProfileNotFound)
	}

	mediaType := input.MediaType
	if mediaType == "" {
		mediaType = models.MediaTypeImage
		if input.Video != nil {
			mediaType = models.MediaTypeVideo
		}
	}
	status := input.Status
	if status == "" {
		status = models.ReelStatusDraft
	}

	reel := &entity.Reel{
		ProfileID:   profile.ID,
		MediaType:   mediaType,
		ImageURLs:   []string{},
		ProductName: input.ProductName,
		Caption:     input.Caption,
		Price:       input.Price,
		Category:    input.Category,
		Status:      status,
	}
	if reel.Category == "" {
		reel.Category = profile.Category
	}

	if err := uc.uploadMedia(ctx, reel, input); err != nil {
		uc.discardAll(ctx, reel.MediaURLs())
		return nil, err
	}

	if err := uc.reelRepo.Create(ctx, reel); err != nil {
		uc.discardAll(ctx, reel.MediaURLs())
		return nil, apperror.Internal("failed to create reel", err)
	}

	uc.logger.Info("Reel %s created by profile %s", reel.ID, profile.ID)
	return reel, nil
}

// uploadMedia stores the reel's files and records their references on reel
// as it goes, so a partial upload can be cleaned up by the caller.
func (uc *reelUseCase) uploadMedia(ctx context.Context, reel *entity.Reel, input CreateReelInput) error {
	keyPrefix := "reels/" + reel.ProfileID + "/"

	if reel.MediaType == models.MediaTypeVideo {
		if input.Video == nil {
			return apperror.Field("video", "The video field is required.")
		}
		if input.Video.Size > MaxVideoBytes {
			return apperror.Field("video", fmt.Sprintf("The video may not be greater than %d kilobytes.", MaxVideoBytes/1024))
		}
		ref, err := uc.putVideo(ctx, keyPrefix, input.Video)
		if err != nil {
			return err
		}
		reel.VideoURL = ref
		return nil
	}

	if len(input.Images) == 0 {
		return apperror.Field("images", "The images field is required.")
	}
	if len(input.Images) > MaxReelImages {
		return apperror.Field("images", fmt.Sprintf("The images may not have more than %d items.", MaxReelImages))
	}

	for i, file := range input.Images {
		field := fmt.Sprintf("images.%d", i)
		if file.Size > MaxImageBytes {
			return apperror.Field(field, fmt.Sprintf("The %s may not be greater than %d kilobytes.", field, MaxImageBytes/1024))
		}

		data, err := readAll(file)
		if err != nil {
			return apperror.Internal("failed to read upload", err)
		}
		contentType := media.Sniff(data)
		if !media.IsImage(contentType) {
			return apperror.Field(field, fmt.Sprintf("The %s must be an image.", field))
		}

		if i == 0 {
			thumb, err := media.Thumbnail(data, thumbnailSize)
			if err != nil {
				return apperror.Field(field, fmt.Sprintf("The %s must be an image.", field))
			}
			ref, err := uc.store.Put(ctx, keyPrefix+uuid.New().String()+"_thumb.jpg", bytes.NewReader(thumb), "image/jpeg")
			if err != nil {
				return apperror.Internal("failed to store thumbnail", err)
			}
			reel.ThumbnailURL = ref
		}

		ext, ok := media.Extension(contentType)
		if !ok {
			return apperror.Field(field, fmt.Sprintf("The %s must be an image.", field))
		}
		ref, err := uc.store.Put(ctx, keyPrefix+uuid.New().String()+ext, bytes.NewReader(data), contentType)
		if err != nil {
			return apperror.Internal("failed to store image", err)
		}
		reel.ImageURLs = append(reel.ImageURLs, ref)
	}
	return nil
}

func (uc *reelUseCase) putVideo(ctx context.Context, keyPrefix string, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", apperror.Internal("failed to open upload", err)
	}
	defer src.Close()

	head := make([]byte, sniffHeadBytes)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", apperror.Internal("failed to read upload", err)
	}
	head = head[:n]

	contentType := media.VideoType(head, file.Header.Get("Content-Type"))
	ext, ok := media.Extension(contentType)
	if !ok || !media.IsVideo(contentType) {
		return "", apperror.Field("video", "The video must be a file of type: mp4, webm, mov, m4v, 3gp.")
	}

	ref, err := uc.store.Put(ctx, keyPrefix+uuid.New().String()+ext, io.MultiReader(bytes.NewReader(head), src), contentType)
	if err != nil {
		return "", apperror.Internal("failed to store video", err)
	}
	return ref, nil
}

func readAll(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(src)
}

// ownedReel loads a reel and checks it belongs to the caller's profile.
func (uc *reelUseCase) ownedReel(ctx context.Context, userID, reelID string) (*entity.Reel, error) {
	if _, err := uuid.Parse(reelID); err != nil {
		return nil, apperror.NotFound(msgReelNotFound)
	}
	reel, err := uc.reelRepo.GetByID(ctx, reelID)
	if err != nil {
		return nil, notFoundOr(err, msgReelNotFound)
	}

	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, apperror.Forbidden(msgUnauthorized)
		}
		return nil, apperror.Internal("failed to load profile", err)
	}
	if profile.ID != reel.ProfileID {
		return nil, apperror.Forbidden(msgUnauthorized)
	}
	return reel, nil
}

func (uc *reelUseCase) Update(ctx context.Context, userID, reelID string, input UpdateReelInput) (*entity.Reel, error) {
	reel, err := uc.ownedReel(ctx, userID, reelID)
	if err != nil {
		return nil, err
	}

	if input.Status != nil && !reel.Status.CanTransitionTo(*input.Status) {
		return nil, apperror.Field("status", fmt.Sprintf("The status cannot change from %s to %s.", reel.Status, *input.Status))
	}

	if input.ProductName != nil {
		reel.ProductName = *input.ProductName
	}
	if input.Caption != nil {
		reel.Caption = *input.Caption
	}
	if input.Price != nil {
		reel.Price = *input.Price
	}
	if input.Category != nil {
		reel.Category = *input.Category
	}
	if input.Status != nil {
		reel.Status = *input.Status
	}

	if err := uc.reelRepo.Update(ctx, reel); err != nil {
		return nil, notFoundOr(err, msgReelNotFound)
	}
	return reel, nil
}

func (uc *reelUseCase) Delete(ctx context.Context, userID, reelID string) error {
	reel, err := uc.ownedReel(ctx, userID, reelID)
	if err != nil {
		return err
	}

	if err := uc.reelRepo.Delete(ctx, reel.ID); err != nil {
		return notFoundOr(err, msgReelNotFound)
	}

	uc.discardAll(ctx, reel.MediaURLs())
	uc.logger.Info("Reel %s deleted by user %s", reel.ID, userID)
	return nil
}

func (uc *reelUseCase) ListMine(ctx context.Context, userID string, limit, offset int) ([]*entity.Reel, int64, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, 0, notFoundOr(err, msgProfileNotFound)
	}

	reels, total, err := uc.reelRepo.ListByProfile(ctx, profile.ID, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal("failed to list reels", err)
	}
	return reels, total, nil
}

func (uc *reelUseCase) Feed(ctx context.Context, filter entity.ReelFilter, limit, offset int) ([]*entity.Reel, int64, error) {
	reels, total, err := uc.reelRepo.ListPublished(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal("failed to list reels", err)
	}
	return reels, total, nil
}

func (uc *reelUseCase) Get(ctx context.Context, reelID string) (*entity.Reel, error) {
	if _, err := uuid.Parse(reelID); err != nil {
		return nil, apperror.NotFound(msgReelNotFound)
	}
	reel, err := uc.reelRepo.GetPublished(ctx, reelID)
	if err != nil {
		return nil, notFoundOr(err, msgReelNotFound)
	}
	return reel, nil
}

func (uc *reelUseCase) discardAll(ctx context.Context, refs []string) {
	for _, ref := range refs {
		if err := uc.store.Delete(ctx, ref); err != nil {
			uc.logger.Warn("Failed to delete blob %s: %v", ref, err)
		}
	}
}
