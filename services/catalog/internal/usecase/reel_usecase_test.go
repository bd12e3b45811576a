package usecase

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"umkm-reels/pkg/apperror"
	"umkm-reels/pkg/dbtest"
	"umkm-reels/pkg/models"
	"umkm-reels/services/catalog/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReelUseCase_Create_Video(t *testing.T) {
	f := newFixture(t)
	seller, profile := dbtest.CreateSeller(t, f.db)

	reel, err := f.reelUseCase().Create(context.Background(), seller.ID, CreateReelInput{
		ProductName: "Keripik Pedas",
		Price:       12000,
		Video:       fileHeaders(t, "video", upload{"promo.mp4", mp4Bytes()})[0],
	})
	require.NoError(t, err)
	assert.Equal(t, models.MediaTypeVideo, reel.MediaType)
	assert.Equal(t, models.ReelStatusDraft, reel.Status)
	assert.Equal(t, "kuliner", reel.Category, "falls back to the profile category")
	assert.True(t, strings.HasPrefix(reel.VideoURL, "/storage/reels/"+profile.ID+"/"))
	assert.True(t, strings.HasSuffix(reel.VideoURL, ".mp4"))
	assert.True(t, f.exists(t, reel.VideoURL))
	assert.Empty(t, reel.ImageURLs)
}

func TestReelUseCase_Create_Images(t *testing.T) {
	f := newFixture(t)
	seller, _ := dbtest.CreateSeller(t, f.db)

	images := fileHeaders(t, "images[]",
		upload{"a.png", pngBytes(t, 40, 20)},
		upload{"b.png", pngBytes(t, 10, 10)},
	)
	reel, err := f.reelUseCase().Create(context.Background(), seller.ID, CreateReelInput{
		ProductName: "Batik Tulis",
		Category:    "fashion",
		MediaType:   models.MediaTypeImage,
		Status:      models.ReelStatusReview,
		Images:      images,
	})
	require.NoError(t, err)
	require.Len(t, reel.ImageURLs, 2)
	assert.Equal(t, "fashion", reel.Category)
	assert.Equal(t, models.ReelStatusReview, reel.Status)
	assert.True(t, strings.HasSuffix(reel.ThumbnailURL, "_thumb.jpg"))
	for _, ref := range reel.MediaURLs() {
		assert.True(t, f.exists(t, ref), ref)
	}

	stored, err := f.reels.GetByID(context.Background(), reel.ID)
	require.NoError(t, err)
	assert.Equal(t, reel.ImageURLs, stored.ImageURLs)
}

func TestReelUseCase_Create_Validation(t *testing.T) {
	f := newFixture(t)
	seller, _ := dbtest.CreateSeller(t, f.db)
	uc := f.reelUseCase()
	ctx := context.Background()

	_, err := uc.Create(ctx, seller.ID, CreateReelInput{ProductName: "X", MediaType: models.MediaTypeVideo})
	appErr := requireKind(t, err, apperror.KindValidation)
	assert.Contains(t, appErr.Fields, "video")

	_, err = uc.Create(ctx, seller.ID, CreateReelInput{ProductName: "X"})
	appErr = requireKind(t, err, apperror.KindValidation)
	assert.Contains(t, appErr.Fields, "images")

	many := make([]upload, MaxReelImages+1)
	for i := range many {
		many[i] = upload{"p.png", pngBytes(t, 2, 2)}
	}
	_, err = uc.Create(ctx, seller.ID, CreateReelInput{ProductName: "X", Images: fileHeaders(t, "images[]", many...)})
	requireKind(t, err, apperror.KindValidation)

	_, err = uc.Create(ctx, seller.ID, CreateReelInput{
		ProductName: "X",
		Video:       fileHeaders(t, "video", upload{"notes.txt", []byte("just some text")})[0],
	})
	appErr = requireKind(t, err, apperror.KindValidation)
	assert.Contains(t, appErr.Fields, "video")
}

func TestReelUseCase_Create_CleansUpOnInvalidImage(t *testing.T) {
	f := newFixture(t)
	seller, _ := dbtest.CreateSeller(t, f.db)

	images := fileHeaders(t, "images[]",
		upload{"ok.png", pngBytes(t, 4, 4)},
		upload{"bad.png", []byte("this is not a picture")},
	)
	_, err := f.reelUseCase().Create(context.Background(), seller.ID, CreateReelInput{ProductName: "X", Images: images})
	appErr := requireKind(t, err, apperror.KindValidation)
	assert.Contains(t, appErr.Fields, "images.1")

	var files []string
	require.NoError(t, filepath.Walk(f.store.Root(), func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			files = append(files, path)
		}
		return err
	}))
	assert.Empty(t, files, "stored blobs are removed when the reel is rejected")

	var count int64
	require.NoError(t, f.db.Model(&models.Reel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestReelUseCase_Create_StoredExtensionFollowsContent(t *testing.T) {
	f := newFixture(t)
	seller, _ := dbtest.CreateSeller(t, f.db)
	uc := f.reelUseCase()
	ctx := context.Background()

	page := []byte("GIF89a<html><script>alert(document.domain)</script></html>")
	reel, err := uc.Create(ctx, seller.ID, CreateReelInput{
		ProductName: "Gambar",
		Images: fileHeaders(t, "images[]",
			upload{"a.png", pngBytes(t, 4, 4)},
			upload{"x.html", page},
		),
	})
	require.NoError(t, err)
	require.Len(t, reel.ImageURLs, 2)
	assert.True(t, strings.HasSuffix(reel.ImageURLs[0], ".png"), reel.ImageURLs[0])
	assert.True(t, strings.HasSuffix(reel.ImageURLs[1], ".gif"), reel.ImageURLs[1])

	video, err := uc.Create(ctx, seller.ID, CreateReelInput{
		ProductName: "Video",
		Video:       fileHeaders(t, "video", upload{"promo.html", mp4Bytes()})[0],
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(video.VideoURL, ".mp4"), video.VideoURL)
}

func TestReelUseCase_Create_WithoutProfile(t *testing.T) {
	f := newFixture(t)
	seller := dbtest.CreateUser(t, f.db, models.RoleSeller)

	_, err := f.reelUseCase().Create(context.Background(), seller.ID, CreateReelInput{ProductName: "X"})
	appErr := requireKind(t, err, apperror.KindNotFound)
	assert.Equal(t, "Profile not found", appErr.Message)
}

func TestReelUseCase_Update(t *testing.T) {
	f := newFixture(t)
	seller, profile := dbtest.CreateSeller(t, f.db)
	reel := dbtest.CreateReel(t, f.db, profile.ID, models.ReelStatusDraft)
	uc := f.reelUseCase()
	ctx := context.Background()

	review := models.ReelStatusReview
	price := int64(9000)
	updated, err := uc.Update(ctx, seller.ID, reel.ID, UpdateReelInput{Caption: strPtr("Diskon!"), Price: &price, Status: &review})
	require.NoError(t, err)
	assert.Equal(t, "Diskon!", updated.Caption)
	assert.Equal(t, int64(9000), updated.Price)
	assert.Equal(t, models.ReelStatusReview, updated.Status)
	assert.Equal(t, reel.ProductName, updated.ProductName)

	draft := models.ReelStatusDraft
	_, err = uc.Update(ctx, seller.ID, reel.ID, UpdateReelInput{Status: &draft})
	appErr := requireKind(t, err, apperror.KindValidation)
	assert.Contains(t, appErr.Fields, "status")

	published := models.ReelStatusPublished
	updated, err = uc.Update(ctx, seller.ID, reel.ID, UpdateReelInput{Status: &published})
	require.NoError(t, err)
	assert.Equal(t, models.ReelStatusPublished, updated.Status)
}

func TestReelUseCase_Update_SkippingReviewIsRejected(t *testing.T) {
	f := newFixture(t)
	seller, profile := dbtest.CreateSeller(t, f.db)
	reel := dbtest.CreateReel(t, f.db, profile.ID, models.ReelStatusDraft)

	published := models.ReelStatusPublished
	_, err := f.reelUseCase().Update(context.Background(), seller.ID, reel.ID, UpdateReelInput{Status: &published})
	requireKind(t, err, apperror.KindValidation)

	stored, err := f.reels.GetByID(context.Background(), reel.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReelStatusDraft, stored.Status)
}

func TestReelUseCase_Update_NotOwner(t *testing.T) {
	f := newFixture(t)
	_, owner := dbtest.CreateSeller(t, f.db)
	intruder, _ := dbtest.CreateSeller(t, f.db)
	reel := dbtest.CreateReel(t, f.db, owner.ID, models.ReelStatusDraft)

	_, err := f.reelUseCase().Update(context.Background(), intruder.ID, reel.ID, UpdateReelInput{Caption: strPtr("mine now")})
	requireKind(t, err, apperror.KindForbidden)

	_, err = f.reelUseCase().Update(context.Background(), intruder.ID, "00000000-0000-0000-0000-000000000000", UpdateReelInput{})
	requireKind(t, err, apperror.KindNotFound)
}

func TestReelUseCase_Delete(t *testing.T) {
	f := newFixture(t)
	seller, _ := dbtest.CreateSeller(t, f.db)
	intruder, _ := dbtest.CreateSeller(t, f.db)
	uc := f.reelUseCase()
	ctx := context.Background()

	reel, err := uc.Create(ctx, seller.ID, CreateReelInput{
		ProductName: "Kopi Gayo",
		Video:       fileHeaders(t, "video", upload{"kopi.mp4", mp4Bytes()})[0],
	})
	require.NoError(t, err)
	createEvents(t, f.db, reel.ID)

	err = uc.Delete(ctx, intruder.ID, reel.ID)
	requireKind(t, err, apperror.KindForbidden)
	_, err = f.reels.GetByID(ctx, reel.ID)
	require.NoError(t, err, "row stays after a forbidden delete")

	require.NoError(t, uc.Delete(ctx, seller.ID, reel.ID))
	_, err = f.reels.GetByID(ctx, reel.ID)
	assert.Error(t, err)
	assert.False(t, f.exists(t, reel.VideoURL))

	var events int64
	require.NoError(t, f.db.Model(&models.EngagementEvent{}).Where("reel_id = ?", reel.ID).Count(&events).Error)
	assert.Zero(t, events)

	mine, total, err := uc.ListMine(ctx, seller.ID, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, mine)
}

func TestReelUseCase_ListMine(t *testing.T) {
	f := newFixture(t)
	seller, profile := dbtest.CreateSeller(t, f.db)
	for i := 0; i < 3; i++ {
		dbtest.CreateReel(t, f.db, profile.ID, models.ReelStatusDraft)
	}
	uc := f.reelUseCase()

	reels, total, err := uc.ListMine(context.Background(), seller.ID, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, reels, 2)

	noProfile := dbtest.CreateUser(t, f.db, models.RoleSeller)
	_, _, err = uc.ListMine(context.Background(), noProfile.ID, 2, 0)
	requireKind(t, err, apperror.KindNotFound)
}

func TestReelUseCase_FeedAndGet(t *testing.T) {
	f := newFixture(t)
	_, profile := dbtest.CreateSeller(t, f.db)
	published := dbtest.CreateReel(t, f.db, profile.ID, models.ReelStatusPublished)
	draft := dbtest.CreateReel(t, f.db, profile.ID, models.ReelStatusDraft)
	uc := f.reelUseCase()
	ctx := context.Background()

	feed, total, err := uc.Feed(ctx, entity.ReelFilter{}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, feed, 1)
	assert.Equal(t, published.ID, feed[0].ID)

	got, err := uc.Get(ctx, published.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Profile)
	assert.Equal(t, profile.Name, got.Profile.Name)

	_, err = uc.Get(ctx, draft.ID)
	requireKind(t, err, apperror.KindNotFound)
}
