package usecase

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"testing"

	"umkm-reels/pkg/apperror"
	"umkm-reels/pkg/config"
	"umkm-reels/pkg/dbtest"
	"umkm-reels/pkg/logger"
	"umkm-reels/pkg/models"
	"umkm-reels/pkg/storage"
	"umkm-reels/services/catalog/internal/entity"
	"umkm-reels/services/catalog/internal/repo/persistent"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	users    persistent.UserRepository
	profiles persistent.ProfileRepository
	reels    persistent.ReelRepository
	store    *storage.Disk
	cfg      *config.Config
	log      *logger.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t)
	store, err := storage.NewDisk(t.TempDir(), "/storage")
	require.NoError(t, err)

	return &fixture{
		db:       db,
		users:    persistent.NewUserRepository(db),
		profiles: persistent.NewProfileRepository(db),
		reels:    persistent.NewReelRepository(db),
		store:    store,
		cfg: &config.Config{
			AvatarMaxBytes: 2 << 20,
			PublicBaseURL:  "https://umkm.example",
		},
		log: logger.NewWithOptions(logger.Options{Stdout: io.Discard, Stderr: io.Discard}),
	}
}

func (f *fixture) profileUseCase() ProfileUseCase {
	return NewProfileUseCase(f.users, f.profiles, f.reels, f.store, f.cfg, f.log)
}

func (f *fixture) reelUseCase() ReelUseCase {
	return NewReelUseCase(f.users, f.profiles, f.reels, f.store, f.log)
}

func (f *fixture) exists(t *testing.T, ref string) bool {
	t.Helper()
	ok, err := f.store.Exists(context.Background(), ref)
	require.NoError(t, err)
	return ok
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 10), G: 120, B: uint8(y * 10), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func pngDataURI(t *testing.T) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t, 8, 8))
}

// mp4Bytes starts with a minimal ftyp box so content sniffing sees video/mp4.
func mp4Bytes() []byte {
	head := []byte{0, 0, 0, 0x18, 'f', 't', 'y', 'p', 'm', 'p', '4', '2', 0, 0, 0, 0, 'm', 'p', '4', '2', 'i', 's', 'o', 'm'}
	return append(head, bytes.Repeat([]byte{0x42}, 256)...)
}

type upload struct {
	name string
	data []byte
}

func fileHeaders(t *testing.T, field string, files ...upload) []*multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := w.CreateFormFile(field, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File[field]
}

func requireKind(t *testing.T, err error, kind apperror.Kind) *apperror.Error {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperror.As(err)
	require.True(t, ok, "expected application error, got %v", err)
	require.Equal(t, kind, appErr.Kind, appErr.Message)
	return appErr
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func floatPtr(f float64) *float64 { return &f }

// failingProfileRepo fails every update.
type failingProfileRepo struct {
	persistent.ProfileRepository
}

func (failingProfileRepo) Update(ctx context.Context, profile *entity.Profile) error {
	return errors.New("connection reset")
}

// failingStore fails every write.
type failingStore struct {
	storage.Store
}

func (failingStore) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	return "", errors.New("bucket unavailable")
}

func createEvents(t *testing.T, db *gorm.DB, reelID string) {
	dbtest.CreateEvents(t, db, reelID, models.EventView, 3)
}
