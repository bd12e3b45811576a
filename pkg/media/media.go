package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"net/http"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

var (
	ErrInvalidDataURI   = errors.New("invalid data uri")
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrTooLarge         = errors.New("file too large")
	ErrNotAnImage       = errors.New("file is not a valid image")
)

var dataURIPattern = regexp.MustCompile(`^data:image/([a-zA-Z0-9.+-]+);base64,(.+)$`)

// image subtype -> stored extension
var imageExtensions = map[string]string{
	"jpeg": "jpg",
	"jpg":  "jpg",
	"png":  "png",
	"gif":  "gif",
	"webp": "webp",
}

type Image struct {
	Ext         string
	ContentType string
	Data        []byte
	Width       int
	Height      int
}

func IsDataURI(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "data:")
}

// DecodeDataURI parses data:image/<ext>;base64,<payload>, checks the payload
// really is an image of a supported type and at most maxBytes long.
func DecodeDataURI(uri string, maxBytes int) (*Image, error) {
	m := dataURIPattern.FindStringSubmatch(strings.TrimSpace(uri))
	if m == nil {
		return nil, ErrInvalidDataURI
	}

	subtype := strings.ToLower(m[1])
	ext, ok := imageExtensions[subtype]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, subtype)
	}

	payload := m[2]
	if maxBytes > 0 && base64.StdEncoding.DecodedLen(len(payload)) > maxBytes+2 {
		return nil, ErrTooLarge
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	if maxBytes > 0 && len(data) > maxBytes {
		return nil, ErrTooLarge
	}

	img, err := decode(data)
	if err != nil {
		return nil, err
	}

	return &Image{
		Ext:         ext,
		ContentType: "image/" + normalizedSubtype(subtype),
		Data:        data,
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
	}, nil
}

func normalizedSubtype(subtype string) string {
	if subtype == "jpg" {
		return "jpeg"
	}
	return subtype
}

func decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}
	return img, nil
}

// Thumbnail renders a centered square JPEG of the given size.
func Thumbnail(data []byte, size int) ([]byte, error) {
	img, err := decode(data)
	if err != nil {
		return nil, err
	}

	thumb := imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// Sniff returns the detected MIME type of the first bytes of a file.
func Sniff(head []byte) string {
	return http.DetectContentType(head)
}

// IsVideo accepts the containers browsers play inline.
func IsVideo(contentType string) bool {
	switch contentType {
	case "video/mp4", "video/webm", "video/quicktime", "video/x-m4v", "video/3gpp":
		return true
	}
	return false
}

func IsImage(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	}
	return false
}

// stored extension per accepted upload type
var uploadExtensions = map[string]string{
	"video/mp4":       ".mp4",
	"video/webm":      ".webm",
	"video/quicktime": ".mov",
	"video/x-m4v":     ".m4v",
	"video/3gpp":      ".3gp",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
}

// Extension maps a validated content type to the extension the blob is
// stored under. Client filenames are never consulted.
func Extension(contentType string) (string, bool) {
	ext, ok := uploadExtensions[contentType]
	return ext, ok
}

// VideoType sniffs the container of a video upload. QuickTime and 3GP are
// not recognised by content sniffing, so the declared type is accepted for
// them only when the file starts with an ISO media ftyp box.
func VideoType(head []byte, declared string) string {
	contentType := Sniff(head)
	if IsVideo(contentType) {
		return contentType
	}
	if len(head) >= 8 && string(head[4:8]) == "ftyp" && IsVideo(declared) && declared != "video/webm" {
		return declared
	}
	return contentType
}
