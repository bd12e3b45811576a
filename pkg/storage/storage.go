package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"umkm-reels/pkg/config"
)

var ErrInvalidKey = errors.New("invalid storage key")

// Store persists blobs under a key and hands back the reference clients use
// to fetch them. Delete and Exists take that reference.
type Store interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, ref string) error
	Exists(ctx context.Context, ref string) (bool, error)
}

func New(cfg *config.Config) (Store, error) {
	switch strings.ToLower(cfg.StorageDriver) {
	case "", "disk", "local":
		return NewDisk(cfg.StorageDir, cfg.StoragePublicPath)
	case "s3", "minio":
		return NewS3(cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func cleanKey(key string) (string, error) {
	key = strings.TrimLeft(strings.ReplaceAll(key, "\\", "/"), "/")
	if key == "" {
		return "", ErrInvalidKey
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." || part == "." || part == "" {
			return "", ErrInvalidKey
		}
	}
	return key, nil
}
