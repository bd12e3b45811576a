package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Disk stores blobs below a root directory, served at publicPath.
type Disk struct {
	root       string
	publicPath string
}

func NewDisk(root, publicPath string) (*Disk, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &Disk{
		root:       root,
		publicPath: "/" + strings.Trim(publicPath, "/"),
	}, nil
}

func (d *Disk) Root() string {
	return d.root
}

func (d *Disk) PublicPath() string {
	return d.publicPath
}

func (d *Disk) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}

	path := filepath.Join(d.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create dir: %w", err)
	}

	f, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	tmp := f.Name()

	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to move file: %w", err)
	}

	return d.publicPath + "/" + key, nil
}

// Delete removes the blob. Missing files are not an error.
func (d *Disk) Delete(ctx context.Context, ref string) error {
	path, err := d.pathFor(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (d *Disk) Exists(ctx context.Context, ref string) (bool, error) {
	path, err := d.pathFor(ref)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

func (d *Disk) pathFor(ref string) (string, error) {
	key := strings.TrimPrefix(ref, d.publicPath+"/")
	if key == ref && strings.HasPrefix(ref, "/") {
		return "", ErrInvalidKey
	}
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(d.root, filepath.FromSlash(key)), nil
}
