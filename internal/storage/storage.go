// Package storage keeps uploaded proof documents and payment QR images.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ueldo/ueldo-backend/internal/config"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrInvalidKey   = errors.New("invalid storage key")
)

// Storage saves bytes and hands back a key to keep on the owning record.
type Storage interface {
	Store(ctx context.Context, ownerID uuid.UUID, folder, filename string, content io.Reader, contentType string) (string, error)
	Retrieve(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

const (
	FolderProofs = "proofs"
	FolderQRCode = "qr"
)

func New(cfg *config.Config) (Storage, error) {
	switch cfg.StorageType {
	case "local", "":
		return NewLocalStorage(cfg.StorageLocalPath)
	case "s3":
		if cfg.StorageS3Bucket == "" || cfg.StorageS3Region == "" {
			return nil, fmt.Errorf("s3 storage requires STORAGE_S3_BUCKET and STORAGE_S3_REGION")
		}
		return NewS3Storage(context.Background(), cfg.StorageS3Bucket, cfg.StorageS3Region)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.StorageType)
	}
}

// newKey builds folder/owner/yyyy/mm/uuid_name.
func newKey(ownerID uuid.UUID, folder, filename string, now time.Time) string {
	return fmt.Sprintf("%s/%s/%d/%02d/%s_%s",
		folder,
		ownerID.String(),
		now.Year(),
		now.Month(),
		uuid.New().String(),
		sanitizeFilename(filename),
	)
}

// validKey rejects absolute paths and traversal.
func validKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return ErrInvalidKey
	}
	if path.Clean(key) != key || strings.HasPrefix(key, "..") {
		return ErrInvalidKey
	}
	return nil
}

var filenameReplacer = strings.NewReplacer(
	"/", "_", "\\", "_", "..", "_", ":", "_", "*", "_",
	"?", "_", "\"", "_", "<", "_", ">", "_", "|", "_", " ", "_",
	"#", "_", "%", "_", "&", "_", "+", "_",
)

func sanitizeFilename(filename string) string {
	name := filenameReplacer.Replace(path.Base(strings.ReplaceAll(filename, "\\", "/")))
	if name == "" || name == "." || name == "_" {
		return "upload"
	}
	if len(name) > 100 {
		name = name[len(name)-100:]
	}
	return name
}
