// Package images uploads restaurant and menu images to a storage backend
// and returns their public URL.
package images

import (
	"context"
	"errors"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// MaxSize is the largest accepted image, in bytes.
const MaxSize = 5 << 20

const (
	FolderRestaurant = "restaurant"
	FolderMenu       = "menu"
)

var (
	ErrInvalidImage = errors.New("invalid image")
	ErrUploadFailed = errors.New("image upload failed")
)

var allowedTypes = []string{"image/jpeg", "image/png"}

// Backend stores an object under key and returns its public URL.
type Backend interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// Uploader validates images and hands them to a Backend.
type Uploader struct {
	backend Backend
	newID   func() string
}

func NewUploader(backend Backend) *Uploader {
	return &Uploader{backend: backend, newID: uuid.NewString}
}

// Upload stores body and returns its URL. The content type is sniffed from
// the bytes; declaredType is only reported back in errors. folderHint
// "restaurant" goes to restaurant-images/, anything else to menu-images/.
func (u *Uploader) Upload(ctx context.Context, body []byte, declaredType, folderHint string) (string, error) {
	if len(body) == 0 {
		return "", fmt.Errorf("%w: empty file", ErrInvalidImage)
	}
	if len(body) > MaxSize {
		return "", fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidImage, MaxSize)
	}
	detected := mimetype.Detect(body)
	if !detected.Is(allowedTypes[0]) && !detected.Is(allowedTypes[1]) {
		return "", fmt.Errorf("%w: %s (declared %q), only JPEG and PNG are allowed", ErrInvalidImage, detected.String(), declaredType)
	}

	key := fmt.Sprintf("%s/%s%s", folderFor(folderHint), u.newID(), detected.Extension())
	url, err := u.backend.Put(ctx, key, body, detected.String())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	return url, nil
}

func folderFor(hint string) string {
	if hint == FolderRestaurant {
		return "restaurant-images"
	}
	return "menu-images"
}
