package services

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/ZigaLarissa/EduAssist/internal/storage"
	"github.com/pkg/errors"
)

// uploadImage stores an image uploaded by userID and returns its URL
func uploadImage(ctx context.Context, store storage.ImageStore, userID string, image io.Reader, now time.Time) (string, error) {
	if store == nil {
		return "", errors.New("image uploads are not configured")
	}

	r, contentType, err := storage.SniffContentType(image)
	if err != nil {
		return "", errors.Wrap(err, "read image")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", invalid("only image uploads are allowed")
	}

	return store.Upload(ctx, storage.ImageKey(userID, now), r, contentType)
}
