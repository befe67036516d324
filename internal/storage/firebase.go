package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// downloadTokenKey is the object metadata key Firebase Storage reads
// download tokens from.
const downloadTokenKey = "firebaseStorageDownloadTokens"

// FirebaseStore stores images in the project's Firebase Storage bucket
type FirebaseStore struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

func NewFirebaseStore(bucket *gcs.BucketHandle, bucketName string) *FirebaseStore {
	return &FirebaseStore{bucket: bucket, bucketName: bucketName}
}

func (s *FirebaseStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	token := uuid.NewString()

	w := s.bucket.Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{downloadTokenKey: token}

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", errors.Wrap(err, "write object")
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrap(err, "close object writer")
	}

	return DownloadURL(s.bucketName, key, token), nil
}

// DownloadURL is the token-protected Firebase Storage URL of an object
func DownloadURL(bucket, key, token string) string {
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		bucket, url.PathEscape(key), token)
}
