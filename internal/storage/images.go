package storage

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ImageStore uploads images and returns a URL clients can download them from
type ImageStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

// ImageKey builds the object key of an image uploaded by userID
func ImageKey(userID string, now time.Time) string {
	return fmt.Sprintf("announcements/%s_%d", userID, now.UnixMilli())
}

// SniffContentType returns a reader equivalent to r together with the
// content type detected from its first bytes.
func SniffContentType(r io.Reader) (io.Reader, string, error) {
	br := bufio.NewReaderSize(r, 512)
	head, err := br.Peek(512)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", err
	}
	return br, http.DetectContentType(head), nil
}
