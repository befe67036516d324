package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// formImage opens the optional "image" file of a multipart request. The
// returned closer is never nil.
func formImage(c *gin.Context) (io.Reader, func(), error) {
	header, err := c.FormFile("image")
	if err == http.ErrMissingFile || err == http.ErrNotMultipart {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, err
	}

	f, err := header.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return f, func() { f.Close() }, nil
}

// splitIDs accepts repeated fields, comma separated values and JSON arrays
func splitIDs(values []string) []string {
	var ids []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if strings.HasPrefix(v, "[") {
			var arr []string
			if err := json.Unmarshal([]byte(v), &arr); err == nil {
				ids = append(ids, arr...)
				continue
			}
		}
		ids = append(ids, strings.Split(v, ",")...)
	}
	return ids
}
