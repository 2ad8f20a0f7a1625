package media

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("media not found")

// AllowedExtensions are the upload formats accepted by the service.
var AllowedExtensions = map[string]string{
	"mp4":  "video/mp4",
	"webm": "video/webm",
	"mov":  "video/quicktime",
	"avi":  "video/x-msvideo",
}

// Store persists raw media and hands back a stable identifier.
type Store interface {
	Save(ctx context.Context, r io.Reader, ext string) (string, error)
	SizeOf(ctx context.Context, id string) (int64, error)
	Open(ctx context.Context, id string) (io.ReadCloser, error)
	// Delete removes id. A missing id is not an error.
	Delete(ctx context.Context, id string) error
}

// ExtensionOf returns the lowercase extension of filename if it is allowed.
func ExtensionOf(filename string) (string, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if _, ok := AllowedExtensions[ext]; !ok {
		return "", false
	}
	return ext, true
}

// ContentType maps a storage id to its MIME type.
func ContentType(id string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(id), "."))
	if ct, ok := AllowedExtensions[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}

func newID(ext string) string {
	return uuid.NewString() + "." + ext
}

var idPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.[a-z0-9]+$`)

// ValidID reports whether id looks like an identifier this package issued,
// which also rules out path traversal.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}
