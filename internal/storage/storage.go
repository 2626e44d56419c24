// Package storage defines where uploaded images end up.
package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ImageStore saves an object and returns the URL browsers should load it from.
type ImageStore interface {
	Put(ctx context.Context, key, contentType string, body io.ReadSeeker) (url string, err error)
	Delete(ctx context.Context, key string) error
}

var extByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ImageExt returns the file extension for an accepted image content type.
func ImageExt(contentType string) (string, bool) {
	ext, ok := extByType[strings.ToLower(strings.TrimSpace(contentType))]
	return ext, ok
}

// ObjectKey builds "<folder>/<uuid><ext>". The folder is reduced to a
// clean relative path; an empty or unusable folder becomes "uploads".
func ObjectKey(folder, ext string) string {
	f := strings.Trim(path.Clean("/"+strings.TrimSpace(folder)), "/")
	if f == "" || f == "." {
		f = "uploads"
	}
	return f + "/" + uuid.NewString() + ext
}

// ValidKey reports whether key has the shape ObjectKey produces.
func ValidKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") || path.Clean(key) != key || strings.Contains(key, "..") {
		return false
	}
	dir, base := path.Split(key)
	if dir == "" {
		return false
	}
	ext := path.Ext(base)
	if !knownExt(ext) {
		return false
	}
	_, err := uuid.Parse(strings.TrimSuffix(base, ext))
	return err == nil
}

// KeyFromURL recovers "<folder>/<uuid><ext>" from a URL returned by Put.
// It fails for URLs this store did not produce.
func KeyFromURL(u, folder string) (string, bool) {
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	base := path.Base(u)
	dir := path.Base(path.Dir(u))
	if dir != folder {
		return "", false
	}
	key := folder + "/" + base
	if !ValidKey(key) {
		return "", false
	}
	return key, true
}

func knownExt(ext string) bool {
	for _, e := range extByType {
		if e == ext {
			return true
		}
	}
	return false
}
