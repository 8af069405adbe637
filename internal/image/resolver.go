// Package image resolves uploaded product images from the local fallback
// directory, defending against path traversal.
package image

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidFilename means the filename failed validation before any I/O.
var ErrInvalidFilename = errors.New("invalid filename")

// ErrAccessDenied means the resolved path escaped the uploads directory.
var ErrAccessDenied = errors.New("access denied")

// ErrNotFound means the file does not exist in the uploads directory.
var ErrNotFound = errors.New("image not found")

// contentTypes maps file extensions to MIME types for locally served images.
var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
}

const defaultContentType = "image/jpeg"

// ValidateFilename rejects empty names and anything carrying path segments
// or traversal sequences. It must be called before any remote or local I/O.
func ValidateFilename(name string) error {
	if name == "" ||
		strings.Contains(name, "..") ||
		strings.ContainsAny(name, `/\`) {
		return ErrInvalidFilename
	}
	return nil
}

// ContentTypeFor returns the MIME type for a filename based on its extension,
// defaulting to image/jpeg for unknown extensions.
func ContentTypeFor(filename string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct
	}
	return defaultContentType
}

// Resolver serves product images from a fixed local uploads directory.
type Resolver struct {
	dir string
}

// NewResolver creates a Resolver rooted at dir.
func NewResolver(dir string) *Resolver {
	return &Resolver{dir: dir}
}

// Resolve maps a validated filename to an absolute path inside the uploads
// directory and its content type. The canonical path is re-checked for
// containment as defense in depth against traversal that survived
// ValidateFilename through encoding tricks.
func (r *Resolver) Resolve(filename string) (string, string, error) {
	root, err := filepath.Abs(r.dir)
	if err != nil {
		return "", "", fmt.Errorf("resolve uploads dir: %w", err)
	}

	path, err := filepath.Abs(filepath.Join(root, filename))
	if err != nil {
		return "", "", fmt.Errorf("resolve image path: %w", err)
	}
	if path != root && !strings.HasPrefix(path, root+string(filepath.Separator)) {
		return "", "", ErrAccessDenied
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", "", ErrNotFound
	}

	return path, ContentTypeFor(filename), nil
}
