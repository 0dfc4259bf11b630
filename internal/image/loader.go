// Package image provides utilities for loading images and preparing rasters for analysis.
package image

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "github.com/gen2brain/avif" // Register AVIF format
	_ "golang.org/x/image/webp"   // Register WebP format

	httputil "github.com/colorwaver/colorwaver/internal/util/http"
)

// Loader produces decoded images from a location.
type Loader interface {
	Load(path string) (image.Image, error)
}

// FileLoader decodes still images and captured frames stored on disk.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load decodes the file at path. Supported formats: JPEG, PNG, GIF, WebP, AVIF.
func (l *FileLoader) Load(path string) (image.Image, error) {
	file, err := openImageFile(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return decode(file)
}

// openImageFile opens path for reading, rejecting empty paths and directories.
func openImageFile(path string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}

	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return nil, fmt.Errorf("image file not found: %s", path)
	case err != nil:
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	case info.IsDir():
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	return file, nil
}

func decode(r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}
	return img, nil
}

// IsURL reports whether path is an HTTP(S) URL.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// ValidateImagePath checks that path is an HTTP(S) URL or a readable file
// in a supported image format. URLs are not fetched here.
func ValidateImagePath(path string) error {
	if IsURL(path) {
		return nil
	}

	file, err := openImageFile(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, _, err := image.DecodeConfig(file); err != nil {
		return fmt.Errorf("unsupported or invalid image format: %w", err)
	}
	return nil
}

// SupportedImageExtensions returns the file extensions of decodable images.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".avif"}
}

// IsImageFile reports whether path carries a supported image extension.
// Raw camera dumps (.nv21, .i420, ...) are not images in this sense.
func IsImageFile(path string) bool {
	return slices.Contains(SupportedImageExtensions(), strings.ToLower(filepath.Ext(path)))
}

// SmartLoader loads images from both local files and HTTP(S) URLs.
type SmartLoader struct {
	files *FileLoader
	fetch httputil.FetchOptions
}

// NewSmartLoader creates a SmartLoader with default fetch limits.
func NewSmartLoader() *SmartLoader {
	return NewSmartLoaderWithOptions(httputil.FetchOptions{})
}

// NewSmartLoaderWithOptions creates a SmartLoader with explicit fetch limits.
func NewSmartLoaderWithOptions(opts httputil.FetchOptions) *SmartLoader {
	return &SmartLoader{files: NewFileLoader(), fetch: opts}
}

// Load implements Loader.
func (l *SmartLoader) Load(path string) (image.Image, error) {
	return l.LoadContext(context.Background(), path)
}

// LoadContext loads path, honouring ctx while fetching remote images.
func (l *SmartLoader) LoadContext(ctx context.Context, path string) (image.Image, error) {
	if !IsURL(path) {
		return l.files.Load(path)
	}

	data, err := httputil.Fetch(ctx, path, l.fetch)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
	}
	return decode(bytes.NewReader(data))
}
