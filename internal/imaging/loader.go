package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// File-size bounds for candidate mammograms. Anything outside this range is
// rejected before decoding: below the minimum the file cannot hold a usable
// scan, above the maximum it is most likely not a screening image at all.
const (
	MinFileSize = 1024             // 1 KB
	MaxFileSize = 50 * 1024 * 1024 // 50 MB
)

// MinRecommendedSide is the smallest width/height (in pixels) at which the
// heuristic scorers produce meaningful results. Smaller images still load,
// but LoadImageInfo flags them as below recommended resolution.
const MinRecommendedSide = 224

// DecodeError reports that a candidate image could not be loaded or decoded.
// Callers treat it as terminal for the affected image: scoring is not
// attempted on inputs that fail to decode.
type DecodeError struct {
	Path   string
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("decode %s: %s", e.Path, e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ImageCache provides thread-safe caching of decoded images so a single
// screening session (validate, assess, crop, annotate) decodes each file once.
//
// Cached images remain in memory until explicitly removed via Evict() or
// Clear().
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves an image from the cache or loads it from disk if not cached.
//
// Before decoding, the file is validated against the screening bounds:
// supported extension (.png, .jpg, .jpeg, .gif) and size within
// [MinFileSize, MaxFileSize]. Violations and undecodable data are reported
// as *DecodeError.
//
// The image is cached using the exact path string provided. Different paths
// to the same file (relative vs absolute) result in separate cache entries.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	if err := validateFile(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Reason: "cannot open file", Err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &DecodeError{Path: path, Reason: "cannot decode image", Err: err}
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// validateFile checks extension and file size before any decode work.
func validateFile(path string) error {
	stat, err := os.Stat(path)
	if err != nil {
		return &DecodeError{Path: path, Reason: "file does not exist", Err: err}
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif":
	default:
		return &DecodeError{Path: path, Reason: fmt.Sprintf("unsupported format %q", ext)}
	}

	if stat.Size() > MaxFileSize {
		return &DecodeError{Path: path, Reason: fmt.Sprintf("file too large (%.1f MB)", float64(stat.Size())/(1024*1024))}
	}
	if stat.Size() < MinFileSize {
		return &DecodeError{Path: path, Reason: "file too small to be a medical image"}
	}

	return nil
}

// Clear removes all images from the cache, freeing the associated memory.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
//
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the detected image format: "png", "jpeg", "gif", or "unknown".
	// Detection is based on file extension, not file contents.
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the image has an alpha (transparency) channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`

	// BelowRecommendedSize is true when either side is smaller than
	// MinRecommendedSide. The image is still scoreable but results degrade.
	BelowRecommendedSize bool `json:"below_recommended_size"`
}

// LoadImageInfo loads an image and returns metadata about it: dimensions,
// format, color depth, alpha channel presence, file size, and whether the
// resolution is below the recommended minimum for heuristic scoring.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	format := "unknown"
	switch ext {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	}

	hasAlpha := false
	colorDepth := "8-bit"
	switch img.(type) {
	case *image.RGBA, *image.NRGBA:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	}

	return &ImageInfo{
		Width:                bounds.Dx(),
		Height:               bounds.Dy(),
		Format:               format,
		ColorDepth:           colorDepth,
		HasAlpha:             hasAlpha,
		FileSizeBytes:        stat.Size(),
		BelowRecommendedSize: bounds.Dx() < MinRecommendedSide || bounds.Dy() < MinRecommendedSide,
	}, nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of an image without additional
// metadata. The image is loaded into the cache if not already present.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
