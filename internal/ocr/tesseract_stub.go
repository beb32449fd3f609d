//go:build !cgo || !linux

package ocr

import (
	"fmt"
	"image"
)

// ErrUnavailable is returned by OCR entry points when the binary was built
// without Tesseract support.
var ErrUnavailable = fmt.Errorf("ocr support requires cgo and a linux build with tesseract installed")

// Available reports whether OCR support was compiled in.
func Available() bool { return false }

// ExtractText is unavailable in this build.
func ExtractText(imagePath string, language string) (*OCRResult, error) {
	return nil, ErrUnavailable
}

// ExtractTextFromRegion is unavailable in this build.
func ExtractTextFromRegion(img image.Image, x1, y1, x2, y2 int, language string) (*OCRResult, error) {
	return nil, ErrUnavailable
}

// ExtractAnnotations is unavailable in this build.
func ExtractAnnotations(imagePath string, language string) (*AnnotationsResult, error) {
	return nil, ErrUnavailable
}
