package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// CropResult contains a cropped region encoded as base64 PNG, ready to be
// returned through the MCP content channel for visual review.
type CropResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// regionSpec describes a named review region as fractions of the frame, so
// the same vocabulary applies to any scan size.
type regionSpec struct {
	x0, y0, x1, y1 float64
}

// reviewRegions is the vocabulary reviewers use when zooming into a scan.
// Quadrants and halves support laterality comparison; center targets the
// main tissue mass, away from burned-in margin annotations.
var reviewRegions = map[string]regionSpec{
	"top-left":     {0, 0, 0.5, 0.5},
	"top-right":    {0.5, 0, 1, 0.5},
	"bottom-left":  {0, 0.5, 0.5, 1},
	"bottom-right": {0.5, 0.5, 1, 1},
	"top-half":     {0, 0, 1, 0.5},
	"bottom-half":  {0, 0.5, 1, 1},
	"left-half":    {0, 0, 0.5, 1},
	"right-half":   {0.5, 0, 1, 1},
	"center":       {0.25, 0.25, 0.75, 0.75},
}

// Crop extracts a rectangular region from an image, optionally rescaling it.
// Reviewers use this to zoom into a suspicious region of a scan.
func Crop(img image.Image, x1, y1, x2, y2 int, scale float64) (*CropResult, error) {
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}
	bounds := img.Bounds()
	if x1 < bounds.Min.X || y1 < bounds.Min.Y || x2 > bounds.Max.X || y2 > bounds.Max.Y {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			x1, y1, x2, y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}

	region := imaging.Crop(img, image.Rect(x1, y1, x2, y2))
	if scale > 0 && scale != 1.0 {
		w := int(float64(region.Bounds().Dx()) * scale)
		h := int(float64(region.Bounds().Dy()) * scale)
		region = imaging.Resize(region, w, h, imaging.Lanczos)
	}

	return encodeCrop(region)
}

// CropQuadrant extracts a named review region from an image. See
// reviewRegions for the supported names.
func CropQuadrant(img image.Image, region string, scale float64) (*CropResult, error) {
	spec, ok := reviewRegions[region]
	if !ok {
		return nil, fmt.Errorf("unknown region: %s", region)
	}

	bounds := img.Bounds()
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())
	rect := image.Rect(
		int(spec.x0*w), int(spec.y0*h),
		int(spec.x1*w), int(spec.y1*h),
	).Add(bounds.Min)

	return Crop(img, rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y, scale)
}

// encodeCrop packages a cropped region for the content channel.
func encodeCrop(region image.Image) (*CropResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, region); err != nil {
		return nil, fmt.Errorf("failed to encode cropped image: %w", err)
	}
	return &CropResult{
		Width:       region.Bounds().Dx(),
		Height:      region.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
