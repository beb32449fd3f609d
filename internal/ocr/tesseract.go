//go:build cgo && linux

package ocr

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// Available reports whether OCR support was compiled in.
func Available() bool { return true }

// ExtractText performs OCR on an entire image file.
//
// language is a Tesseract language code ("eng"); the corresponding training
// data must be installed on the system. If word-level bounding box
// extraction fails the full text is still returned with empty Regions.
func ExtractText(imagePath string, language string) (*OCRResult, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return &OCRResult{FullText: text, Regions: []TextRegion{}}, nil
	}

	regions := make([]TextRegion, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		regions = append(regions, TextRegion{
			Text:       box.Word,
			Confidence: float64(box.Confidence) / 100.0,
			Bounds: Bounds{
				X1: box.Box.Min.X,
				Y1: box.Box.Min.Y,
				X2: box.Box.Max.X,
				Y2: box.Box.Max.Y,
			},
		})
	}

	return &OCRResult{FullText: text, Regions: regions}, nil
}

// ExtractTextFromRegion performs OCR on a rectangular region of an image.
// Returned bounding boxes are adjusted to original-image coordinates.
func ExtractTextFromRegion(img image.Image, x1, y1, x2, y2 int, language string) (*OCRResult, error) {
	cropped := imaging.Crop(img, image.Rect(x1, y1, x2, y2))

	// Tesseract wants a file path.
	tmpFile, err := os.CreateTemp("", "ocr-region-*.png")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(tmpFile, cropped); err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("failed to encode temp image: %w", err)
	}
	tmpFile.Close()

	result, err := ExtractText(tmpPath, language)
	if err != nil {
		return nil, err
	}

	for i := range result.Regions {
		result.Regions[i].Bounds.X1 += x1
		result.Regions[i].Bounds.Y1 += y1
		result.Regions[i].Bounds.X2 += x1
		result.Regions[i].Bounds.Y2 += y1
	}
	return result, nil
}

// ExtractAnnotations runs OCR over the whole image file and parses view
// markers from the recognized text.
func ExtractAnnotations(imagePath string, language string) (*AnnotationsResult, error) {
	result, err := ExtractText(imagePath, language)
	if err != nil {
		return nil, err
	}
	return &AnnotationsResult{
		FullText: result.FullText,
		Labels:   ParseViewLabels(result.FullText),
		Regions:  result.Regions,
	}, nil
}
