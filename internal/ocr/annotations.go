package ocr

import (
	"regexp"
	"strings"
)

// Bounds is a rectangular bounding box in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// TextRegion is a recognized word with its location and OCR confidence.
type TextRegion struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"` // 0.0 to 1.0
	Bounds     Bounds  `json:"bounds"`
}

// OCRResult holds the raw text extraction output for an image.
type OCRResult struct {
	// FullText is all recognized text with original spacing preserved.
	FullText string `json:"full_text"`

	// Regions lists individual words with bounding boxes. May be empty
	// when box extraction fails; FullText is still populated.
	Regions []TextRegion `json:"regions"`
}

// ViewLabel identifies a standard mammographic view marker burned into the
// image, e.g. "RCC" or "L MLO".
type ViewLabel struct {
	// Side is "R" or "L".
	Side string `json:"side"`

	// Projection is the view code: CC, MLO, ML or LM.
	Projection string `json:"projection"`
}

// AnnotationsResult is the outcome of annotation extraction for one image.
type AnnotationsResult struct {
	FullText string       `json:"full_text"`
	Labels   []ViewLabel  `json:"labels"`
	Regions  []TextRegion `json:"regions,omitempty"`
}

// viewLabelRe matches side+projection markers. Tesseract tends to split or
// join the tokens unpredictably ("R CC", "RCC", "L-MLO"), so the separator
// is optional and projection codes are matched longest-first.
var viewLabelRe = regexp.MustCompile(`\b([RL])[\s-]?(MLO|CC|ML|LM)\b`)

// ParseViewLabels scans OCR output for mammographic view markers and returns
// them in order of first appearance, deduplicated.
func ParseViewLabels(text string) []ViewLabel {
	upper := strings.ToUpper(text)

	var labels []ViewLabel
	seen := make(map[ViewLabel]bool)
	for _, m := range viewLabelRe.FindAllStringSubmatch(upper, -1) {
		label := ViewLabel{Side: m[1], Projection: m[2]}
		if seen[label] {
			continue
		}
		seen[label] = true
		labels = append(labels, label)
	}
	return labels
}

// String returns the compact marker form, e.g. "RCC".
func (v ViewLabel) String() string {
	return v.Side + v.Projection
}
