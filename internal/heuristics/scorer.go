package heuristics

import (
	"fmt"
	"image"

	"github.com/ironsheep/mammo-screen-mcp/internal/imaging"
)

// SubScore is the outcome of a single feature scorer.
//
// Degraded distinguishes "the heuristic ran and produced this value" from
// "the heuristic could not run and fell back to its documented default".
// Both states can carry the same numeric value (a confident 0.4 versus a
// degraded 0.4), which is exactly why the flag exists.
type SubScore struct {
	// Value is the confidence in [0, 1].
	Value float64 `json:"value"`

	// Degraded is true when the scorer fell back to its default because the
	// input was unsuitable (too small, no edges, ...).
	Degraded bool `json:"degraded,omitempty"`

	// Note explains a degraded or otherwise noteworthy result.
	Note string `json:"note,omitempty"`
}

// FeatureScores holds the five independent mammography-likeness signals.
// It is produced once per image and never mutated afterwards.
type FeatureScores struct {
	Grayscale SubScore `json:"grayscale"`
	Contrast  SubScore `json:"contrast"`
	Shape     SubScore `json:"shape"`
	Artifact  SubScore `json:"artifact"`
	Histogram SubScore `json:"histogram"`
}

// values returns the five confidences in aggregation order.
func (f FeatureScores) values() [5]float64 {
	return [5]float64{
		f.Grayscale.Value,
		f.Contrast.Value,
		f.Shape.Value,
		f.Artifact.Value,
		f.Histogram.Value,
	}
}

// Verdict is the thresholded decision derived from a FeatureScores set.
type Verdict struct {
	// Confidence is the unweighted mean of the five sub-scores.
	Confidence float64 `json:"confidence"`

	// IsMammogram is true when Confidence strictly exceeds the configured
	// verdict threshold. Exactly at the threshold is a rejection.
	IsMammogram bool `json:"is_mammogram"`

	// Warnings lists non-fatal oddities: unusual aspect ratio, extreme
	// brightness, color cast, degraded sub-scores.
	Warnings []string `json:"warnings"`
}

// Result bundles the scores and verdict for one image.
type Result struct {
	Scores  FeatureScores `json:"scores"`
	Verdict Verdict       `json:"verdict"`

	// Width and Height are the dimensions actually analyzed, after size
	// normalization.
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Scorer estimates whether an image looks like a mammogram using five pixel
// statistics. It holds no per-image state: Score is a pure function of the
// decoded input, so one Scorer may be shared by any number of goroutines
// and repeated calls on the same image return identical results.
type Scorer struct {
	cfg Config
}

// NewScorer creates a scorer with the given thresholds. Use DefaultConfig()
// for the canonical screening policy.
func NewScorer(cfg Config) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score runs all five feature scorers on a decoded image and derives the
// verdict.
//
// Score never fails: a sub-score whose preconditions do not hold reports its
// documented fallback value with Degraded set, and aggregation proceeds over
// whatever the five scorers returned. Decode failures belong to the loader,
// not here.
func (s *Scorer) Score(img image.Image) *Result {
	normalized := imaging.NormalizeSize(img, s.cfg.MaxAnalysisSide)
	plane := imaging.Luminance(normalized)

	scores := FeatureScores{
		Grayscale: s.scoreGrayscale(normalized),
		Contrast:  s.scoreContrast(plane),
		Shape:     s.scoreShape(plane),
		Artifact:  s.scoreArtifact(plane),
		Histogram: s.scoreHistogram(plane),
	}

	verdict := s.Aggregate(scores)
	verdict.Warnings = append(verdict.Warnings, s.imageWarnings(normalized, plane)...)

	return &Result{
		Scores:  scores,
		Verdict: verdict,
		Width:   plane.Width,
		Height:  plane.Height,
	}
}

// Aggregate derives the verdict from a score set: confidence is the
// unweighted arithmetic mean of the five sub-scores, and the boolean verdict
// requires confidence strictly greater than the configured threshold.
// Warnings carry a note per degraded sub-score.
func (s *Scorer) Aggregate(scores FeatureScores) Verdict {
	var sum float64
	for _, v := range scores.values() {
		sum += v
	}
	confidence := sum / 5

	// Always an array in the serialized verdict, even when clean.
	warnings := []string{}
	for _, d := range []struct {
		name string
		sub  SubScore
	}{
		{"grayscale", scores.Grayscale},
		{"contrast", scores.Contrast},
		{"shape", scores.Shape},
		{"artifact", scores.Artifact},
		{"histogram", scores.Histogram},
	} {
		if d.sub.Degraded {
			warnings = append(warnings, fmt.Sprintf("%s score degraded: %s", d.name, d.sub.Note))
		}
	}

	return Verdict{
		Confidence:  confidence,
		IsMammogram: confidence > s.cfg.VerdictThreshold,
		Warnings:    warnings,
	}
}

// imageWarnings reports non-fatal properties that make the input unusual
// for a screening scan without disqualifying it.
func (s *Scorer) imageWarnings(img image.Image, plane *imaging.Plane) []string {
	var warnings []string

	if plane.Height > 0 {
		aspect := float64(plane.Width) / float64(plane.Height)
		if aspect < 0.5 || aspect > 2.0 {
			warnings = append(warnings, fmt.Sprintf("unusual aspect ratio: %.2f", aspect))
		}
	}

	mean := plane.Mean()
	if mean < 30 {
		warnings = append(warnings, "image appears very dark")
	} else if mean > 200 {
		warnings = append(warnings, "image appears very bright")
	}

	if sat := imaging.MeanSaturation(img, 4); sat > s.cfg.SaturationWarnLevel {
		warnings = append(warnings, fmt.Sprintf("strong color cast for a radiograph (mean saturation %.2f)", sat))
	}

	return warnings
}

// clamp01 constrains a score to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
