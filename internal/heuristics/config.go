package heuristics

// Config collects every threshold the heuristic scorer uses. The values were
// tuned against screening-resolution mammograms; they are plain data so a
// caller can adjust them without touching scorer code, and so no cutoff
// hides inside a function body.
type Config struct {
	// VerdictThreshold is the aggregate confidence a candidate must strictly
	// exceed to be accepted as a mammogram. This is the single canonical
	// acceptance policy; per-sub-score thresholds never override it.
	VerdictThreshold float64

	// ColorVarianceScale divides the mean per-pixel cross-channel variance
	// before it is subtracted from 1.0 in the grayscale score.
	ColorVarianceScale float64

	// Contrast bands: the standard deviation of the local-contrast residual
	// maps to 0.8 inside [ContrastInnerLow, ContrastInnerHigh], to 0.6
	// inside [ContrastOuterLow, ContrastOuterHigh], and to 0.3 elsewhere.
	ContrastInnerLow  float64
	ContrastInnerHigh float64
	ContrastOuterLow  float64
	ContrastOuterHigh float64

	// CornerPatchSize is the side length (pixels) of the four corner patches
	// sampled by the artifact scorer.
	CornerPatchSize int

	// CornerVarianceMax is the highest variance of the four corner-patch
	// means still considered a uniform medical-scan background.
	CornerVarianceMax float64

	// Circle radius search range (pixels, on the normalized plane) for the
	// shape scorer's Hough transform.
	MinCircleRadius int
	MaxCircleRadius int

	// MinContourCount is the number of distinct contours that counts as
	// "multiple organic structures" when no circle is found.
	MinContourCount int

	// Histogram peak band: a smoothed-histogram peak count inside
	// [HistogramPeakMin, HistogramPeakMax] reads as the bimodal
	// tissue/background pattern.
	HistogramPeakMin int
	HistogramPeakMax int

	// MaxAnalysisSide caps the working resolution; larger inputs are
	// downscaled before any scoring so the pixel-scale thresholds above
	// stay meaningful.
	MaxAnalysisSide int

	// SaturationWarnLevel is the mean HSL saturation above which a color
	// cast warning is attached to the verdict.
	SaturationWarnLevel float64
}

// DefaultConfig returns the canonical screening thresholds.
func DefaultConfig() Config {
	return Config{
		VerdictThreshold:    0.7,
		ColorVarianceScale:  1000,
		ContrastInnerLow:    10,
		ContrastInnerHigh:   50,
		ContrastOuterLow:    5,
		ContrastOuterHigh:   80,
		CornerPatchSize:     50,
		CornerVarianceMax:   100,
		MinCircleRadius:     16,
		MaxCircleRadius:     160,
		MinContourCount:     5,
		HistogramPeakMin:    1,
		HistogramPeakMax:    3,
		MaxAnalysisSide:     512,
		SaturationWarnLevel: 0.25,
	}
}

// Fallback values reported when a sub-score cannot run on the given input.
// Each matches the lowest regular band of its scorer, so a degraded result
// never inflates the aggregate.
const (
	fallbackContrast  = 0.3
	fallbackShape     = 0.4
	fallbackArtifact  = 0.4
	fallbackHistogram = 0.5
)
