package heuristics

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/histogram"

	"github.com/ironsheep/mammo-screen-mcp/internal/imaging"
)

// scoreGrayscale measures how monochrome the image is. Mammograms are
// near-monochrome; diverging color channels indicate an ordinary photo.
//
// The statistic is the mean over all pixels of the per-pixel variance across
// the R, G and B intensities, scaled by ColorVarianceScale:
//
//	score = clamp01(1 - meanVariance/scale)
//
// A pixel-equal-channels image scores exactly 1.0; independently random
// channels push the per-pixel variance into the thousands and the score to 0.
// Single-channel inputs are trivially grayscale and score 1.0.
func (s *Scorer) scoreGrayscale(img image.Image) SubScore {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return SubScore{Value: 1.0, Note: "single-channel input"}
	}

	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return SubScore{Value: 1.0, Degraded: true, Note: "empty image"}
	}

	var sumVar float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			rf := float64(r >> 8)
			gf := float64(g >> 8)
			bf := float64(b >> 8)
			m := (rf + gf + bf) / 3
			sumVar += ((rf-m)*(rf-m) + (gf-m)*(gf-m) + (bf-m)*(bf-m)) / 3
		}
	}

	meanVar := sumVar / float64(total)
	return SubScore{Value: clamp01(1 - meanVar/s.cfg.ColorVarianceScale)}
}

// scoreContrast examines local-contrast texture. The plane is mean-filtered
// with a 5x5 box kernel and the standard deviation of the absolute residual
// |original - blurred| is mapped into confidence bands: medical images show
// a characteristic mid-range texture, flat photos and noisy scans fall
// outside it.
func (s *Scorer) scoreContrast(plane *imaging.Plane) SubScore {
	if plane.Width < 5 || plane.Height < 5 {
		return SubScore{
			Value:    fallbackContrast,
			Degraded: true,
			Note:     fmt.Sprintf("image %dx%d too small for 5x5 mean filter", plane.Width, plane.Height),
		}
	}

	// blur.Box with radius 2 is the 5x5 mean filter.
	blurred := imaging.Luminance(blur.Box(plane.ToGray(), 2))

	n := float64(plane.Width * plane.Height)
	var sum float64
	for y := 0; y < plane.Height; y++ {
		for x := 0; x < plane.Width; x++ {
			sum += math.Abs(plane.Pix[y][x] - blurred.Pix[y][x])
		}
	}
	mean := sum / n

	var sq float64
	for y := 0; y < plane.Height; y++ {
		for x := 0; x < plane.Width; x++ {
			d := math.Abs(plane.Pix[y][x]-blurred.Pix[y][x]) - mean
			sq += d * d
		}
	}
	std := math.Sqrt(sq / n)

	switch {
	case std > s.cfg.ContrastInnerLow && std < s.cfg.ContrastInnerHigh:
		return SubScore{Value: 0.8}
	case std > s.cfg.ContrastOuterLow && std < s.cfg.ContrastOuterHigh:
		return SubScore{Value: 0.6}
	default:
		return SubScore{Value: 0.3}
	}
}

// scoreArtifact checks for the uniform background that medical acquisition
// hardware leaves in the image corners. It samples four fixed-size corner
// patches and compares their mean intensities: low variance between the
// corners reads as a scan background, high variance as an ordinary scene.
func (s *Scorer) scoreArtifact(plane *imaging.Plane) SubScore {
	patch := s.cfg.CornerPatchSize
	if plane.Width < patch || plane.Height < patch {
		return SubScore{
			Value:    fallbackArtifact,
			Degraded: true,
			Note:     fmt.Sprintf("image %dx%d too small for %dx%d corner patches", plane.Width, plane.Height, patch, patch),
		}
	}

	w, h := plane.Width, plane.Height
	means := [4]float64{
		plane.Region(0, 0, patch, patch).Mean(),
		plane.Region(w-patch, 0, w, patch).Mean(),
		plane.Region(0, h-patch, patch, h).Mean(),
		plane.Region(w-patch, h-patch, w, h).Mean(),
	}

	var m float64
	for _, v := range means {
		m += v
	}
	m /= 4

	var variance float64
	for _, v := range means {
		variance += (v - m) * (v - m)
	}
	variance /= 4

	if variance < s.cfg.CornerVarianceMax {
		return SubScore{Value: 0.7}
	}
	return SubScore{Value: 0.4}
}

// scoreHistogram looks for the bimodal tissue/background intensity pattern.
// The 256-bin histogram is smoothed with a 15-tap Gaussian and local maxima
// above 10% of the global peak are counted; a small peak count (1-3) is the
// medical pattern, a busy histogram is not.
func (s *Scorer) scoreHistogram(plane *imaging.Plane) SubScore {
	if plane.Width == 0 || plane.Height == 0 {
		return SubScore{Value: fallbackHistogram, Degraded: true, Note: "empty image"}
	}

	bins := histogram.NewRGBAHistogram(plane.ToGray()).R.Bins
	smooth := smoothHistogram(bins)

	var max float64
	for _, v := range smooth {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		return SubScore{Value: fallbackHistogram, Degraded: true, Note: "empty histogram"}
	}

	floor := max * 0.1
	peaks := 0
	for i := 1; i < len(smooth)-1; i++ {
		if smooth[i] > smooth[i-1] && smooth[i] > smooth[i+1] && smooth[i] > floor {
			peaks++
		}
	}

	if peaks >= s.cfg.HistogramPeakMin && peaks <= s.cfg.HistogramPeakMax {
		return SubScore{Value: 0.8}
	}
	return SubScore{Value: 0.5}
}

// smoothHistogram convolves the bins with a 15-tap Gaussian kernel
// (sigma = 3), clamping at the ends. Smoothing suppresses the single-bin
// jitter that would otherwise read as dozens of false peaks.
func smoothHistogram(bins []int) []float64 {
	const taps = 15
	const sigma = 3.0
	half := taps / 2

	kernel := make([]float64, taps)
	var kernelSum float64
	for i := range kernel {
		d := float64(i - half)
		kernel[i] = math.Exp(-d * d / (2 * sigma * sigma))
		kernelSum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= kernelSum
	}

	out := make([]float64, len(bins))
	for i := range bins {
		var sum float64
		for k := -half; k <= half; k++ {
			j := i + k
			if j < 0 {
				j = 0
			}
			if j >= len(bins) {
				j = len(bins) - 1
			}
			sum += float64(bins[j]) * kernel[k+half]
		}
		out[i] = sum
	}
	return out
}
