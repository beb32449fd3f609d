package heuristics

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/ironsheep/mammo-screen-mcp/internal/imaging"
)

func uniformPlane(width, height int, v float64) *imaging.Plane {
	p := imaging.NewPlane(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p.Pix[y][x] = v
		}
	}
	return p
}

func TestScoreGrayscale(t *testing.T) {
	s := NewScorer(DefaultConfig())

	t.Run("uniform gray scores 1.0", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 64, 64))
		for y := 0; y < 64; y++ {
			for x := 0; x < 64; x++ {
				img.Set(x, y, color.RGBA{128, 128, 128, 255})
			}
		}
		if got := s.scoreGrayscale(img).Value; got != 1.0 {
			t.Errorf("got %.4f, want 1.0", got)
		}
	})

	t.Run("single-channel input scores 1.0", func(t *testing.T) {
		img := image.NewGray(image.Rect(0, 0, 64, 64))
		sub := s.scoreGrayscale(img)
		if sub.Value != 1.0 {
			t.Errorf("got %.4f, want 1.0", sub.Value)
		}
	})

	t.Run("independent random channels score below 0.3", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		img := image.NewRGBA(image.Rect(0, 0, 64, 64))
		for y := 0; y < 64; y++ {
			for x := 0; x < 64; x++ {
				img.Set(x, y, color.RGBA{
					uint8(rng.Intn(256)),
					uint8(rng.Intn(256)),
					uint8(rng.Intn(256)),
					255,
				})
			}
		}
		if got := s.scoreGrayscale(img).Value; got >= 0.3 {
			t.Errorf("got %.4f, want < 0.3", got)
		}
	})

	t.Run("saturated halves score below 0.5", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 64, 64))
		for y := 0; y < 64; y++ {
			for x := 0; x < 64; x++ {
				if x < 32 {
					img.Set(x, y, color.RGBA{255, 0, 0, 255})
				} else {
					img.Set(x, y, color.RGBA{0, 0, 255, 255})
				}
			}
		}
		if got := s.scoreGrayscale(img).Value; got >= 0.5 {
			t.Errorf("got %.4f, want < 0.5", got)
		}
	})
}

func TestScoreContrast(t *testing.T) {
	s := NewScorer(DefaultConfig())

	t.Run("too small degrades", func(t *testing.T) {
		sub := s.scoreContrast(uniformPlane(4, 4, 100))
		if !sub.Degraded {
			t.Error("expected degraded sub-score")
		}
		if sub.Value != fallbackContrast {
			t.Errorf("got %.2f, want fallback %.2f", sub.Value, fallbackContrast)
		}
	})

	t.Run("flat image scores low band", func(t *testing.T) {
		sub := s.scoreContrast(uniformPlane(100, 100, 100))
		if sub.Degraded {
			t.Error("flat image should not degrade")
		}
		if sub.Value != 0.3 {
			t.Errorf("got %.2f, want 0.3", sub.Value)
		}
	})

	t.Run("textured image scores mid band", func(t *testing.T) {
		// Gaussian texture with sigma 40 leaves a local-contrast residual
		// whose deviation falls in the medical band.
		rng := rand.New(rand.NewSource(3))
		p := imaging.NewPlane(120, 120)
		for y := 0; y < 120; y++ {
			for x := 0; x < 120; x++ {
				v := 128 + rng.NormFloat64()*40
				if v < 0 {
					v = 0
				}
				if v > 255 {
					v = 255
				}
				p.Pix[y][x] = v
			}
		}
		sub := s.scoreContrast(p)
		if sub.Value != 0.8 && sub.Value != 0.6 {
			t.Errorf("got %.2f, want 0.8 or 0.6", sub.Value)
		}
	})
}

func TestScoreArtifact(t *testing.T) {
	s := NewScorer(DefaultConfig())

	t.Run("uniform corners score 0.7", func(t *testing.T) {
		p := uniformPlane(200, 200, 12)
		// A bright center does not disturb the corner patches.
		for y := 60; y < 140; y++ {
			for x := 60; x < 140; x++ {
				p.Pix[y][x] = 180
			}
		}
		if got := s.scoreArtifact(p).Value; got != 0.7 {
			t.Errorf("got %.2f, want 0.7", got)
		}
	})

	t.Run("divergent corners score 0.4", func(t *testing.T) {
		p := uniformPlane(200, 200, 0)
		for y := 0; y < 100; y++ {
			for x := 100; x < 200; x++ {
				p.Pix[y][x] = 90
			}
		}
		for y := 100; y < 200; y++ {
			for x := 0; x < 100; x++ {
				p.Pix[y][x] = 180
			}
		}
		for y := 100; y < 200; y++ {
			for x := 100; x < 200; x++ {
				p.Pix[y][x] = 250
			}
		}
		if got := s.scoreArtifact(p).Value; got != 0.4 {
			t.Errorf("got %.2f, want 0.4", got)
		}
	})

	t.Run("too small degrades", func(t *testing.T) {
		sub := s.scoreArtifact(uniformPlane(30, 30, 50))
		if !sub.Degraded || sub.Value != fallbackArtifact {
			t.Errorf("got %+v, want degraded fallback %.2f", sub, fallbackArtifact)
		}
	})
}

func TestScoreHistogram(t *testing.T) {
	s := NewScorer(DefaultConfig())

	t.Run("bimodal scores 0.8", func(t *testing.T) {
		// Tissue/background split: half the pixels near 30, half near 200.
		p := imaging.NewPlane(100, 100)
		for y := 0; y < 100; y++ {
			for x := 0; x < 100; x++ {
				if x < 50 {
					p.Pix[y][x] = 30
				} else {
					p.Pix[y][x] = 200
				}
			}
		}
		if got := s.scoreHistogram(p).Value; got != 0.8 {
			t.Errorf("got %.2f, want 0.8", got)
		}
	})

	t.Run("many peaks score 0.5", func(t *testing.T) {
		// Five well-separated intensity spikes survive smoothing as five
		// distinct peaks, above the medical band.
		levels := []float64{20, 70, 120, 170, 220}
		p := imaging.NewPlane(100, 100)
		for y := 0; y < 100; y++ {
			for x := 0; x < 100; x++ {
				p.Pix[y][x] = levels[(y*100+x)%len(levels)]
			}
		}
		if got := s.scoreHistogram(p).Value; got != 0.5 {
			t.Errorf("got %.2f, want 0.5", got)
		}
	})

	t.Run("empty plane degrades", func(t *testing.T) {
		sub := s.scoreHistogram(imaging.NewPlane(0, 0))
		if !sub.Degraded || sub.Value != fallbackHistogram {
			t.Errorf("got %+v, want degraded fallback %.2f", sub, fallbackHistogram)
		}
	})
}

func TestSmoothHistogram(t *testing.T) {
	bins := make([]int, 256)
	bins[100] = 1000

	smooth := smoothHistogram(bins)
	if len(smooth) != 256 {
		t.Fatalf("length: got %d, want 256", len(smooth))
	}
	// The spike spreads but its center stays the maximum.
	for i, v := range smooth {
		if v > smooth[100] && i != 100 {
			t.Fatalf("smoothed maximum moved to bin %d", i)
		}
	}
	if smooth[100] >= 1000 {
		t.Error("smoothing should spread the spike")
	}
	if smooth[97] <= smooth[93] {
		t.Error("smoothed values should decay away from the spike")
	}
}

func TestScoreShape(t *testing.T) {
	s := NewScorer(DefaultConfig())

	t.Run("disk scores 0.7", func(t *testing.T) {
		p := uniformPlane(300, 300, 15)
		for y := 0; y < 300; y++ {
			for x := 0; x < 300; x++ {
				dx, dy := x-150, y-150
				if dx*dx+dy*dy <= 80*80 {
					p.Pix[y][x] = 170
				}
			}
		}
		sub := s.scoreShape(p)
		if sub.Value != 0.7 {
			t.Errorf("got %.2f, want 0.7 (note: %s)", sub.Value, sub.Note)
		}
	})

	t.Run("uniform plane degrades", func(t *testing.T) {
		sub := s.scoreShape(uniformPlane(100, 100, 60))
		if !sub.Degraded || sub.Value != fallbackShape {
			t.Errorf("got %+v, want degraded fallback %.2f", sub, fallbackShape)
		}
	})

	t.Run("too small degrades", func(t *testing.T) {
		sub := s.scoreShape(uniformPlane(2, 2, 60))
		if !sub.Degraded {
			t.Error("expected degraded sub-score")
		}
	})

	t.Run("many angular contours score 0.6", func(t *testing.T) {
		p := uniformPlane(240, 240, 10)
		// Eight small squares: plenty of contours, nothing circular.
		for i := 0; i < 8; i++ {
			ox := 20 + (i%4)*55
			oy := 40 + (i/4)*110
			for y := oy; y < oy+14; y++ {
				for x := ox; x < ox+14; x++ {
					p.Pix[y][x] = 200
				}
			}
		}
		sub := s.scoreShape(p)
		if sub.Value != 0.6 {
			t.Errorf("got %.2f, want 0.6 (note: %s)", sub.Value, sub.Note)
		}
	})
}
