package imaging

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

// writeTestPNG writes a noisy grayscale PNG to dir and returns its path.
// Noise keeps the file above the minimum size check; uniform images
// compress to a few hundred bytes.
func writeTestPNG(t *testing.T, dir, name string, width, height int) string {
	t.Helper()

	rng := rand.New(rand.NewSource(42))
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(rng.Intn(256))})
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
	return path
}

func TestImageCache_LoadAndCache(t *testing.T) {
	cache := NewImageCache()
	path := writeTestPNG(t, t.TempDir(), "scan.png", 100, 80)

	img1, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img1.Bounds().Dx() != 100 || img1.Bounds().Dy() != 80 {
		t.Errorf("dimensions: got %dx%d, want 100x80", img1.Bounds().Dx(), img1.Bounds().Dy())
	}

	// Second load must come from cache: delete the file first.
	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove file: %v", err)
	}
	img2, err := cache.Load(path)
	if err != nil {
		t.Fatalf("cached Load failed: %v", err)
	}
	if img2 != img1 {
		t.Error("expected cached image instance")
	}
}

func TestImageCache_Evict(t *testing.T) {
	cache := NewImageCache()
	path := writeTestPNG(t, t.TempDir(), "scan.png", 64, 64)

	if _, err := cache.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cache.Evict(path)
	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove file: %v", err)
	}

	if _, err := cache.Load(path); err == nil {
		t.Error("expected error after evicting and removing the file")
	}
}

func TestImageCache_Clear(t *testing.T) {
	cache := NewImageCache()
	path := writeTestPNG(t, t.TempDir(), "scan.png", 64, 64)

	if _, err := cache.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cache.Clear()
	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove file: %v", err)
	}

	if _, err := cache.Load(path); err == nil {
		t.Error("expected error after clearing the cache")
	}
}

func TestLoad_Rejections(t *testing.T) {
	dir := t.TempDir()
	cache := NewImageCache()

	t.Run("nonexistent file", func(t *testing.T) {
		_, err := cache.Load(filepath.Join(dir, "missing.png"))
		var decodeErr *DecodeError
		if !errors.As(err, &decodeErr) {
			t.Fatalf("expected *DecodeError, got %T: %v", err, err)
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "scan.bmp")
		if err := os.WriteFile(path, make([]byte, 4096), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		_, err := cache.Load(path)
		var decodeErr *DecodeError
		if !errors.As(err, &decodeErr) {
			t.Fatalf("expected *DecodeError, got %T: %v", err, err)
		}
	})

	t.Run("file too small", func(t *testing.T) {
		// A uniform 10x10 PNG compresses far below MinFileSize.
		img := image.NewGray(image.Rect(0, 0, 10, 10))
		path := filepath.Join(dir, "tiny.png")
		f, err := os.Create(path)
		if err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
		if err := png.Encode(f, img); err != nil {
			t.Fatalf("failed to encode: %v", err)
		}
		f.Close()

		_, err = cache.Load(path)
		if err == nil {
			t.Fatal("expected error for undersized file")
		}
	})

	t.Run("undecodable content", func(t *testing.T) {
		path := filepath.Join(dir, "junk.png")
		if err := os.WriteFile(path, make([]byte, 4096), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		_, err := cache.Load(path)
		var decodeErr *DecodeError
		if !errors.As(err, &decodeErr) {
			t.Fatalf("expected *DecodeError, got %T: %v", err, err)
		}
		if decodeErr.Unwrap() == nil {
			t.Error("expected wrapped decode error")
		}
	})
}

func TestLoadImageInfo(t *testing.T) {
	cache := NewImageCache()
	path := writeTestPNG(t, t.TempDir(), "scan.png", 300, 240)

	info, err := LoadImageInfo(cache, path)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}

	if info.Width != 300 || info.Height != 240 {
		t.Errorf("dimensions: got %dx%d, want 300x240", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	if info.FileSizeBytes < MinFileSize {
		t.Errorf("FileSizeBytes: got %d, want >= %d", info.FileSizeBytes, MinFileSize)
	}
	if info.BelowRecommendedSize {
		t.Error("300x240 should not be below recommended size")
	}
}

func TestLoadImageInfo_BelowRecommendedSize(t *testing.T) {
	cache := NewImageCache()
	path := writeTestPNG(t, t.TempDir(), "small.png", 100, 300)

	info, err := LoadImageInfo(cache, path)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}
	if !info.BelowRecommendedSize {
		t.Error("100x300 should be flagged as below recommended size")
	}
}

func TestGetDimensions(t *testing.T) {
	cache := NewImageCache()
	path := writeTestPNG(t, t.TempDir(), "scan.png", 128, 96)

	dims, err := GetDimensions(cache, path)
	if err != nil {
		t.Fatalf("GetDimensions failed: %v", err)
	}
	if dims.Width != 128 || dims.Height != 96 {
		t.Errorf("got %dx%d, want 128x96", dims.Width, dims.Height)
	}
}
