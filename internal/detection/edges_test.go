package detection

import (
	"testing"

	"github.com/ironsheep/mammo-screen-mcp/internal/imaging"
)

func TestEdgeMap_VerticalStep(t *testing.T) {
	// Left half dark, right half bright: the edge runs down the step column.
	p := imaging.NewPlane(10, 10)
	for y := 0; y < 10; y++ {
		for x := 5; x < 10; x++ {
			p.Pix[y][x] = 200
		}
	}

	edges := EdgeMap(p, DefaultGradientThreshold)

	for y := 1; y < 9; y++ {
		if !edges[y][4] {
			t.Errorf("expected edge at (4,%d)", y)
		}
		if edges[y][7] {
			t.Errorf("unexpected edge at (7,%d)", y)
		}
	}
}

func TestEdgeMap_BordersNeverEdges(t *testing.T) {
	p := imaging.NewPlane(8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			p.Pix[y][x] = float64((x * y) % 256)
		}
	}

	edges := EdgeMap(p, 1)
	for x := 0; x < 8; x++ {
		if edges[0][x] || edges[7][x] {
			t.Errorf("border row marked as edge at x=%d", x)
		}
	}
	for y := 0; y < 8; y++ {
		if edges[y][0] || edges[y][7] {
			t.Errorf("border column marked as edge at y=%d", y)
		}
	}
}

func TestEdgeMap_UniformPlane(t *testing.T) {
	p := imaging.NewPlane(20, 20)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			p.Pix[y][x] = 128
		}
	}

	edges := EdgeMap(p, DefaultGradientThreshold)
	if n := CountEdges(edges); n != 0 {
		t.Errorf("uniform plane produced %d edges, want 0", n)
	}
}

func TestEdgeMap_SubThresholdGradient(t *testing.T) {
	// A gentle ramp never exceeds the gradient threshold.
	p := imaging.NewPlane(20, 20)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			p.Pix[y][x] = float64(x * 2)
		}
	}

	edges := EdgeMap(p, DefaultGradientThreshold)
	if n := CountEdges(edges); n != 0 {
		t.Errorf("ramp below threshold produced %d edges, want 0", n)
	}
}
