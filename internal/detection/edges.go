package detection

import (
	"math"

	"github.com/ironsheep/mammo-screen-mcp/internal/imaging"
)

// DefaultGradientThreshold is the intensity step (on the 0-255 scale) at
// which a pixel is considered an edge. Tissue boundaries in screening scans
// step well past this; sensor noise stays below it once the plane has been
// lightly blurred.
const DefaultGradientThreshold = 30.0

// EdgeMap performs gradient-based edge detection on a luminance plane.
//
// A pixel is marked as an edge when the absolute intensity difference to its
// right or lower neighbor exceeds threshold. Border pixels are never edges.
// The result is a 2D boolean array indexed [y][x].
func EdgeMap(p *imaging.Plane, threshold float64) [][]bool {
	edges := make([][]bool, p.Height)
	for y := 0; y < p.Height; y++ {
		edges[y] = make([]bool, p.Width)
		if y == 0 || y == p.Height-1 {
			continue
		}
		for x := 1; x < p.Width-1; x++ {
			c := p.Pix[y][x]
			dx := math.Abs(c - p.Pix[y][x+1])
			dy := math.Abs(c - p.Pix[y+1][x])
			if dx > threshold || dy > threshold {
				edges[y][x] = true
			}
		}
	}
	return edges
}

// CountEdges returns the number of edge pixels in a map.
func CountEdges(edges [][]bool) int {
	n := 0
	for _, row := range edges {
		for _, e := range row {
			if e {
				n++
			}
		}
	}
	return n
}
