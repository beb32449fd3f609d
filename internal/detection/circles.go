package detection

import (
	"math"
	"sort"

	"github.com/ironsheep/mammo-screen-mcp/internal/imaging"
)

// Circle represents a detected circular structure.
type Circle struct {
	// Center is the detected center point of the circle.
	Center Point `json:"center"`

	// Radius is the detected radius in pixels.
	Radius int `json:"radius"`

	// Confidence indicates detection quality (0.0 to 1.0): the fraction of
	// sampled rim directions backed by an actual edge pixel.
	Confidence float64 `json:"confidence"`
}

// CirclesResult contains all circles detected in a luminance plane.
type CirclesResult struct {
	// Circles is the list of detections, sorted by confidence (highest first).
	Circles []Circle `json:"circles"`

	// Count is the number of circles detected.
	Count int `json:"count"`
}

// Voting parameters for the Hough transform. Angles are sampled every 5° so
// that votes from a large circle's rim land within a pixel or two of the
// true center; peaks are read through a 3x3 window to absorb the remaining
// discretization scatter.
const (
	houghAngleStep    = 5
	houghRadiusStep   = 2
	houghVoteFraction = 0.45

	// Rim verification: a candidate is kept only when at least this fraction
	// of its sampled rim directions has an edge pixel within the tolerance.
	// Accumulator votes alone are too permissive at small radii, where any
	// dense edge cluster clears the vote threshold.
	houghRimFraction  = 0.45
	houghRimTolerance = 2
)

// DetectCircles finds circular structures in a luminance plane using a
// Hough circle transform.
//
// Rounded silhouettes are what distinguish breast tissue from documents and
// ordinary photos, so the shape scorer calls this on the normalized plane.
//
// # Algorithm
//
//  1. Edge detection: gradient threshold on the plane (see EdgeMap).
//  2. Accumulator voting: for each radius in [minRadius, maxRadius] (step 2),
//     every edge pixel votes for candidate centers at 5° intervals.
//  3. Peak detection: a center is a candidate when the votes summed over its
//     3x3 neighborhood reach 45% of the circumference (2*pi*r) and the cell
//     is a local maximum within an 11x11 window.
//  4. Rim verification: the candidate is kept only when at least 45% of its
//     sampled rim directions have an edge pixel within 2px of the rim.
//     Votes alone pass on dense angular clutter (text, boxes, screenshots);
//     rim support does not.
//  5. Duplicate removal: detections with nearby centers are merged, keeping
//     the highest-confidence radius.
//
// Confidence is the verified rim coverage. Partial arcs (overlapping
// structures, cut-off silhouettes) lower it proportionally.
//
// # Performance
//
// Time is roughly O(edgePixels * radii * 72) for voting plus
// O(width * height * radii) for the peak scan. Callers should normalize
// large planes first (imaging.NormalizeSize) and keep the radius range tight.
func DetectCircles(p *imaging.Plane, minRadius, maxRadius int) (*CirclesResult, error) {
	width, height := p.Width, p.Height
	if minRadius < 1 {
		minRadius = 1
	}
	if maxRadius >= width/2 {
		maxRadius = width/2 - 1
	}
	if maxRadius >= height/2 {
		maxRadius = height/2 - 1
	}
	if maxRadius < minRadius {
		return &CirclesResult{Circles: []Circle{}, Count: 0}, nil
	}

	edges := EdgeMap(p, DefaultGradientThreshold)

	type edgePoint struct{ x, y int }
	var edgePixels []edgePoint
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if edges[y][x] {
				edgePixels = append(edgePixels, edgePoint{x, y})
			}
		}
	}
	if len(edgePixels) == 0 {
		return &CirclesResult{Circles: []Circle{}, Count: 0}, nil
	}

	numAngles := 360 / houghAngleStep
	cosTab := make([]float64, numAngles)
	sinTab := make([]float64, numAngles)
	for i := 0; i < numAngles; i++ {
		rad := float64(i*houghAngleStep) * math.Pi / 180
		cosTab[i] = math.Cos(rad)
		sinTab[i] = math.Sin(rad)
	}

	var candidates []Circle

	accumulator := make([][]int, height)
	window := make([][]int, height)
	for y := 0; y < height; y++ {
		accumulator[y] = make([]int, width)
		window[y] = make([]int, width)
	}

	for radius := minRadius; radius <= maxRadius; radius += houghRadiusStep {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				accumulator[y][x] = 0
			}
		}

		rf := float64(radius)
		for _, ep := range edgePixels {
			for i := 0; i < numAngles; i++ {
				cx := ep.x - int(rf*cosTab[i])
				cy := ep.y - int(rf*sinTab[i])
				if cx >= 0 && cx < width && cy >= 0 && cy < height {
					accumulator[cy][cx]++
				}
			}
		}

		// Sum votes over 3x3 neighborhoods so discretization scatter from
		// large radii still registers as a single peak.
		for y := 1; y < height-1; y++ {
			for x := 1; x < width-1; x++ {
				sum := 0
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						sum += accumulator[y+dy][x+dx]
					}
				}
				window[y][x] = sum
			}
		}

		circumference := 2 * math.Pi * rf
		threshold := int(houghVoteFraction * circumference)
		if threshold < 8 {
			threshold = 8
		}

		for y := radius; y < height-radius; y++ {
			for x := radius; x < width-radius; x++ {
				if window[y][x] < threshold {
					continue
				}
				isMax := true
				for dy := -5; dy <= 5 && isMax; dy++ {
					for dx := -5; dx <= 5 && isMax; dx++ {
						if dy == 0 && dx == 0 {
							continue
						}
						ny, nx := y+dy, x+dx
						if ny >= 1 && ny < height-1 && nx >= 1 && nx < width-1 {
							if window[ny][nx] > window[y][x] {
								isMax = false
							}
						}
					}
				}
				if !isMax {
					continue
				}

				coverage := rimSupport(edges, x, y, rf, cosTab, sinTab)
				if coverage < houghRimFraction {
					continue
				}

				candidates = append(candidates, Circle{
					Center:     Point{X: x, Y: y},
					Radius:     radius,
					Confidence: coverage,
				})
			}
		}
	}

	filtered := filterDuplicateCircles(candidates)

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Confidence > filtered[j].Confidence
	})

	return &CirclesResult{Circles: filtered, Count: len(filtered)}, nil
}

// rimSupport measures how much of a candidate circle is backed by real edge
// pixels: for each sampled direction it looks for an edge pixel within
// houghRimTolerance of the rim point and returns the supported fraction.
// Straight-edged content supports only short tangential arcs of any circle,
// so its coverage stays low even when accumulator votes pile up.
func rimSupport(edges [][]bool, cx, cy int, radius float64, cosTab, sinTab []float64) float64 {
	height := len(edges)
	if height == 0 {
		return 0
	}
	width := len(edges[0])

	supported := 0
	for i := range cosTab {
		px := cx + int(radius*cosTab[i])
		py := cy + int(radius*sinTab[i])
		hit := false
		for dy := -houghRimTolerance; dy <= houghRimTolerance && !hit; dy++ {
			for dx := -houghRimTolerance; dx <= houghRimTolerance && !hit; dx++ {
				x, y := px+dx, py+dy
				if x >= 0 && x < width && y >= 0 && y < height && edges[y][x] {
					hit = true
				}
			}
		}
		if hit {
			supported++
		}
	}
	return float64(supported) / float64(len(cosTab))
}

// filterDuplicateCircles merges detections whose centers nearly coincide,
// keeping the highest-confidence one. The same physical structure fires at
// several adjacent radii, so this runs on the confidence-sorted candidates.
func filterDuplicateCircles(circles []Circle) []Circle {
	sorted := make([]Circle, len(circles))
	copy(sorted, circles)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})

	kept := make([]Circle, 0, len(sorted))
	for _, c := range sorted {
		dup := false
		for _, k := range kept {
			dx := float64(c.Center.X - k.Center.X)
			dy := float64(c.Center.Y - k.Center.Y)
			minDist := float64(k.Radius) / 2
			if minDist < 10 {
				minDist = 10
			}
			if math.Sqrt(dx*dx+dy*dy) < minDist {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, c)
		}
	}
	return kept
}
