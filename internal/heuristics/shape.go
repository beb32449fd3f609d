package heuristics

import (
	"fmt"

	"github.com/anthonynsimon/bild/blur"

	"github.com/ironsheep/mammo-screen-mcp/internal/detection"
	"github.com/ironsheep/mammo-screen-mcp/internal/imaging"
)

// scoreShape searches the plane for the rounded structures typical of
// breast-tissue silhouettes.
//
// The plane is lightly blurred (3x3 box) so sensor noise does not flood the
// edge map, then scored in order of evidence strength:
//
//   - any Hough circle found            -> 0.7
//   - more than MinContourCount distinct
//     contours (organic structure)      -> 0.6
//   - otherwise                         -> 0.4
//
// An image with no edges at all (uniform fill) cannot be scored and reports
// the degraded fallback.
func (s *Scorer) scoreShape(plane *imaging.Plane) SubScore {
	if plane.Width < 3 || plane.Height < 3 {
		return SubScore{
			Value:    fallbackShape,
			Degraded: true,
			Note:     fmt.Sprintf("image %dx%d too small for edge analysis", plane.Width, plane.Height),
		}
	}

	smoothed := imaging.Luminance(blur.Box(plane.ToGray(), 1))

	edges := detection.EdgeMap(smoothed, detection.DefaultGradientThreshold)
	if detection.CountEdges(edges) == 0 {
		return SubScore{Value: fallbackShape, Degraded: true, Note: "no edges found"}
	}

	circles, err := detection.DetectCircles(smoothed, s.cfg.MinCircleRadius, s.cfg.MaxCircleRadius)
	if err == nil && circles.Count > 0 {
		return SubScore{Value: 0.7, Note: fmt.Sprintf("%d curved structure(s) detected", circles.Count)}
	}

	contours := detection.FindContours(edges)
	if len(contours) > s.cfg.MinContourCount {
		return SubScore{Value: 0.6, Note: fmt.Sprintf("%d distinct contours", len(contours))}
	}

	return SubScore{Value: 0.4}
}
