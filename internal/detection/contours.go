package detection

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// minContourSize is the smallest connected component kept by FindContours.
// Anything below this is sensor noise, not anatomy.
const minContourSize = 10

// FindContours groups connected edge pixels into contours using iterative
// flood-fill with 8-connectivity. Components smaller than 10 pixels are
// discarded as noise.
//
// The heuristic shape scorer only needs the count and rough extent of the
// structures in a scan, so contours are unordered pixel sets rather than
// traced boundaries.
func FindContours(edges [][]bool) [][]Point {
	height := len(edges)
	if height == 0 {
		return nil
	}
	width := len(edges[0])

	visited := make([][]bool, height)
	for y := range visited {
		visited[y] = make([]bool, width)
	}

	var contours [][]Point

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !edges[y][x] || visited[y][x] {
				continue
			}

			// Flood fill from this seed with an explicit stack; recursion
			// would overflow on long tissue boundaries.
			var contour []Point
			stack := []Point{{X: x, Y: y}}
			visited[y][x] = true

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				contour = append(contour, p)

				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						nx, ny := p.X+dx, p.Y+dy
						if nx < 0 || nx >= width || ny < 0 || ny >= height {
							continue
						}
						if edges[ny][nx] && !visited[ny][nx] {
							visited[ny][nx] = true
							stack = append(stack, Point{X: nx, Y: ny})
						}
					}
				}
			}

			if len(contour) >= minContourSize {
				contours = append(contours, contour)
			}
		}
	}

	return contours
}
