package track

import (
	"math"

	"github.com/cxd309/laptime-engine/internal/curvature"
	"github.com/cxd309/laptime-engine/internal/laperr"
)

// Outline returns the closed track boundary polygon: the right edge in path
// order, the left edge reversed, then the first right-edge point again.
// Normals come from the gradient tangent, so a sample with coincident
// neighbours reuses the previous sample's normal.
func Outline(p Path) ([]Coordinate, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(p.Widths) == 0 {
		return nil, laperr.Invalid("path %q has no track widths", p.Name)
	}

	xs, ys := p.XY()
	dx, dy := curvature.Gradient(xs), curvature.Gradient(ys)

	n := len(p.Points)
	right := make([]Coordinate, n)
	left := make([]Coordinate, n)
	nx, ny := 0.0, 1.0
	for i := 0; i < n; i++ {
		if l := math.Hypot(dx[i], dy[i]); l > 0 {
			// Left-hand normal of the unit tangent.
			nx, ny = -dy[i]/l, dx[i]/l
		}
		pt, w := p.Points[i], p.Widths[i]
		right[i] = Coordinate{X: pt.X + nx*w.Right, Y: pt.Y + ny*w.Right}
		left[i] = Coordinate{X: pt.X - nx*w.Left, Y: pt.Y - ny*w.Left}
	}

	outline := make([]Coordinate, 0, 2*n+1)
	outline = append(outline, right...)
	for i := n - 1; i >= 0; i-- {
		outline = append(outline, left[i])
	}
	outline = append(outline, right[0])
	return outline, nil
}
