package game

type Point struct {
	X, Y float64
}

// Polygon is a closed outline; the last vertex connects back to the first.
type Polygon []Point

// Contains reports whether (x, y) lies inside the polygon, using the even-odd rule.
func (p Polygon) Contains(x, y float64) bool {
	if len(p) < 3 {
		return false
	}
	inside := false
	j := len(p) - 1
	for i := 0; i < len(p); i++ {
		a, b := p[i], p[j]
		if (a.Y > y) != (b.Y > y) {
			crossX := (b.X-a.X)*(y-a.Y)/(b.Y-a.Y) + a.X
			if x < crossX {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// Rect returns the axis-aligned rectangle with corners (x0, y0) and (x1, y1).
func Rect(x0, y0, x1, y1 float64) Polygon {
	return Polygon{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}
