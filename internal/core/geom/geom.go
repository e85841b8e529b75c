// Package geom provides the small amount of 2D geometry the map and
// messengers need: points, distances and interpolation.
package geom

import "math"

// Point represents a 2D point in map space
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns p - q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Distance calculates the Euclidean distance between two points
func Distance(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Lerp linearly interpolates from a to b. t is clamped to [0, 1].
func Lerp(a, b Point, t float64) Point {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return Point{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// Near reports whether two points are within eps of each other
func Near(a, b Point, eps float64) bool {
	return Distance(a, b) <= eps
}

// PolylineLength returns the summed length of consecutive segments
func PolylineLength(pts []Point) float64 {
	total := 0.0
	for i := 0; i+1 < len(pts); i++ {
		total += Distance(pts[i], pts[i+1])
	}
	return total
}
