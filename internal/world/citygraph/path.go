package citygraph

import (
	"slices"

	"github.com/jacksimmons/morse-vs-horse/internal/core/geom"
)

// Path is an ordered polyline between two cities. From and To are lookup
// references only; To may be nil when an edge names a city the graph
// does not know.
type Path struct {
	Points []geom.Point
	From   *City
	To     *City
}

// Reversed returns the same geometry walked from To back to From
func (p Path) Reversed() Path {
	pts := slices.Clone(p.Points)
	slices.Reverse(pts)
	return Path{Points: pts, From: p.To, To: p.From}
}

// Extend appends b's points onto a and keeps (a.From, b.To).
// Contiguity is not checked here; graphs are validated when loaded.
// An empty a simply becomes a copy of b.
func Extend(a, b Path) Path {
	if len(a.Points) == 0 {
		return Path{Points: slices.Clone(b.Points), From: b.From, To: b.To}
	}
	pts := make([]geom.Point, 0, len(a.Points)+len(b.Points))
	pts = append(pts, a.Points...)
	pts = append(pts, b.Points...)
	return Path{Points: pts, From: a.From, To: b.To}
}

// Length returns the total polyline length
func (p Path) Length() float64 {
	return geom.PolylineLength(p.Points)
}

// Start returns the first point, or the zero point for an empty path
func (p Path) Start() geom.Point {
	if len(p.Points) == 0 {
		return geom.Point{}
	}
	return p.Points[0]
}

// End returns the last point, or the zero point for an empty path
func (p Path) End() geom.Point {
	if len(p.Points) == 0 {
		return geom.Point{}
	}
	return p.Points[len(p.Points)-1]
}
