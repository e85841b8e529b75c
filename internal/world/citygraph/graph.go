// Package citygraph holds the static map: named cities joined by
// bidirectional multi-point roads, loaded from a JSON description.
package citygraph

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/jacksimmons/morse-vs-horse/internal/core/geom"
	"github.com/rs/zerolog/log"
)

var (
	// ErrUnknownCity is returned by lookups that require a known city
	ErrUnknownCity = errors.New("unknown city")
	// ErrDiscontiguous means an edge does not start or end on its cities
	ErrDiscontiguous = errors.New("edge endpoints do not meet their cities")
)

// contiguityEpsilon is the allowed gap, in map units, between a city and
// the end of an edge touching it
const contiguityEpsilon = 1e-6

// CityData is a city as authored in a graph file
type CityData struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// EdgeData is a road as authored in a graph file. Points run from From to To.
type EdgeData struct {
	From   string       `json:"from"`
	To     string       `json:"to"`
	Points []geom.Point `json:"points"`
}

// GraphData is the on-disk description of a map
type GraphData struct {
	Name   string     `json:"name"`
	Cities []CityData `json:"cities"`
	Edges  []EdgeData `json:"edges"`
}

// City is a named node with its outbound roads
type City struct {
	Name     string
	Pos      geom.Point
	outbound []Path
}

// Graph is immutable once built
type Graph struct {
	Name   string
	cities []*City
	byName map[string]*City
	edges  []Path
}

// Load reads and builds a graph description from fsys
func Load(fsys fs.FS, path string) (*Graph, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph file %s: %w", path, err)
	}

	var gd GraphData
	if err := json.Unmarshal(data, &gd); err != nil {
		return nil, fmt.Errorf("failed to parse graph file %s: %w", path, err)
	}

	g, err := New(&gd)
	if err != nil {
		return nil, fmt.Errorf("invalid graph data in %s: %w", path, err)
	}
	return g, nil
}

// New validates the description and builds the graph, resolving every
// city's outbound edges once.
func New(gd *GraphData) (*Graph, error) {
	if err := validateGraphData(gd); err != nil {
		return nil, err
	}

	g := &Graph{
		Name:   gd.Name,
		byName: make(map[string]*City, len(gd.Cities)),
	}
	for _, cd := range gd.Cities {
		c := &City{Name: cd.Name, Pos: geom.Point{X: cd.X, Y: cd.Y}}
		g.cities = append(g.cities, c)
		g.byName[c.Name] = c
	}

	for i, ed := range gd.Edges {
		from := g.byName[ed.From]
		to := g.byName[ed.To]
		if from == nil || to == nil {
			log.Warn().
				Str("graph", gd.Name).
				Int("edge", i).
				Str("from", ed.From).
				Str("to", ed.To).
				Msg("edge references an unknown city; destination is unreachable")
		}
		if err := checkContiguous(ed, from, to); err != nil {
			return nil, fmt.Errorf("edge %d (%s-%s): %w", i, ed.From, ed.To, err)
		}
		g.edges = append(g.edges, Path{Points: ed.Points, From: from, To: to})
	}

	for _, c := range g.cities {
		for _, e := range g.edges {
			switch c {
			case e.From:
				c.outbound = append(c.outbound, e)
			case e.To:
				c.outbound = append(c.outbound, e.Reversed())
			}
		}
	}

	return g, nil
}

func validateGraphData(gd *GraphData) error {
	if len(gd.Cities) == 0 {
		return fmt.Errorf("graph has no cities")
	}

	seen := make(map[string]bool, len(gd.Cities))
	for i, c := range gd.Cities {
		if c.Name == "" {
			return fmt.Errorf("city %d has no name", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("duplicate city name: %s", c.Name)
		}
		seen[c.Name] = true
	}

	for i, e := range gd.Edges {
		if len(e.Points) < 2 {
			return fmt.Errorf("edge %d has %d points, need at least 2", i, len(e.Points))
		}
		if e.From == e.To {
			return fmt.Errorf("edge %d loops on %s", i, e.From)
		}
	}
	return nil
}

func checkContiguous(ed EdgeData, from, to *City) error {
	if from != nil && !geom.Near(ed.Points[0], from.Pos, contiguityEpsilon) {
		return fmt.Errorf("%w: start %v is not at %s %v", ErrDiscontiguous, ed.Points[0], from.Name, from.Pos)
	}
	last := ed.Points[len(ed.Points)-1]
	if to != nil && !geom.Near(last, to.Pos, contiguityEpsilon) {
		return fmt.Errorf("%w: end %v is not at %s %v", ErrDiscontiguous, last, to.Name, to.Pos)
	}
	return nil
}

// City looks a city up by exact name; unknown names yield nil
func (g *Graph) City(name string) *City {
	return g.byName[name]
}

// MustCity is City for callers that cannot proceed without the city
func (g *Graph) MustCity(name string) (*City, error) {
	c := g.byName[name]
	if c == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCity, name)
	}
	return c, nil
}

// Cities returns the cities in authoring order
func (g *Graph) Cities() []*City {
	return g.cities
}

// Edges returns the roads in authoring order
func (g *Graph) Edges() []Path {
	return g.edges
}

// OutboundEdges returns the roads leaving the named city, each oriented to
// start at that city. Unknown names yield nil.
func (g *Graph) OutboundEdges(name string) []Path {
	c := g.byName[name]
	if c == nil {
		return nil
	}
	return c.Outbound()
}

// Outbound returns the roads leaving c, oriented to start at c
func (c *City) Outbound() []Path {
	return c.outbound
}

// EdgesCoveredBy returns the indices (into Edges) of every road whose
// geometry, in either direction, appears unbroken within p.
func (g *Graph) EdgesCoveredBy(p Path) []int {
	var out []int
	for i, e := range g.edges {
		if containsRun(p.Points, e.Points) || containsRun(p.Points, e.Reversed().Points) {
			out = append(out, i)
		}
	}
	return out
}

func containsRun(hay, needle []geom.Point) bool {
	if len(needle) == 0 || len(needle) > len(hay) {
		return false
	}
outer:
	for i := 0; i+len(needle) <= len(hay); i++ {
		for j := range needle {
			if !geom.Near(hay[i+j], needle[j], contiguityEpsilon) {
				continue outer
			}
		}
		return true
	}
	return false
}
