// Package pathgen builds messenger routes: simple walks of a requested
// number of hops through the city graph.
package pathgen

import (
	"math/rand"
	"slices"

	"github.com/jacksimmons/morse-vs-horse/internal/world/citygraph"
	"github.com/rs/zerolog/log"
)

// Route is a generated path and the cities it visits, start first
type Route struct {
	Path    citygraph.Path
	Visited []*citygraph.City
}

// Hops returns how many edges the route actually took
func (r Route) Hops() int {
	return len(r.Visited) - 1
}

// Generator picks random routes
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator with the given source of randomness
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate walks up to hops edges from start, never revisiting a city.
// If it runs out of unvisited neighbours first it logs and returns the
// shorter route built so far.
func (g *Generator) Generate(start *citygraph.City, hops int) Route {
	route := Route{Visited: []*citygraph.City{start}}
	if start == nil {
		return route
	}

	current := start
	for remaining := hops; remaining > 0; remaining-- {
		candidates := g.candidates(current, route.Visited)
		if len(candidates) == 0 {
			log.Warn().
				Str("start", start.Name).
				Int("requested", hops).
				Int("built", route.Hops()).
				Msg("ran out of unvisited cities; path is shorter than requested")
			break
		}

		edge := candidates[g.rng.Intn(len(candidates))]
		route.Path = citygraph.Extend(route.Path, edge)
		route.Visited = append(route.Visited, edge.To)
		current = edge.To
	}
	return route
}

func (g *Generator) candidates(c *citygraph.City, visited []*citygraph.City) []citygraph.Path {
	var out []citygraph.Path
	for _, e := range c.Outbound() {
		if e.To == nil || slices.Contains(visited, e.To) {
			continue
		}
		out = append(out, e)
	}
	return out
}
