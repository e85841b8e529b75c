package citygraph

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/jacksimmons/morse-vs-horse/internal/core/geom"
)

const triangleJSON = `{
  "name": "test",
  "cities": [
    {"name": "A", "x": 0, "y": 0},
    {"name": "B", "x": 3, "y": 0},
    {"name": "C", "x": 3, "y": 4}
  ],
  "edges": [
    {"from": "A", "to": "B", "points": [{"x": 0, "y": 0}, {"x": 3, "y": 0}]},
    {"from": "B", "to": "C", "points": [{"x": 3, "y": 0}, {"x": 3, "y": 2}, {"x": 3, "y": 4}]}
  ]
}`

func loadTriangle(t *testing.T) *Graph {
	t.Helper()
	fsys := fstest.MapFS{"graph.json": {Data: []byte(triangleJSON)}}
	g, err := Load(fsys, "graph.json")
	if err != nil {
		t.Fatalf("Failed to load graph: %v", err)
	}
	return g
}

func TestLoad(t *testing.T) {
	g := loadTriangle(t)
	if g.Name != "test" {
		t.Errorf("Expected name 'test', got '%s'", g.Name)
	}
	if len(g.Cities()) != 3 {
		t.Errorf("Expected 3 cities, got %d", len(g.Cities()))
	}
	if len(g.Edges()) != 2 {
		t.Errorf("Expected 2 edges, got %d", len(g.Edges()))
	}
}

func TestOutboundEdgesOrientation(t *testing.T) {
	g := loadTriangle(t)

	fromB := g.OutboundEdges("B")
	if len(fromB) != 2 {
		t.Fatalf("Expected 2 outbound edges from B, got %d", len(fromB))
	}
	for _, e := range fromB {
		if e.From != g.City("B") {
			t.Errorf("Expected edge to start at B, got %v", e.From)
		}
		if e.Start() != g.City("B").Pos {
			t.Errorf("Expected geometry to start at B, got %v", e.Start())
		}
	}
	// B is the "to" end of A-B, so that edge comes back reversed
	if fromB[0].To != g.City("A") || fromB[0].End() != (geom.Point{X: 0, Y: 0}) {
		t.Errorf("Expected reversed A-B edge, got %+v", fromB[0])
	}

	if got := len(g.OutboundEdges("A")); got != 1 {
		t.Errorf("Expected 1 outbound edge from A, got %d", got)
	}
}

func TestUnknownCity(t *testing.T) {
	g := loadTriangle(t)
	if g.City("Atlantis") != nil {
		t.Error("Expected nil for unknown city")
	}
	if g.OutboundEdges("Atlantis") != nil {
		t.Error("Expected no edges for unknown city")
	}
	if _, err := g.MustCity("Atlantis"); !errors.Is(err, ErrUnknownCity) {
		t.Errorf("Expected ErrUnknownCity, got %v", err)
	}
}

func TestEdgeToUnknownCityIsKept(t *testing.T) {
	g, err := New(&GraphData{
		Cities: []CityData{{Name: "A"}},
		Edges: []EdgeData{
			{From: "A", To: "Nowhere", Points: []geom.Point{{X: 0, Y: 0}, {X: 5, Y: 5}}},
		},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	out := g.OutboundEdges("A")
	if len(out) != 1 || out[0].To != nil {
		t.Errorf("Expected one edge with no destination, got %+v", out)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		data    GraphData
		discont bool
	}{
		{"no cities", GraphData{}, false},
		{"duplicate", GraphData{Cities: []CityData{{Name: "A"}, {Name: "A"}}}, false},
		{"short edge", GraphData{
			Cities: []CityData{{Name: "A"}, {Name: "B", X: 1}},
			Edges:  []EdgeData{{From: "A", To: "B", Points: []geom.Point{{}}}},
		}, false},
		{"gap at end", GraphData{
			Cities: []CityData{{Name: "A"}, {Name: "B", X: 1}},
			Edges:  []EdgeData{{From: "A", To: "B", Points: []geom.Point{{}, {X: 2}}}},
		}, true},
		{"gap at start", GraphData{
			Cities: []CityData{{Name: "A"}, {Name: "B", X: 1}},
			Edges:  []EdgeData{{From: "A", To: "B", Points: []geom.Point{{Y: 1}, {X: 1}}}},
		}, true},
	}
	for _, tt := range tests {
		_, err := New(&tt.data)
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if tt.discont != errors.Is(err, ErrDiscontiguous) {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	fsys := fstest.MapFS{"bad.json": {Data: []byte("{")}}
	if _, err := Load(fsys, "bad.json"); err == nil {
		t.Error("Expected parse error")
	}
	if _, err := Load(fsys, "missing.json"); err == nil {
		t.Error("Expected read error")
	}
}

func TestExtend(t *testing.T) {
	g := loadTriangle(t)
	ab := g.OutboundEdges("A")[0]
	var bc Path
	for _, e := range g.OutboundEdges("B") {
		if e.To == g.City("C") {
			bc = e
		}
	}

	p := Extend(Path{}, ab)
	if p.From != g.City("A") || len(p.Points) != 2 {
		t.Errorf("Expected extending an empty path to copy it, got %+v", p)
	}

	p = Extend(p, bc)
	if p.From != g.City("A") || p.To != g.City("C") {
		t.Errorf("Expected A->C, got %v->%v", p.From.Name, p.To.Name)
	}
	if len(p.Points) != 5 {
		t.Errorf("Expected 5 points, got %d", len(p.Points))
	}
	if p.Length() != 7 {
		t.Errorf("Expected length 7, got %v", p.Length())
	}

	covered := g.EdgesCoveredBy(p)
	if len(covered) != 2 {
		t.Errorf("Expected both edges covered, got %v", covered)
	}
	if got := g.EdgesCoveredBy(ab); len(got) != 1 || got[0] != 0 {
		t.Errorf("Expected only edge 0 covered, got %v", got)
	}
}
