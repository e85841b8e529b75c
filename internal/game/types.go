package game

import (
	"fmt"
	"io/fs"
	"math/rand"
	"path"

	"github.com/jacksimmons/morse-vs-horse/internal/world/citygraph"
	"github.com/jacksimmons/morse-vs-horse/internal/words"
)

// Message represents an on-screen message that fades over time.
type Message struct {
	Text     string
	TimeLeft float64 // Seconds remaining
	MaxTime  float64 // Initial duration
}

// MapSource locates map i: the filesystem holding it and its directory
// within that filesystem.
type MapSource func(i int) (fsys fs.FS, dir string, err error)

// World is one map's road network and word lists
type World struct {
	Graph *citygraph.Graph
	Words *words.Bank
}

// LoadWorld reads dir/graph.json and dir/words/ from fsys
func LoadWorld(fsys fs.FS, dir string, rng *rand.Rand) (*World, error) {
	g, err := citygraph.Load(fsys, path.Join(dir, "graph.json"))
	if err != nil {
		return nil, err
	}
	bank, err := words.Load(fsys, path.Join(dir, "words"), rng)
	if err != nil {
		return nil, fmt.Errorf("failed to load words for %s: %w", dir, err)
	}
	return &World{Graph: g, Words: bank}, nil
}
