package spawn

import (
	"math/rand"

	"github.com/jacksimmons/morse-vs-horse/internal/entity/messenger"
	"github.com/jacksimmons/morse-vs-horse/internal/level"
	"github.com/jacksimmons/morse-vs-horse/internal/world/pathgen"
	"github.com/rs/zerolog/log"
)

// WordSource hands out words of a difficulty, "" when it has none
type WordSource interface {
	Pick(d level.WordDifficulty) string
}

// TravelPolicy fixes how long a messenger takes to arrive. Harder words
// give the player more time, faster messengers less.
type TravelPolicy struct {
	BaseSeconds     float64
	WordStepSeconds float64
	TypeStepSeconds float64
	MinSeconds      float64
}

// DefaultTravelPolicy is tuned so an easy word carried by a person takes 25s
func DefaultTravelPolicy() TravelPolicy {
	return TravelPolicy{BaseSeconds: 30, WordStepSeconds: 6, TypeStepSeconds: 5, MinSeconds: 8}
}

// Duration returns the travel time for d, independent of path length
func (p TravelPolicy) Duration(d level.Difficulty) float64 {
	secs := p.BaseSeconds +
		p.WordStepSeconds*float64(d.Word) -
		p.TypeStepSeconds*float64(d.Messenger)
	if secs < p.MinSeconds {
		return p.MinSeconds
	}
	return secs
}

// Spawner binds due spawns to free slots
type Spawner struct {
	pool   *Pool
	paths  *pathgen.Generator
	words  WordSource
	travel TravelPolicy
	hops   int
	rng    *rand.Rand
}

// NewSpawner wires the collaborators a spawn needs
func NewSpawner(pool *Pool, paths *pathgen.Generator, words WordSource, travel TravelPolicy, hops int, rng *rand.Rand) *Spawner {
	return &Spawner{
		pool:   pool,
		paths:  paths,
		words:  words,
		travel: travel,
		hops:   hops,
		rng:    rng,
	}
}

// Spawn activates a random inactive slot with a new message of
// difficulty d. Returns nil, false when the spawn had to be skipped.
func (sp *Spawner) Spawn(d level.Difficulty) (*Slot, bool) {
	free := sp.pool.Inactive()
	if len(free) == 0 {
		log.Warn().
			Stringer("word", d.Word).
			Stringer("messenger", d.Messenger).
			Msg("no inactive city for spawn; skipping")
		return nil, false
	}
	slot := free[sp.rng.Intn(len(free))]

	word := sp.words.Pick(d.Word)
	if word == "" {
		log.Warn().
			Str("city", slot.City.Name).
			Stringer("word", d.Word).
			Msg("no word to send; skipping spawn")
		return nil, false
	}

	route := sp.paths.Generate(slot.City, sp.hops)
	if route.Hops() == 0 {
		log.Warn().Str("city", slot.City.Name).Msg("city has no road out; skipping spawn")
		return nil, false
	}

	m, err := messenger.New(route.Path.Points, sp.travel.Duration(d))
	if err != nil {
		log.Warn().Err(err).Str("city", slot.City.Name).Msg("failed to create messenger; skipping spawn")
		return nil, false
	}

	if !sp.pool.Activate(slot, word, d, route, m) {
		return nil, false
	}

	log.Debug().
		Str("city", slot.City.Name).
		Str("word", word).
		Stringer("messenger", d.Messenger).
		Float64("duration", m.Duration()).
		Msg("message spawned")
	return slot, true
}
