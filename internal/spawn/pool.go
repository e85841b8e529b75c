// Package spawn owns the per-city message slots and turns due timeline
// entries into active messages with a messenger on the road.
package spawn

import (
	"github.com/jacksimmons/morse-vs-horse/internal/core/morse"
	"github.com/jacksimmons/morse-vs-horse/internal/entity/messenger"
	"github.com/jacksimmons/morse-vs-horse/internal/level"
	"github.com/jacksimmons/morse-vs-horse/internal/world/citygraph"
	"github.com/jacksimmons/morse-vs-horse/internal/world/pathgen"
	"github.com/rs/zerolog/log"
)

// Slot is a city's message. It carries at most one messenger at a time.
type Slot struct {
	City *citygraph.City

	active     bool
	serial     int // Activation count, distinguishes one message from the next
	word       string
	target     morse.Phrase
	difficulty level.Difficulty
	messenger  *messenger.Messenger
	route      pathgen.Route
}

// Active reports whether the slot holds a message
func (s *Slot) Active() bool { return s.active }

// Serial increases with every activation
func (s *Slot) Serial() int { return s.serial }

// Word is the English message text
func (s *Slot) Word() string { return s.word }

// Target is the message encoded as Morse
func (s *Slot) Target() morse.Phrase { return s.target }

// Difficulty is the spawn difficulty the message was created with
func (s *Slot) Difficulty() level.Difficulty { return s.difficulty }

// Messenger is the carrier, or nil while inactive
func (s *Slot) Messenger() *messenger.Messenger { return s.messenger }

// Route is the generated route the messenger follows
func (s *Slot) Route() pathgen.Route { return s.route }

// Pool is the set of slots, one per city
type Pool struct {
	slots      []*Slot
	violations int
}

// NewPool creates one inactive slot per city of g
func NewPool(g *citygraph.Graph) *Pool {
	p := &Pool{}
	for _, c := range g.Cities() {
		p.slots = append(p.slots, &Slot{City: c})
	}
	return p
}

// Slots returns every slot in city order
func (p *Pool) Slots() []*Slot { return p.slots }

// Inactive returns the slots free to receive a message
func (p *Pool) Inactive() []*Slot {
	var out []*Slot
	for _, s := range p.slots {
		if !s.active {
			out = append(out, s)
		}
	}
	return out
}

// ActiveCount returns the number of slots holding a message
func (p *Pool) ActiveCount() int {
	n := 0
	for _, s := range p.slots {
		if s.active {
			n++
		}
	}
	return n
}

// Violations counts operations attempted against slots in the wrong state
func (p *Pool) Violations() int { return p.violations }

// Activate binds a message and its messenger to s. An already active
// slot is left untouched.
func (p *Pool) Activate(s *Slot, word string, d level.Difficulty, route pathgen.Route, m *messenger.Messenger) bool {
	if s.active {
		p.violations++
		log.Warn().Str("city", s.City.Name).Msg("slot is already active")
		return false
	}
	s.active = true
	s.serial++
	s.word = word
	s.target = morse.EncodePhrase(word)
	s.difficulty = d
	s.route = route
	s.messenger = m
	return true
}

// Complete stops the messenger of a decoded message. It is released on
// the next Sweep.
func (p *Pool) Complete(s *Slot) bool {
	if s == nil || !s.active || s.messenger == nil || s.messenger.Done() {
		p.violations++
		ev := log.Warn()
		if s != nil {
			ev = ev.Str("city", s.City.Name)
		}
		ev.Msg("completed a target with no messenger on the road")
		return false
	}
	s.messenger.Defeat()
	return true
}

// Advance moves every active messenger and returns the slots whose
// messenger reached its goal during this tick
func (p *Pool) Advance(dt float64) []*Slot {
	var arrived []*Slot
	for _, s := range p.slots {
		if s.active && s.messenger != nil && s.messenger.Advance(dt) {
			arrived = append(arrived, s)
		}
	}
	return arrived
}

// Sweep releases every active slot whose messenger has stopped and
// returns them
func (p *Pool) Sweep() []*Slot {
	var released []*Slot
	for _, s := range p.slots {
		if s.active && (s.messenger == nil || s.messenger.Done()) {
			p.release(s)
			released = append(released, s)
		}
	}
	return released
}

// Reset releases every slot
func (p *Pool) Reset() {
	for _, s := range p.slots {
		p.release(s)
	}
}

func (p *Pool) release(s *Slot) {
	s.active = false
	s.word = ""
	s.target = nil
	s.messenger = nil
	s.route = pathgen.Route{}
}

// SlotAt returns the active slot whose city or messenger is within radius
// of (x, y), preferring messengers. Returns nil when nothing is close.
func (p *Pool) SlotAt(x, y, radius float64) *Slot {
	for _, s := range p.slots {
		if !s.active || s.messenger == nil {
			continue
		}
		pos := s.messenger.Position()
		if dx, dy := pos.X-x, pos.Y-y; dx*dx+dy*dy <= radius*radius {
			return s
		}
	}
	for _, s := range p.slots {
		if !s.active {
			continue
		}
		if dx, dy := s.City.Pos.X-x, s.City.Pos.Y-y; dx*dx+dy*dy <= radius*radius {
			return s
		}
	}
	return nil
}
