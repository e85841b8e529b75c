package level

import "slices"

// DefaultMaxCycles bounds how many times an endless template repeats
const DefaultMaxCycles = 10000

// Entry is one spawn of an unrolled timeline
type Entry struct {
	Index      int     // Position in the whole timeline
	Cycle      int     // Repetition of the template, from 0
	Slot       int     // Position within the template
	Wait       float64 // Seconds after the previous entry
	Due        float64 // Seconds after the timeline started
	Difficulty Difficulty
}

// Timeline unrolls a template lazily. A campaign template is walked once.
// An endless template repeats up to maxCycles times; after every Nth full
// cycle (N = template length) one slot's difficulty goes up a step, the
// slot moving on each time. A slot that is already maxed hands its step
// to the next one that can take it. Once every slot is maxed the
// timeline ends.
type Timeline struct {
	endless   bool
	maxCycles int
	spawns    []Spawn // Working copy; escalation never touches the template

	cycle       int
	slot        int
	index       int
	due         float64
	done        bool
	escalations int
}

// NewTimeline starts a timeline at t=0. maxCycles only applies to
// endless templates; values below 1 use DefaultMaxCycles.
func NewTimeline(t *Template, maxCycles int) *Timeline {
	if maxCycles < 1 {
		maxCycles = DefaultMaxCycles
	}
	return &Timeline{
		endless:   t.Endless,
		maxCycles: maxCycles,
		spawns:    slices.Clone(t.Spawns),
		done:      len(t.Spawns) == 0,
	}
}

// Next returns the next entry, or false once the timeline is over
func (tl *Timeline) Next() (Entry, bool) {
	if tl.done {
		return Entry{}, false
	}

	if tl.slot == len(tl.spawns) {
		tl.cycle++
		tl.slot = 0
		if !tl.endless || tl.cycle >= tl.maxCycles {
			tl.done = true
			return Entry{}, false
		}
		if tl.cycle%len(tl.spawns) == 0 && !tl.escalate() {
			tl.done = true
			return Entry{}, false
		}
	}

	s := tl.spawns[tl.slot]
	tl.due += s.Wait
	e := Entry{
		Index:      tl.index,
		Cycle:      tl.cycle,
		Slot:       tl.slot,
		Wait:       s.Wait,
		Due:        tl.due,
		Difficulty: s.Difficulty,
	}
	tl.slot++
	tl.index++
	return e, true
}

// escalate raises one slot's difficulty. Returns false when every slot
// is already at maximum.
func (tl *Timeline) escalate() bool {
	n := len(tl.spawns)
	start := (tl.cycle/n - 1) % n
	for off := 0; off < n; off++ {
		j := (start + off) % n
		if next, ok := tl.spawns[j].Difficulty.Increased(); ok {
			tl.spawns[j].Difficulty = next
			tl.escalations++
			return true
		}
	}
	return false
}

// Done reports whether the timeline has no more entries
func (tl *Timeline) Done() bool { return tl.done }

// Emitted is the number of entries returned so far
func (tl *Timeline) Emitted() int { return tl.index }

// Escalations is the number of difficulty steps applied so far
func (tl *Timeline) Escalations() int { return tl.escalations }

// Spawns returns the current, possibly escalated, template entries
func (tl *Timeline) Spawns() []Spawn { return slices.Clone(tl.spawns) }

// Walk unrolls t and calls fn for each entry with its absolute due time.
// It stops early if fn returns false.
func Walk(t *Template, maxCycles int, fn func(Entry) bool) {
	tl := NewTimeline(t, maxCycles)
	for {
		e, ok := tl.Next()
		if !ok || !fn(e) {
			return
		}
	}
}
