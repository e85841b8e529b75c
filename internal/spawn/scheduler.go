package spawn

import (
	"github.com/jacksimmons/morse-vs-horse/internal/level"
	"github.com/jacksimmons/morse-vs-horse/internal/sched"
)

// Scheduler feeds a level's timeline into a deferred-callback queue.
// Only the next entry is ever queued; it queues its successor when it
// fires. Every queued callback remembers the run it belongs to and does
// nothing once that run has been stopped or replaced.
type Scheduler struct {
	queue     *sched.Queue
	maxCycles int

	gen      int
	timeline *level.Timeline
	base     float64 // Queue time the current run started at
	pending  bool
	emitted  int
	onDue    func(level.Entry)
}

// NewScheduler creates an idle scheduler. maxCycles caps endless runs.
func NewScheduler(maxCycles int) *Scheduler {
	return &Scheduler{queue: sched.NewQueue(), maxCycles: maxCycles}
}

// Start begins a run of t, calling onDue for each entry once its due
// time arrives. Any previous run is abandoned.
func (s *Scheduler) Start(t *level.Template, onDue func(level.Entry)) {
	s.gen++
	s.timeline = level.NewTimeline(t, s.maxCycles)
	s.base = s.queue.Now()
	s.emitted = 0
	s.pending = false
	s.onDue = onDue
	s.queueNext(s.gen)
}

func (s *Scheduler) queueNext(gen int) {
	e, ok := s.timeline.Next()
	if !ok {
		s.pending = false
		return
	}
	s.pending = true
	s.queue.At(s.base+e.Due, func() {
		if gen != s.gen {
			return
		}
		s.emitted++
		s.pending = false
		s.onDue(e)
		if gen == s.gen {
			s.queueNext(gen)
		}
	})
}

// Stop abandons the current run. Callbacks already queued become no-ops.
func (s *Scheduler) Stop() {
	s.gen++
	s.pending = false
	s.timeline = nil
}

// Advance moves the scheduler's clock forward and fires due entries
func (s *Scheduler) Advance(dt float64) int {
	return s.queue.Advance(dt)
}

// Now is the scheduler's clock
func (s *Scheduler) Now() float64 { return s.queue.Now() }

// Elapsed is the time since the current run started
func (s *Scheduler) Elapsed() float64 { return s.queue.Now() - s.base }

// Emitted is the number of entries fired in the current run
func (s *Scheduler) Emitted() int { return s.emitted }

// Exhausted reports whether the current run has nothing left to fire
func (s *Scheduler) Exhausted() bool {
	return s.timeline == nil || (!s.pending && s.timeline.Done())
}

// Spawns returns the current run's template entries, with any
// escalation applied so far
func (s *Scheduler) Spawns() []level.Spawn {
	if s.timeline == nil {
		return nil
	}
	return s.timeline.Spawns()
}
