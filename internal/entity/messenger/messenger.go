// Package messenger moves a message carrier along a multi-segment path.
//
// Each segment gets a share of the total travel time proportional to its
// length, so the messenger moves at a constant rate and arrives exactly
// when the total duration has elapsed.
package messenger

import (
	"errors"
	"fmt"

	"github.com/jacksimmons/morse-vs-horse/internal/core/geom"
)

// ErrShortPath is returned for paths with fewer than two points
var ErrShortPath = errors.New("path needs at least two points")

const epsilon = 1e-9

// Phase is a messenger's lifecycle state
type Phase int

const (
	PhaseMoving   Phase = iota
	PhaseArrived        // Reached the goal
	PhaseDefeated       // The player decoded its message first
)

func (p Phase) String() string {
	switch p {
	case PhaseMoving:
		return "moving"
	case PhaseArrived:
		return "arrived"
	case PhaseDefeated:
		return "defeated"
	default:
		return "unknown"
	}
}

type segment struct {
	start, end geom.Point
	budget     float64 // Seconds allotted to this segment
}

// Messenger is a single trip. It is not reused once finished.
type Messenger struct {
	segments []segment
	duration float64

	idx       int
	segTime   float64 // Elapsed within the current segment
	elapsed   float64 // Elapsed along the whole path
	phase     Phase
	position  geom.Point
	facesLeft bool

	// OnSegmentComplete is called with the index of each finished segment
	OnSegmentComplete func(idx int)
	// OnGoalReached is called once when the final segment completes
	OnGoalReached func()
}

// New prepares a messenger that covers points in duration seconds
func New(points []geom.Point, duration float64) (*Messenger, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrShortPath, len(points))
	}
	if duration <= 0 {
		return nil, fmt.Errorf("invalid duration: %v", duration)
	}

	total := geom.PolylineLength(points)
	n := len(points) - 1
	m := &Messenger{
		segments: make([]segment, n),
		duration: duration,
		position: points[0],
	}
	for i := 0; i < n; i++ {
		share := 1.0 / float64(n)
		if total > 0 {
			share = geom.Distance(points[i], points[i+1]) / total
		}
		m.segments[i] = segment{start: points[i], end: points[i+1], budget: share * duration}
	}
	m.updateFacing()
	return m, nil
}

// DurationForSpeed converts a constant speed into a travel duration
func DurationForSpeed(points []geom.Point, speed float64) float64 {
	if speed <= 0 {
		return 0
	}
	return geom.PolylineLength(points) / speed
}

// Advance moves the messenger dt seconds along its path. Time left over
// when a segment completes carries into the next one. Returns true if
// the goal was reached during this call.
func (m *Messenger) Advance(dt float64) bool {
	if m.phase != PhaseMoving || dt <= 0 {
		return false
	}

	m.elapsed += dt
	left := dt
	for {
		seg := m.segments[m.idx]
		need := seg.budget - m.segTime
		if left+epsilon < need {
			m.segTime += left
			m.position = geom.Lerp(seg.start, seg.end, m.segTime/seg.budget)
			return false
		}

		// Segment complete
		left -= need
		if left < 0 {
			left = 0
		}
		m.position = seg.end
		if m.OnSegmentComplete != nil {
			m.OnSegmentComplete(m.idx)
		}

		if m.idx == len(m.segments)-1 {
			m.elapsed = m.duration
			m.segTime = seg.budget
			m.phase = PhaseArrived
			if m.OnGoalReached != nil {
				m.OnGoalReached()
			}
			return true
		}
		m.idx++
		m.segTime = 0
		m.updateFacing()
	}
}

// Defeat stops the messenger because its message was decoded
func (m *Messenger) Defeat() {
	if m.phase == PhaseMoving {
		m.phase = PhaseDefeated
	}
}

func (m *Messenger) updateFacing() {
	seg := m.segments[m.idx]
	dx := seg.end.X - seg.start.X
	if dx < 0 {
		m.facesLeft = true
	} else if dx > 0 {
		m.facesLeft = false
	}
}

// Position is the current interpolated map position
func (m *Messenger) Position() geom.Point { return m.position }

// FacingLeft reports whether the sprite should be flipped horizontally
func (m *Messenger) FacingLeft() bool { return m.facesLeft }

// SegmentIndex is the segment currently being travelled
func (m *Messenger) SegmentIndex() int { return m.idx }

// SegmentCount is the number of segments in the path
func (m *Messenger) SegmentCount() int { return len(m.segments) }

// Elapsed is the time travelled so far
func (m *Messenger) Elapsed() float64 { return m.elapsed }

// Duration is the total travel time
func (m *Messenger) Duration() float64 { return m.duration }

// Remaining is the time left before the messenger reaches its goal
func (m *Messenger) Remaining() float64 {
	r := m.duration - m.elapsed
	if r < 0 {
		return 0
	}
	return r
}

// Phase returns the lifecycle state
func (m *Messenger) Phase() Phase { return m.phase }

// Done reports whether the messenger has stopped for any reason
func (m *Messenger) Done() bool { return m.phase != PhaseMoving }

// Arrived reports whether the messenger reached its goal
func (m *Messenger) Arrived() bool { return m.phase == PhaseArrived }

// Budgets returns each segment's share of the travel time
func (m *Messenger) Budgets() []float64 {
	out := make([]float64, len(m.segments))
	for i, s := range m.segments {
		out[i] = s.budget
	}
	return out
}
