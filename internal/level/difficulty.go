// Package level defines spawn difficulty, the level catalogue and the
// spawn timelines levels unroll into.
package level

// WordDifficulty selects the word list a target phrase is drawn from.
// Later values are harder.
type WordDifficulty int

const (
	Easy WordDifficulty = iota
	Medium
	Hard
	VeryHard
	Chungus
)

// MaxWordDifficulty is the hardest word tier
const MaxWordDifficulty = Chungus

// WordDifficulties lists every tier in escalation order
var WordDifficulties = []WordDifficulty{Easy, Medium, Hard, VeryHard, Chungus}

func (d WordDifficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	case VeryHard:
		return "very_hard"
	case Chungus:
		return "chungus"
	default:
		return "unknown"
	}
}

// MessengerType selects who carries a message. Later values travel faster.
type MessengerType int

const (
	Boss MessengerType = iota
	Person
	Pony
	Train
)

// MaxMessengerType is the fastest messenger
const MaxMessengerType = Train

func (m MessengerType) String() string {
	switch m {
	case Boss:
		return "boss"
	case Person:
		return "person"
	case Pony:
		return "pony"
	case Train:
		return "train"
	default:
		return "unknown"
	}
}

// Difficulty combines the word tier and messenger type of one spawn
type Difficulty struct {
	Messenger MessengerType
	Word      WordDifficulty
}

// Increased returns the next difficulty step: a harder word, or once
// words are maxed a faster messenger. ok is false when both are maxed.
func (d Difficulty) Increased() (next Difficulty, ok bool) {
	switch {
	case d.Word < MaxWordDifficulty:
		d.Word++
	case d.Messenger < MaxMessengerType:
		d.Messenger++
	default:
		return d, false
	}
	return d, true
}

// Maxed reports whether the difficulty cannot increase further
func (d Difficulty) Maxed() bool {
	_, ok := d.Increased()
	return !ok
}
