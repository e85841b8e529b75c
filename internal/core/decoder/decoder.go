// Package decoder turns a per-tick "signal held" sample into Morse input
// and validates it, character by character, against a target phrase.
package decoder

import (
	"strings"

	"github.com/jacksimmons/morse-vs-horse/internal/core/morse"
)

// Thresholds classify a completed hold. A hold longer than DashLongerThan
// is a dash; otherwise a hold longer than DotLongerThan is a dot; anything
// shorter is ignored. Both comparisons are strict.
type Thresholds struct {
	DotLongerThan  float64
	DashLongerThan float64
}

// DefaultThresholds mirrors the shipped input timing
func DefaultThresholds() Thresholds {
	return Thresholds{DotLongerThan: 0, DashLongerThan: 0.3}
}

// Classify maps a hold duration to a signal, or morse.None if too short
func (t Thresholds) Classify(held float64) morse.Signal {
	switch {
	case held > t.DashLongerThan:
		return morse.Dash
	case held > t.DotLongerThan:
		return morse.Dot
	default:
		return morse.None
	}
}

// State is the decoder's input state
type State int

const (
	StateIdle State = iota
	StateHolding
)

// Result reports what happened during one Update
type Result struct {
	Signal        morse.Signal // Dot or Dash appended, CharBreak or WordBreak committed, or None
	CharCommitted bool
	WordCommitted bool
	Completed     bool // The phrase matched the target; buffers were reset
}

// Decoder accumulates signals into char, word and phrase buffers.
//
// A char is only committed when it decodes to the character the target
// expects at the current position, and a word only when it equals the
// target word. Wrong input is never committed; it waits for the player
// to clear it.
type Decoder struct {
	thresholds Thresholds

	target morse.Phrase

	char   morse.Char
	word   morse.Word
	phrase morse.Phrase

	state     State
	held      float64 // Seconds the current signal has been held
	sinceLast float64 // Seconds since the last signal was released
	errorFlag bool

	// OnComplete is called when the phrase matches the target
	OnComplete func(target morse.Phrase)
}

// New creates a decoder with no target
func New(th Thresholds) *Decoder {
	return &Decoder{thresholds: th}
}

// SetThresholds replaces the classification thresholds
func (d *Decoder) SetThresholds(th Thresholds) {
	d.thresholds = th
}

// Thresholds returns the active thresholds
func (d *Decoder) Thresholds() Thresholds {
	return d.thresholds
}

// SetTarget replaces the target phrase. Input buffers and any hold in
// progress are reset.
func (d *Decoder) SetTarget(target morse.Phrase) {
	d.target = target.Clone()
	d.ClearPhrase()
	d.resetHold()
}

// Target returns the current target (nil when none is selected)
func (d *Decoder) Target() morse.Phrase {
	return d.target
}

// HasTarget reports whether decoding is enabled
func (d *Decoder) HasTarget() bool {
	return len(d.target) > 0
}

// ClearTarget drops the target and all input
func (d *Decoder) ClearTarget() {
	d.target = nil
	d.ClearPhrase()
	d.resetHold()
}

// resetHold forgets a hold whose release will never be seen
func (d *Decoder) resetHold() {
	d.state = StateIdle
	d.held = 0
}

// ClearPhrase resets all three buffers
func (d *Decoder) ClearPhrase() {
	d.char = morse.EmptyChar
	d.word = nil
	d.phrase = nil
	d.errorFlag = false
}

// ClearChar resets only the character buffer
func (d *Decoder) ClearChar() {
	d.char = morse.EmptyChar
	d.errorFlag = false
}

// State returns whether a signal is currently held
func (d *Decoder) State() State {
	return d.state
}

// HeldFor returns how long the current signal has been held
func (d *Decoder) HeldFor() float64 {
	return d.held
}

// SinceLastSignal returns the idle time since the last release
func (d *Decoder) SinceLastSignal() float64 {
	return d.sinceLast
}

// Error reports whether the character in progress cannot become the
// expected character
func (d *Decoder) Error() bool {
	return d.errorFlag
}

// Char returns the character in progress
func (d *Decoder) Char() morse.Char { return d.char }

// Word returns the committed chars of the word in progress
func (d *Decoder) Word() morse.Word { return d.word.Clone() }

// Phrase returns the committed words
func (d *Decoder) Phrase() morse.Phrase { return d.phrase.Clone() }

// Update consumes one tick of input.
func (d *Decoder) Update(dt float64, held bool) Result {
	var res Result

	if !d.HasTarget() {
		d.resetHold()
		return res
	}

	if held {
		d.state = StateHolding
		d.held += dt
		return res
	}

	if d.state == StateHolding {
		// Release edge
		res.Signal = d.thresholds.Classify(d.held)
		if res.Signal != morse.None {
			d.char.Add(res.Signal)
		}
		d.state = StateIdle
		d.held = 0
		d.sinceLast = 0
	} else {
		d.sinceLast += dt
		d.tryCommit(&res)
	}

	if d.phrase.Equal(d.target) {
		res.Completed = true
		completed := d.target
		d.ClearPhrase()
		if d.OnComplete != nil {
			d.OnComplete(completed)
		}
	}
	return res
}

func (d *Decoder) tryCommit(res *Result) {
	if morse.DecodeChar(d.char) == "" {
		d.errorFlag = d.char.Len() > 0 && !d.onTrack()
		return
	}

	wordIdx := len(d.phrase)
	charIdx := len(d.word)
	if wordIdx >= len(d.target) || charIdx >= len(d.target[wordIdx]) {
		d.errorFlag = true
		return
	}

	targetWord := d.target[wordIdx]
	if d.char != targetWord[charIdx] {
		d.errorFlag = !d.onTrack()
		return
	}

	d.word = append(d.word, d.char)
	d.char = morse.EmptyChar
	d.errorFlag = false
	res.CharCommitted = true
	res.Signal = morse.CharBreak

	if morse.DecodeWord(d.word) != "" && d.word.Equal(targetWord) {
		d.phrase = append(d.phrase, d.word)
		d.word = nil
		res.WordCommitted = true
		res.Signal = morse.WordBreak
	}
}

// onTrack reports whether the char in progress is a prefix of the
// expected target char.
func (d *Decoder) onTrack() bool {
	wordIdx := len(d.phrase)
	charIdx := len(d.word)
	if wordIdx >= len(d.target) || charIdx >= len(d.target[wordIdx]) {
		return false
	}
	input := d.char.String()
	want := d.target[wordIdx][charIdx].String()
	if len(input) > len(want) {
		return false
	}
	return strings.HasPrefix(want, input)
}

// Render returns the committed phrase, the word and char in progress, and
// a preview of the signal currently being held, in Morse notation.
func (d *Decoder) Render() string {
	preview := d.char
	if d.state == StateHolding {
		if sig := d.thresholds.Classify(d.held); sig != morse.None {
			preview.Add(sig)
		}
	}
	word := append(d.word.Clone(), preview)
	vis := append(d.phrase.Clone(), word)
	return vis.String()
}
