// Package morse maps English letters, words and phrases to Morse code
// signal sequences and back.
//
// A Char holds at most MaxSignals signals. Words and phrases are plain
// slices, so equality is order and length sensitive: a prefix of a word
// never equals the word.
package morse

import (
	"slices"
	"strings"
)

// Signal is a single unit of Morse input
type Signal int

const (
	None Signal = iota // Unset; must stay the zero value so an empty Char is all None
	Dot
	Dash
	CharBreak // A char was committed; never stored in a Char
	WordBreak // A word was committed; never stored in a Char
)

// String renders a signal the way it is shown to the player.
// Only dots and dashes are visible.
func (s Signal) String() string {
	switch s {
	case Dot:
		return "."
	case Dash:
		return "-"
	default:
		return ""
	}
}

// MaxSignals is the longest character in the table (the digits)
const MaxSignals = 5

// Char is a fixed-capacity sequence of signals, padded with None
type Char [MaxSignals]Signal

// EmptyChar is the "no character" sentinel
var EmptyChar Char

// NewChar builds a Char from the given signals. Extra signals are dropped.
func NewChar(sigs ...Signal) Char {
	var c Char
	for _, s := range sigs {
		if !c.Add(s) {
			break
		}
	}
	return c
}

// Add appends a signal into the first unset position.
// Returns false if the char was already full.
func (c *Char) Add(s Signal) bool {
	for i := range c {
		if c[i] == None {
			c[i] = s
			return true
		}
	}
	return false
}

// Len returns the number of set signals
func (c Char) Len() int {
	n := 0
	for _, s := range c {
		if s != None {
			n++
		}
	}
	return n
}

// IsEmpty reports whether no signal has been set
func (c Char) IsEmpty() bool {
	return c == EmptyChar
}

func (c Char) String() string {
	var sb strings.Builder
	for _, s := range c {
		sb.WriteString(s.String())
	}
	return sb.String()
}

// Word is an ordered sequence of chars
type Word []Char

// Equal reports element-wise equality
func (w Word) Equal(other Word) bool {
	return slices.Equal(w, other)
}

// Clone returns an independent copy
func (w Word) Clone() Word {
	return slices.Clone(w)
}

// String joins chars with '/'
func (w Word) String() string {
	parts := make([]string, len(w))
	for i, c := range w {
		parts[i] = c.String()
	}
	return strings.Join(parts, "/")
}

// Phrase is an ordered sequence of words
type Phrase []Word

// Equal reports element-wise equality of every word
func (p Phrase) Equal(other Phrase) bool {
	return slices.EqualFunc(p, other, Word.Equal)
}

// Clone returns a deep copy
func (p Phrase) Clone() Phrase {
	out := make(Phrase, len(p))
	for i, w := range p {
		out[i] = w.Clone()
	}
	return out
}

// String joins words with "//"
func (p Phrase) String() string {
	parts := make([]string, len(p))
	for i, w := range p {
		parts[i] = w.String()
	}
	return strings.Join(parts, "//")
}
