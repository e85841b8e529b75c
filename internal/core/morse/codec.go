package morse

import "strings"

// table is the static lookup of letters and digits. Decoding walks it
// linearly; the 1:1 mapping means the first exact match is the only one.
var table = []struct {
	r  rune
	ch Char
}{
	{'A', NewChar(Dot, Dash)},
	{'B', NewChar(Dash, Dot, Dot, Dot)},
	{'C', NewChar(Dash, Dot, Dash, Dot)},
	{'D', NewChar(Dash, Dot, Dot)},
	{'E', NewChar(Dot)},
	{'F', NewChar(Dot, Dot, Dash, Dot)},
	{'G', NewChar(Dash, Dash, Dot)},
	{'H', NewChar(Dot, Dot, Dot, Dot)},
	{'I', NewChar(Dot, Dot)},
	{'J', NewChar(Dot, Dash, Dash, Dash)},
	{'K', NewChar(Dash, Dot, Dash)},
	{'L', NewChar(Dot, Dash, Dot, Dot)},
	{'M', NewChar(Dash, Dash)},
	{'N', NewChar(Dash, Dot)},
	{'O', NewChar(Dash, Dash, Dash)},
	{'P', NewChar(Dot, Dash, Dash, Dot)},
	{'Q', NewChar(Dash, Dash, Dot, Dash)},
	{'R', NewChar(Dot, Dash, Dot)},
	{'S', NewChar(Dot, Dot, Dot)},
	{'T', NewChar(Dash)},
	{'U', NewChar(Dot, Dot, Dash)},
	{'V', NewChar(Dot, Dot, Dot, Dash)},
	{'W', NewChar(Dot, Dash, Dash)},
	{'X', NewChar(Dash, Dot, Dot, Dash)},
	{'Y', NewChar(Dash, Dot, Dash, Dash)},
	{'Z', NewChar(Dash, Dash, Dot, Dot)},
	{'1', NewChar(Dot, Dash, Dash, Dash, Dash)},
	{'2', NewChar(Dot, Dot, Dash, Dash, Dash)},
	{'3', NewChar(Dot, Dot, Dot, Dash, Dash)},
	{'4', NewChar(Dot, Dot, Dot, Dot, Dash)},
	{'5', NewChar(Dot, Dot, Dot, Dot, Dot)},
	{'6', NewChar(Dash, Dot, Dot, Dot, Dot)},
	{'7', NewChar(Dash, Dash, Dot, Dot, Dot)},
	{'8', NewChar(Dash, Dash, Dash, Dot, Dot)},
	{'9', NewChar(Dash, Dash, Dash, Dash, Dot)},
	{'0', NewChar(Dash, Dash, Dash, Dash, Dash)},
}

// Alphabet returns the table's characters in lookup order
func Alphabet() []rune {
	out := make([]rune, len(table))
	for i, e := range table {
		out[i] = e.r
	}
	return out
}

// EncodeChar translates an English letter or digit into a Char.
// Unmapped input (including lower case) yields EmptyChar.
func EncodeChar(r rune) Char {
	for _, e := range table {
		if e.r == r {
			return e.ch
		}
	}
	return EmptyChar
}

// DecodeChar translates a Char back into its character, or "" if the
// signals do not (yet) spell a known character.
func DecodeChar(c Char) string {
	for _, e := range table {
		if e.ch == c {
			return string(e.r)
		}
	}
	return ""
}

// EncodeWord upper-cases and encodes each character of the word
func EncodeWord(word string) Word {
	word = strings.ToUpper(word)
	out := make(Word, 0, len(word))
	for _, r := range word {
		out = append(out, EncodeChar(r))
	}
	return out
}

// DecodeWord concatenates the decoded chars. Unknown chars contribute nothing.
func DecodeWord(w Word) string {
	var sb strings.Builder
	for _, c := range w {
		sb.WriteString(DecodeChar(c))
	}
	return sb.String()
}

// EncodePhrase splits the phrase on whitespace and encodes each word
func EncodePhrase(phrase string) Phrase {
	fields := strings.Fields(phrase)
	out := make(Phrase, 0, len(fields))
	for _, f := range fields {
		out = append(out, EncodeWord(f))
	}
	return out
}

// DecodePhrase decodes each word and joins them with a space
func DecodePhrase(p Phrase) string {
	words := make([]string, len(p))
	for i, w := range p {
		words[i] = DecodeWord(w)
	}
	return strings.Join(words, " ")
}
