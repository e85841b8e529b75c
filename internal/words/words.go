// Package words holds the message lists for a map, one per word
// difficulty, and hands out words that have not been used yet. A list
// that runs out is refilled from its source, so every word is used once
// per pass.
//
// Lists live in <dir>/diff0.txt .. diff4.txt, one message per line.
// Blank lines and lines starting with '#' are skipped; Windows line
// endings are accepted.
package words

import (
	"bufio"
	"fmt"
	"io/fs"
	"math/rand"
	"path"
	"strings"
	"unicode"

	"github.com/jacksimmons/morse-vs-horse/internal/level"
	"github.com/rs/zerolog/log"
)

// Bank is the set of unused words for one map
type Bank struct {
	source map[level.WordDifficulty][]string
	unused map[level.WordDifficulty][]string
	rng    *rand.Rand
}

// FileName returns the list file for a difficulty
func FileName(d level.WordDifficulty) string {
	return fmt.Sprintf("diff%d.txt", int(d))
}

// Load reads every difficulty's list from dir within fsys. A missing list
// is an error; an empty one is allowed.
func Load(fsys fs.FS, dir string, rng *rand.Rand) (*Bank, error) {
	lists := make(map[level.WordDifficulty][]string, len(level.WordDifficulties))
	for _, d := range level.WordDifficulties {
		name := path.Join(dir, FileName(d))
		list, err := readList(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read word list %s: %w", name, err)
		}
		lists[d] = list
	}
	return NewBank(lists, rng), nil
}

// NewBank builds a bank from in-memory lists
func NewBank(lists map[level.WordDifficulty][]string, rng *rand.Rand) *Bank {
	b := &Bank{
		source: make(map[level.WordDifficulty][]string, len(lists)),
		unused: make(map[level.WordDifficulty][]string, len(lists)),
		rng:    rng,
	}
	for d, list := range lists {
		b.source[d] = append([]string(nil), list...)
		b.unused[d] = append([]string(nil), list...)
	}
	return b
}

func readList(fsys fs.FS, name string) ([]string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		s = strings.ToUpper(s)
		if !encodable(s) {
			log.Warn().Str("file", name).Str("word", s).Msg("skipping word with characters that have no Morse code")
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

func encodable(s string) bool {
	for _, r := range s {
		if r == ' ' {
			continue
		}
		if r > unicode.MaxASCII || !(unicode.IsUpper(r) || unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}

// Pick removes and returns a random unused word of difficulty d. An
// exhausted list is refilled first; a list with no words at all logs and
// returns "".
func (b *Bank) Pick(d level.WordDifficulty) string {
	list := b.unused[d]
	if len(list) == 0 {
		if len(b.source[d]) == 0 {
			log.Warn().Stringer("difficulty", d).Msg("word list is empty")
			return ""
		}
		log.Debug().Stringer("difficulty", d).Int("words", len(b.source[d])).Msg("word list exhausted; refilling")
		list = append([]string(nil), b.source[d]...)
	}
	i := b.rng.Intn(len(list))
	w := list[i]
	list[i] = list[len(list)-1]
	b.unused[d] = list[:len(list)-1]
	return w
}

// Remaining returns how many unused words of difficulty d are left
func (b *Bank) Remaining(d level.WordDifficulty) int {
	return len(b.unused[d])
}
