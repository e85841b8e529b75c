package words

import (
	"math/rand"
	"testing"
	"testing/fstest"

	"github.com/jacksimmons/morse-vs-horse/internal/level"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"map0/words/diff0.txt": {Data: []byte("cat\r\ndog\r\n\r\n# comment\r\nsir lancelot\r\n")},
		"map0/words/diff1.txt": {Data: []byte("horse\nnaïve\n")},
		"map0/words/diff2.txt": {Data: []byte("")},
		"map0/words/diff3.txt": {Data: []byte("telegraph\n")},
		"map0/words/diff4.txt": {Data: []byte("chungus\n")},
	}
}

func TestLoad(t *testing.T) {
	b, err := Load(testFS(), "map0/words", rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}

	tests := []struct {
		d    level.WordDifficulty
		want int
	}{
		{level.Easy, 3},
		{level.Medium, 1}, // non-ASCII word skipped
		{level.Hard, 0},
		{level.VeryHard, 1},
		{level.Chungus, 1},
	}
	for _, tt := range tests {
		if got := b.Remaining(tt.d); got != tt.want {
			t.Errorf("%v: expected %d words, got %d", tt.d, tt.want, got)
		}
	}
}

func TestLoadMissingList(t *testing.T) {
	fsys := testFS()
	delete(fsys, "map0/words/diff4.txt")
	if _, err := Load(fsys, "map0/words", rand.New(rand.NewSource(1))); err == nil {
		t.Error("Expected error for missing list")
	}
}

func TestPickNeverRepeats(t *testing.T) {
	b, err := Load(testFS(), "map0/words", rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		w := b.Pick(level.Easy)
		if w == "" {
			t.Fatalf("Expected a word on pick %d", i)
		}
		if seen[w] {
			t.Errorf("Word '%s' picked twice", w)
		}
		seen[w] = true
	}
	if !seen["SIR LANCELOT"] || !seen["CAT"] {
		t.Errorf("Expected upper-cased words, got %v", seen)
	}

	if w := b.Pick(level.Hard); w != "" {
		t.Errorf("Expected empty string for empty list, got '%s'", w)
	}
}

func TestNewBankCopiesLists(t *testing.T) {
	src := []string{"A", "B"}
	b := NewBank(map[level.WordDifficulty][]string{level.Easy: src}, rand.New(rand.NewSource(1)))
	b.Pick(level.Easy)
	if src[0] != "A" || src[1] != "B" {
		t.Error("Expected source list to be untouched")
	}
}

func TestPickRefillsExhaustedList(t *testing.T) {
	b := NewBank(map[level.WordDifficulty][]string{
		level.Easy: {"CAT", "DOG"},
	}, rand.New(rand.NewSource(4)))

	counts := map[string]int{}
	for i := 0; i < 6; i++ {
		w := b.Pick(level.Easy)
		if w == "" {
			t.Fatalf("Expected a word on pick %d, got empty string", i)
		}
		counts[w]++
		if i%2 == 1 && counts["CAT"] != counts["DOG"] {
			t.Errorf("Expected every word used once per pass, got %v after %d picks", counts, i+1)
		}
	}
	if counts["CAT"] != 3 || counts["DOG"] != 3 {
		t.Errorf("Expected 3 picks of each word, got %v", counts)
	}
}
