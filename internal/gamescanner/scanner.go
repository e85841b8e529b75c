package gamescanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/jacksimmons/morse-vs-horse/internal/level"
	"github.com/jacksimmons/morse-vs-horse/internal/words"
	"github.com/rs/zerolog/log"
)

// GraphFile is the map description every map directory must contain
const GraphFile = "graph.json"

// WordsDir holds a map's per-difficulty word lists
const WordsDir = "words"

// MapEntry represents a playable map found in the data directory
type MapEntry struct {
	Index int    // N in mapN
	Name  string // Directory name
	Dir   string // Directory path relative to the data directory
}

// ScanDataDirectory scans the data directory for mapN/ directories that
// hold a graph file and a complete set of word lists. Entries are sorted
// by index.
func ScanDataDirectory(dataPath string) ([]MapEntry, error) {
	entries, err := os.ReadDir(dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	var maps []MapEntry

	for _, entry := range entries {
		// Skip non-directories
		if !entry.IsDir() {
			continue
		}

		dirName := entry.Name()
		if strings.HasPrefix(dirName, ".") {
			continue
		}
		idx, ok := mapIndex(dirName)
		if !ok {
			continue
		}

		mapPath := filepath.Join(dataPath, dirName)
		if missing := missingFiles(mapPath); len(missing) > 0 {
			log.Warn().Str("map", dirName).Strs("missing", missing).Msg("skipping incomplete map directory")
			continue
		}

		maps = append(maps, MapEntry{
			Index: idx,
			Name:  dirName,
			Dir:   dirName,
		})
	}

	sort.Slice(maps, func(i, j int) bool { return maps[i].Index < maps[j].Index })
	return maps, nil
}

// Find returns the entry for map index i
func Find(maps []MapEntry, i int) (MapEntry, bool) {
	for _, m := range maps {
		if m.Index == i {
			return m, true
		}
	}
	return MapEntry{}, false
}

func mapIndex(dirName string) (int, bool) {
	rest, ok := strings.CutPrefix(dirName, "map")
	if !ok || rest == "" {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// missingFiles lists the required files absent from a map directory
func missingFiles(mapPath string) []string {
	required := []string{GraphFile}
	for _, d := range level.WordDifficulties {
		required = append(required, filepath.Join(WordsDir, words.FileName(d)))
	}

	var missing []string
	for _, name := range required {
		info, err := os.Stat(filepath.Join(mapPath, name))
		if err != nil || info.IsDir() {
			missing = append(missing, name)
		}
	}
	return missing
}
