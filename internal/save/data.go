// Package save persists player progress and settings.
//
// The record is versioned. Loading an older version runs one explicit
// migration per version step, each filling in the fields that version
// introduced, so old saves load with defaults rather than failing.
package save

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jacksimmons/morse-vs-horse/internal/level"
)

// CurrentVersion is the schema version written by this build
const CurrentVersion = 3

// ErrUnsupportedVersion is returned for saves written by a newer build
var ErrUnsupportedVersion = errors.New("save version is newer than supported")

// MorseDifficulty is the player's chosen input difficulty
type MorseDifficulty string

const (
	MorseEasy   MorseDifficulty = "easy"
	MorseNormal MorseDifficulty = "normal"
	MorseHard   MorseDifficulty = "hard"
)

// Resolution is a window size in pixels
type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DefaultResolution is the first supported window size
var DefaultResolution = Resolution{Width: 1280, Height: 720}

// Data is the save record
type Data struct {
	Version int `json:"version"`

	// v1
	LevelSelected      int     `json:"level_selected"`
	HighestLevelBeaten int     `json:"highest_level_beaten"` // -1 when nothing is beaten
	CompletionRanks    []int   `json:"completion_ranks"`     // 0 unbeaten, 1-3 stars
	Fullscreen         bool    `json:"fullscreen"`
	MusicVolume        float64 `json:"music_volume"` // 0-100
	SFXVolume          float64 `json:"sfx_volume"`   // 0-100

	// v2
	Difficulty     MorseDifficulty `json:"difficulty"`
	DotLongerThan  float64         `json:"dot_longer_than"`
	DashLongerThan float64         `json:"dash_longer_than"`

	// v3
	EndlessSelected bool       `json:"endless_selected"`
	Resolution      Resolution `json:"resolution"`
}

// Default returns a fresh record at the current version
func Default() *Data {
	d := &Data{Version: 1}
	migrateToV1(d)
	for v := 1; v < CurrentVersion; v++ {
		migrations[v](d)
	}
	d.Version = CurrentVersion
	return d
}

// migrations[v] upgrades a record from version v to v+1
var migrations = map[int]func(*Data){
	1: func(d *Data) {
		d.Difficulty = MorseNormal
		d.DotLongerThan = 0
		d.DashLongerThan = 0.3
	},
	2: func(d *Data) {
		d.EndlessSelected = false
		d.Resolution = DefaultResolution
	},
}

// migrateToV1 sets the v1 defaults. Every version carries the v1 fields,
// so this runs before decoding rather than as a step.
func migrateToV1(d *Data) {
	d.LevelSelected = 0
	d.HighestLevelBeaten = -1
	d.CompletionRanks = make([]int, level.Count())
	d.MusicVolume = 50
	d.SFXVolume = 50
}

// Decode parses a record and migrates it to CurrentVersion. A missing or
// zero version is read as version 1.
func Decode(raw []byte) (*Data, error) {
	var header struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(raw, &header); err != nil {
		return nil, fmt.Errorf("failed to parse save: %w", err)
	}
	if header.Version > CurrentVersion {
		return nil, fmt.Errorf("%w: %d > %d", ErrUnsupportedVersion, header.Version, CurrentVersion)
	}

	d := &Data{}
	migrateToV1(d)
	if err := json.Unmarshal(raw, d); err != nil {
		return nil, fmt.Errorf("failed to parse save: %w", err)
	}
	if d.Version < 1 {
		d.Version = 1
	}
	for v := d.Version; v < CurrentVersion; v++ {
		migrations[v](d)
	}
	d.Version = CurrentVersion
	d.normalize()
	return d, nil
}

// Encode serializes the record at CurrentVersion
func (d *Data) Encode() ([]byte, error) {
	d.Version = CurrentVersion
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize save: %w", err)
	}
	return data, nil
}

func (d *Data) normalize() {
	if n := level.Count(); len(d.CompletionRanks) < n {
		d.CompletionRanks = append(d.CompletionRanks, make([]int, n-len(d.CompletionRanks))...)
	}
	d.MusicVolume = clamp(d.MusicVolume, 0, 100)
	d.SFXVolume = clamp(d.SFXVolume, 0, 100)
	if d.HighestLevelBeaten < -1 {
		d.HighestLevelBeaten = -1
	}
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}

// EasyMode reports whether completions are ineligible for ranks
func (d *Data) EasyMode() bool {
	return d.Difficulty == MorseEasy
}

// Rank returns the stored rank for a level, 0 if unbeaten or unknown
func (d *Data) Rank(levelIdx int) int {
	if levelIdx < 0 || levelIdx >= len(d.CompletionRanks) {
		return 0
	}
	return d.CompletionRanks[levelIdx]
}

// Unlocked reports whether a campaign level may be played
func (d *Data) Unlocked(levelIdx int) bool {
	return levelIdx <= d.HighestLevelBeaten+1
}

// EndlessUnlocked reports whether the endless variant of a level may be
// played; it requires the campaign level itself to be beaten
func (d *Data) EndlessUnlocked(levelIdx int) bool {
	return levelIdx <= d.HighestLevelBeaten
}

// RecordCompletion stores a level win. The rank is only kept if it beats
// the stored one and easy mode is off; the highest level beaten always
// advances. Returns whether anything changed.
func (d *Data) RecordCompletion(levelIdx, rank int) bool {
	if levelIdx < 0 {
		return false
	}
	changed := false
	if !d.EasyMode() {
		for len(d.CompletionRanks) <= levelIdx {
			d.CompletionRanks = append(d.CompletionRanks, 0)
		}
		if rank > d.CompletionRanks[levelIdx] {
			d.CompletionRanks[levelIdx] = rank
			changed = true
		}
	}
	if levelIdx > d.HighestLevelBeaten {
		d.HighestLevelBeaten = levelIdx
		changed = true
	}
	return changed
}
