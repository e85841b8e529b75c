package level

import (
	"fmt"
	"slices"
)

// Spawn is one timeline entry: wait Wait seconds after the previous
// spawn, then send a messenger of the given difficulty.
type Spawn struct {
	Wait       float64
	Difficulty Difficulty
}

// Template is an immutable level description
type Template struct {
	Name    string
	Spawns  []Spawn
	Endless bool
}

// Len returns the number of spawns in one pass of the template
func (t *Template) Len() int {
	return len(t.Spawns)
}

func sp(wait float64, w WordDifficulty, m MessengerType) Spawn {
	return Spawn{Wait: wait, Difficulty: Difficulty{Messenger: m, Word: w}}
}

// All is the campaign, in play order
var All = []*Template{
	{Spawns: []Spawn{
		sp(1, Easy, Person),
		sp(12, Easy, Person),
		sp(12, Easy, Person),
		sp(12, Easy, Person),
		sp(12, Easy, Person),
	}},
	{Spawns: []Spawn{
		sp(1, Easy, Person),
		sp(12, Medium, Person),
		sp(13, Easy, Person),
		sp(12, Medium, Person),
		sp(13, Easy, Person),
	}},
	{Name: "Message for Sir Lancelot", Spawns: []Spawn{
		sp(1, VeryHard, Boss),
		sp(12, Easy, Person),
		sp(12, Easy, Person),
	}},
	{Spawns: []Spawn{
		sp(1, Easy, Pony),
		sp(12, Medium, Person),
		sp(13, Easy, Pony),
		sp(12, Medium, Person),
		sp(13, Easy, Pony),
	}},
	{Name: "Message for the King", Spawns: []Spawn{
		sp(1, Medium, Pony),
		sp(14, Easy, Pony),
		sp(13, Hard, Person),
		sp(14, Easy, Pony),
		sp(13, Chungus, Boss),
	}},
	{Name: "Norman Invasion!", Spawns: []Spawn{
		sp(1, Easy, Person),
		sp(1, Easy, Person),
		sp(1, Easy, Person),
		sp(1, Easy, Person),
		sp(1, Easy, Person),
	}},
	{Spawns: []Spawn{
		sp(1, Medium, Pony),
		sp(14, Easy, Pony),
		sp(13, Hard, Person),
		sp(14, Easy, Pony),
		sp(13, Medium, Pony),
	}},
	{Spawns: []Spawn{
		sp(1, Hard, Person),
		sp(14, Medium, Pony),
		sp(14, Medium, Pony),
		sp(14, Medium, Pony),
		sp(14, Hard, Person),
	}},
	{Spawns: []Spawn{
		sp(1, VeryHard, Boss),
		sp(14, Medium, Pony),
		sp(14, Medium, Pony),
		sp(14, Medium, Pony),
		sp(14, Hard, Person),
	}},
}

// Count is the number of campaign levels
func Count() int {
	return len(All)
}

// Get returns campaign level i, or nil if out of range
func Get(i int) *Template {
	if i < 0 || i >= len(All) {
		return nil
	}
	return All[i]
}

// Endless returns the endless variant of campaign level i, or nil
func Endless(i int) *Template {
	base := Get(i)
	if base == nil {
		return nil
	}
	return &Template{
		Name:    "Endless " + base.Name,
		Spawns:  slices.Clone(base.Spawns),
		Endless: true,
	}
}

// Select returns the campaign or endless variant of level i
func Select(i int, endless bool) *Template {
	if endless {
		return Endless(i)
	}
	return Get(i)
}

// DisplayName is the level's title, falling back to its number
func DisplayName(i int, t *Template) string {
	switch t.Name {
	case "":
		return fmt.Sprintf("Level %d", i+1)
	case "Endless ":
		return fmt.Sprintf("Endless Level %d", i+1)
	}
	return t.Name
}
