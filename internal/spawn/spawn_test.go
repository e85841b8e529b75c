package spawn

import (
	"math/rand"
	"testing"

	"github.com/jacksimmons/morse-vs-horse/internal/core/geom"
	"github.com/jacksimmons/morse-vs-horse/internal/level"
	"github.com/jacksimmons/morse-vs-horse/internal/world/citygraph"
	"github.com/jacksimmons/morse-vs-horse/internal/world/pathgen"
	"github.com/jacksimmons/morse-vs-horse/internal/words"
)

func twoCityGraph(t *testing.T) *citygraph.Graph {
	t.Helper()
	g, err := citygraph.New(&citygraph.GraphData{
		Cities: []citygraph.CityData{{Name: "London", X: 0, Y: 0}, {Name: "Hull", X: 30, Y: 40}},
		Edges: []citygraph.EdgeData{
			{From: "London", To: "Hull", Points: []geom.Point{{X: 0, Y: 0}, {X: 30, Y: 40}}},
		},
	})
	if err != nil {
		t.Fatalf("Failed to build graph: %v", err)
	}
	return g
}

func newSpawner(t *testing.T, g *citygraph.Graph, pool *Pool) *Spawner {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	bank := words.NewBank(map[level.WordDifficulty][]string{
		level.Easy:   {"CAT", "DOG", "PIG"},
		level.Medium: {"HORSE"},
	}, rng)
	return NewSpawner(pool, pathgen.NewGenerator(rng), bank, DefaultTravelPolicy(), 1, rng)
}

func TestSingleSpawnAfterOneSecond(t *testing.T) {
	g := twoCityGraph(t)
	pool := NewPool(g)
	spawner := newSpawner(t, g, pool)
	s := NewScheduler(0)

	tmpl := &level.Template{Spawns: []level.Spawn{
		{Wait: 1, Difficulty: level.Difficulty{Messenger: level.Pony, Word: level.Easy}},
	}}
	s.Start(tmpl, func(e level.Entry) { spawner.Spawn(e.Difficulty) })

	s.Advance(0.5)
	if pool.ActiveCount() != 0 {
		t.Fatal("Expected no active slot before 1s")
	}
	s.Advance(0.5)

	if pool.ActiveCount() != 1 {
		t.Fatalf("Expected exactly 1 active slot, got %d", pool.ActiveCount())
	}
	for _, slot := range pool.Slots() {
		if !slot.Active() {
			continue
		}
		if slot.Word() == "" || len(slot.Target()) == 0 {
			t.Error("Expected a non-empty word")
		}
		if slot.Messenger() == nil {
			t.Error("Expected a messenger to be created")
		}
		if slot.Route().Hops() != 1 {
			t.Errorf("Expected a 1-hop route, got %d", slot.Route().Hops())
		}
	}
	if !s.Exhausted() || s.Emitted() != 1 {
		t.Errorf("Expected scheduler exhausted after 1 spawn, got emitted=%d", s.Emitted())
	}
}

func TestSpawnSkipsWhenNoSlotFree(t *testing.T) {
	g := twoCityGraph(t)
	pool := NewPool(g)
	spawner := newSpawner(t, g, pool)

	d := level.Difficulty{Messenger: level.Person, Word: level.Easy}
	for i := 0; i < 2; i++ {
		if _, ok := spawner.Spawn(d); !ok {
			t.Fatalf("Expected spawn %d to succeed", i)
		}
	}
	if _, ok := spawner.Spawn(d); ok {
		t.Error("Expected spawn to be skipped with no free slot")
	}
	if pool.Violations() != 0 {
		t.Errorf("Expected no violations, got %d", pool.Violations())
	}
}

func TestSpawnSkipsWhenNoWord(t *testing.T) {
	g := twoCityGraph(t)
	pool := NewPool(g)
	spawner := newSpawner(t, g, pool)

	d := level.Difficulty{Messenger: level.Person, Word: level.Hard}
	if slot, ok := spawner.Spawn(d); ok || slot != nil {
		t.Error("Expected spawn to be skipped with an empty word list")
	}
	if pool.ActiveCount() != 0 {
		t.Errorf("Expected no undecodable message activated, got %d active", pool.ActiveCount())
	}
}

func TestSpawnKeepsSendingAfterWordsRunOut(t *testing.T) {
	g := twoCityGraph(t)
	pool := NewPool(g)
	spawner := newSpawner(t, g, pool)

	// Medium holds one word; every spawn must still carry it
	d := level.Difficulty{Messenger: level.Person, Word: level.Medium}
	for i := 0; i < 4; i++ {
		slot, ok := spawner.Spawn(d)
		if !ok {
			t.Fatalf("Expected spawn %d to succeed", i)
		}
		if slot.Word() != "HORSE" || len(slot.Target()) == 0 {
			t.Errorf("Expected a decodable word on spawn %d, got %q", i, slot.Word())
		}
		pool.Complete(slot)
		pool.Sweep()
	}
}

func TestActivateTwiceIsViolation(t *testing.T) {
	g := twoCityGraph(t)
	pool := NewPool(g)
	spawner := newSpawner(t, g, pool)

	slot, ok := spawner.Spawn(level.Difficulty{Messenger: level.Person, Word: level.Easy})
	if !ok {
		t.Fatal("Expected spawn to succeed")
	}
	word := slot.Word()
	if pool.Activate(slot, "OTHER", level.Difficulty{}, slot.Route(), slot.Messenger()) {
		t.Error("Expected activation of an active slot to fail")
	}
	if slot.Word() != word || pool.Violations() != 1 {
		t.Error("Expected slot untouched and one violation recorded")
	}
}

func TestCompleteAndSweep(t *testing.T) {
	g := twoCityGraph(t)
	pool := NewPool(g)
	spawner := newSpawner(t, g, pool)

	slot, _ := spawner.Spawn(level.Difficulty{Messenger: level.Person, Word: level.Easy})
	pool.Advance(1)
	if got := pool.Sweep(); len(got) != 0 {
		t.Fatalf("Expected nothing to sweep, got %d", len(got))
	}

	if !pool.Complete(slot) {
		t.Fatal("Expected completion to succeed")
	}
	if pool.Complete(slot) {
		t.Error("Expected second completion to be a violation")
	}
	if got := pool.Sweep(); len(got) != 1 || got[0] != slot {
		t.Errorf("Expected the completed slot to be released")
	}
	if slot.Active() || slot.Messenger() != nil {
		t.Error("Expected slot fully deactivated")
	}
	if pool.Complete(nil) || pool.Violations() != 2 {
		t.Errorf("Expected 2 violations, got %d", pool.Violations())
	}
}

func TestArrivalReported(t *testing.T) {
	g := twoCityGraph(t)
	pool := NewPool(g)
	spawner := newSpawner(t, g, pool)

	d := level.Difficulty{Messenger: level.Person, Word: level.Easy}
	slot, _ := spawner.Spawn(d)
	dur := DefaultTravelPolicy().Duration(d)
	if slot.Messenger().Duration() != dur {
		t.Errorf("Expected duration %v, got %v", dur, slot.Messenger().Duration())
	}

	if got := pool.Advance(dur - 1); len(got) != 0 {
		t.Fatal("Expected no arrival before the duration")
	}
	if got := pool.Advance(1); len(got) != 1 {
		t.Fatalf("Expected 1 arrival, got %d", len(got))
	}
	if pos := slot.Messenger().Position(); pos != slot.Route().Path.End() {
		t.Errorf("Expected messenger at route end, got %v", pos)
	}
	if len(pool.Sweep()) != 1 {
		t.Error("Expected arrived slot to be swept")
	}
}

func TestStopMakesQueuedSpawnsInert(t *testing.T) {
	s := NewScheduler(0)
	fired := 0
	tmpl := level.Endless(0)
	s.Start(tmpl, func(level.Entry) { fired++ })

	s.Advance(1)
	if fired != 1 {
		t.Fatalf("Expected first spawn at 1s, got %d", fired)
	}
	s.Stop()
	s.Advance(1000)
	if fired != 1 {
		t.Errorf("Expected no spawns after Stop, got %d", fired)
	}
}

func TestRestartIgnoresOldRun(t *testing.T) {
	s := NewScheduler(0)
	var runs []int
	s.Start(level.All[0], func(level.Entry) { runs = append(runs, 1) })
	s.Advance(0.5)
	s.Start(level.All[0], func(level.Entry) { runs = append(runs, 2) })
	s.Advance(1)
	if len(runs) != 1 || runs[0] != 2 {
		t.Errorf("Expected only the new run to fire, got %v", runs)
	}
	if s.Elapsed() != 1 {
		t.Errorf("Expected 1s elapsed in new run, got %v", s.Elapsed())
	}
}

func TestTravelPolicy(t *testing.T) {
	p := DefaultTravelPolicy()
	tests := []struct {
		d    level.Difficulty
		want float64
	}{
		{level.Difficulty{Messenger: level.Person, Word: level.Easy}, 25},
		{level.Difficulty{Messenger: level.Boss, Word: level.Chungus}, 54},
		{level.Difficulty{Messenger: level.Train, Word: level.Easy}, 15},
	}
	for _, tt := range tests {
		if got := p.Duration(tt.d); got != tt.want {
			t.Errorf("%+v: expected %v, got %v", tt.d, tt.want, got)
		}
	}

	p.BaseSeconds = 0
	if got := p.Duration(level.Difficulty{Messenger: level.Train}); got != p.MinSeconds {
		t.Errorf("Expected clamp to %v, got %v", p.MinSeconds, got)
	}
}
