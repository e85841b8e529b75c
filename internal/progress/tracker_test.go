package progress

import (
	"math/rand"
	"testing"

	"github.com/jacksimmons/morse-vs-horse/internal/core/geom"
	"github.com/jacksimmons/morse-vs-horse/internal/level"
	"github.com/jacksimmons/morse-vs-horse/internal/save"
	"github.com/jacksimmons/morse-vs-horse/internal/spawn"
	"github.com/jacksimmons/morse-vs-horse/internal/world/citygraph"
	"github.com/jacksimmons/morse-vs-horse/internal/world/pathgen"
	"github.com/jacksimmons/morse-vs-horse/internal/words"
)

type memStore struct {
	saves       int
	completions []int
}

func (m *memStore) Save(*save.Data) error { m.saves++; return nil }

func (m *memStore) LogCompletion(levelIdx, rank int) error {
	m.completions = append(m.completions, rank)
	return nil
}

type rig struct {
	tracker *Tracker
	pool    *spawn.Pool
	data    *save.Data
	store   *memStore
}

// newRig builds a five city star with 2 second travel times
func newRig(t *testing.T) *rig {
	t.Helper()
	cities := []citygraph.CityData{
		{Name: "London", X: 0, Y: 0},
		{Name: "Bristol", X: -10, Y: 0},
		{Name: "Hull", X: 10, Y: 0},
		{Name: "Newport", X: 0, Y: 10},
		{Name: "Cornwall", X: 0, Y: -10},
	}
	var edges []citygraph.EdgeData
	for _, c := range cities[1:] {
		edges = append(edges, citygraph.EdgeData{
			From:   "London",
			To:     c.Name,
			Points: []geom.Point{{X: 0, Y: 0}, {X: c.X, Y: c.Y}},
		})
	}
	g, err := citygraph.New(&citygraph.GraphData{Cities: cities, Edges: edges})
	if err != nil {
		t.Fatalf("Failed to build graph: %v", err)
	}

	rng := rand.New(rand.NewSource(5))
	list := make([]string, 50)
	for i := range list {
		list[i] = "CAT"
	}
	bank := words.NewBank(map[level.WordDifficulty][]string{
		level.Easy: list, level.Medium: list, level.Hard: list, level.VeryHard: list, level.Chungus: list,
	}, rng)

	pool := spawn.NewPool(g)
	travel := spawn.TravelPolicy{BaseSeconds: 2, MinSeconds: 2}
	spawner := spawn.NewSpawner(pool, pathgen.NewGenerator(rng), bank, travel, 1, rng)
	data := save.Default()
	store := &memStore{}
	tr := NewTracker(spawn.NewScheduler(0), spawner, pool, data, store, 3)
	return &rig{tracker: tr, pool: pool, data: data, store: store}
}

func run(tr *Tracker, seconds float64) {
	const dt = 0.25
	for i := 0; i < int(seconds/dt+0.5); i++ {
		tr.Tick(dt)
	}
}

func spawnsEvery(n int, wait float64) *level.Template {
	tmpl := &level.Template{}
	for i := 0; i < n; i++ {
		tmpl.Spawns = append(tmpl.Spawns, level.Spawn{
			Wait:       wait,
			Difficulty: level.Difficulty{Messenger: level.Pony, Word: level.Easy},
		})
	}
	return tmpl
}

func TestLostAfterThreeArrivals(t *testing.T) {
	r := newRig(t)
	spawned := 0
	r.tracker.OnSpawn = func(*spawn.Slot) { spawned++ }
	lost := 0
	r.tracker.OnLost = func() { lost++ }

	r.tracker.BeginTemplate(0, spawnsEvery(10, 1))

	// Spawns at 1,2,3 arrive at 2.75,3.75,4.75
	run(r.tracker, 5)
	if r.tracker.Phase() != PhaseLost {
		t.Fatalf("Expected lost, got %v", r.tracker.Phase())
	}
	if r.tracker.LivesLeft() != 0 || lost != 1 {
		t.Errorf("Expected 0 lives and one loss, got %d and %d", r.tracker.LivesLeft(), lost)
	}

	before := spawned
	active := r.pool.ActiveCount()
	run(r.tracker, 20)
	if spawned != before {
		t.Errorf("Expected no spawns after losing, got %d more", spawned-before)
	}
	if r.pool.ActiveCount() != active {
		t.Error("Expected slots to be frozen after losing")
	}
	if r.store.saves != 0 {
		t.Error("Expected nothing saved on loss")
	}
}

func completeAll(r *rig) {
	for _, s := range r.pool.Slots() {
		if s.Active() && !s.Messenger().Done() {
			r.pool.Complete(s)
		}
	}
}

func TestWinRecordsRank(t *testing.T) {
	r := newRig(t)
	won := -1
	r.tracker.OnWon = func(rank int) { won = rank }

	r.tracker.BeginTemplate(2, spawnsEvery(2, 1))
	run(r.tracker, 1)
	completeAll(r)
	run(r.tracker, 1)
	completeAll(r)
	run(r.tracker, 0.25)

	if r.tracker.Phase() != PhaseWon {
		t.Fatalf("Expected won, got %v (resolved %d)", r.tracker.Phase(), r.tracker.Resolved())
	}
	if won != 3 {
		t.Errorf("Expected rank 3, got %d", won)
	}
	if r.data.Rank(2) != 3 || r.data.HighestLevelBeaten != 2 {
		t.Errorf("Expected rank 3 stored for level 2, got %d", r.data.Rank(2))
	}
	if r.store.saves != 1 || len(r.store.completions) != 1 {
		t.Errorf("Expected one save and one logged win, got %d and %d", r.store.saves, len(r.store.completions))
	}
}

func TestWinAfterLosingLifeKeepsBetterRank(t *testing.T) {
	r := newRig(t)
	r.data.RecordCompletion(0, 3)

	// The first messenger arrives before the second is sent and decoded
	pony := level.Difficulty{Messenger: level.Pony, Word: level.Easy}
	r.tracker.BeginTemplate(0, &level.Template{Spawns: []level.Spawn{
		{Wait: 1, Difficulty: pony},
		{Wait: 2, Difficulty: pony},
	}})
	run(r.tracker, 3)
	completeAll(r)
	run(r.tracker, 0.25)

	if r.tracker.Phase() != PhaseWon {
		t.Fatalf("Expected won, got %v", r.tracker.Phase())
	}
	if r.tracker.LivesLost() != 1 {
		t.Errorf("Expected 1 life lost, got %d", r.tracker.LivesLost())
	}
	if r.data.Rank(0) != 3 {
		t.Errorf("Expected stored rank to stay 3, got %d", r.data.Rank(0))
	}
	if r.store.saves != 0 {
		t.Errorf("Expected no save for a worse rank, got %d", r.store.saves)
	}
}

func TestEasyModeNeverImprovesRank(t *testing.T) {
	r := newRig(t)
	r.data.Difficulty = save.MorseEasy

	r.tracker.BeginTemplate(0, spawnsEvery(1, 1))
	run(r.tracker, 1)
	completeAll(r)
	run(r.tracker, 0.25)

	if r.tracker.Phase() != PhaseWon {
		t.Fatalf("Expected won, got %v", r.tracker.Phase())
	}
	if r.data.Rank(0) != 0 {
		t.Errorf("Expected no rank in easy mode, got %d", r.data.Rank(0))
	}
	if r.data.HighestLevelBeaten != 0 {
		t.Errorf("Expected highest beaten 0, got %d", r.data.HighestLevelBeaten)
	}
	if len(r.store.completions) != 0 {
		t.Error("Expected easy mode wins not to be logged")
	}
}

func TestSkippedSpawnsCountAsResolved(t *testing.T) {
	r := newRig(t)
	// Six simultaneous spawns on five cities: one is skipped
	r.tracker.BeginTemplate(0, spawnsEvery(6, 0))
	run(r.tracker, 0.25)
	if r.tracker.Skipped() != 1 {
		t.Fatalf("Expected 1 skipped spawn, got %d", r.tracker.Skipped())
	}
	completeAll(r)
	run(r.tracker, 0.25)
	if r.tracker.Phase() != PhaseWon {
		t.Errorf("Expected won, got %v", r.tracker.Phase())
	}
}

func TestEndlessLoopsAtMaximum(t *testing.T) {
	r := newRig(t)
	rounds := 0
	r.tracker.OnRoundComplete = func(n int) { rounds = n }

	tmpl := &level.Template{Endless: true, Spawns: []level.Spawn{
		{Wait: 1, Difficulty: level.Difficulty{Messenger: level.Train, Word: level.Chungus}},
	}}
	r.tracker.BeginTemplate(0, tmpl)

	for i := 0; i < 3; i++ {
		run(r.tracker, 1)
		completeAll(r)
		run(r.tracker, 0.25)
	}
	if r.tracker.Phase() != PhaseRunning {
		t.Fatalf("Expected endless to keep running, got %v", r.tracker.Phase())
	}
	if rounds < 2 {
		t.Errorf("Expected at least 2 rounds, got %d", rounds)
	}
	if r.store.saves != 0 {
		t.Error("Expected endless rounds not to record completions")
	}
}

func TestBeginUnknownLevel(t *testing.T) {
	r := newRig(t)
	if r.tracker.Begin(99, false) {
		t.Error("Expected unknown level to fail")
	}
	if r.tracker.Phase() != PhaseIdle {
		t.Errorf("Expected idle, got %v", r.tracker.Phase())
	}
	if !r.tracker.Begin(0, true) || !r.tracker.Template().Endless {
		t.Error("Expected endless level to start")
	}
}
