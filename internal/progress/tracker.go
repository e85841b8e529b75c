// Package progress runs a level: it starts the spawn schedule, counts
// lives and resolved messengers, and decides when the level is won or lost.
package progress

import (
	"github.com/jacksimmons/morse-vs-horse/internal/level"
	"github.com/jacksimmons/morse-vs-horse/internal/save"
	"github.com/jacksimmons/morse-vs-horse/internal/spawn"
	"github.com/rs/zerolog/log"
)

// Phase is the level state
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseWon
	PhaseLost
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Persister writes the save record
type Persister interface {
	Save(d *save.Data) error
}

// completionLogger is implemented by stores that keep a win history
type completionLogger interface {
	LogCompletion(levelIdx, rank int) error
}

// Tracker owns one level run at a time
type Tracker struct {
	scheduler *spawn.Scheduler
	spawner   *spawn.Spawner
	pool      *spawn.Pool
	data      *save.Data
	store     Persister
	maxLives  int

	phase     Phase
	levelIdx  int
	template  *level.Template
	livesLost int
	resolved  int
	skipped   int
	rounds    int // Completed endless rounds

	// Callbacks
	OnLifeLost      func(livesLeft int)
	OnWon           func(rank int)
	OnLost          func()
	OnRoundComplete func(round int)
	OnSpawn         func(s *spawn.Slot)
	OnResolved      func(s *spawn.Slot)
}

// NewTracker wires a tracker to its collaborators. store may be nil.
func NewTracker(scheduler *spawn.Scheduler, spawner *spawn.Spawner, pool *spawn.Pool, data *save.Data, store Persister, maxLives int) *Tracker {
	return &Tracker{
		scheduler: scheduler,
		spawner:   spawner,
		pool:      pool,
		data:      data,
		store:     store,
		maxLives:  maxLives,
	}
}

// Begin starts campaign or endless level levelIdx
func (t *Tracker) Begin(levelIdx int, endless bool) bool {
	tmpl := level.Select(levelIdx, endless)
	if tmpl == nil {
		log.Warn().Int("level", levelIdx).Bool("endless", endless).Msg("no such level")
		return false
	}
	t.levelIdx = levelIdx
	t.rounds = 0
	t.livesLost = 0
	t.start(tmpl)
	log.Info().Str("level", level.DisplayName(levelIdx, tmpl)).Msg("level started")
	return true
}

// BeginTemplate runs an arbitrary template under the given level index
func (t *Tracker) BeginTemplate(levelIdx int, tmpl *level.Template) {
	t.levelIdx = levelIdx
	t.rounds = 0
	t.livesLost = 0
	t.start(tmpl)
}

func (t *Tracker) start(tmpl *level.Template) {
	t.template = tmpl
	t.resolved = 0
	t.skipped = 0
	t.pool.Reset()
	t.phase = PhaseRunning
	t.scheduler.Start(tmpl, t.onDue)
}

func (t *Tracker) onDue(e level.Entry) {
	if t.phase != PhaseRunning {
		return
	}
	slot, ok := t.spawner.Spawn(e.Difficulty)
	if !ok {
		// A skipped spawn still counts towards the level's total
		t.skipped++
		t.resolved++
		return
	}
	if t.OnSpawn != nil {
		t.OnSpawn(slot)
	}
}

// Tick advances the level by dt seconds
func (t *Tracker) Tick(dt float64) {
	if t.phase != PhaseRunning {
		return
	}

	t.scheduler.Advance(dt)

	for range t.pool.Advance(dt) {
		t.LoseLife()
		if t.phase != PhaseRunning {
			return
		}
	}

	for _, s := range t.pool.Sweep() {
		t.resolved++
		if t.OnResolved != nil {
			t.OnResolved(s)
		}
	}

	if !t.scheduler.Exhausted() || t.resolved < t.scheduler.Emitted() {
		return
	}
	if t.template.Endless {
		t.nextRound()
		return
	}
	t.win()
}

// LoseLife records a messenger reaching its goal
func (t *Tracker) LoseLife() {
	if t.phase != PhaseRunning {
		return
	}
	t.livesLost++
	left := t.LivesLeft()
	log.Info().Int("lives_left", left).Msg("life lost")
	if t.OnLifeLost != nil {
		t.OnLifeLost(left)
	}
	if left <= 0 {
		t.lose()
	}
}

func (t *Tracker) lose() {
	t.phase = PhaseLost
	t.scheduler.Stop()
	log.Info().Int("level", t.levelIdx).Int("rounds", t.rounds).Msg("level lost")
	if t.OnLost != nil {
		t.OnLost()
	}
}

func (t *Tracker) win() {
	t.phase = PhaseWon
	rank := t.maxLives - t.livesLost
	log.Info().Int("level", t.levelIdx).Int("rank", rank).Msg("level won")

	if t.data != nil && t.data.RecordCompletion(t.levelIdx, rank) {
		t.persist()
	}
	if cl, ok := t.store.(completionLogger); ok && t.data != nil && !t.data.EasyMode() {
		if err := cl.LogCompletion(t.levelIdx, rank); err != nil {
			log.Error().Err(err).Msg("failed to log completion")
		}
	}
	if t.OnWon != nil {
		t.OnWon(rank)
	}
}

// nextRound restarts an endless run from its escalated template. Once
// escalation is exhausted the run loops at maximum difficulty.
func (t *Tracker) nextRound() {
	t.rounds++
	log.Info().Int("round", t.rounds).Msg("endless round complete")
	if t.OnRoundComplete != nil {
		t.OnRoundComplete(t.rounds)
	}
	next := &level.Template{
		Name:    t.template.Name,
		Spawns:  t.scheduler.Spawns(),
		Endless: true,
	}
	t.start(next)
}

func (t *Tracker) persist() {
	if t.store == nil {
		return
	}
	if err := t.store.Save(t.data); err != nil {
		log.Error().Err(err).Msg("failed to write save")
		return
	}
	log.Info().Msg("progress saved")
}

// Phase returns the level state
func (t *Tracker) Phase() Phase { return t.phase }

// Level returns the running level's index
func (t *Tracker) Level() int { return t.levelIdx }

// Template returns the running template
func (t *Tracker) Template() *level.Template { return t.template }

// LivesLeft returns the remaining lives
func (t *Tracker) LivesLeft() int { return t.maxLives - t.livesLost }

// LivesLost returns the lives lost this level
func (t *Tracker) LivesLost() int { return t.livesLost }

// Resolved returns how many spawns have finished, skipped ones included
func (t *Tracker) Resolved() int { return t.resolved }

// Skipped returns how many spawns found no free city
func (t *Tracker) Skipped() int { return t.skipped }

// Rounds returns completed endless rounds
func (t *Tracker) Rounds() int { return t.rounds }

// Elapsed returns seconds since the current run started
func (t *Tracker) Elapsed() float64 { return t.scheduler.Elapsed() }
