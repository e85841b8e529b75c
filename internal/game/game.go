package game

import (
	"fmt"
	"math/rand"

	"github.com/jacksimmons/morse-vs-horse/internal/audio"
	"github.com/jacksimmons/morse-vs-horse/internal/config"
	"github.com/jacksimmons/morse-vs-horse/internal/core/decoder"
	"github.com/jacksimmons/morse-vs-horse/internal/level"
	"github.com/jacksimmons/morse-vs-horse/internal/progress"
	"github.com/jacksimmons/morse-vs-horse/internal/render"
	"github.com/jacksimmons/morse-vs-horse/internal/save"
	"github.com/jacksimmons/morse-vs-horse/internal/spawn"
	"github.com/jacksimmons/morse-vs-horse/internal/ui/hud"
	"github.com/jacksimmons/morse-vs-horse/internal/world/pathgen"
	"github.com/rs/zerolog/log"
)

// SelectRadius is how close, in pixels, a click must land to a city or
// messenger to select its message
const SelectRadius = 24.0

// Setup is everything needed to start a level
type Setup struct {
	Config     *config.Config
	Thresholds decoder.Thresholds
	Data       *save.Data
	Store      progress.Persister
	Tone       audio.Tone
	Renderer   render.Renderer
	InputMgr   render.InputManager
	World      *World
	Rng        *rand.Rand
	Level      int
	Endless    bool
}

// Game holds one level's state and logic.
type Game struct {
	ScreenWidth  int
	ScreenHeight int
	Renderer     render.Renderer
	InputMgr     render.InputManager

	World   *World
	Pool    *spawn.Pool
	Tracker *progress.Tracker
	Decoder *decoder.Decoder
	Tone    audio.Tone
	Data    *save.Data
	GameHUD *hud.HUD

	LevelName string
	MaxLives  int
	HelpPage  int

	// UI state
	Messages []Message

	target       *spawn.Slot
	targetSerial int
	lastRank     int
}

// NewGame builds the level's components and starts it
func NewGame(s Setup, screenWidth, screenHeight int) (*Game, error) {
	cfg := s.Config
	pool := spawn.NewPool(s.World.Graph)
	travel := spawn.TravelPolicy{
		BaseSeconds:     cfg.Travel.BaseSeconds,
		WordStepSeconds: cfg.Travel.WordStepSeconds,
		TypeStepSeconds: cfg.Travel.TypeStepSeconds,
		MinSeconds:      cfg.Travel.MinSeconds,
	}
	spawner := spawn.NewSpawner(pool, pathgen.NewGenerator(s.Rng), s.World.Words, travel, cfg.HopCount, s.Rng)
	scheduler := spawn.NewScheduler(cfg.Endless.MaxCycles)
	tracker := progress.NewTracker(scheduler, spawner, pool, s.Data, s.Store, cfg.Lives)

	tone := s.Tone
	if tone == nil {
		tone = &audio.Silent{}
	}

	g := &Game{
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		Renderer:     s.Renderer,
		InputMgr:     s.InputMgr,
		World:        s.World,
		Pool:         pool,
		Tracker:      tracker,
		Decoder:      decoder.New(s.Thresholds),
		Tone:         tone,
		Data:         s.Data,
		GameHUD:      hud.New(hud.DefaultConfig(), s.Renderer, screenWidth, screenHeight),
		MaxLives:     cfg.Lives,
	}

	tracker.OnLifeLost = func(left int) {
		g.ShowMessage(fmt.Sprintf("A messenger got through! %d lives left", left))
	}
	tracker.OnResolved = func(slot *spawn.Slot) {
		if slot == g.target {
			g.clearTarget()
		}
	}
	tracker.OnWon = func(rank int) {
		g.lastRank = rank
		g.Tone.SetPlaying(false)
	}
	tracker.OnLost = func() {
		g.Tone.SetPlaying(false)
	}
	tracker.OnRoundComplete = func(round int) {
		g.ShowMessage(fmt.Sprintf("Round %d complete. The horses ride faster!", round))
	}

	if !tracker.Begin(s.Level, s.Endless) {
		return nil, fmt.Errorf("no such level: %d", s.Level)
	}
	g.LevelName = level.DisplayName(s.Level, tracker.Template())
	return g, nil
}

// Update reads input and advances the level by one tick.
func (g *Game) Update() error {
	dt := 1.0 / 60.0

	if g.InputMgr.IsKeyJustPressed(render.KeyBackspace) {
		g.Decoder.ClearChar()
	}
	if g.InputMgr.IsKeyJustPressed(render.KeyDelete) {
		g.Decoder.ClearPhrase()
	}
	if g.InputMgr.IsKeyJustPressed(render.KeyL) {
		g.HelpPage = (g.HelpPage + 1) % hud.HelpPageCount()
	}
	if g.InputMgr.IsMouseButtonJustPressed(render.MouseButtonLeft) {
		x, y := g.InputMgr.GetCursorPosition()
		g.SelectAt(float64(x), float64(y))
	}

	g.Step(dt, g.InputMgr.IsKeyPressed(render.KeySpace))
	return nil
}

// Step advances the level by dt seconds with the signal key held or not
func (g *Game) Step(dt float64, held bool) {
	g.updateMessages(dt)

	running := g.Tracker.Phase() == progress.PhaseRunning
	g.Tone.SetPlaying(held && running)
	if !running {
		return
	}

	if g.Decoder.HasTarget() {
		res := g.Decoder.Update(dt, held)
		if res.Completed {
			g.completeTarget()
		}
	}

	g.Tracker.Tick(dt)
	g.syncTarget()
	g.refreshHUD()
}

// SelectAt selects the message whose city or messenger is under (x, y)
func (g *Game) SelectAt(x, y float64) bool {
	slot := g.Pool.SlotAt(x, y, SelectRadius)
	if slot == nil {
		return false
	}
	g.Select(slot)
	return true
}

// Select makes slot's message the decoder target. Selecting the current
// target again keeps the input typed so far.
func (g *Game) Select(slot *spawn.Slot) {
	if slot == nil || !slot.Active() {
		return
	}
	if slot == g.target && slot.Serial() == g.targetSerial {
		return
	}
	g.target = slot
	g.targetSerial = slot.Serial()
	g.Decoder.SetTarget(slot.Target())
	log.Debug().Str("city", slot.City.Name).Str("word", slot.Word()).Msg("target selected")
}

// Target returns the selected slot, nil when none is selected
func (g *Game) Target() *spawn.Slot {
	return g.target
}

// LastRank returns the rank of the most recent win
func (g *Game) LastRank() int {
	return g.lastRank
}

func (g *Game) completeTarget() {
	slot := g.target
	if slot == nil {
		return
	}
	word := slot.Word()
	if g.Pool.Complete(slot) {
		g.ShowMessage(fmt.Sprintf("Decoded %q from %s", word, slot.City.Name))
		log.Info().Str("city", slot.City.Name).Str("word", word).Msg("message decoded")
	}
	g.clearTarget()
}

// syncTarget drops a target whose slot was released or reused
func (g *Game) syncTarget() {
	if g.target == nil {
		return
	}
	if !g.target.Active() || g.target.Serial() != g.targetSerial {
		g.clearTarget()
	}
}

func (g *Game) clearTarget() {
	g.target = nil
	g.targetSerial = 0
	g.Decoder.ClearTarget()
}

// Layout returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenWidth, g.ScreenHeight
}

// SetScreenSize updates the screen dimensions.
func (g *Game) SetScreenSize(width, height int) {
	g.ScreenWidth = width
	g.ScreenHeight = height
	g.GameHUD.SetScreenSize(width, height)
}

func (g *Game) updateMessages(dt float64) {
	var active []Message
	for _, msg := range g.Messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	g.Messages = active
}

// ShowMessage adds a new message to be displayed on screen.
func (g *Game) ShowMessage(text string) {
	g.Messages = append(g.Messages, Message{
		Text:     text,
		TimeLeft: 3.0,
		MaxTime:  3.0,
	})
}

// refreshHUD copies the level state into the HUD
func (g *Game) refreshHUD() {
	s := hud.State{
		Level:     g.LevelName,
		LivesLeft: g.Tracker.LivesLeft(),
		MaxLives:  g.MaxLives,
		Elapsed:   g.Tracker.Elapsed(),
		Round:     g.Tracker.Rounds(),
		EasyMode:  g.Data != nil && g.Data.EasyMode(),
		HelpPage:  g.HelpPage,
	}
	if t := g.target; t != nil {
		s.HasTarget = true
		s.TargetText = t.Word()
		s.TargetMorse = t.Target().String()
		s.Input = g.Decoder.Render()
		s.InputError = g.Decoder.Error()
		if m := t.Messenger(); m != nil {
			s.Remaining = m.Remaining()
		}
	}
	g.GameHUD.SetState(s)
}
