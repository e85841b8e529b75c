package game

import (
	"fmt"
	"image/color"
	"math/rand"

	"github.com/jacksimmons/morse-vs-horse/internal/audio"
	"github.com/jacksimmons/morse-vs-horse/internal/config"
	"github.com/jacksimmons/morse-vs-horse/internal/core/decoder"
	"github.com/jacksimmons/morse-vs-horse/internal/progress"
	"github.com/jacksimmons/morse-vs-horse/internal/render"
	"github.com/jacksimmons/morse-vs-horse/internal/save"
	"github.com/jacksimmons/morse-vs-horse/internal/ui/menu"
	"github.com/rs/zerolog/log"
)

// Manager handles the overall game state, including menu and gameplay.
type Manager struct {
	ScreenWidth  int
	ScreenHeight int
	State        menu.GameState
	MainMenu     *menu.MainMenu
	Game         *Game
	Renderer     render.Renderer
	InputMgr     render.InputManager

	Config *config.Config
	Data   *save.Data
	Store  save.Store
	Tone   audio.Tone
	Maps   MapSource
	Rng    *rand.Rand

	// OnFullscreen applies a fullscreen change to the window
	OnFullscreen func(fullscreen bool)

	worlds map[int]*World
	result string
}

// NewManager creates a new game manager.
func NewManager(cfg *config.Config, data *save.Data, store save.Store, tone audio.Tone, maps MapSource, r render.Renderer, input render.InputManager, rng *rand.Rand) *Manager {
	m := &Manager{
		ScreenWidth:  cfg.ScreenWidth,
		ScreenHeight: cfg.ScreenHeight,
		State:        menu.StateLevelSelect,
		Renderer:     r,
		InputMgr:     input,
		Config:       cfg,
		Data:         data,
		Store:        store,
		Tone:         tone,
		Maps:         maps,
		Rng:          rng,
		worlds:       make(map[int]*World),
	}
	m.MainMenu = menu.NewMainMenu(data, r, input, m.ScreenWidth, m.ScreenHeight)
	return m
}

// Thresholds returns the signal thresholds: the saved ones when the save
// record has been configured, otherwise the config defaults
func (m *Manager) Thresholds() decoder.Thresholds {
	th := decoder.Thresholds{
		DotLongerThan:  m.Config.Signal.DotLongerThan,
		DashLongerThan: m.Config.Signal.DashLongerThan,
	}
	if m.Data != nil && m.Data.DashLongerThan > m.Data.DotLongerThan {
		th.DotLongerThan = m.Data.DotLongerThan
		th.DashLongerThan = m.Data.DashLongerThan
	}
	return th
}

// Update updates the game state.
func (m *Manager) Update() error {
	if m.InputMgr.IsKeyJustPressed(render.KeyF11) {
		m.toggleFullscreen()
	}

	switch m.State {
	case menu.StateLevelSelect:
		if m.InputMgr.IsKeyJustPressed(render.KeyEscape) {
			return render.ErrQuit
		}
		selected, selection := m.MainMenu.Update()
		if selected {
			if err := m.StartLevel(selection); err != nil {
				log.Error().Err(err).Int("level", selection.Level).Msg("failed to start level")
				return nil
			}
			m.State = menu.StatePlaying
		}
	case menu.StatePlaying:
		if m.Game == nil {
			m.State = menu.StateLevelSelect
			return nil
		}
		if m.InputMgr.IsKeyJustPressed(render.KeyEscape) {
			m.Game.Tone.SetPlaying(false)
			m.Game = nil
			m.State = menu.StateLevelSelect
			return nil
		}
		if err := m.Game.Update(); err != nil {
			return err
		}
		m.checkFinished()
	case menu.StateResult:
		if m.InputMgr.IsKeyJustPressed(render.KeyEnter) || m.InputMgr.IsKeyJustPressed(render.KeyEscape) {
			m.Game = nil
			m.State = menu.StateLevelSelect
		}
	}
	return nil
}

// checkFinished moves to the result screen once the level is over
func (m *Manager) checkFinished() {
	switch m.Game.Tracker.Phase() {
	case progress.PhaseWon:
		m.result = fmt.Sprintf("Level complete! %s", menu.Stars(m.Game.LastRank()))
		if m.Data.EasyMode() {
			m.result += "  (easy mode: no stars recorded)"
		}
	case progress.PhaseLost:
		m.result = "The horses won. Too many messages got through."
	default:
		return
	}
	m.State = menu.StateResult
}

// StartLevel loads the level's map and begins play
func (m *Manager) StartLevel(sel menu.Selection) error {
	mapIdx := m.Config.MapIndex(sel.Level)
	world, err := m.world(mapIdx)
	if err != nil {
		return err
	}

	g, err := NewGame(Setup{
		Config:     m.Config,
		Thresholds: m.Thresholds(),
		Data:       m.Data,
		Store:      m.Store,
		Tone:       m.Tone,
		Renderer:   m.Renderer,
		InputMgr:   m.InputMgr,
		World:      world,
		Rng:        m.Rng,
		Level:      sel.Level,
		Endless:    sel.Endless,
	}, m.ScreenWidth, m.ScreenHeight)
	if err != nil {
		return err
	}
	m.Game = g
	m.persist()
	return nil
}

// world loads map i, reusing a loaded graph but always drawing from a
// fresh word list
func (m *Manager) world(i int) (*World, error) {
	fsys, dir, err := m.Maps(i)
	if err != nil {
		return nil, fmt.Errorf("failed to locate map %d: %w", i, err)
	}
	w, err := LoadWorld(fsys, dir, m.Rng)
	if err != nil {
		return nil, fmt.Errorf("failed to load map %d: %w", i, err)
	}
	if cached, ok := m.worlds[i]; ok {
		w.Graph = cached.Graph
	}
	m.worlds[i] = w
	log.Info().Int("map", i).Str("dir", dir).Int("cities", len(w.Graph.Cities())).Msg("map loaded")
	return w, nil
}

func (m *Manager) toggleFullscreen() {
	m.Data.Fullscreen = !m.Data.Fullscreen
	if m.OnFullscreen != nil {
		m.OnFullscreen(m.Data.Fullscreen)
	}
	m.persist()
}

func (m *Manager) persist() {
	if m.Store == nil {
		return
	}
	if err := m.Store.Save(m.Data); err != nil {
		log.Error().Err(err).Msg("failed to write save")
	}
}

// Draw draws the current state.
func (m *Manager) Draw(screen render.Image) {
	switch m.State {
	case menu.StateLevelSelect:
		m.MainMenu.Draw(screen)
	case menu.StatePlaying:
		if m.Game != nil {
			m.Game.Draw(screen)
		}
	case menu.StateResult:
		if m.Game != nil {
			m.Game.Draw(screen)
		}
		white := color.RGBA{255, 255, 255, 255}
		cx, cy := m.ScreenWidth/2-160, m.ScreenHeight/2-20
		m.Renderer.FillRect(screen, float32(cx-20), float32(cy-20), 360, 80, color.RGBA{10, 10, 20, 220})
		m.Renderer.DrawText(screen, m.result, cx, cy, white, 1.5)
		m.Renderer.DrawText(screen, "Press Enter to return to the level menu", cx, cy+30, white, 1.0)
	}
}

// Result returns the text of the last result screen
func (m *Manager) Result() string {
	return m.result
}

// Layout handles window resize.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != m.ScreenWidth || outsideHeight != m.ScreenHeight {
		m.ScreenWidth = outsideWidth
		m.ScreenHeight = outsideHeight
		if m.MainMenu != nil {
			m.MainMenu.SetSize(outsideWidth, outsideHeight)
		}
		if m.Game != nil {
			m.Game.SetScreenSize(outsideWidth, outsideHeight)
		}
	}
	return outsideWidth, outsideHeight
}
