package menu

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/jacksimmons/morse-vs-horse/internal/level"
	"github.com/jacksimmons/morse-vs-horse/internal/render"
	"github.com/jacksimmons/morse-vs-horse/internal/save"
)

// GameState represents the current state of the game.
type GameState int

const (
	StateLevelSelect GameState = iota
	StatePlaying
	StateResult
)

// Selection is a level chosen from the menu.
type Selection struct {
	Level   int
	Endless bool
}

// Layout of the level list
const (
	listX       = 50
	listY       = 110
	entryHeight = 30
	entryWidth  = 420
)

// MainMenu is the level-select screen.
type MainMenu struct {
	data         *save.Data
	selected     int
	endless      bool
	renderer     render.Renderer
	input        render.InputManager
	screenWidth  int
	screenHeight int
}

// NewMainMenu creates a level-select menu over the player's progress.
// The cursor starts on the last level played.
func NewMainMenu(data *save.Data, r render.Renderer, input render.InputManager, width, height int) *MainMenu {
	m := &MainMenu{
		data:         data,
		renderer:     r,
		input:        input,
		screenWidth:  width,
		screenHeight: height,
	}
	m.selected = clampLevel(data.LevelSelected)
	m.endless = data.EndlessSelected && data.EndlessUnlocked(m.selected)
	return m
}

// SetSize updates the screen dimensions.
func (m *MainMenu) SetSize(width, height int) {
	m.screenWidth = width
	m.screenHeight = height
}

// Selected returns the highlighted level and endless flag.
func (m *MainMenu) Selected() Selection {
	return Selection{Level: m.selected, Endless: m.endless}
}

// Update updates the menu state based on user input.
// Returns true if an unlocked level was started.
func (m *MainMenu) Update() (selected bool, selection Selection) {
	if m.input.IsMouseButtonJustPressed(render.MouseButtonLeft) {
		mx, my := m.input.GetCursorPosition()
		for i := 0; i < level.Count(); i++ {
			r := rect{x: listX, y: listY + i*entryHeight, w: entryWidth, h: entryHeight - 5}
			if !pointInRect(mx, my, r) {
				continue
			}
			if i == m.selected {
				return m.start()
			}
			m.move(i)
			break
		}
	}

	// Keyboard navigation
	if m.input.IsKeyJustPressed(render.KeyUp) {
		m.move(m.selected - 1)
	}
	if m.input.IsKeyJustPressed(render.KeyDown) {
		m.move(m.selected + 1)
	}
	if m.input.IsKeyJustPressed(render.KeyE) {
		m.endless = !m.endless && m.data.EndlessUnlocked(m.selected)
	}
	if m.input.IsKeyJustPressed(render.KeyEnter) || m.input.IsKeyJustPressed(render.KeySpace) {
		return m.start()
	}

	return false, Selection{}
}

func (m *MainMenu) move(i int) {
	m.selected = clampLevel(i)
	if m.endless && !m.data.EndlessUnlocked(m.selected) {
		m.endless = false
	}
}

func (m *MainMenu) start() (bool, Selection) {
	if !m.Playable(m.selected, m.endless) {
		return false, Selection{}
	}
	m.data.LevelSelected = m.selected
	m.data.EndlessSelected = m.endless
	return true, m.Selected()
}

// Playable reports whether a level may be started
func (m *MainMenu) Playable(i int, endless bool) bool {
	if i < 0 || i >= level.Count() {
		return false
	}
	if endless {
		return m.data.EndlessUnlocked(i)
	}
	return m.data.Unlocked(i)
}

func clampLevel(i int) int {
	if i < 0 {
		return 0
	}
	if n := level.Count(); i >= n {
		return n - 1
	}
	return i
}

// Stars renders a rank as filled and empty stars
func Stars(rank int) string {
	if rank < 0 {
		rank = 0
	}
	if rank > 3 {
		rank = 3
	}
	return strings.Repeat("*", rank) + strings.Repeat(".", 3-rank)
}

// Draw renders the menu to the screen.
func (m *MainMenu) Draw(screen render.Image) {
	// Clear screen with dark background
	screen.Fill(color.RGBA{20, 20, 30, 255})

	// Draw title
	titleColor := color.RGBA{255, 255, 255, 255}
	m.renderer.DrawText(screen, "MORSE VS HORSE", listX, 30, titleColor, 3.0)
	mode := "Campaign"
	if m.endless {
		mode = "Endless"
	}
	m.renderer.DrawText(screen, "Select a Level  ("+mode+")", listX, 70, titleColor, 1.5)

	for i := 0; i < level.Count(); i++ {
		y := listY + i*entryHeight
		itemColor := color.RGBA{180, 180, 180, 255}
		if !m.Playable(i, m.endless) {
			itemColor = color.RGBA{90, 90, 90, 255}
		}
		if i == m.selected {
			itemColor = color.RGBA{255, 255, 100, 255}
			// Draw selection indicator
			m.renderer.DrawText(screen, ">", listX-16, y, itemColor, 1.2)
		}

		name := level.DisplayName(i, level.Select(i, m.endless))
		text := fmt.Sprintf("%-32s %s", name, Stars(m.data.Rank(i)))
		if !m.Playable(i, m.endless) {
			text = fmt.Sprintf("%-32s [locked]", name)
		}
		m.renderer.DrawText(screen, text, listX, y, itemColor, 1.2)
	}

	// Draw instructions
	instructionY := m.screenHeight - 80
	instructionColor := color.RGBA{150, 150, 150, 255}
	m.renderer.DrawText(screen, "Up/Down or click to choose a level. Enter or click again to start.", 20, instructionY, instructionColor, 1.0)
	m.renderer.DrawText(screen, "E toggles endless mode (unlocked by beating the level).", 20, instructionY+20, instructionColor, 1.0)
	if m.data.EasyMode() {
		m.renderer.DrawText(screen, "Easy mode: completions do not earn stars.", 20, instructionY+40, instructionColor, 1.0)
	}
}

// Helper types and functions

type rect struct {
	x, y, w, h int
}

func pointInRect(px, py int, r rect) bool {
	return px >= r.x && px <= r.x+r.w && py >= r.y && py <= r.y+r.h
}
