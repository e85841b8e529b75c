// Package hud draws the in-level overlay: lives, timers, the selected
// message and its Morse input, and the lookup-table help pages.
package hud

import (
	"fmt"
	"image/color"

	"github.com/jacksimmons/morse-vs-horse/internal/core/morse"
	"github.com/jacksimmons/morse-vs-horse/internal/render"
)

// HUDConfig defines what to display in the HUD
type HUDConfig struct {
	ShowTimers bool    `json:"show_timers"` // Show level and messenger timers
	ShowHelp   bool    `json:"show_help"`   // Show the Morse help page
	Position   string  `json:"position"`    // "top-left", "top-right"
	Opacity    float64 `json:"opacity"`     // Background opacity (0-1)
}

// DefaultConfig returns a sensible default HUD configuration
func DefaultConfig() *HUDConfig {
	return &HUDConfig{
		ShowTimers: true,
		ShowHelp:   true,
		Position:   "top-left",
		Opacity:    0.7,
	}
}

// State is everything the HUD shows for one frame
type State struct {
	Level     string
	LivesLeft int
	MaxLives  int
	Elapsed   float64
	Round     int // Completed endless rounds; 0 hides the readout

	HasTarget   bool
	TargetText  string
	TargetMorse string  // Shown in easy mode only
	Remaining   float64 // Seconds until the target's messenger arrives
	Input       string  // Morse keyed so far
	InputError  bool

	EasyMode bool
	HelpPage int
}

// HUD manages the heads-up display
type HUD struct {
	config       *HUDConfig
	renderer     render.Renderer
	screenWidth  int
	screenHeight int
	panelWidth   int
	state        State
}

// New creates a new HUD with the given configuration
func New(config *HUDConfig, r render.Renderer, screenWidth, screenHeight int) *HUD {
	if config == nil {
		config = DefaultConfig()
	}
	return &HUD{
		config:       config,
		renderer:     r,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		panelWidth:   260,
	}
}

// SetState replaces the displayed values
func (h *HUD) SetState(s State) {
	h.state = s
}

// SetScreenSize updates the screen dimensions
func (h *HUD) SetScreenSize(width, height int) {
	h.screenWidth = width
	h.screenHeight = height
}

var (
	textColor  = color.RGBA{255, 255, 255, 255}
	dimColor   = color.RGBA{170, 170, 170, 255}
	lifeColor  = color.RGBA{220, 60, 60, 255}
	lostColor  = color.RGBA{70, 40, 40, 255}
	errorColor = color.RGBA{255, 90, 90, 255}
	okColor    = color.RGBA{120, 230, 120, 255}
)

// Draw renders the HUD to the screen
func (h *HUD) Draw(screen render.Image) {
	x, y := h.calculatePosition()
	s := h.state

	lines := h.statusLines()
	h.drawPanel(screen, x, y, 20+len(lines)*16+24)

	cy := y + 8
	h.renderer.DrawText(screen, s.Level, x+8, cy, textColor, 1)
	cy += 20
	for i := 0; i < s.MaxLives; i++ {
		clr := lostColor
		if i < s.LivesLeft {
			clr = lifeColor
		}
		h.renderer.FillCircle(screen, float32(x+16+i*20), float32(cy+6), 6, clr)
	}
	cy += 20
	for _, line := range lines {
		h.renderer.DrawText(screen, line, x+8, cy, dimColor, 1)
		cy += 16
	}

	h.drawInput(screen)
	if h.config.ShowHelp {
		h.drawHelp(screen)
	}
}

// statusLines returns the timer readouts below the lives row
func (h *HUD) statusLines() []string {
	if !h.config.ShowTimers {
		return nil
	}
	s := h.state
	lines := []string{fmt.Sprintf("Time: %s", formatSeconds(s.Elapsed))}
	if s.Round > 0 {
		lines = append(lines, fmt.Sprintf("Round: %d", s.Round+1))
	}
	if s.HasTarget {
		lines = append(lines, fmt.Sprintf("Arrives in: %s", formatSeconds(s.Remaining)))
	}
	return lines
}

// drawInput draws the target and keyed Morse along the bottom of the screen
func (h *HUD) drawInput(screen render.Image) {
	s := h.state
	y := h.screenHeight - 70

	if !s.HasTarget {
		h.renderer.DrawText(screen, "Click a city with a message to start decoding", 20, y, dimColor, 1)
		return
	}

	target := "Message: " + s.TargetText
	if s.EasyMode && s.TargetMorse != "" {
		target += "   " + s.TargetMorse
	}
	h.renderer.DrawText(screen, target, 20, y, textColor, 1)

	inputColor := okColor
	if s.InputError {
		inputColor = errorColor
	}
	h.renderer.FillRect(screen, 16, float32(y+22), 8, 8, inputColor)
	h.renderer.DrawText(screen, "Input: "+s.Input, 30, y+20, textColor, 1)
}

// drawHelp draws the current lookup-table page down the right edge
func (h *HUD) drawHelp(screen render.Image) {
	page := HelpPage(h.state.HelpPage)
	x := h.screenWidth - 120
	y := 10
	h.drawPanel(screen, x-8, y, 16*len(page)+32)
	h.renderer.DrawText(screen, "Help [L]", x, y+4, textColor, 1)
	y += 24
	for _, line := range page {
		h.renderer.DrawText(screen, line, x, y, dimColor, 1)
		y += 16
	}
}

// calculatePosition returns the top-left corner of the status panel
func (h *HUD) calculatePosition() (int, int) {
	padding := 10

	switch h.config.Position {
	case "top-right":
		return h.screenWidth - h.panelWidth - padding, padding
	default: // "top-left"
		return padding, padding
	}
}

// drawPanel draws a semi-transparent background panel
func (h *HUD) drawPanel(screen render.Image, x, y, height int) {
	alpha := uint8(h.config.Opacity * 255)
	h.renderer.FillRect(screen, float32(x), float32(y), float32(h.panelWidth), float32(height), color.RGBA{20, 20, 30, alpha})
}

func formatSeconds(s float64) string {
	if s < 0 {
		s = 0
	}
	total := int(s)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// helpRanges splits the lookup table into pages: A-M, N-Z and digits
var helpRanges = [][2]rune{{'A', 'M'}, {'N', 'Z'}, {'0', '9'}}

// HelpPageCount is the number of help pages
func HelpPageCount() int {
	return len(helpRanges)
}

// HelpPage returns the lines of help page i, wrapping circularly
func HelpPage(i int) []string {
	n := len(helpRanges)
	i = ((i % n) + n) % n
	lo, hi := helpRanges[i][0], helpRanges[i][1]

	var lines []string
	for _, r := range morse.Alphabet() {
		if r < lo || r > hi {
			continue
		}
		lines = append(lines, fmt.Sprintf("%c  %s", r, morse.EncodeChar(r)))
	}
	return lines
}
