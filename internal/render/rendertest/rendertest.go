// Package rendertest provides a headless renderer and scripted input for
// tests of code that draws or reads the keyboard.
package rendertest

import (
	"image"
	"image/color"

	"github.com/jacksimmons/morse-vs-horse/internal/render"
)

// Image is a blank surface of fixed size
type Image struct {
	W, H int
}

func (i *Image) Bounds() image.Rectangle { return image.Rect(0, 0, i.W, i.H) }
func (i *Image) Size() (int, int)        { return i.W, i.H }
func (i *Image) Fill(color.Color)        {}
func (i *Image) Clear()                  {}

// Renderer records what was drawn
type Renderer struct {
	Texts   []string
	Circles int
	Lines   int
	Rects   int
}

func (r *Renderer) FillCircle(render.Image, float32, float32, float32, color.Color) { r.Circles++ }

func (r *Renderer) StrokeCircle(render.Image, float32, float32, float32, float32, color.Color) {
	r.Circles++
}

func (r *Renderer) StrokeLine(render.Image, float32, float32, float32, float32, float32, color.Color) {
	r.Lines++
}

func (r *Renderer) FillRect(render.Image, float32, float32, float32, float32, color.Color) { r.Rects++ }

func (r *Renderer) DrawText(_ render.Image, text string, _, _ int, _ color.Color, _ float64) {
	r.Texts = append(r.Texts, text)
}

func (r *Renderer) MeasureText(text string, scale float64) (int, int) {
	return int(float64(len(text)) * 6 * scale), int(16 * scale)
}

// Reset forgets everything drawn
func (r *Renderer) Reset() {
	*r = Renderer{}
}

// Input is keyboard and mouse state set by the test. Just-pressed state
// lasts until EndFrame.
type Input struct {
	Held      map[render.Key]bool
	Pressed   map[render.Key]bool
	MouseX    int
	MouseY    int
	MouseHeld bool
	clicked   bool
}

// NewInput returns input with nothing pressed
func NewInput() *Input {
	return &Input{
		Held:    make(map[render.Key]bool),
		Pressed: make(map[render.Key]bool),
	}
}

// Press marks key as just pressed for one frame
func (in *Input) Press(key render.Key) { in.Pressed[key] = true }

// Click marks a left click at (x, y) for one frame
func (in *Input) Click(x, y int) {
	in.MouseX, in.MouseY = x, y
	in.clicked = true
}

// EndFrame clears one-frame state
func (in *Input) EndFrame() {
	clear(in.Pressed)
	in.clicked = false
}

func (in *Input) IsKeyPressed(key render.Key) bool     { return in.Held[key] }
func (in *Input) IsKeyJustPressed(key render.Key) bool { return in.Pressed[key] }
func (in *Input) GetCursorPosition() (int, int)        { return in.MouseX, in.MouseY }

func (in *Input) IsMouseButtonPressed(button render.MouseButton) bool {
	return button == render.MouseButtonLeft && (in.MouseHeld || in.clicked)
}

func (in *Input) IsMouseButtonJustPressed(button render.MouseButton) bool {
	return button == render.MouseButtonLeft && in.clicked
}
