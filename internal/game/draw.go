package game

import (
	"image/color"

	"github.com/jacksimmons/morse-vs-horse/internal/core/geom"
	"github.com/jacksimmons/morse-vs-horse/internal/level"
	"github.com/jacksimmons/morse-vs-horse/internal/render"
	"github.com/jacksimmons/morse-vs-horse/internal/spawn"
)

var (
	backgroundColor = color.RGBA{34, 52, 40, 255}
	roadColor       = color.RGBA{140, 120, 90, 255}
	telegraphColor  = color.RGBA{230, 210, 90, 255}
	cityColor       = color.RGBA{200, 200, 210, 255}
	activeCityColor = color.RGBA{255, 160, 60, 255}
	targetColor     = color.RGBA{255, 255, 120, 255}
)

// messengerColors by messenger type
var messengerColors = map[level.MessengerType]color.RGBA{
	level.Boss:   {200, 60, 200, 255},
	level.Person: {90, 160, 255, 255},
	level.Pony:   {220, 140, 70, 255},
	level.Train:  {240, 70, 70, 255},
}

// Draw renders the game to the screen.
func (g *Game) Draw(screen render.Image) {
	screen.Fill(backgroundColor)

	g.drawRoads(screen)
	g.drawTelegraph(screen)
	g.drawCities(screen)
	g.drawMessengers(screen)

	g.GameHUD.Draw(screen)
	g.drawUI(screen)
}

func (g *Game) drawRoads(screen render.Image) {
	for _, e := range g.World.Graph.Edges() {
		drawPolyline(g.Renderer, screen, e.Points, 3, roadColor)
	}
}

// drawTelegraph highlights the roads the selected messenger rides
func (g *Game) drawTelegraph(screen render.Image) {
	if g.target == nil {
		return
	}
	edges := g.World.Graph.Edges()
	for _, i := range g.World.Graph.EdgesCoveredBy(g.target.Route().Path) {
		drawPolyline(g.Renderer, screen, edges[i].Points, 5, telegraphColor)
	}
}

func (g *Game) drawCities(screen render.Image) {
	for _, s := range g.Pool.Slots() {
		x, y := float32(s.City.Pos.X), float32(s.City.Pos.Y)
		clr := cityColor
		if s.Active() {
			clr = activeCityColor
		}
		g.Renderer.FillCircle(screen, x, y, 10, clr)
		if s == g.target {
			g.Renderer.StrokeCircle(screen, x, y, 15, 2, targetColor)
		}
		g.Renderer.DrawText(screen, s.City.Name, int(x)-3*len(s.City.Name), int(y)+14, cityColor, 1)
	}
}

func (g *Game) drawMessengers(screen render.Image) {
	for _, s := range g.Pool.Slots() {
		m := s.Messenger()
		if !s.Active() || m == nil || m.Done() {
			continue
		}
		p := m.Position()
		g.Renderer.FillCircle(screen, float32(p.X), float32(p.Y), 7, messengerColor(s))
		if s == g.target {
			g.Renderer.StrokeCircle(screen, float32(p.X), float32(p.Y), 11, 2, targetColor)
		}
		// Facing marker
		dx := float32(6)
		if m.FacingLeft() {
			dx = -6
		}
		g.Renderer.StrokeLine(screen, float32(p.X), float32(p.Y), float32(p.X)+dx, float32(p.Y)-4, 2, targetColor)
	}
}

func messengerColor(s *spawn.Slot) color.RGBA {
	if c, ok := messengerColors[s.Difficulty().Messenger]; ok {
		return c
	}
	return cityColor
}

func (g *Game) drawUI(screen render.Image) {
	// Draw on-screen messages
	y := 140.0
	for _, msg := range g.Messages {
		alpha := uint8(255 * (msg.TimeLeft / msg.MaxTime))
		g.Renderer.DrawText(screen, msg.Text, 20, int(y), color.RGBA{255, 255, 255, alpha}, 1.0)
		y += 20
	}
}

func drawPolyline(r render.Renderer, screen render.Image, pts []geom.Point, width float32, clr color.Color) {
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		r.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, clr)
	}
}
