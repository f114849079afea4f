package runner

import (
	"fmt"
	"math"

	"github.com/vovakirdan/squirrel-yarn/internal/core"
)

// Visual characters for rendering
const (
	GrassChar    = '▀'
	SoilChar     = '▒'
	PlatformChar = '▬'
	BushChar     = '♣'
	TrampledChar = '·'
	SignChar     = '⚑'
	PoleChar     = '│'
	BodyChar     = '█'
	TailChar     = '@'
)

var yarnGlyphs = [yarnFrames]rune{'●', '◐', '◓', '◑'}

// viewport maps world space onto screen cells below the HUD row.
type viewport struct {
	x      float64
	sx, sy float64
	top    int
}

func (v viewport) rect(b core.AABB) core.Rect {
	x0 := int(math.Floor((b.X - v.x) * v.sx))
	x1 := int(math.Ceil((b.Right() - v.x) * v.sx))
	y0 := v.top + int(math.Floor(b.Y*v.sy))
	y1 := v.top + int(math.Ceil(b.Bottom()*v.sy))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

// Render draws the run into dst, scaled to fit its size.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	const hud = 1
	v := viewport{
		x:   g.camera.ViewX(),
		sx:  float64(dst.Width()) / g.cfg.Screen.Width,
		sy:  float64(dst.Height()-hud) / g.cfg.Screen.Height,
		top: hud,
	}

	for _, r := range g.Renderables() {
		cells := v.rect(r.Box)
		switch r.Kind {
		case RenderGround:
			dst.FillRect(cells, SoilChar, core.ColorBrown)
			dst.FillRect(core.NewRect(cells.X, cells.Y, cells.W, 1), GrassChar, core.ColorGreen)
		case RenderPlatform:
			dst.FillRect(core.NewRect(cells.X, cells.Y, cells.W, 1), PlatformChar, core.ColorBrown)
		case RenderMilestone:
			dst.FillRect(core.NewRect(cells.X, cells.Y, 1, cells.H), PoleChar, core.ColorWhite)
			dst.SetColored(cells.X, cells.Y, SignChar, core.ColorYellow)
		case RenderBush:
			if r.AnimFrame == 1 {
				dst.FillRect(core.NewRect(cells.X, cells.Bottom()-1, cells.W, 1), TrampledChar, core.ColorGray)
			} else {
				dst.FillRect(cells, BushChar, core.ColorBrightGreen)
			}
		case RenderYarn:
			color := core.ColorByName(r.SpriteKey[len("yarn_"):])
			dst.SetColored(cells.X+cells.W/2, cells.Y+cells.H/2, yarnGlyphs[r.AnimFrame%yarnFrames], color)
		case RenderPlayer:
			g.drawSquirrel(dst, cells, r)
		}
	}

	g.drawHUD(dst)

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.over {
		drawCenteredMessage(dst, "GAME OVER", g.overSubtitle())
	}
}

// drawSquirrel renders the player: a body block, a tail on the trailing
// side and legs that alternate with the run frame.
func (g *Game) drawSquirrel(dst *core.Screen, cells core.Rect, r Renderable) {
	color := core.ColorOrange
	if r.SpriteKey == "squirrel_hit" && g.tick%6 < 3 {
		color = core.ColorBrightRed
	}
	dst.FillRect(cells, BodyChar, color)

	tailX := cells.X - 1
	if g.player.Facing < 0 {
		tailX = cells.Right()
	}
	dst.SetColored(tailX, cells.Y, TailChar, core.ColorBrown)

	if r.SpriteKey == "squirrel_run" && cells.W >= 2 {
		legs := cells.Bottom() - 1
		if r.AnimFrame%2 == 0 {
			dst.SetColored(cells.X, legs, '╱', color)
			dst.SetColored(cells.Right()-1, legs, '╲', color)
		} else {
			dst.SetColored(cells.X, legs, '╲', color)
			dst.SetColored(cells.Right()-1, legs, '╱', color)
		}
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	s := g.Snapshot()
	left := fmt.Sprintf(" Stash: %d  Dist: %.0fm  Tier: %s ", s.Stash, s.Distance, s.Tier)
	dst.DrawText(1, 0, left)

	right := fmt.Sprintf(" x%.2f  Best: %d / %.0fm ", s.SpeedMultiplier, s.BestStash, s.BestDistance)
	dst.DrawText(dst.Width()-len([]rune(right))-1, 0, right)
}

func (g *Game) overSubtitle() string {
	why := "fell into a gap"
	if g.cause == CauseBush {
		why = "hit a bush empty-pawed"
	}
	return fmt.Sprintf("%s  |  Stash %d  %.0fm  |  R to restart", why, g.progress.Stash, g.progress.Distance)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)
	dst.DrawText(box.X+(boxW-len([]rune(title)))/2, box.Y+1, title)
	dst.DrawText(box.X+(boxW-len([]rune(subtitle)))/2, box.Y+3, subtitle)
}
