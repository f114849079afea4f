package sim

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/squirrel-yarn/internal/config"
	"github.com/vovakirdan/squirrel-yarn/internal/core"
)

// Camera follows the player horizontally. The player sits further left on
// screen as it speeds up, leaving more room to see what is coming.
type Camera struct {
	Offset     core.Vec2
	TargetLead float64 // world units visible ahead of the player

	cfg     config.CameraConfig
	screenW float64
	maxMult float64

	shake     *gween.Tween
	shakeAmp  float64
	shakeSign float64
}

// NewCamera creates a camera framing the player at its start position.
func NewCamera(cfg config.RunnerConfig) *Camera {
	c := &Camera{
		cfg:     cfg.Camera,
		screenW: cfg.Screen.Width,
		maxMult: cfg.Physics.MaxSpeedMultiplier,
	}
	c.Reset(cfg.Player.StartX)
	return c
}

// Reset snaps the camera to its resting position for a player at playerX.
func (c *Camera) Reset(playerX float64) {
	c.Offset = core.Vec2{X: math.Max(0, playerX-c.cfg.SlowAnchor*c.screenW)}
	c.TargetLead = (1 - c.cfg.SlowAnchor) * c.screenW
	c.shake = nil
	c.shakeAmp = 0
	c.shakeSign = 1
}

// Anchor returns the player's target screen x fraction at multiplier m.
func (c *Camera) Anchor(m float64) float64 {
	t := 0.0
	if c.maxMult > 1 {
		t = core.ClampF((m-1)/(c.maxMult-1), 0, 1)
	}
	return c.cfg.SlowAnchor + (c.cfg.FastAnchor-c.cfg.SlowAnchor)*t
}

// Update eases the offset toward the target for the player's position and
// speed. The step factor is capped at 1 so a long dt cannot overshoot.
func (c *Camera) Update(dt float64, playerX, speedMultiplier float64) {
	anchor := c.Anchor(speedMultiplier)
	c.TargetLead = (1 - anchor) * c.screenW
	target := math.Max(0, playerX-anchor*c.screenW)

	k := math.Min(1, c.cfg.Lerp*dt)
	c.Offset.X += (target - c.Offset.X) * k
	if c.Offset.X < 0 {
		c.Offset.X = 0
	}

	if c.shake != nil {
		amp, done := c.shake.Update(float32(dt))
		c.shakeAmp = float64(amp)
		c.shakeSign = -c.shakeSign
		if done {
			c.shake = nil
			c.shakeAmp = 0
		}
	}
}

// Shake starts a decaying horizontal shake. It only moves the rendered
// view, never the offset the simulation culls against.
func (c *Camera) Shake() {
	if c.cfg.ShakeAmplitude <= 0 || c.cfg.ShakeDuration <= 0 {
		return
	}
	c.shake = gween.New(float32(c.cfg.ShakeAmplitude), 0, float32(c.cfg.ShakeDuration), ease.OutQuad)
	c.shakeAmp = c.cfg.ShakeAmplitude
}

// Shaking reports whether a shake is in progress.
func (c *Camera) Shaking() bool {
	return c.shake != nil
}

// X returns the left edge of the view in world space.
func (c *Camera) X() float64 {
	return c.Offset.X
}

// ViewX returns the left edge of the rendered view, shake included.
func (c *Camera) ViewX() float64 {
	return c.Offset.X + c.shakeAmp*c.shakeSign
}

// ToScreen maps a world point into the rendered view.
func (c *Camera) ToScreen(p core.Vec2) core.Vec2 {
	return core.Vec2{X: p.X - c.ViewX(), Y: p.Y - c.Offset.Y}
}
