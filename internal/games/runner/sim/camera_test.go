package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/squirrel-yarn/internal/config"
)

func TestCameraConvergesToAnchor(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	c := NewCamera(cfg)

	const x = 5000.0
	for i := 0; i < 600; i++ {
		c.Update(dt, x, 1)
	}
	want := x - cfg.Camera.SlowAnchor*cfg.Screen.Width
	if math.Abs(c.X()-want) > 1e-3 {
		t.Errorf("offset = %v, want %v", c.X(), want)
	}
}

func TestCameraLeadGrowsWithSpeed(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	c := NewCamera(cfg)

	slow := c.Anchor(1)
	fast := c.Anchor(cfg.Physics.MaxSpeedMultiplier)
	if slow != cfg.Camera.SlowAnchor || fast != cfg.Camera.FastAnchor {
		t.Fatalf("anchors = %v/%v", slow, fast)
	}
	if mid := c.Anchor(2); mid <= fast || mid >= slow {
		t.Errorf("anchor at 2x = %v, want between %v and %v", mid, fast, slow)
	}

	c.Update(dt, 1000, cfg.Physics.MaxSpeedMultiplier)
	if want := (1 - cfg.Camera.FastAnchor) * cfg.Screen.Width; c.TargetLead != want {
		t.Errorf("lead = %v, want %v", c.TargetLead, want)
	}
}

func TestCameraNoOvershootOnLongFrame(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	c := NewCamera(cfg)

	c.Update(10, 3000, 1)
	want := 3000 - cfg.Camera.SlowAnchor*cfg.Screen.Width
	if c.X() > want {
		t.Errorf("offset %v overshot target %v", c.X(), want)
	}
}

func TestCameraNeverNegative(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	c := NewCamera(cfg)
	c.Update(dt, 0, 1)
	if c.X() < 0 {
		t.Errorf("offset = %v", c.X())
	}
}

func TestCameraShakeDecays(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	c := NewCamera(cfg)
	c.Shake()
	if !c.Shaking() {
		t.Fatal("shake did not start")
	}

	ticks := int(cfg.Camera.ShakeDuration/dt) + 5
	for i := 0; i < ticks; i++ {
		c.Update(dt, cfg.Player.StartX, 1)
		if c.ViewX() != c.X() && math.Abs(c.ViewX()-c.X()) > cfg.Camera.ShakeAmplitude {
			t.Fatalf("shake %v exceeds amplitude", c.ViewX()-c.X())
		}
	}
	if c.Shaking() || c.ViewX() != c.X() {
		t.Error("shake should have finished")
	}
}
