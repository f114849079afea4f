package tui

import (
	"errors"
	"io"
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/squirrel-yarn/internal/core"
	"github.com/vovakirdan/squirrel-yarn/internal/games/runner"
)

type fakeGame struct {
	resets   []core.RuntimeConfig
	dts      []float64
	intents  []core.Intents
	overAt   int // Update call that ends the run, 0 for never
	over     bool
	finishes int
	finish   error
}

func (f *fakeGame) Reset(rt core.RuntimeConfig) {
	f.resets = append(f.resets, rt)
	f.over = false
}

func (f *fakeGame) Update(dt float64, in core.Intents) runner.FrameEvents {
	f.dts = append(f.dts, dt)
	f.intents = append(f.intents, in)
	if f.over {
		return runner.FrameEvents{}
	}
	if len(f.dts) == f.overAt {
		f.over = true
		return runner.FrameEvents{GameOver: true, Cause: runner.CauseGap}
	}
	return runner.FrameEvents{}
}

func (f *fakeGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "squirrel")
}

func (f *fakeGame) State() core.GameState {
	return core.GameState{GameOver: f.over}
}

func (f *fakeGame) FinishRun() error {
	f.finishes++
	return f.finish
}

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestModel(g *fakeGame) Model {
	rt := core.DefaultConfig()
	rt.Seed = 1
	m := NewModel(g, rt, log.New(io.Discard))
	m.now = func() time.Time { return epoch }
	return m
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func tickAt(d time.Duration) TickMsg {
	return TickMsg(epoch.Add(d))
}

func TestTickUsesWallTime(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g)

	m = send(t, m, tickAt(0))
	m = send(t, m, tickAt(20*time.Millisecond))
	send(t, m, tickAt(70*time.Millisecond))

	want := []float64{1.0 / 60, 0.02, 0.05}
	for i, dt := range g.dts {
		if math.Abs(dt-want[i]) > 1e-9 {
			t.Errorf("dt[%d] = %v, want %v", i, dt, want[i])
		}
	}
}

func TestJumpIsEdgeTriggered(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g)

	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = send(t, m, tickAt(0))
	send(t, m, tickAt(16*time.Millisecond))

	if !g.intents[0].JumpPressed || g.intents[1].JumpPressed {
		t.Errorf("jump intents = %v, %v", g.intents[0].JumpPressed, g.intents[1].JumpPressed)
	}
}

func TestSteerHeldUntilWindowExpires(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	m = send(t, m, tickAt(50*time.Millisecond))
	m = send(t, m, tickAt(100*time.Millisecond))
	send(t, m, tickAt(steerHold+time.Millisecond))

	got := []int{g.intents[0].Steer(), g.intents[1].Steer(), g.intents[2].Steer()}
	if got[0] != 1 || got[1] != 1 || got[2] != 0 {
		t.Errorf("steer = %v, want [1 1 0]", got)
	}
}

func TestOppositeSteerReplacesHold(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	send(t, m, tickAt(0))

	if s := g.intents[0].Steer(); s != -1 {
		t.Errorf("steer = %d, want -1", s)
	}
}

func TestGameOverFinishesRunOnce(t *testing.T) {
	g := &fakeGame{overAt: 2, finish: errors.New("disk full")}
	m := newTestModel(g)

	for i := 0; i < 5; i++ {
		m = send(t, m, tickAt(time.Duration(i)*16*time.Millisecond))
	}
	if g.finishes != 1 {
		t.Errorf("FinishRun called %d times, want 1", g.finishes)
	}
}

func TestRestartOnlyAfterGameOver(t *testing.T) {
	g := &fakeGame{overAt: 3}
	m := newTestModel(g)
	m.Init()

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = send(t, m, tickAt(0))
	if len(g.resets) != 1 {
		t.Fatalf("restart mid-run reset the game")
	}

	for i := 1; i < 4; i++ {
		m = send(t, m, tickAt(time.Duration(i)*16*time.Millisecond))
	}
	if !g.over {
		t.Fatal("game should be over")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	send(t, m, tickAt(time.Second))
	if len(g.resets) != 2 || g.over {
		t.Errorf("resets = %d over = %v", len(g.resets), g.over)
	}
	if g.resets[1].Seed == g.resets[0].Seed {
		t.Error("restart should pick a new seed")
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(&fakeGame{})
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil || !next.(Model).quitting {
		t.Fatal("q should quit")
	}
	if next.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestViewRendersScreenAndHelp(t *testing.T) {
	m := newTestModel(&fakeGame{})
	m = send(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})

	out := m.View()
	if !strings.Contains(out, "squirrel") || !strings.Contains(out, "jump") {
		t.Errorf("view = %q", out)
	}
	if m.screen.Height() != 9 {
		t.Errorf("screen height = %d, want 9", m.screen.Height())
	}
}
