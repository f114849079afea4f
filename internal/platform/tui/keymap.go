package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/squirrel-yarn/internal/core"
)

// steerHold is how long a steering key counts as held after its last
// press. Terminals report repeats but never releases.
const steerHold = 150 * time.Millisecond

// KeyMap defines the key bindings for a run.
type KeyMap struct {
	Jump    key.Binding
	Left    key.Binding
	Right   key.Binding
	Pause   key.Binding
	Restart key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Jump, k.Left, k.Right, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Jump, k.Left, k.Right},
		{k.Pause, k.Restart, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Jump: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space/w", "jump"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("a", "slow down"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("d", "speed up"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// inputState accumulates key presses between ticks and turns them into
// the intents for the next tick.
type inputState struct {
	jump       bool
	pause      bool
	restart    bool
	leftUntil  time.Time
	rightUntil time.Time
}

// press records a key. It returns true for a quit request.
func (s *inputState) press(keys KeyMap, msg tea.KeyMsg, now time.Time) bool {
	switch {
	case key.Matches(msg, keys.Quit):
		return true
	case key.Matches(msg, keys.Jump):
		s.jump = true
	case key.Matches(msg, keys.Left):
		s.leftUntil = now.Add(steerHold)
		s.rightUntil = time.Time{}
	case key.Matches(msg, keys.Right):
		s.rightUntil = now.Add(steerHold)
		s.leftUntil = time.Time{}
	case key.Matches(msg, keys.Pause):
		s.pause = true
	case key.Matches(msg, keys.Restart):
		s.restart = true
	}
	return false
}

// intents drains the edge-triggered inputs and reports held steering as
// of now.
func (s *inputState) intents(now time.Time) core.Intents {
	in := core.Intents{
		JumpPressed: s.jump,
		Pause:       s.pause,
		SteerLeft:   now.Before(s.leftUntil),
		SteerRight:  now.Before(s.rightUntil),
	}
	s.jump = false
	s.pause = false
	return in
}
