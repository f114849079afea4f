package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/squirrel-yarn/internal/core"
	"github.com/vovakirdan/squirrel-yarn/internal/games/runner"
)

// Game is the simulation surface the frame pump drives.
type Game interface {
	Reset(runtime core.RuntimeConfig)
	Update(dt float64, in core.Intents) runner.FrameEvents
	Render(dst *core.Screen)
	State() core.GameState
	FinishRun() error
}

// Model is the Bubble Tea model for a run.
type Model struct {
	game     Game
	screen   *core.Screen
	config   core.RuntimeConfig
	keys     KeyMap
	help     help.Model
	input    inputState
	logger   *log.Logger
	now      func() time.Time
	last     time.Time
	frame    int
	quitting bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game Game, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.Default()
	}

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, max(1, cfg.ScreenH-1)),
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		logger: logger,
		now:    time.Now,
	}
}

// Init starts the run and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.input.press(m.keys, msg, m.now()) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(1, msg.Height-1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		m.step(time.Time(msg))
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// step advances the game by the wall time since the previous tick.
func (m *Model) step(now time.Time) {
	dt := 1 / float64(m.config.TickRate)
	if !m.last.IsZero() {
		dt = now.Sub(m.last).Seconds()
	}
	m.last = now
	m.frame++

	if m.input.restart {
		m.input.restart = false
		if m.game.State().GameOver {
			m.config.Seed = time.Now().UnixNano()
			m.game.Reset(m.config)
			m.input = inputState{}
			return
		}
	}

	ev := m.game.Update(dt, m.input.intents(now))
	if ev.GameOver {
		if err := m.game.FinishRun(); err != nil {
			m.logger.Error("saving run failed", "err", err)
		}
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen, m.frame/4) + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program for game.
func Run(game Game, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
