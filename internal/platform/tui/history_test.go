package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/squirrel-yarn/internal/core"
	"github.com/vovakirdan/squirrel-yarn/internal/storage"
)

type fakeRuns struct {
	orders []storage.RunOrder
	runs   []storage.RunResult
	err    error
}

func (f *fakeRuns) TopRuns(order storage.RunOrder, limit int) ([]storage.RunResult, error) {
	f.orders = append(f.orders, order)
	if len(f.runs) > limit {
		return f.runs[:limit], f.err
	}
	return f.runs, f.err
}

func TestHistoryCyclesOrderings(t *testing.T) {
	runs := &fakeRuns{runs: []storage.RunResult{
		{Stash: 12, Distance: 340, Duration: 42 * time.Second, Cause: "gap", CreatedAt: time.Now()},
	}}
	m := NewHistoryModel(runs, 100, 30)

	tab := tea.KeyMsg{Type: tea.KeyTab}
	for i := 0; i < 3; i++ {
		next, _ := m.Update(tab)
		m = next.(HistoryModel)
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(HistoryModel)

	want := []storage.RunOrder{storage.ByStash, storage.ByDistance, storage.ByRecent, storage.ByStash, storage.ByRecent}
	if len(runs.orders) != len(want) {
		t.Fatalf("orders = %v, want %v", runs.orders, want)
	}
	for i := range want {
		if runs.orders[i] != want[i] {
			t.Errorf("orders[%d] = %v, want %v", i, runs.orders[i], want[i])
		}
	}

	view := m.View()
	if !strings.Contains(view, "Recent") || !strings.Contains(view, "340m") {
		t.Errorf("view missing content:\n%s", view)
	}
}

func TestHistoryEmptyAndError(t *testing.T) {
	m := NewHistoryModel(&fakeRuns{}, 60, 20)
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("empty board should say so")
	}

	m = NewHistoryModel(&fakeRuns{err: errors.New("locked")}, 60, 20)
	if !strings.Contains(m.View(), "locked") {
		t.Error("error should be shown")
	}
}

func TestRenderScreenRainbow(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.SetColored(0, 0, 'o', core.ColorRainbow)
	s.SetColored(1, 0, 'o', core.ColorRainbow)
	s.DrawText(0, 1, "ab")

	out := RenderScreen(s, 0)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if strings.Count(lines[0], "o") != 2 || !strings.Contains(lines[1], "ab") {
		t.Errorf("rendered = %q", out)
	}
}
