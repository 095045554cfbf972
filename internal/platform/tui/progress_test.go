package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestProgressRows(t *testing.T) {
	store := openTestStore(t)
	for _, moves := range []int{40, 24} {
		if _, err := store.MarkCompleted(testPlayer, "classic", 1, moves); err != nil {
			t.Fatalf("MarkCompleted() failed: %v", err)
		}
	}

	m := NewProgressModel(store, testPlayer, "classic", 100, 30, nil)
	rows := m.Rows()
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}

	first := rows[0]
	if first[0] != "1" || first[2] != markCompleted || first[3] != "24" || first[4] != "2" {
		t.Errorf("row 1 = %v, expected completed with best 24 over 2 plays", first)
	}
	if first[5] == "-" {
		t.Error("row 1 should carry the last completion time")
	}

	second := rows[1]
	if second[2] != markLocked || second[3] != "-" || second[4] != "0" {
		t.Errorf("row 2 = %v, expected unsolved", second)
	}

	if !strings.Contains(m.View(), "1/5 levels solved, 2 plays, 24 moves") {
		t.Errorf("summary missing from view:\n%s", m.View())
	}
}

func TestProgressShowsRecentCompletions(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.MarkCompleted(testPlayer, "tutorial", 2, 7); err != nil {
		t.Fatalf("MarkCompleted() failed: %v", err)
	}
	// Another player's solves are not listed.
	if _, err := store.MarkCompleted("bob", "classic", 3, 50); err != nil {
		t.Fatalf("MarkCompleted() failed: %v", err)
	}

	m := NewProgressModel(store, testPlayer, "classic", 100, 30, nil)
	view := m.View()
	if !strings.Contains(view, "Recent: tutorial #2 (7 moves)") {
		t.Errorf("recent completions missing from view:\n%s", view)
	}
	if strings.Contains(view, "classic #3") {
		t.Error("completions of other players should not be listed")
	}

	empty := NewProgressModel(openTestStore(t), testPlayer, "classic", 100, 30, nil)
	if strings.Contains(empty.View(), "Recent:") {
		t.Error("no recent line expected without completions")
	}
}

func TestProgressIgnoresLevelsOutsidePack(t *testing.T) {
	store := openTestStore(t)
	for _, id := range []int{1, 99} {
		if _, err := store.MarkCompleted(testPlayer, "tutorial", id, 3); err != nil {
			t.Fatalf("MarkCompleted() failed: %v", err)
		}
	}

	m := NewProgressModel(store, testPlayer, "tutorial", 100, 30, nil)
	if !strings.Contains(m.View(), "1/4 levels solved, 1 plays") {
		t.Errorf("summary should only count levels of the pack:\n%s", m.View())
	}
}

func TestProgressWithoutStore(t *testing.T) {
	m := NewProgressModel(nil, testPlayer, "tutorial", 60, 20, nil)

	if len(m.Rows()) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(m.Rows()))
	}
	if !strings.Contains(m.View(), "0/4 levels solved") {
		t.Error("view should report no progress")
	}
}

func TestProgressCyclesPacks(t *testing.T) {
	m := NewProgressModel(nil, testPlayer, "classic", 100, 30, nil)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ProgressModel)
	if m.PackID() != "tutorial" {
		t.Errorf("tab: pack = %s, expected tutorial", m.PackID())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(ProgressModel)
	if m.PackID() != "classic" {
		t.Errorf("left: pack = %s, expected classic", m.PackID())
	}
}

func TestProgressBackAndQuit(t *testing.T) {
	m := NewProgressModel(nil, testPlayer, "classic", 100, 30, nil)

	next, _ := m.Update(runeKey("b"))
	if !next.(ProgressModel).IsGoingBack() {
		t.Error("b should go back")
	}

	next, cmd := m.Update(runeKey("q"))
	if !next.(ProgressModel).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
}

func TestProgressNarrowLayout(t *testing.T) {
	m := NewProgressModel(nil, testPlayer, "classic", 100, 30, nil)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 50, Height: 20})
	m = next.(ProgressModel)
	if m.showSidebar {
		t.Error("sidebar should be hidden on narrow terminals")
	}
	if strings.Contains(m.View(), "Packs") {
		t.Error("narrow layout should not render the sidebar")
	}
}
