package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sokoban/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
		quit     bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"w", runeKey("w"), core.ActionUp, false},
		{"k", runeKey("k"), core.ActionUp, false},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"s", runeKey("s"), core.ActionDown, false},
		{"j", runeKey("j"), core.ActionDown, false},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"a", runeKey("a"), core.ActionLeft, false},
		{"h", runeKey("h"), core.ActionLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"d", runeKey("d"), core.ActionRight, false},
		{"l", runeKey("l"), core.ActionRight, false},
		{"u", runeKey("u"), core.ActionUndo, false},
		{"z", runeKey("z"), core.ActionUndo, false},
		{"ctrl+z", tea.KeyMsg{Type: tea.KeyCtrlZ}, core.ActionUndo, false},
		{"r", runeKey("r"), core.ActionRestart, false},
		{"n", runeKey("n"), core.ActionNext, false},
		{"]", runeKey("]"), core.ActionNext, false},
		{"p", runeKey("p"), core.ActionPrev, false},
		{"[", runeKey("["), core.ActionPrev, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"b", runeKey("b"), core.ActionBack, false},
		{"q", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey("x"), core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.expected {
				t.Errorf("MapKey(%q) action = %v, expected %v", tc.msg.String(), action, tc.expected)
			}
			if quit != tc.quit {
				t.Errorf("MapKey(%q) quit = %v, expected %v", tc.msg.String(), quit, tc.quit)
			}
		})
	}
}

func TestKeyMapperFrame(t *testing.T) {
	km := NewKeyMapper()

	frame, quit := km.Frame(runeKey("u"))
	if quit {
		t.Error("undo should not be a quit request")
	}
	if !frame.Has(core.ActionUndo) {
		t.Error("frame should contain ActionUndo")
	}

	frame, _ = km.Frame(runeKey("x"))
	if !frame.Empty() {
		t.Error("unbound key should give an empty frame")
	}

	frame, quit = km.Frame(runeKey("q"))
	if !quit || !frame.Has(core.ActionQuit) {
		t.Error("q should be a quit request")
	}
}

func TestMapMenuKey(t *testing.T) {
	keys := DefaultMenuKeyMap()

	tests := []struct {
		name       string
		msg        tea.KeyMsg
		confirming bool
		expected   MenuAction
	}{
		{"up", tea.KeyMsg{Type: tea.KeyUp}, false, MenuActionUp},
		{"k", runeKey("k"), false, MenuActionUp},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, false, MenuActionDown},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, false, MenuActionSelect},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, false, MenuActionSelect},
		{"reset", runeKey("x"), false, MenuActionReset},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, false, MenuActionNextPack},
		{"shift+tab", tea.KeyMsg{Type: tea.KeyShiftTab}, false, MenuActionPrevPack},
		{"progress", runeKey("p"), false, MenuActionProgress},
		{"quit", runeKey("q"), false, MenuActionQuit},
		{"y outside confirm", runeKey("y"), false, MenuActionNone},
		{"yes", runeKey("y"), true, MenuActionYes},
		{"no", runeKey("n"), true, MenuActionNo},
		{"esc cancels", tea.KeyMsg{Type: tea.KeyEsc}, true, MenuActionNo},
		{"q ignored while confirming", runeKey("q"), true, MenuActionNone},
		{"ctrl+c while confirming", tea.KeyMsg{Type: tea.KeyCtrlC}, true, MenuActionQuit},
		{"navigation ignored while confirming", tea.KeyMsg{Type: tea.KeyDown}, true, MenuActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := MapMenuKey(keys, tc.msg, tc.confirming); got != tc.expected {
				t.Errorf("MapMenuKey(%q, %v) = %v, expected %v", tc.msg.String(), tc.confirming, got, tc.expected)
			}
		})
	}
}
