package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sokoban/internal/core"
	"github.com/vovakirdan/sokoban/internal/games/sokoban/levels"
	"github.com/vovakirdan/sokoban/internal/logging"
	"github.com/vovakirdan/sokoban/internal/registry"
	"github.com/vovakirdan/sokoban/internal/storage"
)

// Level status markers shown in the menu.
const (
	markCompleted = "✅"
	markLocked    = "🔒"
)

// menuChrome is the number of menu rows not used by the level list: title,
// subtitle, pack tabs, scroll markers, notice and help.
const menuChrome = 10

// MenuModel is the Bubble Tea model of the level menu.
type MenuModel struct {
	packs      []registry.PackInfo
	packCursor int
	pack       *levels.Pack
	completed  map[int]bool
	best       map[int]int
	cursor     int
	scroll     int // index of the first visible level
	width      int
	height     int
	store      *storage.Store
	logger     *slog.Logger
	player     string
	config     core.RuntimeConfig
	keys       MenuKeyMap
	help       help.Model

	confirming   bool // waiting for y/n after a reset request
	notice       string
	quitting     bool
	selected     *levels.Level // set when the user picks a level
	openProgress bool
}

// NewMenuModel creates a level menu for packID. Unknown pack IDs fall back
// to the first registered pack. The cursor starts on the first level the
// player has not solved yet.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, player, packID string, logger *slog.Logger) MenuModel {
	if logger == nil {
		logger = logging.Discard()
	}

	h := help.New()
	h.Width = cfg.ScreenW

	m := MenuModel{
		packs:  registry.List(),
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		store:  store,
		logger: logger,
		player: player,
		config: cfg,
		keys:   DefaultMenuKeyMap(),
		help:   h,
	}

	for i, p := range m.packs {
		if p.ID == packID {
			m.packCursor = i
			break
		}
	}
	m.loadPack()

	if m.pack != nil && m.pack.Count() > 0 {
		first := m.pack.FirstIncomplete(m.completed)
		m.cursor = max(m.pack.Index(first.ID), 0)
	}
	m.updateScroll()

	return m
}

// loadPack opens the pack under the pack cursor and reloads progress.
func (m *MenuModel) loadPack() {
	m.pack = nil
	m.cursor = 0
	m.scroll = 0
	if len(m.packs) == 0 {
		return
	}

	pack, err := registry.Open(m.packs[m.packCursor].ID)
	if err != nil {
		m.logger.Warn("could not open pack", "pack", m.packs[m.packCursor].ID, "error", err)
		m.notice = err.Error()
		return
	}
	m.pack = pack
	m.loadProgress()
}

// loadProgress refreshes completion marks and best move counts.
func (m *MenuModel) loadProgress() {
	m.completed = map[int]bool{}
	m.best = map[int]int{}
	if m.store == nil || m.pack == nil {
		return
	}

	records, err := m.store.LevelProgress(m.player, m.pack.ID)
	if err != nil {
		m.logger.Warn("could not load progress", "pack", m.pack.ID, "error", err)
		return
	}
	for _, r := range records {
		m.completed[r.LevelID] = true
		if r.HasBest {
			m.best[r.LevelID] = r.BestMoves
		}
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.updateScroll()
		return m, nil
	}

	return m, nil
}

// visibleLevels returns how many level lines fit on the screen.
func (m MenuModel) visibleLevels() int {
	chrome := menuChrome
	if len(m.packs) <= 1 {
		chrome-- // no pack tabs
	}
	return max(m.height-chrome, 3)
}

// updateScroll adjusts the scroll offset to keep the cursor visible.
func (m *MenuModel) updateScroll() {
	if m.pack == nil {
		m.scroll = 0
		return
	}

	visible := m.visibleLevels()
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	} else if m.cursor >= m.scroll+visible {
		m.scroll = m.cursor - visible + 1
	}
	m.scroll = core.Clamp(m.scroll, 0, max(m.pack.Count()-visible, 0))
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := MapMenuKey(m.keys, msg, m.confirming)
	if action != MenuActionNone {
		m.notice = ""
	}

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.pack != nil && m.cursor < m.pack.Count()-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if m.pack == nil {
			return m, nil
		}
		if lvl, ok := m.pack.At(m.cursor); ok {
			m.selected = &lvl
		}

	case MenuActionReset:
		if m.pack != nil {
			m.confirming = true
		}

	case MenuActionYes:
		m.confirming = false
		m.resetProgress()

	case MenuActionNo:
		m.confirming = false

	case MenuActionNextPack:
		if len(m.packs) > 1 {
			m.packCursor = (m.packCursor + 1) % len(m.packs)
			m.loadPack()
		}

	case MenuActionPrevPack:
		if len(m.packs) > 1 {
			m.packCursor = (m.packCursor - 1 + len(m.packs)) % len(m.packs)
			m.loadPack()
		}

	case MenuActionProgress:
		m.openProgress = true
	}

	m.updateScroll()
	return m, nil
}

// resetProgress clears the stored completions of the current pack.
func (m *MenuModel) resetProgress() {
	if m.store == nil {
		m.completed = map[int]bool{}
		m.best = map[int]int{}
		m.notice = "Progress reset"
		return
	}
	if err := m.store.ResetProgress(m.player, m.pack.ID); err != nil {
		m.logger.Warn("could not reset progress", "pack", m.pack.ID, "error", err)
		m.notice = "Reset failed: " + err.Error()
		return
	}
	m.logger.Info("progress reset", "player", m.player, "pack", m.pack.ID)
	m.loadProgress()
	m.notice = "Progress reset"
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  S O K O B A N  "), m.width))
	b.WriteString("\n\n")

	if m.pack == nil {
		b.WriteString(centerText("No level packs available", m.width))
		b.WriteString("\n")
		return b.String()
	}

	subtitle := fmt.Sprintf("%s  ·  %d/%d completed", m.pack.Title, m.completedCount(), m.pack.Count())
	b.WriteString(centerText(subtitle, m.width))
	b.WriteString("\n")
	if len(m.packs) > 1 {
		b.WriteString(centerText(subtleStyle.Render(m.packTabs()), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	end := min(m.scroll+m.visibleLevels(), m.pack.Count())
	if m.scroll > 0 {
		b.WriteString(centerText(subtleStyle.Render(fmt.Sprintf("↑ %d more", m.scroll)), m.width))
	}
	b.WriteString("\n")
	for i := m.scroll; i < end; i++ {
		b.WriteString(centerText(m.levelLine(i, m.pack.Levels[i]), m.width))
		b.WriteString("\n")
	}
	if rest := m.pack.Count() - end; rest > 0 {
		b.WriteString(centerText(subtleStyle.Render(fmt.Sprintf("↓ %d more", rest)), m.width))
	}
	b.WriteString("\n")

	b.WriteString("\n")
	switch {
	case m.confirming:
		prompt := fmt.Sprintf("Reset all progress for %s? (y/n)", m.pack.Title)
		b.WriteString(centerText(warnStyle.Render(prompt), m.width))
	case m.notice != "":
		b.WriteString(centerText(m.notice, m.width))
	default:
		b.WriteString(centerText(subtleStyle.Render(m.help.View(m.keys)), m.width))
	}
	b.WriteString("\n")

	return b.String()
}

// levelLine formats one level entry of the list.
func (m MenuModel) levelLine(i int, lvl levels.Level) string {
	mark, status := markLocked, "not completed"
	if m.completed[lvl.ID] {
		mark, status = markCompleted, "completed"
		if best, ok := m.best[lvl.ID]; ok {
			status = fmt.Sprintf("best %d", best)
		}
	}

	line := fmt.Sprintf("%2d. %-20s %s %-14s", lvl.ID, lvl.Name, mark, status)
	if i == m.cursor {
		return selectedStyle.Render("> " + line)
	}
	return "  " + line
}

// packTabs lists the pack IDs with the current one bracketed.
func (m MenuModel) packTabs() string {
	tabs := make([]string, len(m.packs))
	for i, p := range m.packs {
		if i == m.packCursor {
			tabs[i] = "[" + p.ID + "]"
		} else {
			tabs[i] = p.ID
		}
	}
	return strings.Join(tabs, "  ")
}

func (m MenuModel) completedCount() int {
	n := 0
	for _, lvl := range m.pack.Levels {
		if m.completed[lvl.ID] {
			n++
		}
	}
	return n
}

// Selected returns the chosen level, or nil if none was selected.
func (m MenuModel) Selected() *levels.Level {
	return m.selected
}

// Pack returns the pack shown by the menu.
func (m MenuModel) Pack() *levels.Pack {
	return m.pack
}

// Scroll returns the index of the first level shown.
func (m MenuModel) Scroll() int {
	return m.scroll
}

// Cursor returns the index of the highlighted level.
func (m MenuModel) Cursor() int {
	return m.cursor
}

// Completed reports whether the menu shows level id as solved.
func (m MenuModel) Completed(id int) bool {
	return m.completed[id]
}

// Confirming reports whether a reset confirmation is pending.
func (m MenuModel) Confirming() bool {
	return m.confirming
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsProgress returns true if user requested the progress board.
func (m MenuModel) WantsProgress() bool {
	return m.openProgress
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}
