package tui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sokoban/internal/games/sokoban/levels"
	"github.com/vovakirdan/sokoban/internal/logging"
	"github.com/vovakirdan/sokoban/internal/registry"
	"github.com/vovakirdan/sokoban/internal/storage"
)

// Progress board layout constants
const (
	minWidthForSidebar = 90 // Minimum width to show the pack sidebar
	sidebarWidth       = 22
	recentLimit        = 3 // completions listed under the summary
)

// ProgressKeyMap defines the key bindings for the progress board.
type ProgressKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextPack key.Binding
	PrevPack key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ProgressKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextPack, k.PrevPack, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ProgressKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPack, k.PrevPack},
		{k.Back, k.Quit},
	}
}

// DefaultProgressKeyMap returns default key bindings.
func DefaultProgressKeyMap() ProgressKeyMap {
	return ProgressKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev pack"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next pack"),
		),
		NextPack: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pack"),
		),
		PrevPack: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev pack"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ProgressModel is the Bubble Tea model for the progress board.
type ProgressModel struct {
	packs       []registry.PackInfo
	packCursor  int
	store       *storage.Store
	logger      *slog.Logger
	player      string
	rows        []table.Row
	stats       *storage.PackStats
	recent      []storage.Completion
	table       table.Model
	help        help.Model
	keys        ProgressKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewProgressModel creates a progress board starting on packID.
func NewProgressModel(store *storage.Store, player, packID string, width, height int, logger *slog.Logger) ProgressModel {
	if logger == nil {
		logger = logging.Discard()
	}

	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := ProgressModel{
		packs:       registry.List(),
		store:       store,
		logger:      logger,
		player:      player,
		keys:        DefaultProgressKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	for i, p := range m.packs {
		if p.ID == packID {
			m.packCursor = i
			break
		}
	}

	m.table = m.createTable()
	if len(m.packs) > 0 {
		m.loadProgress(m.packs[m.packCursor].ID)
	}

	return m
}

// createTable creates a new table with columns sized to the window.
func (m *ProgressModel) createTable() table.Model {
	tableWidth := m.width - 8
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	nameWidth := min(max(tableWidth-48, 12), 28)

	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Level", Width: nameWidth},
		{Title: "Status", Width: 8},
		{Title: "Best", Width: 6},
		{Title: "Plays", Width: 6},
		{Title: "Last", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadProgress builds one row per level of packID.
func (m *ProgressModel) loadProgress(packID string) {
	m.rows = nil
	m.stats = nil
	m.recent = nil

	pack, err := registry.Open(packID)
	if err != nil {
		m.logger.Warn("could not open pack", "pack", packID, "error", err)
		m.updateTableRows()
		return
	}

	records := map[int]storage.LevelRecord{}
	if m.store != nil {
		list, err := m.store.LevelProgress(m.player, packID)
		if err != nil {
			m.logger.Warn("could not load progress", "pack", packID, "error", err)
		}
		for _, r := range list {
			records[r.LevelID] = r
		}
		if stats, err := m.store.PackStats(m.player, packID, pack.IDs()); err == nil {
			m.stats = stats
		}
		recent, err := m.store.RecentCompletions(m.player, recentLimit)
		if err != nil {
			m.logger.Warn("could not load recent completions", "error", err)
		}
		m.recent = recent
	}

	m.rows = progressRows(pack, records)
	m.updateTableRows()
}

// progressRows formats the table rows of pack.
func progressRows(pack *levels.Pack, records map[int]storage.LevelRecord) []table.Row {
	rows := make([]table.Row, 0, pack.Count())
	for _, lvl := range pack.Levels {
		row := table.Row{strconv.Itoa(lvl.ID), lvl.Name, markLocked, "-", "0", "-"}
		if r, ok := records[lvl.ID]; ok {
			row[2] = markCompleted
			if r.HasBest {
				row[3] = strconv.Itoa(r.BestMoves)
			}
			row[4] = strconv.Itoa(r.Plays)
			if !r.LastCompleted.IsZero() {
				row[5] = r.LastCompleted.Format("Jan 02 15:04")
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func (m *ProgressModel) updateTableRows() {
	m.table.SetRows(m.rows)
	m.table.GotoTop()
}

// Init initializes the progress model.
func (m ProgressModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the progress board.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextPack), key.Matches(msg, m.keys.Right):
			if len(m.packs) > 0 {
				m.packCursor = (m.packCursor + 1) % len(m.packs)
				m.loadProgress(m.packs[m.packCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevPack), key.Matches(msg, m.keys.Left):
			if len(m.packs) > 0 {
				m.packCursor = (m.packCursor - 1 + len(m.packs)) % len(m.packs)
				m.loadProgress(m.packs[m.packCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the progress board.
func (m ProgressModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "PROGRESS"
	if len(m.packs) > 0 {
		title = fmt.Sprintf("PROGRESS - %s", m.packs[m.packCursor].Title)
	}
	b.WriteString(titleStyle.MarginBottom(1).Render(centerText(title, m.width)))
	b.WriteString("\n")
	b.WriteString(centerText(subtleStyle.Render(m.summary()), m.width))
	b.WriteString("\n")
	if line := m.recentLine(); line != "" {
		b.WriteString(centerText(subtleStyle.Render(line), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// summary describes the pack totals of the player.
func (m ProgressModel) summary() string {
	total := 0
	if len(m.packs) > 0 {
		total = m.packs[m.packCursor].Levels
	}
	if m.stats == nil {
		return fmt.Sprintf("%s: 0/%d levels solved", m.player, total)
	}
	return fmt.Sprintf("%s: %d/%d levels solved, %d plays, %d moves in best solutions",
		m.player, m.stats.Completed, total, m.stats.Plays, m.stats.BestTotal)
}

// recentLine lists the latest completions of the player across packs.
func (m ProgressModel) recentLine() string {
	if len(m.recent) == 0 {
		return ""
	}
	entries := make([]string, len(m.recent))
	for i, c := range m.recent {
		moves := "imported"
		if c.HasMoves {
			moves = fmt.Sprintf("%d moves", c.Moves)
		}
		entries[i] = fmt.Sprintf("%s #%d (%s)", c.PackID, c.LevelID, moves)
	}
	return "Recent: " + strings.Join(entries, " · ")
}

// renderWideLayout renders the board with a sidebar for pack selection.
func (m ProgressModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Packs\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, p := range m.packs {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.packCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + truncate(p.Title, sidebarWidth-6)))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders pack tabs above the table.
func (m ProgressModel) renderNarrowLayout() string {
	var b strings.Builder

	activeTabStyle := selectedStyle.Padding(0, 1)

	tabs := make([]string, len(m.packs))
	for i, p := range m.packs {
		name := truncate(p.Title, 10)
		if i == m.packCursor {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = subtleStyle.Render(" " + name + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 && len(m.packs) > 0 {
		tabLine = fmt.Sprintf("< %s >", m.packs[m.packCursor].Title)
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(tableStyle.Render(m.renderTableContent()))
	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ProgressModel) renderTableContent() string {
	if len(m.rows) == 0 {
		emptyStyle := subtleStyle.Italic(true).Padding(2, 4)
		return emptyStyle.Render("No levels in this pack.")
	}
	return m.table.View()
}

// truncate shortens s to at most n runes, marking the cut with a dot.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 2 {
		return s
	}
	return string(r[:n-1]) + "."
}

// Rows returns the rows currently loaded into the table.
func (m ProgressModel) Rows() []table.Row {
	return m.rows
}

// PackID returns the pack shown by the board.
func (m ProgressModel) PackID() string {
	if len(m.packs) == 0 {
		return ""
	}
	return m.packs[m.packCursor].ID
}

// IsGoingBack returns true if user wants to go back to the menu.
func (m ProgressModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ProgressModel) IsQuitting() bool {
	return m.quitting
}
