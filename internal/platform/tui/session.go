package tui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/sokoban/internal/core"
	"github.com/vovakirdan/sokoban/internal/games/sokoban"
	"github.com/vovakirdan/sokoban/internal/logging"
	"github.com/vovakirdan/sokoban/internal/storage"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenProgress
)

// SessionOptions configures a session.
type SessionOptions struct {
	Store     *storage.Store // nil disables progress tracking
	Logger    *slog.Logger
	Config    core.RuntimeConfig
	Player    string
	PackID    string
	Theme     sokoban.Theme
	SessionID string // generated when empty
}

// SessionModel manages the full session flow: menu -> game -> menu, plus
// the progress board. It is used for local play and for every SSH session.
type SessionModel struct {
	store     *storage.Store
	logger    *slog.Logger
	config    core.RuntimeConfig
	player    string
	sessionID string
	packID    string
	theme     sokoban.Theme

	current  sessionScreen
	menu     MenuModel
	game     GameModel
	progress ProgressModel
	quitting bool
}

// NewSessionModel creates a new session model starting on the level menu.
func NewSessionModel(opts SessionOptions) SessionModel {
	if opts.SessionID == "" {
		opts.SessionID = uuid.NewString()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	logger := opts.Logger.With("session", opts.SessionID, "player", opts.Player)

	return SessionModel{
		store:     opts.Store,
		logger:    logger,
		config:    opts.Config,
		player:    opts.Player,
		sessionID: opts.SessionID,
		packID:    opts.PackID,
		theme:     opts.Theme,
		menu:      NewMenuModel(opts.Store, opts.Config, opts.Player, opts.PackID, logger),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenProgress:
		return m.updateProgress(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if pack := m.menu.Pack(); pack != nil {
		m.packID = pack.ID
	}

	if m.menu.WantsProgress() {
		m.progress = NewProgressModel(m.store, m.player, m.packID, m.config.ScreenW, m.config.ScreenH, m.logger)
		m.current = screenProgress
		return m, m.progress.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		game := sokoban.New(m.menu.Pack(), m.theme)
		if err := game.SelectLevel(selected.ID); err != nil {
			m.logger.Warn("could not select level", "level", selected.ID, "error", err)
		}
		m.logger.Info("level started", "pack", m.packID, "level", selected.ID)

		m.game = NewGameModel(game, m.store, m.config, m.player, m.logger)
		m.current = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		return m.backToMenu()
	}

	return m, cmd
}

// updateProgress handles updates when the progress board is open.
func (m SessionModel) updateProgress(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.progress.Update(msg)
	if progressModel, ok := newModel.(ProgressModel); ok {
		m.progress = progressModel
	}

	if m.progress.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.progress.IsGoingBack() {
		if id := m.progress.PackID(); id != "" {
			m.packID = id
		}
		return m.backToMenu()
	}

	return m, cmd
}

// backToMenu rebuilds the menu so it reflects fresh progress.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.current = screenMenu
	m.menu = NewMenuModel(m.store, m.config, m.player, m.packID, m.logger)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenGame:
		return m.game.View()
	case screenProgress:
		return m.progress.View()
	default:
		return m.menu.View()
	}
}

// SessionID returns the unique identifier of the session.
func (m SessionModel) SessionID() string {
	return m.sessionID
}

// InGame reports whether the game screen is active.
func (m SessionModel) InGame() bool {
	return m.current == screenGame
}

// InProgress reports whether the progress board is active.
func (m SessionModel) InProgress() bool {
	return m.current == screenProgress
}

// RunSession runs an interactive session in the local terminal.
func RunSession(opts SessionOptions) error {
	p := tea.NewProgram(
		NewSessionModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
