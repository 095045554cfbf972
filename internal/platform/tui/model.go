package tui

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sokoban/internal/config"
	"github.com/vovakirdan/sokoban/internal/core"
	"github.com/vovakirdan/sokoban/internal/games/sokoban"
	"github.com/vovakirdan/sokoban/internal/logging"
	"github.com/vovakirdan/sokoban/internal/storage"
)

// helpHeight is the number of terminal rows below the board reserved for
// the key help line.
const helpHeight = 1

// GameModel is the Bubble Tea model of the game screen.
type GameModel struct {
	game      *sokoban.Game
	screen    *core.Screen
	store     *storage.Store
	logger    *slog.Logger
	config    core.RuntimeConfig
	player    string
	keyMapper *KeyMapper
	help      help.Model

	notice     string // transient line shown instead of the help
	ticking    bool   // a tick loop is running for the win animation
	tickLoop   uint64 // ID of the running tick loop
	exitOnBack bool
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game screen for game. Completions are recorded in
// store under player; a nil store disables persistence.
func NewGameModel(game *sokoban.Game, store *storage.Store, cfg core.RuntimeConfig, player string, logger *slog.Logger) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = logging.Discard()
	}

	boardH := max(cfg.ScreenH-helpHeight, 0)
	game.Reset(core.RuntimeConfig{
		ScreenW:  cfg.ScreenW,
		ScreenH:  boardH,
		TickRate: cfg.TickRate,
		Seed:     cfg.Seed,
	})

	h := help.New()
	h.Width = cfg.ScreenW

	return GameModel{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, boardH),
		store:     store,
		logger:    logger,
		config:    cfg,
		player:    player,
		keyMapper: NewKeyMapper(),
		help:      h,
	}
}

// Init implements tea.Model. The game is idle until a key arrives.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMapper.Keys().Screenshot) {
		path, err := m.saveScreenshot()
		if err != nil {
			m.logger.Warn("screenshot failed", "error", err)
			m.notice = "Screenshot failed: " + err.Error()
		} else {
			m.notice = "Saved " + path
		}
		return m, nil
	}

	frame, quit := m.keyMapper.Frame(msg)
	if quit {
		m.quitting = true
		return m, tea.Quit
	}

	if frame.Has(core.ActionBack) {
		m.backToMenu = true
		if m.exitOnBack {
			return m, tea.Quit
		}
		return m, nil
	}

	if frame.Empty() {
		return m, nil
	}

	m.notice = ""
	res := m.game.Step(frame)
	if res.Switched {
		m.logger.Debug("level changed", "pack", m.game.ID(), "level", res.State.LevelID)
	}
	if !res.Completed {
		return m, nil
	}

	m.notice = m.recordCompletion(res.State)
	if m.ticking {
		return m, nil
	}
	m.ticking = true
	m.tickLoop = nextTickLoop()
	return m, tickCmd(m.config.TickRate, m.tickLoop)
}

// recordCompletion stores a solved level and returns the line announcing
// it. Storage errors are logged and never interrupt play.
func (m GameModel) recordCompletion(st core.GameState) string {
	notice := fmt.Sprintf("Solved in %d moves", st.Moves)
	if m.store == nil {
		m.logger.Info("level completed", "player", m.player, "pack", m.game.ID(), "level", st.LevelID, "moves", st.Moves)
		return notice
	}

	packID := m.game.ID()
	solvedBefore, err := m.store.IsCompleted(m.player, packID, st.LevelID)
	if err != nil {
		m.logger.Warn("could not load completion", "error", err)
	}
	prevBest, hadBest, err := m.store.BestMoves(m.player, packID, st.LevelID)
	if err != nil {
		m.logger.Warn("could not load best moves", "error", err)
	}

	m.logger.Info("level completed",
		"player", m.player,
		"pack", packID,
		"level", st.LevelID,
		"moves", st.Moves,
		"first", !solvedBefore,
	)
	if _, err := m.store.MarkCompleted(m.player, packID, st.LevelID, st.Moves); err != nil {
		m.logger.Warn("could not record completion", "error", err)
		return notice
	}

	switch {
	case !solvedBefore:
		return notice + ", first solve!"
	case !hadBest || st.Moves < prevBest:
		return notice + ", new best!"
	default:
		return fmt.Sprintf("%s, best %d", notice, prevBest)
	}
}

// handleResize processes window resize events. The board is kept.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	boardH := max(msg.Height-helpHeight, 0)
	m.screen.Resize(msg.Width, boardH)
	m.game.Resize(msg.Width, boardH)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick advances the win animation and stops once it has faded.
func (m GameModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if !m.ticking || msg.Loop != m.tickLoop {
		return m, nil
	}
	m.game.Tick()
	if m.game.Celebrating() {
		return m, tickCmd(m.config.TickRate, m.tickLoop)
	}
	m.ticking = false
	return m, nil
}

// saveScreenshot writes the current board as plain text to
// ~/.sokoban/screenshots and returns the file path.
func (m GameModel) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	dir := config.UserDir("screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create screenshot directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_level%d_%s.txt", m.game.ID(), m.game.Level().ID, timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	footer := subtleStyle.Render(m.help.View(m.keyMapper.Keys()))
	if m.notice != "" {
		footer = m.notice
	}
	return RenderScreen(m.screen) + "\n" + footer
}

// Game returns the game being played.
func (m GameModel) Game() *sokoban.Game {
	return m.game
}

// Notice returns the transient status line, if any.
func (m GameModel) Notice() string {
	return m.notice
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the level menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// RunGame plays game in a standalone program until the player quits or
// leaves the board.
func RunGame(game *sokoban.Game, store *storage.Store, cfg core.RuntimeConfig, player string, logger *slog.Logger) error {
	model := NewGameModel(game, store, cfg, player, logger)
	model.exitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
