package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sokoban/internal/games/sokoban"
	"github.com/vovakirdan/sokoban/internal/games/sokoban/levels"
	"github.com/vovakirdan/sokoban/internal/platform/tui"
	"github.com/vovakirdan/sokoban/internal/registry"
	"github.com/vovakirdan/sokoban/internal/storage"
)

func newPlayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "play [level]",
		Short: "Play a level",
		Long: `Start playing a level of the current pack. Without a level ID the
first level you have not completed yet is chosen.

Controls:
  Arrows/WASD/hjkl  - Move
  U/Z/Ctrl+Z        - Undo (last 10 moves)
  R                 - Restart level
  N / ]             - Next level
  P / [             - Previous level
  Ctrl+S            - Save a screenshot
  Esc/B             - Leave
  Q/Ctrl+C          - Quit

Examples:
  sokoban play
  sokoban play 3
  sokoban play 2 --pack tutorial`,
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{annotationTUI: "true"},
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runPlay(args)
		},
	}
}

func (a *app) runPlay(args []string) error {
	pack, err := registry.Open(a.cfg.Pack)
	if err != nil {
		return fmt.Errorf("%w (run 'sokoban list' to see available packs)", err)
	}

	store := a.openStore()
	defer closeStore(store, a.logger)

	levelID, err := a.pickLevel(pack, store, args)
	if err != nil {
		return err
	}

	game := sokoban.New(pack, a.theme())
	if err := game.SelectLevel(levelID); err != nil {
		return err
	}
	a.logger.Info("level started", "pack", pack.ID, "level", levelID, "player", a.cfg.Player)

	return tui.RunGame(game, store, a.runtimeConfig(), a.cfg.Player, a.logger)
}

// pickLevel resolves the level argument, defaulting to the first level the
// player has not completed.
func (a *app) pickLevel(pack *levels.Pack, store *storage.Store, args []string) (int, error) {
	if len(args) == 1 {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, fmt.Errorf("invalid level %q: must be a number", args[0])
		}
		if _, err := pack.Level(id); err != nil {
			return 0, err
		}
		return id, nil
	}

	completed := map[int]bool{}
	if store != nil {
		done, err := store.CompletedLevels(a.cfg.Player, pack.ID)
		if err != nil {
			a.logger.Warn("could not load progress", "error", err)
		} else {
			completed = done
		}
	}
	return pack.FirstIncomplete(completed).ID, nil
}
