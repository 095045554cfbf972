package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/sokoban/internal/platform/tui"
)

func newMenuCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Start the level menu",
		Long: `Start the game in interactive menu mode.

The menu lists the levels of the current pack with their status.
After a level you return to the menu.

Controls:
  Up/Down/j/k  - Navigate levels
  Enter/Space  - Play level
  Tab/S-Tab    - Switch pack
  P            - Progress board
  X            - Reset progress of the pack (asks y/n)
  Q            - Quit

Examples:
  sokoban menu
  sokoban menu --pack tutorial
  sokoban menu --db ./progress.db`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationTUI: "true"},
		RunE: func(_ *cobra.Command, _ []string) error {
			store := a.openStore()
			defer closeStore(store, a.logger)

			return tui.RunSession(tui.SessionOptions{
				Store:  store,
				Logger: a.logger,
				Config: a.runtimeConfig(),
				Player: a.cfg.Player,
				PackID: a.cfg.Pack,
				Theme:  a.theme(),
			})
		},
	}
}
