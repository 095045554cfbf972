package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sokoban/internal/registry"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List level packs, or the levels of --pack",
		Long: `Shows every registered level pack. With --pack, lists the levels of
that pack together with your completion status and best move counts.

Examples:
  sokoban list
  sokoban list --pack classic`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("pack") {
				return a.listLevels(cmd.OutOrStdout())
			}
			listPacks(cmd.OutOrStdout())
			return nil
		},
	}
}

func listPacks(w io.Writer) {
	packs := registry.List()

	if len(packs) == 0 {
		fmt.Fprintln(w, "No level packs available.")
		return
	}

	fmt.Fprintln(w, "Available packs:")
	fmt.Fprintln(w)

	maxIDLen, maxTitleLen := 2, 5 // header widths
	for _, p := range packs {
		maxIDLen = max(maxIDLen, len(p.ID))
		maxTitleLen = max(maxTitleLen, len(p.Title))
	}

	fmt.Fprintf(w, "  %-*s  %-*s  %6s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Levels", "Source")
	fmt.Fprintf(w, "  %-*s  %-*s  %6s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "------", "------")

	for _, p := range packs {
		fmt.Fprintf(w, "  %-*s  %-*s  %6d  %s\n", maxIDLen, p.ID, maxTitleLen, p.Title, p.Levels, p.Source)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'sokoban list --pack <id>' to see the levels of a pack.")
}

func (a *app) listLevels(w io.Writer) error {
	pack, err := registry.Open(a.cfg.Pack)
	if err != nil {
		return fmt.Errorf("%w (run 'sokoban list' to see available packs)", err)
	}

	done := map[int]bool{}
	best := map[int]int{}
	store := a.openStore()
	if store != nil {
		defer closeStore(store, a.logger)
		records, err := store.LevelProgress(a.cfg.Player, pack.ID)
		if err != nil {
			return err
		}
		for _, r := range records {
			done[r.LevelID] = true
			if r.HasBest {
				best[r.LevelID] = r.BestMoves
			}
		}
	}

	fmt.Fprintf(w, "%s (%s)\n\n", pack.Title, pack.ID)
	for _, lvl := range pack.Levels {
		status := "🔒 not completed"
		if done[lvl.ID] {
			status = "✅ completed"
			if moves, ok := best[lvl.ID]; ok {
				status = fmt.Sprintf("✅ best %d moves", moves)
			}
		}
		fmt.Fprintf(w, "  %3d  %-24s  %s\n", lvl.ID, lvl.Name, status)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Run 'sokoban play <level> --pack %s' to play.\n", pack.ID)
	return nil
}
