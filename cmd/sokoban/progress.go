package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/sokoban/internal/registry"
)

func newProgressCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show progress for the current pack",
		Long: `Display completed levels, best move counts and play counts of the
current player for the current pack.

Examples:
  sokoban progress
  sokoban progress --pack tutorial --player bob
  sokoban progress reset
  sokoban progress export -o classic.json
  sokoban progress import classic.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.showProgress(cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(newProgressResetCmd(a))
	cmd.AddCommand(newProgressExportCmd(a))
	cmd.AddCommand(newProgressImportCmd(a))
	return cmd
}

func (a *app) showProgress(w io.Writer) error {
	pack, err := registry.Open(a.cfg.Pack)
	if err != nil {
		return err
	}

	store, err := a.mustOpenStore()
	if err != nil {
		return err
	}
	defer closeStore(store, a.logger)

	all, err := store.LevelProgress(a.cfg.Player, pack.ID)
	if err != nil {
		return err
	}
	stats, err := store.PackStats(a.cfg.Player, pack.ID, pack.IDs())
	if err != nil {
		return err
	}

	// Completions of levels the pack no longer has are not shown.
	records := all[:0]
	for _, r := range all {
		if pack.Index(r.LevelID) >= 0 {
			records = append(records, r)
		}
	}

	fmt.Fprintf(w, "Progress - %s (player %s)\n", pack.Title, a.cfg.Player)
	fmt.Fprintln(w)

	if len(records) == 0 {
		fmt.Fprintln(w, "No levels completed yet.")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Play 'sokoban play --pack %s' to start!\n", pack.ID)
		return nil
	}

	fmt.Fprintf(w, "  %-5s  %-24s  %-5s  %-5s  %s\n", "Level", "Name", "Best", "Plays", "Last")
	fmt.Fprintf(w, "  %-5s  %-24s  %-5s  %-5s  %s\n", "-----", "----", "----", "-----", "----")

	for _, r := range records {
		lvl, err := pack.Level(r.LevelID)
		if err != nil {
			return err
		}
		best := "-"
		if r.HasBest {
			best = fmt.Sprintf("%d", r.BestMoves)
		}
		last := "-"
		if !r.LastCompleted.IsZero() {
			last = r.LastCompleted.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "  %-5d  %-24s  %-5s  %-5d  %s\n", r.LevelID, lvl.Name, best, r.Plays, last)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Completed: %d/%d levels, %d plays\n", stats.Completed, pack.Count(), stats.Plays)
	return nil
}

func newProgressResetCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all progress for the current pack",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pack, err := registry.Open(a.cfg.Pack)
			if err != nil {
				return err
			}

			if !yes {
				ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
					fmt.Sprintf("Reset all progress of %s for %s? [y/N] ", pack.ID, a.cfg.Player))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			store, err := a.mustOpenStore()
			if err != nil {
				return err
			}
			defer closeStore(store, a.logger)

			if err := store.ResetProgress(a.cfg.Player, pack.ID); err != nil {
				return err
			}
			a.logger.Info("progress reset", "player", a.cfg.Player, "pack", pack.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Progress of %s reset.\n", pack.ID)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

// errNotInteractive is returned when a confirmation is needed but stdin is
// not a terminal.
var errNotInteractive = errors.New("stdin is not a terminal, pass --yes to confirm")

// confirm asks a yes/no question. Only an explicit y or yes confirms.
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	if f, ok := in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return false, errNotInteractive
	}

	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func newProgressExportCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export completed level IDs as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pack, err := registry.Open(a.cfg.Pack)
			if err != nil {
				return err
			}

			store, err := a.mustOpenStore()
			if err != nil {
				return err
			}
			defer closeStore(store, a.logger)

			data, err := store.ExportCompleted(a.cfg.Player, pack.ID)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if err := os.WriteFile(output, append(data, '\n'), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported progress of %s to %s\n", pack.ID, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}

func newProgressImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import completed level IDs from a JSON array",
		Long: `Mark the levels listed in a JSON array (e.g. [1,2,5]) as completed
for the current player and pack. Levels already completed are kept and
IDs the pack does not have are skipped; use - to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			pack, err := registry.Open(a.cfg.Pack)
			if err != nil {
				return err
			}

			store, err := a.mustOpenStore()
			if err != nil {
				return err
			}
			defer closeStore(store, a.logger)

			added, skipped, err := store.ImportCompleted(a.cfg.Player, pack.ID, data, pack.IDs())
			if err != nil {
				return err
			}
			a.logger.Info("progress imported", "player", a.cfg.Player, "pack", pack.ID, "added", added, "skipped", skipped)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d level(s) into %s.\n", added, pack.ID)
			if skipped > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Skipped %d ID(s) not in %s.\n", skipped, pack.ID)
			}
			return nil
		},
	}
}
