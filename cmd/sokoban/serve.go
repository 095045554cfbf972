package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sokoban/internal/config"
	"github.com/vovakirdan/sokoban/internal/platform/tui"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr        string
		hostKey     string
		idleTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Sokoban SSH server",
		Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the level menu.
Progress is stored per SSH user name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise uses ssh.host_key from the config, generated on first start

Examples:
  sokoban serve                           # Listen on :23234
  sokoban serve --ssh :2222               # Listen on port 2222
  sokoban serve --host-key ./my_host_key  # Use specific host key
  sokoban serve --idle-timeout 10m

Users can connect with:
  ssh localhost -p 23234`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationLogFormat: config.FormatCharm},
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc := tui.SSHServerConfigFrom(a.cfg)
			if cmd.Flags().Changed("ssh") {
				sc.Address = addr
			}
			if cmd.Flags().Changed("host-key") {
				sc.HostKeyPath = hostKey
			}
			if cmd.Flags().Changed("idle-timeout") {
				sc.IdleTimeout = idleTimeout
			}
			sc.Logger = a.logger

			server, err := tui.NewSSHServer(sc)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Starting Sokoban SSH server on %s\n", server.Addr())
			fmt.Fprintln(out, "Press Ctrl+C to stop")

			return server.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&addr, "ssh", ":23234", "SSH server address (host:port)")
	cmd.Flags().StringVar(&hostKey, "host-key", "", "Path to host key file")
	cmd.Flags().DurationVar(&idleTimeout, "idle-timeout", 30*time.Minute, "Idle timeout before disconnecting")

	return cmd
}
