package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/sokoban/internal/config"
	"github.com/vovakirdan/sokoban/internal/logging"
)

func TestSSHServerConfigFrom(t *testing.T) {
	cfg := config.Default()
	cfg.Pack = "tutorial"
	cfg.SSH.Address = ":2222"
	cfg.SSH.IdleTimeout = 5 * time.Minute

	sc := SSHServerConfigFrom(cfg)
	if sc.Address != ":2222" || sc.Pack != "tutorial" || sc.IdleTimeout != 5*time.Minute {
		t.Errorf("unexpected server config: %+v", sc)
	}
	if sc.DBPath != cfg.Database || sc.TickRate != cfg.TickRate {
		t.Errorf("database or tick rate not carried over: %+v", sc)
	}
	if sc.Theme.Player.Glyph != [2]rune{'@', '@'} {
		t.Errorf("theme not built from config: %+v", sc.Theme.Player)
	}
}

func TestNewSSHServer(t *testing.T) {
	dir := t.TempDir()
	sc := DefaultSSHServerConfig()
	sc.Address = "127.0.0.1:0"
	sc.HostKeyPath = filepath.Join(dir, "keys", "host_ed25519")
	sc.DBPath = filepath.Join(dir, "progress.db")
	sc.Logger = logging.Discard()

	srv, err := NewSSHServer(sc)
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "keys")); err != nil {
		t.Errorf("host key directory not created: %v", err)
	}
	if srv.Addr() != "127.0.0.1:0" {
		t.Errorf("Addr() = %q", srv.Addr())
	}
	if len(srv.ActiveSessions()) != 0 {
		t.Error("new server should have no sessions")
	}

	if err := srv.Shutdown(); err != nil {
		t.Errorf("Shutdown() failed: %v", err)
	}
	if srv.store != nil {
		t.Error("Shutdown() should close the store")
	}
}
