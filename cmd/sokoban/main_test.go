package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	dir string
	db  string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	return testEnv{dir: dir, db: filepath.Join(dir, "progress.db")}
}

// run executes the CLI with args against the test database.
func (e testEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append(args, "--db", e.db, "--player", "tester"))
	err := root.Execute()
	return out.String(), err
}

func TestListPacks(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "classic")
	assert.Contains(t, out, "tutorial")
	assert.Contains(t, out, "builtin")
}

func TestListLevelsShowsProgress(t *testing.T) {
	env := newTestEnv(t)

	file := filepath.Join(env.dir, "done.json")
	require.NoError(t, os.WriteFile(file, []byte("[1]"), 0o644))
	_, err := env.run(t, "", "progress", "import", file, "--pack", "tutorial")
	require.NoError(t, err)

	out, err := env.run(t, "", "list", "--pack", "tutorial")
	require.NoError(t, err)
	assert.Contains(t, out, "One Push")
	assert.Contains(t, out, "✅ completed")
	assert.Contains(t, out, "🔒 not completed")
}

func TestListUnknownPack(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "", "list", "--pack", "missing")
	assert.Error(t, err)
}

func TestProgressExportImportRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "", "progress", "export")
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(out))

	out, err = env.run(t, "[3,1,1]", "progress", "import", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 level(s) into classic")

	file := filepath.Join(env.dir, "export.json")
	_, err = env.run(t, "", "progress", "export", "-o", file)
	require.NoError(t, err)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "[1,3]", strings.TrimSpace(string(data)))

	out, err = env.run(t, "", "progress")
	require.NoError(t, err)
	assert.Contains(t, out, "Completed: 2/5 levels")
}

func TestProgressImportSkipsUnknownLevels(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "[1, 99, -3, 1000]", "progress", "import", "-", "--pack", "tutorial")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 level(s) into tutorial.")
	assert.Contains(t, out, "Skipped 3 ID(s) not in tutorial.")

	out, err = env.run(t, "", "progress", "--pack", "tutorial")
	require.NoError(t, err)
	assert.Contains(t, out, "Completed: 1/4 levels")
	assert.NotContains(t, out, "?")

	out, err = env.run(t, "", "progress", "export", "--pack", "tutorial")
	require.NoError(t, err)
	assert.Equal(t, "[1]", strings.TrimSpace(out))
}

func TestProgressUnknownPack(t *testing.T) {
	env := newTestEnv(t)

	for _, args := range [][]string{
		{"progress", "--pack", "missing"},
		{"progress", "reset", "--yes", "--pack", "missing"},
		{"progress", "export", "--pack", "missing"},
		{"progress", "import", "-", "--pack", "missing"},
	} {
		out, err := env.run(t, "[1]", args...)
		require.Error(t, err, "args %v", args)
		assert.Contains(t, err.Error(), "missing", "args %v", args)
		assert.NotContains(t, out, "reset.", "args %v", args)
	}
}

func TestProgressImportRejectsGarbage(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "not json", "progress", "import", "-")
	assert.Error(t, err)
}

func TestProgressReset(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "[1,2]", "progress", "import", "-")
	require.NoError(t, err)

	out, err := env.run(t, "n\n", "progress", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")

	out, err = env.run(t, "", "progress", "export")
	require.NoError(t, err)
	assert.Equal(t, "[1,2]", strings.TrimSpace(out))

	out, err = env.run(t, "y\n", "progress", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Progress of classic reset.")

	out, err = env.run(t, "", "progress", "export")
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(out))
}

func TestProgressResetYesFlag(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "[1]", "progress", "import", "-")
	require.NoError(t, err)

	_, err = env.run(t, "", "progress", "reset", "--yes")
	require.NoError(t, err)

	out, err := env.run(t, "", "progress")
	require.NoError(t, err)
	assert.Contains(t, out, "No levels completed yet.")
}

func TestPlayRejectsBadLevel(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "", "play", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid level")

	_, err = env.run(t, "", "play", "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "level not found")
}

func TestUserLevelDirectory(t *testing.T) {
	env := newTestEnv(t)
	dir := filepath.Join(env.dir, "levels")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	pack := "id: cli-extra\ntitle: CLI Extra\nlevels:\n  - id: 1\n    name: Tiny\n    map: [\"#####\", \"#@$.#\", \"#####\"]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.yaml"), []byte(pack), 0o644))

	out, err := env.run(t, "", "list", "--levels-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "cli-extra")
	assert.Contains(t, out, "CLI Extra")
}

func TestMissingConfigFile(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "", "list", "--config", filepath.Join(env.dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestInvalidConfigValue(t *testing.T) {
	env := newTestEnv(t)
	file := filepath.Join(env.dir, "bad.yaml")
	require.NoError(t, os.WriteFile(file, []byte("tick_rate: 0\n"), 0o644))

	_, err := env.run(t, "", "list", "--config", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tick_rate")
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tc := range tests {
		var out bytes.Buffer
		ok, err := confirm(strings.NewReader(tc.input), &out, "sure? ")
		require.NoError(t, err)
		assert.Equal(t, tc.expected, ok, "input %q", tc.input)
		assert.Equal(t, "sure? ", out.String())
	}
}
