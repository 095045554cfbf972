package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/sokoban/internal/games/sokoban/levels"
)

func TestBuiltinPacksRegistered(t *testing.T) {
	assert.True(t, Exists(levels.ClassicID))
	assert.True(t, Exists(levels.TutorialID))
	assert.False(t, Exists("nope"))

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
	}
	assert.Subset(t, ids, []string{"classic", "tutorial"})
	assert.IsNonDecreasing(t, ids)
}

func TestListMetadata(t *testing.T) {
	for _, info := range List() {
		if info.ID != levels.ClassicID {
			continue
		}
		assert.Equal(t, "Classic", info.Title)
		assert.Equal(t, 5, info.Levels)
		assert.Equal(t, "builtin", info.Source)
		return
	}
	t.Fatal("classic pack missing from List")
}

func TestOpenReturnsFreshCopies(t *testing.T) {
	a, err := Open(levels.ClassicID)
	require.NoError(t, err)
	a.Levels[0].Name = "mutated"

	b, err := Open(levels.ClassicID)
	require.NoError(t, err)
	assert.Equal(t, "Getting Started", b.Levels[0].Name)
}

func TestOpenUnknown(t *testing.T) {
	_, err := Open("missing")
	assert.ErrorContains(t, err, `unknown pack "missing"`)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		Register(levels.ClassicID, levels.Classic)
	})
}

func TestRegisterDir(t *testing.T) {
	added, err := RegisterDir("testdata")
	require.NoError(t, err)

	// classic.xsb is shadowed by the built-in pack
	assert.Equal(t, 1, added)

	p, err := Open("extra")
	require.NoError(t, err)
	assert.Equal(t, "Extra", p.Title)

	c, err := Open(levels.ClassicID)
	require.NoError(t, err)
	assert.Equal(t, 5, c.Count())

	// Registering the same directory again is a no-op
	added, err = RegisterDir("testdata")
	require.NoError(t, err)
	assert.Zero(t, added)
}

func TestRegisterDirMissing(t *testing.T) {
	_, err := RegisterDir(t.TempDir() + "/absent")
	assert.Error(t, err)
}
