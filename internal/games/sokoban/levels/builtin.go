package levels

import (
	"embed"
	"fmt"
	"path"

	"github.com/vovakirdan/sokoban/internal/games/sokoban/levels/formats"
)

//go:embed data/*.yaml
var builtinFS embed.FS

// Built-in pack IDs.
const (
	ClassicID  = "classic"
	TutorialID = "tutorial"
)

// Classic returns the five-level classic pack.
func Classic() *Pack {
	return mustBuiltin("classic.yaml")
}

// Tutorial returns the pack of small teaching levels.
func Tutorial() *Pack {
	return mustBuiltin("tutorial.yaml")
}

// mustBuiltin parses an embedded pack. The files ship with the binary, so a
// parse failure is a programming error.
func mustBuiltin(name string) *Pack {
	data, err := builtinFS.ReadFile(path.Join("data", name))
	if err != nil {
		panic(fmt.Sprintf("levels: missing built-in pack %s: %v", name, err))
	}
	fp, err := formats.ParseYAML(data)
	if err != nil {
		panic(fmt.Sprintf("levels: invalid built-in pack %s: %v", name, err))
	}
	return FromFormat(fp)
}
