package formats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYAML(t *testing.T) {
	p, err := ParseYAML([]byte(`
id: demo
title: Demo
levels:
  - id: 3
    name: Three
    map: ["  ###", "###@#"]
  - map: ["#@$.#"]
`))
	require.NoError(t, err)

	assert.Equal(t, "demo", p.ID)
	require.Len(t, p.Levels, 2)
	assert.Equal(t, "  ###", p.Levels[0].Map[0], "leading spaces are kept")
	assert.Equal(t, 2, p.Levels[1].ID)
	assert.Equal(t, "Level 2", p.Levels[1].Name)
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", "levels: [:"},
		{"no levels", "id: x\nlevels: []"},
		{"empty map", "levels:\n  - id: 1\n    map: []"},
		{"duplicate ids", "levels:\n  - id: 1\n    map: ['#']\n  - id: 1\n    map: ['#']"},
		{"negative id", "levels:\n  - id: -2\n    map: ['#']"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tc.data))
			assert.Error(t, err)
		})
	}
}

func TestParseXSB(t *testing.T) {
	data := "Title: Set\n\n; First\n####\n#@$.#\n####\n\n#####\n#+*_#\n#####\nTitle: Second\n"
	p, err := ParseXSB([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, "Set", p.Title)
	require.Len(t, p.Levels, 2)
	assert.Equal(t, "First", p.Levels[0].Name)
	assert.Equal(t, []string{"####", "#@$.#", "####"}, p.Levels[0].Map)
	assert.Equal(t, "Second", p.Levels[1].Name)
	assert.Equal(t, "#+* #", p.Levels[1].Map[1])
}

func TestParseXSBCRLF(t *testing.T) {
	p, err := ParseXSB([]byte("#####\r\n#@$.#\r\n#####\r\n"))
	require.NoError(t, err)
	require.Len(t, p.Levels, 1)
	assert.Equal(t, "#@$.#", p.Levels[0].Map[1])
	assert.Equal(t, "Level 1", p.Levels[0].Name)
}

func TestParseXSBNoMaps(t *testing.T) {
	_, err := ParseXSB([]byte("; nothing here\nTitle: Empty\n"))
	assert.Error(t, err)
}

func TestParseUnsupported(t *testing.T) {
	_, err := Parse([]byte("x"), ".json")
	assert.Error(t, err)

	_, err = Parse([]byte("#@$.#"), ".XSB")
	assert.NoError(t, err)
}
