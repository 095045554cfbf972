package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLPack represents the YAML structure for a level pack file.
type YAMLPack struct {
	ID     string      `yaml:"id"`
	Title  string      `yaml:"title"`
	Levels []YAMLLevel `yaml:"levels"`
}

// YAMLLevel represents a single level in YAML format.
// Map rows are kept verbatim, including leading spaces.
type YAMLLevel struct {
	ID   int      `yaml:"id"`
	Name string   `yaml:"name"`
	Map  []string `yaml:"map"`
}

// ParseYAML parses a YAML level pack.
func ParseYAML(data []byte) (Pack, error) {
	var yp YAMLPack
	if err := yaml.Unmarshal(data, &yp); err != nil {
		return Pack{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	p := Pack{
		ID:     yp.ID,
		Title:  yp.Title,
		Levels: make([]Level, 0, len(yp.Levels)),
	}
	for _, yl := range yp.Levels {
		p.Levels = append(p.Levels, Level{
			ID:   yl.ID,
			Name: yl.Name,
			Map:  append([]string(nil), yl.Map...),
		})
	}

	return finalize(p)
}
