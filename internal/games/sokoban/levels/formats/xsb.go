package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

// ParseXSB parses the plain-text Sokoban format used by most level
// collections: maps separated by blank lines, ';' comment lines and
// "Key: value" header lines.
//
// A comment line right before a map names that map. A "Title:" line
// before the first map titles the pack; after a map it names the map
// just read. Floor may be written as ' ', '-' or '_'.
func ParseXSB(data []byte) (Pack, error) {
	var (
		p       Pack
		rows    []string
		pending string
		last    = -1
	)

	flush := func() {
		if len(rows) == 0 {
			return
		}
		p.Levels = append(p.Levels, Level{Name: pending, Map: rows})
		last = len(p.Levels) - 1
		rows = nil
		pending = ""
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")

		switch {
		case isMapRow(line):
			rows = append(rows, normalizeRow(line))

		case strings.TrimSpace(line) == "":
			flush()

		case strings.HasPrefix(strings.TrimSpace(line), ";"):
			flush()
			if name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), ";")); name != "" {
				pending = name
			}

		default:
			flush()
			key, value, ok := strings.Cut(line, ":")
			if !ok {
				continue
			}
			if strings.EqualFold(strings.TrimSpace(key), "title") {
				value = strings.TrimSpace(value)
				if last < 0 {
					p.Title = value
				} else {
					p.Levels[last].Name = value
				}
			}
		}
	}
	if err := sc.Err(); err != nil {
		return Pack{}, fmt.Errorf("xsb scan: %w", err)
	}
	flush()

	return finalize(p)
}

// isMapRow reports whether line consists of board symbols and contains
// at least one wall.
func isMapRow(line string) bool {
	if !strings.ContainsRune(line, '#') {
		return false
	}
	for _, r := range line {
		if !strings.ContainsRune("#@+$*. -_", r) {
			return false
		}
	}
	return true
}

func normalizeRow(line string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || r == '_' {
			return ' '
		}
		return r
	}, line)
}
