package formats

import (
	"fmt"
	"strings"
)

// ParseText parses a plain text level: every line is a grid row, except
// lines starting with ';' which carry "key: value" metadata.
// The keys id, name and author fill the matching Level fields.
func ParseText(data []byte) (Level, error) {
	level := Level{Metadata: make(map[string]string)}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, ";") {
			key, value, ok := strings.Cut(strings.TrimPrefix(line, ";"), ":")
			if !ok {
				continue
			}
			key = strings.ToLower(strings.TrimSpace(key))
			value = strings.TrimSpace(value)
			switch key {
			case "id":
				level.ID = value
			case "name":
				level.Name = value
			case "author":
				level.Author = value
			default:
				level.Metadata[key] = value
			}
			continue
		}
		level.Rows = append(level.Rows, line)
	}

	level.Rows = trimBlankRows(level.Rows)
	if len(level.Rows) == 0 {
		return Level{}, fmt.Errorf("text level has no rows")
	}
	if len(level.Metadata) == 0 {
		level.Metadata = nil
	}

	return level, nil
}

// trimBlankRows drops empty lines before and after the grid.
func trimBlankRows(rows []string) []string {
	start, end := 0, len(rows)
	for start < end && strings.TrimSpace(rows[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(rows[end-1]) == "" {
		end--
	}
	return rows[start:end]
}
