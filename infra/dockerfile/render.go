package dockerfile

import (
	"strings"
)

// Render renders commands into Dockerfile content. Output is deterministic for
// identical command sequences and always ends with a single newline.
func Render(commands []Command, config RenderConfig) (string, error) {
	lines := make([]string, 0, len(commands))
	for _, cmd := range commands {
		line, err := cmd.Render(config)
		if err != nil {
			return "", err
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n")) + "\n", nil
}
