package parser

import (
	"strings"
)

const ActionMarker = "Action:"

// ExtractActionLine returns the trimmed remainder of the first line of output
// that starts with ActionMarker. Later Action lines are ignored.
func ExtractActionLine(output string) (string, error) {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if !strings.HasPrefix(line, ActionMarker) {
			continue
		}
		action := strings.TrimSpace(strings.TrimPrefix(line, ActionMarker))
		if action == "" {
			continue
		}
		return action, nil
	}
	return "", ErrNoActionFound
}
