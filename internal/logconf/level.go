package logconf

import (
	"fmt"
	"strings"
)

// DefaultLogLevel is applied when a source does not specify a level.
const DefaultLogLevel = "INFO"

var levelNames = map[string]struct{}{
	"NOTSET":   {},
	"DEBUG":    {},
	"INFO":     {},
	"WARNING":  {},
	"ERROR":    {},
	"CRITICAL": {},
}

// NormalizeLevel upper-cases a severity name and checks it against the level
// names the host's logging module understands. A typo in a level env var
// fails here instead of being silently ignored at startup.
func NormalizeLevel(level string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(level))
	if normalized == "" {
		return DefaultLogLevel, nil
	}
	if _, ok := levelNames[normalized]; !ok {
		return "", fmt.Errorf("%w: got %q", ErrInvalidLogLevel, level)
	}
	return normalized, nil
}
