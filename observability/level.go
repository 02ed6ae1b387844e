package observability

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Level is a logging severity. Only the named constants are valid; any other
// value makes decorators fall back to a warning instead of their log line.
type Level int

// Severity values, ordered from least to most important.
const (
	LevelDebug    Level = 10
	LevelInfo     Level = 20
	LevelWarning  Level = 30
	LevelError    Level = 40
	LevelCritical Level = 50
)

// ErrUnknownLevel is returned by ParseLevel for names it does not recognize.
var ErrUnknownLevel = errors.New("unknown log level")

// Valid reports whether l is one of the named severities.
func (l Level) Valid() bool {
	switch l {
	case LevelDebug, LevelInfo, LevelWarning, LevelError, LevelCritical:
		return true
	default:
		return false
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	case LevelCritical:
		return "CRITICAL"
	default:
		return "Level " + strconv.Itoa(int(l))
	}
}

// ParseLevel converts a level name (case-insensitive, "warn" accepted) or a
// decimal number into a Level. Numbers are returned as-is without validation.
func ParseLevel(s string) (Level, error) {
	name := strings.ToUpper(strings.TrimSpace(s))

	switch name {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarning, nil
	case "ERROR":
		return LevelError, nil
	case "CRITICAL":
		return LevelCritical, nil
	}

	n, err := strconv.Atoi(name)
	if err != nil {
		return 0, errors.Wrapf(ErrUnknownLevel, "%q", s)
	}

	return Level(n), nil
}
