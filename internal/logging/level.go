package logging

import (
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
)

// Logging level. Higher values are more verbose.
type Level int

const (
	Off Level = iota - 3
	Error
	Warn
	Info
	Debug

	// Trace levels run from Debug+1 up to MaxLevel.
	MaxLevel Level = 9
)

var defaultLevel = Info

var levelNames = map[string]Level{
	"off":   Off,
	"none":  Off,
	"e":     Error,
	"error": Error,
	"w":     Warn,
	"warn":  Warn,
	"i":     Info,
	"info":  Info,
	"d":     Debug,
	"debug": Debug,
	"t":     MaxLevel,
	"trace": MaxLevel,
}

// Accepts a level name ("debug"), its first letter ("d") or a number between
// -3 and 9.
func parseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if l, ok := levelNames[s]; ok {
		return l, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Errorf("Invalid logging level '%s'", s)
	}
	if l := Level(n); l >= Off && l <= MaxLevel {
		return l, nil
	}
	return 0, errors.Errorf("Logging level out of range: %d", n)
}

func (l Level) String() string {
	switch l {
	case Off:
		return "Off"
	case Error:
		return "Error"
	case Warn:
		return "Warn"
	case Info:
		return "Info"
	case Debug:
		return "Debug"
	default:
		return strconv.Itoa(int(l))
	}
}

// Single character shown in each log line.
func (l Level) letter() byte {
	switch {
	case l <= Error:
		return 'E'
	case l <= Debug:
		return "WID"[l-Warn]
	default:
		return byte('0' + l)
	}
}

var levelColors = map[Level]*color.Color{
	Error: color.New(color.FgRed, color.Bold),
	Warn:  color.New(color.FgRed),
	Info:  color.New(color.Reset),
	Debug: color.New(color.FgGreen),
}

// Every trace level shares one color.
var traceColor = color.New(color.FgYellow)

func (l Level) color() *color.Color {
	if c, ok := levelColors[l]; ok {
		return c
	}
	return traceColor
}
