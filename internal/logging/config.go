package logging

import (
	"fmt"
	"os"
	"strings"
)

const envVar = "LOGLEVEL"

type tagLevel struct {
	tag   string
	level Level
}

var tagLevels []tagLevel

func init() {
	level, tags, errs := parseDirectives(os.Getenv(envVar))
	for _, err := range errs {
		fmt.Fprintf(os.Stderr, "Invalid %s directive: %s\n", envVar, err)
	}
	defaultLevel = level
	tagLevels = tags

	DefaultLogger.Level = defaultLevel
}

// Parse comma-separated "tag=level" directives. A directive without "tag=" sets
// the default level. Invalid directives are reported and skipped.
func parseDirectives(s string) (level Level, tags []tagLevel, errs []error) {
	level = Info
	for _, d := range strings.Split(s, ",") {
		if d == "" {
			continue
		}
		v := strings.SplitN(d, "=", 2)
		l, err := parseLevel(v[len(v)-1])
		if err != nil {
			errs = append(errs, fmt.Errorf("'%s': %s", d, err))
			continue
		}
		if len(v) == 1 {
			level = l
		} else {
			tags = append(tags, tagLevel{v[0], l})
		}
	}
	return
}

func determineLevel(tag string, fallback Level) Level {
	for _, e := range tagLevels {
		if e.tag == tag {
			return e.level
		}
	}
	return fallback
}

// Configure applies logging directives in LOGLEVEL syntax, replacing the ones
// read from the environment, e.g. "debug" or "info,v4l2=trace". Levels are not
// synchronized with logging calls, so configure before starting goroutines.
func Configure(directives string) error {
	level, tags, errs := parseDirectives(directives)
	if len(errs) > 0 {
		return errs[0]
	}

	defaultLevel = level
	tagLevels = tags
	DefaultLogger.Level = level

	registry.Lock()
	defer registry.Unlock()
	for _, l := range registry.loggers {
		l.Level = determineLevel(l.Tag, level)
	}
	return nil
}
