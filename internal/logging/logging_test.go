package logging

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{
		"e":     Error,
		"WARN":  Warn,
		"info":  Info,
		"D":     Debug,
		"trace": MaxLevel,
		"5":     Level(5),
	} {
		level, err := parseLevel(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, level, in)
	}

	for _, in := range []string{"loud", "10", "-4"} {
		_, err := parseLevel(in)
		assert.Error(t, err, in)
	}
}

func TestParseDirectives(t *testing.T) {
	level, tags, errs := parseDirectives("debug,camera=warn,v4l2=bogus,mjpeg=3")

	assert.Equal(t, Debug, level)
	assert.Equal(t, []tagLevel{{"camera", Warn}, {"mjpeg", Level(3)}}, tags)
	assert.Len(t, errs, 1)
}

func TestParseDirectivesEmpty(t *testing.T) {
	level, tags, errs := parseDirectives("")

	assert.Equal(t, Info, level)
	assert.Empty(t, tags)
	assert.Empty(t, errs)
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "Error", Error.String())
	assert.Equal(t, "Debug", Debug.String())
	assert.Equal(t, "7", Level(7).String())
	assert.Equal(t, byte('W'), Warn.letter())
	assert.Equal(t, byte('7'), Level(7).letter())
	assert.Equal(t, "Off", Off.String())
}

func TestParseLevelOff(t *testing.T) {
	level, err := parseLevel("none")
	assert.NoError(t, err)
	assert.Equal(t, Off, level)
}

func TestConfigure(t *testing.T) {
	color.NoColor = true
	defer Configure("")

	var out bytes.Buffer
	root := &Logger{Info, "", &output{w: &out}}
	camera := root.WithTag("configure-camera")
	v4l2 := root.WithTag("configure-v4l2")

	camera.Debug("hidden")
	assert.Empty(t, out.String())

	assert.NoError(t, Configure("warn,configure-camera=debug"))
	camera.Debug("shown")
	v4l2.Info("still hidden")
	assert.Contains(t, out.String(), "shown")
	assert.NotContains(t, out.String(), "still hidden")
	assert.Equal(t, Warn, DefaultLogger.Level)

	assert.Error(t, Configure("camera=loud"))
}

func TestLoggerFormat(t *testing.T) {
	color.NoColor = true

	var out bytes.Buffer
	log := &Logger{Info, "test", &output{w: &out}}

	log.Info("hello %d", 42)
	log.Debug("dropped")

	line := out.String()
	assert.Contains(t, line, " I/test[logging_test.go:")
	assert.True(t, strings.HasSuffix(line, "] hello 42\n"), line)
	assert.Equal(t, 1, strings.Count(line, "\n"))
}

func TestDerivedLoggersShareDestination(t *testing.T) {
	color.NoColor = true

	parent := &Logger{Debug, "", &output{w: new(bytes.Buffer)}}
	child := parent.WithTag("child")

	var out bytes.Buffer
	parent.SetDestination(&out)
	child.Warn("redirected")

	assert.Contains(t, out.String(), "W/child")
	assert.Contains(t, out.String(), "redirected")
}

func TestConcurrentLogging(t *testing.T) {
	color.NoColor = true

	var out bytes.Buffer
	log := &Logger{Info, "c", &output{w: &out}}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			log.Info("message %d", n)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, strings.Count(out.String(), "\n"))
}
