package driver

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestParseFrameSize(t *testing.T) {
	cases := []struct {
		in   string
		want FrameSize
	}{
		{"vga", FrameSizeVGA},
		{"VGA", FrameSizeVGA},
		{" uxga ", FrameSizeUXGA},
		{"640x480", FrameSizeVGA},
		{"1280x720", FrameSizeHD},
		{"96x96", FrameSize96x96},
	}
	for _, c := range cases {
		fs, err := ParseFrameSize(c.in)
		assert.NoError(t, err, c.in)
		assert.Equal(t, c.want, fs, c.in)
	}
}

func TestParseFrameSizeRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "8k", "641x480", "x"} {
		fs, err := ParseFrameSize(in)
		assert.Error(t, err, in)
		assert.Equal(t, FrameSizeInvalid, fs, in)
	}
}

func TestFrameSizeDimensions(t *testing.T) {
	assert.Equal(t, 800, FrameSizeSVGA.Width())
	assert.Equal(t, 600, FrameSizeSVGA.Height())
	assert.Equal(t, "svga", FrameSizeSVGA.String())

	assert.False(t, FrameSizeInvalid.Valid())
	assert.Equal(t, 0, FrameSizeInvalid.Width())
	assert.Equal(t, "invalid", FrameSizeInvalid.String())

	all := FrameSizes()
	assert.Equal(t, FrameSize96x96, all[0])
	assert.Equal(t, FrameSizeUXGA, all[len(all)-1])
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "ok", StatusOK.String())
	assert.Equal(t, "busy", StatusBusy.String())
	assert.Equal(t, "status(7)", Status(7).String())
	assert.Equal(t, "gain_ceiling", ControlGainCeiling.String())
}

// Implemented by errors created with github.com/pkg/errors.
type stackTracer interface {
	StackTrace() errors.StackTrace
}

func TestErrorsCarryStackTraces(t *testing.T) {
	for _, err := range []error{ErrNoBuffer, ErrNotInitialized} {
		_, ok := err.(stackTracer)
		assert.True(t, ok, "%v", err)
		assert.Equal(t, err, errors.Cause(errors.Wrap(err, "Acquire")))
	}

	_, err := ParseFrameSize("8k")
	_, ok := err.(stackTracer)
	assert.True(t, ok)
	assert.EqualError(t, err, "Unknown frame size '8k'")
}
