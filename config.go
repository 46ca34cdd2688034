package mjpegcam

import (
	"time"

	flag "github.com/spf13/pflag"

	"github.com/lanikai/mjpegcam/driver"
)

// Config holds the settings applied once by Camera.Begin.
type Config struct {
	// Video capture device.
	Device string

	// Initial frame size.
	Resolution Resolution

	// JPEG quality, 0 (best) to 63 (worst).
	JPEGQuality int

	// Number of hardware frame buffers. A stream holds at most one at a time;
	// the rest let the sensor keep filling while a frame is being sent.
	BufferCount int
}

func DefaultConfig() Config {
	return Config{
		Device:      "/dev/video0",
		Resolution:  ResolutionVGA,
		JPEGQuality: 12,
		BufferCount: 2,
	}
}

// RegisterFlags binds the configuration to command line flags. Current values
// become the flag defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVarP(&c.Device, "input", "i", c.Device, "Video capture device")
	fs.VarP(&c.Resolution, "resolution", "r", "Frame size, by name (vga) or dimensions (640x480)")
	fs.IntVarP(&c.JPEGQuality, "quality", "q", c.JPEGQuality, "JPEG quality, 0 (best) to 63 (worst)")
	fs.IntVar(&c.BufferCount, "buffers", c.BufferCount, "Number of hardware frame buffers")
}

func (c *Config) driverConfig() driver.Config {
	return driver.Config{
		Device:      c.Device,
		FrameSize:   c.Resolution,
		JPEGQuality: c.JPEGQuality,
		BufferCount: c.BufferCount,
	}
}

// StreamConfig controls one StreamMjpeg call.
type StreamConfig struct {
	// Minimum interval between frame captures.
	MinInterval time.Duration

	// Maximum number of frames before the stream ends. Negative means no limit.
	MaxFrames int

	// Time limit for writing one frame.
	FrameTimeout time.Duration
}

func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		MinInterval:  0,
		MaxFrames:    -1,
		FrameTimeout: 10 * time.Second,
	}
}

// RegisterFlags binds the stream settings to command line flags. Current values
// become the flag defaults.
func (c *StreamConfig) RegisterFlags(fs *flag.FlagSet) {
	fs.DurationVar(&c.MinInterval, "min-interval", c.MinInterval, "Minimum interval between frame captures")
	fs.IntVarP(&c.MaxFrames, "max-frames", "n", c.MaxFrames, "Stop after this many frames (-1 for no limit)")
	fs.DurationVar(&c.FrameTimeout, "frame-timeout", c.FrameTimeout, "Time limit for writing one frame")
}
