package mjpegcam

import (
	"time"

	"github.com/pkg/errors"

	"github.com/lanikai/mjpegcam/driver"
	"github.com/lanikai/mjpegcam/internal/logging"
)

var log = logging.DefaultLogger.WithTag("camera")

// DefaultSettleDelay is how long sensor changes are given to take effect.
const DefaultSettleDelay = 500 * time.Millisecond

// Camera controls one hardware capture source. A Camera is not safe for
// concurrent use: in particular, only one StreamMjpeg call may run at a time.
type Camera struct {
	drv driver.Driver

	// Wait applied after every successful sensor change.
	SettleDelay time.Duration

	sleep func(time.Duration)
}

// New returns a Camera driving drv. Call Begin before capturing.
func New(drv driver.Driver) *Camera {
	return &Camera{
		drv:         drv,
		SettleDelay: DefaultSettleDelay,
		sleep:       time.Sleep,
	}
}

// Begin initializes the capture hardware.
func (cam *Camera) Begin(cfg Config) error {
	if err := cam.drv.Init(cfg.driverConfig()); err != nil {
		return errors.Wrapf(err, "Init %s", cfg.Device)
	}
	log.Info("Camera started: %s %s (%dx%d)", cfg.Device, cfg.Resolution,
		cfg.Resolution.Width(), cfg.Resolution.Height())
	return nil
}

// End stops capture and frees the hardware.
func (cam *Camera) End() error {
	if err := cam.drv.Deinit(); err != nil {
		return errors.Wrap(err, "Deinit")
	}
	log.Info("Camera stopped")
	return nil
}

// Capture acquires the next frame. The caller owns the returned Frame and must
// Release it, normally with a defer right after the error check.
func (cam *Camera) Capture() (*Frame, error) {
	buf, err := cam.drv.Acquire()
	if err != nil {
		return nil, errors.Wrap(err, "Capture")
	}
	if buf == nil {
		return nil, errors.Wrap(driver.ErrNoBuffer, "Capture")
	}
	return newFrame(buf, cam.drv.Release), nil
}
