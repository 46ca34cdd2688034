// Package v4l2 captures Motion JPEG frames from a Video4Linux2 device.
package v4l2

import (
	errors "golang.org/x/xerrors"

	"github.com/lanikai/mjpegcam/driver"
	"github.com/lanikai/mjpegcam/internal/logging"
)

var log = logging.DefaultLogger.WithTag("v4l2")

// ErrUnsupported is returned by Init on platforms without V4L2.
var ErrUnsupported = errors.New("V4L2 is only available on Linux")

var _ driver.Driver = (*Driver)(nil)
