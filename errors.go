package mjpegcam

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/lanikai/mjpegcam/driver"
)

var (
	ErrNoSensor       = errors.New("No sensor attached")
	ErrInvalidValue   = errors.New("Invalid value")
	ErrUnknownControl = errors.New("Unknown control")

	// Cause of every StatusError.
	ErrDriver = errors.New("Driver call failed")
)

// StatusError reports a sensor call that returned a nonzero status.
type StatusError struct {
	Op     string
	Status driver.Status
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Status)
}

// Cause lets errors.Cause map every StatusError to ErrDriver.
func (e *StatusError) Cause() error {
	return ErrDriver
}

func (e *StatusError) Unwrap() error {
	return ErrDriver
}
