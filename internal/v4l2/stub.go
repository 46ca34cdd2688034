// +build !linux

package v4l2

import (
	"github.com/lanikai/mjpegcam/driver"
)

// Driver stands in for the V4L2 driver on platforms without V4L2. It never
// initializes.
type Driver struct{}

func New() *Driver {
	return &Driver{}
}

func (d *Driver) Init(cfg driver.Config) error {
	return ErrUnsupported
}

func (d *Driver) Deinit() error {
	return driver.ErrNotInitialized
}

func (d *Driver) Sensor() driver.Sensor {
	return nil
}

func (d *Driver) Acquire() (driver.Buffer, error) {
	return nil, driver.ErrNotInitialized
}

func (d *Driver) Release(buf driver.Buffer) {
	panic("v4l2: release on a driver that never initialized")
}
