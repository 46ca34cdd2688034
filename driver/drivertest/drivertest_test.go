package drivertest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lanikai/mjpegcam/driver"
)

func TestDriverServesFramesThenRunsDry(t *testing.T) {
	d := NewSized(3, 5)

	b1, err := d.Acquire()
	assert.NoError(t, err)
	assert.Len(t, b1.Bytes(), 3)
	d.Release(b1)

	b2, err := d.Acquire()
	assert.NoError(t, err)
	assert.Len(t, b2.Bytes(), 5)
	d.Release(b2)

	b3, err := d.Acquire()
	assert.Nil(t, b3)
	assert.Equal(t, driver.ErrNoBuffer, err)

	assert.Equal(t, 2, d.Acquired())
	assert.Equal(t, 2, d.Released())
	assert.Equal(t, 0, d.Outstanding())
	assert.Equal(t, 1, d.MaxInFlight())
}

func TestDriverLoop(t *testing.T) {
	d := NewSized(1)
	d.Loop = true

	for i := 0; i < 5; i++ {
		b, err := d.Acquire()
		if !assert.NoError(t, err) {
			return
		}
		d.Release(b)
	}
	assert.Equal(t, 5, d.Acquired())
}

func TestDriverPoolExhaustion(t *testing.T) {
	d := NewSized(1, 1, 1)
	d.PoolSize = 2

	b1, _ := d.Acquire()
	b2, _ := d.Acquire()
	_, err := d.Acquire()
	assert.Equal(t, driver.ErrNoBuffer, err)
	assert.Equal(t, 2, d.MaxInFlight())

	d.Release(b1)
	d.Release(b2)
	assert.Equal(t, 0, d.Outstanding())
}

func TestDriverDoubleReleasePanics(t *testing.T) {
	d := NewSized(1)
	b, _ := d.Acquire()
	d.Release(b)

	assert.Panics(t, func() { d.Release(b) })
}

func TestDriverWithoutSensor(t *testing.T) {
	d := NewSized(1)
	d.FakeSensor = nil

	assert.Nil(t, d.Sensor())
}

func TestDriverInitAppliesFrameSize(t *testing.T) {
	d := NewSized(1)

	assert.NoError(t, d.Init(driver.Config{FrameSize: driver.FrameSizeSVGA, BufferCount: 2}))
	assert.Equal(t, driver.FrameSizeSVGA, d.Sensor().FrameSize())
	assert.Equal(t, 2, d.Config().BufferCount)

	assert.NoError(t, d.Deinit())
	assert.Equal(t, driver.ErrNotInitialized, d.Deinit())
}

func TestSensorRecordsCalls(t *testing.T) {
	s := NewSensor(driver.FrameSizeQVGA)

	assert.Equal(t, driver.StatusOK, s.SetControl(driver.ControlGain, 7))
	s.Status = driver.StatusFailed
	assert.Equal(t, driver.StatusFailed, s.SetControl(driver.ControlGain, 9))

	assert.Equal(t, []ControlCall{
		{driver.ControlGain, 7},
		{driver.ControlGain, 9},
	}, s.Calls())

	v, ok := s.Value(driver.ControlGain)
	assert.True(t, ok)
	assert.Equal(t, 7, v)
}
