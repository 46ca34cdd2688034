package drivertest

import (
	"sync"

	"github.com/lanikai/mjpegcam/driver"
)

// ControlCall records one SetControl call.
type ControlCall struct {
	ID    driver.ControlID
	Value int
}

// Sensor is a fake sensor that records every call it receives.
type Sensor struct {
	// Status returned from every call. Defaults to driver.StatusOK.
	Status driver.Status

	mu             sync.Mutex
	frameSize      driver.FrameSize
	frameSizeCalls int
	calls          []ControlCall
	values         map[driver.ControlID]int
}

func NewSensor(fs driver.FrameSize) *Sensor {
	return &Sensor{
		frameSize: fs,
		values:    make(map[driver.ControlID]int),
	}
}

func (s *Sensor) FrameSize() driver.FrameSize {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frameSize
}

func (s *Sensor) SetFrameSize(fs driver.FrameSize) driver.Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.frameSizeCalls++
	if s.Status != driver.StatusOK {
		return s.Status
	}
	s.frameSize = fs
	return driver.StatusOK
}

func (s *Sensor) SetControl(id driver.ControlID, value int) driver.Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, ControlCall{id, value})
	if s.Status != driver.StatusOK {
		return s.Status
	}
	if s.values == nil {
		s.values = make(map[driver.ControlID]int)
	}
	s.values[id] = value
	return driver.StatusOK
}

// FrameSizeCalls returns the number of SetFrameSize calls.
func (s *Sensor) FrameSizeCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frameSizeCalls
}

// Calls returns every SetControl call, oldest first.
func (s *Sensor) Calls() []ControlCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ControlCall(nil), s.calls...)
}

// Value returns the last value successfully set for a control.
func (s *Sensor) Value(id driver.ControlID) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[id]
	return v, ok
}
