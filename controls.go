package mjpegcam

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/lanikai/mjpegcam/driver"
)

// Control names a sensor setting.
type Control int

const (
	AutoGain             Control = iota + 1 // on/off
	AutoExposure                            // on/off
	Gain                                    // 0 to 30
	Exposure                                // 0 to 1200
	VerticalFlip                            // on/off
	HorizontalFlip                          // on/off
	Quality                                 // 0 (best) to 63
	GainCeiling                             // 2, 4, 8, 16, 32, 64 or 128
	Brightness                              // -2 to 2
	Saturation                              // -2 to 2
	Contrast                                // -2 to 2
	Sharpness                               // -2 to 2
	LensCorrection                          // on/off
	BlackPixelCorrection                    // on/off
	WhitePixelCorrection                    // on/off
)

type controlEntry struct {
	id      driver.ControlID
	boolean bool

	// Maps the requested value to the driver value. Nil passes it through.
	convert func(int) (int, bool)
}

var controlTable = map[Control]controlEntry{
	AutoGain:             {driver.ControlAutoGain, true, nil},
	AutoExposure:         {driver.ControlAutoExposure, true, nil},
	Gain:                 {driver.ControlGain, false, nil},
	Exposure:             {driver.ControlExposure, false, nil},
	VerticalFlip:         {driver.ControlVerticalFlip, true, nil},
	HorizontalFlip:       {driver.ControlHorizontalFlip, true, nil},
	Quality:              {driver.ControlQuality, false, nil},
	GainCeiling:          {driver.ControlGainCeiling, false, gainCeilingStep},
	Brightness:           {driver.ControlBrightness, false, nil},
	Saturation:           {driver.ControlSaturation, false, nil},
	Contrast:             {driver.ControlContrast, false, nil},
	Sharpness:            {driver.ControlSharpness, false, nil},
	LensCorrection:       {driver.ControlLensCorrection, true, nil},
	BlackPixelCorrection: {driver.ControlBlackPixelCorrection, true, nil},
	WhitePixelCorrection: {driver.ControlWhitePixelCorrection, true, nil},
}

var gainCeilings = map[int]int{
	2:   driver.GainCeiling2x,
	4:   driver.GainCeiling4x,
	8:   driver.GainCeiling8x,
	16:  driver.GainCeiling16x,
	32:  driver.GainCeiling32x,
	64:  driver.GainCeiling64x,
	128: driver.GainCeiling128x,
}

func gainCeilingStep(ceiling int) (int, bool) {
	step, ok := gainCeilings[ceiling]
	return step, ok
}

func (c Control) String() string {
	if e, ok := controlTable[c]; ok {
		return e.id.String()
	}
	return "Control(" + strconv.Itoa(int(c)) + ")"
}

// IsBoolean reports whether the control is an on/off switch.
func (c Control) IsBoolean() bool {
	return controlTable[c].boolean
}

// ParseControl looks up a control by name, e.g. "gain" or "vflip".
func ParseControl(name string) (Control, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, e := range controlTable {
		if e.id.String() == name {
			return c, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownControl, "'%s'", name)
}

// ControlNames lists every control name, sorted.
func ControlNames() []string {
	names := make([]string, 0, len(controlTable))
	for _, e := range controlTable {
		names = append(names, e.id.String())
	}
	sort.Strings(names)
	return names
}

// Set changes a sensor setting, then waits SettleDelay.
func (cam *Camera) Set(c Control, value int) error {
	return cam.SetWithin(c, value, cam.SettleDelay)
}

// Enable switches an on/off control.
func (cam *Camera) Enable(c Control, on bool) error {
	if !c.IsBoolean() {
		return errors.Wrapf(ErrInvalidValue, "%s is not an on/off control", c)
	}
	value := 0
	if on {
		value = 1
	}
	return cam.Set(c, value)
}

// SetWithin changes a sensor setting, then waits for the given settle time.
// Exactly one driver call is made, and only if the value is acceptable.
func (cam *Camera) SetWithin(c Control, value int, settle time.Duration) error {
	e, ok := controlTable[c]
	if !ok {
		return errors.Wrapf(ErrUnknownControl, "%d", int(c))
	}

	sensor := cam.drv.Sensor()
	if sensor == nil {
		return ErrNoSensor
	}

	v := value
	if e.boolean && v != 0 {
		v = 1
	}
	if e.convert != nil {
		if v, ok = e.convert(value); !ok {
			return errors.Wrapf(ErrInvalidValue, "%s %d", c.String(), value)
		}
	}

	if status := sensor.SetControl(e.id, v); status != driver.StatusOK {
		return &StatusError{Op: "Set " + c.String(), Status: status}
	}
	log.Debug("%s = %d", c.String(), value)
	cam.sleep(settle)
	return nil
}

// SetByName parses a control name and value, as given on a command line.
// Boolean controls accept on/off, true/false, yes/no or a number.
func (cam *Camera) SetByName(name, value string) error {
	c, err := ParseControl(name)
	if err != nil {
		return err
	}
	v, err := parseControlValue(c, value)
	if err != nil {
		return err
	}
	return cam.Set(c, v)
}

func parseControlValue(c Control, s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c.IsBoolean() {
		switch s {
		case "on", "true", "yes":
			return 1, nil
		case "off", "false", "no":
			return 0, nil
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidValue, "%s '%s'", c, s)
	}
	return v, nil
}

// ChangeResolution switches the sensor to another frame size, then waits
// SettleDelay. Asking for the current frame size succeeds without touching the
// driver, which refuses some transitions once a frame size is active.
func (cam *Camera) ChangeResolution(res Resolution) error {
	return cam.ChangeResolutionWithin(res, cam.SettleDelay)
}

// ChangeResolutionWithin is ChangeResolution with an explicit settle time.
func (cam *Camera) ChangeResolutionWithin(res Resolution, settle time.Duration) error {
	if !res.Valid() {
		return errors.Wrapf(ErrInvalidValue, "resolution %d", int(res))
	}

	sensor := cam.drv.Sensor()
	if sensor == nil {
		return ErrNoSensor
	}

	if sensor.FrameSize() == res {
		return nil
	}

	if status := sensor.SetFrameSize(res); status != driver.StatusOK {
		return &StatusError{Op: "Set resolution " + res.String(), Status: status}
	}
	log.Info("Resolution changed to %s (%dx%d)", res, res.Width(), res.Height())
	cam.sleep(settle)
	return nil
}
