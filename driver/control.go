package driver

import "strconv"

// ControlID identifies a sensor parameter understood by Sensor.SetControl.
type ControlID int

const (
	ControlAutoGain ControlID = iota + 1
	ControlAutoExposure
	ControlGain
	ControlExposure
	ControlVerticalFlip
	ControlHorizontalFlip
	ControlQuality
	ControlGainCeiling
	ControlBrightness
	ControlSaturation
	ControlContrast
	ControlSharpness
	ControlLensCorrection
	ControlBlackPixelCorrection
	ControlWhitePixelCorrection
)

var controlNames = map[ControlID]string{
	ControlAutoGain:             "auto_gain",
	ControlAutoExposure:         "auto_exposure",
	ControlGain:                 "gain",
	ControlExposure:             "exposure",
	ControlVerticalFlip:         "vflip",
	ControlHorizontalFlip:       "hflip",
	ControlQuality:              "quality",
	ControlGainCeiling:          "gain_ceiling",
	ControlBrightness:           "brightness",
	ControlSaturation:           "saturation",
	ControlContrast:             "contrast",
	ControlSharpness:            "sharpness",
	ControlLensCorrection:       "lens_correction",
	ControlBlackPixelCorrection: "bpc",
	ControlWhitePixelCorrection: "wpc",
}

func (id ControlID) String() string {
	if name, ok := controlNames[id]; ok {
		return name
	}
	return "control(" + strconv.Itoa(int(id)) + ")"
}

// Gain ceiling settings, as passed to SetControl(ControlGainCeiling, ...).
const (
	GainCeiling2x = iota
	GainCeiling4x
	GainCeiling8x
	GainCeiling16x
	GainCeiling32x
	GainCeiling64x
	GainCeiling128x
)
