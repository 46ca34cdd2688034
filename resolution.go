package mjpegcam

import "github.com/lanikai/mjpegcam/driver"

// Resolution is a sensor frame size. It implements pflag.Value and parses
// either a name ("vga") or dimensions ("640x480").
type Resolution = driver.FrameSize

const (
	Resolution96x96   = driver.FrameSize96x96
	ResolutionQQVGA   = driver.FrameSizeQQVGA
	ResolutionQCIF    = driver.FrameSizeQCIF
	ResolutionHQVGA   = driver.FrameSizeHQVGA
	Resolution240x240 = driver.FrameSize240x240
	ResolutionQVGA    = driver.FrameSizeQVGA
	ResolutionCIF     = driver.FrameSizeCIF
	ResolutionHVGA    = driver.FrameSizeHVGA
	ResolutionVGA     = driver.FrameSizeVGA
	ResolutionSVGA    = driver.FrameSizeSVGA
	ResolutionXGA     = driver.FrameSizeXGA
	ResolutionHD      = driver.FrameSizeHD
	ResolutionSXGA    = driver.FrameSizeSXGA
	ResolutionUXGA    = driver.FrameSizeUXGA
)

func ParseResolution(s string) (Resolution, error) {
	return driver.ParseFrameSize(s)
}
