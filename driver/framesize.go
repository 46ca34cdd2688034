package driver

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// FrameSize enumerates the capture resolutions a sensor can be switched to.
type FrameSize int

const (
	FrameSize96x96 FrameSize = iota
	FrameSizeQQVGA
	FrameSizeQCIF
	FrameSizeHQVGA
	FrameSize240x240
	FrameSizeQVGA
	FrameSizeCIF
	FrameSizeHVGA
	FrameSizeVGA
	FrameSizeSVGA
	FrameSizeXGA
	FrameSizeHD
	FrameSizeSXGA
	FrameSizeUXGA

	// FrameSizeInvalid marks an unknown or unset frame size.
	FrameSizeInvalid FrameSize = -1
)

var frameSizes = []struct {
	name          string
	width, height int
}{
	FrameSize96x96:   {"96x96", 96, 96},
	FrameSizeQQVGA:   {"qqvga", 160, 120},
	FrameSizeQCIF:    {"qcif", 176, 144},
	FrameSizeHQVGA:   {"hqvga", 240, 176},
	FrameSize240x240: {"240x240", 240, 240},
	FrameSizeQVGA:    {"qvga", 320, 240},
	FrameSizeCIF:     {"cif", 400, 296},
	FrameSizeHVGA:    {"hvga", 480, 320},
	FrameSizeVGA:     {"vga", 640, 480},
	FrameSizeSVGA:    {"svga", 800, 600},
	FrameSizeXGA:     {"xga", 1024, 768},
	FrameSizeHD:      {"hd", 1280, 720},
	FrameSizeSXGA:    {"sxga", 1280, 1024},
	FrameSizeUXGA:    {"uxga", 1600, 1200},
}

// FrameSizes returns every valid frame size, smallest first.
func FrameSizes() []FrameSize {
	all := make([]FrameSize, len(frameSizes))
	for i := range frameSizes {
		all[i] = FrameSize(i)
	}
	return all
}

// Valid reports whether fs is one of the enumerated frame sizes.
func (fs FrameSize) Valid() bool {
	return fs >= 0 && int(fs) < len(frameSizes)
}

// Width in pixels, or 0 if fs is not valid.
func (fs FrameSize) Width() int {
	if !fs.Valid() {
		return 0
	}
	return frameSizes[fs].width
}

// Height in pixels, or 0 if fs is not valid.
func (fs FrameSize) Height() int {
	if !fs.Valid() {
		return 0
	}
	return frameSizes[fs].height
}

func (fs FrameSize) String() string {
	if !fs.Valid() {
		return "invalid"
	}
	return frameSizes[fs].name
}

// FindFrameSize returns the frame size with the given dimensions.
func FindFrameSize(width, height int) (FrameSize, bool) {
	for i, f := range frameSizes {
		if f.width == width && f.height == height {
			return FrameSize(i), true
		}
	}
	return FrameSizeInvalid, false
}

// ParseFrameSize accepts either a name ("vga", "uxga") or dimensions
// ("640x480").
func ParseFrameSize(s string) (FrameSize, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, f := range frameSizes {
		if f.name == s {
			return FrameSize(i), nil
		}
	}

	var width, height int
	if n, err := fmt.Sscanf(s, "%dx%d", &width, &height); n == 2 && err == nil {
		if fs, ok := FindFrameSize(width, height); ok {
			return fs, nil
		}
	}
	return FrameSizeInvalid, errors.Errorf("Unknown frame size '%s'", s)
}

// Set implements pflag.Value.
func (fs *FrameSize) Set(s string) error {
	v, err := ParseFrameSize(s)
	if err != nil {
		return err
	}
	*fs = v
	return nil
}

// Type implements pflag.Value.
func (fs *FrameSize) Type() string {
	return "resolution"
}
