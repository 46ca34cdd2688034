// +build linux

package v4l2

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// Kernel ABI from <linux/videodev2.h>. Struct layouts must match the C structs
// exactly, including padding, on both 32-bit and 64-bit platforms.

const (
	V4L2_BUF_TYPE_VIDEO_CAPTURE uint32 = 1
	V4L2_MEMORY_MMAP            uint32 = 1
	V4L2_FIELD_ANY              uint32 = 0

	V4L2_CAP_VIDEO_CAPTURE uint32 = 0x00000001
	V4L2_CAP_STREAMING     uint32 = 0x04000000
	V4L2_CAP_DEVICE_CAPS   uint32 = 0x80000000

	V4L2_PIX_FMT_MJPEG uint32 = 'M' | 'J'<<8 | 'P'<<16 | 'G'<<24
	V4L2_PIX_FMT_JPEG  uint32 = 'J' | 'P'<<8 | 'E'<<16 | 'G'<<24
)

// Control IDs.
const (
	V4L2_CID_BASE        uint32 = 0x00980900
	V4L2_CID_BRIGHTNESS         = V4L2_CID_BASE + 0
	V4L2_CID_CONTRAST           = V4L2_CID_BASE + 1
	V4L2_CID_SATURATION         = V4L2_CID_BASE + 2
	V4L2_CID_AUTOGAIN           = V4L2_CID_BASE + 18
	V4L2_CID_GAIN               = V4L2_CID_BASE + 19
	V4L2_CID_HFLIP              = V4L2_CID_BASE + 20
	V4L2_CID_VFLIP              = V4L2_CID_BASE + 21
	V4L2_CID_SHARPNESS          = V4L2_CID_BASE + 27

	V4L2_CID_CAMERA_CLASS_BASE uint32 = 0x009a0900
	V4L2_CID_EXPOSURE_AUTO            = V4L2_CID_CAMERA_CLASS_BASE + 1
	V4L2_CID_EXPOSURE_ABSOLUTE        = V4L2_CID_CAMERA_CLASS_BASE + 2

	V4L2_CID_JPEG_CLASS_BASE            uint32 = 0x009d0900
	V4L2_CID_JPEG_COMPRESSION_QUALITY          = V4L2_CID_JPEG_CLASS_BASE + 3
)

// Values of V4L2_CID_EXPOSURE_AUTO.
const (
	V4L2_EXPOSURE_AUTO              int32 = 0
	V4L2_EXPOSURE_MANUAL            int32 = 1
	V4L2_EXPOSURE_SHUTTER_PRIORITY  int32 = 2
	V4L2_EXPOSURE_APERTURE_PRIORITY int32 = 3
)

type v4l2_capability struct {
	driver       [16]uint8
	card         [32]uint8
	bus_info     [32]uint8
	version      uint32
	capabilities uint32
	device_caps  uint32
	reserved     [3]uint32
}

type v4l2_pix_format struct {
	width        uint32
	height       uint32
	pixelformat  uint32
	field        uint32
	bytesperline uint32
	sizeimage    uint32
	colorspace   uint32
	priv         uint32
	flags        uint32
	ycbcr_enc    uint32
	quantization uint32
	xfer_func    uint32
}

type v4l2_format struct {
	typ uint32

	// 200-byte union. It holds pointers in some variants, hence the 64-bit
	// alignment where the platform gives uint64 one.
	fmt [25]uint64
}

// Access the union as a pixel format.
func (f *v4l2_format) pix() *v4l2_pix_format {
	return (*v4l2_pix_format)(unsafe.Pointer(&f.fmt[0]))
}

type v4l2_requestbuffers struct {
	count        uint32
	typ          uint32
	memory       uint32
	capabilities uint32
	flags        uint8
	reserved     [3]uint8
}

type v4l2_timecode struct {
	typ      uint32
	flags    uint32
	frames   uint8
	seconds  uint8
	minutes  uint8
	hours    uint8
	userbits [4]uint8
}

type v4l2_buffer struct {
	index     uint32
	typ       uint32
	bytesused uint32
	flags     uint32
	field     uint32
	timestamp unix.Timeval
	timecode  v4l2_timecode
	sequence  uint32
	memory    uint32

	// Union of offset (uint32), userptr (unsigned long), planes (pointer) and
	// fd (int32).
	m uintptr

	length    uint32
	reserved2 uint32
	request   uint32
}

// Buffer offset for V4L2_MEMORY_MMAP, stored at the start of the union.
func (b *v4l2_buffer) offset() uint32 {
	return *(*uint32)(unsafe.Pointer(&b.m))
}

type v4l2_control struct {
	id    uint32
	value int32
}

// ioctl request encoding, as in <asm-generic/ioctl.h>.
const (
	iocWrite = 1
	iocRead  = 2

	iocNrShift   = 0
	iocTypeShift = 8
	iocSizeShift = 16
	iocDirShift  = 30
)

func ioc(dir, nr, size uintptr) uintptr {
	return dir<<iocDirShift | size<<iocSizeShift | 'V'<<iocTypeShift | nr<<iocNrShift
}

var (
	VIDIOC_QUERYCAP  = ioc(iocRead, 0, unsafe.Sizeof(v4l2_capability{}))
	VIDIOC_G_FMT     = ioc(iocRead|iocWrite, 4, unsafe.Sizeof(v4l2_format{}))
	VIDIOC_S_FMT     = ioc(iocRead|iocWrite, 5, unsafe.Sizeof(v4l2_format{}))
	VIDIOC_REQBUFS   = ioc(iocRead|iocWrite, 8, unsafe.Sizeof(v4l2_requestbuffers{}))
	VIDIOC_QUERYBUF  = ioc(iocRead|iocWrite, 9, unsafe.Sizeof(v4l2_buffer{}))
	VIDIOC_QBUF      = ioc(iocRead|iocWrite, 15, unsafe.Sizeof(v4l2_buffer{}))
	VIDIOC_DQBUF     = ioc(iocRead|iocWrite, 17, unsafe.Sizeof(v4l2_buffer{}))
	VIDIOC_STREAMON  = ioc(iocWrite, 18, unsafe.Sizeof(int32(0)))
	VIDIOC_STREAMOFF = ioc(iocWrite, 19, unsafe.Sizeof(int32(0)))
	VIDIOC_S_CTRL    = ioc(iocRead|iocWrite, 28, unsafe.Sizeof(v4l2_control{}))
)
