// +build linux,amd64

package v4l2

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestStructSizes(t *testing.T) {
	assert.EqualValues(t, 104, unsafe.Sizeof(v4l2_capability{}))
	assert.EqualValues(t, 48, unsafe.Sizeof(v4l2_pix_format{}))
	assert.EqualValues(t, 208, unsafe.Sizeof(v4l2_format{}))
	assert.EqualValues(t, 20, unsafe.Sizeof(v4l2_requestbuffers{}))
	assert.EqualValues(t, 88, unsafe.Sizeof(v4l2_buffer{}))
	assert.EqualValues(t, 8, unsafe.Sizeof(v4l2_control{}))

	assert.EqualValues(t, 8, unsafe.Offsetof(v4l2_format{}.fmt))
	assert.EqualValues(t, 64, unsafe.Offsetof(v4l2_buffer{}.m))
}

func TestIoctlNumbers(t *testing.T) {
	assert.EqualValues(t, 0x80685600, VIDIOC_QUERYCAP)
	assert.EqualValues(t, 0xc0d05604, VIDIOC_G_FMT)
	assert.EqualValues(t, 0xc0d05605, VIDIOC_S_FMT)
	assert.EqualValues(t, 0xc0145608, VIDIOC_REQBUFS)
	assert.EqualValues(t, 0xc0585609, VIDIOC_QUERYBUF)
	assert.EqualValues(t, 0xc058560f, VIDIOC_QBUF)
	assert.EqualValues(t, 0xc0585611, VIDIOC_DQBUF)
	assert.EqualValues(t, 0x40045612, VIDIOC_STREAMON)
	assert.EqualValues(t, 0x40045613, VIDIOC_STREAMOFF)
	assert.EqualValues(t, 0xc008561c, VIDIOC_S_CTRL)
}

func TestBufferOffset(t *testing.T) {
	b := v4l2_buffer{m: 0x1000}
	assert.EqualValues(t, 0x1000, b.offset())
}
