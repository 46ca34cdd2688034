// +build linux

package mjpegcam

import (
	"io/ioutil"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanikai/mjpegcam/driver/drivertest"
)

// A blocking pipe, like the stdout a shell hands to `mjpegcam | nc ...`. The
// runtime cannot poll it, so it rejects write deadlines.
func blockingPipe(t *testing.T) (r, w *os.File) {
	var fds [2]int
	require.NoError(t, syscall.Pipe(fds[:]))
	return os.NewFile(uintptr(fds[0]), "pipe-r"), os.NewFile(uintptr(fds[1]), "pipe-w")
}

func TestStreamToBlockingPipe(t *testing.T) {
	r, w := blockingPipe(t)
	defer r.Close()
	require.Error(t, w.SetWriteDeadline(time.Now()))

	received := make(chan []byte, 1)
	go func() {
		data, _ := ioutil.ReadAll(r)
		received <- data
	}()

	d := drivertest.NewSized(100, 2000, 70000)
	cam := New(d)
	n := cam.StreamMjpeg(w, streamConfig(-1))
	w.Close()

	assert.Equal(t, 3, n)
	assert.Equal(t, expectedStream(d.Frames...), <-received)
	assert.Equal(t, 0, d.Outstanding())
}

func TestStreamToStalledBlockingPipe(t *testing.T) {
	r, w := blockingPipe(t)
	defer w.Close()
	// Closing the read end unblocks the abandoned write with EPIPE.
	defer r.Close()

	// Larger than the pipe buffer, and nobody reads.
	d := drivertest.NewSized(1 << 20)
	cam := New(d)

	cfg := streamConfig(-1)
	cfg.FrameTimeout = 50 * time.Millisecond

	start := time.Now()
	n := cam.StreamMjpeg(w, cfg)

	assert.Equal(t, 0, n)
	assert.True(t, time.Since(start) < 5*time.Second)
	assert.Equal(t, 1, d.Acquired())
	assert.Equal(t, 1, d.Released())
}
