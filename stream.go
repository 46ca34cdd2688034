package mjpegcam

import (
	"io"
	"time"

	"github.com/lanikai/mjpegcam/internal/mjpeg"
)

// StreamMjpeg sends a multipart Motion JPEG HTTP response to w, one captured
// frame per part, and returns the number of frames sent.
//
// The camera must have been started in a JPEG pixel format. Frames are captured
// no more often than cfg.MinInterval, and each part (headers, frame and
// delimiter together) must be written within cfg.FrameTimeout. The stream ends
// when cfg.MaxFrames is reached, when a capture fails, or when a write fails
// or times out; none of these is reported as an error. Only the returned count
// tells them apart.
//
// StreamMjpeg blocks for the duration of the stream. If w implements
// SetWriteDeadline (e.g. a net.Conn), deadlines bound the writes. Files that
// cannot take a deadline, such as stdout redirected to a file, are bounded by a
// timer instead.
func (cam *Camera) StreamMjpeg(w io.Writer, cfg StreamConfig) int {
	mw := mjpeg.NewWriter(w, cfg.FrameTimeout)
	if err := mw.WritePreamble(); err != nil {
		log.Warn("Stream preamble: %v", err)
		return 0
	}

	lastCapture := time.Now()
	n := 0
	for cfg.MaxFrames < 0 || n < cfg.MaxFrames {
		if since := time.Since(lastCapture); since < cfg.MinInterval {
			cam.sleep(cfg.MinInterval - since)
		}
		lastCapture = time.Now()

		sent, err := cam.streamFrame(mw, n == 0)
		if sent {
			n++
		}
		if err != nil {
			log.Debug("Stream ending: %v", err)
			break
		}
	}

	log.Info("Streamed %d frames", n)
	return n
}

// Capture one frame and send it as a multipart part. The frame is released
// before returning, so at most one buffer is held between iterations. sent is
// true once the frame bytes have been delivered, even if the trailing
// delimiter then fails.
func (cam *Camera) streamFrame(mw *mjpeg.Writer, first bool) (sent bool, err error) {
	frame, err := cam.Capture()
	if err != nil {
		return false, err
	}
	defer frame.Release()

	// A sensor left in a raw format still streams, but browsers show nothing.
	if first && !frame.IsJPEG() {
		log.Warn("Frame of %d bytes has no JPEG start-of-image marker", frame.Size())
	}

	return mw.WriteFrame(frame.Bytes())
}
