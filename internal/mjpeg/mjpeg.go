// Package mjpeg writes Motion JPEG as a multipart/x-mixed-replace HTTP
// response, the format browsers render progressively in an <img> tag.
//
// The response starts with a preamble naming the boundary, followed by one
// part per frame:
//
//	HTTP/1.1 200 OK\r\n
//	Content-Type: multipart/x-mixed-replace;boundary=B\r\n
//	\r\n
//	Content-Type: image/jpeg\r\n
//	Content-Length: N\r\n
//	\r\n
//	<N bytes>\r\n--B\r\n
//	...
package mjpeg

import (
	"io"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Boundary separates frames in the multipart stream.
const Boundary = "e8b8c539-047d-4777-a985-fbba6edff11e"

const (
	preamble = "HTTP/1.1 200 OK\r\n" +
		"Content-Type: multipart/x-mixed-replace;boundary=" + Boundary + "\r\n" +
		"\r\n"

	delimiter = "\r\n--" + Boundary + "\r\n"
)

// Writer emits the multipart framing around JPEG frames.
type Writer struct {
	w io.Writer

	// Time limit for the preamble, and for each frame part as a whole.
	// Non-positive means unbounded.
	Timeout time.Duration

	// Scratch space for part headers.
	hdr []byte
}

func NewWriter(w io.Writer, timeout time.Duration) *Writer {
	return &Writer{
		w:       w,
		Timeout: timeout,
		hdr:     make([]byte, 0, 64),
	}
}

// WritePreamble writes the status line and multipart content type. It must be
// called once, before any frame.
func (mw *Writer) WritePreamble() error {
	return WriteTimeout(mw.w, []byte(preamble), mw.Timeout)
}

// WriteFrame writes one complete part: headers, frame bytes and delimiter,
// all within a single Timeout.
//
// sent reports whether the frame bytes were delivered. It is true alongside an
// error when only the trailing delimiter failed.
func (mw *Writer) WriteFrame(frame []byte) (sent bool, err error) {
	var deadline time.Time
	if mw.Timeout > 0 {
		deadline = time.Now().Add(mw.Timeout)
	}

	mw.hdr = appendFrameHeader(mw.hdr[:0], len(frame))
	if err := WriteDeadline(mw.w, mw.hdr, deadline); err != nil {
		return false, errors.Wrap(err, "Frame header")
	}
	if err := WriteDeadline(mw.w, frame, deadline); err != nil {
		return false, errors.Wrap(err, "Frame")
	}
	if err := WriteDeadline(mw.w, []byte(delimiter), deadline); err != nil {
		return true, errors.Wrap(err, "Delimiter")
	}
	return true, nil
}

func appendFrameHeader(b []byte, length int) []byte {
	b = append(b, "Content-Type: image/jpeg\r\nContent-Length: "...)
	b = strconv.AppendInt(b, int64(length), 10)
	return append(b, "\r\n\r\n"...)
}
