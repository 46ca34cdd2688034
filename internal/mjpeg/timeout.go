package mjpeg

import (
	"io"
	"net"
	"os"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/xerrors"
)

// ErrTimeout is returned when a write does not complete within its time limit.
var ErrTimeout = errors.New("Write timeout")

// Writes are issued in chunks of at most this many bytes, so that the time
// limit is checked regularly on channels without deadline support.
const chunkSize = 4096

// Implemented by channels that support write deadlines, e.g. net.Conn.
type writeDeadliner interface {
	SetWriteDeadline(t time.Time) error
}

// WriteTimeout writes all of p to w, giving up once the time spent exceeds
// timeout. A non-positive timeout disables the limit.
func WriteTimeout(w io.Writer, p []byte, timeout time.Duration) error {
	if timeout <= 0 {
		_, err := w.Write(p)
		return err
	}
	return WriteDeadline(w, p, time.Now().Add(timeout))
}

// WriteDeadline writes all of p to w, giving up at deadline. A zero deadline
// disables the limit.
//
// If w supports write deadlines, the deadline bounds each write. Otherwise
// each chunk is written from a separate goroutine while the caller waits on a
// timer; a chunk that stalls past the limit is abandoned, still blocked inside
// w. Abandoned goroutines only ever hold a private copy of the chunk, never p.
//
// An *os.File the runtime cannot poll (a regular file, or a blocking pipe
// inherited as stdout) rejects deadlines with os.ErrNoDeadline, and is treated
// like a plain writer.
func WriteDeadline(w io.Writer, p []byte, deadline time.Time) error {
	if deadline.IsZero() {
		_, err := w.Write(p)
		return err
	}
	if !time.Now().Before(deadline) {
		return ErrTimeout
	}

	if d, ok := w.(writeDeadliner); ok {
		err := d.SetWriteDeadline(deadline)
		if err == nil {
			return writeWithDeadline(w, d, p)
		}
		if !xerrors.Is(err, os.ErrNoDeadline) {
			return err
		}
	}
	return writeWithTimer(w, p, deadline)
}

// The deadline must already be set on d.
func writeWithDeadline(w io.Writer, d writeDeadliner, p []byte) error {
	// Clear the deadline for whoever writes next.
	defer d.SetWriteDeadline(time.Time{})

	for len(p) > 0 {
		n := len(p)
		if n > chunkSize {
			n = chunkSize
		}
		if _, err := w.Write(p[:n]); err != nil {
			if isTimeout(err) {
				return ErrTimeout
			}
			return err
		}
		p = p[n:]
	}
	return nil
}

func writeWithTimer(w io.Writer, p []byte, deadline time.Time) error {
	timer := time.NewTimer(time.Until(deadline))
	defer timer.Stop()

	for len(p) > 0 {
		n := len(p)
		if n > chunkSize {
			n = chunkSize
		}
		chunk := append([]byte(nil), p[:n]...)

		// Buffered, so an abandoned writer can still deliver its result and exit.
		done := make(chan error, 1)
		go func() {
			_, err := w.Write(chunk)
			done <- err
		}()

		select {
		case err := <-done:
			if err != nil {
				return err
			}
		case <-timer.C:
			return ErrTimeout
		}
		p = p[n:]
	}
	return nil
}

func isTimeout(err error) bool {
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return true
	}
	return false
}
