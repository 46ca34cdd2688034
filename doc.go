/*
Package mjpegcam controls a camera sensor and streams its frames to a client as
Motion JPEG.

A Camera wraps a hardware capture source (a driver.Driver) and exposes three
things: sensor settings, single-frame capture, and StreamMjpeg, which writes a
multipart/x-mixed-replace HTTP response to any io.Writer.

	cam := mjpegcam.New(drv)
	if err := cam.Begin(mjpegcam.DefaultConfig()); err != nil {
		return err
	}
	defer cam.End()

	cam.Enable(mjpegcam.VerticalFlip, true)
	cam.ChangeResolution(mjpegcam.ResolutionSVGA)

	// conn is an accepted connection, e.g. from net.Listener.Accept.
	n := cam.StreamMjpeg(conn, mjpegcam.DefaultStreamConfig())

Accepting connections is left to the caller. StreamMjpeg holds at most one
hardware buffer at a time and releases every buffer it acquires, whichever way
the stream ends.
*/
package mjpegcam
