package channel

import (
	"context"
	"io"
	"net"
	"net/url"

	"github.com/pkg/errors"
)

var ErrUnsupportedScheme = errors.New("Unsupported channel scheme")

// Dial connects to a remote consumer and returns the channel to stream into.
// Supported targets are tcp://host:port, ws://host/path and wss://host/path.
// The connection is always initiated from this side.
func Dial(ctx context.Context, target string) (io.WriteCloser, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, errors.Wrapf(err, "Invalid target '%s'", target)
	}

	switch u.Scheme {
	case "tcp", "tcp4", "tcp6":
		var d net.Dialer
		conn, err := d.DialContext(ctx, u.Scheme, u.Host)
		if err != nil {
			return nil, errors.Wrapf(err, "Dial %s", target)
		}
		return conn, nil

	case "ws", "wss":
		ws, err := DialWebsocket(ctx, target, nil)
		if err != nil {
			return nil, errors.Wrapf(err, "Dial %s", target)
		}
		return ws, nil

	default:
		return nil, errors.Wrapf(ErrUnsupportedScheme, "'%s'", u.Scheme)
	}
}
