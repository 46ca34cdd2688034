// Package channel provides output channels for an MJPEG stream beyond plain
// net.Conn and io.Writer values, and dials them from a URL.
package channel

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Websocket carries a byte stream over an established websocket connection.
// Each Write is sent as one binary message; message boundaries carry no
// meaning, and the receiver concatenates payloads.
type Websocket struct {
	conn *websocket.Conn
}

func NewWebsocket(conn *websocket.Conn) *Websocket {
	return &Websocket{conn}
}

// DialWebsocket connects to a ws:// or wss:// URL.
func DialWebsocket(ctx context.Context, url string, header http.Header) (*Websocket, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, err
	}
	return NewWebsocket(conn), nil
}

func (ws *Websocket) Write(p []byte) (int, error) {
	if err := ws.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// SetWriteDeadline bounds subsequent writes. After a write times out the
// connection is unusable.
func (ws *Websocket) SetWriteDeadline(t time.Time) error {
	return ws.conn.SetWriteDeadline(t)
}

// Close sends a close frame, then closes the underlying connection.
func (ws *Websocket) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	ws.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return ws.conn.Close()
}
