package realtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// Conn is an established push connection.
type Conn interface {
	// ReadMessage blocks for the next frame. It returns io.EOF when the peer
	// closed the connection normally.
	ReadMessage() ([]byte, error)
	Close() error
}

// Dialer opens push connections.
type Dialer interface {
	Dial(ctx context.Context, url string) (Conn, error)
}

// WSDialer dials WebSocket endpoints.
type WSDialer struct {
	dialer *websocket.Dialer
}

func NewWSDialer(handshakeTimeout time.Duration) *WSDialer {
	return &WSDialer{dialer: &websocket.Dialer{
		HandshakeTimeout: handshakeTimeout,
		Proxy:            websocket.DefaultDialer.Proxy,
	}}
}

func (d *WSDialer) Dial(ctx context.Context, u string) (Conn, error) {
	c, resp, err := d.dialer.DialContext(ctx, u, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("websocket handshake: %s: %w", resp.Status, err)
		}
		return nil, fmt.Errorf("websocket dial: %w", err)
	}
	return &wsConn{c: c}, nil
}

type wsConn struct {
	c *websocket.Conn
}

func (w *wsConn) ReadMessage() ([]byte, error) {
	_, data, err := w.c.ReadMessage()
	if err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return nil, io.EOF
		}
		return nil, err
	}
	return data, nil
}

func (w *wsConn) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	werr := w.c.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	cerr := w.c.Close()
	if werr != nil && !errors.Is(werr, websocket.ErrCloseSent) {
		return errors.Join(werr, cerr)
	}
	return cerr
}

// ListURL is the account document list channel endpoint.
func ListURL(base, token string) (string, error) {
	return channelURL(base, "/ws/document/list/", token)
}

// DetailURL is the per-document channel endpoint.
func DetailURL(base string, id int64, token string) (string, error) {
	return channelURL(base, "/ws/document/"+strconv.FormatInt(id, 10)+"/", token)
}

func channelURL(base, path, token string) (string, error) {
	u, err := url.Parse(strings.TrimRight(base, "/") + path)
	if err != nil {
		return "", fmt.Errorf("invalid websocket url: %w", err)
	}
	switch u.Scheme {
	case "ws", "wss":
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("invalid websocket scheme %q", u.Scheme)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
