package realtime

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/dmitrijs2005/docwatch/internal/logging"
)

// State is the lifecycle of a push channel.
type State int

const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "unknown"
	}
}

// Handler receives the events of one connection attempt. Callbacks run on
// the channel's reader goroutine and should only hand work over to the
// owner's event loop.
type Handler struct {
	OnOpen  func()
	OnFrame func(data []byte)
	// OnClose reports a transport close (err == nil for a normal close by
	// the peer) or a dial/read error. It is not called after Close.
	OnClose func(err error)
}

// Channel is one push connection and its state machine.
type Channel struct {
	name   string
	dialer Dialer
	log    logging.Logger

	mu     sync.Mutex
	state  State
	conn   Conn
	cancel context.CancelFunc
	gen    uint64
}

func NewChannel(name string, dialer Dialer, log logging.Logger) *Channel {
	return &Channel{name: name, dialer: dialer, log: log.With("channel", name)}
}

func (c *Channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Open starts connecting to url unless a connection is already being
// established or is up. It reports whether a new attempt was started.
func (c *Channel) Open(ctx context.Context, url string, h Handler) bool {
	c.mu.Lock()
	if c.state != Disconnected {
		c.mu.Unlock()
		return false
	}
	c.state = Connecting
	c.gen++
	gen := c.gen
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	go c.run(ctx, gen, url, h)
	return true
}

func (c *Channel) run(ctx context.Context, gen uint64, url string, h Handler) {
	conn, err := c.dialer.Dial(ctx, url)

	c.mu.Lock()
	if c.gen != gen {
		// closed while dialing
		c.mu.Unlock()
		if conn != nil {
			_ = conn.Close()
		}
		return
	}
	if err != nil {
		c.reset()
		c.mu.Unlock()
		c.log.Warn(ctx, "connection failed", "error", err)
		if h.OnClose != nil {
			h.OnClose(err)
		}
		return
	}
	c.state = Connected
	c.conn = conn
	c.mu.Unlock()

	c.log.Info(ctx, "connected")
	if h.OnOpen != nil {
		h.OnOpen()
	}

	for {
		data, err := conn.ReadMessage()
		if !c.current(gen) {
			return
		}
		if err != nil {
			c.mu.Lock()
			if c.gen != gen {
				c.mu.Unlock()
				return
			}
			c.reset()
			c.mu.Unlock()
			_ = conn.Close()

			if errors.Is(err, io.EOF) {
				c.log.Info(ctx, "closed by peer")
				err = nil
			} else {
				c.log.Warn(ctx, "connection lost", "error", err)
			}
			if h.OnClose != nil {
				h.OnClose(err)
			}
			return
		}
		if h.OnFrame != nil {
			h.OnFrame(data)
		}
	}
}

func (c *Channel) current(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen == gen
}

// reset discards the connection handle. c.mu must be held.
func (c *Channel) reset() {
	c.state = Disconnected
	c.conn = nil
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Close tears the connection down. No handler callback starts after Close
// returns; a frame that was already being delivered may still reach
// OnFrame, so owners discard work from a superseded connection.
func (c *Channel) Close() {
	c.mu.Lock()
	if c.state == Disconnected {
		c.mu.Unlock()
		return
	}
	c.gen++
	conn := c.conn
	c.reset()
	c.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
	}
	c.log.Info(context.Background(), "closed")
}
