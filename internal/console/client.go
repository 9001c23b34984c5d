package console

import (
	"bytes"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const (
	clientBuffer   = 512
	redialInterval = 2 * time.Second
	writeTimeout   = time.Second
)

// Client is an io.Writer that forwards each write to a console server.
// Write never blocks and never fails: lines are dropped when the buffer is
// full, the server is absent, or the client is closed. The connection is
// dialed lazily and redialed at most every redialInterval.
type Client struct {
	url    string
	dialer *websocket.Dialer

	lines chan []byte
	done  chan struct{}
	once  sync.Once
	wg    sync.WaitGroup

	dropped atomic.Int64
}

// NewClient starts a client for the console at addr (host:port).
func NewClient(addr string) *Client {
	c := &Client{
		url:    "ws://" + addr + "/ws",
		dialer: &websocket.Dialer{HandshakeTimeout: time.Second},
		lines:  make(chan []byte, clientBuffer),
		done:   make(chan struct{}),
	}
	c.wg.Add(1)
	go c.run()
	return c
}

// Write queues p for delivery and never blocks; it drops the line when the
// queue is full or the client is closed.
func (c *Client) Write(p []byte) (int, error) {
	select {
	case <-c.done:
		c.dropped.Add(1)
		return len(p), nil
	default:
	}
	select {
	case c.lines <- bytes.Clone(p):
	default:
		c.dropped.Add(1)
	}
	return len(p), nil
}

// Dropped returns how many writes were discarded.
func (c *Client) Dropped() int64 {
	return c.dropped.Load()
}

// Close stops the sender and closes the connection. Buffered lines that
// were not yet sent are discarded.
func (c *Client) Close() error {
	c.once.Do(func() { close(c.done) })
	c.wg.Wait()
	return nil
}

func (c *Client) run() {
	defer c.wg.Done()

	var (
		conn     *websocket.Conn
		lastDial time.Time
	)
	defer func() {
		if conn != nil {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeTimeout))
			conn.Close()
		}
	}()

	for {
		select {
		case <-c.done:
			return
		case line := <-c.lines:
			if conn == nil {
				if !lastDial.IsZero() && time.Since(lastDial) < redialInterval {
					c.dropped.Add(1)
					continue
				}
				lastDial = time.Now()
				var err error
				conn, _, err = c.dialer.Dial(c.url, nil)
				if err != nil {
					conn = nil
					c.dropped.Add(1)
					continue
				}
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, line); err != nil {
				conn.Close()
				conn = nil
				c.dropped.Add(1)
			}
		}
	}
}
