package transport

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"downlink/internal/stanza"
)

var (
	// ErrConnection marks dial, read, or write failures at the socket layer,
	// including use of a connection after it was closed.
	ErrConnection = errors.New("connection error")

	// ErrTimeout marks an exchange where no complete response arrived within
	// the configured window. The connection is closed before this error is
	// returned; a partially framed response cannot be resumed.
	ErrTimeout = errors.New("response timeout")
)

// DefaultTimeout bounds a single receive when no explicit timeout is set.
const DefaultTimeout = 20 * time.Second

// Network splits a configured endpoint into a dial network and address.
// Anything containing a path separator is a Unix socket path; everything
// else is treated as a TCP host:port.
func Network(endpoint string) (string, string) {
	if strings.Contains(endpoint, "/") {
		return "unix", endpoint
	}
	return "tcp", endpoint
}

// Conn is the channel to the daemon. It carries at most one request/response
// exchange at a time; serializing exchanges is the caller's responsibility.
// Close may race with a pending Receive, which is how cancellation unblocks
// the read.
type Conn struct {
	network string
	address string
	timeout time.Duration

	mu     sync.Mutex
	conn   net.Conn
	reader *bufio.Reader
}

// New prepares a connection to the endpoint without dialing it.
func New(endpoint string, timeout time.Duration) *Conn {
	network, address := Network(endpoint)
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Conn{network: network, address: address, timeout: timeout}
}

// Open dials the endpoint. Opening an already open connection is a no-op,
// and a closed connection may be reopened.
func (c *Conn) Open(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		return nil
	}
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, c.network, c.address)
	if err != nil {
		return fmt.Errorf("%w: dial %s %s: %w", ErrConnection, c.network, c.address, err)
	}
	c.conn = conn
	c.reader = bufio.NewReader(conn)
	return nil
}

// IsOpen reports whether the connection is currently dialed.
func (c *Conn) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Send writes one fully encoded command line. On a write failure the
// connection is closed, since the daemon may have seen a partial line.
func (c *Conn) Send(line []byte) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return fmt.Errorf("%w: connection is closed", ErrConnection)
	}
	if _, err := conn.Write(line); err != nil {
		_ = c.Close()
		return fmt.Errorf("%w: write: %w", ErrConnection, err)
	}
	return nil
}

// Receive reads response bytes until the daemon's end marker and returns the
// payload without the marker line. If the timeout elapses or the context is
// canceled first, the connection is closed before returning: its framing
// state is unknown and the exchange cannot be resumed.
func (c *Conn) Receive(ctx context.Context) ([]byte, error) {
	c.mu.Lock()
	conn, reader := c.conn, c.reader
	c.mu.Unlock()
	if conn == nil {
		return nil, fmt.Errorf("%w: connection is closed", ErrConnection)
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetReadDeadline(deadline); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("%w: set read deadline: %w", ErrConnection, err)
	}

	// A canceled caller must not leave the read outstanding.
	watchDone := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-watchDone:
		}
	}()
	defer close(watchDone)

	var payload bytes.Buffer
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			_ = c.Close()
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: receive canceled: %w", ErrConnection, ctx.Err())
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				return nil, fmt.Errorf("%w: no complete response within %s", ErrTimeout, c.timeout)
			}
			return nil, fmt.Errorf("%w: read: %w", ErrConnection, err)
		}
		if strings.TrimSuffix(line, stanza.Terminator) == stanza.EndMarker {
			_ = conn.SetReadDeadline(time.Time{})
			return payload.Bytes(), nil
		}
		payload.WriteString(line)
	}
}

// Close releases the socket. It is safe to call any number of times.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.reader = nil
	return err
}
