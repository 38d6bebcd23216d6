package ipc

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"downlink/internal/logging"
	"downlink/internal/stanza"
	"downlink/internal/transport"
)

// Mode selects how the client uses connections.
type Mode string

const (
	// ModeShared keeps one connection open across calls, serialized by a
	// lock held over the whole send+receive exchange. Suits long-lived
	// concurrent callers.
	ModeShared Mode = "shared"

	// ModePerCall dials a fresh connection for every exchange and closes
	// it afterwards. Suits one-shot CLI invocations.
	ModePerCall Mode = "percall"
)

// Options configures a Client.
type Options struct {
	// Endpoint is the daemon's socket address: a Unix socket path or a TCP
	// host:port.
	Endpoint string

	// Timeout bounds each receive. Zero means transport.DefaultTimeout.
	Timeout time.Duration

	// Mode defaults to ModeShared.
	Mode Mode

	// AutoConnect lets a shared-mode call dial the connection if it is not
	// open. When false, calls on a closed client fail with ErrConnection.
	AutoConnect bool

	Logger *slog.Logger
}

// Client talks the stanza protocol to the receiver daemon. It is stateless
// between calls apart from the shared connection's open/closed state, and is
// safe for concurrent use: shared mode serializes exchanges, per-call mode
// gives every exchange its own connection.
type Client struct {
	endpoint    string
	timeout     time.Duration
	mode        Mode
	autoConnect bool
	logger      *slog.Logger

	mu   sync.Mutex
	conn *transport.Conn
}

// New builds a client from options. No connection is made until Open or the
// first call.
func New(opts Options) (*Client, error) {
	if opts.Endpoint == "" {
		return nil, invalidf("endpoint must not be empty")
	}
	mode := opts.Mode
	if mode == "" {
		mode = ModeShared
	}
	if mode != ModeShared && mode != ModePerCall {
		return nil, invalidf("unknown connection mode %q", mode)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	c := &Client{
		endpoint:    opts.Endpoint,
		timeout:     opts.Timeout,
		mode:        mode,
		autoConnect: opts.AutoConnect,
		logger:      logger,
	}
	if mode == ModeShared {
		c.conn = transport.New(opts.Endpoint, opts.Timeout)
	}
	return c, nil
}

// Open eagerly dials the shared connection. In per-call mode it is a no-op.
func (c *Client) Open(ctx context.Context) error {
	if c.mode != ModeShared {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Open(ctx)
}

// Close releases the shared connection. Safe to call repeatedly.
func (c *Client) Close() error {
	if c.mode != ModeShared {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close()
}

// exchange performs one request/response round trip and decodes the stanzas.
// The lock (shared mode) covers the whole pair so another caller's send can
// never land between this caller's send and receive.
func (c *Client) exchange(ctx context.Context, cmd stanza.Command) ([]stanza.Stanza, error) {
	line, err := cmd.Encode()
	if err != nil {
		return nil, err
	}

	var conn *transport.Conn
	switch c.mode {
	case ModePerCall:
		conn = transport.New(c.endpoint, c.timeout)
		if err := conn.Open(ctx); err != nil {
			return nil, err
		}
		defer conn.Close()
	default:
		c.mu.Lock()
		defer c.mu.Unlock()
		conn = c.conn
		if !conn.IsOpen() {
			if !c.autoConnect {
				return nil, fmt.Errorf("%w: client is not connected (auto-connect disabled)", ErrConnection)
			}
			if err := conn.Open(ctx); err != nil {
				return nil, err
			}
		}
	}

	if err := conn.Send(line); err != nil {
		return nil, fmt.Errorf("%s: %w", cmd.Name, err)
	}
	payload, err := conn.Receive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cmd.Name, err)
	}
	stanzas, err := stanza.Decode(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cmd.Name, err)
	}
	c.logger.Debug("ipc exchange",
		slog.String("command", cmd.Name),
		slog.Int("stanzas", len(stanzas)))
	return stanzas, nil
}

// exchangeOne runs an exchange whose documented reply is exactly one stanza.
func (c *Client) exchangeOne(ctx context.Context, cmd stanza.Command) (stanza.Stanza, error) {
	stanzas, err := c.exchange(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if len(stanzas) != 1 {
		return nil, fmt.Errorf("%w: %s: expected one stanza, got %d", ErrMalformedResponse, cmd.Name, len(stanzas))
	}
	return stanzas[0], nil
}

// control runs a fire-and-forget command and interprets the acknowledgement.
func (c *Client) control(ctx context.Context, cmd stanza.Command) error {
	st, err := c.exchangeOne(ctx, cmd)
	if err != nil {
		return err
	}
	return mapAck(cmd.Name, st)
}

// Ping checks that the daemon answers on its socket.
func (c *Client) Ping(ctx context.Context) error {
	return c.control(ctx, stanza.Command{Name: "PING"})
}

// Status returns a snapshot of the daemon's current delivery state.
func (c *Client) Status(ctx context.Context) (TransferStatus, error) {
	st, err := c.exchangeOne(ctx, stanza.Command{Name: "STATUS"})
	if err != nil {
		return TransferStatus{}, err
	}
	return mapTransferStatus(st)
}

// Transfers lists downloads currently in progress, in the daemon's order.
// No active transfers is an empty list, not an error.
func (c *Client) Transfers(ctx context.Context) ([]TransferStatus, error) {
	stanzas, err := c.exchange(ctx, stanza.Command{Name: "LIST"})
	if err != nil {
		return nil, err
	}
	return mapEach(stanzas, mapTransferStatus)
}

// Files lists the files announced on the broadcast carousel.
func (c *Client) Files(ctx context.Context) ([]FileEntry, error) {
	stanzas, err := c.exchange(ctx, stanza.Command{Name: "FILES"})
	if err != nil {
		return nil, err
	}
	return mapEach(stanzas, mapFileEntry)
}

// CacheInfo reports download cache usage.
func (c *Client) CacheInfo(ctx context.Context) (CacheInfo, error) {
	st, err := c.exchangeOne(ctx, stanza.Command{Name: "CACHE"})
	if err != nil {
		return CacheInfo{}, err
	}
	return mapCacheInfo(st)
}

// CacheReset asks the daemon to drop its download cache.
func (c *Client) CacheReset(ctx context.Context) error {
	return c.control(ctx, stanza.Command{Name: "CACHE-RESET"})
}

// TunerStatus reports lock, signal strength, and signal-to-noise ratio.
func (c *Client) TunerStatus(ctx context.Context) (TunerStatus, error) {
	st, err := c.exchangeOne(ctx, stanza.Command{Name: "TUNER"})
	if err != nil {
		return TunerStatus{}, err
	}
	return mapTunerStatus(st)
}

// Streams lists the data streams on the tuned transponder.
func (c *Client) Streams(ctx context.Context) ([]Stream, error) {
	stanzas, err := c.exchange(ctx, stanza.Command{Name: "STREAMS"})
	if err != nil {
		return nil, err
	}
	return mapEach(stanzas, mapStream)
}

// Settings returns the daemon's current tuner settings.
func (c *Client) Settings(ctx context.Context) (TunerSettings, error) {
	st, err := c.exchangeOne(ctx, stanza.Command{Name: "SETTINGS"})
	if err != nil {
		return TunerSettings{}, err
	}
	return mapTunerSettings(st)
}

// TuneRequest carries the parameters for SetSettings.
type TuneRequest struct {
	// Frequency is the L-band frequency in MHz the tuner should use.
	Frequency int64
	// SymbolRate in kilosymbols per second.
	SymbolRate int64
	// Delivery system: "dvb-s" (default) or "dvb-s2".
	Delivery string
	// Modulation: "qpsk" (default) or "8psk".
	Modulation string
	// Voltage of the LNB supply: 13 or 18. Zero defaults to 13.
	Voltage int64
	// Tone enables the 22 kHz tone.
	Tone bool
	// Azimuth of the dish in degrees, 0-360.
	Azimuth int64
}

func (r *TuneRequest) validate() error {
	if r.Frequency <= 0 {
		return invalidf("frequency must be positive, got %d", r.Frequency)
	}
	if r.SymbolRate <= 0 {
		return invalidf("symbol rate must be positive, got %d", r.SymbolRate)
	}
	if r.Delivery == "" {
		r.Delivery = "dvb-s"
	}
	if r.Delivery != "dvb-s" && r.Delivery != "dvb-s2" {
		return invalidf("delivery must be dvb-s or dvb-s2, got %q", r.Delivery)
	}
	if r.Modulation == "" {
		r.Modulation = "qpsk"
	}
	if r.Modulation != "qpsk" && r.Modulation != "8psk" {
		return invalidf("modulation must be qpsk or 8psk, got %q", r.Modulation)
	}
	if r.Voltage == 0 {
		r.Voltage = 13
	}
	if r.Voltage != 13 && r.Voltage != 18 {
		return invalidf("voltage must be 13 or 18, got %d", r.Voltage)
	}
	if r.Azimuth < 0 || r.Azimuth > 360 {
		return invalidf("azimuth must be within 0-360, got %d", r.Azimuth)
	}
	return nil
}

// SetSettings applies new tuner settings. Parameters are validated locally
// before anything touches the socket.
func (c *Client) SetSettings(ctx context.Context, req TuneRequest) error {
	if err := req.validate(); err != nil {
		return err
	}
	tone := "no"
	if req.Tone {
		tone = "yes"
	}
	return c.control(ctx, stanza.Command{
		Name: "SET-SETTINGS",
		Args: []string{
			strconv.FormatInt(req.Frequency, 10),
			strconv.FormatInt(req.SymbolRate, 10),
			req.Delivery,
			req.Modulation,
			strconv.FormatInt(req.Voltage, 10),
			tone,
			strconv.FormatInt(req.Azimuth, 10),
		},
	})
}

// OutputPath returns the directory the daemon delivers completed files to.
func (c *Client) OutputPath(ctx context.Context) (string, error) {
	st, err := c.exchangeOne(ctx, stanza.Command{Name: "OUTPUT"})
	if err != nil {
		return "", err
	}
	return mapOutputPath(st)
}

// SetOutputPath points the daemon at a new delivery directory.
func (c *Client) SetOutputPath(ctx context.Context, path string) error {
	if path == "" {
		return invalidf("output path must not be empty")
	}
	return c.control(ctx, stanza.Command{Name: "SET-OUTPUT", Args: []string{path}})
}

// Events returns the daemon's recent event log entries.
func (c *Client) Events(ctx context.Context) ([]Event, error) {
	stanzas, err := c.exchange(ctx, stanza.Command{Name: "EVENTS"})
	if err != nil {
		return nil, err
	}
	return mapEach(stanzas, mapEvent)
}
