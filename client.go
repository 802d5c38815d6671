// Package rgbmon is a client for the OpenRGB SDK server protocol. It
// enumerates the lighting controllers exposed by a running server and sets
// every LED of selected controllers to a solid color, recovering from
// transient connection loss with a bounded retry-with-reconnect policy.
package rgbmon

import (
	"context"
	"encoding/binary"
	"errors"
	"net"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/divi255/rgbmon/orgb"
)

// ClientName is the name this client registers with the server.
const ClientName = "rgbmon"

// Version is the client version, sent along with ClientName.
const Version = "0.1.0"

const (
	// DefaultRetries is the retry count used by DefaultConfig.
	DefaultRetries = 3

	// DefaultTimeout is the per-socket-operation timeout used when
	// Config.Timeout is zero.
	DefaultTimeout = 2 * time.Second
)

// Config holds the client configuration.
type Config struct {
	// Retries is the number of extra attempts after the first for
	// operations failing with a retryable error. Each failed attempt
	// forces a reconnect before the next one. Zero disables retries.
	Retries int

	// Timeout bounds every single socket operation (connect, read,
	// write), not a whole logical call: a full Load spans many socket
	// operations and can take a multiple of it. Zero means DefaultTimeout.
	Timeout time.Duration

	// Dialer is the net.Dialer used to establish connections.
	// If nil, a default dialer bounded by Timeout is used.
	Dialer *net.Dialer

	// Logger receives debug-level connection and enumeration events.
	// If nil, the logrus standard logger is used.
	Logger logrus.FieldLogger

	// NewCircuitBreaker, if set, is called once per endpoint and the
	// resulting breaker wraps every wire exchange. Off by default.
	NewCircuitBreaker func(endpoint string) CircuitBreaker

	// for testing purposes only
	dial func(ctx context.Context) (*Connection, error)
}

// DefaultConfig returns the usual daemon configuration: three retries,
// two-second socket timeout.
func DefaultConfig() Config {
	return Config{Retries: DefaultRetries, Timeout: DefaultTimeout}
}

// Client is a session with one OpenRGB server: it owns the zero-or-one
// live connection, the retry policy and the in-memory controller
// directory.
//
// A Client is synchronous and performs no internal locking. Callers using
// it from multiple goroutines must serialize access externally; the
// protocol itself is strictly request-then-response with no pipelining, so
// nothing is gained by concurrent calls.
type Client struct {
	cfg      Config
	log      logrus.FieldLogger
	retry    retryPolicy
	endpoint string
	pool     *connPool
	breaker  CircuitBreaker

	// controllers is the directory: either empty or the complete
	// enumeration result of the last successful Load, never a partial
	// one.
	controllers    []Controller
	serverProtocol uint32
}

// New creates a client. No connection is made until the first operation
// after SetEndpoint.
func New(config Config) *Client {
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.Logger == nil {
		config.Logger = logrus.StandardLogger()
	}
	return &Client{
		cfg:   config,
		log:   config.Logger,
		retry: retryPolicy{maxRetries: config.Retries},
	}
}

// SetEndpoint sets the host:port of the server and drops any live
// connection. The directory is kept until the next Load.
func (c *Client) SetEndpoint(endpoint string) {
	if c.pool != nil {
		c.pool.close()
		c.pool = nil
	}
	c.endpoint = endpoint
	c.breaker = nil
	if c.cfg.NewCircuitBreaker != nil {
		c.breaker = c.cfg.NewCircuitBreaker(endpoint)
	}
	c.log.WithField("endpoint", endpoint).Debug("server endpoint set")
}

// Close drops the live connection, if any. The client remains usable; the
// next operation reconnects.
func (c *Client) Close() {
	if c.pool != nil {
		c.pool.close()
		c.pool = nil
	}
}

// Controllers returns a snapshot of the directory as of the last
// successful Load.
func (c *Client) Controllers() []Controller {
	out := make([]Controller, len(c.controllers))
	copy(out, c.controllers)
	return out
}

// ServerProtocol returns the protocol version negotiated with the server,
// or zero before the first successful Load.
func (c *Client) ServerProtocol() uint32 {
	return c.serverProtocol
}

// Fingerprint returns a 64-bit hash of the directory's controller
// identities, letting callers detect topology changes across reloads.
func (c *Client) Fingerprint() uint64 {
	return directoryFingerprint(c.controllers)
}

// Load re-enumerates the server's controllers: it negotiates the protocol
// version, registers the client name, requests the controller count and
// fetches and decodes every controller descriptor. The directory is
// replaced only after all controllers decode; on failure the previous
// directory stays intact.
//
// Load is retried per the retry policy, except for a protocol version
// mismatch, which reconnecting cannot fix.
func (c *Client) Load(ctx context.Context) error {
	return c.withRetry(func() error { return c.load(ctx) })
}

// Reconnect drops the connection and runs a full Load on a fresh one.
func (c *Client) Reconnect(ctx context.Context) error {
	c.log.Debug("reconnecting")
	c.reset()
	return c.Load(ctx)
}

// SetColor sets every LED of the selected controllers to the given color.
// The selection resolves against the current directory without I/O; each
// selected controller then gets its own update-leds exchange, retried
// per the retry policy. There is no multi-controller atomic update in the
// protocol, so a failure may leave earlier controllers already updated.
func (c *Client) SetColor(ctx context.Context, selector Selector, color RGBColor) error {
	batch, err := selector.apply(c.controllers)
	if err != nil {
		return err
	}
	c.log.WithFields(logrus.Fields{
		"selector":    selector.String(),
		"color":       color.Hex(),
		"controllers": len(batch),
	}).Debug("setting color")

	for _, cmd := range batch {
		payload := orgb.ColorPayload(cmd.ledCount, color.Red, color.Green, color.Blue)
		err := c.withRetry(func() error {
			_, err := c.exchange(ctx, cmd.controllerID, orgb.CmdUpdateLEDs, payload, false)
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) load(ctx context.Context) error {
	reply, err := c.exchange(ctx, 0, orgb.CmdRequestProtocolVersion, orgb.VersionPayload(orgb.ProtocolVersion), true)
	if err != nil {
		return err
	}
	if len(reply) < 4 {
		return &orgb.ParseError{Message: "short protocol version response", Offset: -1}
	}
	server := binary.LittleEndian.Uint32(reply)
	if server != orgb.ProtocolVersion {
		return &ProtocolMismatchError{Client: orgb.ProtocolVersion, Server: server}
	}
	c.serverProtocol = server

	if _, err := c.exchange(ctx, 0, orgb.CmdSetClientName, orgb.ClientNamePayload(ClientName, Version), false); err != nil {
		return err
	}

	reply, err = c.exchange(ctx, 0, orgb.CmdRequestControllerCount, nil, true)
	if err != nil {
		return err
	}
	if len(reply) < 4 {
		return &orgb.ParseError{Message: "short controller count response", Offset: -1}
	}
	count := binary.LittleEndian.Uint32(reply)
	c.log.WithField("count", count).Debug("controllers reported")

	var fresh []Controller
	for i := uint32(0); i < count; i++ {
		reply, err := c.exchange(ctx, i, orgb.CmdRequestControllerData, orgb.VersionPayload(orgb.ProtocolVersion), true)
		if err != nil {
			return err
		}
		ctrl, err := orgb.UnmarshalController(reply)
		if err != nil {
			return err
		}
		c.log.WithFields(logrus.Fields{
			"id":   i,
			"name": ctrl.Name,
			"leds": len(ctrl.Leds),
		}).Debug("controller loaded")
		fresh = append(fresh, newController(i, ctrl))
	}

	c.controllers = fresh
	return nil
}

// withRetry runs op up to retries+1 times, forcing a reconnect between
// attempts, and surfaces the last error.
func (c *Client) withRetry(op func() error) error {
	for attempt := 0; ; attempt++ {
		err := op()
		if err == nil {
			return nil
		}
		if !c.retry.shouldRetry(attempt, err) {
			return err
		}
		c.log.WithError(err).WithField("attempt", attempt+1).Debug("operation failed, reconnecting")
		c.reset()
	}
}

// reset transitions the session to the disconnected state.
func (c *Client) reset() {
	if c.pool != nil {
		c.pool.reset()
	}
}

func (c *Client) exchange(ctx context.Context, deviceID, msgType uint32, payload []byte, wantReply bool) ([]byte, error) {
	if c.breaker != nil {
		return c.breaker.Execute(func() ([]byte, error) {
			return c.exchangeDirect(ctx, deviceID, msgType, payload, wantReply)
		})
	}
	return c.exchangeDirect(ctx, deviceID, msgType, payload, wantReply)
}

// exchangeDirect performs one request-response cycle. An exchange failure
// of any kind destroys the connection: the framing has no resync marker,
// so a partially-read stream cannot be resumed.
func (c *Client) exchangeDirect(ctx context.Context, deviceID, msgType uint32, payload []byte, wantReply bool) ([]byte, error) {
	pool, err := c.getPool()
	if err != nil {
		return nil, err
	}

	res, err := pool.acquire(ctx)
	if err != nil {
		return nil, asConnectionError("connect", err)
	}

	reply, err := res.Value().Exchange(deviceID, msgType, payload, wantReply)
	if err != nil {
		res.Destroy()
		return nil, err
	}
	res.Release()
	return reply, nil
}

// getPool lazily creates the connection pool for the configured endpoint.
func (c *Client) getPool() (*connPool, error) {
	if c.pool != nil {
		return c.pool, nil
	}
	if c.endpoint == "" {
		return nil, ErrNoEndpoint
	}

	dial := c.cfg.dial
	if dial == nil {
		dialer := c.cfg.Dialer
		if dialer == nil {
			dialer = &net.Dialer{Timeout: c.cfg.Timeout}
		}
		endpoint := c.endpoint
		dial = func(ctx context.Context) (*Connection, error) {
			netConn, err := dialer.DialContext(ctx, "tcp", endpoint)
			if err != nil {
				return nil, err
			}
			c.log.WithField("endpoint", endpoint).Debug("connected")
			return NewConnection(netConn, c.cfg.Timeout), nil
		}
	}

	pool, err := newConnPool(dial)
	if err != nil {
		return nil, err
	}
	c.pool = pool
	return pool, nil
}

// asConnectionError wraps err into a ConnectionError unless it already is
// one.
func asConnectionError(op string, err error) error {
	var connErr *ConnectionError
	if errors.As(err, &connErr) {
		return err
	}
	return &ConnectionError{Op: op, Err: err}
}
