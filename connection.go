package rgbmon

import (
	"io"
	"net"
	"time"

	"github.com/divi255/rgbmon/orgb"
)

// Connection represents a single live connection to the server. It is not
// safe for concurrent use: the protocol is strictly request-then-response
// with no pipelining, and the session serializes access by owning at most
// one connection.
type Connection struct {
	conn    net.Conn
	timeout time.Duration
}

// NewConnection wraps an established network connection. The timeout is
// applied per socket operation, not per logical exchange.
func NewConnection(conn net.Conn, timeout time.Duration) *Connection {
	return &Connection{conn: conn, timeout: timeout}
}

// Exchange sends one framed request and, when wantReply is set, reads and
// validates the response envelope and returns its payload.
//
// The response must echo the request's device id and message type; the
// framing has no resynchronization marker, so any mismatch means the
// stream is unusable and the connection must be dropped.
func (c *Connection) Exchange(deviceID, msgType uint32, payload []byte, wantReply bool) ([]byte, error) {
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return nil, &ConnectionError{Op: "write", Err: err}
	}
	if _, err := c.conn.Write(orgb.EncodeMessage(deviceID, msgType, payload)); err != nil {
		return nil, &ConnectionError{Op: "write", Err: err}
	}
	if !wantReply {
		return nil, nil
	}

	var hdr [orgb.HeaderSize]byte
	if err := c.conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return nil, &ConnectionError{Op: "read", Err: err}
	}
	if _, err := io.ReadFull(c.conn, hdr[:]); err != nil {
		return nil, &ConnectionError{Op: "read", Err: err}
	}

	replyID, replyType, replyLen, err := orgb.DecodeHeader(hdr)
	if err != nil {
		return nil, err
	}
	if replyID != deviceID || replyType != msgType {
		return nil, &orgb.ParseError{
			Message: "response does not echo request",
			Offset:  -1,
		}
	}

	reply := make([]byte, replyLen)
	if err := c.conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return nil, &ConnectionError{Op: "read", Err: err}
	}
	if _, err := io.ReadFull(c.conn, reply); err != nil {
		return nil, &ConnectionError{Op: "read", Err: err}
	}
	return reply, nil
}

// Close closes the underlying network connection.
func (c *Connection) Close() error {
	return c.conn.Close()
}
