package wpa

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"
)

const (
	// DefaultCtrlDir is where wpa_supplicant creates its per-interface
	// control sockets on most distributions
	DefaultCtrlDir = "/var/run/wpa_supplicant"

	// DefaultReplyTimeout is how long a command waits for its reply
	DefaultReplyTimeout = 5 * time.Second

	// maxDatagram is the read buffer size; wpa_supplicant replies
	// (scan results included) stay well under this
	maxDatagram = 4096
)

// connSeq distinguishes the local socket paths of the command and
// monitor connections within one process.
var connSeq atomic.Uint32

// Conn is a single control-interface connection.
type Conn struct {
	conn      *net.UnixConn
	localPath string

	// ReplyTimeout bounds how long Request waits for a reply
	ReplyTimeout time.Duration
}

// Dial connects to the control socket at path. Each Conn binds its own
// local datagram socket, as the protocol requires a return address.
func Dial(path string) (*Conn, error) {
	local := filepath.Join(os.TempDir(),
		fmt.Sprintf("stationup-ctrl-%d-%d", os.Getpid(), connSeq.Add(1)))

	laddr, err := net.ResolveUnixAddr("unixgram", local)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve local socket address: %w", err)
	}
	raddr, err := net.ResolveUnixAddr("unixgram", path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve control socket address: %w", err)
	}

	conn, err := net.DialUnix("unixgram", laddr, raddr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to control socket %s: %w", path, err)
	}

	return &Conn{
		conn:         conn,
		localPath:    local,
		ReplyTimeout: DefaultReplyTimeout,
	}, nil
}

// Request sends a command and returns the trimmed reply. Unsolicited
// event datagrams arriving in the window are skipped, not returned.
func (c *Conn) Request(cmd string) (string, error) {
	deadline := time.Now().Add(c.ReplyTimeout)
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return "", err
	}
	if _, err := c.conn.Write([]byte(cmd)); err != nil {
		return "", fmt.Errorf("failed to send %q: %w", cmd, err)
	}

	buf := make([]byte, maxDatagram)
	for {
		if err := c.conn.SetReadDeadline(deadline); err != nil {
			return "", err
		}
		n, err := c.conn.Read(buf)
		if err != nil {
			return "", fmt.Errorf("no reply to %q: %w", cmd, err)
		}
		reply := strings.TrimSpace(string(buf[:n]))
		if isEventLine(reply) {
			continue
		}
		return reply, nil
	}
}

// RequestOK sends a command and fails unless the reply is "OK".
func (c *Conn) RequestOK(cmd string) error {
	reply, err := c.Request(cmd)
	if err != nil {
		return err
	}
	if reply != "OK" {
		return fmt.Errorf("%q failed: %s", cmd, reply)
	}
	return nil
}

// Send writes a command without waiting for its reply. Used on the
// monitor connection, where the read loop owns the receive side.
func (c *Conn) Send(cmd string) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.ReplyTimeout)); err != nil {
		return err
	}
	if _, err := c.conn.Write([]byte(cmd)); err != nil {
		return fmt.Errorf("failed to send %q: %w", cmd, err)
	}
	return nil
}

// ReadEvent blocks until the next datagram arrives and returns it
// trimmed. Used only on an attached monitor connection.
func (c *Conn) ReadEvent() (string, error) {
	buf := make([]byte, maxDatagram)
	// no deadline: the monitor loop blocks until Close unblocks it
	if err := c.conn.SetReadDeadline(time.Time{}); err != nil {
		return "", err
	}
	n, err := c.conn.Read(buf)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(buf[:n])), nil
}

// Close closes the connection and removes the local socket file.
func (c *Conn) Close() error {
	err := c.conn.Close()
	if rmErr := os.Remove(c.localPath); rmErr != nil && !os.IsNotExist(rmErr) && err == nil {
		err = rmErr
	}
	return err
}

// SocketPath returns the control socket path for an interface name.
func SocketPath(ctrlDir, iface string) string {
	if ctrlDir == "" {
		ctrlDir = DefaultCtrlDir
	}
	return filepath.Join(ctrlDir, iface)
}
