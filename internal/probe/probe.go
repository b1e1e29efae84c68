package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/stationup/internal/logging"
)

const (
	// DefaultHost is the connectivity check target
	DefaultHost = "httpbin.org"

	// DefaultPort is the plain HTTP port
	DefaultPort = 80

	// DefaultPath is the resource fetched from the target
	DefaultPath = "/"

	// DefaultRecvTimeout bounds each read from the socket
	DefaultRecvTimeout = 5 * time.Second

	// DefaultDialTimeout bounds connection establishment
	DefaultDialTimeout = 10 * time.Second

	// readChunk is the response read buffer size
	readChunk = 64
)

// Config holds the probe target and timeouts. Zero values fall back to
// the defaults above.
type Config struct {
	Host        string
	Port        int
	Path        string
	RecvTimeout time.Duration
	DialTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Path == "" {
		c.Path = DefaultPath
	}
	if c.RecvTimeout == 0 {
		c.RecvTimeout = DefaultRecvTimeout
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = DefaultDialTimeout
	}
	return c
}

// Run resolves the target, sends the GET, and copies the response to
// out. It returns the number of response bytes read.
func Run(ctx context.Context, cfg Config, out io.Writer) (int64, error) {
	cfg = cfg.withDefaults()

	addr, err := resolve(ctx, cfg.Host)
	if err != nil {
		return 0, fmt.Errorf("lookup of %s failed: %w", cfg.Host, err)
	}
	logging.Info("lookup succeeded",
		zap.String("host", cfg.Host),
		zap.Stringer("ip", addr))

	dialer := net.Dialer{Timeout: cfg.DialTimeout}
	target := net.JoinHostPort(addr.String(), strconv.Itoa(cfg.Port))
	conn, err := dialer.DialContext(ctx, "tcp", target)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to %s: %w", target, err)
	}
	defer conn.Close()
	logging.Info("socket connected", zap.String("target", target))

	request := BuildRequest(cfg.Host, cfg.Port, cfg.Path)
	if _, err := conn.Write([]byte(request)); err != nil {
		return 0, fmt.Errorf("failed to send request: %w", err)
	}
	logging.Debug("request sent", zap.Int("bytes", len(request)))

	var total int64
	buf := make([]byte, readChunk)
	for {
		if err := conn.SetReadDeadline(time.Now().Add(cfg.RecvTimeout)); err != nil {
			return total, err
		}
		n, err := conn.Read(buf)
		if n > 0 {
			total += int64(n)
			if _, werr := out.Write(buf[:n]); werr != nil {
				return total, werr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if errors.Is(err, os.ErrDeadlineExceeded) {
				// server kept the connection open; what we have is
				// the response
				logging.Debug("receive deadline reached")
				break
			}
			return total, fmt.Errorf("read failed after %d bytes: %w", total, err)
		}
	}

	logging.Info("done reading from socket", zap.Int64("bytes", total))
	return total, nil
}

// isLocalHost reports whether the host is an mDNS name.
func isLocalHost(host string) bool {
	host = strings.TrimSuffix(host, ".")
	return strings.HasSuffix(host, ".local")
}
