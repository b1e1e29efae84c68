package wpa

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/muurk/stationup/internal/wifi"
)

// Station drives one wpa_supplicant-managed interface. It implements
// wifi.Station.
type Station struct {
	iface   string
	ctrlDir string
	log     *zap.Logger

	mu        sync.Mutex
	cmd       *Conn
	monitor   *Conn
	sink      wifi.Sink
	networkID string
	started   bool

	wg sync.WaitGroup
}

var _ wifi.Station = (*Station)(nil)

// NewStation creates a station for the named interface. ctrlDir may be
// empty to use DefaultCtrlDir.
func NewStation(iface, ctrlDir string, log *zap.Logger) *Station {
	if log == nil {
		log = zap.NewNop()
	}
	return &Station{
		iface:   iface,
		ctrlDir: ctrlDir,
		log:     log,
	}
}

// Configure registers a network block for the credentials. Must be
// called before Start; calling it again replaces the previous block.
func (s *Station) Configure(creds wifi.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if creds.SSID == "" {
		return errors.New("ssid must not be empty")
	}

	if err := s.dialCmdLocked(); err != nil {
		return err
	}

	if s.networkID != "" {
		// replace the previous block rather than piling up duplicates
		if err := s.cmd.RequestOK("REMOVE_NETWORK " + s.networkID); err != nil {
			s.log.Warn("failed to remove stale network block",
				zap.String("id", s.networkID), zap.Error(err))
		}
		s.networkID = ""
	}

	id, err := s.cmd.Request("ADD_NETWORK")
	if err != nil {
		return fmt.Errorf("failed to add network block: %w", err)
	}
	if id == "FAIL" {
		return errors.New("wpa_supplicant rejected ADD_NETWORK")
	}

	set := func(field, value string) error {
		return s.cmd.RequestOK(fmt.Sprintf("SET_NETWORK %s %s %s", id, field, value))
	}
	if err := set("ssid", quote(creds.SSID)); err != nil {
		return err
	}
	if creds.Passphrase == "" {
		if err := set("key_mgmt", "NONE"); err != nil {
			return err
		}
	} else if err := set("psk", quote(creds.Passphrase)); err != nil {
		// The failing command carries the passphrase; report without it.
		return errors.New("wpa_supplicant rejected the network credentials")
	}

	s.networkID = id
	s.log.Info("station configured",
		zap.String("interface", s.iface),
		zap.String("ssid", creds.SSID),
		zap.String("network_id", id))
	return nil
}

// Subscribe registers the sink that receives lifecycle events. Must be
// called before Start.
func (s *Station) Subscribe(sink wifi.Sink) {
	s.mu.Lock()
	s.sink = sink
	s.mu.Unlock()
}

// Start attaches the monitor connection, begins event delivery, and
// reports station-started to the sink.
func (s *Station) Start() error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return errors.New("station already started")
	}
	if s.sink == nil {
		s.mu.Unlock()
		return errors.New("no sink subscribed")
	}
	if s.networkID == "" {
		s.mu.Unlock()
		return errors.New("station not configured")
	}

	monitor, err := Dial(SocketPath(s.ctrlDir, s.iface))
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if err := monitor.RequestOK("ATTACH"); err != nil {
		monitor.Close()
		s.mu.Unlock()
		return fmt.Errorf("failed to attach event monitor: %w", err)
	}
	s.monitor = monitor
	s.started = true
	sink := s.sink
	s.mu.Unlock()

	s.wg.Add(1)
	go s.monitorLoop(monitor, sink)

	s.log.Info("station started", zap.String("interface", s.iface))

	// wpa_supplicant has no station-started notification of its own;
	// the attached monitor standing in for the driver being up is the
	// equivalent moment.
	sink.HandleEvent(wifi.Event{Kind: wifi.EventStationStarted})
	return nil
}

// RequestConnect asks wpa_supplicant to select the configured network.
// Fire-and-forget: the result arrives as a future lifecycle event.
func (s *Station) RequestConnect() {
	s.mu.Lock()
	cmd, id := s.cmd, s.networkID
	s.mu.Unlock()

	if cmd == nil || id == "" {
		s.log.Warn("connect requested before configuration")
		return
	}
	if err := cmd.RequestOK("SELECT_NETWORK " + id); err != nil {
		s.log.Warn("connect request failed", zap.Error(err))
	}
}

// Stop disconnects, detaches the monitor, and closes both connections.
func (s *Station) Stop() error {
	s.mu.Lock()
	cmd, monitor := s.cmd, s.monitor
	s.cmd, s.monitor = nil, nil
	s.started = false
	s.mu.Unlock()

	var errs []error
	if cmd != nil {
		if err := cmd.RequestOK("DISCONNECT"); err != nil {
			errs = append(errs, err)
		}
		if err := cmd.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if monitor != nil {
		// reply is consumed (and skipped) by the monitor loop
		if err := monitor.Send("DETACH"); err != nil {
			errs = append(errs, err)
		}
		// unblocks the monitor loop
		if err := monitor.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.wg.Wait()
	return errors.Join(errs...)
}

// monitorLoop reads event lines until the monitor connection closes.
func (s *Station) monitorLoop(monitor *Conn, sink wifi.Sink) {
	defer s.wg.Done()

	for {
		line, err := monitor.ReadEvent()
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				s.log.Warn("event monitor read failed", zap.Error(err))
			}
			return
		}
		if !isEventLine(line) {
			// stray command reply on the monitor socket
			continue
		}

		ev := ParseEvent(line)
		s.log.Debug("wpa event",
			zap.String("line", line),
			zap.Stringer("kind", ev.Kind))
		sink.HandleEvent(ev)
	}
}

// dialCmdLocked lazily opens the command connection. Caller holds s.mu.
func (s *Station) dialCmdLocked() error {
	if s.cmd != nil {
		return nil
	}
	cmd, err := Dial(SocketPath(s.ctrlDir, s.iface))
	if err != nil {
		return err
	}
	s.cmd = cmd
	return nil
}

// quote wraps a value in the double quotes SET_NETWORK expects for
// string parameters, escaping embedded quotes and backslashes.
func quote(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `"`, `\"`)
	return `"` + v + `"`
}
