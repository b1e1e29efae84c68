//go:build linux

package netwatch

import (
	"fmt"
	"net/netip"
	"sync"

	"github.com/vishvananda/netlink"
	"go.uber.org/zap"

	"github.com/muurk/stationup/internal/wifi"
)

// Watcher subscribes to rtnetlink address updates for one link.
type Watcher struct {
	iface string
	log   *zap.Logger

	mu      sync.Mutex
	done    chan struct{}
	started bool
	wg      sync.WaitGroup
}

// New creates a watcher for the named interface.
func New(iface string, log *zap.Logger) *Watcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{iface: iface, log: log}
}

// Start resolves the link and begins delivering address-acquired events
// to the sink until Stop is called.
func (w *Watcher) Start(sink wifi.Sink) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return fmt.Errorf("watcher for %s already started", w.iface)
	}

	link, err := netlink.LinkByName(w.iface)
	if err != nil {
		return fmt.Errorf("cannot find link %q: %w", w.iface, err)
	}
	index := link.Attrs().Index

	updates := make(chan netlink.AddrUpdate, 16)
	done := make(chan struct{})
	if err := netlink.AddrSubscribe(updates, done); err != nil {
		return fmt.Errorf("failed to subscribe to address updates: %w", err)
	}

	w.done = done
	w.started = true

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for update := range updates {
			w.handleUpdate(update, index, sink)
		}
	}()

	w.log.Debug("address watcher started",
		zap.String("interface", w.iface),
		zap.Int("link_index", index))
	return nil
}

func (w *Watcher) handleUpdate(update netlink.AddrUpdate, index int, sink wifi.Sink) {
	if update.LinkIndex != index || !update.NewAddr {
		return
	}

	addr, ok := netip.AddrFromSlice(update.LinkAddress.IP)
	if !ok {
		return
	}
	addr = addr.Unmap()

	// Link-local v6 appears as soon as the link is up, long before the
	// network is usable. Only a global address completes bring-up.
	if !addr.IsGlobalUnicast() {
		w.log.Debug("ignoring non-global address",
			zap.Stringer("addr", addr))
		return
	}

	sink.HandleEvent(wifi.Event{
		Kind: wifi.EventAddressAcquired,
		Addr: addr,
	})
}

// Stop cancels the subscription and waits for delivery to finish.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.started {
		return
	}
	close(w.done)
	w.wg.Wait()
	w.started = false
}
