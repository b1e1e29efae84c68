//go:build !linux

package netwatch

import (
	"errors"

	"go.uber.org/zap"

	"github.com/muurk/stationup/internal/wifi"
)

// ErrUnsupported is returned by Start on platforms without rtnetlink.
var ErrUnsupported = errors.New("address watching requires linux")

// Watcher is a placeholder on non-linux platforms.
type Watcher struct {
	iface string
}

// New creates a watcher for the named interface.
func New(iface string, _ *zap.Logger) *Watcher {
	return &Watcher{iface: iface}
}

// Start always fails with ErrUnsupported.
func (w *Watcher) Start(wifi.Sink) error {
	return ErrUnsupported
}

// Stop is a no-op.
func (w *Watcher) Stop() {}
