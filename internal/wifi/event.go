package wifi

import (
	"fmt"
	"net/netip"
)

// EventKind identifies a lifecycle notification from the network layer.
//
// The set is open: backends may deliver kinds the supervisor has no
// interest in (association progress, scan completion, lines it could not
// classify). Unhandled kinds are dropped silently.
type EventKind int

const (
	// EventUnknown is any notification the backend could not classify.
	EventUnknown EventKind = iota

	// EventStationStarted signals that the station interface is up and
	// ready to accept its first connect request.
	EventStationStarted

	// EventDisconnected signals loss of association with the access
	// point, including a failed connect attempt.
	EventDisconnected

	// EventAddressAcquired signals that the interface holds a usable IP
	// lease. This is the success condition for bring-up; mere
	// association (EventLinkUp) is not.
	EventAddressAcquired

	// EventLinkUp signals completed association, before any address is
	// assigned. Informational only.
	EventLinkUp

	// EventScanResults signals a completed AP scan. Informational only.
	EventScanResults
)

// String returns a human-readable name for the event kind
func (k EventKind) String() string {
	switch k {
	case EventStationStarted:
		return "station-started"
	case EventDisconnected:
		return "disconnected"
	case EventAddressAcquired:
		return "address-acquired"
	case EventLinkUp:
		return "link-up"
	case EventScanResults:
		return "scan-results"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Event is a single lifecycle notification.
type Event struct {
	// Kind classifies the notification
	Kind EventKind

	// Addr is the acquired address; valid only for EventAddressAcquired
	Addr netip.Addr

	// Reason carries backend detail (e.g. a wpa_supplicant disconnect
	// reason code). Informational, never interpreted by the supervisor.
	Reason string
}

// String returns a human-readable string representation of the event
func (e Event) String() string {
	switch {
	case e.Kind == EventAddressAcquired && e.Addr.IsValid():
		return fmt.Sprintf("%s %s", e.Kind, e.Addr)
	case e.Reason != "":
		return fmt.Sprintf("%s (%s)", e.Kind, e.Reason)
	default:
		return e.Kind.String()
	}
}

// Sink receives lifecycle events from a network backend.
//
// Implementations must not block: backends deliver events from their own
// read loop and a stalled sink stalls the loop.
type Sink interface {
	HandleEvent(Event)
}

// Connector is the one capability the supervisor needs from the station:
// asking it to (re)connect. The request is fire-and-forget; its result is
// observed only through a later event.
type Connector interface {
	RequestConnect()
}

// Station is the full capability a network backend exposes to the
// startup flow. Configure and Subscribe must be called before Start;
// after Start the backend delivers events to the subscribed sink.
type Station interface {
	Connector
	Configure(Credentials) error
	Subscribe(Sink)
	Start() error
	Stop() error
}

// Credentials identify the access point to join.
type Credentials struct {
	SSID string

	// Passphrase is the WPA passphrase; empty means an open network.
	Passphrase string
}
