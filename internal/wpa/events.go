package wpa

import (
	"strings"

	"github.com/muurk/stationup/internal/wifi"
)

// Event name prefixes emitted by wpa_supplicant on attached monitors.
// See wpa_supplicant/ctrl_iface.h for the full (open) set.
const (
	evDisconnected = "CTRL-EVENT-DISCONNECTED"
	evConnected    = "CTRL-EVENT-CONNECTED"
	evScanResults  = "CTRL-EVENT-SCAN-RESULTS"
	evAssocReject  = "CTRL-EVENT-ASSOC-REJECT"
)

// isEventLine reports whether a datagram is an unsolicited event line,
// i.e. starts with a "<N>" priority tag.
func isEventLine(s string) bool {
	return len(s) >= 3 && s[0] == '<' && s[2] == '>'
}

// ParseEvent translates one monitor line into a lifecycle event.
//
// Disassociation and association rejection both count as a failed
// attempt. CTRL-EVENT-CONNECTED only means association completed; the
// lease that finishes bring-up is reported by the address watcher, so it
// maps to the informational link-up kind. Lines that match nothing map
// to EventUnknown and are dropped by the supervisor.
func ParseEvent(line string) wifi.Event {
	msg := line
	if isEventLine(msg) {
		msg = msg[3:]
	}

	switch {
	case strings.HasPrefix(msg, evDisconnected):
		return wifi.Event{
			Kind:   wifi.EventDisconnected,
			Reason: eventField(msg, "reason="),
		}
	case strings.HasPrefix(msg, evAssocReject):
		return wifi.Event{
			Kind:   wifi.EventDisconnected,
			Reason: eventField(msg, "status_code="),
		}
	case strings.HasPrefix(msg, evConnected):
		return wifi.Event{Kind: wifi.EventLinkUp}
	case strings.HasPrefix(msg, evScanResults):
		return wifi.Event{Kind: wifi.EventScanResults}
	default:
		return wifi.Event{Kind: wifi.EventUnknown, Reason: msg}
	}
}

// eventField extracts a "key=value" token from an event line, returning
// the whole key=value pair (e.g. "reason=3") or "" if absent.
func eventField(msg, prefix string) string {
	for _, tok := range strings.Fields(msg) {
		if strings.HasPrefix(tok, prefix) {
			return tok
		}
	}
	return ""
}
