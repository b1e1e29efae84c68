package wpa

import (
	"testing"

	"github.com/muurk/stationup/internal/wifi"
)

func TestParseEvent(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantKind   wifi.EventKind
		wantReason string
	}{
		{
			name:       "disconnected with reason",
			line:       "<3>CTRL-EVENT-DISCONNECTED bssid=aa:bb:cc:dd:ee:ff reason=3 locally_generated=1",
			wantKind:   wifi.EventDisconnected,
			wantReason: "reason=3",
		},
		{
			name:     "disconnected without reason",
			line:     "<3>CTRL-EVENT-DISCONNECTED",
			wantKind: wifi.EventDisconnected,
		},
		{
			name:       "assoc reject counts as disconnect",
			line:       "<3>CTRL-EVENT-ASSOC-REJECT bssid=aa:bb:cc:dd:ee:ff status_code=16",
			wantKind:   wifi.EventDisconnected,
			wantReason: "status_code=16",
		},
		{
			name:     "connected maps to link-up",
			line:     "<3>CTRL-EVENT-CONNECTED - Connection to aa:bb:cc:dd:ee:ff completed [id=0 id_str=]",
			wantKind: wifi.EventLinkUp,
		},
		{
			name:     "scan results",
			line:     "<3>CTRL-EVENT-SCAN-RESULTS",
			wantKind: wifi.EventScanResults,
		},
		{
			name:       "unknown event preserved as reason",
			line:       "<3>CTRL-EVENT-BSS-ADDED 34 aa:bb:cc:dd:ee:ff",
			wantKind:   wifi.EventUnknown,
			wantReason: "CTRL-EVENT-BSS-ADDED 34 aa:bb:cc:dd:ee:ff",
		},
		{
			name:       "line without priority tag",
			line:       "CTRL-EVENT-DISCONNECTED bssid=aa:bb:cc:dd:ee:ff reason=4",
			wantKind:   wifi.EventDisconnected,
			wantReason: "reason=4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := ParseEvent(tt.line)
			if ev.Kind != tt.wantKind {
				t.Errorf("ParseEvent(%q).Kind = %v, want %v", tt.line, ev.Kind, tt.wantKind)
			}
			if ev.Reason != tt.wantReason {
				t.Errorf("ParseEvent(%q).Reason = %q, want %q", tt.line, ev.Reason, tt.wantReason)
			}
		})
	}
}

func TestIsEventLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"<3>CTRL-EVENT-SCAN-RESULTS", true},
		{"<4>WPS-AP-AVAILABLE", true},
		{"OK", false},
		{"FAIL", false},
		{"0", false},
		{"", false},
		{"<3", false},
	}
	for _, tt := range tests {
		if got := isEventLine(tt.line); got != tt.want {
			t.Errorf("isEventLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"homenet", `"homenet"`},
		{`pa"ss`, `"pa\"ss"`},
		{`back\slash`, `"back\\slash"`},
	}
	for _, tt := range tests {
		if got := quote(tt.in); got != tt.want {
			t.Errorf("quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
