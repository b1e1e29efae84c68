// Package wpa speaks the wpa_supplicant control interface.
//
// wpa_supplicant exposes one unix datagram socket per managed interface
// (by default under /var/run/wpa_supplicant). Commands are single
// datagrams answered by single datagrams; unsolicited event lines are
// delivered on any socket that has sent ATTACH, prefixed with a priority
// tag such as "<3>".
//
// Following the reference wpa_ctrl client, Station keeps two
// connections: a command connection for request/response traffic and an
// attached monitor connection whose read loop translates event lines
// into wifi.Event values for the subscribed sink.
//
// # Lifecycle
//
//	st := wpa.NewStation("wlan0", "", logger)
//	st.Configure(wifi.Credentials{SSID: ssid, Passphrase: pass})
//	st.Subscribe(sup)
//	st.Start()          // attaches and emits station-started
//	...
//	st.Stop()           // disconnects, detaches, closes sockets
//
// RequestConnect is fire-and-forget: a failed SELECT_NETWORK surfaces
// only as a log line and, eventually, a disconnect event.
package wpa
