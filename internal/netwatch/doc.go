// Package netwatch reports IP address acquisition on the station link.
//
// Association alone does not make the network usable; bring-up succeeds
// when DHCP (or SLAAC) puts a routable address on the interface. The
// watcher subscribes to kernel rtnetlink address updates, filters for
// new global addresses on the watched link, and delivers
// address-acquired events to the sink.
//
// Linux only: the stub on other platforms fails Start with
// ErrUnsupported.
package netwatch
