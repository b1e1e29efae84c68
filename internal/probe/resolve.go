package probe

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// mdnsServiceType is the service browsed for .local hosts; devices
	// advertising an HTTP endpoint register under it
	mdnsServiceType = "_http._tcp"

	// mdnsDomain is the mDNS domain
	mdnsDomain = "local."

	// mdnsTimeout bounds the browse for a .local host
	mdnsTimeout = 10 * time.Second
)

// resolve turns a hostname into an address. Literal IPs pass through,
// .local names go through mDNS, and everything else uses the system
// resolver (first returned address wins, IPv4 preferred).
func resolve(ctx context.Context, host string) (netip.Addr, error) {
	if addr, err := netip.ParseAddr(host); err == nil {
		return addr, nil
	}
	if isLocalHost(host) {
		return resolveMDNS(ctx, host)
	}
	return resolveDNS(ctx, host)
}

func resolveDNS(ctx context.Context, host string) (netip.Addr, error) {
	addrs, err := net.DefaultResolver.LookupNetIP(ctx, "ip", host)
	if err != nil {
		return netip.Addr{}, err
	}
	if len(addrs) == 0 {
		return netip.Addr{}, fmt.Errorf("no addresses for %s", host)
	}
	for _, a := range addrs {
		if a.Unmap().Is4() {
			return a.Unmap(), nil
		}
	}
	return addrs[0].Unmap(), nil
}

// resolveMDNS browses for HTTP services and matches the advertised
// hostname. Plain multicast A-record lookups need a raw socket; hosts
// we care about here advertise a service anyway.
func resolveMDNS(ctx context.Context, host string) (netip.Addr, error) {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, mdnsTimeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	found := make(chan netip.Addr, 1)

	go func() {
		for entry := range entries {
			if !hostnameMatches(entry.HostName, host) {
				continue
			}
			for _, ip := range entry.AddrIPv4 {
				if addr, ok := netip.AddrFromSlice(ip); ok {
					select {
					case found <- addr.Unmap():
					default:
					}
					cancel()
					return
				}
			}
		}
	}()

	if err := resolver.Browse(ctx, mdnsServiceType, mdnsDomain, entries); err != nil {
		return netip.Addr{}, fmt.Errorf("failed to browse mDNS services: %w", err)
	}

	<-ctx.Done()

	select {
	case addr := <-found:
		return addr, nil
	default:
		return netip.Addr{}, fmt.Errorf("no mDNS answer for %s", host)
	}
}

// hostnameMatches compares mDNS hostnames ignoring case and trailing
// dots (entries arrive as "device.local.").
func hostnameMatches(entry, want string) bool {
	entry = strings.TrimSuffix(strings.ToLower(entry), ".")
	want = strings.TrimSuffix(strings.ToLower(want), ".")
	return entry == want
}
