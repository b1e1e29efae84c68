// Package probe issues a single HTTP/1.0 GET over a raw TCP socket to
// verify that the freshly acquired network actually routes.
//
// This is intentionally not an HTTP client: one fixed request string is
// written, and the response is read in small chunks under a receive
// deadline and dumped verbatim to a writer. Hosts under .local resolve
// via mDNS, everything else through the system resolver.
package probe
