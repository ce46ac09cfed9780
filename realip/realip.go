// Package realip extracts the client address from proxy headers.
package realip

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// headers are consulted in order; each may hold a comma-separated chain.
var headers = []string{"X-Forwarded-For", "X-Real-Ip"}

var privatePrefixes = []netip.Prefix{
	// IPv4 Private
	netip.MustParsePrefix("10.0.0.0/8"),
	netip.MustParsePrefix("172.16.0.0/12"),
	netip.MustParsePrefix("192.168.0.0/16"),
	// IPv4 Link-Local
	netip.MustParsePrefix("169.254.0.0/16"),
	// IPv4 Shared Address Space (RFC 6598)
	netip.MustParsePrefix("100.64.0.0/10"),
	// IPv4 Benchmarking (RFC 2544)
	netip.MustParsePrefix("198.18.0.0/15"),
	// IPv6 Unique Local Addresses (ULA)
	netip.MustParsePrefix("fc00::/7"),
	// IPv6 Link-local
	netip.MustParsePrefix("fe80::/10"),
}

// Get extracts the "real" client IP from the request.
// It prefers the first public IP found scanning headers right-to-left,
// falls back to the first valid IP seen in headers, then to RemoteAddr.
func Get(r *http.Request) (string, error) {
	var firstValid string

	for _, header := range headers {
		hv := r.Header.Get(header)
		if hv == "" {
			continue
		}

		var addrs []netip.Addr
		for part := range strings.SplitSeq(hv, ",") {
			addr, err := netip.ParseAddr(strings.TrimSpace(part))
			if err != nil {
				continue
			}
			addrs = append(addrs, addr)
		}
		if len(addrs) > 0 && firstValid == "" {
			firstValid = addrs[0].String()
		}

		// the rightmost public hop is the last one a proxy appended
		for i := len(addrs) - 1; i >= 0; i-- {
			a := addrs[i].Unmap()
			if a.IsGlobalUnicast() && !isPrivate(a) {
				return addrs[i].String(), nil
			}
		}
	}

	if firstValid != "" {
		return firstValid, nil
	}

	remote := r.RemoteAddr
	if host, _, err := net.SplitHostPort(remote); err == nil {
		remote = host
	}
	if addr, err := netip.ParseAddr(remote); err == nil {
		return addr.String(), nil
	}

	return "", fmt.Errorf("no valid IP found in request: %q", r.RemoteAddr)
}

func isPrivate(a netip.Addr) bool {
	for _, p := range privatePrefixes {
		if p.Contains(a) {
			return true
		}
	}
	return false
}

// IsPrivateIP reports whether ip falls in a private or link-local range.
// Used to decide whether a peer is a trusted proxy.
func IsPrivateIP(ip net.IP) bool {
	a, ok := netip.AddrFromSlice(ip)
	if !ok {
		return false
	}
	return isPrivate(a.Unmap())
}
