package middleware

import (
	"net"
	"net/http"
	"slices"
	"strings"

	"github.com/en9inerd/railway-server/realip"
)

// RealIP sets r.RemoteAddr from the X-Forwarded-For or X-Real-Ip headers,
// but only when the request arrives from a trusted proxy, so clients that
// connect directly cannot spoof their address.
//
// trustedProxies can be:
//   - nil or empty: trust headers only when RemoteAddr is a private IP
//     (assumes the server sits behind a reverse proxy on a private network)
//   - CIDR blocks and/or plain IP addresses: trust headers only when
//     RemoteAddr matches one of them
//
// Entries that parse as neither are ignored.
func RealIP(trustedProxies []string) func(http.Handler) http.Handler {
	var trustedNets []*net.IPNet
	var trustedIPs []net.IP

	for _, proxy := range trustedProxies {
		proxy = strings.TrimSpace(proxy)
		if strings.Contains(proxy, "/") {
			if _, network, err := net.ParseCIDR(proxy); err == nil {
				trustedNets = append(trustedNets, network)
			}
			continue
		}
		if ip := net.ParseIP(proxy); ip != nil {
			trustedIPs = append(trustedIPs, ip)
		}
	}
	trustPrivate := len(trustedProxies) == 0

	isTrusted := func(remote net.IP) bool {
		if trustPrivate {
			return realip.IsPrivateIP(remote) || remote.IsLoopback()
		}
		return slices.ContainsFunc(trustedIPs, remote.Equal) ||
			slices.ContainsFunc(trustedNets, func(n *net.IPNet) bool { return n.Contains(remote) })
	}

	return func(h http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			host := r.RemoteAddr
			if hst, _, err := net.SplitHostPort(host); err == nil {
				host = hst
			}
			if remote := net.ParseIP(host); remote != nil && isTrusted(remote) {
				if rip, err := realip.Get(r); err == nil {
					r.RemoteAddr = rip
				}
			}
			h.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}
