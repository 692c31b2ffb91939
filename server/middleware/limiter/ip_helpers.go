// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"net"
	"net/http"
	"strings"
)

// IPv4 and IPv6 address lengths as measured in bits.
const (
	ipv4BitLength = 32
	ipv6BitLength = 128
)

// getClientIP extracts the client's IP address from r, or nil when none is known.
//
// X-Real-IP and X-Forwarded-For are only trusted when the connection comes
// from a private or loopback address, or over the unix socket.
func getClientIP(r *http.Request) net.IP {
	remoteIP := r.RemoteAddr
	if ip, _, err := net.SplitHostPort(remoteIP); err == nil {
		remoteIP = ip
	}

	direct := net.ParseIP(remoteIP)

	trusted := isUnixPeer(r.RemoteAddr) || (direct != nil && (direct.IsPrivate() || direct.IsLoopback()))
	if !trusted {
		return direct
	}

	if realIP := net.ParseIP(strings.TrimSpace(r.Header.Get("X-Real-IP"))); realIP != nil {
		return realIP
	}

	// The last X-Forwarded-For entry is the one added by our own proxy.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if forwarded := net.ParseIP(strings.TrimSpace(parts[len(parts)-1])); forwarded != nil {
			return forwarded
		}
	}

	return direct
}

// isUnixPeer reports whether remoteAddr belongs to a unix socket connection.
// Unnamed client sockets report "@" or nothing.
func isUnixPeer(remoteAddr string) bool {
	return remoteAddr == "" || remoteAddr == "@" || strings.HasPrefix(remoteAddr, "/")
}

// clientKey names the bucket of r: the client network when an IP is known,
// otherwise the raw peer address.
func (l *Limiter) clientKey(r *http.Request) string {
	if ip := getClientIP(r); ip != nil {
		return getNetwork(ip, l.ipv4Prefix, l.ipv6Prefix).String()
	}

	if r.RemoteAddr == "" {
		return "@"
	}

	return r.RemoteAddr
}

// getNetwork masks ip down to the configured prefix for its family.
func getNetwork(ip net.IP, ipv4Prefix, ipv6Prefix int) *net.IPNet {
	var mask net.IPMask
	if ip.To4() != nil {
		mask = net.CIDRMask(ipv4Prefix, ipv4BitLength)
	} else {
		mask = net.CIDRMask(ipv6Prefix, ipv6BitLength)
	}

	return &net.IPNet{
		IP:   ip.Mask(mask),
		Mask: mask,
	}
}
