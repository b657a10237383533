package config

import "net/netip"

// IsLinkLocal reports whether a is an IPv6 link-local unicast address
// (fe80::/10). reply-from must be link-local so on-link replies are valid.
func IsLinkLocal(a netip.Addr) bool {
	return a.IsValid() && a.Is6() && !a.Is4In6() && a.IsLinkLocalUnicast()
}

// IsGlobalUnicast reports whether a is usable as a link-address: a unicast
// IPv6 address that is not unspecified, loopback, multicast or link-local.
// Unique-local addresses qualify; plenty of VPP deployments number their
// links from fd00::/8.
func IsGlobalUnicast(a netip.Addr) bool {
	return a.IsValid() && a.Is6() && !a.Is4In6() &&
		!a.IsUnspecified() && !a.IsLoopback() && !a.IsMulticast() && !a.IsLinkLocalUnicast()
}
