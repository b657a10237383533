package southbound

import "net/netip"

type Addressing interface {
	// DumpIPv6Addresses returns the IPv6 addresses configured on the given
	// interface, sorted ascending.
	DumpIPv6Addresses(swIfIndex uint32) ([]netip.Addr, error)
}
