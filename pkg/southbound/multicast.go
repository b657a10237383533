package southbound

import "net/netip"

type Multicast interface {
	// EnableMulticastReceive makes the dataplane accept traffic for the given
	// IPv6 multicast group arriving on the given interface.
	EnableMulticastReceive(group netip.Addr, swIfIndex uint32) error

	// EnableLocalMulticastReceive installs a local-receive route for the
	// group so accepted traffic reaches the punt path regardless of arrival
	// interface.
	EnableLocalMulticastReceive(group netip.Addr) error
}
