package listener

import (
	"fmt"
	"net/netip"

	"github.com/steffann/dhcp6vppd/pkg/config"
)

// Address defaults are resolved once, after discovery and before the listener
// starts; the resulting values are fixed for the process lifetime. Both
// functions expect addrs sorted ascending so "first" is deterministic.

// ResolveReplyFrom picks the link-local source address for replies on an
// interface. A configured address (valid netip.Addr) must actually exist on
// the interface; otherwise the first link-local address is used.
func ResolveReplyFrom(configured netip.Addr, interfaceName string, addrs []netip.Addr) (netip.Addr, error) {
	if configured.IsValid() {
		for _, a := range addrs {
			if a == configured {
				return configured, nil
			}
		}
		return netip.Addr{}, fmt.Errorf("reply-from address %s does not exist on %s", configured, interfaceName)
	}

	for _, a := range addrs {
		if config.IsLinkLocal(a) {
			return a, nil
		}
	}
	return netip.Addr{}, fmt.Errorf("no link-local address found on %s", interfaceName)
}

// ResolveLinkAddress picks the address identifying the link to downstream
// filters. A configured address wins and does not have to exist on the
// interface; otherwise the first global unicast address is used, or the
// unspecified address when the interface has none.
func ResolveLinkAddress(configured netip.Addr, addrs []netip.Addr) netip.Addr {
	if configured.IsValid() {
		return configured
	}

	for _, a := range addrs {
		if config.IsGlobalUnicast(a) {
			return a
		}
	}
	return netip.IPv6Unspecified()
}
