package vpp

import (
	"fmt"
	"net/netip"
	"sort"

	"go.fd.io/govpp/binapi/interface_types"
	"go.fd.io/govpp/binapi/ip"
	"go.fd.io/govpp/binapi/ip_types"
)

// DumpIPv6Addresses returns the IPv6 addresses on an interface, sorted
// ascending, and refreshes the cached interface table entry.
func (v *VPP) DumpIPv6Addresses(swIfIndex uint32) ([]netip.Addr, error) {
	ch, err := v.conn.NewAPIChannel()
	if err != nil {
		return nil, fmt.Errorf("create API channel: %w", err)
	}
	defer ch.Close()

	req := &ip.IPAddressDump{
		SwIfIndex: interface_types.InterfaceIndex(swIfIndex),
		IsIPv6:    true,
	}

	stream := ch.SendMultiRequest(req)
	var addrs []netip.Addr

	for {
		details := &ip.IPAddressDetails{}
		stop, err := stream.ReceiveReply(details)
		if stop {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dump ipv6 addresses: %w", err)
		}

		if details.Prefix.Address.Af != ip_types.ADDRESS_IP6 {
			continue
		}
		ip6 := details.Prefix.Address.Un.GetIP6()
		addrs = append(addrs, netip.AddrFrom16(ip6))
	}

	sort.Slice(addrs, func(i, j int) bool { return addrs[i].Less(addrs[j]) })

	v.ifMgr.SetIPv6Addresses(swIfIndex, addrs)

	v.logger.Debug("Dumped IPv6 addresses", "sw_if_index", swIfIndex, "count", len(addrs))
	return addrs, nil
}
