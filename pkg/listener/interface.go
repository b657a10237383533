package listener

import (
	"fmt"
	"net"
	"net/netip"

	"github.com/insomniacslk/dhcp/dhcpv6"
	"github.com/steffann/dhcp6vppd/pkg/southbound"
)

// AllServersGroup is ff02::1:2, the All_DHCP_Relay_Agents_and_Servers
// multicast group.
var AllServersGroup = func() netip.Addr {
	a, ok := netip.AddrFromSlice(dhcpv6.AllDHCPRelayAgentsAndServers)
	if !ok {
		panic("invalid All_DHCP_Relay_Agents_and_Servers address")
	}
	return a
}()

// Interface is the fixed runtime record for one VPP interface a listener
// answers on: the discovered identity plus the resolved per-interface policy.
type Interface struct {
	Name            string
	SwIfIndex       uint32
	MAC             net.HardwareAddr
	AcceptUnicast   bool
	AcceptMulticast bool
	ReplyFrom       netip.Addr
	LinkAddress     netip.Addr
}

// Activate makes VPP accept the DHCPv6 multicast group on this interface when
// multicast reception is enabled.
func (i *Interface) Activate(sb southbound.Multicast) error {
	if !i.AcceptMulticast {
		return nil
	}
	if err := sb.EnableMulticastReceive(AllServersGroup, i.SwIfIndex); err != nil {
		return fmt.Errorf("enable multicast on %s: %w", i.Name, err)
	}
	return nil
}

func (i *Interface) String() string {
	return fmt.Sprintf("%s (if %d)", i.Name, i.SwIfIndex)
}
