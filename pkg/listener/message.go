package listener

import (
	"fmt"
	"net"
	"net/netip"
	"sync/atomic"

	"github.com/insomniacslk/dhcp/dhcpv6"
	"github.com/insomniacslk/dhcp/iana"
)

var messageCounter atomic.Uint64

// nextMessageID returns the next message identifier. IDs wrap after 2^24 so
// log lines stay short; they only need to correlate a request with its reply.
func nextMessageID() string {
	return fmt.Sprintf("#%06X", messageCounter.Add(1)&0xFFFFFF)
}

// Message is one accepted DHCPv6 message punted by VPP, together with the
// listener-level metadata a server core needs to relay or answer it.
type Message struct {
	ID          string
	Interface   *Interface
	SourceMAC   net.HardwareAddr
	Source      netip.Addr
	SourcePort  uint16
	Multicast   bool
	MessageType dhcpv6.MessageType
	Payload     []byte
}

// RelayOptions returns the relay-agent options describing where this message
// entered: the interface identity and the client's link-layer address.
func (m *Message) RelayOptions() dhcpv6.Options {
	return dhcpv6.Options{
		dhcpv6.OptInterfaceID([]byte(m.Interface.Name)),
		dhcpv6.OptClientLinkLayerAddress(iana.HWTypeEthernet, m.SourceMAC),
	}
}

// Reply is an outgoing DHCPv6 message to be wrapped in an Ethernet/IPv6/UDP
// frame and injected through the punt socket.
type Reply struct {
	Interface       *Interface
	DestinationMAC  net.HardwareAddr
	Destination     netip.Addr
	DestinationPort uint16
	Payload         []byte
}
