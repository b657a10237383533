package ifmgr

import (
	"net"
	"net/netip"
)

// Interface mirrors one VPP software interface as discovered over the binary
// API.
type Interface struct {
	SwIfIndex     uint32
	SupSwIfIndex  uint32
	Name          string
	MAC           net.HardwareAddr
	AdminUp       bool
	IPv6Addresses []netip.Addr
}
