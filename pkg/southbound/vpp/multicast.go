package vpp

import (
	"fmt"
	"net/netip"

	"go.fd.io/govpp/binapi/fib_types"
	"go.fd.io/govpp/binapi/ip"
	"go.fd.io/govpp/binapi/ip_types"
	"go.fd.io/govpp/binapi/mfib_types"
)

func ip6Mprefix(group netip.Addr) ip_types.Mprefix {
	var grpAddr ip_types.AddressUnion
	grpAddr.SetIP6(ip_types.IP6Address(group.As16()))

	return ip_types.Mprefix{
		Af:               ip_types.ADDRESS_IP6,
		GrpAddressLength: 128,
		GrpAddress:       grpAddr,
	}
}

// EnableMulticastReceive adds an accept path for the group on the given
// interface, so VPP forwards traffic for it into the multicast FIB instead of
// dropping it at the port.
func (v *VPP) EnableMulticastReceive(group netip.Addr, swIfIndex uint32) error {
	ch, err := v.conn.NewAPIChannel()
	if err != nil {
		return fmt.Errorf("create API channel: %w", err)
	}
	defer ch.Close()

	req := &ip.IPMrouteAddDel{
		IsAdd:       true,
		IsMultipath: true,
		Route: ip.IPMroute{
			TableID: 0,
			Prefix:  ip6Mprefix(group),
			NPaths:  1,
			Paths: []mfib_types.MfibPath{
				{
					ItfFlags: mfib_types.MFIB_API_ITF_FLAG_ACCEPT,
					Path: fib_types.FibPath{
						SwIfIndex: swIfIndex,
						Proto:     fib_types.FIB_API_PATH_NH_PROTO_IP6,
					},
				},
			},
		},
	}

	reply := &ip.IPMrouteAddDelReply{}
	if err := ch.SendRequest(req).ReceiveReply(reply); err != nil {
		return fmt.Errorf("add mroute accept path: %w", err)
	}
	if reply.Retval != 0 {
		return fmt.Errorf("add mroute accept path failed: retval=%d", reply.Retval)
	}

	v.logger.Debug("Enabled multicast receive", "group", group, "sw_if_index", swIfIndex)
	return nil
}

// EnableLocalMulticastReceive installs a local-receive entry for the group so
// that accepted multicast reaches the host path, where the punt registration
// picks it up.
func (v *VPP) EnableLocalMulticastReceive(group netip.Addr) error {
	ch, err := v.conn.NewAPIChannel()
	if err != nil {
		return fmt.Errorf("create API channel: %w", err)
	}
	defer ch.Close()

	req := &ip.IPMrouteAddDel{
		IsAdd:       true,
		IsMultipath: true,
		Route: ip.IPMroute{
			TableID:    0,
			EntryFlags: mfib_types.MFIB_API_ENTRY_FLAG_ACCEPT_ALL_ITF,
			Prefix:     ip6Mprefix(group),
			NPaths:     1,
			Paths: []mfib_types.MfibPath{
				{
					ItfFlags: mfib_types.MFIB_API_ITF_FLAG_FORWARD,
					Path: fib_types.FibPath{
						SwIfIndex: ^uint32(0),
						Proto:     fib_types.FIB_API_PATH_NH_PROTO_IP6,
						Type:      fib_types.FIB_API_PATH_TYPE_LOCAL,
					},
				},
			},
		},
	}

	reply := &ip.IPMrouteAddDelReply{}
	if err := ch.SendRequest(req).ReceiveReply(reply); err != nil {
		return fmt.Errorf("add local mroute: %w", err)
	}
	if reply.Retval != 0 {
		return fmt.Errorf("add local mroute failed: retval=%d", reply.Retval)
	}

	v.logger.Debug("Enabled local multicast receive", "group", group)
	return nil
}
