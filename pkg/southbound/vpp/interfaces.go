package vpp

import (
	"fmt"
	"net"
	"strings"

	"github.com/steffann/dhcp6vppd/pkg/ifmgr"
	interfaces "go.fd.io/govpp/binapi/interface"
	"go.fd.io/govpp/binapi/interface_types"
)

// ReloadInterfaces rebuilds the interface table from a full sw_interface_dump.
func (v *VPP) ReloadInterfaces() error {
	ch, err := v.conn.NewAPIChannel()
	if err != nil {
		return fmt.Errorf("create API channel: %w", err)
	}
	defer ch.Close()

	v.ifMgr.Clear()

	req := &interfaces.SwInterfaceDump{
		SwIfIndex: ^interface_types.InterfaceIndex(0),
	}

	stream := ch.SendMultiRequest(req)
	count := 0

	for {
		details := &interfaces.SwInterfaceDetails{}
		stop, err := stream.ReceiveReply(details)
		if stop {
			break
		}
		if err != nil {
			return fmt.Errorf("dump interfaces: %w", err)
		}

		mac := make(net.HardwareAddr, len(details.L2Address))
		copy(mac, details.L2Address[:])

		v.ifMgr.Add(&ifmgr.Interface{
			SwIfIndex:    uint32(details.SwIfIndex),
			SupSwIfIndex: details.SupSwIfIndex,
			Name:         strings.TrimRight(details.InterfaceName, "\x00"),
			MAC:          mac,
			AdminUp:      details.Flags&interface_types.IF_STATUS_API_FLAG_ADMIN_UP != 0,
		})
		count++
	}

	if count == 0 {
		return fmt.Errorf("no interfaces returned by VPP")
	}

	v.logger.Debug("Loaded interfaces", "count", count)
	return nil
}

func (v *VPP) GetInterface(name string) (*ifmgr.Interface, error) {
	if iface := v.ifMgr.GetByName(name); iface != nil {
		return iface, nil
	}
	return nil, fmt.Errorf("VPP interface %q not found", name)
}
