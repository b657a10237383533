package vpp

import (
	"fmt"
	"strings"

	"go.fd.io/govpp/binapi/ip_types"
	"go.fd.io/govpp/binapi/punt"
)

func dhcp6PuntEntry(port uint16) punt.Punt {
	return punt.Punt{
		Type: punt.PUNT_API_TYPE_L4,
		Punt: punt.PuntUnionL4(punt.PuntL4{
			Af:       ip_types.ADDRESS_IP6,
			Protocol: ip_types.IP_API_PROTO_UDP,
			Port:     port,
		}),
	}
}

// RegisterPuntSocket registers path as the receiver for IPv6 UDP traffic on
// the given port. The returned path is VPP's own socket, which replies must
// be written to.
func (v *VPP) RegisterPuntSocket(path string, port uint16) (string, error) {
	ch, err := v.conn.NewAPIChannel()
	if err != nil {
		return "", fmt.Errorf("create API channel: %w", err)
	}
	defer ch.Close()

	req := &punt.PuntSocketRegister{
		HeaderVersion: 1,
		Punt:          dhcp6PuntEntry(port),
		Pathname:      path,
	}

	reply := &punt.PuntSocketRegisterReply{}
	if err := ch.SendRequest(req).ReceiveReply(reply); err != nil {
		return "", fmt.Errorf("register punt socket: %w", err)
	}
	if reply.Retval != 0 {
		return "", fmt.Errorf("register punt socket failed: retval=%d", reply.Retval)
	}

	vppPath := strings.TrimRight(reply.Pathname, "\x00")

	v.logger.Debug("Registered punt socket", "path", path, "port", port, "vpp_path", vppPath)
	return vppPath, nil
}

func (v *VPP) DeregisterPuntSocket(port uint16) error {
	ch, err := v.conn.NewAPIChannel()
	if err != nil {
		return fmt.Errorf("create API channel: %w", err)
	}
	defer ch.Close()

	req := &punt.PuntSocketDeregister{
		Punt: dhcp6PuntEntry(port),
	}

	reply := &punt.PuntSocketDeregisterReply{}
	if err := ch.SendRequest(req).ReceiveReply(reply); err != nil {
		return fmt.Errorf("deregister punt socket: %w", err)
	}
	if reply.Retval != 0 {
		return fmt.Errorf("deregister punt socket failed: retval=%d", reply.Retval)
	}

	v.logger.Debug("Deregistered punt socket", "port", port)
	return nil
}
