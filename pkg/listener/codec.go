package listener

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"net/netip"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/insomniacslk/dhcp/dhcpv6"
)

const (
	ServerPort = uint16(dhcpv6.DefaultServerPort)
	ClientPort = uint16(dhcpv6.DefaultClientPort)

	// VPP prefixes every punted frame with the sw_if_index and an action
	// word, both 32-bit little-endian.
	puntHeaderLen = 8

	// Smallest punted frame that can hold an IPv6 UDP packet: punt header,
	// Ethernet header, IPv6 header, UDP header.
	minFrameLen = puntHeaderLen + 14 + 40 + 8
)

var (
	ErrTruncated        = errors.New("punted message too short to contain an IPv6 UDP packet")
	ErrUnknownAction    = errors.New("punted message carries an unknown action")
	ErrNotDHCPv6        = errors.New("punted message is not an IPv6 UDP DHCPv6 message")
	ErrUnknownInterface = errors.New("punted message from unknown interface")
	ErrFiltered         = errors.New("message filtered by interface policy")
)

// Frame is one punted Ethernet/IPv6/UDP frame after header stripping but
// before any interface policy is applied.
type Frame struct {
	SwIfIndex       uint32
	SourceMAC       net.HardwareAddr
	DestinationMAC  net.HardwareAddr
	Source          netip.Addr
	Destination     netip.Addr
	SourcePort      uint16
	DestinationPort uint16
	Payload         []byte
}

// DecodeFrame parses a datagram read from the punt socket: the VPP punt
// header followed by the full layer-2 frame.
func DecodeFrame(data []byte) (*Frame, error) {
	if len(data) < minFrameLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncated, len(data))
	}

	swIfIndex := binary.LittleEndian.Uint32(data[0:4])
	action := binary.LittleEndian.Uint32(data[4:8])
	if action != 0 {
		return nil, fmt.Errorf("%w: action %d", ErrUnknownAction, action)
	}

	pkt := gopacket.NewPacket(data[puntHeaderLen:], layers.LayerTypeEthernet, gopacket.Default)

	ethLayer := pkt.Layer(layers.LayerTypeEthernet)
	ip6Layer := pkt.Layer(layers.LayerTypeIPv6)
	udpLayer := pkt.Layer(layers.LayerTypeUDP)
	if ethLayer == nil || ip6Layer == nil || udpLayer == nil {
		return nil, ErrNotDHCPv6
	}

	eth := ethLayer.(*layers.Ethernet)
	ip6 := ip6Layer.(*layers.IPv6)
	udp := udpLayer.(*layers.UDP)

	src, ok := netip.AddrFromSlice(ip6.SrcIP)
	if !ok {
		return nil, ErrNotDHCPv6
	}
	dst, ok := netip.AddrFromSlice(ip6.DstIP)
	if !ok {
		return nil, ErrNotDHCPv6
	}

	payload := udp.Payload
	if len(payload) == 0 {
		return nil, ErrNotDHCPv6
	}

	return &Frame{
		SwIfIndex:       swIfIndex,
		SourceMAC:       eth.SrcMAC,
		DestinationMAC:  eth.DstMAC,
		Source:          src,
		Destination:     dst,
		SourcePort:      uint16(udp.SrcPort),
		DestinationPort: uint16(udp.DstPort),
		Payload:         payload,
	}, nil
}

// EncodeReplyFrame builds the punt-socket datagram for a reply: punt header
// plus Ethernet/IPv6/UDP with computed lengths and checksums. The IPv6 header
// uses the traffic class and hop limit the dataplane expects for locally
// originated DHCPv6 (CS6, 63).
func EncodeReplyFrame(r *Reply) ([]byte, error) {
	eth := &layers.Ethernet{
		SrcMAC:       r.Interface.MAC,
		DstMAC:       r.DestinationMAC,
		EthernetType: layers.EthernetTypeIPv6,
	}

	ip6 := &layers.IPv6{
		Version:      6,
		TrafficClass: 0xc0,
		HopLimit:     63,
		NextHeader:   layers.IPProtocolUDP,
		SrcIP:        r.Interface.ReplyFrom.AsSlice(),
		DstIP:        r.Destination.AsSlice(),
	}

	udp := &layers.UDP{
		SrcPort: layers.UDPPort(ServerPort),
		DstPort: layers.UDPPort(r.DestinationPort),
	}
	if err := udp.SetNetworkLayerForChecksum(ip6); err != nil {
		return nil, fmt.Errorf("set checksum layer: %w", err)
	}

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	if err := gopacket.SerializeLayers(buf, opts, eth, ip6, udp, gopacket.Payload(r.Payload)); err != nil {
		return nil, fmt.Errorf("serialize reply frame: %w", err)
	}

	frame := buf.Bytes()
	out := make([]byte, puntHeaderLen, puntHeaderLen+len(frame))
	binary.LittleEndian.PutUint32(out[0:4], r.Interface.SwIfIndex)
	binary.LittleEndian.PutUint32(out[4:8], 0)
	return append(out, frame...), nil
}
