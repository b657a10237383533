package listener

import (
	"encoding/binary"
	"errors"
	"net"
	"net/netip"
	"testing"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

func buildPuntFrame(t *testing.T, swIfIndex, action uint32, srcMAC, dstMAC net.HardwareAddr, src, dst netip.Addr, srcPort, dstPort uint16, payload []byte) []byte {
	t.Helper()

	eth := &layers.Ethernet{
		SrcMAC:       srcMAC,
		DstMAC:       dstMAC,
		EthernetType: layers.EthernetTypeIPv6,
	}
	ip6 := &layers.IPv6{
		Version:    6,
		HopLimit:   64,
		NextHeader: layers.IPProtocolUDP,
		SrcIP:      src.AsSlice(),
		DstIP:      dst.AsSlice(),
	}
	udp := &layers.UDP{
		SrcPort: layers.UDPPort(srcPort),
		DstPort: layers.UDPPort(dstPort),
	}
	if err := udp.SetNetworkLayerForChecksum(ip6); err != nil {
		t.Fatalf("set checksum layer: %v", err)
	}

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	if err := gopacket.SerializeLayers(buf, opts, eth, ip6, udp, gopacket.Payload(payload)); err != nil {
		t.Fatalf("serialize frame: %v", err)
	}

	out := make([]byte, puntHeaderLen, puntHeaderLen+len(buf.Bytes()))
	binary.LittleEndian.PutUint32(out[0:4], swIfIndex)
	binary.LittleEndian.PutUint32(out[4:8], action)
	return append(out, buf.Bytes()...)
}

var (
	testClientMAC = net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0x01}
	testServerMAC = net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0x02}
)

func TestDecodeFrame(t *testing.T) {
	src := netip.MustParseAddr("fe80::1")
	payload := []byte{1, 0, 0, 1, 0, 1, 0, 2, 0xab, 0xcd}

	data := buildPuntFrame(t, 7, 0, testClientMAC, testServerMAC, src, AllServersGroup, ClientPort, ServerPort, payload)

	frame, err := DecodeFrame(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if frame.SwIfIndex != 7 {
		t.Errorf("sw_if_index: got %d, want 7", frame.SwIfIndex)
	}
	if frame.SourceMAC.String() != testClientMAC.String() {
		t.Errorf("source MAC: got %s, want %s", frame.SourceMAC, testClientMAC)
	}
	if frame.Source != src {
		t.Errorf("source: got %s, want %s", frame.Source, src)
	}
	if frame.Destination != AllServersGroup {
		t.Errorf("destination: got %s, want %s", frame.Destination, AllServersGroup)
	}
	if frame.SourcePort != ClientPort || frame.DestinationPort != ServerPort {
		t.Errorf("ports: got %d->%d, want %d->%d", frame.SourcePort, frame.DestinationPort, ClientPort, ServerPort)
	}
	if string(frame.Payload) != string(payload) {
		t.Errorf("payload: got %x, want %x", frame.Payload, payload)
	}
}

func TestDecodeFrameTruncated(t *testing.T) {
	_, err := DecodeFrame(make([]byte, minFrameLen-1))
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("got %v, want ErrTruncated", err)
	}
}

func TestDecodeFrameUnknownAction(t *testing.T) {
	data := buildPuntFrame(t, 7, 3, testClientMAC, testServerMAC,
		netip.MustParseAddr("fe80::1"), AllServersGroup, ClientPort, ServerPort, []byte{1, 0, 0, 1})

	_, err := DecodeFrame(data)
	if !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("got %v, want ErrUnknownAction", err)
	}
}

func TestDecodeFrameNotIPv6(t *testing.T) {
	eth := &layers.Ethernet{
		SrcMAC:       testClientMAC,
		DstMAC:       testServerMAC,
		EthernetType: layers.EthernetTypeARP,
	}
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{}
	if err := gopacket.SerializeLayers(buf, opts, eth, gopacket.Payload(make([]byte, 64))); err != nil {
		t.Fatalf("serialize frame: %v", err)
	}

	data := make([]byte, puntHeaderLen)
	data = append(data, buf.Bytes()...)

	_, err := DecodeFrame(data)
	if !errors.Is(err, ErrNotDHCPv6) {
		t.Fatalf("got %v, want ErrNotDHCPv6", err)
	}
}

func TestEncodeReplyFrameRoundTrip(t *testing.T) {
	iface := &Interface{
		Name:      "tap0",
		SwIfIndex: 42,
		MAC:       testServerMAC,
		ReplyFrom: netip.MustParseAddr("fe80::2"),
	}
	payload := []byte{7, 0, 0, 1, 0, 1, 0, 4, 0xde, 0xad, 0xbe, 0xef}

	reply := &Reply{
		Interface:       iface,
		DestinationMAC:  testClientMAC,
		Destination:     netip.MustParseAddr("fe80::1"),
		DestinationPort: ClientPort,
		Payload:         payload,
	}

	data, err := EncodeReplyFrame(reply)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := binary.LittleEndian.Uint32(data[0:4]); got != 42 {
		t.Errorf("punt header sw_if_index: got %d, want 42", got)
	}
	if got := binary.LittleEndian.Uint32(data[4:8]); got != 0 {
		t.Errorf("punt header action: got %d, want 0", got)
	}

	pkt := gopacket.NewPacket(data[puntHeaderLen:], layers.LayerTypeEthernet, gopacket.Default)
	ip6, ok := pkt.Layer(layers.LayerTypeIPv6).(*layers.IPv6)
	if !ok {
		t.Fatal("reply frame is not IPv6")
	}
	if ip6.TrafficClass != 0xc0 {
		t.Errorf("traffic class: got %#x, want 0xc0", ip6.TrafficClass)
	}
	if ip6.HopLimit != 63 {
		t.Errorf("hop limit: got %d, want 63", ip6.HopLimit)
	}

	frame, err := DecodeFrame(data)
	if err != nil {
		t.Fatalf("decode of encoded reply failed: %v", err)
	}
	if frame.Source != iface.ReplyFrom {
		t.Errorf("source: got %s, want %s", frame.Source, iface.ReplyFrom)
	}
	if frame.Destination != reply.Destination {
		t.Errorf("destination: got %s, want %s", frame.Destination, reply.Destination)
	}
	if frame.SourcePort != ServerPort || frame.DestinationPort != ClientPort {
		t.Errorf("ports: got %d->%d, want %d->%d", frame.SourcePort, frame.DestinationPort, ServerPort, ClientPort)
	}
	if string(frame.Payload) != string(payload) {
		t.Errorf("payload: got %x, want %x", frame.Payload, payload)
	}
}
