package listener

import (
	"net"
	"testing"

	"github.com/insomniacslk/dhcp/dhcpv6"
)

func TestRelayOptions(t *testing.T) {
	msg := &Message{
		Interface: &Interface{Name: "GigabitEthernet0/1/2"},
		SourceMAC: net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0x01},
	}

	opts := msg.RelayOptions()
	if len(opts) != 2 {
		t.Fatalf("got %d options, want 2", len(opts))
	}

	ifaceID := opts.GetOne(dhcpv6.OptionInterfaceID)
	if ifaceID == nil {
		t.Fatal("interface-id option missing")
	}
	if string(ifaceID.ToBytes()) != "GigabitEthernet0/1/2" {
		t.Errorf("interface-id: got %q, want %q", ifaceID.ToBytes(), "GigabitEthernet0/1/2")
	}

	lla := opts.GetOne(dhcpv6.OptionClientLinkLayerAddr)
	if lla == nil {
		t.Fatal("client link-layer address option missing")
	}
	// Hardware type ethernet (1) followed by the punted frame's source MAC.
	want := append([]byte{0x00, 0x01}, msg.SourceMAC...)
	if string(lla.ToBytes()) != string(want) {
		t.Errorf("client link-layer address: got %x, want %x", lla.ToBytes(), want)
	}
}

func TestMessageIDFormat(t *testing.T) {
	id := nextMessageID()
	if len(id) != 7 || id[0] != '#' {
		t.Fatalf("message ID %q does not match #XXXXXX", id)
	}
	if next := nextMessageID(); next == id {
		t.Fatalf("message IDs do not advance: %q", next)
	}
}
