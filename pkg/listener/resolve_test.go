package listener

import (
	"net/netip"
	"strings"
	"testing"
)

func addrs(ss ...string) []netip.Addr {
	var out []netip.Addr
	for _, s := range ss {
		out = append(out, netip.MustParseAddr(s))
	}
	return out
}

func TestResolveReplyFromConfigured(t *testing.T) {
	got, err := ResolveReplyFrom(netip.MustParseAddr("fe80::2"), "tap0", addrs("2001:db8::1", "fe80::1", "fe80::2"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != netip.MustParseAddr("fe80::2") {
		t.Fatalf("got %s, want fe80::2", got)
	}
}

func TestResolveReplyFromConfiguredMissing(t *testing.T) {
	_, err := ResolveReplyFrom(netip.MustParseAddr("fe80::99"), "tap0", addrs("fe80::1"))
	if err == nil {
		t.Fatal("expected error for address not on interface")
	}
	if !strings.Contains(err.Error(), "does not exist on tap0") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestResolveReplyFromFirstLinkLocal(t *testing.T) {
	got, err := ResolveReplyFrom(netip.Addr{}, "tap0", addrs("2001:db8::1", "fe80::1", "fe80::2"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != netip.MustParseAddr("fe80::1") {
		t.Fatalf("got %s, want fe80::1", got)
	}
}

func TestResolveReplyFromNoLinkLocal(t *testing.T) {
	_, err := ResolveReplyFrom(netip.Addr{}, "tap0", addrs("2001:db8::1"))
	if err == nil {
		t.Fatal("expected error when no link-local address exists")
	}
	if !strings.Contains(err.Error(), "no link-local address found on tap0") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestResolveLinkAddressConfigured(t *testing.T) {
	// The configured link-address does not have to exist on the interface.
	got := ResolveLinkAddress(netip.MustParseAddr("2001:db8:ffff::1"), addrs("fe80::1"))
	if got != netip.MustParseAddr("2001:db8:ffff::1") {
		t.Fatalf("got %s, want 2001:db8:ffff::1", got)
	}
}

func TestResolveLinkAddressFirstGlobal(t *testing.T) {
	got := ResolveLinkAddress(netip.Addr{}, addrs("2001:db8::5", "2001:db8::9", "fe80::1"))
	if got != netip.MustParseAddr("2001:db8::5") {
		t.Fatalf("got %s, want 2001:db8::5", got)
	}
}

func TestResolveLinkAddressUniqueLocal(t *testing.T) {
	got := ResolveLinkAddress(netip.Addr{}, addrs("fd00::1", "fe80::1"))
	if got != netip.MustParseAddr("fd00::1") {
		t.Fatalf("got %s, want fd00::1", got)
	}
}

func TestResolveLinkAddressUnspecifiedFallback(t *testing.T) {
	got := ResolveLinkAddress(netip.Addr{}, addrs("fe80::1"))
	if !got.IsUnspecified() {
		t.Fatalf("got %s, want ::", got)
	}
}
