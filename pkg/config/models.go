package config

import "net/netip"

type Config struct {
	Logging   Logging    `yaml:"logging"`
	Handler   string     `yaml:"handler,omitempty"`
	Listeners []Listener `yaml:"listeners"`
	Exporter  Exporter   `yaml:"exporter,omitempty"`
}

type Logging struct {
	Format     string            `yaml:"format"`
	Level      string            `yaml:"level"`
	Components map[string]string `yaml:"components,omitempty"`
}

type Exporter struct {
	Enabled       bool   `yaml:"enabled"`
	ListenAddress string `yaml:"listen-address,omitempty"`
}

// Listener is one listen-vpp section. The socket path doubles as the section
// identity: it is the Unix datagram socket this process binds for VPP to punt
// DHCPv6 traffic into.
type Listener struct {
	Socket          string      `yaml:"socket"`
	NamespacePrefix string      `yaml:"namespace-prefix,omitempty"`
	APIDefinitions  string      `yaml:"api-definitions,omitempty"`
	APISocket       string      `yaml:"api-socket,omitempty"`
	Interfaces      []Interface `yaml:"vpp-interfaces"`
}

// Interface is one vpp-interface subsection. The name must match VPP's own
// interface naming (GigabitEthernet0/1/2, tap0, ...).
type Interface struct {
	Name            string `yaml:"name"`
	AcceptMulticast *bool  `yaml:"accept-multicast,omitempty"`
	AcceptUnicast   *bool  `yaml:"accept-unicast,omitempty"`
	ReplyFrom       string `yaml:"reply-from,omitempty"`
	LinkAddress     string `yaml:"link-address,omitempty"`
}

// Multicast reports the accept-multicast flag with its default applied.
func (i *Interface) Multicast() bool {
	return i.AcceptMulticast == nil || *i.AcceptMulticast
}

// Unicast reports the accept-unicast flag with its default applied.
func (i *Interface) Unicast() bool {
	return i.AcceptUnicast == nil || *i.AcceptUnicast
}

// ReplyFromAddr returns the parsed reply-from address. The second return is
// false when the key is absent, leaving resolution to the listener factory.
func (i *Interface) ReplyFromAddr() (netip.Addr, bool, error) {
	return parseOptionalAddr(i.ReplyFrom)
}

// LinkAddressAddr returns the parsed link-address. The second return is false
// when the key is absent.
func (i *Interface) LinkAddressAddr() (netip.Addr, bool, error) {
	return parseOptionalAddr(i.LinkAddress)
}

func parseOptionalAddr(s string) (netip.Addr, bool, error) {
	if s == "" {
		return netip.Addr{}, false, nil
	}
	a, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, false, err
	}
	return a, true, nil
}

func (c *Config) HandlerName() string {
	if c.Handler == "" {
		return "log"
	}
	return c.Handler
}
