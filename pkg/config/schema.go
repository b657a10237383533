package config

// The schema tables below are the declarative source of truth for the
// configuration surface: section types, keys, value types, defaults and their
// reference documentation. Validate() enforces them and tools/docgen renders
// them into docs/config.

type KeySchema struct {
	Name     string
	Type     string
	Default  string
	Required bool
	Doc      string
}

type SubsectionSchema struct {
	Type     string
	Required bool
	Multiple bool
}

type SectionSchema struct {
	Type        string
	NameDoc     string
	Doc         string
	Keys        []KeySchema
	Subsections []SubsectionSchema
}

func Sections() []SectionSchema {
	return []SectionSchema{
		{
			Type:    "listen-vpp",
			NameDoc: "The path of the Unix domain socket that this listener creates for itself. VPP delivers punted DHCPv6 packets to this socket.",
			Doc: "A listener that attaches to a VPP instance over its binary API and " +
				"receives DHCPv6 traffic punted over a Unix domain socket. Every interface " +
				"the listener must answer on is declared as a vpp-interface subsection.",
			Keys: []KeySchema{
				{
					Name: "namespace-prefix",
					Type: "string",
					Doc: "The API namespace prefix of the VPP instance, matching the " +
						"api-segment prefix setting in the VPP configuration. When absent the " +
						"default namespace is used.",
				},
				{
					Name: "api-definitions",
					Type: "existing directory path",
					Doc: "The directory containing the JSON API definition files of the VPP " +
						"build. The daemon ships compiled bindings; this key exists so operators " +
						"can point at the definitions matching their VPP build and is verified " +
						"to be an existing directory.",
				},
				{
					Name:    "api-socket",
					Type:    "socket path",
					Default: "/run/vpp/api.sock",
					Doc:     "The Unix socket of the VPP binary API.",
				},
			},
			Subsections: []SubsectionSchema{
				{Type: "vpp-interface", Required: true, Multiple: true},
			},
		},
		{
			Type:    "vpp-interface",
			NameDoc: "The name of the interface as known to VPP, for example GigabitEthernet0/1/2 or tap0.",
			Doc:     "A VPP interface that the enclosing listener answers DHCPv6 requests on.",
			Keys: []KeySchema{
				{
					Name:    "accept-multicast",
					Type:    "boolean",
					Default: "true",
					Doc:     "Whether to process messages received over multicast on this interface.",
				},
				{
					Name:    "accept-unicast",
					Type:    "boolean",
					Default: "true",
					Doc:     "Whether to process messages received over unicast on this interface.",
				},
				{
					Name: "reply-from",
					Type: "IPv6 link-local address",
					Doc: "The link-local source address for replies sent on this interface. " +
						"When absent the first link-local address found on the interface is used.",
				},
				{
					Name: "link-address",
					Type: "IPv6 global unicast address",
					Doc: "The address that identifies this link to filters and handlers " +
						"downstream. It does not have to be an address that exists on the " +
						"interface. When absent the first global unicast address on the " +
						"interface is used, or :: if the interface has none.",
				},
			},
		},
	}
}
