package southbound

type Punt interface {
	// RegisterPuntSocket asks the dataplane to punt IPv6 UDP traffic for the
	// given destination port to the Unix datagram socket at path. It returns
	// the dataplane-side socket path that replies must be sent to; that path
	// is learned here, never configured locally.
	RegisterPuntSocket(path string, port uint16) (string, error)

	// DeregisterPuntSocket removes the punt registration for the given port.
	DeregisterPuntSocket(port uint16) error
}
