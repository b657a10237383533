package southbound

import "fmt"

var ErrUnavailable = fmt.Errorf("southbound dataplane unavailable")

// Southbound is everything the listener plane needs from the dataplane:
// interface discovery, IPv6 addressing, punt socket registration and
// multicast group reception.
type Southbound interface {
	Interfaces
	Addressing
	Punt
	Multicast

	Close() error
}
