package southbound

import "github.com/steffann/dhcp6vppd/pkg/ifmgr"

type Interfaces interface {
	// ReloadInterfaces refreshes the interface table from the dataplane.
	ReloadInterfaces() error

	// GetInterface resolves a configured interface name to the discovered
	// interface record.
	GetInterface(name string) (*ifmgr.Interface, error)
}
