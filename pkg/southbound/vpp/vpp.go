package vpp

import (
	"fmt"
	"log/slog"

	"github.com/steffann/dhcp6vppd/pkg/ifmgr"
	"github.com/steffann/dhcp6vppd/pkg/logger"
	"github.com/steffann/dhcp6vppd/pkg/southbound"
	"go.fd.io/govpp"
	"go.fd.io/govpp/core"
)

var _ southbound.Southbound = (*VPP)(nil)

const DefaultAPISocket = "/run/vpp/api.sock"

type Config struct {
	// APISocket is the VPP binary API Unix socket. Empty means the default
	// path, adjusted for NamespacePrefix when one is set.
	APISocket string

	// NamespacePrefix matches the api-segment prefix of the VPP instance to
	// attach to.
	NamespacePrefix string

	// APIDefinitions points at the JSON API definitions of the VPP build.
	// The bindings used here are compiled in; the path is logged so a
	// mismatch against the running VPP is diagnosable.
	APIDefinitions string
}

type VPP struct {
	conn   *core.Connection
	ifMgr  *ifmgr.Manager
	logger *slog.Logger
}

func New(cfg Config) (*VPP, error) {
	socket := cfg.APISocket
	if socket == "" {
		if cfg.NamespacePrefix != "" {
			socket = fmt.Sprintf("/run/vpp/%s/api.sock", cfg.NamespacePrefix)
		} else {
			socket = DefaultAPISocket
		}
	}

	log := logger.Get(logger.Southbound)

	if cfg.NamespacePrefix != "" {
		log.Info("Connecting to VPP", "socket", socket, "namespace", cfg.NamespacePrefix)
	} else {
		log.Info("Connecting to VPP", "socket", socket)
	}

	conn, err := govpp.Connect(socket)
	if err != nil {
		return nil, fmt.Errorf("%w: connect to VPP API at %s: %v", southbound.ErrUnavailable, socket, err)
	}

	v := &VPP{
		conn:   conn,
		ifMgr:  ifmgr.New(),
		logger: log,
	}

	if cfg.APIDefinitions != "" {
		log.Debug("API definitions directory configured, using compiled bindings", "api_definitions", cfg.APIDefinitions)
	}

	if err := v.ReloadInterfaces(); err != nil {
		conn.Disconnect()
		return nil, fmt.Errorf("load interfaces: %w", err)
	}

	v.logger.Debug("Connected to VPP", "interfaces_loaded", len(v.ifMgr.List()))

	return v, nil
}

func (v *VPP) Close() error {
	v.conn.Disconnect()
	return nil
}
