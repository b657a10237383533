package listener

import (
	"fmt"
	"log/slog"
	"net"
	"os"

	"github.com/steffann/dhcp6vppd/pkg/config"
	"github.com/steffann/dhcp6vppd/pkg/logger"
	"github.com/steffann/dhcp6vppd/pkg/southbound"
)

// Factory turns one listener config section into a running Listener: it
// discovers the configured interfaces, resolves their address policy, binds
// the punt socket and registers it with the dataplane.
type Factory struct {
	cfg config.Listener
	sb  southbound.Southbound
	log *slog.Logger
}

func NewFactory(cfg config.Listener, sb southbound.Southbound) *Factory {
	return &Factory{
		cfg: cfg,
		sb:  sb,
		log: logger.Get(logger.Listener),
	}
}

func (f *Factory) discoverInterfaces() ([]*Interface, error) {
	ifaces := make([]*Interface, 0, len(f.cfg.Interfaces))

	for _, ic := range f.cfg.Interfaces {
		vppIf, err := f.sb.GetInterface(ic.Name)
		if err != nil {
			return nil, err
		}

		addrs, err := f.sb.DumpIPv6Addresses(vppIf.SwIfIndex)
		if err != nil {
			return nil, fmt.Errorf("dump addresses of %s: %w", ic.Name, err)
		}

		configuredReplyFrom, _, err := ic.ReplyFromAddr()
		if err != nil {
			return nil, fmt.Errorf("interface %s: %w", ic.Name, err)
		}
		replyFrom, err := ResolveReplyFrom(configuredReplyFrom, ic.Name, addrs)
		if err != nil {
			return nil, err
		}

		configuredLinkAddr, _, err := ic.LinkAddressAddr()
		if err != nil {
			return nil, fmt.Errorf("interface %s: %w", ic.Name, err)
		}
		linkAddress := ResolveLinkAddress(configuredLinkAddr, addrs)

		iface := &Interface{
			Name:            ic.Name,
			SwIfIndex:       vppIf.SwIfIndex,
			MAC:             vppIf.MAC,
			AcceptUnicast:   ic.Unicast(),
			AcceptMulticast: ic.Multicast(),
			ReplyFrom:       replyFrom,
			LinkAddress:     linkAddress,
		}
		f.log.Debug("Discovered listener interface",
			"interface", iface.Name,
			"sw_if_index", iface.SwIfIndex,
			"mac", iface.MAC.String(),
			"reply_from", iface.ReplyFrom.String(),
			"link_address", iface.LinkAddress.String())

		ifaces = append(ifaces, iface)
	}

	return ifaces, nil
}

// Create builds the listener. On any error the socket is cleaned up again so a
// retry starts from a clean slate.
func (f *Factory) Create() (*Listener, error) {
	ifaces, err := f.discoverInterfaces()
	if err != nil {
		return nil, err
	}

	if fi, err := os.Stat(f.cfg.Socket); err == nil {
		if fi.Mode()&os.ModeSocket == 0 {
			return nil, fmt.Errorf("socket path %s exists and is not a socket", f.cfg.Socket)
		}
		// Stale socket from a previous run.
		if err := os.Remove(f.cfg.Socket); err != nil {
			return nil, fmt.Errorf("remove stale socket %s: %w", f.cfg.Socket, err)
		}
	}

	conn, err := net.ListenUnixgram("unixgram", &net.UnixAddr{Name: f.cfg.Socket, Net: "unixgram"})
	if err != nil {
		return nil, fmt.Errorf("bind punt socket %s: %w", f.cfg.Socket, err)
	}
	if err := conn.SetReadBuffer(65536); err != nil {
		f.log.Warn("Failed to grow punt socket read buffer", "error", err)
	}

	cleanup := func() {
		conn.Close()
		os.Remove(f.cfg.Socket)
	}

	byIndex := make(map[uint32]*Interface, len(ifaces))
	multicast := false
	for _, iface := range ifaces {
		if err := iface.Activate(f.sb); err != nil {
			cleanup()
			return nil, err
		}
		byIndex[iface.SwIfIndex] = iface
		if iface.AcceptMulticast {
			multicast = true
		}
	}

	if multicast {
		if err := f.sb.EnableLocalMulticastReceive(AllServersGroup); err != nil {
			cleanup()
			return nil, fmt.Errorf("enable local multicast receive: %w", err)
		}
	}

	vppPath, err := f.sb.RegisterPuntSocket(f.cfg.Socket, ServerPort)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("register punt socket: %w", err)
	}

	f.log.Info("Listener ready",
		"socket", f.cfg.Socket,
		"vpp_socket", vppPath,
		"interfaces", len(ifaces))

	return &Listener{
		socketPath: f.cfg.Socket,
		conn:       conn,
		vppAddr:    &net.UnixAddr{Name: vppPath, Net: "unixgram"},
		sb:         f.sb,
		byIndex:    byIndex,
		interfaces: ifaces,
		log:        f.log,
		readBuf:    make([]byte, 65536),
	}, nil
}
