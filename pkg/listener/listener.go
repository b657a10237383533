package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/insomniacslk/dhcp/dhcpv6"
	"github.com/steffann/dhcp6vppd/pkg/southbound"
)

// readTimeout bounds each blocking read so the receive loop can observe
// context cancellation.
const readTimeout = 100 * time.Millisecond

// Listener owns one punt socket and the interfaces it answers on. Receive and
// Send are safe to call from different goroutines; multiple concurrent
// receivers are not supported.
type Listener struct {
	socketPath string
	conn       *net.UnixConn
	vppAddr    *net.UnixAddr
	sb         southbound.Southbound
	byIndex    map[uint32]*Interface
	interfaces []*Interface
	log        *slog.Logger
	readBuf    []byte
}

// Interfaces returns the interfaces this listener answers on, in config order.
func (l *Listener) Interfaces() []*Interface {
	return l.interfaces
}

func (l *Listener) SocketPath() string {
	return l.socketPath
}

// Receive reads one punted frame and turns it into a Message. It returns
// (nil, nil) when no frame arrived within the poll interval, so callers can
// check their context between reads. Malformed or filtered frames are reported
// through the sentinel errors in this package.
func (l *Listener) Receive(ctx context.Context) (*Message, error) {
	if err := l.conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
		return nil, fmt.Errorf("set read deadline: %w", err)
	}

	n, err := l.conn.Read(l.readBuf)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, nil
		}
		if ctx.Err() != nil {
			return nil, nil
		}
		return nil, fmt.Errorf("read punt socket: %w", err)
	}

	data := make([]byte, n)
	copy(data, l.readBuf[:n])

	frame, err := DecodeFrame(data)
	if err != nil {
		return nil, err
	}

	if frame.DestinationPort != ServerPort {
		return nil, fmt.Errorf("%w: destination port %d", ErrNotDHCPv6, frame.DestinationPort)
	}

	iface, ok := l.byIndex[frame.SwIfIndex]
	if !ok {
		return nil, fmt.Errorf("%w: sw_if_index %d", ErrUnknownInterface, frame.SwIfIndex)
	}

	multicast := frame.Destination.IsMulticast()
	if multicast && !iface.AcceptMulticast {
		return nil, fmt.Errorf("%w: multicast on %s", ErrFiltered, iface.Name)
	}
	if !multicast && !iface.AcceptUnicast {
		return nil, fmt.Errorf("%w: unicast on %s", ErrFiltered, iface.Name)
	}

	msg := &Message{
		ID:          nextMessageID(),
		Interface:   iface,
		SourceMAC:   frame.SourceMAC,
		Source:      frame.Source,
		SourcePort:  frame.SourcePort,
		Multicast:   multicast,
		MessageType: dhcpv6.MessageType(frame.Payload[0]),
		Payload:     frame.Payload,
	}

	l.log.Debug("Received message",
		"id", msg.ID,
		"type", msg.MessageType.String(),
		"interface", iface.Name,
		"source", msg.Source.String(),
		"multicast", multicast)

	return msg, nil
}

// Send encodes a reply frame and writes it to the dataplane-side socket.
func (l *Listener) Send(r *Reply) error {
	data, err := EncodeReplyFrame(r)
	if err != nil {
		return err
	}

	n, err := l.conn.WriteToUnix(data, l.vppAddr)
	if err != nil {
		return fmt.Errorf("write reply to %s: %w", l.vppAddr.Name, err)
	}
	if n != len(data) {
		return fmt.Errorf("short write to %s: %d of %d bytes", l.vppAddr.Name, n, len(data))
	}
	return nil
}

// Close deregisters the punt socket and removes the socket file. Safe to call
// once after the receive loop has stopped.
func (l *Listener) Close() error {
	var errs []error

	if err := l.sb.DeregisterPuntSocket(ServerPort); err != nil {
		errs = append(errs, fmt.Errorf("deregister punt socket: %w", err))
	}
	if err := l.conn.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close punt socket: %w", err))
	}
	if err := os.Remove(l.socketPath); err != nil && !os.IsNotExist(err) {
		errs = append(errs, fmt.Errorf("remove socket file: %w", err))
	}

	return errors.Join(errs...)
}
