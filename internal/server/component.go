// Package server runs one component per configured listener: a receive loop
// that pulls punted messages, hands them to the configured handler and injects
// the replies.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/steffann/dhcp6vppd/pkg/component"
	"github.com/steffann/dhcp6vppd/pkg/handler"
	"github.com/steffann/dhcp6vppd/pkg/listener"
	"github.com/steffann/dhcp6vppd/pkg/logger"
	"github.com/steffann/dhcp6vppd/pkg/metrics"
	"github.com/steffann/dhcp6vppd/pkg/southbound"
)

type Component struct {
	*component.Base
	logger   *slog.Logger
	listener *listener.Listener
	handler  handler.Handler
	sb       southbound.Southbound
}

func New(name string, l *listener.Listener, h handler.Handler, sb southbound.Southbound) *Component {
	return &Component{
		Base:     component.NewBase(name),
		logger:   logger.Get(logger.Listener),
		listener: l,
		handler:  h,
		sb:       sb,
	}
}

func (c *Component) Start(ctx context.Context) error {
	c.StartContext(ctx)
	c.logger.Info("Starting listener",
		"socket", c.listener.SocketPath(),
		"handler", c.handler.Name())

	c.Go(func() {
		c.receiveLoop()
	})

	return nil
}

func (c *Component) Stop(ctx context.Context) error {
	c.logger.Info("Stopping listener", "socket", c.listener.SocketPath())
	c.StopContext()

	var errs []error
	if err := c.listener.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := c.sb.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close southbound: %w", err))
	}
	return errors.Join(errs...)
}

func (c *Component) receiveLoop() {
	socket := c.listener.SocketPath()

	for {
		select {
		case <-c.Ctx.Done():
			return
		default:
		}

		msg, err := c.listener.Receive(c.Ctx)
		if err != nil {
			countDrop(socket, err)
			c.logger.Debug("Dropped punted message", "socket", socket, "error", err)
			continue
		}
		if msg == nil {
			continue
		}

		metrics.MessagesReceived.WithLabelValues(socket).Inc()
		metrics.MessagesAccepted.WithLabelValues(socket, msg.Interface.Name).Inc()

		c.dispatch(msg)
	}
}

func (c *Component) dispatch(msg *listener.Message) {
	socket := c.listener.SocketPath()

	reply, err := c.handler.Handle(c.Ctx, msg)
	if err != nil {
		metrics.HandlerErrors.WithLabelValues(socket, msg.Interface.Name).Inc()
		c.logger.Error("Handler failed",
			"id", msg.ID,
			"interface", msg.Interface.Name,
			"error", err)
		return
	}
	if reply == nil {
		return
	}

	if err := c.listener.Send(reply); err != nil {
		metrics.ReplyErrors.WithLabelValues(socket, reply.Interface.Name).Inc()
		c.logger.Error("Failed to send reply",
			"id", msg.ID,
			"interface", reply.Interface.Name,
			"error", err)
		return
	}

	metrics.RepliesSent.WithLabelValues(socket, reply.Interface.Name).Inc()
	c.logger.Debug("Sent reply",
		"id", msg.ID,
		"interface", reply.Interface.Name,
		"destination", reply.Destination.String())
}

const reasonReadError = "read_error"

// countDrop accounts for a failed receive. The received counter only covers
// datagrams actually read from the socket, so read failures count as a drop
// but not as a received datagram.
func countDrop(socket string, err error) {
	reason := dropReason(err)
	if reason != reasonReadError {
		metrics.MessagesReceived.WithLabelValues(socket).Inc()
	}
	metrics.MessagesDropped.WithLabelValues(socket, reason).Inc()
}

// dropReason maps a receive error to a bounded metric label.
func dropReason(err error) string {
	switch {
	case errors.Is(err, listener.ErrTruncated):
		return "truncated"
	case errors.Is(err, listener.ErrUnknownAction):
		return "unknown_action"
	case errors.Is(err, listener.ErrNotDHCPv6):
		return "not_dhcpv6"
	case errors.Is(err, listener.ErrUnknownInterface):
		return "unknown_interface"
	case errors.Is(err, listener.ErrFiltered):
		return "filtered"
	default:
		return reasonReadError
	}
}
