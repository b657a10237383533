package handler

import (
	"context"
	"log/slog"
	"strings"

	"github.com/steffann/dhcp6vppd/pkg/config"
	"github.com/steffann/dhcp6vppd/pkg/listener"
	"github.com/steffann/dhcp6vppd/pkg/logger"
)

func init() {
	Register("log", func(cfg *config.Config) (Handler, error) {
		return &logHandler{log: logger.Get(logger.Handler)}, nil
	})
}

// logHandler records every accepted message and never answers. It is the
// default handler, useful for verifying the punt path before a real server
// core is attached.
type logHandler struct {
	log *slog.Logger
}

func (h *logHandler) Name() string { return "log" }

func (h *logHandler) Handle(ctx context.Context, msg *listener.Message) (*listener.Reply, error) {
	opts := msg.RelayOptions()
	relay := make([]string, 0, len(opts))
	for _, opt := range opts {
		relay = append(relay, opt.String())
	}

	h.log.Info("Received DHCPv6 message",
		"id", msg.ID,
		"type", msg.MessageType.String(),
		"interface", msg.Interface.Name,
		"source", msg.Source.String(),
		"link_address", msg.Interface.LinkAddress.String(),
		"relay", strings.Join(relay, "; "),
		"length", len(msg.Payload))
	return nil, nil
}
