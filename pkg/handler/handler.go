package handler

import (
	"context"

	"github.com/steffann/dhcp6vppd/pkg/config"
	"github.com/steffann/dhcp6vppd/pkg/listener"
)

// Handler is the pluggable server core behind the listener plane. Handle
// returns the reply to inject, or nil when the message should be dropped
// without an answer.
type Handler interface {
	Name() string
	Handle(ctx context.Context, msg *listener.Message) (*listener.Reply, error)
}

type Factory func(cfg *config.Config) (Handler, error)

var factories = make(map[string]Factory)

func Register(name string, factory Factory) {
	factories[name] = factory
}

func Get(name string) (Factory, bool) {
	factory, exists := factories[name]
	return factory, exists
}

func List() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	return names
}
