// Package exporter serves the Prometheus metrics endpoint.
package exporter

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/steffann/dhcp6vppd/pkg/component"
	"github.com/steffann/dhcp6vppd/pkg/logger"
)

type Component struct {
	*component.Base
	logger *slog.Logger
	addr   string
	server *http.Server
}

func New(addr string) *Component {
	if addr == "" {
		addr = ":9090"
	}
	return &Component{
		Base:   component.NewBase("exporter"),
		logger: logger.Get(logger.Exporter),
		addr:   addr,
	}
}

func (c *Component) Addr() string {
	return c.addr
}

func (c *Component) Start(ctx context.Context) error {
	c.StartContext(ctx)
	c.logger.Info("Starting Prometheus exporter", "addr", c.addr)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	c.server = &http.Server{Addr: c.addr, Handler: mux}

	c.Go(func() {
		if err := c.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			c.logger.Error("Exporter server failed", "error", err)
		}
	})

	return nil
}

func (c *Component) Stop(ctx context.Context) error {
	c.logger.Info("Stopping Prometheus exporter")

	if c.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.server.Shutdown(shutdownCtx)
	}

	c.StopContext()
	return nil
}
