package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/steffann/dhcp6vppd/internal/exporter"
	"github.com/steffann/dhcp6vppd/internal/server"
	"github.com/steffann/dhcp6vppd/pkg/component"
	"github.com/steffann/dhcp6vppd/pkg/config"
	"github.com/steffann/dhcp6vppd/pkg/handler"
	"github.com/steffann/dhcp6vppd/pkg/listener"
	"github.com/steffann/dhcp6vppd/pkg/logger"
	"github.com/steffann/dhcp6vppd/pkg/southbound/vpp"
	"github.com/steffann/dhcp6vppd/pkg/version"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Full())
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	components := make(map[string]logger.LogLevel, len(cfg.Logging.Components))
	for name, lvl := range cfg.Logging.Components {
		components[name] = logger.LogLevel(lvl)
	}
	logger.Configure(cfg.Logging.Format, logger.LogLevel(cfg.Logging.Level), components)

	mainLog := logger.Get(logger.Main)
	mainLog.Info("Starting dhcp6vppd", "version", version.Full())

	handlerName := cfg.HandlerName()
	handlerFactory, ok := handler.Get(handlerName)
	if !ok {
		log.Fatalf("Handler '%s' not found. Available handlers: %v", handlerName, handler.List())
	}

	h, err := handlerFactory(cfg)
	if err != nil {
		log.Fatalf("Failed to create handler '%s': %v", handlerName, err)
	}

	if len(cfg.Listeners) == 0 {
		mainLog.Warn("No listeners configured, nothing to do")
	}

	orch := component.NewOrchestrator()

	for i, lc := range cfg.Listeners {
		sb, err := vpp.New(vpp.Config{
			APISocket:       lc.APISocket,
			NamespacePrefix: lc.NamespacePrefix,
			APIDefinitions:  lc.APIDefinitions,
		})
		if err != nil {
			log.Fatalf("Failed to connect listener %d to VPP: %v", i, err)
		}

		l, err := listener.NewFactory(lc, sb).Create()
		if err != nil {
			sb.Close()
			log.Fatalf("Failed to create listener on %s: %v", lc.Socket, err)
		}

		orch.Register(server.New(fmt.Sprintf("listener[%d]", i), l, h, sb))
	}

	if cfg.Exporter.Enabled {
		orch.Register(exporter.New(cfg.Exporter.ListenAddress))
	}

	ctx := context.Background()
	if err := orch.Start(ctx); err != nil {
		log.Fatalf("Failed to start components: %v", err)
	}

	mainLog.Info("dhcp6vppd started successfully", "listeners", len(cfg.Listeners), "handler", handlerName)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	mainLog.Info("Shutting down dhcp6vppd...")

	if err := orch.Stop(ctx); err != nil {
		mainLog.Error("Error stopping components", "error", err)
	}

	mainLog.Info("dhcp6vppd stopped")
}
