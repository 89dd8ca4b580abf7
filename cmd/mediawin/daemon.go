package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/1broseidon/mediawin/internal/config"
	"github.com/1broseidon/mediawin/internal/display"
	"github.com/1broseidon/mediawin/internal/hdr"
	"github.com/1broseidon/mediawin/internal/ipc"
	"github.com/1broseidon/mediawin/internal/renderloop"
	"github.com/1broseidon/mediawin/internal/x11"
)

// daemonState bridges the running daemon to the IPC status surface.
type daemonState struct {
	conn       *x11.Connection
	cfg        *config.Config
	runner     *renderloop.Runner
	registry   *renderloop.Registry
	capability hdr.Capability
}

func (d *daemonState) Frames() uint64 {
	return d.runner.Frames()
}

func (d *daemonState) Participants() int {
	return d.registry.Len()
}

func (d *daemonState) DesktopMode() string {
	src, err := d.conn.DisplayModes(d.cfg.Output)
	if err != nil {
		return "unknown"
	}
	return src.Mode(display.ResDesktop).Describe()
}

func (d *daemonState) HDRStatus() string {
	return hdr.DisplayStatus(d.capability).String()
}

func (d *daemonState) Modes() ([]ipc.ModeEntry, error) {
	src, err := d.conn.DisplayModes(d.cfg.Output)
	if err != nil {
		return nil, err
	}

	modes := display.ScreenResolutions(src, d.cfg.PreferredRefreshRate)
	entries := make([]ipc.ModeEntry, 0, len(modes))
	for _, m := range modes {
		rec := src.Mode(m.Index)
		entries = append(entries, ipc.ModeEntry{
			Width:       m.Width,
			Height:      m.Height,
			Interlaced:  m.Flags&display.FlagInterlaced != 0,
			RefreshRate: rec.RefreshRate,
			Description: rec.Describe(),
		})
	}
	return entries, nil
}

func runDaemon() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	setupLogging(cfg)

	conn, err := x11.NewConnection()
	if err != nil {
		log.Fatalf("Failed to connect to display: %v", err)
	}
	defer conn.Close()

	registry := renderloop.NewRegistry(conn.PumpEvents)
	runner := renderloop.NewRunner(renderloop.RunnerConfig{
		Interval: time.Duration(cfg.FrameIntervalMS) * time.Millisecond,
		Logger:   slog.Default(),
	}, registry)

	state := &daemonState{
		conn:       conn,
		cfg:        cfg,
		runner:     runner,
		registry:   registry,
		capability: hdr.NewPlatformCapability(),
	}

	server, err := ipc.NewServer(state, slog.Default())
	if err != nil {
		log.Fatalf("Failed to create IPC server: %v", err)
	}
	if err := server.Start(); err != nil {
		log.Fatalf("Failed to start IPC server: %v", err)
	}
	defer server.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if cfg.HDR.ToggleOnPlayback {
		restore, err := hdr.EnableForSession(state.capability)
		if err != nil {
			slog.Warn("failed to enable HDR for session", "error", err)
		}
		defer func() {
			if err := restore(); err != nil {
				slog.Warn("failed to restore HDR state", "error", err)
			}
		}()
	}

	slog.Info("mediawin daemon started",
		"desktop", state.DesktopMode(),
		"hdr", state.HDRStatus())

	runner.Run(ctx)
}
