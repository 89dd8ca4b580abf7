package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/1broseidon/mediawin/internal/display"
	"github.com/1broseidon/mediawin/internal/hdr"
	"github.com/1broseidon/mediawin/internal/mcp"
	"github.com/1broseidon/mediawin/internal/x11"
)

func runMCP(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage: mediawin mcp serve [--config PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Starts an MCP server on stdio exposing display-mode and HDR tools.")
		if len(args) == 0 {
			return 2
		}
		return 0
	}

	if args[0] != "serve" {
		fmt.Fprintf(os.Stderr, "Unknown mcp command: %s\n", args[0])
		return 2
	}

	fs := flag.NewFlagSet("mcp serve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "Config file path (default: ~/.config/mediawin/config.yaml)")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	setupLogging(cfg)

	// Each tool call snapshots the catalog over a fresh connection so a
	// long-lived MCP session never holds the display server open.
	source := func(output string) (display.Source, error) {
		conn, err := x11.NewConnection()
		if err != nil {
			return nil, fmt.Errorf("failed to connect to display: %w", err)
		}
		defer conn.Close()
		return conn.DisplayModes(output)
	}

	server := mcp.NewServer(cfg, source, hdr.NewPlatformCapability())
	if err := server.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
		return 1
	}
	return 0
}
