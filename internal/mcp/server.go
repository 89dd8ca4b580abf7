package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/mediawin/internal/config"
	"github.com/1broseidon/mediawin/internal/display"
	"github.com/1broseidon/mediawin/internal/hdr"
)

const (
	ServerName    = "mediawin"
	ServerVersion = "0.1.0"
)

// SourceFunc snapshots the mode catalog for an output. Empty output selects
// the primary output.
type SourceFunc func(output string) (display.Source, error)

// Server is the MCP server exposing display-mode and HDR queries.
type Server struct {
	mcpServer  *mcpsdk.Server
	cfg        *config.Config
	source     SourceFunc
	capability hdr.Capability
}

// NewServer creates a new MCP server backed by the given mode source and
// HDR capability.
func NewServer(cfg *config.Config, source SourceFunc, capability hdr.Capability) *Server {
	s := &Server{
		cfg:        cfg,
		source:     source,
		capability: capability,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_modes",
		Description: "List the unique display resolutions available on an output, deduplicated and deterministically ordered, with the current desktop mode.",
	}, s.handleListModes)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_refresh_rates",
		Description: "List the distinct refresh rates available for an exact resolution, plus the default rate closest to the desktop's refresh rate.",
	}, s.handleListRefreshRates)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_hdr_status",
		Description: "Query the HDR capability and state of the active display. A failed platform query reports status 'unknown'.",
	}, s.handleHDRStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toggle_hdr",
		Description: "Toggle display HDR off/on when the display is capable; no-op otherwise. Returns the status after the toggle.",
	}, s.handleToggleHDR)
}

func (s *Server) snapshot(output string) (display.Source, error) {
	if output == "" {
		output = s.cfg.Output
	}
	return s.source(output)
}

func (s *Server) handleListModes(_ context.Context, _ *mcpsdk.CallToolRequest, args ListModesInput) (*mcpsdk.CallToolResult, ListModesOutput, error) {
	src, err := s.snapshot(args.Output)
	if err != nil {
		return nil, ListModesOutput{}, fmt.Errorf("failed to enumerate display modes: %w", err)
	}

	desktop := src.Mode(display.ResDesktop)
	modes := display.ScreenResolutions(src, s.cfg.PreferredRefreshRate)

	out := ListModesOutput{DesktopMode: desktop.Describe()}
	for _, m := range modes {
		rec := src.Mode(m.Index)
		out.Modes = append(out.Modes, ModeSummary{
			Width:       m.Width,
			Height:      m.Height,
			Interlaced:  m.Flags&display.FlagInterlaced != 0,
			Stereo3D:    m.Flags&(display.FlagStereoSBS|display.FlagStereoTB) != 0,
			RefreshRate: rec.RefreshRate,
			Description: rec.Describe(),
		})
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: fmt.Sprintf("%d unique modes, desktop %s", len(out.Modes), out.DesktopMode)},
		},
	}, out, nil
}

func (s *Server) handleListRefreshRates(_ context.Context, _ *mcpsdk.CallToolRequest, args ListRefreshRatesInput) (*mcpsdk.CallToolResult, ListRefreshRatesOutput, error) {
	if args.Width <= 0 || args.Height <= 0 {
		return nil, ListRefreshRatesOutput{}, fmt.Errorf("width and height must be positive, got %dx%d", args.Width, args.Height)
	}

	src, err := s.snapshot(args.Output)
	if err != nil {
		return nil, ListRefreshRatesOutput{}, fmt.Errorf("failed to enumerate display modes: %w", err)
	}

	var flags display.ModeFlags
	if args.Interlaced {
		flags |= display.FlagInterlaced
	}

	rates := display.RefreshRates(src, args.Width, args.Height, flags)
	if len(rates) == 0 {
		return nil, ListRefreshRatesOutput{}, fmt.Errorf("no modes match %dx%d", args.Width, args.Height)
	}

	target := src.Mode(display.ResDesktop).RefreshRate
	best, err := display.DefaultRefreshRate(rates, target)
	if err != nil {
		return nil, ListRefreshRatesOutput{}, err
	}

	out := ListRefreshRatesOutput{DefaultRate: best.Rate}
	for _, r := range rates {
		out.Rates = append(out.Rates, r.Rate)
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: fmt.Sprintf("%d rates for %dx%d, default %.2fHz", len(out.Rates), args.Width, args.Height, out.DefaultRate)},
		},
	}, out, nil
}

func (s *Server) handleHDRStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ HDRStatusInput) (*mcpsdk.CallToolResult, HDRStatusOutput, error) {
	status := hdr.DisplayStatus(s.capability)

	out := HDRStatusOutput{
		Status:  status.String(),
		Enabled: status == hdr.CapableOn,
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: out.Status},
		},
	}, out, nil
}

func (s *Server) handleToggleHDR(_ context.Context, _ *mcpsdk.CallToolRequest, _ ToggleHDRInput) (*mcpsdk.CallToolResult, ToggleHDROutput, error) {
	if err := hdr.Toggle(s.capability); err != nil {
		return nil, ToggleHDROutput{}, fmt.Errorf("failed to toggle HDR: %w", err)
	}

	out := ToggleHDROutput{Status: hdr.DisplayStatus(s.capability).String()}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: out.Status},
		},
	}, out, nil
}
