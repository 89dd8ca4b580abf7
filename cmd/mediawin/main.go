package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/1broseidon/mediawin/internal/config"
	"github.com/1broseidon/mediawin/internal/display"
	"github.com/1broseidon/mediawin/internal/hdr"
	"github.com/1broseidon/mediawin/internal/ipc"
	"github.com/1broseidon/mediawin/internal/tui"
	"github.com/1broseidon/mediawin/internal/x11"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		if len(os.Args) > 2 && (os.Args[2] == "help" || os.Args[2] == "-h" || os.Args[2] == "--help") {
			fmt.Fprintln(os.Stdout, "Usage: mediawin daemon")
			os.Exit(0)
		}
		if len(os.Args) > 2 {
			fmt.Fprintln(os.Stderr, "daemon takes no arguments")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Usage: mediawin daemon")
			os.Exit(2)
		}
		runDaemon()
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "modes":
		os.Exit(runModes(os.Args[2:]))
	case "rates":
		os.Exit(runRates(os.Args[2:]))
	case "hdr":
		os.Exit(runHDR(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mediawin <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the mediawin render-loop daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  modes               List unique display resolutions")
	fmt.Fprintln(w, "  rates W H           List refresh rates for an exact resolution")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  hdr status          Show display HDR capability and state")
	fmt.Fprintln(w, "  hdr toggle          Toggle display HDR off/on when capable")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print effective configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tui                 Open the interactive mode picker")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'mediawin <command> --help' for command-specific options.")
}

// loadConfig loads the config from path, or the standard location when path
// is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromPath(path)
}

// setupLogging installs a default slog handler at the configured level.
func setupLogging(cfg *config.Config) {
	var level slog.Level
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// openModeSource connects to the display server and snapshots the mode
// catalog of the configured output.
func openModeSource(cfg *config.Config, output string) (display.StaticSource, func(), error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to display: %w", err)
	}

	if output == "" {
		output = cfg.Output
	}

	src, err := conn.DisplayModes(output)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}

	return src, conn.Close, nil
}

func runModes(args []string) int {
	fs := flag.NewFlagSet("modes", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "Config file path (default: ~/.config/mediawin/config.yaml)")
	output := fs.String("output", "", "Display output name (default: primary output)")

	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stderr, "Usage: mediawin modes [--output NAME] [--config PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Lists the unique resolutions of an output, deduplicated and ordered,")
		fmt.Fprintln(os.Stderr, "with the default refresh rate selected for each.")
		return 0
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	src, closeConn, err := openModeSource(cfg, *output)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closeConn()

	desktop := src.Mode(display.ResDesktop)
	fmt.Printf("Desktop: %s\n\n", desktop.Describe())

	modes := display.ScreenResolutions(src, cfg.PreferredRefreshRate)
	for _, m := range modes {
		rates := display.RefreshRates(src, m.Width, m.Height, m.Flags)
		best, err := display.DefaultRefreshRate(rates, desktop.RefreshRate)
		if err != nil {
			continue
		}

		label := fmt.Sprintf("%dx%d", m.Width, m.Height)
		if m.Flags&display.FlagInterlaced != 0 {
			label += "i"
		}
		fmt.Printf("  %-12s default %.2fHz  (%d rate", label, best.Rate, len(rates))
		if len(rates) != 1 {
			fmt.Print("s")
		}
		fmt.Println(")")
	}

	return 0
}

func runRates(args []string) int {
	fs := flag.NewFlagSet("rates", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "Config file path (default: ~/.config/mediawin/config.yaml)")
	output := fs.String("output", "", "Display output name (default: primary output)")
	interlaced := fs.Bool("interlaced", false, "Match interlaced modes")

	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stderr, "Usage: mediawin rates [options] WIDTH HEIGHT")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Lists the distinct refresh rates available for an exact resolution and")
		fmt.Fprintln(os.Stderr, "marks the default (closest to the desktop refresh rate).")
		return 0
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "rates requires WIDTH and HEIGHT arguments")
		return 2
	}

	width, err := strconv.Atoi(fs.Arg(0))
	if err != nil || width <= 0 {
		fmt.Fprintf(os.Stderr, "invalid width %q\n", fs.Arg(0))
		return 2
	}
	height, err := strconv.Atoi(fs.Arg(1))
	if err != nil || height <= 0 {
		fmt.Fprintf(os.Stderr, "invalid height %q\n", fs.Arg(1))
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	src, closeConn, err := openModeSource(cfg, *output)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closeConn()

	var flags display.ModeFlags
	if *interlaced {
		flags |= display.FlagInterlaced
	}

	rates := display.RefreshRates(src, width, height, flags)
	if len(rates) == 0 {
		fmt.Fprintf(os.Stderr, "no modes match %dx%d\n", width, height)
		return 1
	}

	best, err := display.DefaultRefreshRate(rates, src.Mode(display.ResDesktop).RefreshRate)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	for _, r := range rates {
		marker := " "
		if r == best {
			marker = "*"
		}
		fmt.Printf("%s %.2fHz\n", marker, r.Rate)
	}

	return 0
}

func runHDR(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage: mediawin hdr <status|toggle>")
		if len(args) == 0 {
			return 2
		}
		return 0
	}

	capability := hdr.NewPlatformCapability()

	switch args[0] {
	case "status":
		status := hdr.DisplayStatus(capability)
		fmt.Println(status)
		return 0
	case "toggle":
		before := hdr.DisplayStatus(capability)
		if before != hdr.CapableOff && before != hdr.CapableOn {
			fmt.Fprintf(os.Stderr, "cannot toggle: %s\n", before)
			return 1
		}
		if err := hdr.Toggle(capability); err != nil {
			fmt.Fprintf(os.Stderr, "toggle failed: %v\n", err)
			return 1
		}
		fmt.Println(hdr.DisplayStatus(capability))
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown hdr command: %s\n", args[0])
		return 2
	}
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stderr, "Usage: mediawin status")
		return 0
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	status, err := ipc.NewClient().GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Printf("Daemon:        running (up %ds)\n", status.UptimeSeconds)
	fmt.Printf("Desktop mode:  %s\n", status.DesktopMode)
	fmt.Printf("Frames:        %d\n", status.Frames)
	fmt.Printf("Participants:  %d\n", status.Participants)
	fmt.Printf("HDR:           %s\n", status.HDRStatus)

	return 0
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage: mediawin config <validate|print> [--path PATH]")
		if len(args) == 0 {
			return 2
		}
		return 0
	}

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/mediawin/config.yaml)")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}

	cfg, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		return 1
	}

	switch args[0] {
	case "validate":
		fmt.Println("Configuration is valid")
		return 0
	case "print":
		out, err := cfg.Print()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(out)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", args[0])
		return 2
	}
}

func runTUI(args []string) int {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "Config file path (default: ~/.config/mediawin/config.yaml)")
	output := fs.String("output", "", "Display output name (default: primary output)")

	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stderr, "Usage: mediawin tui [--output NAME] [--config PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Interactive picker over the resolution catalog.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  j/k, ↑/↓  Navigate resolutions")
		fmt.Fprintln(os.Stderr, "  h/l, ←/→  Cycle refresh rates")
		fmt.Fprintln(os.Stderr, "  Enter     Select mode")
		fmt.Fprintln(os.Stderr, "  q, Esc    Quit")
		return 0
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	src, closeConn, err := openModeSource(cfg, *output)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closeConn()

	selection, err := tui.Run(src, cfg.PreferredRefreshRate)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if selection != nil {
		fmt.Printf("%dx%d @ %.2fHz\n", selection.Mode.Width, selection.Mode.Height, selection.Rate.Rate)
	}

	return 0
}
