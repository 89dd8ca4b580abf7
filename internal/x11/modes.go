package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"

	"github.com/1broseidon/mediawin/internal/display"
)

// DisplayModes snapshots the mode catalog of one output via XRandR and
// returns it as a display source: index 0 is the windowed placeholder,
// index 1 the output's current mode, and the output's full mode list
// follows. outputName selects a specific output; empty means the primary
// output (falling back to the first connected one).
func (c *Connection) DisplayModes(outputName string) (display.StaticSource, error) {
	conn := c.XUtil.Conn()

	if err := randr.Init(conn); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(conn, c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	modeByID := make(map[randr.Mode]randr.ModeInfo, len(resources.Modes))
	for _, mi := range resources.Modes {
		modeByID[randr.Mode(mi.Id)] = mi
	}

	info, err := c.pickOutput(resources, outputName)
	if err != nil {
		return nil, err
	}

	name := string(info.Name)

	crtc, err := randr.GetCrtcInfo(conn, info.Crtc, resources.ConfigTimestamp).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get crtc info for %s: %w", name, err)
	}

	current, ok := modeByID[crtc.Mode]
	if !ok {
		return nil, fmt.Errorf("output %s has no active mode", name)
	}

	return buildSource(current, name, info.Modes, modeByID), nil
}

// buildSource assembles the catalog snapshot: the windowed placeholder, the
// current mode, then the output's mode list. Each record's Index is its
// position in the snapshot, so a mode id missing from the screen resources
// is skipped without leaving a hole.
func buildSource(current randr.ModeInfo, name string, ids []randr.Mode, modeByID map[randr.Mode]randr.ModeInfo) display.StaticSource {
	src := display.StaticSource{
		display.WindowedMode(0, 0),
		modeRecord(display.ResDesktop, current, name),
	}
	for _, id := range ids {
		mi, ok := modeByID[id]
		if !ok {
			continue
		}
		src = append(src, modeRecord(len(src), mi, name))
	}
	return src
}

// pickOutput returns the requested output, or the primary output, or the
// first connected output with an active CRTC.
func (c *Connection) pickOutput(resources *randr.GetScreenResourcesReply, outputName string) (*randr.GetOutputInfoReply, error) {
	conn := c.XUtil.Conn()

	if outputName == "" {
		if primary, err := randr.GetOutputPrimary(conn, c.Root).Reply(); err == nil && primary.Output != 0 {
			info, err := randr.GetOutputInfo(conn, primary.Output, resources.ConfigTimestamp).Reply()
			if err == nil && info.Crtc != 0 {
				return info, nil
			}
		}
	}

	for _, output := range resources.Outputs {
		info, err := randr.GetOutputInfo(conn, output, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if info.Connection != randr.ConnectionConnected || info.Crtc == 0 {
			continue
		}
		if outputName != "" && string(info.Name) != outputName {
			continue
		}
		return info, nil
	}

	if outputName != "" {
		return nil, fmt.Errorf("output %q not found or not active", outputName)
	}
	return nil, fmt.Errorf("no active output found")
}

// modeRecord converts a RandR mode into a catalog record.
func modeRecord(index int, mi randr.ModeInfo, output string) display.ModeInfo {
	var flags display.ModeFlags
	if mi.ModeFlags&randr.ModeFlagInterlace != 0 {
		flags |= display.FlagInterlaced
	}

	return display.ModeInfo{
		Index:       index,
		Width:       int(mi.Width),
		Height:      int(mi.Height),
		Flags:       flags,
		RefreshRate: refreshRate(mi),
		Output:      output,
	}
}

// refreshRate derives the vertical refresh from the mode's pixel clock and
// totals, with the usual interlace/doublescan adjustments.
func refreshRate(mi randr.ModeInfo) float64 {
	htotal := float64(mi.Htotal)
	vtotal := float64(mi.Vtotal)
	if htotal == 0 || vtotal == 0 {
		return 0
	}

	rate := float64(mi.DotClock) / (htotal * vtotal)
	if mi.ModeFlags&randr.ModeFlagInterlace != 0 {
		rate *= 2
	}
	if mi.ModeFlags&randr.ModeFlagDoubleScan != 0 {
		rate /= 2
	}
	return rate
}
