package display

import "fmt"

// ModeFlags encodes the presentation attributes of a display mode.
type ModeFlags uint32

const (
	FlagInterlaced ModeFlags = 1 << iota
	FlagWidescreen
	FlagProgressive
	FlagStereoSBS // stereoscopic 3D, side-by-side
	FlagStereoTB  // stereoscopic 3D, top-bottom
)

// ModeMask selects the flag bits that distinguish one display mode from
// another. Bits outside the mask are presentation hints and never
// participate in mode matching.
const ModeMask = FlagInterlaced | FlagStereoSBS | FlagStereoTB

// Catalog index conventions. Index 0 is the windowed placeholder and is
// skipped by every fullscreen scan; index 1 is the current desktop mode;
// detected modes follow from index 2.
const (
	ResWindow  = 0
	ResDesktop = 1
	ResCustom  = 2
)

// ModeInfo is a snapshot of a single display mode as reported by the
// mode source at enumeration time.
type ModeInfo struct {
	Index       int
	Width       int
	Height      int
	Flags       ModeFlags
	RefreshRate float64
	Output      string
}

// Describe returns a human-readable mode label such as
// "HDMI-1: 1920x1080 @ 60.00Hz".
func (m ModeInfo) Describe() string {
	s := fmt.Sprintf("%dx%d", m.Width, m.Height)
	if m.Output != "" {
		s = m.Output + ": " + s
	}
	if m.RefreshRate > 1 {
		s += fmt.Sprintf(" @ %.2fHz", m.RefreshRate)
	}
	if m.Flags&FlagInterlaced != 0 {
		s += "i"
	}
	if m.Flags&FlagStereoTB != 0 {
		s += "tab"
	}
	if m.Flags&FlagStereoSBS != 0 {
		s += "sbs"
	}
	return s
}

// Source supplies mode records by catalog index. Implementations are
// typically snapshots taken from the display server; the catalog functions
// in this package never retain a Source between calls.
type Source interface {
	ModeCount() int
	Mode(i int) ModeInfo
}

// StaticSource is an in-memory Source holding mode records in catalog order.
type StaticSource []ModeInfo

func (s StaticSource) ModeCount() int      { return len(s) }
func (s StaticSource) Mode(i int) ModeInfo { return s[i] }

// WindowedMode returns the placeholder record used at index 0 of a catalog
// snapshot. Width and height default to 720x480 when unknown.
func WindowedMode(width, height int) ModeInfo {
	if width == 0 {
		width = 720
	}
	if height == 0 {
		height = 480
	}
	return ModeInfo{Index: ResWindow, Width: width, Height: height, Output: "Windowed"}
}
