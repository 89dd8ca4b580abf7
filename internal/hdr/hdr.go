// Package hdr probes and toggles the HDR (advanced color) state of the
// active display. The portable surface is the Capability interface; the
// platform adapters own the raw display-configuration exchange.
package hdr

// Status describes the HDR capability and state of the active display.
type Status int

const (
	NotCapable Status = iota
	CapableOff
	CapableOn
	Unknown
)

func (s Status) String() string {
	switch s {
	case NotCapable:
		return "not HDR capable"
	case CapableOff:
		return "HDR capable and off"
	case CapableOn:
		return "HDR capable and on"
	default:
		return "unknown"
	}
}

// Capability queries and sets the HDR state of the active display.
// Implementations wrap a platform display-configuration service; the
// request/response encoding is private to the adapter.
type Capability interface {
	QueryStatus() (Status, error)
	SetState(enable bool) error
}

// DisplayStatus queries c and maps any failure to Unknown. It never returns
// an error: callers that need to distinguish "not capable" from "query
// failed" must use the Capability directly.
func DisplayStatus(c Capability) Status {
	status, err := c.QueryStatus()
	if err != nil {
		return Unknown
	}
	return status
}

// IsEnabled reports whether the display is HDR capable with HDR switched on.
func IsEnabled(c Capability) bool {
	return DisplayStatus(c) == CapableOn
}

// Toggle flips the HDR state when the display is capable. Displays that are
// not capable, or whose state cannot be queried, are left untouched and nil
// is returned.
func Toggle(c Capability) error {
	switch DisplayStatus(c) {
	case CapableOff:
		return c.SetState(true)
	case CapableOn:
		return c.SetState(false)
	}
	return nil
}

// EnableForSession switches HDR on for the duration of a playback session
// and returns a restore function that switches it back off. Displays that
// are already on, not capable, or unqueryable are left untouched and get a
// no-op restore. The restore is always safe to call.
func EnableForSession(c Capability) (restore func() error, err error) {
	noop := func() error { return nil }

	if DisplayStatus(c) != CapableOff {
		return noop, nil
	}
	if err := c.SetState(true); err != nil {
		return noop, err
	}
	return func() error { return c.SetState(false) }, nil
}
