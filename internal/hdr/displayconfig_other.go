//go:build !windows

package hdr

import "errors"

// ErrUnsupported reports that display HDR control is not implemented for
// this platform.
var ErrUnsupported = errors.New("hdr: display HDR control not supported on this platform")

// unsupported is the Capability used where no platform adapter exists.
// Queries surface as Unknown through DisplayStatus.
type unsupported struct{}

func (unsupported) QueryStatus() (Status, error) { return Unknown, ErrUnsupported }
func (unsupported) SetState(bool) error          { return ErrUnsupported }

// NewPlatformCapability returns the display HDR capability for this
// platform.
func NewPlatformCapability() Capability {
	return unsupported{}
}
