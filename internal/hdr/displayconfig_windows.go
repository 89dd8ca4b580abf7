//go:build windows

package hdr

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procGetDisplayConfigBufferSizes = user32.NewProc("GetDisplayConfigBufferSizes")
	procQueryDisplayConfig          = user32.NewProc("QueryDisplayConfig")
	procDisplayConfigGetDeviceInfo  = user32.NewProc("DisplayConfigGetDeviceInfo")
	procDisplayConfigSetDeviceInfo  = user32.NewProc("DisplayConfigSetDeviceInfo")
)

const qdcOnlyActivePaths = 0x2

const modeInfoTypeTarget = 2

// Device-info packet offsets. The packets below start with a
// DISPLAYCONFIG_DEVICE_INFO_HEADER (type, size, adapter LUID, target id);
// byte 20 carries the advanced-color state.
const (
	offAdapterIDLow  = 8
	offAdapterIDHigh = 12
	offTargetID      = 16
	offStateByte     = 20
)

// Advanced-color state bytes returned by the display configuration service.
const (
	stateNotCapable = 0xD0
	stateCapableOff = 0xD1
	stateCapableOn  = 0xD3
)

// displayConfigPathInfo mirrors DISPLAYCONFIG_PATH_INFO; the contents are
// never inspected, only the buffer is required by QueryDisplayConfig.
type displayConfigPathInfo struct {
	_ [72]byte
}

// displayConfigModeInfo mirrors DISPLAYCONFIG_MODE_INFO up to the fields
// needed to locate the active target.
type displayConfigModeInfo struct {
	infoType  uint32
	id        uint32
	adapterID windows.LUID
	_         [48]byte
}

// advancedColorInfoPacket is the opaque GET_ADVANCED_COLOR_INFO request.
// Offsets 8-19 are patched with the target's adapter LUID and id before the
// call; the service writes the state byte at offset 20.
func advancedColorInfoPacket() []byte {
	return []byte{
		0x09, 0x00, 0x00, 0x00, 0x20, 0x00, 0x00, 0x00, 0x7C, 0x6F, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x04, 0x01, 0x00, 0x00, 0xDB, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x40, 0x00, 0x00,
	}
}

// setAdvancedColorPacket is the opaque SET_ADVANCED_COLOR_STATE request.
func setAdvancedColorPacket(enable bool) []byte {
	p := []byte{
		0x0A, 0x00, 0x00, 0x00, 0x18, 0x00, 0x00, 0x00, 0x14, 0x81, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x04, 0x01, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00,
	}
	if !enable {
		p[offStateByte] = 0
	}
	return p
}

func patchTarget(packet []byte, luid windows.LUID, id uint32) {
	binary.LittleEndian.PutUint32(packet[offAdapterIDLow:], luid.LowPart)
	binary.LittleEndian.PutUint32(packet[offAdapterIDHigh:], uint32(luid.HighPart))
	binary.LittleEndian.PutUint32(packet[offTargetID:], id)
}

// displayConfig implements Capability on the Windows display configuration
// API.
type displayConfig struct {
	logger *slog.Logger
}

// NewPlatformCapability returns the display HDR capability for this
// platform.
func NewPlatformCapability() Capability {
	return &displayConfig{logger: slog.Default()}
}

// activeTarget locates the active target display. When several targets are
// active the last one enumerated wins.
func (d *displayConfig) activeTarget() (windows.LUID, uint32, error) {
	var pathCount, modeCount uint32
	ret, _, _ := procGetDisplayConfigBufferSizes.Call(
		qdcOnlyActivePaths,
		uintptr(unsafe.Pointer(&pathCount)),
		uintptr(unsafe.Pointer(&modeCount)),
	)
	if ret != 0 {
		return windows.LUID{}, 0, fmt.Errorf("GetDisplayConfigBufferSizes failed with %d", ret)
	}
	if pathCount == 0 || modeCount == 0 {
		return windows.LUID{}, 0, errors.New("no active display paths")
	}

	paths := make([]displayConfigPathInfo, pathCount)
	modes := make([]displayConfigModeInfo, modeCount)

	ret, _, _ = procQueryDisplayConfig.Call(
		qdcOnlyActivePaths,
		uintptr(unsafe.Pointer(&pathCount)),
		uintptr(unsafe.Pointer(&paths[0])),
		uintptr(unsafe.Pointer(&modeCount)),
		uintptr(unsafe.Pointer(&modes[0])),
		0,
	)
	if ret != 0 {
		return windows.LUID{}, 0, fmt.Errorf("QueryDisplayConfig failed with %d", ret)
	}

	var (
		luid  windows.LUID
		id    uint32
		found bool
	)
	for _, m := range modes[:modeCount] {
		if m.infoType == modeInfoTypeTarget {
			luid = m.adapterID
			id = m.id
			found = true
		}
	}
	if !found {
		return windows.LUID{}, 0, errors.New("no target display found")
	}
	return luid, id, nil
}

func (d *displayConfig) QueryStatus() (Status, error) {
	luid, id, err := d.activeTarget()
	if err != nil {
		return Unknown, err
	}

	packet := advancedColorInfoPacket()
	patchTarget(packet, luid, id)

	ret, _, _ := procDisplayConfigGetDeviceInfo.Call(uintptr(unsafe.Pointer(&packet[0])))
	if ret != 0 {
		return Unknown, fmt.Errorf("DisplayConfigGetDeviceInfo failed with %d", ret)
	}

	var status Status
	switch packet[offStateByte] {
	case stateNotCapable:
		status = NotCapable
	case stateCapableOff:
		status = CapableOff
	case stateCapableOn:
		status = CapableOn
	default:
		status = Unknown
	}

	d.logger.Debug("queried display HDR state",
		"response", fmt.Sprintf("0x%02X", packet[offStateByte]),
		"status", status.String())

	return status, nil
}

func (d *displayConfig) SetState(enable bool) error {
	luid, id, err := d.activeTarget()
	if err != nil {
		return err
	}

	packet := setAdvancedColorPacket(enable)
	patchTarget(packet, luid, id)

	d.logger.Info("setting display HDR state", "enable", enable)

	ret, _, _ := procDisplayConfigSetDeviceInfo.Call(uintptr(unsafe.Pointer(&packet[0])))
	if ret != 0 {
		return fmt.Errorf("DisplayConfigSetDeviceInfo failed with %d", ret)
	}
	return nil
}
