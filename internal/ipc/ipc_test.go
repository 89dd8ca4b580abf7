package ipc

import (
	"errors"
	"testing"
)

type fakeProvider struct {
	frames   uint64
	parts    int
	desktop  string
	hdr      string
	modes    []ModeEntry
	modesErr error
}

func (f *fakeProvider) Frames() uint64             { return f.frames }
func (f *fakeProvider) Participants() int          { return f.parts }
func (f *fakeProvider) DesktopMode() string        { return f.desktop }
func (f *fakeProvider) HDRStatus() string          { return f.hdr }
func (f *fakeProvider) Modes() ([]ModeEntry, error) { return f.modes, f.modesErr }

func startTestServer(t *testing.T, provider Provider) *Server {
	t.Helper()
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	srv, err := NewServer(provider, nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(srv.Stop)
	return srv
}

func TestPingAndStatusRoundTrip(t *testing.T) {
	provider := &fakeProvider{
		frames:  42,
		parts:   2,
		desktop: "HDMI-1: 1920x1080 @ 60.00Hz",
		hdr:     "unknown",
	}
	startTestServer(t, provider)

	client := NewClient()
	if err := client.Ping(); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	status, err := client.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if !status.DaemonRunning {
		t.Fatal("daemon_running not set")
	}
	if status.Frames != 42 || status.Participants != 2 {
		t.Fatalf("unexpected status: %+v", status)
	}
	if status.DesktopMode != provider.desktop {
		t.Fatalf("desktop mode = %q", status.DesktopMode)
	}
}

func TestGetModesRoundTrip(t *testing.T) {
	provider := &fakeProvider{
		modes: []ModeEntry{
			{Width: 1280, Height: 720, RefreshRate: 60, Description: "1280x720 @ 60.00Hz"},
			{Width: 1920, Height: 1080, RefreshRate: 59.94, Description: "1920x1080 @ 59.94Hz"},
		},
	}
	startTestServer(t, provider)

	modes, err := NewClient().GetModes()
	if err != nil {
		t.Fatalf("GetModes: %v", err)
	}
	if len(modes.Modes) != 2 {
		t.Fatalf("expected 2 modes, got %d", len(modes.Modes))
	}
	if modes.Modes[1].RefreshRate != 59.94 {
		t.Fatalf("unexpected modes: %+v", modes.Modes)
	}
}

func TestGetModesErrorSurfacesToClient(t *testing.T) {
	provider := &fakeProvider{modesErr: errors.New("enumeration failed")}
	startTestServer(t, provider)

	if _, err := NewClient().GetModes(); err == nil {
		t.Fatal("expected error from daemon")
	}
}
