package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/mediawin/internal/display"
)

func pickerSource() display.StaticSource {
	return display.StaticSource{
		display.WindowedMode(0, 0),
		{Index: 1, Width: 1920, Height: 1080, RefreshRate: 60.0, Output: "HDMI-1"},
		{Index: 2, Width: 1920, Height: 1080, RefreshRate: 60.0},
		{Index: 3, Width: 1920, Height: 1080, RefreshRate: 50.0},
		{Index: 4, Width: 1280, Height: 720, RefreshRate: 60.0},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestPickerDefaultsToDesktopRate(t *testing.T) {
	m := newModel(pickerSource(), 0)

	// Desktop baseline, the separate 1920x1080 entry, and 1280x720.
	if len(m.modes) != 3 {
		t.Fatalf("expected 3 catalog entries, got %d", len(m.modes))
	}
	// Cursor starts on 1280x720 (sorted first); its only rate is 60.
	if got := m.modes[m.cursor]; got.Width != 1280 {
		t.Fatalf("cursor not on first sorted mode: %+v", got)
	}
	if len(m.rates) != 1 || m.rates[m.rateIdx].Rate != 60.0 {
		t.Fatalf("unexpected rates: %+v", m.rates)
	}
}

func TestPickerSelection(t *testing.T) {
	m := newModel(pickerSource(), 0)

	// Move to 1920x1080 and pick the lower rate.
	next, _ := m.Update(key("down"))
	m = next.(model)
	if len(m.rates) != 2 {
		t.Fatalf("expected 2 rates for 1920x1080, got %+v", m.rates)
	}
	// Desktop runs at 60Hz, so the rate cursor starts on 60.
	if m.rates[m.rateIdx].Rate != 60.0 {
		t.Fatalf("rate cursor not on default: %+v", m.rates[m.rateIdx])
	}

	next, _ = m.Update(key("left"))
	m = next.(model)
	next, _ = m.Update(key("enter"))
	m = next.(model)

	if m.chosen == nil {
		t.Fatal("enter did not record a selection")
	}
	if m.chosen.Mode.Width != 1920 || m.chosen.Rate.Rate != 50.0 {
		t.Fatalf("unexpected selection: %+v", m.chosen)
	}
}

func TestPickerViewRendersModes(t *testing.T) {
	m := newModel(pickerSource(), 0)
	view := m.View()
	if view == "" {
		t.Fatal("empty view")
	}
}
