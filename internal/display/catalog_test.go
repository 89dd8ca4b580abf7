package display

import (
	"reflect"
	"testing"
)

func TestUniqueModesPreferredRateReplacement(t *testing.T) {
	records := []ModeInfo{
		{Index: 1, Width: 1920, Height: 1080, RefreshRate: 60.0},
		{Index: 2, Width: 1920, Height: 1080, RefreshRate: 60.0},
		{Index: 3, Width: 1920, Height: 1080, RefreshRate: 59.94},
		{Index: 4, Width: 1920, Height: 1080, RefreshRate: 60.0},
	}

	modes := UniqueModes(records, 59.94)

	// Baseline plus one merged entry.
	if len(modes) != 2 {
		t.Fatalf("expected 2 unique modes, got %d", len(modes))
	}
	if modes[0].Index != 1 {
		t.Fatalf("baseline index changed: got %d, want 1", modes[0].Index)
	}
	if modes[1].Index != 3 {
		t.Fatalf("expected merged entry to adopt the 59.94 record's index 3, got %d", modes[1].Index)
	}
}

func TestUniqueModesBaselineNeverMerged(t *testing.T) {
	records := []ModeInfo{
		{Index: 1, Width: 1280, Height: 720, RefreshRate: 60.0},
		{Index: 2, Width: 1280, Height: 720, RefreshRate: 60.0},
	}

	modes := UniqueModes(records, 60.0)

	if len(modes) != 2 {
		t.Fatalf("expected baseline plus separate entry, got %d modes", len(modes))
	}
	if modes[0].Index != 1 {
		t.Fatalf("baseline must keep its own index: got %d", modes[0].Index)
	}
}

func TestUniqueModesNoPreferredRateDropsDuplicates(t *testing.T) {
	records := []ModeInfo{
		{Index: 1, Width: 1920, Height: 1080, RefreshRate: 60.0},
		{Index: 2, Width: 1280, Height: 720, RefreshRate: 60.0},
		{Index: 3, Width: 1280, Height: 720, RefreshRate: 50.0},
	}

	modes := UniqueModes(records, 0)

	if len(modes) != 2 {
		t.Fatalf("expected 2 unique modes, got %d", len(modes))
	}
	if modes[1].Index != 2 {
		t.Fatalf("first occurrence must win without a preferred rate: got index %d", modes[1].Index)
	}
}

func TestUniqueModesMasksFlags(t *testing.T) {
	records := []ModeInfo{
		{Index: 1, Width: 1920, Height: 1080},
		{Index: 2, Width: 1280, Height: 720, Flags: FlagWidescreen | FlagInterlaced},
		{Index: 3, Width: 1280, Height: 720, Flags: FlagProgressive | FlagInterlaced},
	}

	modes := UniqueModes(records, 0)

	// Widescreen/progressive bits are outside ModeMask, so records 2 and 3
	// share the key (1280, 720, interlaced) and merge.
	if len(modes) != 2 {
		t.Fatalf("expected flag masking to merge records, got %d modes", len(modes))
	}
	if modes[1].Flags != FlagInterlaced {
		t.Fatalf("stored flags must be masked: got %v", modes[1].Flags)
	}
}

func TestUniqueModesIdempotentOnKeys(t *testing.T) {
	records := []ModeInfo{
		{Index: 1, Width: 1920, Height: 1080, RefreshRate: 60.0},
		{Index: 2, Width: 1280, Height: 720, RefreshRate: 60.0},
		{Index: 3, Width: 1280, Height: 720, RefreshRate: 50.0},
		{Index: 4, Width: 3840, Height: 2160, Flags: FlagInterlaced, RefreshRate: 30.0},
	}

	once := UniqueModes(records, 0)

	again := make([]ModeInfo, len(once))
	for i, m := range once {
		again[i] = ModeInfo{Index: m.Index, Width: m.Width, Height: m.Height, Flags: m.Flags}
	}
	twice := UniqueModes(again, 0)

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("dedup not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestSortModesOrdering(t *testing.T) {
	modes := []UniqueMode{
		{Width: 1920, Height: 1080, Flags: FlagInterlaced},
		{Width: 1280, Height: 1024},
		{Width: 1920, Height: 1080},
		{Width: 1280, Height: 720},
	}

	SortModes(modes)

	want := []UniqueMode{
		{Width: 1280, Height: 720},
		{Width: 1280, Height: 1024},
		{Width: 1920, Height: 1080},
		{Width: 1920, Height: 1080, Flags: FlagInterlaced},
	}
	if !reflect.DeepEqual(modes, want) {
		t.Fatalf("sort order wrong:\ngot:  %+v\nwant: %+v", modes, want)
	}
}

func TestLessModeStrictWeakOrdering(t *testing.T) {
	samples := []UniqueMode{
		{Width: 1280, Height: 720},
		{Width: 1280, Height: 720},
		{Width: 1280, Height: 1024},
		{Width: 1920, Height: 1080},
		{Width: 1920, Height: 1080, Flags: FlagInterlaced},
		{Width: 1920, Height: 1080, Flags: FlagStereoSBS},
	}

	// Exactly one of a<b, b<a, equivalent must hold for every pair.
	for i, a := range samples {
		for j, b := range samples {
			ab := lessMode(a, b)
			ba := lessMode(b, a)
			if ab && ba {
				t.Fatalf("pair (%d,%d) is less in both directions", i, j)
			}
			if i == j && (ab || ba) {
				t.Fatalf("entry %d compares less than itself", i)
			}
		}
	}

	// Equivalence (neither less) must be transitive.
	equiv := func(a, b UniqueMode) bool { return !lessMode(a, b) && !lessMode(b, a) }
	for _, a := range samples {
		for _, b := range samples {
			for _, c := range samples {
				if equiv(a, b) && equiv(b, c) && !equiv(a, c) {
					t.Fatalf("equivalence not transitive for %+v, %+v, %+v", a, b, c)
				}
			}
		}
	}
}

func TestScreenResolutions(t *testing.T) {
	src := StaticSource{
		WindowedMode(0, 0),
		{Index: 1, Width: 1920, Height: 1080, RefreshRate: 60.0, Output: "HDMI-1"},
		{Index: 2, Width: 1920, Height: 1080, RefreshRate: 60.0},
		{Index: 3, Width: 1280, Height: 720, RefreshRate: 60.0},
		{Index: 4, Width: 1920, Height: 1080, RefreshRate: 59.94},
		{Index: 5, Width: 1280, Height: 720, RefreshRate: 50.0},
	}

	modes := ScreenResolutions(src, 59.94)

	// Desktop baseline, one 1920x1080 entry, one 1280x720 entry, sorted.
	if len(modes) != 3 {
		t.Fatalf("expected 3 catalog entries, got %d: %+v", len(modes), modes)
	}
	if modes[0].Width != 1280 || modes[0].Height != 720 {
		t.Fatalf("expected 1280x720 first after sort, got %dx%d", modes[0].Width, modes[0].Height)
	}
	for _, m := range modes {
		if m.Width == 1920 && m.Index != 4 && m.Index != 1 {
			t.Fatalf("1920x1080 entry should reference index 1 (baseline) or 4 (preferred), got %d", m.Index)
		}
	}
}

func TestDescribe(t *testing.T) {
	m := ModeInfo{Width: 1920, Height: 1080, RefreshRate: 59.94, Output: "HDMI-1", Flags: FlagInterlaced}
	got := m.Describe()
	want := "HDMI-1: 1920x1080 @ 59.94Hz" + "i"
	if got != want {
		t.Fatalf("Describe() = %q, want %q", got, want)
	}

	w := WindowedMode(0, 0)
	if w.Width != 720 || w.Height != 480 {
		t.Fatalf("WindowedMode defaults wrong: %dx%d", w.Width, w.Height)
	}
	if got := w.Describe(); got != "Windowed: 720x480" {
		t.Fatalf("Describe() = %q", got)
	}
}
