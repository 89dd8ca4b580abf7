package display

import "sort"

// UniqueMode is one entry of the deduplicated resolution catalog. Flags are
// already masked to ModeMask; Index points at the representative record in
// the source the catalog was built from.
type UniqueMode struct {
	Width  int
	Height int
	Flags  ModeFlags
	Index  int
}

// addUnique merges one record into the unique set. The entry at position 0
// is the desktop anchor: it is never matched against and never replaced.
// A record whose key (width, height, masked flags) matches an existing
// entry is dropped, unless its refresh rate equals preferredRate, in which
// case the matched entry's representative index is updated instead.
func addUnique(modes []UniqueMode, rec ModeInfo, preferredRate float64) []UniqueMode {
	flags := rec.Flags & ModeMask

	for i := 1; i < len(modes); i++ {
		m := &modes[i]
		if m.Width == rec.Width && m.Height == rec.Height && m.Flags == flags {
			// A colliding record carrying the preferred refresh rate is a
			// better representative for this resolution; adopt its index.
			if preferredRate > 0 && rec.RefreshRate == preferredRate {
				m.Index = rec.Index
			}
			return modes
		}
	}

	return append(modes, UniqueMode{
		Width:  rec.Width,
		Height: rec.Height,
		Flags:  flags,
		Index:  rec.Index,
	})
}

// UniqueModes deduplicates raw mode records into one entry per
// (width, height, masked flags) key. The first record is the fixed desktop
// baseline: it always occupies position 0 of the result and subsequent
// records never merge into it. Order reflects first appearance; callers
// wanting a deterministic catalog sort afterwards.
func UniqueModes(records []ModeInfo, preferredRate float64) []UniqueMode {
	var modes []UniqueMode
	for _, rec := range records {
		modes = addUnique(modes, rec, preferredRate)
	}
	return modes
}

// lessMode orders catalog entries by width, then height, then masked flags.
// It must hold a strict weak ordering: comparing the flags with != instead
// of < makes equal-key pairs "less" in both directions and corrupts the
// sort.
func lessMode(a, b UniqueMode) bool {
	if a.Width != b.Width {
		return a.Width < b.Width
	}
	if a.Height != b.Height {
		return a.Height < b.Height
	}
	return a.Flags < b.Flags
}

// SortModes orders a unique-mode set deterministically in place.
func SortModes(modes []UniqueMode) {
	sort.Slice(modes, func(i, j int) bool { return lessMode(modes[i], modes[j]) })
}

// ScreenResolutions enumerates the source's fullscreen modes (the desktop
// record at index ResDesktop followed by the detected modes), deduplicates
// them, and returns the catalog in deterministic order. The desktop record
// becomes the baseline entry of the dedup pass. preferredRate picks the
// representative record when several records share a resolution; pass 0 to
// keep the first record seen.
func ScreenResolutions(src Source, preferredRate float64) []UniqueMode {
	var modes []UniqueMode
	for idx := ResDesktop; idx < src.ModeCount(); idx++ {
		modes = addUnique(modes, src.Mode(idx), preferredRate)
	}

	// Source order comes straight from the display server and cannot be
	// assumed stable across enumerations.
	SortModes(modes)

	return modes
}
