package display

import (
	"errors"
	"math"
	"sort"
)

// RefreshRate is one distinct refresh rate available for a given resolution,
// with the catalog index of the record it was taken from.
type RefreshRate struct {
	Rate  float64
	Index int
}

// ErrNoRefreshRates is returned by DefaultRefreshRate when the candidate set
// is empty.
var ErrNoRefreshRates = errors.New("display: no refresh rates to select from")

// addRate appends a rate unless an exact duplicate is already present.
// The first occurrence keeps its index; later duplicates are dropped.
func addRate(rates []RefreshRate, rec ModeInfo) []RefreshRate {
	for _, r := range rates {
		if r.Rate == rec.RefreshRate {
			return rates
		}
	}
	return append(rates, RefreshRate{Rate: rec.RefreshRate, Index: rec.Index})
}

// RefreshRates collects the distinct refresh rates the source offers for an
// exact (width, height, masked flags) mode. The scan starts at the desktop
// record; the windowed placeholder at index 0 never participates. The
// result is sorted ascending by rate.
func RefreshRates(src Source, width, height int, flags ModeFlags) []RefreshRate {
	want := flags & ModeMask

	var rates []RefreshRate
	for idx := ResDesktop; idx < src.ModeCount(); idx++ {
		rec := src.Mode(idx)
		if rec.Width == width && rec.Height == height && rec.Flags&ModeMask == want {
			rates = addRate(rates, rec)
		}
	}

	// Source order comes from the display server; sort for a stable listing.
	sort.Slice(rates, func(i, j int) bool { return rates[i].Rate < rates[j].Rate })

	return rates
}

// DefaultRefreshRate picks the rate closest to targetRate by absolute
// difference. The first candidate wins ties and an exact match ends the
// search immediately. An empty candidate set returns ErrNoRefreshRates.
func DefaultRefreshRate(rates []RefreshRate, targetRate float64) (RefreshRate, error) {
	if len(rates) == 0 {
		return RefreshRate{}, ErrNoRefreshRates
	}

	best := rates[0]
	bestFitness := -1.0

	for _, r := range rates {
		fitness := math.Abs(targetRate - r.Rate)
		if bestFitness < 0 || fitness < bestFitness {
			bestFitness = fitness
			best = r
			if bestFitness == 0 { // perfect match
				break
			}
		}
	}

	return best, nil
}
