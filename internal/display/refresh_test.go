package display

import (
	"errors"
	"testing"
)

func TestRefreshRatesFiltersExactMode(t *testing.T) {
	src := StaticSource{
		WindowedMode(1920, 1080), // index 0 must never be scanned
		{Index: 1, Width: 1920, Height: 1080, RefreshRate: 60.0},
		{Index: 2, Width: 1920, Height: 1080, RefreshRate: 50.0},
		{Index: 3, Width: 1280, Height: 720, RefreshRate: 60.0},
		{Index: 4, Width: 1920, Height: 1080, Flags: FlagInterlaced, RefreshRate: 30.0},
	}

	rates := RefreshRates(src, 1920, 1080, 0)

	if len(rates) != 2 {
		t.Fatalf("expected 2 rates, got %d: %+v", len(rates), rates)
	}
	// Sorted ascending.
	if rates[0].Rate != 50.0 || rates[1].Rate != 60.0 {
		t.Fatalf("rates not sorted ascending: %+v", rates)
	}
}

func TestRefreshRatesDropsExactDuplicates(t *testing.T) {
	src := StaticSource{
		WindowedMode(0, 0),
		{Index: 1, Width: 1920, Height: 1080, RefreshRate: 60.0},
		{Index: 2, Width: 1920, Height: 1080, RefreshRate: 60.0},
		{Index: 3, Width: 1920, Height: 1080, RefreshRate: 59.94},
	}

	rates := RefreshRates(src, 1920, 1080, 0)

	if len(rates) != 2 {
		t.Fatalf("expected 2 distinct rates, got %d", len(rates))
	}
	for _, r := range rates {
		if r.Rate == 60.0 && r.Index != 1 {
			t.Fatalf("first occurrence must keep its index: got %d", r.Index)
		}
	}
}

func TestRefreshRatesMatchesMaskedFlags(t *testing.T) {
	src := StaticSource{
		WindowedMode(0, 0),
		{Index: 1, Width: 1920, Height: 1080, Flags: FlagInterlaced | FlagWidescreen, RefreshRate: 25.0},
		{Index: 2, Width: 1920, Height: 1080, RefreshRate: 60.0},
	}

	rates := RefreshRates(src, 1920, 1080, FlagInterlaced)

	if len(rates) != 1 || rates[0].Rate != 25.0 {
		t.Fatalf("expected only the interlaced record, got %+v", rates)
	}
}

func TestDefaultRefreshRateExactMatch(t *testing.T) {
	rates := []RefreshRate{
		{Rate: 50.0, Index: 1},
		{Rate: 59.94, Index: 2},
		{Rate: 60.0, Index: 3},
	}

	best, err := DefaultRefreshRate(rates, 60.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if best.Rate != 60.0 || best.Index != 3 {
		t.Fatalf("expected exact match {60.0, 3}, got %+v", best)
	}
}

func TestDefaultRefreshRateNearest(t *testing.T) {
	rates := []RefreshRate{
		{Rate: 50.0, Index: 1},
		{Rate: 55.0, Index: 2},
	}

	best, err := DefaultRefreshRate(rates, 52.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if best.Rate != 50.0 {
		t.Fatalf("expected 50.0 (fitness 2.0 < 3.0), got %+v", best)
	}
}

func TestDefaultRefreshRateTieKeepsFirst(t *testing.T) {
	rates := []RefreshRate{
		{Rate: 50.0, Index: 1},
		{Rate: 54.0, Index: 2},
	}

	best, err := DefaultRefreshRate(rates, 52.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if best.Index != 1 {
		t.Fatalf("tie must keep the first candidate, got %+v", best)
	}
}

func TestDefaultRefreshRateEmpty(t *testing.T) {
	_, err := DefaultRefreshRate(nil, 60.0)
	if !errors.Is(err, ErrNoRefreshRates) {
		t.Fatalf("expected ErrNoRefreshRates, got %v", err)
	}
}
