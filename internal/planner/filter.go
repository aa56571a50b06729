package planner

import (
	"fmt"
	"slices"

	"what-lunch/internal/restaurant"
)

// FilterMode selects how Filter.Cuisines is applied.
type FilterMode string

const (
	ModeExclude FilterMode = "exclude"
	ModeLock    FilterMode = "lock"
)

// ParseFilterMode accepts "exclude" or "lock". An empty string means exclude.
func ParseFilterMode(s string) (FilterMode, error) {
	switch FilterMode(s) {
	case "", ModeExclude:
		return ModeExclude, nil
	case ModeLock:
		return ModeLock, nil
	}
	return "", fmt.Errorf("unknown filter mode %q", s)
}

// Filter is a cuisine selection. The zero value filters nothing.
type Filter struct {
	Mode     FilterMode           `json:"mode,omitempty"`
	Cuisines []restaurant.Cuisine `json:"cuisines,omitempty"`
}

// Active reports whether the filter would drop anything.
func (f Filter) Active() bool {
	return len(f.Cuisines) > 0
}

// ApplyFilter keeps restaurants matching the filter, preserving order. With
// no cuisines selected the pool is returned unchanged in both modes.
func ApplyFilter(pool []restaurant.Restaurant, f Filter) []restaurant.Restaurant {
	if !f.Active() {
		return pool
	}
	lock := f.Mode == ModeLock
	out := make([]restaurant.Restaurant, 0, len(pool))
	for _, r := range pool {
		if slices.Contains(f.Cuisines, r.Cuisine) == lock {
			out = append(out, r)
		}
	}
	return out
}
