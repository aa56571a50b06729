// Package history tracks which restaurants were eaten at recently and splits
// candidate pools into fresh and fallback lists.
package history

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"what-lunch/internal/restaurant"
)

const (
	// MaxEntries caps how many entries are kept per user.
	MaxEntries = 100
	// DefaultLookbackDays is the lookback window in business days.
	DefaultLookbackDays = 5
	MinLookbackDays     = 1
	MaxLookbackDays     = 30
)

// Entry records one confirmed lunch.
type Entry struct {
	ID             string     `json:"id"`
	Date           civil.Date `json:"date"` // local calendar date, YYYY-MM-DD
	RestaurantID   string     `json:"restaurantId"`
	RestaurantName string     `json:"restaurantName"` // kept so entries survive pool edits
}

// RecentSet is the set of restaurant ids visited on or after a cutoff date.
type RecentSet map[string]struct{}

// Has reports whether id is in the set.
func (s RecentSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Today returns the current local calendar date.
func Today() civil.Date {
	return civil.DateOf(time.Now())
}

// ClampLookback keeps a lookback setting within the supported range.
func ClampLookback(n int) int {
	switch {
	case n < MinLookbackDays:
		return MinLookbackDays
	case n > MaxLookbackDays:
		return MaxLookbackDays
	}
	return n
}

// CutoffDate walks backwards from today one calendar day at a time and stops
// after lookback Monday-Friday days have been passed. Weekend days are walked
// through without being counted, and the result is not adjusted afterwards.
func CutoffDate(today civil.Date, lookback int) civil.Date {
	cursor := today
	for counted := 0; counted < lookback; {
		cursor = cursor.AddDays(-1)
		if isBusinessDay(cursor.Weekday()) {
			counted++
		}
	}
	return cursor
}

func isBusinessDay(d time.Weekday) bool {
	return d != time.Saturday && d != time.Sunday
}

// RecentlyVisitedIDs returns the restaurants visited within the lookback
// window ending today.
func RecentlyVisitedIDs(entries []Entry, lookback int) RecentSet {
	return RecentlyVisitedIDsAsOf(entries, lookback, Today())
}

// RecentlyVisitedIDsAsOf is RecentlyVisitedIDs with an explicit today. An
// entry dated exactly on the cutoff counts as recent; weekend-dated entries
// are compared like any other date.
func RecentlyVisitedIDsAsOf(entries []Entry, lookback int, today civil.Date) RecentSet {
	cutoff := CutoffDate(today, lookback)
	recent := make(RecentSet)
	for _, e := range entries {
		if !e.Date.Before(cutoff) {
			recent[e.RestaurantID] = struct{}{}
		}
	}
	return recent
}

// SplitPool partitions a pool into restaurants not visited recently (primary)
// and the untouched full pool (fallback). It does not choose between them.
func SplitPool(pool []restaurant.Restaurant, recent RecentSet) (primary, fallback []restaurant.Restaurant) {
	primary = make([]restaurant.Restaurant, 0, len(pool))
	for _, r := range pool {
		if !recent.Has(r.ID) {
			primary = append(primary, r)
		}
	}
	return primary, pool
}

// ChoosePool prefers primary and falls back to the full pool when primary is empty.
func ChoosePool(primary, fallback []restaurant.Restaurant) []restaurant.Restaurant {
	if len(primary) > 0 {
		return primary
	}
	return fallback
}

// NewEntries converts confirmed restaurants into history entries dated date.
func NewEntries(days []restaurant.Restaurant, date civil.Date) []Entry {
	entries := make([]Entry, 0, len(days))
	for _, r := range days {
		entries = append(entries, Entry{
			ID:             uuid.NewString(),
			Date:           date,
			RestaurantID:   r.ID,
			RestaurantName: r.Name,
		})
	}
	return entries
}
