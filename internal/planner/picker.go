package planner

import (
	"what-lunch/internal/restaurant"
)

// pickContext selects the adjacency rule for a slot.
type pickContext int

const (
	// contextGenerate only sees slots to the left of the index.
	contextGenerate pickContext = iota
	// contextReroll sees the whole committed plan.
	contextReroll
)

// slotRequest carries everything pickForSlot needs for one slot.
type slotRequest struct {
	pool    []restaurant.Restaurant
	allowed int // spend allowed for this slot after reservation
	// remaining is the whole unspent budget. Only used in generation.
	remaining int
	days      []restaurant.Restaurant
	index     int
	ctx       pickContext
	relax     bool
}

// pickForSlot chooses a restaurant for one slot. It never fails for a
// non-empty pool and degrades through these tiers:
//
//  1. random among restaurants within allowed that keep cuisine diversity
//  2. cheapest within allowed
//  3. cheapest within the whole remaining budget (generation only)
//  4. cheapest overall
func (p *Planner) pickForSlot(req slotRequest) restaurant.Restaurant {
	var eligible []restaurant.Restaurant
	for _, r := range req.pool {
		if r.Price <= req.allowed && (req.relax || !violates(req.days, req.index, r.Cuisine, req.ctx)) {
			eligible = append(eligible, r)
		}
	}
	if len(eligible) > 0 {
		return eligible[p.intN(len(eligible))]
	}

	if r, ok := cheapestWithin(req.pool, req.allowed); ok {
		return r
	}

	if req.ctx == contextGenerate {
		if r, ok := cheapestWithin(req.pool, req.remaining); ok {
			return r
		}
	}

	return cheapest(req.pool)
}

// violates reports whether placing c at index would complete a run of three
// identical cuisines.
func violates(days []restaurant.Restaurant, index int, c restaurant.Cuisine, ctx pickContext) bool {
	same := func(i int) bool {
		return i >= 0 && i < len(days) && days[i].Cuisine == c
	}

	if same(index-2) && same(index-1) {
		return true
	}
	if ctx == contextGenerate {
		return false
	}
	return (same(index-1) && same(index+1)) || (same(index+1) && same(index+2))
}

// cheapestWithin returns the cheapest restaurant priced at or below limit.
// Ties go to the earliest in pool order.
func cheapestWithin(pool []restaurant.Restaurant, limit int) (restaurant.Restaurant, bool) {
	var (
		best  restaurant.Restaurant
		found bool
	)
	for _, r := range pool {
		if r.Price <= limit && (!found || r.Price < best.Price) {
			best, found = r, true
		}
	}
	return best, found
}

func cheapest(pool []restaurant.Restaurant) restaurant.Restaurant {
	best := pool[0]
	for _, r := range pool[1:] {
		if r.Price < best.Price {
			best = r
		}
	}
	return best
}
