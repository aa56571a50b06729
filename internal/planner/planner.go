// Package planner builds weekly lunch plans from a restaurant pool under a
// budget and a cuisine-diversity rule, and rerolls single days of a plan.
package planner

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"what-lunch/internal/restaurant"
)

// RandSource is the randomness used for tier-one picks. *rand.Rand satisfies it.
type RandSource interface {
	IntN(n int) int
}

// Planner handles the generation of lunch plans. It is safe for concurrent use.
type Planner struct {
	mu  sync.Mutex
	rng RandSource
	now func() time.Time
}

// Option configures a Planner.
type Option func(*Planner)

// WithRand replaces the time-seeded random source.
func WithRand(src RandSource) Option {
	return func(p *Planner) { p.rng = src }
}

// WithClock replaces time.Now for plan timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Planner) { p.now = now }
}

// New creates a new Planner instance.
func New(opts ...Option) *Planner {
	p := &Planner{
		rng: rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64())),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Planner) intN(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.IntN(n)
}

// GenerateWeeklyPlan fills five days left to right. Each day may spend what
// is left after reserving the pool's cheapest price for every later day. The
// plan can exceed weeklyBudget when the pool makes it unavoidable; check
// Overrun.
func (p *Planner) GenerateWeeklyPlan(pool []restaurant.Restaurant, weeklyBudget int, opts Options) (*WeeklyPlan, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}

	floor := cheapest(pool).Price
	remaining := weeklyBudget
	days := make([]restaurant.Restaurant, 0, DaysPerWeek)

	for i := 0; i < DaysPerWeek; i++ {
		later := DaysPerWeek - i - 1
		pick := p.pickForSlot(slotRequest{
			pool:      pool,
			allowed:   remaining - later*floor,
			remaining: remaining,
			days:      days,
			index:     i,
			ctx:       contextGenerate,
			relax:     opts.RelaxDiversity,
		})
		days = append(days, pick)
		remaining -= pick.Price
	}

	return &WeeklyPlan{
		ID:           uuid.NewString(),
		CreatedAt:    p.now(),
		Days:         days,
		TotalCost:    weeklyBudget - remaining,
		WeeklyBudget: weeklyBudget,
	}, nil
}

// RerollSlot replaces one day of plan. The new day may spend whatever the
// other four leave of the weekly budget and must not complete a same-cuisine
// run of three in either direction. The input plan is not modified.
func (p *Planner) RerollSlot(plan *WeeklyPlan, index int, pool []restaurant.Restaurant, opts Options) (*WeeklyPlan, error) {
	if plan == nil || len(plan.Days) != DaysPerWeek {
		return nil, ErrInvalidPlan
	}
	if index < 0 || index >= DaysPerWeek {
		return nil, fmt.Errorf("%w: %d", ErrSlotOutOfRange, index)
	}
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}

	others := sumPrices(plan.Days) - plan.Days[index].Price
	pick := p.pickForSlot(slotRequest{
		pool:    pool,
		allowed: plan.WeeklyBudget - others,
		days:    plan.Days,
		index:   index,
		ctx:     contextReroll,
		relax:   opts.RelaxDiversity,
	})

	days := make([]restaurant.Restaurant, DaysPerWeek)
	copy(days, plan.Days)
	days[index] = pick

	next := *plan
	next.Days = days
	next.TotalCost = sumPrices(days)
	return &next, nil
}

// PickRandom picks one restaurant uniformly from pool.
func (p *Planner) PickRandom(pool []restaurant.Restaurant) (restaurant.Restaurant, error) {
	if len(pool) == 0 {
		return restaurant.Restaurant{}, ErrEmptyPool
	}
	return pool[p.intN(len(pool))], nil
}

// PickAnother picks a restaurant other than currentID when the pool has a
// choice.
func (p *Planner) PickAnother(pool []restaurant.Restaurant, currentID string) (restaurant.Restaurant, error) {
	if len(pool) <= 1 {
		return p.PickRandom(pool)
	}
	candidates := make([]restaurant.Restaurant, 0, len(pool))
	for _, r := range pool {
		if r.ID != currentID {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return p.PickRandom(pool)
	}
	return p.PickRandom(candidates)
}
