package planner

import (
	"errors"
	"time"

	"what-lunch/internal/restaurant"
)

// DaysPerWeek is the number of weekday slots in a plan.
const DaysPerWeek = 5

// DayLabels names the plan slots positionally.
var DayLabels = [DaysPerWeek]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

var (
	// ErrEmptyPool is returned when there is nothing to pick from.
	ErrEmptyPool = errors.New("restaurant pool cannot be empty")
	// ErrSlotOutOfRange is returned by RerollSlot for an index outside 0..4.
	ErrSlotOutOfRange = errors.New("slot index out of range")
	// ErrInvalidPlan is returned when a plan does not carry five days.
	ErrInvalidPlan = errors.New("plan must have exactly five days")
)

// Options tune a single generate or reroll call.
type Options struct {
	// RelaxDiversity disables the no-three-in-a-row cuisine rule.
	RelaxDiversity bool `json:"relaxDiversity,omitempty"`
}

// WeeklyPlan is one restaurant per weekday. Plans are values: rerolling a day
// produces a new plan and leaves the old one untouched.
type WeeklyPlan struct {
	ID           string                  `json:"id"`
	CreatedAt    time.Time               `json:"createdAt"`
	Days         []restaurant.Restaurant `json:"days"`
	TotalCost    int                     `json:"totalCost"`
	WeeklyBudget int                     `json:"weeklyBudget"`
}

// Overrun is how far TotalCost exceeds WeeklyBudget, or 0.
func (p *WeeklyPlan) Overrun() int {
	if p.TotalCost > p.WeeklyBudget {
		return p.TotalCost - p.WeeklyBudget
	}
	return 0
}

// Remaining is the unspent budget. It is negative on overrun.
func (p *WeeklyPlan) Remaining() int {
	return p.WeeklyBudget - p.TotalCost
}

func sumPrices(days []restaurant.Restaurant) int {
	total := 0
	for _, r := range days {
		total += r.Price
	}
	return total
}
