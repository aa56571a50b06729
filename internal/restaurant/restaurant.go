package restaurant

import (
	"errors"
	"fmt"
)

// ErrInvalidRestaurant is returned when a restaurant fails validation.
var ErrInvalidRestaurant = errors.New("invalid restaurant")

// Restaurant is a venue that can be scheduled for lunch.
type Restaurant struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Cuisine  Cuisine `json:"type" yaml:"type"`
	Price    int     `json:"price" yaml:"price"`       // currency agnostic, integer
	Distance int     `json:"distance" yaml:"distance"` // meters
	Rating   float64 `json:"rating,omitempty" yaml:"rating,omitempty"`
}

// Validate checks the invariants the planner relies on.
func (r Restaurant) Validate() error {
	switch {
	case r.ID == "":
		return fmt.Errorf("%w: missing id (name %q)", ErrInvalidRestaurant, r.Name)
	case r.Name == "":
		return fmt.Errorf("%w %s: missing name", ErrInvalidRestaurant, r.ID)
	case !r.Cuisine.Valid():
		return fmt.Errorf("%w %s: unknown cuisine %q", ErrInvalidRestaurant, r.ID, r.Cuisine)
	case r.Price <= 0:
		return fmt.Errorf("%w %s: price must be positive, got %d", ErrInvalidRestaurant, r.ID, r.Price)
	case r.Distance < 0:
		return fmt.Errorf("%w %s: distance must not be negative, got %d", ErrInvalidRestaurant, r.ID, r.Distance)
	case r.Rating != 0 && (r.Rating < 1 || r.Rating > 5):
		return fmt.Errorf("%w %s: rating must be within 1.0-5.0, got %.1f", ErrInvalidRestaurant, r.ID, r.Rating)
	}
	return nil
}

// ValidatePool validates every restaurant and rejects duplicate ids.
func ValidatePool(pool []Restaurant) error {
	seen := make(map[string]struct{}, len(pool))
	for _, r := range pool {
		if err := r.Validate(); err != nil {
			return err
		}
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("%w %s: duplicate id", ErrInvalidRestaurant, r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	return nil
}

// DistinctCuisines counts the cuisines present in a pool.
func DistinctCuisines(pool []Restaurant) int {
	seen := make(map[Cuisine]struct{})
	for _, r := range pool {
		seen[r.Cuisine] = struct{}{}
	}
	return len(seen)
}
