package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"what-lunch/internal/restaurant"
)

func filterPool() []restaurant.Restaurant {
	return []restaurant.Restaurant{
		rest("chi1", restaurant.Chinese, 80),
		rest("jp1", restaurant.Japanese, 90),
		rest("kr1", restaurant.Korean, 75),
		rest("tai1", restaurant.Thai, 70),
		rest("west1", restaurant.Western, 120),
	}
}

func ids(pool []restaurant.Restaurant) []string {
	out := make([]string, 0, len(pool))
	for _, r := range pool {
		out = append(out, r.ID)
	}
	return out
}

func TestApplyFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"ExcludeOne", Filter{Mode: ModeExclude, Cuisines: []restaurant.Cuisine{restaurant.Japanese}}, []string{"chi1", "kr1", "tai1", "west1"}},
		{"ExcludeTwo", Filter{Mode: ModeExclude, Cuisines: []restaurant.Cuisine{restaurant.Japanese, restaurant.Korean}}, []string{"chi1", "tai1", "west1"}},
		{"LockOne", Filter{Mode: ModeLock, Cuisines: []restaurant.Cuisine{restaurant.Chinese}}, []string{"chi1"}},
		{"LockTwo", Filter{Mode: ModeLock, Cuisines: []restaurant.Cuisine{restaurant.Western, restaurant.Chinese}}, []string{"chi1", "west1"}},
		{"EmptyModeExcludes", Filter{Cuisines: []restaurant.Cuisine{restaurant.Thai}}, []string{"chi1", "jp1", "kr1", "west1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := filterPool()
			assert.Equal(t, tt.want, ids(ApplyFilter(pool, tt.filter)))
			assert.Equal(t, filterPool(), pool, "input must not be mutated")
		})
	}
}

func TestApplyFilter_EmptySelectionIsIdentity(t *testing.T) {
	for _, mode := range []FilterMode{ModeExclude, ModeLock} {
		pool := filterPool()
		assert.Equal(t, pool, ApplyFilter(pool, Filter{Mode: mode}), mode)
	}
	assert.Empty(t, ApplyFilter(nil, Filter{Mode: ModeLock, Cuisines: []restaurant.Cuisine{restaurant.Thai}}))
}

func TestParseFilterMode(t *testing.T) {
	m, err := ParseFilterMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeExclude, m)

	m, err = ParseFilterMode("lock")
	require.NoError(t, err)
	assert.Equal(t, ModeLock, m)

	_, err = ParseFilterMode("only")
	assert.Error(t, err)
}
