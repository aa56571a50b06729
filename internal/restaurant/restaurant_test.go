package restaurant

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCuisine(t *testing.T) {
	tests := []struct {
		in      string
		want    Cuisine
		wantErr bool
	}{
		{in: "jp", want: Japanese},
		{in: " WEST ", want: Western},
		{in: "泰式", want: Thai},
		{in: "chinese", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCuisine(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCuisineList(t *testing.T) {
	got, err := ParseCuisineList("jp, kr,,")
	require.NoError(t, err)
	assert.Equal(t, []Cuisine{Japanese, Korean}, got)

	_, err = ParseCuisineList("jp,pizza")
	assert.Error(t, err)
}

func TestEveryCuisineHasMeta(t *testing.T) {
	for _, c := range Cuisines() {
		assert.True(t, c.Valid(), c)
		assert.NotEmpty(t, c.Meta().Label, c)
		assert.NotEmpty(t, c.Meta().Color, c)
	}
}

func TestValidate(t *testing.T) {
	valid := Restaurant{ID: "a", Name: "A", Cuisine: Korean, Price: 100, Distance: 0, Rating: 4.1}
	require.NoError(t, valid.Validate())

	unrated := valid
	unrated.Rating = 0
	assert.NoError(t, unrated.Validate())

	cases := map[string]func(r *Restaurant){
		"missing id":     func(r *Restaurant) { r.ID = "" },
		"missing name":   func(r *Restaurant) { r.Name = "" },
		"bad cuisine":    func(r *Restaurant) { r.Cuisine = "pizza" },
		"zero price":     func(r *Restaurant) { r.Price = 0 },
		"negative dist":  func(r *Restaurant) { r.Distance = -1 },
		"rating too big": func(r *Restaurant) { r.Rating = 5.5 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			r := valid
			mutate(&r)
			err := r.Validate()
			assert.True(t, errors.Is(err, ErrInvalidRestaurant), "got %v", err)
		})
	}
}

func TestValidatePoolRejectsDuplicates(t *testing.T) {
	pool := []Restaurant{
		{ID: "a", Name: "A", Cuisine: Korean, Price: 100},
		{ID: "a", Name: "B", Cuisine: Thai, Price: 90},
	}
	err := ValidatePool(pool)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate id")
}

func TestDefaultRestaurantsAreValid(t *testing.T) {
	pool := DefaultRestaurants()
	require.NoError(t, ValidatePool(pool))
	assert.Len(t, pool, 19)
	assert.Equal(t, 5, DistinctCuisines(pool))
}

func TestLoadPool(t *testing.T) {
	t.Run("EmptyPathUsesDefaults", func(t *testing.T) {
		pool, err := LoadPool("")
		require.NoError(t, err)
		assert.Len(t, pool.Weekday, 19)
		assert.Empty(t, pool.Weekend)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "pool.yaml")
		want := &Pool{
			Weekday: []Restaurant{{ID: "r1", Name: "R1", Cuisine: Chinese, Price: 100, Distance: 10, Rating: 4.5}},
			Weekend: []Restaurant{{ID: "w1", Name: "W1", Cuisine: Western, Price: 400, Distance: 1000}},
		}
		require.NoError(t, SavePool(path, want))

		got, err := LoadPool(path)
		require.NoError(t, err)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("pool mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("UnknownCuisine", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pool.yaml")
		raw := "weekday:\n  - id: x\n    name: X\n    type: pizza\n    price: 10\n"
		require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

		_, err := LoadPool(path)
		assert.Error(t, err)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := LoadPool(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestNextID(t *testing.T) {
	assert.Equal(t, "id-20", NextID(DefaultRestaurants()))
	assert.Equal(t, "id-1", NextID(nil))
	assert.Equal(t, "id-4", NextID([]Restaurant{{ID: "custom"}, {ID: "id-3"}}))
}

func TestMerge(t *testing.T) {
	existing := []Restaurant{{ID: "id-1", Name: "A", Cuisine: Chinese, Price: 100}}
	incoming := []Restaurant{
		{Name: "A", Cuisine: Chinese, Price: 90},
		{Name: "B", Cuisine: Thai, Price: 80},
		{ID: "id-1", Name: "C", Cuisine: Korean, Price: 70},
	}

	merged, skipped := Merge(existing, incoming)

	assert.Equal(t, []string{"A"}, skipped)
	require.Len(t, merged, 3)
	assert.Equal(t, "id-2", merged[1].ID)
	assert.Equal(t, "id-3", merged[2].ID)
	assert.Len(t, existing, 1, "existing pool must not grow")
	assert.NoError(t, ValidatePool(merged))
}
