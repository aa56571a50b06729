package restaurant

import (
	"fmt"
	"strings"
)

// Cuisine is the closed set of cuisine categories a restaurant can belong to.
type Cuisine string

const (
	Chinese  Cuisine = "chi"
	Japanese Cuisine = "jp"
	Korean   Cuisine = "kr"
	Thai     Cuisine = "tai"
	Western  Cuisine = "west"
)

// CuisineMeta is display metadata for a cuisine.
type CuisineMeta struct {
	Label string
	Color string
}

// cuisineMeta is the single source of truth for the enumeration. Adding a
// cuisine means adding an entry here; the planner only compares cuisines.
var cuisineMeta = map[Cuisine]CuisineMeta{
	Chinese:  {Label: "中式", Color: "#67C23A"},
	Japanese: {Label: "日式", Color: "#E6A23C"},
	Korean:   {Label: "韓式", Color: "#F56C6C"},
	Thai:     {Label: "泰式", Color: "#909399"},
	Western:  {Label: "西式", Color: "#109399"},
}

var cuisineOrder = []Cuisine{Chinese, Japanese, Korean, Thai, Western}

// Cuisines returns every known cuisine in display order.
func Cuisines() []Cuisine {
	out := make([]Cuisine, len(cuisineOrder))
	copy(out, cuisineOrder)
	return out
}

// Valid reports whether c is part of the enumeration.
func (c Cuisine) Valid() bool {
	_, ok := cuisineMeta[c]
	return ok
}

// Meta returns the display metadata, falling back to the raw code.
func (c Cuisine) Meta() CuisineMeta {
	if m, ok := cuisineMeta[c]; ok {
		return m
	}
	return CuisineMeta{Label: string(c)}
}

func (c Cuisine) String() string {
	return string(c)
}

// ParseCuisine accepts a cuisine code ("jp") or its label ("日式").
func ParseCuisine(s string) (Cuisine, error) {
	s = strings.TrimSpace(s)
	c := Cuisine(strings.ToLower(s))
	if c.Valid() {
		return c, nil
	}
	for code, meta := range cuisineMeta {
		if meta.Label == s {
			return code, nil
		}
	}
	return "", fmt.Errorf("unknown cuisine %q", s)
}

// ParseCuisineList parses a comma separated list such as "jp,kr".
func ParseCuisineList(s string) ([]Cuisine, error) {
	var out []Cuisine
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		c, err := ParseCuisine(part)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// UnmarshalText rejects cuisines outside the enumeration so a bad pool file
// fails at load time instead of inside the planner.
func (c *Cuisine) UnmarshalText(text []byte) error {
	parsed, err := ParseCuisine(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Cuisine) MarshalText() ([]byte, error) {
	return []byte(c), nil
}
