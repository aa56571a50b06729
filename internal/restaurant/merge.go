package restaurant

import (
	"fmt"
	"strconv"
	"strings"
)

const idPrefix = "id-"

// NextID returns the next free "id-N" identifier for a pool.
func NextID(pool []Restaurant) string {
	maxID := 0
	for _, r := range pool {
		if n, ok := numericID(r.ID); ok && n > maxID {
			maxID = n
		}
	}
	return fmt.Sprintf("%s%d", idPrefix, maxID+1)
}

func numericID(id string) (int, bool) {
	if !strings.HasPrefix(id, idPrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(id, idPrefix))
	return n, err == nil
}

// Merge appends incoming restaurants whose name is not already in existing.
// Restaurants without an id get the next free "id-N". It returns the merged
// pool and the names that were skipped as duplicates.
func Merge(existing, incoming []Restaurant) ([]Restaurant, []string) {
	merged := make([]Restaurant, len(existing), len(existing)+len(incoming))
	copy(merged, existing)

	names := make(map[string]struct{}, len(existing))
	ids := make(map[string]struct{}, len(existing))
	for _, r := range existing {
		names[r.Name] = struct{}{}
		ids[r.ID] = struct{}{}
	}

	var skipped []string
	for _, r := range incoming {
		if _, dup := names[r.Name]; dup {
			skipped = append(skipped, r.Name)
			continue
		}
		if _, taken := ids[r.ID]; r.ID == "" || taken {
			r.ID = NextID(merged)
		}
		merged = append(merged, r)
		names[r.Name] = struct{}{}
		ids[r.ID] = struct{}{}
	}
	return merged, skipped
}
