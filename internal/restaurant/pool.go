package restaurant

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Pool holds the weekday and weekend candidate lists.
type Pool struct {
	Weekday []Restaurant `yaml:"weekday"`
	Weekend []Restaurant `yaml:"weekend"`
}

// DefaultPool returns the built-in weekday pool and an empty weekend pool.
func DefaultPool() *Pool {
	return &Pool{Weekday: DefaultRestaurants()}
}

// LoadPool reads a YAML pool file. An empty path yields the default pool.
func LoadPool(path string) (*Pool, error) {
	if path == "" {
		return DefaultPool(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pool file %s: %w", path, err)
	}

	var pool Pool
	if err := yaml.Unmarshal(data, &pool); err != nil {
		return nil, fmt.Errorf("failed to parse pool file %s: %w", path, err)
	}

	if err := ValidatePool(pool.Weekday); err != nil {
		return nil, fmt.Errorf("weekday pool: %w", err)
	}
	if err := ValidatePool(pool.Weekend); err != nil {
		return nil, fmt.Errorf("weekend pool: %w", err)
	}
	return &pool, nil
}

// SavePool writes the pool as YAML, creating the parent directory if needed.
func SavePool(path string, pool *Pool) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create pool directory %s: %w", dir, err)
		}
	}

	data, err := yaml.Marshal(pool)
	if err != nil {
		return fmt.Errorf("failed to marshal pool: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write pool file: %w", err)
	}
	return nil
}
