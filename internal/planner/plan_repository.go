package planner

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// ErrPlanNotFound is returned when a user has no stored plan.
var ErrPlanNotFound = errors.New("no plan found")

// SavedPlan is a plan together with the pool settings it was generated under,
// so later rerolls draw from the same pool.
type SavedPlan struct {
	Plan      WeeklyPlan `json:"plan"`
	Filter    Filter     `json:"filter"`
	Options   Options    `json:"options"`
	Confirmed bool       `json:"confirmed,omitempty"`
}

// PlanRepository is a database-backed repository for weekly plans. Every
// Save appends a row; the newest row is the user's current plan.
type PlanRepository struct {
	db *sql.DB
}

// NewPlanRepository creates a new PlanRepository.
func NewPlanRepository(d *sql.DB) *PlanRepository {
	return &PlanRepository{db: d}
}

// Save inserts a new plan version into the database.
func (r *PlanRepository) Save(ctx context.Context, userID string, plan SavedPlan) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	query, args, err := sq.Insert("weekly_plans").
		Columns("plan_id", "user_id", "plan_data", "created_at").
		Values(plan.Plan.ID, userID, string(data), time.Now()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save plan for user %s: %w", userID, err)
	}
	return nil
}

// Latest returns the most recently saved plan of userID.
func (r *PlanRepository) Latest(ctx context.Context, userID string) (*SavedPlan, error) {
	plans, err := r.ListRecent(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return nil, ErrPlanNotFound
	}
	return &plans[0], nil
}

// ListRecent retrieves the N most recent plan versions for a given user.
func (r *PlanRepository) ListRecent(ctx context.Context, userID string, limit int) ([]SavedPlan, error) {
	query, args, err := sq.Select("plan_data").
		From("weekly_plans").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent plans for user %s: %w", userID, err)
	}
	defer rows.Close()

	var plans []SavedPlan
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		var p SavedPlan
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}
