package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
	sq "github.com/Masterminds/squirrel"
)

// ErrEntryNotFound is returned by Remove when no entry matches.
var ErrEntryNotFound = errors.New("history entry not found")

// Repository is a database-backed, per-user store of history entries and
// lookback settings.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Add stores entries as the newest history for userID and prunes anything
// beyond MaxEntries. The first entry in the slice ends up first in List.
func (r *Repository) Add(ctx context.Context, userID string, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Higher seq is newer, so insert in reverse to keep the slice order on read.
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		query, args, err := sq.Insert("history_entries").
			Columns("id", "user_id", "date", "restaurant_id", "restaurant_name").
			Values(e.ID, userID, e.Date.String(), e.RestaurantID, e.RestaurantName).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert history entry: %w", err)
		}
	}

	query, args, err := sq.Delete("history_entries").
		Where(sq.Eq{"user_id": userID}).
		Where("seq NOT IN (SELECT seq FROM history_entries WHERE user_id = ? ORDER BY seq DESC LIMIT ?)", userID, MaxEntries).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build prune: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit history: %w", err)
	}
	return nil
}

// List returns the history for userID, newest first.
func (r *Repository) List(ctx context.Context, userID string) ([]Entry, error) {
	query, args, err := sq.Select("id", "date", "restaurant_id", "restaurant_name").
		From("history_entries").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("seq DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list history for user %s: %w", userID, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e    Entry
			date string
		)
		if err := rows.Scan(&e.ID, &date, &e.RestaurantID, &e.RestaurantName); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		e.Date, err = civil.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse history date %q: %w", date, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Remove deletes a single entry.
func (r *Repository) Remove(ctx context.Context, userID, entryID string) error {
	query, args, err := sq.Delete("history_entries").
		Where(sq.Eq{"user_id": userID, "id": entryID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to remove history entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, entryID)
	}
	return nil
}

// Clear deletes the whole history of userID.
func (r *Repository) Clear(ctx context.Context, userID string) error {
	query, args, err := sq.Delete("history_entries").Where(sq.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// Lookback returns the stored lookback setting for userID, or fallback when
// none has been saved.
func (r *Repository) Lookback(ctx context.Context, userID string, fallback int) (int, error) {
	query, args, err := sq.Select("lookback_days").
		From("user_settings").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var days int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&days)
	if errors.Is(err, sql.ErrNoRows) {
		return ClampLookback(fallback), nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read lookback: %w", err)
	}
	return ClampLookback(days), nil
}

// SetLookback clamps and stores the lookback setting. It returns the stored value.
func (r *Repository) SetLookback(ctx context.Context, userID string, days int) (int, error) {
	days = ClampLookback(days)
	query, args, err := sq.Insert("user_settings").
		Columns("user_id", "lookback_days").
		Values(userID, days).
		Suffix("ON CONFLICT(user_id) DO UPDATE SET lookback_days = excluded.lookback_days").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build upsert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("failed to save lookback: %w", err)
	}
	return days, nil
}
