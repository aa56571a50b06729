package app

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
	"go.uber.org/zap"

	"what-lunch/internal/config"
	"what-lunch/internal/history"
	"what-lunch/internal/planner"
	"what-lunch/internal/restaurant"
)

var (
	// ErrAlreadyConfirmed is returned when the current plan was already written to history.
	ErrAlreadyConfirmed = errors.New("plan already confirmed")
	// ErrNarratorUnavailable is returned by DescribePlan when no model is configured.
	ErrNarratorUnavailable = errors.New("plan narrator is not configured")
)

// Narrator describes a plan in prose.
type Narrator interface {
	DescribePlan(ctx context.Context, plan *planner.WeeklyPlan) (string, error)
}

// App holds the application's dependencies.
type App struct {
	cfg         *config.Config
	pool        *restaurant.Pool
	mealPlanner *planner.Planner
	historyRepo *history.Repository
	planRepo    *planner.PlanRepository
	narrator    Narrator
	logger      *zap.Logger
	today       func() civil.Date
}

// Option configures an App.
type Option func(*App)

// WithNarrator enables DescribePlan.
func WithNarrator(n Narrator) Option {
	return func(a *App) { a.narrator = n }
}

// WithToday replaces the local-date clock used for lookback and confirmation.
func WithToday(today func() civil.Date) Option {
	return func(a *App) { a.today = today }
}

// NewApp creates and initializes a new App instance.
func NewApp(
	cfg *config.Config,
	pool *restaurant.Pool,
	mealPlanner *planner.Planner,
	historyRepo *history.Repository,
	planRepo *planner.PlanRepository,
	logger *zap.Logger,
	opts ...Option,
) *App {
	a := &App{
		cfg:         cfg,
		pool:        pool,
		mealPlanner: mealPlanner,
		historyRepo: historyRepo,
		planRepo:    planRepo,
		logger:      logger,
		today:       history.Today,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Pool returns the configured restaurant pool.
func (a *App) Pool() *restaurant.Pool {
	return a.pool
}

// ActivePool is the weekday pool a plan is drawn from.
type ActivePool struct {
	Restaurants []restaurant.Restaurant
	// Relax is set when the pool holds a single cuisine.
	Relax bool
	// FellBack is set when every filtered restaurant was visited recently.
	FellBack bool
	Lookback int
}

// ActivePool filters the weekday pool, drops recently visited restaurants and
// falls back to the filtered pool when nothing fresh is left.
func (a *App) ActivePool(ctx context.Context, userID string, filter planner.Filter) (*ActivePool, error) {
	filtered := planner.ApplyFilter(a.pool.Weekday, filter)

	lookback, err := a.historyRepo.Lookback(ctx, userID, a.cfg.LookbackDays)
	if err != nil {
		return nil, err
	}
	entries, err := a.historyRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent := history.RecentlyVisitedIDsAsOf(entries, lookback, a.today())
	primary, fallback := history.SplitPool(filtered, recent)
	chosen := history.ChoosePool(primary, fallback)

	return &ActivePool{
		Restaurants: chosen,
		Relax:       restaurant.DistinctCuisines(chosen) <= 1,
		FellBack:    len(primary) == 0 && len(fallback) > 0,
		Lookback:    lookback,
	}, nil
}

// PlanResult is a freshly generated or rerolled plan and how it was drawn.
type PlanResult struct {
	Plan     *planner.WeeklyPlan
	Filter   planner.Filter
	Relaxed  bool
	FellBack bool
}

// GeneratePlan builds and stores a new plan for userID. A non-positive
// budget means the configured weekly budget.
func (a *App) GeneratePlan(ctx context.Context, userID string, budget int, filter planner.Filter) (*PlanResult, error) {
	if budget <= 0 {
		budget = a.cfg.WeeklyBudget
	}

	active, err := a.ActivePool(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	opts := planner.Options{RelaxDiversity: active.Relax}

	plan, err := a.mealPlanner.GenerateWeeklyPlan(active.Restaurants, budget, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to generate plan: %w", err)
	}
	a.logPlan("generated plan", userID, plan, active)

	if err := a.planRepo.Save(ctx, userID, planner.SavedPlan{Plan: *plan, Filter: filter, Options: opts}); err != nil {
		return nil, err
	}
	return &PlanResult{Plan: plan, Filter: filter, Relaxed: active.Relax, FellBack: active.FellBack}, nil
}

// CurrentPlan returns the user's most recently saved plan.
func (a *App) CurrentPlan(ctx context.Context, userID string) (*planner.SavedPlan, error) {
	return a.planRepo.Latest(ctx, userID)
}

// RerollDay replaces one day (0 = Monday) of the user's current plan, drawing
// from the pool the plan was generated with.
func (a *App) RerollDay(ctx context.Context, userID string, index int) (*PlanResult, error) {
	saved, err := a.CurrentPlan(ctx, userID)
	if err != nil {
		return nil, err
	}

	active, err := a.ActivePool(ctx, userID, saved.Filter)
	if err != nil {
		return nil, err
	}
	opts := planner.Options{RelaxDiversity: active.Relax}

	plan, err := a.mealPlanner.RerollSlot(&saved.Plan, index, active.Restaurants, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to reroll day %d: %w", index+1, err)
	}
	a.logger.Debug("rerolled day",
		zap.String("user_id", userID),
		zap.Int("index", index),
		zap.String("from", saved.Plan.Days[index].ID),
		zap.String("to", plan.Days[index].ID),
	)
	a.logPlan("rerolled plan", userID, plan, active)

	if err := a.planRepo.Save(ctx, userID, planner.SavedPlan{Plan: *plan, Filter: saved.Filter, Options: opts}); err != nil {
		return nil, err
	}
	return &PlanResult{Plan: plan, Filter: saved.Filter, Relaxed: active.Relax, FellBack: active.FellBack}, nil
}

// ConfirmPlan writes the current plan's five restaurants to history, dated today.
func (a *App) ConfirmPlan(ctx context.Context, userID string) (*planner.WeeklyPlan, error) {
	saved, err := a.planRepo.Latest(ctx, userID)
	if err != nil {
		return nil, err
	}
	if saved.Confirmed {
		return nil, ErrAlreadyConfirmed
	}

	entries := history.NewEntries(saved.Plan.Days, a.today())
	if err := a.historyRepo.Add(ctx, userID, entries); err != nil {
		return nil, err
	}

	saved.Confirmed = true
	if err := a.planRepo.Save(ctx, userID, *saved); err != nil {
		return nil, err
	}
	a.logger.Info("confirmed plan", zap.String("user_id", userID), zap.String("plan_id", saved.Plan.ID))
	return &saved.Plan, nil
}

// PickWeekend picks a weekend restaurant, avoiding currentID when one is given.
func (a *App) PickWeekend(ctx context.Context, currentID string) (restaurant.Restaurant, error) {
	if currentID == "" {
		return a.mealPlanner.PickRandom(a.pool.Weekend)
	}
	return a.mealPlanner.PickAnother(a.pool.Weekend, currentID)
}

// DescribePlan returns a short prose teaser of plan.
func (a *App) DescribePlan(ctx context.Context, plan *planner.WeeklyPlan) (string, error) {
	if a.narrator == nil {
		return "", ErrNarratorUnavailable
	}
	return a.narrator.DescribePlan(ctx, plan)
}

// History returns the user's history, newest first.
func (a *App) History(ctx context.Context, userID string) ([]history.Entry, error) {
	return a.historyRepo.List(ctx, userID)
}

// RemoveHistory deletes one history entry.
func (a *App) RemoveHistory(ctx context.Context, userID, entryID string) error {
	return a.historyRepo.Remove(ctx, userID, entryID)
}

// ClearHistory deletes the user's whole history.
func (a *App) ClearHistory(ctx context.Context, userID string) error {
	return a.historyRepo.Clear(ctx, userID)
}

// Lookback returns the user's lookback setting in business days.
func (a *App) Lookback(ctx context.Context, userID string) (int, error) {
	return a.historyRepo.Lookback(ctx, userID, a.cfg.LookbackDays)
}

// SetLookback stores a lookback setting, clamped to the supported range.
func (a *App) SetLookback(ctx context.Context, userID string, days int) (int, error) {
	return a.historyRepo.SetLookback(ctx, userID, days)
}

func (a *App) logPlan(msg, userID string, plan *planner.WeeklyPlan, active *ActivePool) {
	fields := []zap.Field{
		zap.String("user_id", userID),
		zap.String("plan_id", plan.ID),
		zap.Int("total_cost", plan.TotalCost),
		zap.Int("weekly_budget", plan.WeeklyBudget),
		zap.Int("pool_size", len(active.Restaurants)),
		zap.Bool("relax_diversity", active.Relax),
	}
	if active.FellBack {
		a.logger.Info("every restaurant visited recently, using full pool", zap.String("user_id", userID), zap.Int("lookback", active.Lookback))
	}
	if over := plan.Overrun(); over > 0 {
		a.logger.Warn("plan exceeds weekly budget", append(fields, zap.Int("overrun", over))...)
		return
	}
	a.logger.Info(msg, fields...)
}
