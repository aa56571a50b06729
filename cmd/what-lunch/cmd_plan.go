package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"what-lunch/internal/app"
	"what-lunch/internal/planner"
	"what-lunch/internal/restaurant"
)

func (c *cli) planCmd() *cobra.Command {
	var (
		budget   int
		exclude  string
		lock     string
		describe bool
	)
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a new weekly plan",
		Long: `Generate a new Monday-Friday plan and make it the current plan.

Cuisine codes: chi, jp, kr, tai, west.`,
		Example: `  what-lunch plan
  what-lunch plan --budget 600 --exclude west
  what-lunch plan --lock jp,kr`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := buildFilter(exclude, lock)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("budget") && budget <= 0 {
				return fmt.Errorf("--budget must be positive, got %d", budget)
			}

			res, err := c.app.GeneratePlan(cmd.Context(), c.userID, budget, filter)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			renderPlan(out, res.Plan, planNotes{Relaxed: res.Relaxed, FellBack: res.FellBack})

			if describe {
				text, err := c.app.DescribePlan(cmd.Context(), res.Plan)
				if errors.Is(err, app.ErrNarratorUnavailable) {
					fmt.Fprintln(out, mutedStyle.Render("Set GEMINI_API_KEY to get a description."))
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, text)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&budget, "budget", "b", 0, "weekly budget (default WHAT_LUNCH_WEEKLY_BUDGET)")
	cmd.Flags().StringVar(&exclude, "exclude", "", "comma-separated cuisines to leave out")
	cmd.Flags().StringVar(&lock, "lock", "", "comma-separated cuisines to restrict the plan to")
	cmd.Flags().BoolVar(&describe, "describe", false, "ask the language model for a short description")
	cmd.MarkFlagsMutuallyExclusive("exclude", "lock")
	return cmd
}

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			saved, err := c.app.CurrentPlan(cmd.Context(), c.userID)
			if errors.Is(err, planner.ErrPlanNotFound) {
				return errors.New("no plan yet, run `what-lunch plan` first")
			}
			if err != nil {
				return err
			}
			renderPlan(cmd.OutOrStdout(), &saved.Plan, planNotes{
				Relaxed:   saved.Options.RelaxDiversity,
				Confirmed: saved.Confirmed,
			})
			return nil
		},
	}
}

func (c *cli) rerollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reroll <day>",
		Short: "Replace one day of the current plan",
		Long:  `Replace one day of the current plan. <day> is 1-5 or a weekday name (mon, tuesday, ...).`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseDay(args[0])
			if err != nil {
				return err
			}
			res, err := c.app.RerollDay(cmd.Context(), c.userID, index)
			if errors.Is(err, planner.ErrPlanNotFound) {
				return errors.New("no plan yet, run `what-lunch plan` first")
			}
			if err != nil {
				return err
			}
			renderPlan(cmd.OutOrStdout(), res.Plan, planNotes{Relaxed: res.Relaxed, FellBack: res.FellBack, Rerolled: index + 1})
			return nil
		},
	}
}

func (c *cli) confirmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "confirm",
		Short: "Record the current plan in history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plan, err := c.app.ConfirmPlan(cmd.Context(), c.userID)
			switch {
			case errors.Is(err, app.ErrAlreadyConfirmed):
				fmt.Fprintln(cmd.OutOrStdout(), "This plan is already in your history.")
				return nil
			case errors.Is(err, planner.ErrPlanNotFound):
				return errors.New("no plan yet, run `what-lunch plan` first")
			case err != nil:
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d restaurants added to history.\n", okStyle.Render("Confirmed."), len(plan.Days))
			return nil
		},
	}
}

func (c *cli) weekendCmd() *cobra.Command {
	var not string
	cmd := &cobra.Command{
		Use:   "weekend",
		Short: "Pick a weekend restaurant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := c.app.PickWeekend(cmd.Context(), not)
			if errors.Is(err, planner.ErrEmptyPool) {
				return errors.New("no weekend restaurants in the pool")
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", titleStyle.Render("Weekend pick:"), restaurantLine(r))
			return nil
		},
	}
	cmd.Flags().StringVar(&not, "not", "", "restaurant id to avoid, e.g. the previous pick")
	return cmd
}

// buildFilter turns --exclude/--lock values into a planner filter.
func buildFilter(exclude, lock string) (planner.Filter, error) {
	mode, value := planner.ModeExclude, exclude
	if lock != "" {
		mode, value = planner.ModeLock, lock
	}
	if value == "" {
		return planner.Filter{}, nil
	}
	cuisines, err := restaurant.ParseCuisineList(value)
	if err != nil {
		return planner.Filter{}, err
	}
	return planner.Filter{Mode: mode, Cuisines: cuisines}, nil
}

// parseDay accepts 1-5 or a weekday name or prefix of at least three letters.
func parseDay(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > planner.DaysPerWeek {
			return 0, fmt.Errorf("day must be 1-%d, got %d", planner.DaysPerWeek, n)
		}
		return n - 1, nil
	}
	name := strings.ToLower(s)
	if len(name) >= 3 {
		for i, label := range planner.DayLabels {
			if strings.HasPrefix(strings.ToLower(label), name) {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("unknown day %q", s)
}
