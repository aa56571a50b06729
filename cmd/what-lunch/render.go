package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"what-lunch/internal/history"
	"what-lunch/internal/planner"
	"what-lunch/internal/restaurant"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dayStyle   = lipgloss.NewStyle().Bold(true).Width(10)
	nameStyle  = lipgloss.NewStyle().Width(24)
	mutedStyle = lipgloss.NewStyle().Faint(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#67C23A")).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F56C6C")).Bold(true)
)

type planNotes struct {
	Relaxed   bool
	FellBack  bool
	Confirmed bool
	Rerolled  int // 1-based day, 0 for none
}

func cuisineBadge(c restaurant.Cuisine) string {
	meta := c.Meta()
	style := lipgloss.NewStyle().Width(6)
	if meta.Color != "" {
		style = style.Foreground(lipgloss.Color(meta.Color))
	}
	return style.Render(meta.Label)
}

func restaurantLine(r restaurant.Restaurant) string {
	return fmt.Sprintf("%s %s $%-5d %dm", nameStyle.Render(r.Name), cuisineBadge(r.Cuisine), r.Price, r.Distance)
}

func renderPlan(w io.Writer, plan *planner.WeeklyPlan, notes planNotes) {
	fmt.Fprintln(w, titleStyle.Render("Weekly Lunch Plan"))
	for i, r := range plan.Days {
		marker := " "
		if notes.Rerolled == i+1 {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s %s\n", marker, dayStyle.Render(planner.DayLabels[i]), restaurantLine(r))
	}

	fmt.Fprintln(w)
	total := fmt.Sprintf("Total $%d / $%d", plan.TotalCost, plan.WeeklyBudget)
	if over := plan.Overrun(); over > 0 {
		fmt.Fprintf(w, "%s %s\n", total, warnStyle.Render(fmt.Sprintf("over budget by $%d, no cheaper combination exists", over)))
	} else {
		fmt.Fprintf(w, "%s %s\n", total, mutedStyle.Render(fmt.Sprintf("(remaining $%d)", plan.Remaining())))
	}

	if notes.FellBack {
		fmt.Fprintln(w, mutedStyle.Render("Every restaurant was visited recently, so the full list was used."))
	}
	if notes.Relaxed {
		fmt.Fprintln(w, mutedStyle.Render("Only one cuisine available, repeats allowed."))
	}
	if notes.Confirmed {
		fmt.Fprintln(w, okStyle.Render("Confirmed."))
	}
}

func renderHistory(w io.Writer, entries []history.Entry, lookback, limit int) {
	fmt.Fprintf(w, "%s %s\n", titleStyle.Render("Recent Lunches"), mutedStyle.Render(fmt.Sprintf("(lookback %d business days)", lookback)))
	if len(entries) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No history yet."))
		return
	}
	for i, e := range entries {
		if limit > 0 && i == limit {
			fmt.Fprintf(w, "...and %d more\n", len(entries)-limit)
			return
		}
		fmt.Fprintf(w, "%s  %s  %s\n", e.Date, e.RestaurantName, mutedStyle.Render(e.ID))
	}
}

func renderPool(w io.Writer, pool []restaurant.Restaurant) {
	if len(pool) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("The pool is empty."))
		return
	}
	for _, r := range pool {
		fmt.Fprintf(w, "%-6s %s\n", r.ID, restaurantLine(r))
	}
	fmt.Fprintf(w, "%d restaurants\n", len(pool))
}
