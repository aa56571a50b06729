package llm

import (
	"context"
	"fmt"
	"strings"

	"what-lunch/internal/planner"
)

const narratorPrompt = `You are a cheerful office lunch buddy. Write a short, friendly teaser
(two sentences at most, no lists, no markdown) for this week's lunch plan.
Mention the variety of cuisines and whether the plan stays within budget.
Reply in the language the restaurant names are written in.

Plan:
%s
Total: %d of a %d budget.`

// Narrator turns a weekly plan into a one-paragraph teaser.
type Narrator struct {
	gen TextGenerator
}

// NewNarrator creates a new Narrator.
func NewNarrator(gen TextGenerator) *Narrator {
	return &Narrator{gen: gen}
}

// DescribePlan asks the model for a teaser of plan.
func (n *Narrator) DescribePlan(ctx context.Context, plan *planner.WeeklyPlan) (string, error) {
	text, err := n.gen.GenerateContent(ctx, buildNarratorPrompt(plan))
	if err != nil {
		return "", fmt.Errorf("failed to describe plan: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func buildNarratorPrompt(plan *planner.WeeklyPlan) string {
	var sb strings.Builder
	for i, r := range plan.Days {
		fmt.Fprintf(&sb, "- %s: %s (%s, %d)\n", planner.DayLabels[i], r.Name, r.Cuisine.Meta().Label, r.Price)
	}
	return fmt.Sprintf(narratorPrompt, sb.String(), plan.TotalCost, plan.WeeklyBudget)
}
