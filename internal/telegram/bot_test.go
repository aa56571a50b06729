package telegram

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"what-lunch/internal/history"
	"what-lunch/internal/planner"
	"what-lunch/internal/restaurant"
)

func testPlan(budget int) *planner.WeeklyPlan {
	days := restaurant.DefaultRestaurants()[:planner.DaysPerWeek]
	total := 0
	for _, d := range days {
		total += d.Price
	}
	return &planner.WeeklyPlan{ID: "p1", Days: days, TotalCost: total, WeeklyBudget: budget}
}

func TestFormatPlanMarkdown(t *testing.T) {
	out := formatPlanMarkdown(testPlan(750), false, false)

	assert.Contains(t, out, "📅 *Weekly Lunch Plan*")
	assert.Contains(t, out, "*Monday*: 鼎泰豐")
	assert.Contains(t, out, "_中式 · $120 · 150m_")
	assert.Contains(t, out, "*Friday*: Sukiya")
	assert.Contains(t, out, "💰 *Total:* $595 / $750 (remaining $155)")
	assert.NotContains(t, out, "Over budget")
	assert.NotContains(t, out, "ℹ️")
}

func TestFormatPlanMarkdown_OverrunAndNotes(t *testing.T) {
	out := formatPlanMarkdown(testPlan(500), true, true)

	assert.Contains(t, out, "⚠️ Over budget by $95")
	assert.NotContains(t, out, "remaining")
	assert.Contains(t, out, "full list was used")
	assert.Contains(t, out, "repeats allowed")
}

func TestFormatPlanMarkdown_EscapesNames(t *testing.T) {
	plan := testPlan(750)
	plan.Days[0].Name = "Mr_Bao*"

	out := formatPlanMarkdown(plan, false, false)
	assert.Contains(t, out, `Mr\_Bao\*`)
}

func TestParsePlanArgs(t *testing.T) {
	tests := []struct {
		name       string
		args       string
		wantBudget int
		wantFilter planner.Filter
		wantErr    bool
	}{
		{name: "Empty", args: ""},
		{name: "Budget", args: "600", wantBudget: 600},
		{name: "Lock", args: "lock=jp,kr", wantFilter: planner.Filter{Mode: planner.ModeLock, Cuisines: []restaurant.Cuisine{restaurant.Japanese, restaurant.Korean}}},
		{name: "BudgetAndExclude", args: "500 EXCLUDE=west", wantBudget: 500, wantFilter: planner.Filter{Mode: planner.ModeExclude, Cuisines: []restaurant.Cuisine{restaurant.Western}}},
		{name: "BadBudget", args: "cheap", wantErr: true},
		{name: "NegativeBudget", args: "-5", wantErr: true},
		{name: "BadMode", args: "only=jp", wantErr: true},
		{name: "BadCuisine", args: "lock=pizza", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budget, filter, err := parsePlanArgs(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBudget, budget)
			assert.Equal(t, tt.wantFilter, filter)
		})
	}
}

func TestParseCallbackData(t *testing.T) {
	action, arg := parseCallbackData("reroll|3")
	assert.Equal(t, "reroll", action)
	assert.Equal(t, "3", arg)

	action, arg = parseCallbackData("confirm|")
	assert.Equal(t, "confirm", action)
	assert.Empty(t, arg)

	action, arg = parseCallbackData("garbage")
	assert.Equal(t, "garbage", action)
	assert.Empty(t, arg)
}

func TestPlanKeyboard(t *testing.T) {
	kb := planKeyboard(false)
	require.Len(t, kb.InlineKeyboard, 2)
	require.Len(t, kb.InlineKeyboard[0], planner.DaysPerWeek)
	assert.Equal(t, "🎲 Mon", kb.InlineKeyboard[0][0].Text)
	assert.Equal(t, "reroll|4", *kb.InlineKeyboard[0][4].CallbackData)
	require.Len(t, kb.InlineKeyboard[1], 1)
	assert.Equal(t, "confirm|", *kb.InlineKeyboard[1][0].CallbackData)

	kb = planKeyboard(true)
	require.Len(t, kb.InlineKeyboard[1], 2)
	assert.Equal(t, "describe|", *kb.InlineKeyboard[1][1].CallbackData)

	// Telegram caps callback data at 64 bytes.
	weekend := weekendKeyboard("id-123")
	assert.LessOrEqual(t, len(*weekend.InlineKeyboard[0][0].CallbackData), 64)
}

func TestFormatHistoryMarkdown(t *testing.T) {
	assert.Contains(t, formatHistoryMarkdown(nil, 5, 10), "_No history yet_")

	date := civil.Date{Year: 2026, Month: 2, Day: 19}
	entries := history.NewEntries(restaurant.DefaultRestaurants()[:4], date)

	out := formatHistoryMarkdown(entries, 3, 2)
	assert.Contains(t, out, "lookback 3 business days")
	assert.Contains(t, out, "• 2026-02-19 鼎泰豐")
	assert.Contains(t, out, "• 2026-02-19 一蘭拉麵")
	assert.NotContains(t, out, "西提")
	assert.Contains(t, out, "…and 2 more")
}

func TestFormatWeekendMarkdown(t *testing.T) {
	r := restaurant.Restaurant{ID: "w1", Name: "Brunch", Cuisine: restaurant.Western, Price: 400, Distance: 1000}
	assert.Equal(t, "🎉 *Weekend pick*: Brunch\n_西式 · $400 · 1000m_", formatWeekendMarkdown(r))
}
