package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"what-lunch/internal/planner"
	"what-lunch/internal/restaurant"
)

type mockTextGenerator struct {
	prompt string
	reply  string
	err    error
}

func (m *mockTextGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	m.prompt = prompt
	return m.reply, m.err
}

func testPlan() *planner.WeeklyPlan {
	days := restaurant.DefaultRestaurants()[:planner.DaysPerWeek]
	total := 0
	for _, d := range days {
		total += d.Price
	}
	return &planner.WeeklyPlan{ID: "p1", Days: days, TotalCost: total, WeeklyBudget: 750}
}

func TestDescribePlan(t *testing.T) {
	gen := &mockTextGenerator{reply: "  A tasty week ahead!\n"}
	n := NewNarrator(gen)

	got, err := n.DescribePlan(context.Background(), testPlan())
	require.NoError(t, err)

	assert.Equal(t, "A tasty week ahead!", got)
	assert.Contains(t, gen.prompt, "- Monday: 鼎泰豐")
	assert.Contains(t, gen.prompt, "- Friday: Sukiya")
	assert.Contains(t, gen.prompt, "Total: 595 of a 750 budget.")
}

func TestDescribePlan_Error(t *testing.T) {
	n := NewNarrator(&mockTextGenerator{err: errors.New("quota exceeded")})

	_, err := n.DescribePlan(context.Background(), testPlan())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), "", "gemini-1.5-flash")
	assert.Error(t, err)
}
