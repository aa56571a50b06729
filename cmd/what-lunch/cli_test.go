package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("WHAT_LUNCH_DB_PATH", filepath.Join(dir, "lunch.db"))
	t.Setenv("WHAT_LUNCH_POOL_PATH", "")
	t.Setenv("GEMINI_API_KEY", "")
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := &cli{}
	root := c.rootCmd()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	c.close()
	return out.String(), err
}

func TestPlanShowConfirm(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "plan", "--budget", "750")
	require.NoError(t, err)
	assert.Contains(t, out, "Weekly Lunch Plan")
	assert.Contains(t, out, "Monday")
	assert.Contains(t, out, "Friday")
	assert.Contains(t, out, "Total $")
	assert.Contains(t, out, "/ $750")

	out, err = execute(t, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "/ $750")
	assert.NotContains(t, out, "Confirmed.")

	out, err = execute(t, "confirm")
	require.NoError(t, err)
	assert.Contains(t, out, "5 restaurants added to history")

	out, err = execute(t, "confirm")
	require.NoError(t, err)
	assert.Contains(t, out, "already in your history")

	out, err = execute(t, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Confirmed.")

	out, err = execute(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "Recent Lunches")
	assert.Equal(t, 6, strings.Count(out, "\n"))
}

func TestPlan_NoPlanYet(t *testing.T) {
	setupEnv(t)

	for _, args := range [][]string{{"show"}, {"reroll", "1"}, {"confirm"}} {
		_, err := execute(t, args...)
		require.Error(t, err, args)
		assert.Contains(t, err.Error(), "no plan yet")
	}
}

func TestPlan_Flags(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "plan", "--lock", "jp")
	require.NoError(t, err)
	assert.Contains(t, out, "日式")
	assert.NotContains(t, out, "中式")
	assert.Contains(t, out, "repeats allowed")

	out, err = execute(t, "plan", "--exclude", "jp,chi")
	require.NoError(t, err)
	assert.NotContains(t, out, "日式")
	assert.NotContains(t, out, "中式")

	_, err = execute(t, "plan", "--lock", "jp", "--exclude", "kr")
	assert.Error(t, err)

	_, err = execute(t, "plan", "--lock", "pizza")
	assert.Error(t, err)

	_, err = execute(t, "plan", "--budget", "0")
	assert.Error(t, err)

	out, err = execute(t, "plan", "--describe")
	require.NoError(t, err)
	assert.Contains(t, out, "Set GEMINI_API_KEY")
}

func TestPlan_ImpossibleBudget(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "plan", "--budget", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "over budget by $225")
}

func TestReroll(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "plan")
	require.NoError(t, err)

	out, err := execute(t, "reroll", "wed")
	require.NoError(t, err)
	assert.Contains(t, out, "* Wednesday")

	out, err = execute(t, "reroll", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "* Friday")

	_, err = execute(t, "reroll", "6")
	assert.Error(t, err)

	_, err = execute(t, "reroll")
	assert.Error(t, err)
}

func TestWeekend_EmptyPool(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "weekend")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no weekend restaurants")
}

func TestHistoryCommands(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No history yet.")
	assert.Contains(t, out, "lookback 5 business days")

	out, err = execute(t, "history", "lookback", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Lookback set to 10")

	out, err = execute(t, "history", "lookback", "99")
	require.NoError(t, err)
	assert.Contains(t, out, "Lookback set to 30")

	out, err = execute(t, "history", "lookback")
	require.NoError(t, err)
	assert.Contains(t, out, "Lookback: 30 business days")

	_, err = execute(t, "history", "lookback", "many")
	assert.Error(t, err)

	_, err = execute(t, "history", "rm", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no history entry")

	out, err = execute(t, "history", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "History cleared.")
}

func TestHistory_UserIsolation(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "--user", "alice", "plan")
	require.NoError(t, err)
	_, err = execute(t, "--user", "alice", "confirm")
	require.NoError(t, err)

	out, err := execute(t, "--user", "bob", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No history yet.")
}

func TestPoolImportAndList(t *testing.T) {
	dir := setupEnv(t)

	src := filepath.Join(dir, "list.html")
	html := `<table>
  <tr><th>名稱</th><th>類型</th><th>價格</th><th>距離</th></tr>
  <tr><td>鼎泰豐</td><td>chi</td><td>120</td><td>150</td></tr>
  <tr><td>New Pho</td><td>tai</td><td>95</td><td>300</td></tr>
</table>`
	require.NoError(t, os.WriteFile(src, []byte(html), 0644))

	_, err := execute(t, "pool", "import", src)
	require.Error(t, err, "no destination configured")

	dest := filepath.Join(dir, "pool.yaml")
	out, err := execute(t, "pool", "import", src, "--out", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "New Pho")
	assert.Contains(t, out, "Added 1, skipped 1")
	assert.FileExists(t, dest)

	t.Setenv("WHAT_LUNCH_POOL_PATH", dest)
	out, err = execute(t, "pool", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "New Pho")
	assert.Contains(t, out, "鼎泰豐")

	out, err = execute(t, "pool", "list", "--weekend")
	require.NoError(t, err)
	assert.Contains(t, out, "The pool is empty.")
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "1", want: 0},
		{in: "5", want: 4},
		{in: "mon", want: 0},
		{in: "Tue", want: 1},
		{in: "wednesday", want: 2},
		{in: "FRI", want: 4},
		{in: "0", wantErr: true},
		{in: "6", wantErr: true},
		{in: "sat", wantErr: true},
		{in: "t", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDay(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildFilter(t *testing.T) {
	f, err := buildFilter("", "")
	require.NoError(t, err)
	assert.False(t, f.Active())

	f, err = buildFilter("west", "")
	require.NoError(t, err)
	assert.Equal(t, "exclude", string(f.Mode))
	assert.Len(t, f.Cuisines, 1)

	f, err = buildFilter("", "jp,kr")
	require.NoError(t, err)
	assert.Equal(t, "lock", string(f.Mode))
	assert.Len(t, f.Cuisines, 2)
}
