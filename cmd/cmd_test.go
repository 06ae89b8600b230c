package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/LavenderBridge/flashcards/internal/testutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default so package-level commands
// can be executed more than once.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(normalizeArgs(args))

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestNormalizeArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "single dash long flags",
			args: []string{"-import", "in.txt", "-export", "out.txt"},
			want: []string{"--import", "in.txt", "--export", "out.txt"},
		},
		{
			name: "equals form",
			args: []string{"-import=in.txt", "-log-level=debug"},
			want: []string{"--import=in.txt", "--log-level=debug"},
		},
		{
			name: "already double dash and shorthands untouched",
			args: []string{"--export", "out.txt", "review", "-n", "3", "-f"},
			want: []string{"--export", "out.txt", "review", "-n", "3", "-f"},
		},
		{
			name: "terminator",
			args: []string{"add", "cards.txt", "--", "-import", "x"},
			want: []string{"add", "cards.txt", "--", "-import", "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeArgs(tt.args))
		})
	}
}

func TestRootSessionImportAskExport(t *testing.T) {
	dir := t.TempDir()
	importPath := testutil.WriteCardFile(t, "france", "paris", "0")
	exportPath := filepath.Join(dir, "out.txt")

	out, err := execute(t, "ask\n1\nrome\nhardest card\nexit\n",
		"-import", importPath, "-export", exportPath)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "1 cards have been loaded.\n"))
	assert.Contains(t, out, "Wrong answer. The correct one is \"paris\".\n")
	assert.Contains(t, out, "The hardest card is \"france\". You have 1 errors answering it.\n")
	assert.True(t, strings.HasSuffix(out, "Bye bye!\n1 cards have been saved.\n"))
	assert.Equal(t, []string{"france", "paris", "1"}, testutil.ReadLines(t, exportPath))
}

func TestRootLastFlagWins(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")

	_, err := execute(t, "add\na\nb\nexit\n", "-export", first, "-export", second)
	require.NoError(t, err)

	_, statErr := os.Stat(first)
	assert.True(t, os.IsNotExist(statErr))
	assert.Equal(t, []string{"a", "b", "0"}, testutil.ReadLines(t, second))
}

func TestRootRejectsPositionalArgs(t *testing.T) {
	_, err := execute(t, "", "cards.txt")
	assert.Error(t, err)
}

func TestRootRejectsBadLogLevel(t *testing.T) {
	_, err := execute(t, "exit\n", "--log-level", "chatty")
	assert.ErrorContains(t, err, "invalid config")
}

func TestHistoryAndOverview(t *testing.T) {
	history := filepath.Join(t.TempDir(), "history.db")
	importPath := testutil.WriteCardFile(t, "france", "paris", "0")

	_, err := execute(t, "ask\n2\nparis\nrome\nexit\n", "--history", history, "--import", importPath)
	require.NoError(t, err)

	out, err := execute(t, "", "overview", "--history", history)
	require.NoError(t, err)
	assert.Contains(t, out, "Total Reviews:      2")
	assert.Contains(t, out, "Correct Answers:    1")
	assert.Contains(t, out, "Accuracy:           50%")
	assert.Contains(t, out, "Most Missed Cards")
	assert.Contains(t, out, "france")
}

func TestOverviewRecentAnswers(t *testing.T) {
	history := filepath.Join(t.TempDir(), "history.db")
	importPath := testutil.WriteCardFile(t, "france", "paris", "0")

	_, err := execute(t, "ask\n2\nlyon\nrome\nexit\n", "--history", history, "--import", importPath)
	require.NoError(t, err)

	out, err := execute(t, "", "overview", "--history", history, "--term", "france", "--top", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `Recent answers for "france"`)
	assert.Contains(t, out, "rome")
	assert.NotContains(t, out, "lyon")

	out, err = execute(t, "", "overview", "--history", history, "--term", "japan")
	require.NoError(t, err)
	assert.Contains(t, out, `No answers recorded for "japan"`)
}

func TestOverviewWithoutHistory(t *testing.T) {
	out, err := execute(t, "", "overview")
	require.NoError(t, err)
	assert.Contains(t, out, "No review history configured")
}

func TestFileCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.txt")

	out, err := execute(t, "", "add", path, "france", "paris")
	require.NoError(t, err)
	assert.Contains(t, out, "✅ Added")

	_, err = execute(t, "", "add", path, "japan", "tokyo")
	require.NoError(t, err)

	out, err = execute(t, "", "add", path, "spain", "paris")
	require.NoError(t, err)
	assert.Contains(t, out, "The definition \"paris\" already exists.")

	out, err = execute(t, "", "edit", path, "japan", "--errors", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "Card updated")

	out, err = execute(t, "", "edit", path, "france", "--definition", "tokyo")
	require.NoError(t, err)
	assert.Contains(t, out, "The definition \"tokyo\" already exists.")

	out, err = execute(t, "", "list", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 cards in")
	assert.Contains(t, out, "france")
	assert.Contains(t, out, "tokyo")

	out, err = execute(t, "", "stats", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Total Cards:      2")
	assert.Contains(t, out, "Hardest:          japan (4 errors)")

	out, err = execute(t, "n\n", "delete", path, "france")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled")

	out, err = execute(t, "", "delete", path, "france", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "The card has been removed.")

	assert.Equal(t, []string{"japan", "tokyo", "4"}, testutil.ReadLines(t, path))
}

func TestListMissingFile(t *testing.T) {
	out, err := execute(t, "", "list", filepath.Join(t.TempDir(), "nope.txt"))
	require.NoError(t, err)
	assert.Contains(t, out, "❌ Error reading cards")
}

func TestReview(t *testing.T) {
	path := testutil.WriteCardFile(t, "france", "paris", "0")

	out, err := execute(t, "rome\nparis\n", "review", path, "-n", "2")
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out, "Print the definition of \"france\":"))
	assert.Contains(t, out, "The hardest card is \"france\". You have 1 errors answering it.")
	assert.Contains(t, out, "Review session complete")
	assert.Equal(t, []string{"france", "paris", "1"}, testutil.ReadLines(t, path))
}

func TestReviewStopsAtEndOfInput(t *testing.T) {
	path := testutil.WriteCardFile(t, "france", "paris", "0")

	out, err := execute(t, "rome\n", "review", path, "-n", "5")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "Print the definition"))
	assert.Equal(t, []string{"france", "paris", "1"}, testutil.ReadLines(t, path))
}
