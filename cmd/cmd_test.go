package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/abhisek/levelcheck/internal/config"
	"github.com/abhisek/levelcheck/internal/store"
)

func testRuntime(t *testing.T, dbPath string) *runtime {
	t.Helper()
	s, err := store.Open(dbPath)
	require.NoError(t, err)
	cfg := config.Default()
	cfg.Quiz.Seed = 42
	rt, err := buildRuntime(cfg, s, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(rt.Close)
	return rt
}

// isolate points config and data lookups at temp dirs.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	for _, k := range []string{config.EnvDB, config.EnvBank, config.EnvLogFile, config.EnvLLMProvider, config.EnvSeed} {
		t.Setenv(k, "")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRunPlain_CompletesAndRecords(t *testing.T) {
	db := filepath.Join(t.TempDir(), "lc.db")
	rt := testRuntime(t, db)
	ctx := context.Background()

	in := strings.NewReader("9\n3\n" + strings.Repeat("b\n", 60))
	var out bytes.Buffer
	require.NoError(t, runPlain(ctx, in, &out, rt, 0, "Riley"))

	text := out.String()
	assert.Contains(t, text, "Please enter a whole number in range.")
	assert.Contains(t, text, "Diagnostic report for Riley (grade 3)")
	assert.Contains(t, text, "Math section complete.")

	sessions, err := rt.store.EventRepo().RecentSessions(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, 3, sessions[0].Grade)
	assert.Equal(t, "Riley", sessions[0].LearnerName)

	answers, err := rt.store.EventRepo().SessionAnswers(ctx, sessions[0].SessionID)
	require.NoError(t, err)
	assert.Len(t, answers, sessions[0].Answered)

	counts, err := rt.store.RotationRepo().Summary(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, counts, "served items are remembered")
}

func TestRunPlain_InputClosedAbandons(t *testing.T) {
	rt := testRuntime(t, filepath.Join(t.TempDir(), "lc.db"))
	ctx := context.Background()

	var out bytes.Buffer
	err := runPlain(ctx, strings.NewReader("a\nzz\n"), &out, rt, 4, "")
	assert.True(t, errors.Is(err, errInputClosed))
	assert.Contains(t, out.String(), "Answer with a letter")

	sessions, err := rt.store.EventRepo().RecentSessions(ctx, store.QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, sessions, "abandoned runs have no report")
}

func TestParseChoice(t *testing.T) {
	choices := []string{"2", "4", "6", "8"}
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"a", "2", true},
		{"D", "8", true},
		{"4", "4", true},
		{"8", "8", true},
		{"e", "", false},
		{"", "", false},
		{"five", "", false},
	}
	for _, tt := range tests {
		got, ok := parseChoice(tt.input, choices)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseChoice(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}

	words := []string{"Nectar", "Wax", "Water", "Seeds"}
	got, ok := parseChoice("water", words)
	assert.True(t, ok)
	assert.Equal(t, "Water", got)

	// A single letter is always an option letter, even when an option's
	// text is a letter; that option is picked by its own letter.
	letters := []string{"b", "a", "d", "c"}
	got, ok = parseChoice("b", letters)
	assert.True(t, ok)
	assert.Equal(t, "a", got)
	got, ok = parseChoice("A", letters)
	assert.True(t, ok)
	assert.Equal(t, "b", got)
}

func TestWriteUsage(t *testing.T) {
	var out bytes.Buffer
	writeUsage(&out,
		[]store.LLMUsage{{Key: "narrative", Calls: 3, Failures: 1, InputTokens: 1000, OutputTokens: 500, AvgLatencyMs: 800}},
		[]store.LLMUsage{
			{Key: "gpt-4o-mini", Calls: 2, InputTokens: 600, OutputTokens: 300},
			{Key: "homebrew-model", Calls: 1, InputTokens: 400, OutputTokens: 200},
		})

	text := out.String()
	assert.Contains(t, text, "narrative")
	assert.Contains(t, text, "1500")
	assert.Contains(t, text, "TOTAL (partial)")
	assert.Contains(t, text, "Pricing unavailable for: homebrew-model")
}

func TestCommands(t *testing.T) {
	isolate(t)
	db := filepath.Join(t.TempDir(), "cli.db")

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "levelcheck")
	assert.Contains(t, out, "bank schema 1.0.0 (reads v1.x)")

	out, err = execute(t, "--db", db, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No finished quizzes yet.")

	_, err = execute(t, "--db", db, "report")
	assert.Error(t, err)

	out, err = execute(t, "--db", db, "rotation", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "No items served yet.")

	out, err = execute(t, "bank", "list", "--grade", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Grade 5")
	assert.Contains(t, out, "Fractions")
}

func TestBankExportValidate(t *testing.T) {
	isolate(t)

	out, err := execute(t, "bank", "export")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "bank.json")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o644))

	out, err = execute(t, "bank", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, ": ok (")
}

func TestPlainThenReportAndReset(t *testing.T) {
	isolate(t)
	db := filepath.Join(t.TempDir(), "flow.db")

	rootCmd.SetIn(strings.NewReader(strings.Repeat("a\n", 60)))
	t.Cleanup(func() { rootCmd.SetIn(nil) })
	out, err := execute(t, "--db", db, "plain", "--grade", "6", "--name", "Kai")
	require.NoError(t, err)
	assert.Contains(t, out, "Diagnostic report for Kai (grade 6)")

	out, err = execute(t, "--db", db, "report", "--answers")
	require.NoError(t, err)
	assert.Contains(t, out, "Kai")
	assert.Contains(t, out, "Answer log")

	out, err = execute(t, "--db", db, "rotation", "reset", "--all")
	require.NoError(t, err)
	assert.NotContains(t, out, "Cleared 0 ")

	out, err = execute(t, "--db", db, "rotation", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "No items served yet.")
}
