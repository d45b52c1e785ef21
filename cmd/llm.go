package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/levelcheck/internal/llm"
	"github.com/abhisek/levelcheck/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM providers and recorded requests",
}

var llmProvidersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List supported providers and which one would be used",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, p := range llm.Providers() {
			if p == llm.ProviderMock {
				continue
			}
			c := llm.ConfigFor(p, "")
			key := "no key"
			if c.APIKey != "" {
				key = "key set"
			}
			fmt.Fprintf(out, "%-12s  %-30s  %s\n", p, c.Model, key)
		}

		switch {
		case cfg.LLM.Provider != "":
			fmt.Fprintf(out, "\nConfigured provider: %s\n", cfg.LLM.Provider)
		default:
			if c, ok := llm.Discover(); ok {
				fmt.Fprintf(out, "\nDiscovered provider: %s\n", c.Provider)
			} else {
				fmt.Fprintln(out, "\nNo provider available; parent summaries are disabled.")
			}
		}
		return nil
	},
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMRequests(cmd.Context(), purpose, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM requests recorded.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-10s  %-12s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"Seq", "Timestamp", "Purpose", "Provider", "Model", "In", "Out", "Ms", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 110))

		for _, e := range events {
			ok := "✓"
			if !e.Success {
				ok = "✗ " + truncate(e.ErrorMessage, 40)
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-10s  %-12s  %-28s  %-6d  %-6d  %-7d  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				e.Provider,
				truncate(e.Model, 28),
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(byPurpose) == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}
		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}

		writeUsage(out, byPurpose, byModel)
		return nil
	},
}

func writeUsage(out io.Writer, byPurpose, byModel []store.LLMUsage) {
	rule := strings.Repeat("─", 76)

	fmt.Fprintln(out, "Usage by Purpose")
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "%-16s  %6s  %6s  %10s  %10s  %10s  %8s\n",
		"Purpose", "Calls", "Failed", "Input", "Output", "Total", "Avg Ms")
	fmt.Fprintln(out, rule)

	var calls, in, outTok int
	for _, u := range byPurpose {
		fmt.Fprintf(out, "%-16s  %6d  %6d  %10d  %10d  %10d  %8d\n",
			truncate(u.Key, 16), u.Calls, u.Failures, u.InputTokens, u.OutputTokens,
			u.InputTokens+u.OutputTokens, u.AvgLatencyMs)
		calls += u.Calls
		in += u.InputTokens
		outTok += u.OutputTokens
	}
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "%-16s  %6d  %6s  %10d  %10d  %10d\n", "TOTAL", calls, "", in, outTok, in+outTok)

	if len(byModel) == 0 {
		return
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Estimated Cost (USD)")
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
	fmt.Fprintln(out, rule)

	var total float64
	var unknown []string
	for _, u := range byModel {
		cost, ok := llm.EstimateCost(u.Key, u.InputTokens, u.OutputTokens)
		if !ok {
			unknown = append(unknown, u.Key)
			fmt.Fprintf(out, "%-32s  %6d  %10d  %10d  %10s\n",
				truncate(u.Key, 32), u.Calls, u.InputTokens, u.OutputTokens, "?")
			continue
		}
		total += cost
		fmt.Fprintf(out, "%-32s  %6d  %10d  %10d  %10s\n",
			truncate(u.Key, 32), u.Calls, u.InputTokens, u.OutputTokens, formatCost(cost))
	}

	fmt.Fprintln(out, rule)
	label := "TOTAL"
	if len(unknown) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(out, "%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(total))
	if len(unknown) > 0 {
		fmt.Fprintf(out, "\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. narrative)")

	llmCmd.AddCommand(llmProvidersCmd)
	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
