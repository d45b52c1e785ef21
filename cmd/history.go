package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/levelcheck/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List finished quizzes",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		sessions, err := s.EventRepo().RecentSessions(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No finished quizzes yet.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-16s  %-16s  %5s  %8s  %5s  %5s\n",
			"Session", "Finished", "Learner", "Grade", "Answered", "Score", "Level")
		fmt.Fprintln(out, strings.Repeat("─", 104))
		for _, r := range sessions {
			name := r.LearnerName
			if name == "" {
				name = "-"
			}
			fmt.Fprintf(out, "%-36s  %-16s  %-16s  %5d  %4d/%-3d  %4d%%  %5.1f\n",
				r.SessionID, r.Timestamp.Local().Format("2006-01-02 15:04"), truncate(name, 16),
				r.Grade, r.Answered, r.Target, r.Percentage, r.EstimatedLevel)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of quizzes to show")
}
