package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/levelcheck/internal/itembank"
	"github.com/abhisek/levelcheck/internal/store"
)

var rotationCmd = &cobra.Command{
	Use:   "rotation",
	Short: "Inspect or clear the items already served per grade",
}

var rotationShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show how many items have been served per grade and phase",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		counts, err := s.RotationRepo().Summary(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(counts) == 0 {
			fmt.Fprintln(out, "No items served yet.")
			return nil
		}

		fmt.Fprintf(out, "%-6s  %-8s  %6s  %s\n", "Grade", "Phase", "Seen", "Last served")
		fmt.Fprintln(out, strings.Repeat("─", 44))
		for _, c := range counts {
			fmt.Fprintf(out, "%-6d  %-8s  %6d  %s\n",
				c.Grade, c.Phase.DisplayName(), c.Count, c.LastSeen.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var rotationResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget served items so they can be asked again",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		grade, _ := cmd.Flags().GetInt("grade")
		phaseName, _ := cmd.Flags().GetString("phase")
		if !all && grade == 0 {
			return fmt.Errorf("either --grade or --all is required")
		}

		phases := itembank.Subjects()
		if phaseName != "" {
			p, err := itembank.ParseSubject(phaseName)
			if err != nil {
				return err
			}
			phases = []itembank.Subject{p}
		}

		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		targets, err := resetTargets(cmd, s, all, grade, phases)
		if err != nil {
			return err
		}

		repo := s.RotationRepo()
		total := 0
		for _, t := range targets {
			n, err := repo.Reset(cmd.Context(), t.Grade, t.Phase)
			if err != nil {
				return err
			}
			total += n
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d served items.\n", total)
		return nil
	},
}

// resetTargets lists the grade and phase pairs a reset applies to.
func resetTargets(cmd *cobra.Command, s *store.Store, all bool, grade int, phases []itembank.Subject) ([]store.RotationCount, error) {
	if !all {
		if grade < itembank.MinGrade || grade > itembank.MaxGrade {
			return nil, fmt.Errorf("grade %d outside %d-%d", grade, itembank.MinGrade, itembank.MaxGrade)
		}
		out := make([]store.RotationCount, 0, len(phases))
		for _, p := range phases {
			out = append(out, store.RotationCount{Grade: grade, Phase: p})
		}
		return out, nil
	}

	counts, err := s.RotationRepo().Summary(cmd.Context())
	if err != nil {
		return nil, err
	}
	var out []store.RotationCount
	for _, c := range counts {
		for _, p := range phases {
			if c.Phase == p {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

func init() {
	rotationResetCmd.Flags().IntP("grade", "g", 0, "Grade to reset")
	rotationResetCmd.Flags().StringP("phase", "p", "", "Only reset this phase (math or english)")
	rotationResetCmd.Flags().Bool("all", false, "Reset every grade")

	rotationCmd.AddCommand(rotationShowCmd)
	rotationCmd.AddCommand(rotationResetCmd)
}
