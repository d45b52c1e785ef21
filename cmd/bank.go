package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/levelcheck/internal/itembank"
	"github.com/abhisek/levelcheck/internal/pool"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect and validate item banks",
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show pool sizes per topic and tier",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		bank, err := cfg.LoadBank()
		if err != nil {
			return fmt.Errorf("load bank: %w", err)
		}

		grades := []int{}
		if g, _ := cmd.Flags().GetInt("grade"); g != 0 {
			if g < itembank.MinGrade || g > itembank.MaxGrade {
				return fmt.Errorf("grade %d outside %d-%d", g, itembank.MinGrade, itembank.MaxGrade)
			}
			grades = append(grades, g)
		} else {
			for g := itembank.MinGrade; g <= itembank.MaxGrade; g++ {
				grades = append(grades, g)
			}
		}

		out := cmd.OutOrStdout()
		tiers := itembank.Tiers()
		for _, g := range grades {
			pools := pool.Build(bank, g)
			fmt.Fprintf(out, "Grade %d\n", g)
			fmt.Fprintf(out, "  %-28s", "Topic")
			for _, t := range tiers {
				fmt.Fprintf(out, "  %6s", t)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "  "+strings.Repeat("─", 28+8*len(tiers)))
			for _, s := range itembank.Subjects() {
				p := pools.For(s)
				for _, topic := range itembank.TopicsFor(s) {
					fmt.Fprintf(out, "  %-28s", topic.Label())
					for _, t := range tiers {
						fmt.Fprintf(out, "  %6d", p.Count(topic, t))
					}
					fmt.Fprintln(out)
				}
			}
			fmt.Fprintf(out, "  math %d, english %d\n\n", pools.Math.Size(), pools.English.Size())
		}
		return nil
	},
}

var bankValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a JSON bank file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := itembank.LoadFile(args[0])
		if err != nil {
			return err
		}
		questions := 0
		for _, p := range bank.AllPassages() {
			questions += len(p.Questions)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d items, %d passages, %d passage questions)\n",
			args[0], len(bank.All()), len(bank.AllPassages()), questions)
		return nil
	},
}

var bankExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the configured bank as a JSON bank file to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		bank, err := cfg.LoadBank()
		if err != nil {
			return fmt.Errorf("load bank: %w", err)
		}
		f := itembank.File{
			SchemaVersion: itembank.SchemaVersion,
			Items:         bank.All(),
			Passages:      bank.AllPassages(),
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(f)
	},
}

func init() {
	bankListCmd.Flags().IntP("grade", "g", 0, "Only show this grade")

	bankCmd.AddCommand(bankListCmd)
	bankCmd.AddCommand(bankValidateCmd)
	bankCmd.AddCommand(bankExportCmd)
}
