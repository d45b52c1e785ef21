package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/levelcheck/internal/itembank"
	"github.com/abhisek/levelcheck/internal/session"
)

// errInputClosed is returned when input ends before the run finishes.
var errInputClosed = errors.New("input closed before the quiz finished")

var plainCmd = &cobra.Command{
	Use:   "plain",
	Short: "Run the quiz in line mode without the full-screen UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		grade, _ := cmd.Flags().GetInt("grade")
		if grade == 0 {
			grade = rt.cfg.Quiz.Grade
		}
		name, _ := cmd.Flags().GetString("name")
		return runPlain(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), rt, grade, name)
	},
}

func init() {
	plainCmd.Flags().IntP("grade", "g", 0, "Learner grade (2-8); prompted when unset")
	plainCmd.Flags().StringP("name", "n", "", "Learner name shown on the report")
}

// runPlain administers one run over a line-oriented reader and writer.
func runPlain(ctx context.Context, in io.Reader, out io.Writer, rt *runtime, grade int, name string) error {
	sc := bufio.NewScanner(in)

	if grade == 0 {
		g, err := promptGrade(sc, out)
		if err != nil {
			return err
		}
		grade = g
	}

	s, step, err := rt.engine.Start(ctx, grade, name)
	if err != nil {
		return err
	}
	rt.recorder.Started(ctx, s.ID, s.Grade, s.LearnerName, s.Target())

	fmt.Fprintf(out, "\n== %s ==\n", s.Phase().DisplayName())
	lastPassage := ""
	for step.Kind != session.StepRunFinished {
		it := step.Item
		if it.PassageID != "" && it.PassageID != lastPassage {
			fmt.Fprintf(out, "\n%s\n", it.PassageText)
			lastPassage = it.PassageID
		}

		n, total := s.Progress()
		fmt.Fprintf(out, "\n[%d/%d] %s\n", min(n, total), total, it.Stem)
		for i, c := range it.Choices {
			fmt.Fprintf(out, "  %c) %s\n", 'A'+i, c)
		}

		choice, err := readChoice(sc, out, it)
		if err != nil {
			rt.engine.Abandon(s)
			rt.recorder.Abandoned(ctx, s.ID, s.Grade, s.Answered(), s.Target())
			return err
		}

		step, err = rt.engine.SubmitAnswer(ctx, s, choice)
		if err != nil {
			rt.engine.Abandon(s)
			rt.recorder.Abandoned(ctx, s.ID, s.Grade, s.Answered(), s.Target())
			return err
		}
		rt.recorder.Answered(ctx, s.ID, *step.Feedback)

		if step.Kind == session.StepPhaseComplete {
			fmt.Fprintf(out, "\n%s section complete.\n\n== %s ==\n",
				step.Completed.DisplayName(), step.Phase.DisplayName())
		}
	}

	rt.recorder.Finished(ctx, step.Report)
	fmt.Fprintln(out)
	fmt.Fprint(out, step.Report.Text())
	return nil
}

func promptGrade(sc *bufio.Scanner, out io.Writer) (int, error) {
	for {
		fmt.Fprintf(out, "Grade (%d-%d): ", itembank.MinGrade, itembank.MaxGrade)
		if !sc.Scan() {
			return 0, errInputClosed
		}
		g, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
		if err == nil && g >= itembank.MinGrade && g <= itembank.MaxGrade {
			return g, nil
		}
		fmt.Fprintln(out, "Please enter a whole number in range.")
	}
}

// readChoice accepts an option letter or the option text.
func readChoice(sc *bufio.Scanner, out io.Writer, it *itembank.Item) (string, error) {
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			return "", errInputClosed
		}
		if c, ok := parseChoice(strings.TrimSpace(sc.Text()), it.Choices); ok {
			return c, nil
		}
		fmt.Fprintf(out, "Answer with a letter A-%c or the answer text.\n", 'A'+len(it.Choices)-1)
	}
}

// parseChoice reads a single letter within range as that option, even when
// some option's text is itself one letter. Any other input must match an
// option's text, case-insensitively.
func parseChoice(input string, choices []string) (string, bool) {
	if input == "" {
		return "", false
	}
	if len(input) == 1 {
		c := input[0] | 0x20
		if c >= 'a' && c <= 'z' && int(c-'a') < len(choices) {
			return choices[c-'a'], true
		}
	}
	for _, c := range choices {
		if strings.EqualFold(strings.TrimSpace(c), input) {
			return c, true
		}
	}
	return "", false
}
