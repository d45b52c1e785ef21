package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/levelcheck/internal/store"
)

var reportCmd = &cobra.Command{
	Use:   "report [session-id]",
	Short: "Print the report of a finished quiz (default: the latest)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		narrate, _ := cmd.Flags().GetBool("narrate")
		answers, _ := cmd.Flags().GetBool("answers")
		id := ""
		if len(args) == 1 {
			id = args[0]
		}

		rt, err := newRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		data, err := rt.store.EventRepo().SessionReport(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			if id == "" {
				return fmt.Errorf("no finished quizzes yet")
			}
			return fmt.Errorf("no report for session %s", id)
		}
		if err != nil {
			return err
		}
		rep, err := store.DecodeReport(data)
		if err != nil {
			return fmt.Errorf("decode report: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprint(out, rep.Text())
		if answers {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Answer log")
			fmt.Fprint(out, rep.AnswerLog())
		}
		if !narrate {
			return nil
		}

		svc, err := rt.narrator(ctx)
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}
		if svc == nil {
			return fmt.Errorf("no LLM provider configured; set an API key such as GEMINI_API_KEY")
		}
		if t := rt.cfg.LLM.Timeout; t > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, t)
			defer cancel()
		}
		n, err := svc.Generate(ctx, rep)
		if err != nil {
			rt.logger.Warn("narrative failed", zap.String("session_id", rep.SessionID), zap.Error(err))
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "For parents")
		fmt.Fprintln(out, n.String())
		return nil
	},
}

func init() {
	reportCmd.Flags().Bool("narrate", false, "Add an LLM-written summary for parents")
	reportCmd.Flags().BoolP("answers", "a", false, "Include the answer log")
}

