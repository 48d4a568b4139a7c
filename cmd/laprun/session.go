package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"laprun/internal/bootstrap"
	sessiondto "laprun/internal/modules/session/dto"
	"laprun/internal/platform/timefmt"
)

// consoleObserver prints one line per playlist entry and the final summary.
type consoleObserver struct {
	mu        sync.Mutex
	out       io.Writer
	lastIndex int
	lastState string
	done      chan sessiondto.SummaryOutput
}

func newConsoleObserver(out io.Writer) *consoleObserver {
	return &consoleObserver{out: out, lastIndex: -1, done: make(chan sessiondto.SummaryOutput, 1)}
}

func (o *consoleObserver) OnProgress(p sessiondto.ProgressOutput) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if p.Index == o.lastIndex && p.State == o.lastState {
		return
	}
	o.lastIndex, o.lastState = p.Index, p.State
	if p.Stopped() {
		return
	}
	_, _ = fmt.Fprintf(o.out, "[%d/%d] lap %d/%d  %s %s  %s (%d of %d)  session %d%%  %s\n",
		p.Index+1, p.Total, p.ActiveLap, p.TotalActiveLaps,
		p.CategoryIcon, p.Title, timefmt.Format(p.Duration),
		p.Occurrence, p.TotalOccurrences, p.SessionPercent, p.State)
}

func (o *consoleObserver) OnEnd(s sessiondto.SummaryOutput) {
	select {
	case o.done <- s:
	default:
	}
}

func newRunCmd(dataDir *string) *cobra.Command {
	var laps int
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a session in the foreground until it finishes or is interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				if !cmd.Flags().Changed("laps") {
					laps = app.Config.DefaultLaps
				}
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				observer := newConsoleObserver(cmd.OutOrStdout())
				unsubscribe := app.SessionCLI.Subscribe(observer)
				defer unsubscribe()

				if _, err := app.SessionCLI.PlayPause(ctx, laps); err != nil {
					return err
				}
				var summary sessiondto.SummaryOutput
				select {
				case summary = <-observer.done:
				case <-ctx.Done():
					if _, err := app.SessionCLI.Stop(context.Background()); err != nil {
						return err
					}
					summary = <-observer.done
				}
				printSummary(cmd.OutOrStdout(), summary)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&laps, "laps", 1, "number of laps (defaults to default_laps in laprun.yaml)")
	return cmd
}

func newPlanCmd(dataDir *string) *cobra.Command {
	var laps int
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the expanded session playlist without starting it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				if !cmd.Flags().Changed("laps") {
					laps = app.Config.DefaultLaps
				}
				plan, err := app.SessionCLI.Plan(cmd.Context(), laps)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				for _, e := range plan.Entries {
					change := ""
					if e.Duration != e.BaseDuration {
						change = fmt.Sprintf(" (base %s)", timefmt.Format(e.BaseDuration))
					}
					_, _ = fmt.Fprintf(w, "%3d  +%-9s lap %d/%d  %s %s  %s%s  %d of %d\n",
						e.Index+1, timefmt.Clock(e.StartsAt), e.ActiveLap, plan.TotalActiveLaps,
						e.CategoryIcon, e.Title, timefmt.Format(e.Duration), change,
						e.Occurrence, e.TotalOccurrences)
				}
				_, _ = fmt.Fprintf(w, "%d entries, %d of %d laps active, total %s\n",
					len(plan.Entries), plan.TotalActiveLaps, plan.Laps, timefmt.Format(plan.TotalSeconds))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&laps, "laps", 1, "number of laps (defaults to default_laps in laprun.yaml)")
	return cmd
}

func newHistoryCmd(dataDir *string) *cobra.Command {
	history := &cobra.Command{Use: "history", Short: "Recorded sessions"}
	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent sessions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				sessions, err := app.SessionCLI.History(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(sessions) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
					return nil
				}
				for _, s := range sessions {
					outcome := "finished"
					if !s.Finished {
						outcome = "stopped"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %-8s  %d lap(s)  %s / %s  %d/%d entries  %s\n",
						s.EndedAt.Local().Format("2006-01-02 15:04"), outcome, s.TotalLaps,
						timefmt.Format(s.CompletedSeconds), timefmt.Format(s.PlannedSeconds),
						s.EntriesCompleted, s.EntriesTotal, s.SessionID)
				}
				return nil
			})
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 20, "maximum sessions to show (0 = all)")
	history.AddCommand(listCmd)
	return history
}

func printSummary(w io.Writer, s sessiondto.SummaryOutput) {
	outcome := "finished"
	if !s.Finished {
		outcome = "stopped"
	}
	_, _ = fmt.Fprintf(w, "session %s: %s of %s, %d/%d entries\n",
		outcome, timefmt.Format(s.CompletedSeconds), timefmt.Format(s.PlannedSeconds),
		s.EntriesCompleted, s.EntriesTotal)
	for _, t := range s.Tasks {
		_, _ = fmt.Fprintf(w, "  %-28s %3dx  %s\n", t.Title, t.Occurrences, timefmt.Format(t.Seconds))
	}
	if s.JournalPath != "" {
		_, _ = fmt.Fprintf(w, "journal: %s\n", s.JournalPath)
	}
}
