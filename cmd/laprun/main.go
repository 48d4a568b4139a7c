package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"laprun/internal/bootstrap"
	"laprun/internal/platform/config"
	apperrors "laprun/internal/platform/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, apperrors.UserMessage(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "laprun",
		Short:         "Lap-based interval timer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir(), "data directory (database, journal, laprun.yaml)")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newRunCmd(&dataDir))
	root.AddCommand(newPlanCmd(&dataDir))
	root.AddCommand(newTaskCmd(&dataDir))
	root.AddCommand(newLapCmd(&dataDir))
	root.AddCommand(newCategoryCmd(&dataDir))
	root.AddCommand(newHistoryCmd(&dataDir))
	return root
}

func loadConfig(dataDir string) (config.Config, error) {
	return config.New(dataDir)
}

// withApp builds the application, runs fn and closes the stores.
func withApp(dataDir string, fn func(app *bootstrap.App) error) error {
	cfg, err := loadConfig(dataDir)
	if err != nil {
		return err
	}
	return withConfig(cfg, fn)
}

func withConfig(cfg config.Config, fn func(app *bootstrap.App) error) (err error) {
	app, err := bootstrap.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(app)
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the laprun terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*dataDir)
			if err != nil {
				return err
			}
			// The alternate screen owns the terminal; log to the file only.
			cfg.Log.Console = false
			return withConfig(cfg, bootstrap.RunTUI)
		},
	}
}

func newCategoryCmd(dataDir *string) *cobra.Command {
	category := &cobra.Command{Use: "category", Short: "Task categories"}
	category.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the fixed category table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				for _, c := range app.TaskCLI.Categories(cmd.Context()) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n", c.ID, c.Icon, c.Name, c.Color)
				}
				return nil
			})
		},
	})
	return category
}

// parseSeconds accepts plain seconds ("90") or a Go duration ("1m30s").
func parseSeconds(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: duration %q", apperrors.ErrInvalidInput, raw)
	}
	if d%time.Second != 0 {
		return 0, fmt.Errorf("%w: duration %q is not whole seconds", apperrors.ErrInvalidInput, raw)
	}
	return int(d / time.Second), nil
}

func parseID(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(raw), "#"))
	if err != nil {
		return 0, fmt.Errorf("%w: task id %q", apperrors.ErrInvalidInput, raw)
	}
	return n, nil
}
