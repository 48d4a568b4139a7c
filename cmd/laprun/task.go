package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"laprun/internal/bootstrap"
	taskdto "laprun/internal/modules/task/dto"
	"laprun/internal/platform/timefmt"
)

type taskFlags struct {
	title       string
	description string
	category    string
	duration    string
	interval    int
	growth      int
	max         int
}

func (f *taskFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "task title")
	cmd.Flags().StringVar(&f.description, "desc", "", "task description")
	cmd.Flags().StringVar(&f.category, "category", "", "category id (cat-0..cat-9)")
	cmd.Flags().StringVar(&f.duration, "duration", "", "duration in seconds or as 1m30s")
	cmd.Flags().IntVar(&f.interval, "interval", 1, "run every N laps (1..99)")
	cmd.Flags().IntVar(&f.growth, "growth", 0, "percent change per occurrence (-99..99)")
	cmd.Flags().IntVar(&f.max, "max", 0, "maximum occurrences per session (0 = unlimited)")
}

// apply copies the flags that were set onto input.
func (f *taskFlags) apply(cmd *cobra.Command, input *taskdto.TaskInput) error {
	changed := cmd.Flags().Changed
	if changed("title") {
		input.Title = f.title
	}
	if changed("desc") {
		input.Description = f.description
	}
	if changed("category") {
		input.CategoryID = f.category
	}
	if changed("duration") {
		secs, err := parseSeconds(f.duration)
		if err != nil {
			return err
		}
		input.Duration = secs
	}
	if changed("interval") {
		input.LapInterval = f.interval
	}
	if changed("growth") {
		input.GrowthFactor = f.growth
	}
	if changed("max") {
		input.MaxOccurrences = f.max
	}
	return nil
}

func newTaskCmd(dataDir *string) *cobra.Command {
	task := &cobra.Command{Use: "task", Short: "Manage the task repository"}

	var add taskFlags
	addCmd := &cobra.Command{
		Use:   "add --title <title> --duration <d>",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := taskdto.TaskInput{LapInterval: 1}
			if err := add.apply(cmd, &input); err != nil {
				return err
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.TaskCLI.Create(cmd.Context(), input)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created #%d %s\n", out.ID, out.Title)
				return nil
			})
		},
	}
	add.register(addCmd)
	task.AddCommand(addCmd)

	var edit taskFlags
	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task; only the given flags change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				current, err := app.TaskCLI.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				input := taskdto.TaskInput{
					Title:          current.Title,
					Description:    current.Description,
					CategoryID:     current.CategoryID,
					Duration:       current.Duration,
					LapInterval:    current.LapInterval,
					GrowthFactor:   current.GrowthFactor,
					MaxOccurrences: current.MaxOccurrences,
				}
				if err := edit.apply(cmd, &input); err != nil {
					return err
				}
				out, err := app.TaskCLI.Update(cmd.Context(), id, input)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated #%d %s\n", out.ID, out.Title)
				return nil
			})
		},
	}
	edit.register(editCmd)
	task.AddCommand(editCmd)

	var sortField, sortOrder string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				tasks, err := app.TaskCLI.List(cmd.Context(), sortField, sortOrder)
				if err != nil {
					return err
				}
				if len(tasks) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no tasks")
					return nil
				}
				for _, t := range tasks {
					printTaskLine(cmd.OutOrStdout(), t)
				}
				return nil
			})
		},
	}
	listCmd.Flags().StringVar(&sortField, "sort", "", "id|title|duration|category|lapInterval|maxOccurrences|growthFactor")
	listCmd.Flags().StringVar(&sortOrder, "order", "", "asc|desc")
	task.AddCommand(listCmd)

	task.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				t, err := app.TaskCLI.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "#%d %s\n", t.ID, t.Title)
				if t.Description != "" {
					_, _ = fmt.Fprintf(w, "description: %s\n", t.Description)
				}
				_, _ = fmt.Fprintf(w, "category:    %s %s\n", t.CategoryIcon, t.CategoryName)
				_, _ = fmt.Fprintf(w, "duration:    %s\n", timefmt.Format(t.Duration))
				_, _ = fmt.Fprintf(w, "interval:    every %d lap(s)\n", t.LapInterval)
				_, _ = fmt.Fprintf(w, "growth:      %+d%%\n", t.GrowthFactor)
				_, _ = fmt.Fprintf(w, "max:         %d\n", t.MaxOccurrences)
				_, _ = fmt.Fprintf(w, "in lap:      %t\n", t.InLap)
				return nil
			})
		},
	})

	var deleteAll bool
	deleteCmd := &cobra.Command{
		Use:   "delete <id> | --all",
		Short: "Delete a task (also removes it from the lap playlist)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if deleteAll {
				return withApp(*dataDir, func(app *bootstrap.App) error {
					if err := app.TaskCLI.DeleteAll(cmd.Context()); err != nil {
						return err
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "deleted all tasks")
					return nil
				})
			}
			if len(args) != 1 {
				return fmt.Errorf("task id or --all is required")
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				if err := app.TaskCLI.Delete(cmd.Context(), id); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted #%d\n", id)
				return nil
			})
		},
	}
	deleteCmd.Flags().BoolVar(&deleteAll, "all", false, "delete every task and clear the lap playlist")
	task.AddCommand(deleteCmd)

	task.AddCommand(&cobra.Command{
		Use:   "duplicate <id>",
		Short: "Copy a task under a new id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.TaskCLI.Duplicate(cmd.Context(), id)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "duplicated #%d as #%d\n", id, out.ID)
				return nil
			})
		},
	})

	task.AddCommand(&cobra.Command{
		Use:   "seed-demo",
		Short: "Replace all tasks with the demo set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				if err := app.TaskCLI.SeedDemo(cmd.Context()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "demo tasks loaded")
				return nil
			})
		},
	})
	return task
}

func newLapCmd(dataDir *string) *cobra.Command {
	lap := &cobra.Command{Use: "lap", Short: "Edit the lap playlist"}

	printLap := func(w io.Writer, out taskdto.LapOutput) {
		if len(out.Tasks) == 0 {
			_, _ = fmt.Fprintln(w, "lap playlist is empty")
			return
		}
		for i, t := range out.Tasks {
			_, _ = fmt.Fprintf(w, "%2d. ", i+1)
			printTaskLine(w, t)
		}
		_, _ = fmt.Fprintf(w, "total: %s\n", timefmt.Format(out.TotalSeconds))
	}

	lap.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show the lap playlist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.TaskCLI.Lap(cmd.Context())
				if err != nil {
					return err
				}
				printLap(cmd.OutOrStdout(), out)
				return nil
			})
		},
	})

	var addAll bool
	addCmd := &cobra.Command{
		Use:   "add <id>... | --all",
		Short: "Append tasks to the lap playlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !addAll && len(args) == 0 {
				return fmt.Errorf("task id or --all is required")
			}
			ids := make([]int, 0, len(args))
			for _, raw := range args {
				id, err := parseID(raw)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				var out taskdto.LapOutput
				var err error
				if addAll {
					out, err = app.TaskCLI.AddAllToLap(cmd.Context())
				}
				for _, id := range ids {
					if err != nil {
						break
					}
					out, err = app.TaskCLI.AddToLap(cmd.Context(), id)
				}
				if err != nil {
					return err
				}
				printLap(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	addCmd.Flags().BoolVar(&addAll, "all", false, "add every task not yet in the playlist")
	lap.AddCommand(addCmd)

	lap.AddCommand(&cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a task from the lap playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.TaskCLI.RemoveFromLap(cmd.Context(), id)
				if err != nil {
					return err
				}
				printLap(cmd.OutOrStdout(), out)
				return nil
			})
		},
	})

	lap.AddCommand(&cobra.Command{
		Use:   "move <id> top|bottom|<position>",
		Short: "Reorder a task in the lap playlist (positions start at 1)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				position, err := movePosition(cmd, app, args[1])
				if err != nil {
					return err
				}
				out, err := app.TaskCLI.MoveInLap(cmd.Context(), id, position)
				if err != nil {
					return err
				}
				printLap(cmd.OutOrStdout(), out)
				return nil
			})
		},
	})

	lap.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Empty the lap playlist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.TaskCLI.ClearLap(cmd.Context())
				if err != nil {
					return err
				}
				printLap(cmd.OutOrStdout(), out)
				return nil
			})
		},
	})
	return lap
}

func movePosition(cmd *cobra.Command, app *bootstrap.App, raw string) (int, error) {
	switch raw {
	case "top":
		return 0, nil
	case "bottom":
		out, err := app.TaskCLI.Lap(cmd.Context())
		if err != nil {
			return 0, err
		}
		return len(out.Tasks) - 1, nil
	}
	pos, err := parseID(raw)
	if err != nil {
		return 0, fmt.Errorf("position must be top, bottom or a number: %w", err)
	}
	return pos - 1, nil
}

func printTaskLine(w io.Writer, t taskdto.TaskOutput) {
	mark := " "
	if t.InLap {
		mark = "*"
	}
	_, _ = fmt.Fprintf(w, "%s #%-3d %s %-28s %8s  every %d  %+d%%  max %d\n",
		mark, t.ID, t.CategoryIcon, t.Title, timefmt.Format(t.Duration),
		t.LapInterval, t.GrowthFactor, t.MaxOccurrences)
}
