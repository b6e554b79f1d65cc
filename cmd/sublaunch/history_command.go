package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"sublaunch/internal/history"
)

type runView struct {
	ID          string   `json:"id"`
	StartedAt   string   `json:"started_at"`
	Kind        string   `json:"kind"`
	Interpreter string   `json:"interpreter"`
	Args        []string `json:"args"`
	ExitCode    int      `json:"exit_code"`
	Duration    string   `json:"duration"`
	Error       string   `json:"error,omitempty"`
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent launcher runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return errors.New("run history is disabled; set history.enabled = true in the config file")
			}
			if limit <= 0 {
				limit = cfg.History.ListLimit
			}

			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			views := make([]runView, 0, len(runs))
			for _, run := range runs {
				views = append(views, runView{
					ID:          run.ID,
					StartedAt:   run.StartedAt.Local().Format(time.DateTime),
					Kind:        run.Kind,
					Interpreter: run.Interpreter,
					Args:        run.Args,
					ExitCode:    run.ExitCode,
					Duration:    run.Duration().Round(time.Second).String(),
					Error:       run.Error,
				})
			}
			if asJSON {
				return writeJSON(cmd, views)
			}

			out := cmd.OutOrStdout()
			if len(views) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			rows := make([][]string, 0, len(views))
			for _, v := range views {
				exit := strconv.Itoa(v.ExitCode)
				if v.Error != "" {
					exit = "failed to start"
				}
				rows = append(rows, []string{v.StartedAt, v.Kind, v.Interpreter, strings.Join(v.Args, " "), exit, v.Duration})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Started", "Kind", "Interpreter", "Arguments", "Exit", "Duration"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of runs to show (defaults to history.list_limit)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
