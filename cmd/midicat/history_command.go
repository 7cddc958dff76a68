package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"midicat/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded catalog runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !cfg.History.Enabled {
				fmt.Fprintln(out, "Run history is disabled ([history] enabled = false)")
				return nil
			}

			store, err := history.Open(cfg.HistoryPath())
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet")
				return nil
			}
			fmt.Fprintln(out, renderTable(historyTable(runs, time.Now())))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	return cmd
}

func historyTable(runs []history.Run, now time.Time) tableSpec {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		started := run.StartedAt.Local()
		rows = append(rows, []string{
			fmt.Sprintf("%s (%s)", started.Format("2006-01-02 15:04:05"), humanize.RelTime(started, now, "ago", "from now")),
			run.Outcome,
			run.SourceDir,
			strconv.Itoa(run.Scanned),
			strconv.Itoa(run.FileCount),
			strconv.Itoa(run.Rejected),
			strconv.Itoa(run.Duplicates),
			run.Duration().Round(time.Millisecond).String(),
		})
	}
	return tableSpec{
		Headers: []string{"Started", "Outcome", "Directory", "Scanned", "Catalogued", "Rejected", "Duplicates", "Took"},
		Rows:    rows,
		Aligns:  []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
	}
}
