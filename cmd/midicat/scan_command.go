package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"midicat/internal/catalogrun"
	"midicat/internal/config"
	"midicat/internal/failures"
	"midicat/internal/history"
	"midicat/internal/logging"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var assumeYes bool
	var quarantine bool
	var output string

	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "Catalog the MIDI files in a directory",
		Long: `Scan a directory for files named <difficulty>-<title>-<artist>.mid(i),
drop duplicates by title and artist, and write the catalog JSON newest first.

An existing catalog is only replaced after confirmation; the previous file is
kept as a timestamped .bak beside it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dir := "."
			if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
				dir = args[0]
			}
			outputPath := ""
			if strings.TrimSpace(output) != "" {
				expanded, err := config.ExpandPath(strings.TrimSpace(output))
				if err != nil {
					return failures.Wrap(failures.ErrConfiguration, "scan", "resolve output", output, err)
				}
				outputPath = expanded
			}

			stderr := cmd.ErrOrStderr()
			logger, closer, err := ctx.newLogger(stderr)
			if err != nil {
				return err
			}
			defer closer.Close()

			var store *history.Store
			if cfg.History.Enabled && !dryRun {
				store, err = history.Open(cfg.HistoryPath())
				if err != nil {
					logging.WarnWithContext(logger, "run history unavailable", "history_open_failed",
						logging.Error(err),
						logging.String("path", cfg.HistoryPath()),
						logging.String(logging.FieldErrorHint, "delete the history database if its schema is outdated"),
						logging.String(logging.FieldImpact, "this run will not be recorded"),
					)
					store = nil
				} else {
					defer store.Close()
				}
			}

			result, runErr := catalogrun.Run(cmd.Context(), catalogrun.Options{
				SourceDir:  dir,
				OutputPath: outputPath,
				DryRun:     dryRun,
				Quarantine: quarantine,
				Confirmer:  newConfirmer(assumeYes, cmd.InOrStdin(), stderr),
			}, catalogrun.Dependencies{
				Config:  cfg,
				Logger:  logger,
				History: store,
			})

			summaryOut := cmd.OutOrStdout()
			if dryRun {
				summaryOut = stderr
				if runErr == nil && result.Outcome == catalogrun.OutcomeDryRun {
					if _, err := cmd.OutOrStdout().Write(result.Encoded); err != nil {
						return fmt.Errorf("write catalog to stdout: %w", err)
					}
				}
			}
			printScanSummary(summaryOut, result, shouldColorize(summaryOut))
			return runErr
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the catalog to stdout without writing or moving anything")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Overwrite an existing catalog without asking")
	cmd.Flags().BoolVar(&quarantine, "quarantine", false, "Move rejected and duplicate files into the quarantine directory after writing")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Catalog path (default <dir>/<catalog.output_name>)")
	return cmd
}
