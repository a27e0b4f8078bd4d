package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/batch"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/cli"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"
)

func (a *app) batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Solve every question in a file",
		Long: `Solve the questions of a YAML file (a list of {question, locale} items)
or a text file with one question per line. Results are written as YAML and
recorded in the history database when history is enabled.`,
		Args: cobra.ExactArgs(1),
		RunE: a.runBatch,
	}

	cmd.Flags().IntP("concurrency", "c", batch.DefaultConcurrency, "number of questions solved at once")
	cmd.Flags().StringP("output", "o", "", "write results to this file instead of stdout")
	cmd.Flags().StringP("locale", "l", "", "locale of items that name none; defaults to solver.default_locale")
	cmd.Flags().Bool("no-progress", false, "hide the progress bar")

	return cmd
}

func (a *app) runBatch(cmd *cobra.Command, args []string) error {
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	output, _ := cmd.Flags().GetString("output")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	loc := a.cfg.Solver.DefaultLocale
	if flag, _ := cmd.Flags().GetString("locale"); flag != "" {
		loc = model.ParseLocale(flag)
	}

	items, err := batch.LoadItems(args[0])
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning("No questions found in "+args[0]))
		return nil
	}

	eng, _, err := newEngine(a.cfg)
	if err != nil {
		return err
	}

	store := openOptionalStore(cmd.Context(), a.cfg)
	opts := []batch.RunnerOption{
		batch.WithConcurrency(concurrency),
		batch.WithDefaultLocale(loc),
	}
	if store != nil {
		defer func() { _ = store.Close() }()
		opts = append(opts, batch.WithHistory(store))
	}

	stderr := cmd.ErrOrStderr()
	if !noProgress {
		bar := cli.NewProgress(stderr, len(items), "Solving problems...")
		opts = append(opts, batch.OnResult(func(batch.Result) {
			if err := bar.Add(1); err != nil {
				slog.Warn("Failed to update progress bar", "error", err)
			}
		}))
	}

	interrupts := cli.NewInterruptHandler(stderr, "Batch")
	ctx := interrupts.HandleInterrupts(cmd.Context(), store != nil)

	slog.Info("Starting batch", "file", args[0], "items", len(items), "concurrency", concurrency)
	start := time.Now()

	results, err := batch.NewRunner(eng, opts...).Run(ctx, items)
	if err != nil {
		if interrupts.WasInterrupted() {
			return nil
		}
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if err := batch.WriteResults(out, results); err != nil {
		return err
	}

	fmt.Fprintln(stderr, cli.RenderBatchSummary(batch.Summarize(results), time.Since(start)))
	if output != "" {
		fmt.Fprintln(stderr, cli.FormatSuccess("Results written to "+output))
	}
	return nil
}
