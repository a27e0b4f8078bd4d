package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/cli"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/common"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/i18n"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/storage"
)

func (a *app) historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded solve attempts",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the most recent attempts",
		RunE:  a.runHistoryList,
	}
	list.Flags().IntP("limit", "n", storage.DefaultListLimit, "number of attempts to show")
	list.Flags().Bool("json", false, "print JSON instead of a table")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single attempt with its solution",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runHistoryShow,
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Count attempts per outcome and locale",
		RunE:  a.runHistoryStats,
	}
	stats.Flags().Bool("json", false, "print JSON instead of a summary box")

	cmd.AddCommand(list, show, stats)
	return cmd
}

func (a *app) runHistoryList(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	asJSON, _ := cmd.Flags().GetBool("json")

	store, err := openStore(cmd.Context(), a.cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	records, err := store.ListRecent(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return cli.WriteJSON(out, records)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, cli.FormatInfo("No attempts recorded yet"))
		return nil
	}
	_, err = fmt.Fprint(out, cli.RenderHistoryTable(records))
	return err
}

func (a *app) runHistoryShow(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd.Context(), a.cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	record, err := store.GetRecord(cmd.Context(), args[0])
	if errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("no attempt with id %s", args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to load attempt: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf("%s · %s · %s",
		record.ID, record.CreatedAt.Local().Format("2006-01-02 15:04:05"), record.Locale)))

	if !record.Succeeded() {
		fmt.Fprintln(out, cli.FormatError(fmt.Sprintf("%s: %s", record.Code,
			i18n.ErrorMessage(common.Code(record.Code), record.Locale))))
		fmt.Fprintln(out, record.Question)
		return nil
	}

	var solution model.Solution
	if err := json.Unmarshal([]byte(record.Solution), &solution); err != nil {
		return fmt.Errorf("failed to decode stored solution: %w", err)
	}
	_, err = fmt.Fprintln(out, cli.RenderSolution(record.Question, &solution, record.Locale))
	return err
}

func (a *app) runHistoryStats(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	store, err := openStore(cmd.Context(), a.cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	stats, err := store.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to compute statistics: %w", err)
	}

	if asJSON {
		return cli.WriteJSON(cmd.OutOrStdout(), stats)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderStats(stats))
	return err
}
