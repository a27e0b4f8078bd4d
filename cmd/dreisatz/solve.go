package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/batch"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/cli"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/common"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"
)

func (a *app) solveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve [question]",
		Short: "Solve a single rule-of-three question",
		Long: `Solve one word problem and print the worked solution.

The question is read from standard input when it is omitted or given as "-".`,
		Example: `  dreisatz solve "3 Äpfel kosten 6 Euro. Was kosten 5 Äpfel?"
  dreisatz solve --locale en --format json "3 apples cost 6 euros. How much do 5 apples cost?"
  echo "6 Arbeiter brauchen 12 Tage. Wie lange brauchen 8 Arbeiter?" | dreisatz solve -`,
		RunE: a.runSolve,
	}

	cmd.Flags().StringP("locale", "l", "", "output language (de, en, zh); defaults to solver.default_locale")
	cmd.Flags().StringP("format", "f", cli.FormatPretty, "output format ("+strings.Join(cli.Formats, ", ")+")")
	cmd.Flags().Bool("raw", false, "print markdown without terminal rendering")

	return cmd
}

func (a *app) runSolve(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	format, _ := cmd.Flags().GetString("format")
	raw, _ := cmd.Flags().GetBool("raw")
	if !slices.Contains(cli.Formats, format) {
		return fmt.Errorf("unknown format %q", format)
	}

	loc := a.cfg.Solver.DefaultLocale
	if flag, _ := cmd.Flags().GetString("locale"); flag != "" {
		loc = model.ParseLocale(flag)
	}

	question := strings.Join(args, " ")
	if question == "" || question == "-" {
		var err error
		question, err = cli.NewNonBlockingReader(cmd.InOrStdin()).ReadQuestion(ctx)
		if err != nil {
			return fmt.Errorf("failed to read question: %w", err)
		}
	}

	eng, _, err := newEngine(a.cfg)
	if err != nil {
		return err
	}

	opts := []batch.RunnerOption{batch.WithConcurrency(1), batch.WithDefaultLocale(loc)}
	if store := openOptionalStore(ctx, a.cfg); store != nil {
		defer func() { _ = store.Close() }()
		opts = append(opts, batch.WithHistory(store))
	}

	results, err := batch.NewRunner(eng, opts...).Run(ctx, []batch.Item{{Question: question}})
	if err != nil {
		return err
	}
	result := results[0]

	out := cmd.OutOrStdout()
	if !result.Succeeded() {
		if format == cli.FormatJSON {
			_ = cli.WriteJSON(out, map[string]any{
				"success": false,
				"error":   map[string]string{"code": string(result.Code), "message": result.Message},
			})
		} else {
			fmt.Fprintln(cmd.ErrOrStderr(), cli.RenderSolveError(common.NewSolveError(result.Code, nil), loc))
		}
		return fmt.Errorf("could not solve question: %s", result.Code)
	}

	switch format {
	case cli.FormatJSON:
		return cli.WriteJSON(out, result.Solution)
	case cli.FormatMarkdown:
		markdown := cli.RenderMarkdown(question, result.Solution, loc)
		if !raw {
			if markdown, err = cli.RenderMarkdownTerminal(markdown, 0); err != nil {
				return err
			}
		}
		_, err = fmt.Fprint(out, markdown)
		return err
	default:
		_, err = fmt.Fprintln(out, cli.RenderSolution(question, result.Solution, loc))
		return err
	}
}
