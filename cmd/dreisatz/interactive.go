package main

import (
	"github.com/spf13/cobra"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/tui"
)

func (a *app) interactiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"tui"},
		Short:   "Solve questions in an interactive terminal session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			theme, _ := cmd.Flags().GetString("theme")

			loc := a.cfg.Solver.DefaultLocale
			if flag, _ := cmd.Flags().GetString("locale"); flag != "" {
				loc = model.ParseLocale(flag)
			}

			eng, _, err := newEngine(a.cfg)
			if err != nil {
				return err
			}

			return tui.Run(cmd.Context(), eng,
				tui.WithLocale(loc),
				tui.WithTheme(tui.ThemeByName(theme)),
			)
		},
	}

	cmd.Flags().StringP("locale", "l", "", "initial language (de, en, zh)")
	cmd.Flags().String("theme", "default", "color theme (default, mocha)")

	return cmd
}
