package main

import (
	"github.com/spf13/cobra"

	"github.com/conorfennell/flashcard/internal/stats"
)

func newSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "summary",
		Aliases: []string{"stats"},
		Short:   "Show study statistics from the result log",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := a.store.LoadLog()
			if err != nil {
				return err
			}
			s, err := stats.Summarize(log, a.now())
			if err != nil {
				return err
			}
			s.Render(cmd.OutOrStdout(), a.styles)
			return nil
		},
	}
}
