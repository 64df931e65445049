package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/conorfennell/flashcard/internal/domain"
	"github.com/conorfennell/flashcard/internal/mirror"
	"github.com/conorfennell/flashcard/internal/parser"
	"github.com/conorfennell/flashcard/internal/storage"
)

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Mirror the deck and result log into a SQLite database",
		Long: "Export reconciles the SQLite database at --db with the deck and result log.\n" +
			"The flat files stay authoritative; the database is for ad-hoc SQL queries.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := a.store.LoadDeck()
			if err != nil {
				return err
			}
			log, err := a.store.LoadLog()
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}

			db, err := storage.Open(a.cfg.DB)
			if err != nil {
				return err
			}
			defer db.Close()

			prev, err := db.LastExport(cmd.Context())
			if err != nil {
				return err
			}

			report, err := mirror.Run(cmd.Context(), db, mirror.Source{
				DeckPath:    a.store.DeckPath(),
				ResultsPath: a.store.ResultsPath(),
			}, cards, log)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d cards (%d new, %d removed) and %d new results to %s\n",
				report.Cards, report.CardsInserted, report.CardsDeleted, report.ResultsInserted, a.cfg.DB)
			if report.ResultsRebuilt {
				fmt.Fprintln(cmd.OutOrStdout(), "The result log was edited; mirrored results were rewritten from the first changed line.")
			}

			counts, err := db.CountResultsByOutcome(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Mirror holds %d correct and %d incorrect results.\n",
				counts[domain.Correct.String()], counts[domain.Incorrect.String()])
			if prev != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Previous export: %s\n",
					prev.ExportedAt.Local().Format(parser.TimestampLayout))
			}
			return nil
		},
	}
}
