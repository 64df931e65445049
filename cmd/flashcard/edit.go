package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/conorfennell/flashcard/internal/external"
)

func newEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "edit [deck|log]",
		Short:     "Open the deck (default) or the result log in $EDITOR",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"deck", "log"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "deck"
			if len(args) == 1 {
				target = args[0]
			}

			path := a.store.DeckPath()
			if target == "log" {
				path = a.store.ResultsPath()
			}

			editor := external.Editor{Command: a.cfg.Editor, Runner: a.editor}
			if err := editor.Edit(cmd.Context(), path); err != nil {
				return err
			}

			// Re-read the saved file; a malformed line fails the edit.
			if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
				return nil
			}
			if target == "log" {
				log, err := a.store.LoadLog()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d results in %s\n", len(log), path)
				return nil
			}
			cards, err := a.store.LoadDeck()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d cards in %s\n", len(cards), path)
			return nil
		},
	}
}
