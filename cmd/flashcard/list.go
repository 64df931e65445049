package main

import (
	"github.com/spf13/cobra"

	"github.com/conorfennell/flashcard/internal/ui"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every card in the deck",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := a.store.LoadDeck()
			if err != nil {
				return err
			}
			ui.ListCards(cmd.OutOrStdout(), cards, a.styles)
			return nil
		},
	}
}
