package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conorfennell/flashcard/internal/domain"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add CATEGORY FRONT BACK",
		Short: "Append a card to the deck",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			card := domain.Card{Category: args[0], Front: args[1], Back: args[2]}
			if err := a.store.AppendCard(card); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s card to %s\n", a.styles.Category(card.Category), a.store.DeckPath())
			return nil
		},
	}
}
