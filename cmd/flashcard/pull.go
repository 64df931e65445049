package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conorfennell/flashcard/internal/gitsource"
)

func newPullCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Clone or update the git repository holding the deck",
		Long: "Pull clones git.url into git.dir, or pulls it if already cloned. Point\n" +
			"--deck at a file inside that checkout to study from it.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := a.cfg.GitDir()
			if err != nil {
				return err
			}

			result, err := gitsource.Sync(cmd.Context(), a.cfg.Git.URL, dir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deck repository %s: %s\n", result, dir)
			return nil
		},
	}
}
