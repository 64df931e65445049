package main

import (
	"github.com/spf13/cobra"

	"github.com/conorfennell/flashcard/internal/config"
	"github.com/conorfennell/flashcard/internal/external"
	"github.com/conorfennell/flashcard/internal/quiz"
	"github.com/conorfennell/flashcard/internal/sampler"
)

func newQuizCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Quiz yourself on random cards",
		Long: "Quiz draws cards at random (repeats allowed unless --distinct), shows each\n" +
			"front, reads your guess, shows the answer and asks you to grade yourself.\n" +
			"Every grade is appended to the result log immediately.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := a.store.LoadDeck()
			if err != nil {
				return err
			}

			opts := []quiz.Option{quiz.WithClock(a.now), quiz.WithStyles(a.styles)}
			if a.cfg.Speak {
				opts = append(opts, quiz.WithSpeaker(external.Speaker{Command: a.cfg.Speech.Command, Runner: a.speech}))
			}
			r := quiz.New(cmd.InOrStdin(), cmd.OutOrStdout(), a.store, opts...)

			count := a.cfg.Count
			if count == 0 {
				if count, err = r.AskCount(); err != nil {
					return err
				}
			}

			sample := sampler.Sample
			if a.cfg.Distinct {
				sample = sampler.SampleDistinct
			}
			picked, err := sample(cards, count, a.rand)
			if err != nil {
				return err
			}

			_, err = r.Run(cmd.Context(), picked)
			return err
		},
	}
	config.BindQuizFlags(cmd.Flags())
	return cmd
}
