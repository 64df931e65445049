package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/conorfennell/flashcard/internal/config"
	"github.com/conorfennell/flashcard/internal/external"
	"github.com/conorfennell/flashcard/internal/records"
	"github.com/conorfennell/flashcard/internal/sampler"
	"github.com/conorfennell/flashcard/internal/ui"
)

// skipConfig marks commands that run without loading configuration.
const skipConfig = "skip-config"

var errNoCommand = errors.New("no command given")

// deps are the process-level collaborators, swapped out in tests.
type deps struct {
	editor external.Runner
	speech external.Runner
	now    func() time.Time
	rand   sampler.Source
}

func defaultDeps() deps {
	return deps{
		editor: external.NewExecRunner(),
		speech: &external.ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr},
		now:    time.Now,
		rand:   sampler.Default,
	}
}

// app is what every command works with once configuration is loaded.
type app struct {
	deps
	cfg    config.Config
	store  *records.Store
	styles ui.Styles
}

func newRootCmd(d deps) *cobra.Command {
	a := &app{deps: d}

	root := &cobra.Command{
		Use:   "flashcard",
		Short: "Study flashcards from a plain-text deck",
		Long: "flashcard keeps question/answer cards in a tab-delimited file, quizzes you on\n" +
			"random cards, logs every self-graded answer and summarizes your progress.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !needsConfig(cmd) {
				return nil
			}
			return a.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
			if len(args) == 0 {
				return errNoCommand
			}
			return fmt.Errorf("unknown command %q", args[0])
		},
	}

	root.CompletionOptions.DisableDefaultCmd = true
	config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newListCmd(a),
		newQuizCmd(a),
		newSummaryCmd(a),
		newAddCmd(a),
		newEditCmd(a),
		newExportCmd(a),
		newPullCmd(a),
		newVersionCmd(),
	)
	return root
}

func needsConfig(cmd *cobra.Command) bool {
	return cmd.HasParent() && cmd.Name() != "help" && cmd.Annotations[skipConfig] == ""
}

// load reads configuration from cmd's flags and builds the record store.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	slog.Debug("Configuration loaded", "config", cfg.ConfigFile, "deck", cfg.Deck, "results", cfg.Results)

	a.cfg = cfg
	a.store = records.New(cfg.Deck, cfg.Results)
	a.styles = ui.NewStyles(cfg.Color)
	return nil
}
