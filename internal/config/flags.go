package config

import "github.com/spf13/pflag"

// BindFlags registers the flags every command accepts. Defaults come from
// Default so that Load can tell an explicit flag from an untouched one.
func BindFlags(flags *pflag.FlagSet) {
	d := Default()
	flags.String("config", d.ConfigFile, "Path to YAML config file (overrides FLASHCARD_CONFIG)")
	flags.String("deck", d.Deck, "Path to the card deck file")
	flags.String("results", d.Results, "Path to the result log file")
	flags.String("db", d.DB, "Path to the SQLite mirror used by export")
	flags.Bool("color", d.Color, "Colorize output")
	flags.String("log-level", d.Log.Level, "Diagnostic log level: debug, info, warn or error")
}

// BindQuizFlags registers the quiz command's flags.
func BindQuizFlags(flags *pflag.FlagSet) {
	d := Default()
	flags.IntP("count", "n", d.Count, "Number of cards to quiz on (0 asks interactively)")
	flags.Bool("distinct", d.Distinct, "Never repeat a card within one session")
	flags.Bool("speak", d.Speak, "Read each card front aloud")
	flags.String("speech-command", d.Speech.Command, "Speech synthesizer used by --speak")
}
