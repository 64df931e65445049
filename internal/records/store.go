package records

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/conorfennell/flashcard/internal/domain"
	"github.com/conorfennell/flashcard/internal/parser"
)

// Store reads and appends the two flat files that hold all persistent state:
// the card deck and the result log. Paths are fixed at construction.
type Store struct {
	deckPath    string
	resultsPath string
	validate    *validator.Validate
}

// New creates a Store over the given deck and result log paths.
func New(deckPath, resultsPath string) *Store {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Only fails for an empty tag or a nil func.
	_ = v.RegisterValidation("fieldsafe", func(fl validator.FieldLevel) bool {
		return !strings.ContainsAny(fl.Field().String(), "\t\r\n")
	})
	return &Store{deckPath: deckPath, resultsPath: resultsPath, validate: v}
}

// DeckPath returns the path of the card deck file.
func (s *Store) DeckPath() string { return s.deckPath }

// ResultsPath returns the path of the result log file.
func (s *Store) ResultsPath() string { return s.resultsPath }

// LoadDeck reads every card in the deck file.
func (s *Store) LoadDeck() ([]domain.Card, error) {
	cards, err := parser.ParseDeckFile(s.deckPath)
	if err != nil {
		return nil, wrapLoad("deck", s.deckPath, err)
	}
	slog.Debug("Loaded deck", "path", s.deckPath, "cards", len(cards))
	return cards, nil
}

// LoadLog reads every entry in the result log, in append order.
func (s *Store) LoadLog() ([]domain.ResultEntry, error) {
	entries, err := parser.ParseLogFile(s.resultsPath)
	if err != nil {
		return nil, wrapLoad("result log", s.resultsPath, err)
	}
	slog.Debug("Loaded result log", "path", s.resultsPath, "entries", len(entries))
	return entries, nil
}

// AppendResult appends one entry to the result log, creating it if absent.
func (s *Store) AppendResult(entry domain.ResultEntry) error {
	return appendLine(s.resultsPath, parser.FormatResult(entry))
}

// AppendCard validates a card and appends it to the deck file.
func (s *Store) AppendCard(card domain.Card) error {
	if err := s.validate.Struct(card); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedRecord, err)
	}
	return appendLine(s.deckPath, parser.FormatCard(card))
}

// appendLine writes line to the end of path with a single write and syncs it
// before returning, so an interrupted session keeps every recorded line.
func appendLine(path, line string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: create directory for %s: %w", domain.ErrFileUnavailable, path, err)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", domain.ErrFileUnavailable, path, err)
	}

	if _, err := file.WriteString(line); err != nil {
		file.Close()
		return fmt.Errorf("%w: write %s: %w", domain.ErrFileUnavailable, path, err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return fmt.Errorf("%w: sync %s: %w", domain.ErrFileUnavailable, path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", domain.ErrFileUnavailable, path, err)
	}
	return nil
}

// wrapLoad attaches the file name to a parse error, and classifies anything
// that is not a malformed record as an unavailable file.
func wrapLoad(what, path string, err error) error {
	if errors.Is(err, domain.ErrMalformedRecord) {
		return fmt.Errorf("load %s %s: %w", what, path, err)
	}
	return fmt.Errorf("%w: load %s %s: %w", domain.ErrFileUnavailable, what, path, err)
}
