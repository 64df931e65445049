// Package quiz runs an interactive self-graded quiz over sampled cards.
package quiz

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/conorfennell/flashcard/internal/domain"
	"github.com/conorfennell/flashcard/internal/ui"
)

// Recorder persists the outcome of each question as soon as it is graded.
type Recorder interface {
	AppendResult(entry domain.ResultEntry) error
}

// Speaker reads a card's front aloud.
type Speaker interface {
	Say(ctx context.Context, text string) error
}

// Tally counts graded answers in one session.
type Tally struct {
	Correct   int
	Incorrect int
}

// Total returns the number of graded answers.
func (t Tally) Total() int { return t.Correct + t.Incorrect }

// Runner drives one quiz session over an input and output stream.
type Runner struct {
	in      *bufio.Reader
	out     io.Writer
	rec     Recorder
	now     func() time.Time
	speaker Speaker
	styles  ui.Styles
}

// Option configures a Runner.
type Option func(*Runner)

// WithClock overrides the clock used to stamp result entries.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// WithSpeaker reads every card front aloud before asking for a guess.
func WithSpeaker(s Speaker) Option {
	return func(r *Runner) { r.speaker = s }
}

// WithStyles sets the terminal styles for prompts and results.
func WithStyles(s ui.Styles) Option {
	return func(r *Runner) { r.styles = s }
}

// New creates a Runner that reads answers from in, writes prompts to out
// and records each outcome through rec.
func New(in io.Reader, out io.Writer, rec Recorder, opts ...Option) *Runner {
	r := &Runner{
		in:     bufio.NewReader(in),
		out:    out,
		rec:    rec,
		now:    time.Now,
		styles: ui.Plain(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AskCount prompts for the number of cards to quiz on.
func (r *Runner) AskCount() (int, error) {
	fmt.Fprint(r.out, r.styles.Label("How many cards? "))
	line, err := r.readLine()
	if err != nil {
		return 0, fmt.Errorf("read card count: %w", err)
	}

	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidCount, line)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: count must be positive, got %d", domain.ErrInvalidCount, n)
	}
	return n, nil
}

// Run presents each card in order, collects a guess, asks the user to grade
// it and records the outcome before moving on. Any error ends the session;
// outcomes recorded up to that point stay in the log.
func (r *Runner) Run(ctx context.Context, cards []domain.Card) (Tally, error) {
	var tally Tally

	for i, card := range cards {
		if err := ctx.Err(); err != nil {
			return tally, err
		}

		if err := r.present(ctx, card); err != nil {
			return tally, fmt.Errorf("card %d: %w", i+1, err)
		}
		guess, err := r.collectGuess()
		if err != nil {
			return tally, fmt.Errorf("card %d: read guess: %w", i+1, err)
		}
		outcome, err := r.grade(guess, card)
		if err != nil {
			return tally, fmt.Errorf("card %d: read grade: %w", i+1, err)
		}
		if err := r.record(card, outcome); err != nil {
			return tally, fmt.Errorf("card %d: %w", i+1, err)
		}

		if outcome == domain.Correct {
			tally.Correct++
		} else {
			tally.Incorrect++
		}
	}

	fmt.Fprintf(r.out, "%s %d, %s %d\n",
		r.styles.Correct("Correct:"), tally.Correct,
		r.styles.Incorrect("Incorrect:"), tally.Incorrect)
	return tally, nil
}

// present shows the category and front only.
func (r *Runner) present(ctx context.Context, card domain.Card) error {
	fmt.Fprintf(r.out, "%s: %s\n", r.styles.Category(card.Category), r.styles.Front(card.Front))
	if r.speaker == nil {
		return nil
	}
	if err := r.speaker.Say(ctx, card.Front); err != nil {
		return fmt.Errorf("speak: %w", err)
	}
	return nil
}

func (r *Runner) collectGuess() (string, error) {
	fmt.Fprint(r.out, ">> ")
	return r.readLine()
}

// grade shows the guess beside the stored answer and lets the user decide.
// Answers are never compared automatically.
func (r *Runner) grade(guess string, card domain.Card) (domain.Outcome, error) {
	fmt.Fprintf(r.out, "%s %s\n", r.styles.Label("Guess:"), guess)
	fmt.Fprintf(r.out, "%s %s\n", r.styles.Label("Answer:"), r.styles.Back(card.Back))
	fmt.Fprintln(r.out, r.styles.Label("Was it correct? (y/n)"))

	reply, err := r.readLine()
	if err != nil {
		return domain.Incorrect, err
	}
	switch strings.ToLower(reply) {
	case "y", "yes":
		return domain.Correct, nil
	}
	return domain.Incorrect, nil
}

func (r *Runner) record(card domain.Card, outcome domain.Outcome) error {
	entry := domain.ResultEntry{
		Timestamp: r.now().Truncate(time.Second),
		Outcome:   outcome,
		Card:      card,
	}
	if err := r.rec.AppendResult(entry); err != nil {
		return fmt.Errorf("record outcome: %w", err)
	}
	slog.Debug("Recorded outcome", "category", card.Category, "outcome", outcome)
	return nil
}

// readLine returns the next trimmed input line. A final line without a
// newline is accepted; end of input before any text is an error.
func (r *Runner) readLine() (string, error) {
	line, err := r.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		if line == "" {
			return "", io.ErrUnexpectedEOF
		}
	}
	return strings.TrimSpace(line), nil
}
