package domain

import (
	"fmt"
	"time"
)

// Card represents a single category-front-back entry in the deck.
// Cards have no identity beyond their position in the deck file. The
// fieldsafe rule rejects values holding the tab or newline delimiters.
type Card struct {
	Category string `validate:"required,fieldsafe"`
	Front    string `validate:"required,fieldsafe"`
	Back     string `validate:"required,fieldsafe"`
}

// Outcome is the self-graded result of a single quiz question.
type Outcome int

const (
	Incorrect Outcome = iota
	Correct
)

// String returns the label written to the result log.
func (o Outcome) String() string {
	if o == Correct {
		return "correct"
	}
	return "incorrect"
}

// ParseOutcome is the inverse of Outcome.String.
func ParseOutcome(label string) (Outcome, error) {
	switch label {
	case "correct":
		return Correct, nil
	case "incorrect":
		return Incorrect, nil
	}
	return Incorrect, fmt.Errorf("%w: unknown outcome %q", ErrMalformedRecord, label)
}

// ResultEntry records one graded quiz question. Entries are append-only
// and stored in the order they were answered.
type ResultEntry struct {
	Timestamp time.Time
	Outcome   Outcome
	Card      Card
}
