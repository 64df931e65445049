package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/conorfennell/flashcard/internal/domain"
)

const (
	separator = "\t"

	// TimestampLayout is the second-precision, zone-less layout used in the result log.
	TimestampLayout = "2006-01-02 15:04:05"

	deckFields = 3
	logFields  = 5
)

// ParseDeckFile reads a deck file from the given path and extracts all cards.
func ParseDeckFile(path string) ([]domain.Card, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ParseDeck(file)
}

// ParseDeck reads from an io.Reader and extracts all cards. Blank lines are
// skipped; any other line must hold exactly three tab-separated fields.
func ParseDeck(r io.Reader) ([]domain.Card, error) {
	var cards []domain.Card
	err := eachRecord(r, deckFields, func(fields []string) error {
		cards = append(cards, domain.Card{
			Category: fields[0],
			Front:    fields[1],
			Back:     fields[2],
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// ParseLogFile reads a result log from the given path.
func ParseLogFile(path string) ([]domain.ResultEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ParseLog(file)
}

// ParseLog reads result entries in append order. Timestamps are interpreted
// in the local time zone.
func ParseLog(r io.Reader) ([]domain.ResultEntry, error) {
	var entries []domain.ResultEntry
	err := eachRecord(r, logFields, func(fields []string) error {
		ts, err := time.ParseInLocation(TimestampLayout, fields[0], time.Local)
		if err != nil {
			return fmt.Errorf("%w: bad timestamp %q", domain.ErrMalformedRecord, fields[0])
		}
		outcome, err := domain.ParseOutcome(fields[1])
		if err != nil {
			return err
		}
		entries = append(entries, domain.ResultEntry{
			Timestamp: ts,
			Outcome:   outcome,
			Card: domain.Card{
				Category: fields[2],
				Front:    fields[3],
				Back:     fields[4],
			},
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// FormatCard serializes a card as one newline-terminated deck line.
func FormatCard(card domain.Card) string {
	return strings.Join([]string{card.Category, card.Front, card.Back}, separator) + "\n"
}

// FormatResult serializes an entry as one newline-terminated log line.
func FormatResult(entry domain.ResultEntry) string {
	return strings.Join([]string{
		entry.Timestamp.Format(TimestampLayout),
		entry.Outcome.String(),
		entry.Card.Category,
		entry.Card.Front,
		entry.Card.Back,
	}, separator) + "\n"
}

// eachRecord splits r into lines and each line into trimmed fields, calling
// fn for every non-blank line. Errors carry the 1-based line number.
func eachRecord(r io.Reader, want int, fn func(fields []string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, separator)
		if len(fields) != want {
			return fmt.Errorf("%w: line %d: expected %d fields, got %d",
				domain.ErrMalformedRecord, lineNo, want, len(fields))
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		if err := fn(fields); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return fmt.Errorf("%w: line %d: %w", domain.ErrMalformedRecord, lineNo+1, err)
		}
		return err
	}
	return nil
}
