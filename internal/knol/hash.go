// Package knol derives stable content keys for cards and log lines, which
// carry no IDs of their own in the flat files.
package knol

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/conorfennell/flashcard/internal/domain"
	"github.com/conorfennell/flashcard/internal/parser"
)

// Normalize returns the card's fields trimmed, with CRLF folded to LF, and
// joined by newlines. Case is preserved: "Go" and "go" are different cards.
func Normalize(card domain.Card) string {
	parts := []string{card.Category, card.Front, card.Back}
	for i, p := range parts {
		parts[i] = strings.TrimSpace(strings.ReplaceAll(p, "\r\n", "\n"))
	}
	return strings.Join(parts, "\n")
}

// Hash keys a card in the mirror.
func Hash(card domain.Card) string {
	return sum(Normalize(card))
}

// HashResult fingerprints a log entry by its serialized line. Any edit to
// the line changes it.
func HashResult(entry domain.ResultEntry) string {
	return sum(parser.FormatResult(entry))
}

func sum(s string) string {
	b := sha256.Sum256([]byte(s))
	return hex.EncodeToString(b[:])
}
