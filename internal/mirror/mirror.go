// Package mirror reconciles the flat deck and result log files into the
// SQLite mirror. The flat files stay the source of truth; the mirror only
// exists so the history can be queried with SQL.
package mirror

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/conorfennell/flashcard/internal/domain"
	"github.com/conorfennell/flashcard/internal/knol"
	"github.com/conorfennell/flashcard/internal/storage"
)

// Report summarizes one reconciliation run.
type Report struct {
	Cards           int
	CardsInserted   int
	CardsDeleted    int
	ResultsInserted int
	ResultsRebuilt  bool
	ExportID        int64
}

// Source names the files a snapshot was read from.
type Source struct {
	DeckPath    string
	ResultsPath string
}

// Run brings db in line with deck and log. New cards are inserted and cards
// no longer in the deck are deleted. Results are compared line by line; from
// the first log entry that differs from its mirrored row (or is missing) the
// results table is rewritten, and new entries are appended.
func Run(ctx context.Context, db *storage.DB, src Source, deck []domain.Card, log []domain.ResultEntry) (Report, error) {
	var report Report

	if err := reconcileCards(ctx, db, deck, &report); err != nil {
		return report, err
	}
	if err := reconcileResults(ctx, db, log, &report); err != nil {
		return report, err
	}

	id, err := db.InsertExport(ctx, src.DeckPath, src.ResultsPath)
	if err != nil {
		return report, err
	}
	report.ExportID = id

	slog.Info("reconciliation complete",
		"deck", src.DeckPath,
		"cards", report.Cards,
		"cards_inserted", report.CardsInserted,
		"cards_deleted", report.CardsDeleted,
		"results_inserted", report.ResultsInserted,
		"results_rebuilt", report.ResultsRebuilt,
	)
	return report, nil
}

func reconcileCards(ctx context.Context, db *storage.DB, deck []domain.Card, report *Report) error {
	found := make(map[string]bool)

	for i, card := range deck {
		hash := knol.Hash(card)
		if found[hash] {
			continue
		}
		found[hash] = true

		existing, err := db.FindCardByHash(ctx, hash)
		if err != nil {
			return fmt.Errorf("db check for %s: %w", hash, err)
		}
		if existing == nil {
			slog.Debug("New card found, inserting", "hash", hash)
			if err := db.InsertCard(ctx, hash, card, i+1); err != nil {
				return err
			}
			report.CardsInserted++
			continue
		}
		if existing.Position != i+1 {
			if err := db.UpdateCardPosition(ctx, hash, i+1); err != nil {
				return err
			}
		}
	}
	report.Cards = len(found)

	dbCards, err := db.GetAllCards(ctx)
	if err != nil {
		return err
	}
	for _, dbCard := range dbCards {
		if found[dbCard.Hash] {
			continue
		}
		slog.Debug("Orphaned card, deleting", "hash", dbCard.Hash)
		if err := db.DeleteCardByHash(ctx, dbCard.Hash); err != nil {
			return err
		}
		report.CardsDeleted++
	}
	return nil
}

func reconcileResults(ctx context.Context, db *storage.DB, log []domain.ResultEntry, report *Report) error {
	mirrored, err := db.ResultLineHashes(ctx)
	if err != nil {
		return err
	}

	lineHashes := make([]string, len(log))
	for i, entry := range log {
		lineHashes[i] = knol.HashResult(entry)
	}

	// Everything before the first divergence is already mirrored.
	from := 0
	for from < len(mirrored) && from < len(log) && mirrored[from] == lineHashes[from] {
		from++
	}

	if from < len(mirrored) {
		slog.Warn("Result log diverges from the mirror, rebuilding", "line", from+1, "mirrored", len(mirrored), "log", len(log))
		if _, err := db.DeleteResultsFrom(ctx, from+1); err != nil {
			return err
		}
		report.ResultsRebuilt = true
	}

	for i := from; i < len(log); i++ {
		entry := log[i]
		if err := db.InsertResult(ctx, i+1, lineHashes[i], knol.Hash(entry.Card), entry); err != nil {
			return err
		}
		report.ResultsInserted++
	}
	return nil
}
