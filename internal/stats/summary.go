// Package stats aggregates the result log into study statistics.
package stats

import (
	"fmt"
	"io"
	"time"

	"github.com/conorfennell/flashcard/internal/domain"
	"github.com/conorfennell/flashcard/internal/ui"
)

// Summary holds aggregate counts over the whole result log.
type Summary struct {
	Total         int
	Correct       int
	Incorrect     int
	CorrectPct    int
	IncorrectPct  int
	LastDate      time.Time
	DaysSinceLast int
	Categories    []CategorySummary
}

// CategorySummary holds the counts for one category.
type CategorySummary struct {
	Category   string
	Total      int
	Correct    int
	CorrectPct int
}

// Summarize computes statistics over log as of now. The last entry in append
// order supplies LastDate; the log is chronological by construction.
func Summarize(log []domain.ResultEntry, now time.Time) (Summary, error) {
	if len(log) == 0 {
		return Summary{}, domain.ErrEmptyLog
	}

	var s Summary
	index := make(map[string]int)
	for _, e := range log {
		s.Total++
		i, ok := index[e.Card.Category]
		if !ok {
			i = len(s.Categories)
			index[e.Card.Category] = i
			s.Categories = append(s.Categories, CategorySummary{Category: e.Card.Category})
		}
		s.Categories[i].Total++
		if e.Outcome == domain.Correct {
			s.Correct++
			s.Categories[i].Correct++
		}
	}

	s.Incorrect = s.Total - s.Correct
	s.CorrectPct = s.Correct * 100 / s.Total
	s.IncorrectPct = s.Incorrect * 100 / s.Total
	for i := range s.Categories {
		c := &s.Categories[i]
		c.CorrectPct = c.Correct * 100 / c.Total
	}

	s.LastDate = log[len(log)-1].Timestamp
	s.DaysSinceLast = DaysBetween(s.LastDate, now)
	return s, nil
}

// DaysBetween counts calendar days from from's date to to's date, both taken
// in to's location. Time of day is ignored, so 23:59 to 00:01 is one day.
func DaysBetween(from, to time.Time) int {
	from = from.In(to.Location())
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// Render writes the summary in a human-readable form.
func (s Summary) Render(w io.Writer, styles ui.Styles) {
	fmt.Fprintf(w, "%s %d\n", styles.Label("Total:"), s.Total)
	fmt.Fprintf(w, "%s %d (%d%%)\n", styles.Correct("Correct:"), s.Correct, s.CorrectPct)
	fmt.Fprintf(w, "%s %d (%d%%)\n", styles.Incorrect("Incorrect:"), s.Incorrect, s.IncorrectPct)
	fmt.Fprintf(w, "%s %s (%s)\n", styles.Label("Last studied:"),
		s.LastDate.Format("2006-01-02"), daysAgo(s.DaysSinceLast))

	if len(s.Categories) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.Heading("By category:"))
	for _, c := range s.Categories {
		fmt.Fprintf(w, "  %s %d/%d (%d%%)\n", styles.Category(c.Category+":"), c.Correct, c.Total, c.CorrectPct)
	}
}

func daysAgo(n int) string {
	switch {
	case n == 0:
		return "today"
	case n == 1:
		return "1 day ago"
	case n < 0:
		return fmt.Sprintf("%d days from now", -n)
	}
	return fmt.Sprintf("%d days ago", n)
}
