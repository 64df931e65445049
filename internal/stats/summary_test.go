package stats

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conorfennell/flashcard/internal/domain"
	"github.com/conorfennell/flashcard/internal/ui"
)

func entry(ts time.Time, outcome domain.Outcome, category string) domain.ResultEntry {
	return domain.ResultEntry{
		Timestamp: ts,
		Outcome:   outcome,
		Card:      domain.Card{Category: category, Front: "front", Back: "back"},
	}
}

func TestSummarizeCounts(t *testing.T) {
	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	log := []domain.ResultEntry{
		entry(day, domain.Correct, "Math"),
		entry(day.Add(time.Minute), domain.Incorrect, "Go"),
		entry(day.Add(2*time.Minute), domain.Correct, "Math"),
	}

	s, err := Summarize(log, day)
	require.NoError(t, err)

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Correct)
	assert.Equal(t, 1, s.Incorrect)
	assert.Equal(t, 66, s.CorrectPct)
	assert.Equal(t, 33, s.IncorrectPct)
	assert.Equal(t, []CategorySummary{
		{Category: "Math", Total: 2, Correct: 2, CorrectPct: 100},
		{Category: "Go", Total: 1, Correct: 0, CorrectPct: 0},
	}, s.Categories)
}

func TestSummarizeEmptyLog(t *testing.T) {
	_, err := Summarize(nil, time.Now())
	assert.ErrorIs(t, err, domain.ErrEmptyLog)
}

func TestSummarizeUsesLastEntryInAppendOrder(t *testing.T) {
	later := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	earlier := time.Date(2025, 3, 1, 9, 0, 0, 0, time.Local)
	log := []domain.ResultEntry{
		entry(later, domain.Correct, "A"),
		entry(earlier, domain.Correct, "A"),
	}

	s, err := Summarize(log, later)
	require.NoError(t, err)
	assert.True(t, s.LastDate.Equal(earlier))
	assert.Equal(t, 9, s.DaysSinceLast)
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{
			name: "five calendar days regardless of time of day",
			from: time.Date(2025, 5, 1, 23, 59, 0, 0, time.Local),
			to:   time.Date(2025, 5, 6, 0, 1, 0, 0, time.Local),
			want: 5,
		},
		{
			name: "same day",
			from: time.Date(2025, 5, 6, 0, 0, 0, 0, time.Local),
			to:   time.Date(2025, 5, 6, 23, 59, 59, 0, time.Local),
			want: 0,
		},
		{
			name: "across midnight",
			from: time.Date(2025, 5, 5, 23, 59, 0, 0, time.Local),
			to:   time.Date(2025, 5, 6, 0, 1, 0, 0, time.Local),
			want: 1,
		},
		{
			name: "across a year boundary",
			from: time.Date(2024, 12, 31, 8, 0, 0, 0, time.Local),
			to:   time.Date(2025, 1, 2, 8, 0, 0, 0, time.Local),
			want: 2,
		},
		{
			name: "future entry",
			from: time.Date(2025, 5, 8, 8, 0, 0, 0, time.Local),
			to:   time.Date(2025, 5, 6, 8, 0, 0, 0, time.Local),
			want: -2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(tt.from, tt.to))
		})
	}
}

func TestSummarizeFiveDaysAgo(t *testing.T) {
	now := time.Date(2025, 8, 20, 7, 30, 0, 0, time.Local)
	last := time.Date(2025, 8, 15, 21, 45, 0, 0, time.Local)

	s, err := Summarize([]domain.ResultEntry{entry(last, domain.Incorrect, "Go")}, now)
	require.NoError(t, err)
	assert.Equal(t, 5, s.DaysSinceLast)
}

func TestRender(t *testing.T) {
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.Local)
	log := []domain.ResultEntry{
		entry(time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local), domain.Correct, "Math"),
		entry(time.Date(2025, 3, 10, 12, 1, 0, 0, time.Local), domain.Incorrect, "Math"),
	}
	s, err := Summarize(log, now)
	require.NoError(t, err)

	var b strings.Builder
	s.Render(&b, ui.Plain())

	want := "" +
		"Total: 2\n" +
		"Correct: 1 (50%)\n" +
		"Incorrect: 1 (50%)\n" +
		"Last studied: 2025-03-10 (2 days ago)\n" +
		"\n" +
		"By category:\n" +
		"  Math: 1/2 (50%)\n"
	assert.Equal(t, want, b.String())
}
