package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conorfennell/flashcard/internal/domain"
)

type recordingRunner struct {
	name string
	args []string
}

func (r *recordingRunner) Run(_ context.Context, name string, args ...string) error {
	r.name, r.args = name, args
	return nil
}

// firstSource always draws index 0.
type firstSource struct{}

func (firstSource) IntN(int) int { return 0 }

type harness struct {
	dir     string
	deck    string
	results string
	db      string
	editor  *recordingRunner
	speech  *recordingRunner
	now     time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("EDITOR", "")
	return &harness{
		dir:     dir,
		deck:    filepath.Join(dir, "deck.cards"),
		results: filepath.Join(dir, "results.log"),
		db:      filepath.Join(dir, "mirror.db"),
		editor:  &recordingRunner{},
		speech:  &recordingRunner{},
		now:     time.Date(2025, 3, 15, 20, 0, 0, 0, time.Local),
	}
}

func (h *harness) writeDeck(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(h.deck, []byte(content), 0o644))
}

func (h *harness) writeResults(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(h.results, []byte(content), 0o644))
}

// run executes the CLI with stdin and returns stdout, stderr and the error.
func (h *harness) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd(deps{
		editor: h.editor,
		speech: h.speech,
		now:    func() time.Time { return h.now },
		rand:   firstSource{},
	})

	var stdout, stderr bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	base := []string{"--deck", h.deck, "--results", h.results, "--db", h.db, "--color=false"}
	if len(args) > 0 {
		args = append(args[:1:1], append(base, args[1:]...)...)
	}
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNoArgsPrintsUsageAndFails(t *testing.T) {
	h := newHarness(t)

	_, stderr, err := h.run(t, "")
	assert.ErrorIs(t, err, errNoCommand)
	assert.Contains(t, stderr, "Usage:")
}

func TestUnknownCommandFails(t *testing.T) {
	h := newHarness(t)

	_, stderr, err := h.run(t, "", "frobnicate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "frobnicate"`)
	assert.Contains(t, stderr, "Usage:")
}

func TestHelpSucceeds(t *testing.T) {
	h := newHarness(t)

	stdout, _, err := h.run(t, "", "help")
	require.NoError(t, err)
	for _, name := range []string{"list", "quiz", "summary"} {
		assert.Contains(t, stdout, name)
	}
}

func TestList(t *testing.T) {
	h := newHarness(t)
	h.writeDeck(t, "Math\t2+2?\t4\nGeography\tCapital of Peru?\tLima\n")

	stdout, _, err := h.run(t, "", "list")
	require.NoError(t, err)
	assert.Equal(t, ""+
		"Category   Front             Back\n"+
		"Math       2+2?              4\n"+
		"Geography  Capital of Peru?  Lima\n", stdout)
}

func TestListMalformedDeck(t *testing.T) {
	h := newHarness(t)
	h.writeDeck(t, "Math\tWhat is 2+2?\n")

	_, _, err := h.run(t, "", "list")
	assert.ErrorIs(t, err, domain.ErrMalformedRecord)
}

func TestListMissingDeck(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run(t, "", "list")
	assert.ErrorIs(t, err, domain.ErrFileUnavailable)
}

func TestQuizAppendsOneEntryPerCard(t *testing.T) {
	h := newHarness(t)
	h.writeDeck(t, "Math\t2+2?\t4\nGo\tLoop keyword?\tfor\n")

	stdout, _, err := h.run(t, "3\n4\ny\nfour\nn\n4\ny\n", "quiz")
	require.NoError(t, err)
	assert.Contains(t, stdout, "How many cards? ")
	assert.Contains(t, stdout, "Correct: 2, Incorrect: 1")

	data, err := os.ReadFile(h.results)
	require.NoError(t, err)
	assert.Equal(t, ""+
		"2025-03-15 20:00:00\tcorrect\tMath\t2+2?\t4\n"+
		"2025-03-15 20:00:00\tincorrect\tMath\t2+2?\t4\n"+
		"2025-03-15 20:00:00\tcorrect\tMath\t2+2?\t4\n", string(data))
}

func TestQuizCountFlagSkipsPrompt(t *testing.T) {
	h := newHarness(t)
	h.writeDeck(t, "Math\t2+2?\t4\n")

	stdout, _, err := h.run(t, "4\ny\n", "quiz", "--count", "1")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "How many cards?")
}

func TestQuizInvalidCount(t *testing.T) {
	h := newHarness(t)
	h.writeDeck(t, "Math\t2+2?\t4\n")

	_, _, err := h.run(t, "many\n", "quiz")
	assert.ErrorIs(t, err, domain.ErrInvalidCount)
	assert.NoFileExists(t, h.results)
}

func TestQuizDistinctRejectsOversizedCount(t *testing.T) {
	h := newHarness(t)
	h.writeDeck(t, "Math\t2+2?\t4\n")

	_, _, err := h.run(t, "", "quiz", "--count", "2", "--distinct")
	assert.ErrorIs(t, err, domain.ErrInvalidCount)
}

func TestQuizSpeak(t *testing.T) {
	h := newHarness(t)
	h.writeDeck(t, "Math\t2+2?\t4\n")

	_, _, err := h.run(t, "4\ny\n", "quiz", "--count", "1", "--speak", "--speech-command", "say -v Alex")
	require.NoError(t, err)
	assert.Equal(t, "say", h.speech.name)
	assert.Equal(t, []string{"-v", "Alex", "2+2?"}, h.speech.args)
}

func TestSummary(t *testing.T) {
	h := newHarness(t)
	h.writeResults(t, ""+
		"2025-03-10 09:00:00\tcorrect\tMath\t2+2?\t4\n"+
		"2025-03-10 09:01:00\tincorrect\tGo\tLoop?\tfor\n"+
		"2025-03-10 09:02:00\tcorrect\tMath\t3+3?\t6\n")

	stdout, _, err := h.run(t, "", "summary")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Total: 3\n")
	assert.Contains(t, stdout, "Correct: 2 (66%)\n")
	assert.Contains(t, stdout, "Incorrect: 1 (33%)\n")
	assert.Contains(t, stdout, "Last studied: 2025-03-10 (5 days ago)\n")
}

func TestSummaryEmptyLog(t *testing.T) {
	h := newHarness(t)
	h.writeResults(t, "")

	_, _, err := h.run(t, "", "summary")
	assert.ErrorIs(t, err, domain.ErrEmptyLog)
}

func TestAdd(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run(t, "", "add", "Go", "Loop keyword?", "for")
	require.NoError(t, err)

	data, err := os.ReadFile(h.deck)
	require.NoError(t, err)
	assert.Equal(t, "Go\tLoop keyword?\tfor\n", string(data))
}

func TestEditWithoutEditor(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run(t, "", "edit")
	assert.ErrorIs(t, err, domain.ErrMissingEditor)
}

func TestEditOpensDeckThenValidates(t *testing.T) {
	h := newHarness(t)
	t.Setenv("EDITOR", "vim -n")
	h.writeDeck(t, "Math\t2+2?\t4\n")

	stdout, _, err := h.run(t, "", "edit")
	require.NoError(t, err)
	assert.Equal(t, "vim", h.editor.name)
	assert.Equal(t, []string{"-n", h.deck}, h.editor.args)
	assert.Contains(t, stdout, "1 cards in")
}

func TestEditLog(t *testing.T) {
	h := newHarness(t)
	t.Setenv("EDITOR", "nano")

	_, _, err := h.run(t, "", "edit", "log")
	require.NoError(t, err)
	assert.Equal(t, []string{h.results}, h.editor.args)
}

func TestEditRejectsUnknownTarget(t *testing.T) {
	h := newHarness(t)
	t.Setenv("EDITOR", "nano")

	_, _, err := h.run(t, "", "edit", "config")
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	h := newHarness(t)
	h.writeDeck(t, "Math\t2+2?\t4\nGo\tLoop?\tfor\n")

	stdout, _, err := h.run(t, "", "export")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Exported 2 cards (2 new, 0 removed) and 0 new results")
	assert.Contains(t, stdout, "Mirror holds 0 correct and 0 incorrect results.")
	assert.NotContains(t, stdout, "Previous export")
	assert.FileExists(t, h.db)

	h.writeResults(t, "2025-03-10 09:00:00\tcorrect\tMath\t2+2?\t4\n")
	stdout, _, err = h.run(t, "", "export")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Exported 2 cards (0 new, 0 removed) and 1 new results")
	assert.Contains(t, stdout, "Mirror holds 1 correct and 0 incorrect results.")
	assert.Contains(t, stdout, "Previous export: ")

	h.writeResults(t, "2025-03-10 09:00:00\tincorrect\tMath\t2+2?\t4\n")
	stdout, _, err = h.run(t, "", "export")
	require.NoError(t, err)
	assert.Contains(t, stdout, "and 1 new results")
	assert.Contains(t, stdout, "results were rewritten")
	assert.Contains(t, stdout, "Mirror holds 0 correct and 1 incorrect results.")
}

func TestPullRequiresRepository(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run(t, "", "pull")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "git.url")
}

func TestVersion(t *testing.T) {
	h := newHarness(t)

	stdout, _, err := h.run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "flashcard (devel)\n", stdout)
}
