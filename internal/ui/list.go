package ui

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/conorfennell/flashcard/internal/domain"
)

const columnGap = "  "

// ListCards writes a header and one row per card, with the category and
// front columns padded to their widest cell. Widths are measured in
// terminal cells, so wide runes stay aligned.
func ListCards(w io.Writer, cards []domain.Card, s Styles) {
	categoryWidth := lipgloss.Width("Category")
	frontWidth := lipgloss.Width("Front")
	for _, c := range cards {
		categoryWidth = max(categoryWidth, lipgloss.Width(c.Category))
		frontWidth = max(frontWidth, lipgloss.Width(c.Front))
	}

	fmt.Fprintln(w, s.Heading(pad("Category", categoryWidth)+columnGap+pad("Front", frontWidth)+columnGap+"Back"))
	for _, c := range cards {
		fmt.Fprintln(w,
			s.Category(pad(c.Category, categoryWidth))+columnGap+
				s.Front(pad(c.Front, frontWidth))+columnGap+
				s.Back(c.Back))
	}
}

func pad(text string, width int) string {
	if n := width - lipgloss.Width(text); n > 0 {
		return text + strings.Repeat(" ", n)
	}
	return text
}
