package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/diogo/liveresults/internal/models"
	"github.com/diogo/liveresults/internal/render"
)

// Section headings shown inside a card
const (
	answerHeading   = "Answer"
	sourcesHeading  = "📚 Sources"
	resultsHeading  = "🔎 More results"
	errorHeading    = "Server error"
	updatedPrefix   = "Updated: "
	cardLabelFormat = "◆ Result %d"
)

// CardRenderer draws messages as bordered cards
type CardRenderer struct {
	// Width is the outer card width including the border
	Width int
	// Markdown controls how answer bodies are rendered
	Markdown render.Options
}

// NewCardRenderer returns a renderer for the given width
func NewCardRenderer(width int, opts render.Options) CardRenderer {
	return CardRenderer{Width: width, Markdown: opts}
}

// innerWidth is the text width left inside the border and padding
func (r CardRenderer) innerWidth() int {
	w := r.Width - cardStyle.GetHorizontalFrameSize()
	if w < 10 {
		w = 10
	}
	return w
}

// Render draws one message. index is zero-based; the label is one-based.
// Sections without data are omitted, so an empty message yields a card
// holding only its label.
func (r CardRenderer) Render(index int, msg models.DisplayMessage) string {
	inner := r.innerWidth()

	var sections []string

	if answer := msg.Answer(); answer != "" {
		body := render.Answer(answer, r.Markdown.WithWidth(inner))
		sections = append(sections, sectionTitleStyle.Render(answerHeading)+"\n"+body)
	}

	if citations := msg.Citations(); len(citations) > 0 {
		sections = append(sections, r.renderCitations(citations))
	}

	if results := msg.SearchResults(); len(results) > 0 {
		sections = append(sections, r.renderResults(results, inner))
	}

	if serverErr := msg.ServerError(); serverErr != "" {
		sections = append(sections,
			serverErrorStyle.Width(inner).Render("✗ "+errorHeading+": "+serverErr))
	}

	label := cardLabelStyle.Render(fmt.Sprintf(cardLabelFormat, index+1))
	body := strings.Join(sections, "\n\n")

	card := cardStyle.Width(inner + cardStyle.GetHorizontalPadding()).Render(body)
	return label + "\n" + card
}

// RenderAll draws every message in order, separated by a blank line
func (r CardRenderer) RenderAll(msgs []models.DisplayMessage) string {
	cards := make([]string, len(msgs))
	for i, msg := range msgs {
		cards[i] = r.Render(i, msg)
	}
	return strings.Join(cards, "\n\n")
}

func (r CardRenderer) renderCitations(citations []string) string {
	lines := make([]string, 0, len(citations)+1)
	lines = append(lines, sectionTitleStyle.Render(sourcesHeading))
	for _, url := range citations {
		lines = append(lines, bulletStyle.Render(" • ")+hyperlink(url, url, linkStyle))
	}
	return strings.Join(lines, "\n")
}

func (r CardRenderer) renderResults(results []models.SearchResult, inner int) string {
	entryWidth := inner - resultStyle.GetHorizontalFrameSize()
	if entryWidth < 1 {
		entryWidth = 1
	}

	entries := make([]string, 0, len(results)+1)
	entries = append(entries, sectionTitleStyle.Render(resultsHeading))
	for _, res := range results {
		title := res.Title
		if title == "" {
			title = res.URL
		}

		entry := hyperlink(res.URL, title, resultTitleStyle)
		if res.LastUpdated != "" {
			entry += "\n" + resultDateStyle.Render(updatedPrefix+res.LastUpdated)
		}
		entries = append(entries, resultStyle.Width(entryWidth).Render(entry))
	}
	return lipgloss.JoinVertical(lipgloss.Left, entries...)
}

// hyperlink renders text with style and, when url is set, wraps it in an
// OSC 8 sequence so supporting terminals open url on click
func hyperlink(url, text string, style lipgloss.Style) string {
	styled := style.Render(text)
	if url == "" {
		return styled
	}
	return ansi.SetHyperlink(url) + styled + ansi.ResetHyperlink()
}
