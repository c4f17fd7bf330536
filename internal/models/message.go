// Package models defines the messages received from the results server.
package models

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/liveresults/internal/errors"
)

// JSON paths read from each frame
const (
	pathAnswer        = "choices.0.message.content"
	pathCitations     = "citations"
	pathSearchResults = "search_results"
	pathServerError   = "error"
)

// previewLen bounds the frame excerpt quoted in parse errors
const previewLen = 40

// SearchResult is a supplementary titled link shown beside the answer
type SearchResult struct {
	URL         string
	Title       string
	LastUpdated string // optional
}

// DisplayMessage is one successfully parsed frame.
// The frame shape is not enforced: every accessor tolerates missing or
// mistyped fields and returns a zero value instead. Text is returned with
// terminal escape sequences and control characters removed.
type DisplayMessage struct {
	raw    string
	parsed gjson.Result
}

// ParseFrame parses one inbound text frame.
// Any JSON value is accepted; anything else returns a FrameError.
func ParseFrame(frame []byte) (DisplayMessage, error) {
	if !gjson.ValidBytes(frame) {
		return DisplayMessage{}, apierrors.NewFrameError(
			fmt.Sprintf("invalid JSON near %q", preview(frame)),
			len(frame),
		)
	}

	raw := string(frame)
	return DisplayMessage{raw: raw, parsed: gjson.Parse(raw)}, nil
}

// Raw returns the frame text the message was parsed from
func (m DisplayMessage) Raw() string {
	return m.raw
}

// Answer returns the primary answer body, or "" when absent
func (m DisplayMessage) Answer() string {
	return cleanText(scalarText(m.parsed.Get(pathAnswer)), true)
}

// HasAnswer reports whether the message carries an answer body
func (m DisplayMessage) HasAnswer() bool {
	return m.Answer() != ""
}

// Citations returns the cited URLs in order, one per array element.
// Empty entries are kept; objects and arrays are skipped.
func (m DisplayMessage) Citations() []string {
	arr := m.parsed.Get(pathCitations)
	if !arr.IsArray() {
		return nil
	}

	var citations []string
	arr.ForEach(func(_, item gjson.Result) bool {
		if item.IsObject() || item.IsArray() {
			return true
		}
		citations = append(citations, cleanText(scalarText(item), false))
		return true
	})
	return citations
}

// SearchResults returns the supplementary results in order.
// Entries that are not objects are skipped.
func (m DisplayMessage) SearchResults() []SearchResult {
	arr := m.parsed.Get(pathSearchResults)
	if !arr.IsArray() {
		return nil
	}

	var results []SearchResult
	arr.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			return true
		}
		results = append(results, SearchResult{
			URL:         cleanText(scalarText(item.Get("url")), false),
			Title:       cleanText(scalarText(item.Get("title")), false),
			LastUpdated: cleanText(scalarText(item.Get("last_updated")), false),
		})
		return true
	})
	return results
}

// ServerError returns the error text of a server-reported error frame
func (m DisplayMessage) ServerError() string {
	return cleanText(scalarText(m.parsed.Get(pathServerError)), false)
}

// IsEmpty reports whether the message has nothing to render
func (m DisplayMessage) IsEmpty() bool {
	return !m.HasAnswer() &&
		len(m.Citations()) == 0 &&
		len(m.SearchResults()) == 0 &&
		m.ServerError() == ""
}

// scalarText renders strings, numbers and true as text.
// Missing values, false, null, objects and arrays yield "".
func scalarText(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Number, gjson.True:
		return r.Raw
	default:
		return ""
	}
}

// cleanText drops escape sequences, control characters and invalid UTF-8
// from server text so it prints inertly. Newlines and tabs survive only
// when multiline is set; otherwise they become spaces.
func cleanText(s string, multiline bool) string {
	if s == "" {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			if multiline {
				return r
			}
			return ' '
		case r == utf8.RuneError, unicode.IsControl(r):
			return -1
		}
		return r
	}, ansi.Strip(s))
}

func preview(frame []byte) string {
	if len(frame) <= previewLen {
		return string(frame)
	}
	cut := previewLen
	for cut > 0 && !utf8.RuneStart(frame[cut]) {
		cut--
	}
	return string(frame[:cut]) + "..."
}
