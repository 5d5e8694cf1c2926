// Package layout reconstructs visual text lines from positioned words.
//
// PDF extraction yields words placed in 2-D space with no line structure.
// Words printed on the same line share a near-identical vertical offset,
// with small jitter from font metrics, so a fixed proximity threshold is
// enough to rebuild lines without font or layout metadata.
package layout

import (
	"math"
	"strings"

	"github.com/mskaar/ordrecsv/internal/pdf"
)

// DefaultLineThreshold is the vertical distance, in page units, at which a
// word no longer belongs to the current line. Tuned against the source
// template, not derived.
const DefaultLineThreshold = 5.0

// Line is one reconstructed horizontal band of words, space-joined.
type Line struct {
	Text string
}

// PageLines holds the reconstructed lines of one page, in reading order.
type PageLines struct {
	Page  int
	Lines []Line
}

// BuildLines groups an ordered word sequence into lines. A word whose
// vertical offset differs from the current line's anchor by the threshold or
// more starts a new line; anything closer stays on the same line. Pure
// function of its input.
func BuildLines(words []pdf.Word, threshold float64) []Line {
	var lines []Line
	var current []string

	lastTop := 0.0
	haveTop := false

	flush := func() {
		if len(current) > 0 {
			lines = append(lines, Line{Text: strings.Join(current, " ")})
			current = nil
		}
	}

	for _, word := range words {
		if !haveTop || math.Abs(word.Top-lastTop) >= threshold {
			flush()
			lastTop = word.Top
			haveTop = true
		}
		current = append(current, word.Text)
	}
	flush()

	return lines
}

// BuildPageLines reconstructs lines for every page, preserving page order.
func BuildPageLines(pages []pdf.PageWords, threshold float64) []PageLines {
	result := make([]PageLines, 0, len(pages))
	for _, page := range pages {
		result = append(result, PageLines{
			Page:  page.Page,
			Lines: BuildLines(page.Words, threshold),
		})
	}
	return result
}
