// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

// Package words groups the per-rune glyph stream produced by pdfxtract's
// content-stream walker into whitespace-delimited words with bounding
// boxes, the positional unit the ledger pipeline operates on.
package words

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	xtract "github.com/sassoftware/statement-ledger/pdfxtract"
)

// Word is the atomic geometric unit consumed by every ledger stage.
type Word struct {
	Text   string
	X0, X1 float64
	Top    float64
	Bottom float64
	Height float64
}

// RuleLine is one detected rule line: its position on the axis it
// constrains (x for vertical lines, top-origin y for horizontal ones)
// plus its extent along the perpendicular axis. The extent lets callers
// filter out letterhead rules by where they sit on the page.
type RuleLine struct {
	Pos      float64
	From, To float64 // top-origin y span for vertical lines, x span for horizontal
}

// Page bundles a page's extracted words with its rule lines.
type Page struct {
	Number          int
	Words           []Word
	VerticalLines   []RuleLine
	HorizontalLines []RuleLine
	Height          float64
}

// gapThreshold is the horizontal distance, relative to the current glyph's
// width, beyond which two consecutive glyphs on the same text line are
// treated as belonging to different words.
const gapThreshold = 0.3

// Extract converts one pdfxtract page into a words.Page. pageHeight is the
// page's MediaBox height in points, used to flip the PDF's bottom-origin Y
// axis into the top-origin top/bottom coordinates the pipeline expects.
func Extract(p xtract.Page, pageNumber int, pageHeight float64) (page Page, err error) {
	// The content-stream interpreter panics on malformed operators.
	defer func() {
		if r := recover(); r != nil {
			page = Page{Number: pageNumber, Height: pageHeight}
			err = fmt.Errorf("words: page %d: %v", pageNumber+1, r)
		}
	}()

	content := p.Content()

	lines := groupIntoLines(content.Text, pageHeight)
	var out []Word
	for _, ln := range lines {
		out = append(out, splitLineIntoWords(ln)...)
	}

	return Page{
		Number:          pageNumber,
		Words:           out,
		VerticalLines:   ruleLines(content.Line, true, pageHeight),
		HorizontalLines: ruleLines(content.Line, false, pageHeight),
		Height:          pageHeight,
	}, nil
}

type glyph struct {
	top, bottom, x0, x1 float64
	s                   string
}

// groupIntoLines clusters glyphs into text lines by their baseline Y,
// top of page first, then returns each line's glyphs sorted left to
// right.
func groupIntoLines(text []xtract.Text, pageHeight float64) [][]glyph {
	glyphs := make([]glyph, 0, len(text))
	for _, t := range text {
		if t.S == "\n" || t.S == "" {
			continue
		}
		top := pageHeight - t.Y - t.FontSize*0.85
		bottom := pageHeight - t.Y + t.FontSize*0.25
		glyphs = append(glyphs, glyph{top: top, bottom: bottom, x0: t.X, x1: t.X + t.W, s: t.S})
	}
	sort.SliceStable(glyphs, func(i, j int) bool {
		if abs(glyphs[i].top-glyphs[j].top) > 0.5 {
			return glyphs[i].top < glyphs[j].top
		}
		return glyphs[i].x0 < glyphs[j].x0
	})

	var lines [][]glyph
	const lineTolerance = 2.0
	for _, g := range glyphs {
		if len(lines) == 0 {
			lines = append(lines, []glyph{g})
			continue
		}
		last := lines[len(lines)-1]
		if abs(g.top-last[0].top) <= lineTolerance {
			lines[len(lines)-1] = append(last, g)
		} else {
			lines = append(lines, []glyph{g})
		}
	}
	for i := range lines {
		sort.SliceStable(lines[i], func(a, b int) bool { return lines[i][a].x0 < lines[i][b].x0 })
	}
	return lines
}

// splitLineIntoWords merges consecutive glyphs on one line into words,
// breaking on whitespace runes or on a horizontal gap wider than
// gapThreshold times the glyph width, taken as at least 1 (a space that
// the font didn't encode explicitly).
func splitLineIntoWords(ln []glyph) []Word {
	var words []Word
	var cur strings.Builder
	var x0, x1, top, bottom float64
	started := false
	flush := func() {
		if !started {
			return
		}
		text := cur.String()
		if strings.TrimSpace(text) != "" {
			words = append(words, Word{
				Text:   text,
				X0:     x0,
				X1:     x1,
				Top:    top,
				Bottom: bottom,
				Height: bottom - top,
			})
		}
		cur.Reset()
		started = false
	}

	var prevX1 float64
	for i, g := range ln {
		r := []rune(g.s)
		isSpace := len(r) == 1 && unicode.IsSpace(r[0])
		if isSpace {
			flush()
			continue
		}
		gap := g.x0 - prevX1
		width := g.x1 - g.x0
		if started && gap > gapThreshold*maxFloat(width, 1) {
			flush()
		}
		if !started {
			x0, top, bottom = g.x0, g.top, g.bottom
			started = true
		}
		cur.WriteString(g.s)
		x1 = g.x1
		if g.bottom > bottom {
			bottom = g.bottom
		}
		if g.top < top {
			top = g.top
		}
		prevX1 = g.x1
		_ = i
	}
	flush()
	return words
}

// ruleLines reduces the content stream's stroked line segments to a sorted
// set of rule lines, deduplicated by axis position: X for vertical lines,
// top-origin Y for horizontal ones. Segments sharing a position merge into
// one line spanning the union of their extents. Only near-axis-aligned
// segments longer than a few points count; diagonal strokes are ignored.
func ruleLines(lines []xtract.Line, vertical bool, pageHeight float64) []RuleLine {
	seen := map[float64]int{}
	var out []RuleLine
	add := func(pos, from, to float64) {
		if from > to {
			from, to = to, from
		}
		if i, ok := seen[pos]; ok {
			if from < out[i].From {
				out[i].From = from
			}
			if to > out[i].To {
				out[i].To = to
			}
			return
		}
		seen[pos] = len(out)
		out = append(out, RuleLine{Pos: pos, From: from, To: to})
	}
	for _, l := range lines {
		if vertical && l.Vertical() && abs(l.Y1-l.Y0) > 2 {
			add(round1(l.X0), pageHeight-maxFloat(l.Y0, l.Y1), pageHeight-minFloat(l.Y0, l.Y1))
		}
		if !vertical && l.Horizontal() && abs(l.X1-l.X0) > 2 {
			add(round1(pageHeight-l.Y0), minFloat(l.X0, l.X1), maxFloat(l.X0, l.X1))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pos < out[j].Pos })
	return out
}

func round1(f float64) float64 {
	return float64(int(f*10+0.5)) / 10
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
