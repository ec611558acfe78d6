// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xtract "github.com/sassoftware/statement-ledger/pdfxtract"
)

func glyphText(s string, x, y, w, fontSize float64) xtract.Text {
	return xtract.Text{Font: "Helvetica", FontSize: fontSize, X: x, Y: y, W: w, S: s}
}

func TestSplitLineIntoWords_BreaksOnExplicitSpace(t *testing.T) {
	ln := []glyph{
		{top: 0, bottom: 10, x0: 0, x1: 5, s: "R"},
		{top: 0, bottom: 10, x0: 5, x1: 10, s: "e"},
		{top: 0, bottom: 10, x0: 10, x1: 12, s: "n"},
		{top: 0, bottom: 10, x0: 12, x1: 14, s: "t"},
		{top: 0, bottom: 10, x0: 14, x1: 16, s: " "},
		{top: 0, bottom: 10, x0: 16, x1: 21, s: "1"},
		{top: 0, bottom: 10, x0: 21, x1: 26, s: "0"},
		{top: 0, bottom: 10, x0: 26, x1: 31, s: "0"},
	}
	words := splitLineIntoWords(ln)
	require.Len(t, words, 2)
	assert.Equal(t, "Rent", words[0].Text)
	assert.Equal(t, "100", words[1].Text)
}

func TestSplitLineIntoWords_BreaksOnWideGap(t *testing.T) {
	ln := []glyph{
		{top: 0, bottom: 10, x0: 0, x1: 10, s: "A"},
		{top: 0, bottom: 10, x0: 40, x1: 50, s: "B"},
	}
	words := splitLineIntoWords(ln)
	require.Len(t, words, 2)
	assert.Equal(t, "A", words[0].Text)
	assert.Equal(t, "B", words[1].Text)
}

func TestGroupIntoLines_ClustersByBaselineY(t *testing.T) {
	text := []xtract.Text{
		glyphText("A", 0, 700, 10, 10),
		glyphText("B", 20, 700, 10, 10),
		glyphText("C", 0, 680, 10, 10),
	}
	lines := groupIntoLines(text, 792)
	require.Len(t, lines, 2)
	assert.Len(t, lines[0], 2)
	assert.Len(t, lines[1], 1)
}

func TestGroupIntoLines_SkipsNewlineAndEmptyGlyphs(t *testing.T) {
	text := []xtract.Text{
		glyphText("\n", 0, 700, 0, 10),
		glyphText("", 5, 700, 0, 10),
		glyphText("A", 10, 700, 10, 10),
	}
	lines := groupIntoLines(text, 792)
	require.Len(t, lines, 1)
	require.Len(t, lines[0], 1)
	assert.Equal(t, "A", lines[0][0].s)
}

func TestRuleLines_SeparatesAxisAndDedupes(t *testing.T) {
	lines := []xtract.Line{
		{X0: 50, Y0: 0, X1: 50, Y1: 100},   // vertical
		{X0: 50, Y0: 0, X1: 50, Y1: 200},   // vertical, same x, merged
		{X0: 0, Y0: 300, X1: 400, Y1: 300}, // horizontal
		{X0: 80, Y0: 0, X1: 80, Y1: 1},     // vertical but too short to count
	}
	vertical := ruleLines(lines, true, 792)
	horizontal := ruleLines(lines, false, 792)
	require.Len(t, vertical, 1)
	assert.InDelta(t, 50, vertical[0].Pos, 0.01)
	// the two same-x segments merge into the union of their y-extents
	assert.InDelta(t, 792-200, vertical[0].From, 0.01)
	assert.InDelta(t, 792-0, vertical[0].To, 0.01)
	require.Len(t, horizontal, 1)
	assert.InDelta(t, 792-300, horizontal[0].Pos, 0.01)
	assert.InDelta(t, 0, horizontal[0].From, 0.01)
	assert.InDelta(t, 400, horizontal[0].To, 0.01)
}
