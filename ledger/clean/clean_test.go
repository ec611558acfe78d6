// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sassoftware/statement-ledger/ledger/model"
)

func word(text string, x0, x1, top, bottom float64) model.Word {
	return model.Word{Text: text, X0: x0, X1: x1, Top: top, Bottom: bottom, Height: bottom - top}
}

func TestCleanPage_SplitsDottedFiller(t *testing.T) {
	words := []model.Word{word("Rent.....120.00", 0, 100, 0, 10)}
	out := CleanPage(0, words, model.HeaderResult{})

	require.Len(t, out.Words, 2)
	assert.Equal(t, "Rent", out.Words[0].Text)
	assert.Equal(t, "120.00", out.Words[1].Text)
	// The filler occupied the middle of the original box, so the split
	// parts keep their estimated positions on either side of it.
	assert.Less(t, out.Words[0].X1, out.Words[1].X0)
}

func TestCleanPage_DropsPureDotRun(t *testing.T) {
	words := []model.Word{word("....", 0, 40, 0, 10), word("Rent", 50, 90, 0, 10)}
	out := CleanPage(0, words, model.HeaderResult{})
	require.Len(t, out.Words, 1)
	assert.Equal(t, "Rent", out.Words[0].Text)
}

func TestCleanPage_DropsIFiller(t *testing.T) {
	words := []model.Word{word("iiii", 0, 20, 0, 10), word("Rent", 50, 90, 0, 10)}
	out := CleanPage(0, words, model.HeaderResult{})
	require.Len(t, out.Words, 1)
	assert.Equal(t, "Rent", out.Words[0].Text)
}

func TestCleanPage_DropsHyphenFiller(t *testing.T) {
	words := []model.Word{word("----", 0, 20, 0, 10), word("Rent", 50, 90, 0, 10)}
	out := CleanPage(0, words, model.HeaderResult{})
	require.Len(t, out.Words, 1)
	assert.Equal(t, "Rent", out.Words[0].Text)
}

func TestCleanPage_DropsFooterBoilerplate(t *testing.T) {
	words := []model.Word{
		word("Page 1 of 3", 0, 60, 900, 910),
		word("Member FDIC", 0, 60, 910, 920),
		word("Rent", 50, 90, 0, 10),
	}
	out := CleanPage(0, words, model.HeaderResult{})
	require.Len(t, out.Words, 1)
	assert.Equal(t, "Rent", out.Words[0].Text)
}

// Slash-formatted dates and ISO dates are table data, not footer
// boilerplate; the footer filter must leave them alone.
func TestCleanPage_KeepsDateTokens(t *testing.T) {
	words := []model.Word{
		word("01/02/2024", 0, 60, 0, 10),
		word("2024-02-01", 70, 130, 0, 10),
	}
	out := CleanPage(0, words, model.HeaderResult{})
	require.Len(t, out.Words, 2)
	assert.Equal(t, "01/02/2024", out.Words[0].Text)
	assert.Equal(t, "2024-02-01", out.Words[1].Text)
}

func TestCleanPage_RemovesWordsAboveHeaderOnSourcePage(t *testing.T) {
	headers := model.HeaderResult{
		SourcePage: 0,
		Headers:    []model.Header{{Text: "date", Top: 100, Bottom: 110}},
	}
	words := []model.Word{
		word("Statement of Account", 0, 150, 10, 20),
		word("01/02/2024", 0, 60, 130, 140),
	}
	out := CleanPage(0, words, headers)
	require.Len(t, out.Words, 1)
	assert.Equal(t, "01/02/2024", out.Words[0].Text)
}

// TestCleanPage_AboveHeaderFilterOnlyAppliesToSourcePage confirms other
// pages keep words even above the header's own y-coordinate.
func TestCleanPage_AboveHeaderFilterOnlyAppliesToSourcePage(t *testing.T) {
	headers := model.HeaderResult{
		SourcePage: 0,
		Headers:    []model.Header{{Text: "date", Top: 100, Bottom: 110}},
	}
	words := []model.Word{word("Statement of Account", 0, 150, 10, 20)}
	out := CleanPage(1, words, headers)
	require.Len(t, out.Words, 1)
}

// Cleaning already-clean words is a no-op.
func TestCleanPage_Idempotent(t *testing.T) {
	words := []model.Word{word("Rent", 0, 40, 0, 10), word("120.00", 50, 90, 0, 10)}
	first := CleanPage(0, words, model.HeaderResult{})
	second := CleanPage(0, first.Words, model.HeaderResult{})
	assert.Equal(t, first.Words, second.Words)
}
