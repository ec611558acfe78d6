// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sassoftware/statement-ledger/ledger/model"
)

func word(text string, x0, x1, top, bottom float64) model.Word {
	return model.Word{Text: text, X0: x0, X1: x1, Top: top, Bottom: bottom, Height: bottom - top}
}

func TestExtractHeaders_SingleRowStatement(t *testing.T) {
	pages := []PageWords{
		{
			PageWidth: 500,
			Words: []model.Word{
				word("Date", 10, 40, 100, 110),
				word("Amount", 200, 250, 100, 110),
				word("Balance", 400, 450, 100, 110),
				word("01/02/2024", 10, 60, 130, 140),
				word("100.00", 200, 240, 130, 140),
				word("1,000.00", 400, 455, 130, 140),
			},
		},
	}

	result, err := ExtractHeaders(pages)
	require.NoError(t, err)
	require.Len(t, result.Headers, 3)
	assert.Equal(t, 0, result.SourcePage)

	var texts []string
	for _, h := range result.Headers {
		texts = append(texts, h.Text)
	}
	assert.Contains(t, texts, "Date")
	assert.Contains(t, texts, "Amount")
	assert.Contains(t, texts, "Balance")
}

func TestExtractHeaders_EmptyDocumentIsImageBased(t *testing.T) {
	_, err := ExtractHeaders([]PageWords{{Words: nil, PageWidth: 500}, {Words: nil, PageWidth: 500}})
	require.Error(t, err)

	var le *model.Error
	require.ErrorAs(t, err, &le)
	assert.Equal(t, model.KindPdfImageBased, le.Kind)
}

func TestExtractHeaders_NoCandidatesFailsHeadersNotFound(t *testing.T) {
	pages := []PageWords{
		{
			PageWidth: 500,
			Words: []model.Word{
				word("lorem", 10, 40, 100, 110),
			},
		},
	}
	_, err := ExtractHeaders(pages)
	require.Error(t, err)

	var le *model.Error
	require.ErrorAs(t, err, &le)
	assert.Equal(t, model.KindHeadersNotFound, le.Kind)
}

// A short single-digit-day date just below the seed row is data, not a
// header continuation.
func TestExtractHeaders_SkipsShortDateBelowSeedRow(t *testing.T) {
	pages := []PageWords{
		{
			PageWidth: 500,
			Words: []model.Word{
				word("Date", 10, 40, 100, 110),
				word("Particulars", 100, 200, 100, 110),
				word("Debit", 250, 300, 100, 110),
				word("Credit", 320, 370, 100, 110),
				word("Balance", 400, 450, 100, 110),
				word("3-4-24", 10, 45, 113, 121),
				word("5,000.00", 400, 455, 113, 121),
			},
		},
	}

	result, err := ExtractHeaders(pages)
	require.NoError(t, err)

	for _, h := range result.Headers {
		assert.NotContains(t, h.Text, "3-4-24")
	}
}

// A data-context line below the seed header row ("Opening Balance") is
// not pulled in as a header continuation.
func TestExtractHeaders_SkipsDataContextLineBelow(t *testing.T) {
	pages := []PageWords{
		{
			PageWidth: 500,
			Words: []model.Word{
				word("Date", 10, 40, 100, 110),
				word("Particulars", 100, 200, 100, 110),
				word("Debit", 250, 300, 100, 110),
				word("Credit", 320, 370, 100, 110),
				word("Balance", 400, 450, 100, 110),
				word("Opening", 100, 150, 113, 121),
				word("Balance", 155, 200, 113, 121),
				word("01/01/2024", 10, 60, 130, 140),
				word("5,000.00", 400, 455, 130, 140),
			},
		},
	}

	result, err := ExtractHeaders(pages)
	require.NoError(t, err)
	require.Len(t, result.Headers, 5)

	for _, h := range result.Headers {
		assert.NotEqual(t, "Opening", h.Text)
		assert.NotEqual(t, "Opening Balance", h.Text)
	}
}
