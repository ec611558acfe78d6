// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package header

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sassoftware/statement-ledger/ledger/model"
)

func header(text string) model.Header {
	return model.Header{Text: text, X0: 0, X1: 10, Top: 0, Bottom: 10}
}

func TestRecognizeHeaders_ExactMatch(t *testing.T) {
	result := model.HeaderResult{Headers: []model.Header{header("Date"), header("Balance")}}
	out := RecognizeHeaders(result)
	assert.Equal(t, "date", out.Headers[0].Text)
	assert.Equal(t, "Date", out.Headers[0].OriginalText)
	assert.Equal(t, "balance", out.Headers[1].Text)
}

func TestRecognizeHeaders_FuzzyVariant(t *testing.T) {
	result := model.HeaderResult{Headers: []model.Header{header("Tran Date"), header("Withdrawals")}}
	out := RecognizeHeaders(result)
	assert.Equal(t, "date", out.Headers[0].Text)
	assert.Equal(t, "debit", out.Headers[1].Text)
}

func TestRecognizeHeaders_BelowThresholdKeepsOriginal(t *testing.T) {
	result := model.HeaderResult{Headers: []model.Header{header("Cheque No")}}
	out := RecognizeHeaders(result)
	assert.Equal(t, "Cheque No", out.Headers[0].Text)
	assert.Equal(t, "Cheque No", out.Headers[0].OriginalText)
}

// TestRecognizeHeaders_TieBreakByScore covers two headers that both map to
// the same canonical label: only one claimant wins it (here both score 100,
// so the earlier header keeps the label).
func TestRecognizeHeaders_TieBreakByScore(t *testing.T) {
	result := model.HeaderResult{Headers: []model.Header{header("Balance"), header("Running Balance")}}
	out := RecognizeHeaders(result)

	canonicalCount := 0
	for _, h := range out.Headers {
		if h.Text == "balance" {
			canonicalCount++
		}
	}
	assert.Equal(t, 1, canonicalCount, "only one header should claim the canonical label")

	for _, h := range out.Headers {
		assert.NotEmpty(t, h.OriginalText)
	}
}

func TestRecognizeHeaders_PreservesGeometry(t *testing.T) {
	h := header("Debit")
	h.X0, h.X1, h.Top, h.Bottom = 12, 34, 56, 78
	result := model.HeaderResult{Headers: []model.Header{h}}
	out := RecognizeHeaders(result)
	assert.Equal(t, 12.0, out.Headers[0].X0)
	assert.Equal(t, 34.0, out.Headers[0].X1)
	assert.Equal(t, 56.0, out.Headers[0].Top)
	assert.Equal(t, 78.0, out.Headers[0].Bottom)
}
