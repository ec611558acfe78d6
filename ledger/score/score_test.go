// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sassoftware/statement-ledger/ledger/model"
)

func ptr(f float64) *float64 { return &f }

func TestScore_NoTransactions(t *testing.T) {
	result := Score(nil)
	assert.Equal(t, Result{Score: 0, Mode: "post"}, result)
}

func TestScore_AllBalancesMissing(t *testing.T) {
	txns := []model.Transaction{
		{Date: "2024-01-01", Particulars: "a"},
		{Date: "2024-01-02", Particulars: "b"},
	}
	result := Score(txns)
	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, "post", result.Mode)
}

func TestScore_PerfectPostMode(t *testing.T) {
	txns := []model.Transaction{
		{Date: "2024-01-01", Balance: ptr(1000)},
		{Date: "2024-01-02", Balance: ptr(1100), Credit: ptr(100)},
	}
	result := Score(txns)
	assert.Equal(t, 10.0, result.Score)
	assert.Equal(t, "post", result.Mode)
}

func TestScore_PerfectPreMode(t *testing.T) {
	// balance[i-1] == balance[i] - credit[i] + debit[i]
	txns := []model.Transaction{
		{Date: "2024-01-01", Balance: ptr(1100)},
		{Date: "2024-01-02", Balance: ptr(1000), Debit: ptr(100)},
	}
	result := Score(txns)
	assert.Equal(t, 10.0, result.Score)
	assert.Equal(t, "pre", result.Mode)
}

func TestScore_SynthesizesFromSignedAmount(t *testing.T) {
	txns := []model.Transaction{
		{Date: "2024-01-01", Balance: ptr(1000)},
		{Date: "2024-01-02", Balance: ptr(1100), Amount: ptr(100)},
	}
	result := Score(txns)
	assert.Equal(t, 10.0, result.Score)
}

// A positive amount with an explicit DR marker is a debit, which the
// bare sign heuristic alone would have read as a credit.
func TestScore_SynthesizesFromAmountAndTxnType(t *testing.T) {
	txns := []model.Transaction{
		{Date: "2024-01-01", Balance: ptr(1000)},
		{Date: "2024-01-02", Balance: ptr(900), Amount: ptr(100), TxnType: "DR"},
		{Date: "2024-01-03", Balance: ptr(1000), Amount: ptr(100), TxnType: "CR"},
	}
	result := Score(txns)
	assert.Equal(t, 10.0, result.Score)
	assert.Equal(t, "post", result.Mode)
}

func TestScore_DescendingDatesAreReversed(t *testing.T) {
	txns := []model.Transaction{
		{Date: "2024-01-02", Balance: ptr(1100), Credit: ptr(100)},
		{Date: "2024-01-01", Balance: ptr(1000)},
	}
	result := Score(txns)
	assert.Equal(t, 10.0, result.Score)
}

func TestScore_MixedOrderSortsByDateThenIndex(t *testing.T) {
	txns := []model.Transaction{
		{Date: "2024-01-03", Balance: ptr(1200), Credit: ptr(100)},
		{Date: "2024-01-01", Balance: ptr(1000)},
		{Date: "2024-01-02", Balance: ptr(1100), Credit: ptr(100)},
	}
	result := Score(txns)
	assert.Equal(t, 10.0, result.Score)
}

func TestScore_IsBounded(t *testing.T) {
	txns := []model.Transaction{
		{Date: "2024-01-01", Balance: ptr(1000)},
		{Date: "2024-01-02", Balance: ptr(9999), Credit: ptr(1)},
		{Date: "2024-01-03", Balance: ptr(9999), Credit: ptr(1)},
	}
	result := Score(txns)
	assert.GreaterOrEqual(t, result.Score, 0.0)
	assert.LessOrEqual(t, result.Score, 10.0)
}
