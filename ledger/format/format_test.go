// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sassoftware/statement-ledger/ledger/model"
)

func rowWithFields(fields map[string]string) model.Row {
	return model.Row{Fields: fields}
}

func TestCleaner_DetectDateFormat_ExplicitCountryOverride(t *testing.T) {
	c := NewCleaner("IN")
	got := c.DetectDateFormat(nil)
	assert.Equal(t, "EU", got)
}

// A day-first date (day > 12) flips the detected locale even with no
// explicit country hint.
func TestCleaner_DetectDateFormat_InfersFromUnambiguousDates(t *testing.T) {
	c := NewCleaner("")
	pages := []model.PageRows{
		{Rows: []model.Row{rowWithFields(map[string]string{"date": "25/01/2024", "balance": "100.00"})}},
	}
	assert.Equal(t, "EU", c.DetectDateFormat(pages))
}

func TestCleaner_DetectDateFormat_DefaultsToUSWithNoEvidence(t *testing.T) {
	c := NewCleaner("")
	pages := []model.PageRows{
		{Rows: []model.Row{rowWithFields(map[string]string{"date": "01/02/2024", "balance": "100.00"})}},
	}
	assert.Equal(t, "US", c.DetectDateFormat(pages))
}

func TestCleaner_FormatPage_ParsesAmountsAndDates(t *testing.T) {
	c := NewCleaner("US")
	page := model.PageRows{
		PageNumber: 2,
		Rows: []model.Row{
			rowWithFields(map[string]string{
				"date": "01/02/2024", "particulars": " Rent ", "debit": "Rs. 1,234.56", "balance": "900.00",
			}),
		},
	}
	txns := c.FormatPage(page, "US")
	require.Len(t, txns, 1)
	txn := txns[0]
	assert.Equal(t, "2024-01-02", txn.Date)
	assert.Equal(t, "Rent", txn.Particulars)
	require.NotNil(t, txn.Debit)
	assert.InDelta(t, 1234.56, *txn.Debit, 0.001)
	require.NotNil(t, txn.Balance)
	assert.InDelta(t, 900.00, *txn.Balance, 0.001)
	assert.Equal(t, 2, txn.PageNumber)
}

func TestCleaner_FormatPage_DropsRowsMissingDateOrAmount(t *testing.T) {
	c := NewCleaner("US")
	page := model.PageRows{
		Rows: []model.Row{
			rowWithFields(map[string]string{"particulars": "no date here"}),
			rowWithFields(map[string]string{"date": "01/02/2024"}),
			// fields present but unparseable: the decision is made on the
			// converted values, so these are dropped too
			rowWithFields(map[string]string{"date": "not a date", "balance": "100.00"}),
			rowWithFields(map[string]string{"date": "01/02/2024", "balance": "n/a"}),
		},
	}
	assert.Empty(t, c.FormatPage(page, "US"))
}

// A Dr/Cr column survives typing as the CR/DR marker Score later uses to
// split a bare amount into credit and debit.
func TestCleaner_FormatPage_ParsesTxnTypeColumn(t *testing.T) {
	c := NewCleaner("US")
	page := model.PageRows{
		Rows: []model.Row{
			rowWithFields(map[string]string{
				"date": "01/02/2024", "amount": "100.00", "balance": "900.00", "Dr/Cr": "Dr.",
			}),
		},
	}
	txns := c.FormatPage(page, "US")
	require.Len(t, txns, 1)
	assert.Equal(t, "DR", txns[0].TxnType)
}

func TestParseTxnType(t *testing.T) {
	assert.Equal(t, "CR", parseTxnType("Cr."))
	assert.Equal(t, "CR", parseTxnType("CREDIT"))
	assert.Equal(t, "DR", parseTxnType(" dr "))
	assert.Equal(t, "DR", parseTxnType("Debit"))
	assert.Equal(t, "", parseTxnType("transfer"))
	assert.Equal(t, "", parseTxnType(""))
}

func TestCleaner_FormatPage_KeepsRowWhenAmountBacksUnparseableBalance(t *testing.T) {
	c := NewCleaner("US")
	page := model.PageRows{
		Rows: []model.Row{
			rowWithFields(map[string]string{"date": "01/02/2024", "balance": "n/a", "amount": "50.00"}),
		},
	}
	txns := c.FormatPage(page, "US")
	require.Len(t, txns, 1)
	assert.Nil(t, txns[0].Balance)
	require.NotNil(t, txns[0].Amount)
	assert.InDelta(t, 50.00, *txns[0].Amount, 0.001)
}

// A date parsed under the detected locale round-trips to the same ISO
// value regardless of which of the two ambiguous orderings produced the
// label.
func TestCleaner_FormatPage_LocaleRoundTrip(t *testing.T) {
	c := NewCleaner("EU")
	page := model.PageRows{
		Rows: []model.Row{rowWithFields(map[string]string{"date": "03/04/2024", "balance": "1.00"})},
	}
	txns := c.FormatPage(page, "EU")
	require.Len(t, txns, 1)
	assert.Equal(t, "2024-04-03", txns[0].Date)
}
