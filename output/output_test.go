// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sassoftware/statement-ledger/ledger/model"
)

func ptr(f float64) *float64 { return &f }

func TestFromTransactions_CountsDistinctPages(t *testing.T) {
	txns := []model.Transaction{
		{Date: "2024-01-01", Balance: ptr(100), PageNumber: 0},
		{Date: "2024-01-02", Balance: ptr(200), PageNumber: 0},
		{Date: "2024-01-03", Balance: ptr(300), PageNumber: 1},
	}
	rows, summary := FromTransactions(txns, nil)
	assert.Len(t, rows, 3)
	assert.Equal(t, 3, summary.TotalTransactions)
	assert.Equal(t, 2, summary.TotalPages)
}

func TestWriteCSV_FixedColumnOrder(t *testing.T) {
	rows := []Row{{Date: "2024-01-01", Particulars: "opening", Balance: ptr(100)}}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "date,particulars,check_no,debit,credit,balance", lines[0])
	assert.Contains(t, lines[1], "2024-01-01,opening,,,,100.00")
}

func TestWriteCSV_AppendsExtraColumnsAlphabetically(t *testing.T) {
	rows := []Row{{
		Date: "2024-01-01", Balance: ptr(1),
		Extra: map[string]string{"zeta": "z", "alpha": "a"},
	}}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "date,particulars,check_no,debit,credit,balance,alpha,zeta", lines[0])
}

func TestWriteJSONL_OneObjectPerLine(t *testing.T) {
	rows := []Row{
		{Date: "2024-01-01", Balance: ptr(1)},
		{Date: "2024-01-02", Balance: ptr(2)},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteJSONL(&buf, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
}

func TestWriteJSON_IsAnArray(t *testing.T) {
	rows := []Row{{Date: "2024-01-01", Balance: ptr(1)}}
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, rows))
	assert.True(t, strings.HasPrefix(strings.TrimSpace(buf.String()), "["))
}

func TestWriteXLSX_Succeeds(t *testing.T) {
	rows := []Row{{Date: "2024-01-01", Particulars: "opening", Balance: ptr(100)}}
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, rows))
	assert.NotZero(t, buf.Len())
}
