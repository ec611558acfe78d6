// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package rows

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sassoftware/statement-ledger/ledger/model"
)

func anchorRow(top, bottom float64, date, particulars, balance string) model.Row {
	return model.Row{
		YTop: top, YBottom: bottom, XLeft: 0, XRight: 500,
		Fields: map[string]string{"date": date, "particulars": particulars, "balance": balance},
	}
}

// A continuation line with only a particulars fragment is absorbed into
// the anchor row above it.
func TestMergeRows_FoldsIncompleteRowIntoNearestAnchor(t *testing.T) {
	rows := []model.Row{
		anchorRow(100, 110, "01/02/2024", "Rent payment", "1,000.00"),
		{YTop: 111, YBottom: 121, XLeft: 0, XRight: 500, Fields: map[string]string{"particulars": "for January"}},
		anchorRow(140, 150, "01/03/2024", "Groceries", "900.00"),
	}

	merged := MergeRows(rows)
	require.Len(t, merged, 2)
	assert.Contains(t, merged[0].Fields["particulars"], "Rent payment")
	assert.Contains(t, merged[0].Fields["particulars"], "for January")
}

// A date-only row and a balance-only row close together are fused into
// one complete row.
func TestMergeRows_PairsTwoIncompleteRowsIntoOneAnchor(t *testing.T) {
	rows := []model.Row{
		{YTop: 100, YBottom: 110, Fields: map[string]string{"date": "01/02/2024", "particulars": "Split tx"}},
		{YTop: 111, YBottom: 121, Fields: map[string]string{"balance": "750.00"}},
	}

	merged := MergeRows(rows)
	require.Len(t, merged, 1)
	assert.Equal(t, "01/02/2024", merged[0].Fields["date"])
	assert.Equal(t, "750.00", merged[0].Fields["balance"])
}

func TestMergeRows_LeavesUnmergeableIncompleteRowStanding(t *testing.T) {
	rows := []model.Row{
		{YTop: 500, YBottom: 510, Fields: map[string]string{"particulars": "stray fragment"}},
	}
	merged := MergeRows(rows)
	require.Len(t, merged, 1)
	assert.Equal(t, "stray fragment", merged[0].Fields["particulars"])
}

func TestMergeRows_OutputSortedByYTop(t *testing.T) {
	rows := []model.Row{
		anchorRow(200, 210, "01/03/2024", "Second", "100.00"),
		anchorRow(100, 110, "01/02/2024", "First", "200.00"),
	}
	merged := MergeRows(rows)
	require.Len(t, merged, 2)
	assert.Equal(t, "First", merged[0].Fields["particulars"])
	assert.Equal(t, "Second", merged[1].Fields["particulars"])
}

func TestMergeRows_EmptyInput(t *testing.T) {
	assert.Empty(t, MergeRows(nil))
}

func TestSmartMergeRow_AmountOnlyOverwritesInvalidTarget(t *testing.T) {
	target := model.Row{Fields: map[string]string{"balance": ""}}
	source := model.Row{Fields: map[string]string{"balance": "500.00"}}
	smartMergeRow(&target, source)
	assert.Equal(t, "500.00", target.Fields["balance"])

	target2 := model.Row{Fields: map[string]string{"balance": "100.00"}}
	smartMergeRow(&target2, source)
	assert.Equal(t, "100.00", target2.Fields["balance"], "valid existing amount must not be overwritten")
}
