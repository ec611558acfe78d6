// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapHeaderKey_KnownVariants(t *testing.T) {
	assert.Equal(t, "date", mapHeaderKey("Txn Date"))
	assert.Equal(t, "particulars", mapHeaderKey("Transaction Details"))
	assert.Equal(t, "credit", mapHeaderKey("Deposits"))
	assert.Equal(t, "debit", mapHeaderKey("Withdrawals"))
	assert.Equal(t, "balance", mapHeaderKey("Balance"))
}

func TestMapHeaderKey_UnknownPassesThrough(t *testing.T) {
	assert.Equal(t, "Cheque No", mapHeaderKey("Cheque No"))
}

func TestMapHeaders_RemapsAllKeys(t *testing.T) {
	fields := map[string]string{"Txn Date": "01/02/2024", "Deposits": "100.00"}
	mapped := mapHeaders(fields)
	assert.Equal(t, "01/02/2024", mapped["date"])
	assert.Equal(t, "100.00", mapped["credit"])
}
