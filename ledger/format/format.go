// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package format

import (
	"strings"

	"github.com/sassoftware/statement-ledger/ledger/model"
)

// sampleRowsPerPage and sampleMaxPages bound how much of the statement
// DetectDateFormat inspects before committing to a locale.
const (
	sampleRowsPerPage = 10
	sampleMaxPages    = 3
)

// Cleaner runs FormatClean for one statement: it first samples a handful
// of pages to decide whether dates are month-first or day-first, then
// converts each page's rows into typed Transactions under that decision.
type Cleaner struct {
	Country string
}

// NewCleaner returns a Cleaner for the statement's declared country.
func NewCleaner(country string) *Cleaner {
	return &Cleaner{Country: country}
}

// DetectDateFormat samples up to the first sampleMaxPages pages (up to
// sampleRowsPerPage rows each) for date values and returns "US" or "EU".
func (c *Cleaner) DetectDateFormat(pages []model.PageRows) string {
	var sampleDates []string
	for i, page := range pages {
		if i >= sampleMaxPages {
			break
		}
		for j, row := range page.Rows {
			if j >= sampleRowsPerPage {
				break
			}
			mapped := mapHeaders(row.Fields)
			if d := mapped["date"]; d != "" {
				sampleDates = append(sampleDates, d)
			}
		}
	}
	return getDateCountryFormat(sampleDates, c.Country)
}

// parseTxnType normalizes a transaction-type cell ("Cr.", "DEBIT", "DR")
// to "CR" or "DR", or "" when the cell doesn't name either.
func parseTxnType(value string) string {
	s := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(value)), ".", "")
	if strings.Contains(s, "CREDIT") || s == "CR" {
		return "CR"
	}
	if strings.Contains(s, "DEBIT") || s == "DR" {
		return "DR"
	}
	return ""
}

// formatRow remaps and converts one row. The drop decision is made on
// the converted values, not raw key presence: a row whose date fails to
// parse, or whose balance is unparseable with no amount to fall back on,
// is rejected.
func formatRow(mapped map[string]string, dateFormat string) (model.Transaction, bool) {
	var txn model.Transaction
	for key, value := range mapped {
		switch key {
		case "date":
			switch dateFormat {
			case "EU":
				txn.Date = parseDateEUFormat(value)
			default:
				txn.Date = parseDateUSFormat(value)
			}
		case "particulars":
			txn.Particulars = strings.TrimSpace(value)
		case "debit":
			txn.Debit = currencyStringToFloat(value)
		case "credit":
			txn.Credit = currencyStringToFloat(value)
		case "balance":
			txn.Balance = currencyStringToFloat(value)
		case "amount":
			txn.Amount = currencyStringToFloat(value)
		case "type":
			txn.TxnType = parseTxnType(value)
		}
	}
	if !txn.Valid() {
		return model.Transaction{}, false
	}
	return txn, true
}

// FormatPage converts one page's merged rows into Transactions under the
// date format already decided by DetectDateFormat.
func (c *Cleaner) FormatPage(page model.PageRows, dateFormat string) []model.Transaction {
	out := make([]model.Transaction, 0, len(page.Rows))
	for _, row := range page.Rows {
		mapped := mapHeaders(row.Fields)
		txn, ok := formatRow(mapped, dateFormat)
		if !ok {
			continue
		}
		txn.PageNumber = page.PageNumber
		out = append(out, txn)
	}
	return out
}
