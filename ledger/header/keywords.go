// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

// Package header implements HeaderExtract and HeaderRecognize: discovering
// the table header row among a page's positioned words, and canonicalizing
// its labels to the closed ledger vocabulary.
package header

import "regexp"

// keywords is the extended header-keyword vocabulary used both to flag
// candidate header rows and to score them.
var keywords = map[string]bool{
	"date": true, "description": true, "amount": true, "balance": true,
	"debit": true, "credit": true, "reference": true, "transaction": true,
	"details": true, "particulars": true, "deposit": true, "withdrawal": true,
	"memo": true, "check": true, "cheque": true, "cr": true, "dr": true,
	"narration": true, "remarks": true, "type": true, "mode": true,
	"value": true, "running": true, "opening": true, "closing": true,
	"txn": true, "ref": true, "no": true, "number": true, "serial": true,
	"posted": true, "effective": true, "available": true,
}

var headerPhrases = map[string]bool{
	"transaction date": true, "value date": true, "posting date": true,
	"transaction details": true, "transaction description": true,
	"debit amount": true, "credit amount": true, "running balance": true,
	"reference number": true, "cheque number": true, "transaction id": true,
}

var dataPrefixes = []string{"opening", "closing", "available", "current", "total", "sub"}

var (
	reDate           = regexp.MustCompile(`^\d{2,4}[-/]\d{2}[-/]\d{2,4}$`)
	reDateLoose      = regexp.MustCompile(`^\d{1,4}[-/]\d{1,2}[-/]\d{1,4}$`)
	reDateStrict2    = regexp.MustCompile(`^\d{2}[-/]\d{2}[-/]\d{2,4}$`)
	reCurrency       = regexp.MustCompile(`^[₹$£€]\s*[\d,]+\.?\d*$`)
	reNumber         = regexp.MustCompile(`^-?[\d,]+\.?\d*$`)
	rePureNumber     = regexp.MustCompile(`^[\d,]+\.?\d*$`)
	reSingleDigit    = regexp.MustCompile(`^\d$`)
	reDrCr           = regexp.MustCompile(`(?i)^(DR|CR)$`)
	reNumberIndic    = regexp.MustCompile(`(?i)^(no\.?|#)$`)
	reParenthetical  = regexp.MustCompile(`^[(\[].*[)\]]$`)
	reParenNumber    = regexp.MustCompile(`^[(\[]?\d+[)\]]?$`)
	reHasAlpha       = regexp.MustCompile(`[A-Za-z]`)
)
