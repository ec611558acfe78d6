// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

// Package format implements FormatClean: remapping header labels to the
// closed canonical vocabulary, converting cell text to typed values, and
// detecting whether a statement's dates are month-first or day-first.
package format

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// headerVariants is a deliberately simpler, substring-based vocabulary
// than ledger/header's fuzzy geometry-time map: by the time rows reach
// FormatClean, header text has already survived one canonicalization
// pass, so a cheap substring match is enough to catch anything that
// slipped through as a raw label.
var headerVariants = map[string][]string{
	"date":        {"date", "txndate", "trandate", "transactiondate"},
	"particulars": {"particulars", "transactiondetails", "description", "remarks", "narration"},
	"credit":      {"deposits", "credit", "credits", "deposit"},
	"debit":       {"withdrawals", "debit", "debits", "withdrawal"},
	"balance":     {"balance"},
	"type":        {"type", "txntype", "drcr", "crdr", "transactiontype"},
}

// headerOrder fixes the lookup order so an ambiguous label (e.g. "cr",
// a substring of both "credits" and "crdr") resolves the same way every
// run, amount-style columns before the type column.
var headerOrder = []string{"date", "particulars", "credit", "debit", "balance", "type"}

var reNonAlpha = regexp.MustCompile(`[^a-z]`)

var deaccent = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func normalizeHeader(text string) string {
	folded, _, err := transform.String(deaccent, text)
	if err != nil {
		folded = text
	}
	return reNonAlpha.ReplaceAllString(strings.ToLower(folded), "")
}

func mapHeaderKey(header string) string {
	normalized := normalizeHeader(header)
	for _, canonical := range headerOrder {
		for _, variant := range headerVariants[canonical] {
			if strings.Contains(variant, normalized) || strings.Contains(normalized, variant) {
				return canonical
			}
		}
	}
	return header
}

// mapHeaders remaps every field key in fields to its canonical name. Two
// raw keys that map to the same canonical name collide; the later one
// (in Go's undefined map iteration order) wins.
func mapHeaders(fields map[string]string) map[string]string {
	mapped := make(map[string]string, len(fields))
	for key, value := range fields {
		mapped[mapHeaderKey(key)] = value
	}
	return mapped
}
