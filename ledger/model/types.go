// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

// Package model holds the shared data types that flow between the ledger
// pipeline's stages: words, headers, column ranges, rows, and the final
// typed transaction.
package model

import "github.com/sassoftware/statement-ledger/words"

// Word is re-exported so pipeline packages don't need to import words
// directly for the common case.
type Word = words.Word

// RuleLine is re-exported for the same reason.
type RuleLine = words.RuleLine

// CanonicalFields is the closed vocabulary canonical header labels are
// mapped to.
var CanonicalFields = []string{"date", "particulars", "credit", "debit", "balance", "amount", "type"}

// Header is a logical column label discovered by HeaderExtract and
// canonicalized by HeaderRecognize.
type Header struct {
	Text         string
	OriginalText string
	X0, X1       float64
	Top, Bottom  float64
}

// HeaderResult is the single record HeaderExtract/HeaderRecognize emits.
type HeaderResult struct {
	Headers    []Header
	SourcePage int
	TotalWords int
	// IsCopy marks a header row detected as a verbatim repeat on a later
	// page (a running header reprinted on each statement page); ColumnRange
	// reuses the previous page's column ranges verbatim when set.
	IsCopy bool
}

// Range is a column's horizontal span in PDF points.
type Range struct {
	Left, Right float64
}

// ColumnRange maps a canonical/raw header label to its span on one page.
type ColumnRange map[string]Range

// ColumnGroup maps a header label to the words assigned to it on one page.
type ColumnGroup map[string][]Word

// Row is a reconstructed table row: a bounding box plus a sparse
// header-to-text mapping.
type Row struct {
	YTop, YBottom float64
	XLeft, XRight float64
	Fields        map[string]string
	PageNumber    int
}

// Clone returns a deep copy of the row's Fields map so callers can mutate
// the copy without affecting the row that produced it.
func (r Row) Clone() Row {
	fields := make(map[string]string, len(r.Fields))
	for k, v := range r.Fields {
		fields[k] = v
	}
	r.Fields = fields
	return r
}

// IsAnchor reports whether the row has both a non-empty date and balance,
// the definition MergeRows uses to treat a row as a fixed point.
func (r Row) IsAnchor() bool {
	return r.Fields["date"] != "" && r.Fields["balance"] != ""
}

// Transaction is the final typed row emitted by FormatClean.
type Transaction struct {
	Date        string // ISO YYYY-MM-DD, or "" if unparseable
	Particulars string
	Debit       *float64
	Credit      *float64
	Balance     *float64
	Amount      *float64
	TxnType     string // "CR", "DR", or "" when the statement has no type column
	PageNumber  int
}

// Valid reports the invariant enforced at the FormatClean boundary: a
// transaction is valid iff it has a date and either a balance or an
// amount.
func (t Transaction) Valid() bool {
	return t.Date != "" && (t.Balance != nil || t.Amount != nil)
}

// PageRows bundles one page's reconstructed rows, the unit BuildRows and
// MergeRows stream between stages.
type PageRows struct {
	PageNumber int
	Rows       []Row
}

// PageWords bundles one page's cleaned words, the unit CleanData emits.
type PageWords struct {
	PageNumber int
	Words      []Word
	WordCount  int
}

// PageColumnRange is one page's column ranges, tagged by page number so
// ColumnGroups can join it against the matching PageWords.
type PageColumnRange struct {
	PageNumber int
	Ranges     ColumnRange
}

// PageColumnGroup is one page's words grouped by header.
type PageColumnGroup struct {
	PageNumber int
	Groups     ColumnGroup
}
