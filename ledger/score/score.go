// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

// Package score implements the Score stage: it sorts a statement's
// transactions by date, synthesizes a credit/debit pair from any bare
// signed amount, then checks how often the running balance is internally
// consistent under a post-transaction or a pre-transaction convention.
package score

import (
	"math"
	"sort"

	"github.com/sassoftware/statement-ledger/ledger/model"
)

// Result is the single record the Score stage emits.
type Result struct {
	Score float64
	Mode  string
}

// creditDebit derives the (credit, debit) pair the arithmetic check uses:
// an explicit credit/debit pair wins outright; a bare amount with a CR/DR
// type marker is synthesized accordingly; otherwise a bare amount is
// treated as a credit when positive and a debit when negative.
func creditDebit(t model.Transaction) (credit, debit float64) {
	if t.Credit != nil || t.Debit != nil {
		if t.Credit != nil {
			credit = *t.Credit
		}
		if t.Debit != nil {
			debit = *t.Debit
		}
		return credit, debit
	}
	if t.Amount != nil {
		switch t.TxnType {
		case "CR":
			return *t.Amount, 0
		case "DR":
			return 0, math.Abs(*t.Amount)
		}
		if *t.Amount >= 0 {
			return *t.Amount, 0
		}
		return 0, -*t.Amount
	}
	return 0, 0
}

// sortTransactions orders a copy of txns for the consistency check:
// already-ascending or already-descending date sequences are kept or
// reversed in place; a mixed order falls back to a stable sort on
// (date, original index).
func sortTransactions(txns []model.Transaction) []model.Transaction {
	type indexed struct {
		txn model.Transaction
		idx int
	}
	valid := make([]indexed, 0, len(txns))
	for i, t := range txns {
		if t.Date != "" {
			valid = append(valid, indexed{t, i})
		}
	}
	if len(valid) < 2 {
		out := make([]model.Transaction, len(txns))
		copy(out, txns)
		return out
	}

	ascending := true
	descending := true
	for i := 1; i < len(valid); i++ {
		if valid[i].txn.Date < valid[i-1].txn.Date {
			ascending = false
		}
		if valid[i].txn.Date > valid[i-1].txn.Date {
			descending = false
		}
	}

	out := make([]model.Transaction, len(txns))
	copy(out, txns)
	switch {
	case ascending:
		return out
	case descending:
		reversed := make([]model.Transaction, len(out))
		for i, t := range out {
			reversed[len(out)-1-i] = t
		}
		return reversed
	default:
		sorted := make([]indexed, len(txns))
		for i, t := range txns {
			sorted[i] = indexed{t, i}
		}
		sort.SliceStable(sorted, func(i, j int) bool {
			di, dj := sorted[i].txn.Date, sorted[j].txn.Date
			if di == "" {
				di = "0000-00-00"
			}
			if dj == "" {
				dj = "0000-00-00"
			}
			if di != dj {
				return di < dj
			}
			return sorted[i].idx < sorted[j].idx
		})
		result := make([]model.Transaction, len(sorted))
		for i, s := range sorted {
			result[i] = s.txn
		}
		return result
	}
}

const tolerance = 0.01

// checkMode runs one arithmetic convention (post- or pre-transaction)
// across consecutive transaction pairs and returns the fraction that hold
// within tolerance.
func checkMode(sorted []model.Transaction, post bool) float64 {
	matches, checks := 0, 0
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if prev.Balance == nil || cur.Balance == nil {
			continue
		}
		checks++
		credit, debit := creditDebit(cur)
		var expected, actual float64
		if post {
			expected = *prev.Balance + credit - debit
			actual = *cur.Balance
		} else {
			expected = *cur.Balance - credit + debit
			actual = *prev.Balance
		}
		if math.Abs(expected-actual) < tolerance {
			matches++
		}
	}
	if checks == 0 {
		return 0
	}
	return float64(matches) / float64(checks)
}

// Score measures the internal arithmetic consistency of a statement's
// running balance against both the post-transaction and pre-transaction
// conventions, returning 10x the winning fraction rounded to 2 decimals.
func Score(txns []model.Transaction) Result {
	if len(txns) == 0 {
		return Result{Score: 0, Mode: "post"}
	}

	sorted := sortTransactions(txns)
	postScore := checkMode(sorted, true)
	preScore := checkMode(sorted, false)

	mode := "pre"
	if postScore >= preScore {
		mode = "post"
	}

	best := math.Max(postScore, preScore)
	return Result{
		Score: math.Round(10*best*100) / 100,
		Mode:  mode,
	}
}
