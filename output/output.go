// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

// Package output serializes the pipeline's final transaction stream to
// its four delivery formats (csv, json, jsonl, xlsx), with
// geometry fields stripped and the fixed CSV column order.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/sassoftware/statement-ledger/ledger/model"
)

// Row is the geometry-stripped record every writer serializes: the typed
// canonical fields plus any extra column the statement carried
// that isn't part of the closed vocabulary (e.g. a check number column).
type Row struct {
	Date        string            `json:"date"`
	Particulars string            `json:"particulars"`
	CheckNo     string            `json:"check_no,omitempty"`
	Debit       *float64          `json:"debit"`
	Credit      *float64          `json:"credit"`
	Balance     *float64          `json:"balance"`
	Extra       map[string]string `json:"-"`
}

// csvColumns is the fixed CSV header order; any Extra
// keys are appended alphabetically after these.
var csvColumns = []string{"date", "particulars", "check_no", "debit", "credit", "balance"}

// Summary is computed alongside the final output: total pages processed
// is the count of distinct page numbers the typed transaction stream saw.
type Summary struct {
	TotalTransactions int
	TotalPages        int
	Score             float64
	Mode              string
}

// FromTransactions converts typed transactions into output Rows and
// computes the run's Summary. extra, if provided, supplies any
// non-canonical column value per transaction index (e.g. a check number),
// keyed the same way Extra is serialized.
func FromTransactions(txns []model.Transaction, extra []map[string]string) ([]Row, Summary) {
	rows := make([]Row, len(txns))
	pages := map[int]bool{}
	for i, t := range txns {
		r := Row{
			Date:        t.Date,
			Particulars: t.Particulars,
			Debit:       t.Debit,
			Credit:      t.Credit,
			Balance:     t.Balance,
		}
		if extra != nil && i < len(extra) {
			r.Extra = extra[i]
			if cn, ok := extra[i]["check_no"]; ok {
				r.CheckNo = cn
			}
		}
		rows[i] = r
		pages[t.PageNumber] = true
	}
	return rows, Summary{TotalTransactions: len(txns), TotalPages: len(pages)}
}

func extraKeys(rows []Row) []string {
	seen := map[string]bool{}
	for _, r := range rows {
		for k := range r.Extra {
			if k == "check_no" {
				continue
			}
			seen[k] = true
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func fieldString(f *float64) string {
	if f == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *f)
}

// WriteCSV writes rows to w with the fixed column order plus any extra
// columns appended alphabetically.
func WriteCSV(w io.Writer, rows []Row) error {
	extras := extraKeys(rows)
	cw := csv.NewWriter(w)
	header := append(append([]string(nil), csvColumns...), extras...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("output: write csv header: %w", err)
	}
	for _, r := range rows {
		record := []string{r.Date, r.Particulars, r.CheckNo, fieldString(r.Debit), fieldString(r.Credit), fieldString(r.Balance)}
		for _, k := range extras {
			record = append(record, r.Extra[k])
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("output: write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func rowToMap(r Row, extras []string) map[string]any {
	m := map[string]any{
		"date":        r.Date,
		"particulars": r.Particulars,
		"check_no":    r.CheckNo,
		"debit":       r.Debit,
		"credit":      r.Credit,
		"balance":     r.Balance,
	}
	for _, k := range extras {
		m[k] = r.Extra[k]
	}
	return m
}

// WriteJSON writes rows as a single JSON array.
func WriteJSON(w io.Writer, rows []Row) error {
	extras := extraKeys(rows)
	out := make([]map[string]any, len(rows))
	for i, r := range rows {
		out[i] = rowToMap(r, extras)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// WriteJSONL writes rows as newline-delimited JSON, one object per line.
func WriteJSONL(w io.Writer, rows []Row) error {
	extras := extraKeys(rows)
	enc := json.NewEncoder(w)
	for _, r := range rows {
		if err := enc.Encode(rowToMap(r, extras)); err != nil {
			return fmt.Errorf("output: encode jsonl row: %w", err)
		}
	}
	return nil
}
