// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package columns

import (
	"math"

	"github.com/sassoftware/statement-ledger/ledger/model"
)

// reorderBufferSize bounds the number of out-of-order column-range pages
// ColumnGroups will hold while waiting for a page-number match.
const reorderBufferSize = 10

func overlapPercentage(wx0, wx1, hx0, hx1, xTolerance float64) (bool, float64) {
	x0w, x1w := wx0-xTolerance, wx1
	x0h, x1h := hx0-xTolerance, hx1

	overlapStart := math.Max(x0w, x0h)
	overlapEnd := math.Min(x1w, x1h)
	overlapWidth := math.Max(0, overlapEnd-overlapStart)

	wWidth := x1w - x0w
	hWidth := x1h - x0h
	smaller := math.Min(wWidth, hWidth)

	pct := 0.0
	if smaller > 0 {
		pct = math.Min(1.0, overlapWidth/smaller)
	}
	return overlapWidth > 0, pct
}

// GroupByColumn assigns each word to the header with which it has the
// largest overlap percentage (a 2-point tolerance widens both the word's
// and the range's left edge). Words with zero overlap with any header are
// dropped.
func GroupByColumn(headers []model.Header, words []model.Word, ranges model.ColumnRange) model.ColumnGroup {
	groups := model.ColumnGroup{}
	for _, h := range headers {
		groups[h.Text] = nil
	}

	for _, w := range words {
		var best string
		bestPct := 0.0
		found := false
		for _, h := range headers {
			r, ok := ranges[h.Text]
			if !ok {
				continue
			}
			overlapping, pct := overlapPercentage(w.X0, w.X1, r.Left, r.Right, 2)
			if overlapping && pct > bestPct {
				best = h.Text
				bestPct = pct
				found = true
			}
		}
		if found {
			groups[best] = append(groups[best], w)
		}
	}
	return groups
}

// ColumnRangeBuffer reorders a bounded lookahead of column-range pages so
// ColumnGroups can join against a clean_data stream that may arrive
// slightly out of page-number order, evicting the lowest-numbered entry
// once it grows past reorderBufferSize.
type ColumnRangeBuffer struct {
	entries map[int]model.ColumnRange
}

// NewColumnRangeBuffer returns an empty reorder buffer.
func NewColumnRangeBuffer() *ColumnRangeBuffer {
	return &ColumnRangeBuffer{entries: map[int]model.ColumnRange{}}
}

// Take returns and removes the buffered range for pageNumber, if present.
func (b *ColumnRangeBuffer) Take(pageNumber int) (model.ColumnRange, bool) {
	r, ok := b.entries[pageNumber]
	if ok {
		delete(b.entries, pageNumber)
	}
	return r, ok
}

// Put buffers a page's column range, evicting the lowest page number once
// the buffer exceeds its capacity.
func (b *ColumnRangeBuffer) Put(pageNumber int, r model.ColumnRange) {
	b.entries[pageNumber] = r
	if len(b.entries) > reorderBufferSize {
		min := -1
		for p := range b.entries {
			if min == -1 || p < min {
				min = p
			}
		}
		delete(b.entries, min)
	}
}
