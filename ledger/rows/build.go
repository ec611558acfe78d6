// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package rows

import (
	"math"
	"sort"

	"github.com/sassoftware/statement-ledger/ledger/model"
)

// particularsField is the one column BuildRows samples to compute the
// dynamic tolerance, since it's the column most likely to be tightly
// packed (multi-line descriptions).
const particularsField = "particulars"

type taggedWord struct {
	model.Word
	header string
}

func crossesHorizontal(lines []model.RuleLine, bottomY, topY float64) bool {
	for _, l := range lines {
		if bottomY < l.Pos && l.Pos < topY {
			return true
		}
	}
	return false
}

// groupRows merges vertically adjacent words within each header's column
// into single multi-word cells. The merge applies to every column, not
// only particulars.
func groupRows(groups model.ColumnGroup, horizontalLines []model.RuleLine, yTolerance float64) model.ColumnGroup {
	out := model.ColumnGroup{}
	for key, words := range groups {
		sorted := append([]model.Word(nil), words...)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Top < sorted[j].Top })

		var merged []model.Word
		var cur *model.Word
		var yBottom float64
		for _, w := range sorted {
			w := w
			if cur == nil {
				cur = &w
				yBottom = w.Bottom
				continue
			}
			closeVertically := math.Abs(w.Top-yBottom) <= yTolerance || math.Abs(w.Bottom-yBottom) <= yTolerance
			noHorizontal := !crossesHorizontal(horizontalLines, yBottom, w.Top)
			if closeVertically && noHorizontal {
				cur.Text = cur.Text + " " + w.Text
				if w.Bottom > cur.Bottom {
					cur.Bottom = w.Bottom
				}
				yBottom = cur.Bottom
			} else {
				merged = append(merged, *cur)
				c := w
				cur = &c
				yBottom = w.Bottom
			}
		}
		if cur != nil {
			merged = append(merged, *cur)
		}
		out[key] = merged
	}
	return out
}

type rowBounds struct{ top, bottom float64 }

func intersectsRow(b rowBounds, w model.Word, yTolerance float64) bool {
	top := b.top - yTolerance
	bottom := b.bottom + yTolerance
	return !(w.Bottom < top || w.Top > bottom)
}

// createRowsJSON flattens header-tagged words, sorts by top, and places
// each item in the first open row whose expanded y-bounds intersect it.
func createRowsJSON(groups model.ColumnGroup, pageNumber int, yTolerance float64) []model.Row {
	var items []taggedWord
	for header, words := range groups {
		for _, w := range words {
			items = append(items, taggedWord{Word: w, header: header})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Top < items[j].Top })

	var rowItems [][]taggedWord
	var bounds []rowBounds
	for _, item := range items {
		placed := false
		for i := range rowItems {
			if intersectsRow(bounds[i], item.Word, yTolerance) {
				rowItems[i] = append(rowItems[i], item)
				if item.Top < bounds[i].top {
					bounds[i].top = item.Top
				}
				if item.Bottom > bounds[i].bottom {
					bounds[i].bottom = item.Bottom
				}
				placed = true
				break
			}
		}
		if !placed {
			rowItems = append(rowItems, []taggedWord{item})
			bounds = append(bounds, rowBounds{top: item.Top, bottom: item.Bottom})
		}
	}

	result := make([]model.Row, 0, len(rowItems))
	for _, row := range rowItems {
		fields := map[string]string{}
		yTop, yBottom := math.Inf(1), math.Inf(-1)
		xLeft, xRight := math.Inf(1), math.Inf(-1)
		for _, item := range row {
			if item.Top < yTop {
				yTop = item.Top
			}
			if item.Bottom > yBottom {
				yBottom = item.Bottom
			}
			if item.X0 < xLeft {
				xLeft = item.X0
			}
			if item.X1 > xRight {
				xRight = item.X1
			}
			if existing, ok := fields[item.header]; ok {
				fields[item.header] = existing + " " + item.Text
			} else {
				fields[item.header] = item.Text
			}
		}
		result = append(result, model.Row{
			YTop: yTop, YBottom: yBottom, XLeft: xLeft, XRight: xRight,
			Fields: fields, PageNumber: pageNumber,
		})
	}
	return result
}

// BuildRows reconstructs a page's rows from its column groups and
// horizontal rule lines. It computes the dynamic τ_y tolerance from the
// particulars column's word-gap distribution before clustering.
func BuildRows(pageNumber int, groups model.ColumnGroup, horizontalLines []model.RuleLine) []model.Row {
	sample := groups[particularsField]
	if len(sample) == 0 {
		for _, words := range groups {
			sample = append(sample, words...)
		}
	}
	yTolerance := CalculateYMergeTolerance(sample)

	merged := groupRows(groups, horizontalLines, yTolerance)
	return createRowsJSON(merged, pageNumber, yTolerance)
}
