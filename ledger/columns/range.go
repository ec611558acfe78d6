// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

// Package columns implements ColumnRange and ColumnGroups: computing each
// header's horizontal span on a page, then assigning words to their
// nearest-overlap header.
package columns

import (
	"math"
	"sort"

	"github.com/sassoftware/statement-ledger/ledger/model"
)

// lineThreshold is the number of text-lines the word-voting fallback will
// traverse past a would-be column collision before concluding the table
// has ended. The value is a heuristic.
const lineThreshold = 10

func isIntersection(x0a, x1a, x0b, x1b, tolerance float64) bool {
	x0a, x1a = x0a-tolerance, x1a+tolerance
	x0b, x1b = x0b-tolerance, x1b+tolerance
	return !(x1a <= x0b || x1b <= x0a)
}

// filterLinesAboveThreshold drops rule lines that end above yThreshold,
// so letterhead rules sitting entirely above the table header never feed
// the rule-based strategy.
func filterLinesAboveThreshold(lines []model.RuleLine, yThreshold float64) []model.RuleLine {
	out := make([]model.RuleLine, 0, len(lines))
	for _, l := range lines {
		if l.To > yThreshold {
			out = append(out, l)
		}
	}
	return out
}

// getColumnRangeBasedOnLines is the rule-based primary strategy: it
// requires at least len(headers) vertical rule lines (fewer cannot
// enclose every header's center) and locates, for each header, the
// enclosing pair of sorted lines.
func getColumnRangeBasedOnLines(headers []model.Header, verticalLines []model.RuleLine) model.ColumnRange {
	if len(verticalLines) < len(headers) {
		return nil
	}
	sorted := make([]float64, len(verticalLines))
	for i, l := range verticalLines {
		sorted[i] = l.Pos
	}
	sort.Float64s(sorted)

	ranges := model.ColumnRange{}
	for _, h := range headers {
		center := (h.X0 + h.X1) / 2
		var left, right *float64
		for i := 0; i < len(sorted)-1; i++ {
			l, r := sorted[i], sorted[i+1]
			if l <= center && center <= r {
				left, right = &l, &r
				break
			}
		}
		lv, rv := h.X0, h.X1
		if left != nil {
			lv = *left
		}
		if right != nil {
			rv = *right
		}
		ranges[h.Text] = model.Range{Left: lv, Right: rv}
	}
	return ranges
}

// getHeaderAlignment infers the dominant alignment (left/right/center) of
// headers that already have a computed range, by comparing each header's
// edges and center to its range's edges and center within a 3-point
// tolerance; majority wins.
func getHeaderAlignment(ranges model.ColumnRange, headers []model.Header) string {
	if len(ranges) == 0 || len(headers) == 0 {
		return "center"
	}
	const tolerance = 3.0
	var left, right, center int
	total := 0
	for _, h := range headers {
		r, ok := ranges[h.Text]
		if !ok {
			continue
		}
		total++
		leftDist := math.Abs(h.X0 - r.Left)
		rightDist := math.Abs(h.X1 - r.Right)
		headerCenter := (h.X0 + h.X1) / 2
		rangeCenter := (r.Left + r.Right) / 2
		centerDist := math.Abs(headerCenter - rangeCenter)

		switch {
		case leftDist <= tolerance && leftDist <= rightDist && leftDist <= centerDist:
			left++
		case rightDist <= tolerance && rightDist <= leftDist && rightDist <= centerDist:
			right++
		case centerDist <= tolerance && centerDist <= leftDist && centerDist <= rightDist:
			center++
		default:
			min := leftDist
			switch {
			case rightDist < min:
				min = rightDist
			case centerDist < min:
				min = centerDist
			}
			switch min {
			case leftDist:
				left++
			case rightDist:
				right++
			default:
				center++
			}
		}
	}
	if total == 0 {
		return "center"
	}
	switch {
	case left > right && left > center:
		return "left"
	case right > left && right > center:
		return "right"
	default:
		return "center"
	}
}

func isValidWord(w model.Word, pageHeight float64) bool {
	footerThreshold := pageHeight * (1 - 0.06)
	return w.Top < footerThreshold
}

func checkRangeValidity(ranges model.ColumnRange, headerText string, candidate model.Range) bool {
	for key, r := range ranges {
		if key == headerText {
			continue
		}
		if isIntersection(candidate.Left, candidate.Right, r.Left, r.Right, 0) {
			return false
		}
	}
	return true
}

// getColumnRange is the word-voting fallback: it expands each header's
// range to cover every word that horizontally overlaps it, stopping once
// an expansion would collide with another header's range after more than
// lineThreshold text-lines have been traversed.
func getColumnRange(words []model.Word, headers []model.Header, pageHeight float64) model.ColumnRange {
	ranges := model.ColumnRange{}
	currBottom := 0.0
	for _, h := range headers {
		if h.Bottom > currBottom {
			currBottom = h.Bottom
		}
	}
	linesIterated := 0

	for _, w := range words {
		bottom := w.Bottom
		if bottom < currBottom {
			bottom = currBottom
		}
		if bottom > currBottom {
			linesIterated++
			currBottom = bottom
		}
		if !isValidWord(w, pageHeight) {
			continue
		}
		for _, h := range headers {
			if !isIntersection(w.X0, w.X1, h.X0, h.X1, 0) {
				continue
			}
			cur, ok := ranges[h.Text]
			if !ok {
				cur = model.Range{Left: 1e6, Right: -1e6}
			}
			x0 := math.Min(w.X0, math.Min(h.X0, cur.Left))
			x1 := math.Max(w.X1, math.Max(h.X1, cur.Right))
			candidate := model.Range{Left: x0, Right: x1}
			if !checkRangeValidity(ranges, h.Text, candidate) && linesIterated > lineThreshold {
				break
			}
			ranges[h.Text] = candidate
		}
	}
	return ranges
}

// adjustMissingRanges fills in any header lacking a computed range by
// extending toward its neighbor according to the page's dominant
// alignment.
func adjustMissingRanges(headers []model.Header, ranges model.ColumnRange) (model.ColumnRange, string) {
	adjusted := model.ColumnRange{}
	dominant := getHeaderAlignment(ranges, headers)

	for i, h := range headers {
		if r, ok := ranges[h.Text]; ok {
			adjusted[h.Text] = r
			continue
		}
		switch {
		case dominant == "left" && i+1 < len(headers):
			next := headers[i+1]
			nextX0 := next.X0
			if r, ok := ranges[next.Text]; ok {
				nextX0 = r.Left
			}
			adjusted[h.Text] = model.Range{Left: h.X0, Right: math.Max(nextX0, h.X1)}
		case dominant == "right" && i > 0:
			prev := headers[i-1]
			prevX1 := prev.X1
			if r, ok := ranges[prev.Text]; ok {
				prevX1 = r.Right
			}
			adjusted[h.Text] = model.Range{Left: math.Min(prevX1, h.X0), Right: h.X1}
		default:
			adjusted[h.Text] = model.Range{Left: h.X0, Right: h.X1}
		}
	}
	return adjusted, dominant
}

// adjustStartAndEndHeaderRange extends the first header's left edge and
// the last header's right edge to absorb marginal words.
func adjustStartAndEndHeaderRange(headers []model.Header, ranges model.ColumnRange) {
	if len(ranges) == 0 || len(headers) == 0 {
		return
	}
	sorted := append([]model.Header(nil), headers...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X0 < sorted[j].X0 })

	first, last := sorted[0].Text, sorted[len(sorted)-1].Text
	if r, ok := ranges[first]; ok {
		ranges[first] = model.Range{Left: math.Inf(-1), Right: r.Right}
	}
	if r, ok := ranges[last]; ok {
		ranges[last] = model.Range{Left: r.Left, Right: math.Inf(1)}
	}
}

// correctOverlappedHeaders clips each header's right edge so it never
// exceeds the next header's left x-position.
func correctOverlappedHeaders(headers []model.Header, ranges model.ColumnRange) model.ColumnRange {
	for i := 0; i < len(headers)-1; i++ {
		cur := ranges[headers[i].Text]
		if cur.Right > headers[i+1].X0 {
			cur.Right = math.Floor(headers[i+1].X0)
			ranges[headers[i].Text] = cur
		}
	}
	return ranges
}

func isHeaderListCopy(result model.HeaderResult) bool { return result.IsCopy }

// ComputeColumnRange computes the column ranges for one page. verticalLines
// are the page's detected vertical rule lines; prev is the previous
// page's resolved ranges (used when the header row is a verbatim repeat).
func ComputeColumnRange(pageNumber int, words []model.Word, headers model.HeaderResult, verticalLines []model.RuleLine, pageHeight float64, prev model.ColumnRange) model.ColumnRange {
	if isHeaderListCopy(headers) && pageNumber > 0 && prev != nil {
		cp := model.ColumnRange{}
		for k, v := range prev {
			cp[k] = v
		}
		return cp
	}

	// On the header's own first page, rules drawn in the letterhead above
	// the table would otherwise masquerade as column separators.
	upperCutY := 0.0
	if pageNumber == 0 && len(headers.Headers) > 0 {
		upperCutY = headers.Headers[0].Top
	}
	ranges := getColumnRangeBasedOnLines(headers.Headers, filterLinesAboveThreshold(verticalLines, upperCutY))
	if len(ranges) == 0 {
		ranges = getColumnRange(words, headers.Headers, pageHeight)
		ranges, _ = adjustMissingRanges(headers.Headers, ranges)
	}
	adjustStartAndEndHeaderRange(headers.Headers, ranges)
	ranges = correctOverlappedHeaders(headers.Headers, ranges)
	return ranges
}
