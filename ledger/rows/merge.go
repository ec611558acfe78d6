// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package rows

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"

	"github.com/sassoftware/statement-ledger/ledger/model"
)

// anchorMergeThreshold and incompleteMergeThreshold are the two distinct
// confidence cutoffs MergeRows uses for its two passes: folding an
// incomplete row into an anchor, and fusing two incomplete rows together.
// They are deliberately different values, not a shared constant.
const (
	anchorMergeThreshold     = 0.3
	incompleteMergeThreshold = 0.4
)

var amountCleaner = strings.NewReplacer(",", "", "$", "")

func parseAmount(value string) float64 {
	v, err := strconv.ParseFloat(amountCleaner.Replace(strings.TrimSpace(value)), 64)
	if err != nil {
		return 0.0
	}
	return v
}

func isValidAmount(value string) bool {
	if value == "" {
		return false
	}
	v, err := strconv.ParseFloat(amountCleaner.Replace(strings.TrimSpace(value)), 64)
	if err != nil {
		return false
	}
	return v != 0
}

var dateStripper = strings.NewReplacer(" ", "", "-", "", "/", "")

var reDateLike = regexp.MustCompile(`\d`)

// isValidDate reports whether a date string is usable as a merge anchor:
// it contains at least one digit and dateparse accepts it, the same
// parser FormatClean relies on downstream.
func isValidDate(s string) bool {
	if s == "" || !reDateLike.MatchString(s) {
		return false
	}
	_, err := dateparse.ParseAny(strings.TrimSpace(s))
	return err == nil
}

func canMergeDates(d1, d2 string) bool {
	if d1 == "" || d2 == "" {
		return true
	}
	if d1 == d2 {
		return true
	}
	c1, c2 := dateStripper.Replace(d1), dateStripper.Replace(d2)
	return strings.Contains(c2, c1) || strings.Contains(c1, c2)
}

func tryMergeDate(d1, d2 string) string {
	if d1 == "" {
		return d2
	}
	if d2 == "" {
		return d1
	}
	c1, c2 := dateStripper.Replace(d1), dateStripper.Replace(d2)
	switch {
	case strings.Contains(c2, c1):
		return d2
	case strings.Contains(c1, c2):
		return d1
	}
	if combined := d1 + d2; isValidDate(combined) {
		return combined
	}
	if len(d1) >= len(d2) {
		return d1
	}
	return d2
}

func tryMergeText(t1, t2 string) string {
	if t1 == "" {
		return t2
	}
	if t2 == "" {
		return t1
	}
	return strings.TrimSpace(t1 + " " + t2)
}

func calculateAvgRowHeight(all []model.Row) float64 {
	var heights []float64
	for _, r := range all {
		if h := r.YBottom - r.YTop; h > 0 {
			heights = append(heights, h)
		}
	}
	if len(heights) == 0 {
		return 10.0
	}
	return meanOf(heights)
}

// smartMergeRow folds source's bounding box and fields into target, which
// is mutated in place. Amounts only overwrite an invalid target value,
// particulars always concatenate, and dates merge via tryMergeDate.
func smartMergeRow(target *model.Row, source model.Row) {
	if source.YTop < target.YTop {
		target.YTop = source.YTop
	}
	if source.YBottom > target.YBottom {
		target.YBottom = source.YBottom
	}
	if source.XLeft < target.XLeft {
		target.XLeft = source.XLeft
	}
	if source.XRight > target.XRight {
		target.XRight = source.XRight
	}

	for key, value := range source.Fields {
		if strings.TrimSpace(value) == "" {
			continue
		}
		existing, has := target.Fields[key]
		if has && strings.TrimSpace(existing) != "" {
			switch {
			case key == "particulars":
				target.Fields[key] = strings.TrimSpace(existing + " " + value)
			case key == "date":
				if merged := tryMergeDate(existing, value); merged != "" {
					target.Fields[key] = merged
				}
			case key == "debit" || key == "credit" || key == "balance":
				if !isValidAmount(existing) {
					target.Fields[key] = value
				}
			}
		} else {
			target.Fields[key] = value
		}
	}
}

// tryMergeIncompleteRows attempts to fuse two incomplete rows into one.
// It never reports failure on its own; the caller decides whether the
// result is usable by checking IsAnchor.
func tryMergeIncompleteRows(row1, row2 model.Row) model.Row {
	merged := row1.Clone()
	if row2.YTop < merged.YTop {
		merged.YTop = row2.YTop
	}
	if row2.YBottom > merged.YBottom {
		merged.YBottom = row2.YBottom
	}
	if row2.XLeft < merged.XLeft {
		merged.XLeft = row2.XLeft
	}
	if row2.XRight > merged.XRight {
		merged.XRight = row2.XRight
	}

	for key, value := range row2.Fields {
		if strings.TrimSpace(value) == "" {
			continue
		}
		existing, has := merged.Fields[key]
		if has && strings.TrimSpace(existing) != "" {
			switch {
			case key == "particulars":
				merged.Fields[key] = strings.TrimSpace(existing + " " + value)
			case key == "date":
				if m := tryMergeDate(existing, value); m != "" {
					merged.Fields[key] = m
				}
			case key == "debit" || key == "credit" || key == "balance":
				if !isValidAmount(existing) && isValidAmount(value) {
					merged.Fields[key] = value
				}
			}
		} else {
			merged.Fields[key] = value
		}
	}
	return merged
}

func nonEmptyFieldSet(r model.Row) map[string]bool {
	set := map[string]bool{}
	for k, v := range r.Fields {
		if strings.TrimSpace(v) != "" {
			set[k] = true
		}
	}
	return set
}

func calculateIncompleteMergeConfidence(row1, row2 model.Row, idx1, idx2 int, allRows []model.Row) float64 {
	score := 0.0

	row1Fields := nonEmptyFieldSet(row1)
	row2Fields := nonEmptyFieldSet(row2)
	union := map[string]bool{}
	overlap := 0
	for k := range row1Fields {
		union[k] = true
		if row2Fields[k] {
			overlap++
		}
	}
	for k := range row2Fields {
		union[k] = true
	}
	if len(union) > 0 {
		complementarity := 1.0 - float64(overlap)/float64(len(union))
		score += complementarity * 0.3
	}
	if union["date"] && union["balance"] {
		score += 0.3
	}

	if row1.YTop != 0 || row2.YTop != 0 {
		yDistance := row1.YTop - row2.YTop
		if yDistance < 0 {
			yDistance = -yDistance
		}
		avgHeight := calculateAvgRowHeight(allRows)
		if avgHeight > 0 {
			normalized := yDistance / avgHeight
			proximity := 1.0 - normalized/3
			if proximity < 0 {
				proximity = 0
			}
			score += proximity * 0.2
		}
	}

	switch idx2 {
	case idx1 + 1:
		score += 0.15
	case idx1 + 2:
		score += 0.05
	}

	for _, field := range []string{"date", "debit", "credit", "balance"} {
		val1, val2 := row1.Fields[field], row2.Fields[field]
		if strings.TrimSpace(val1) == "" || strings.TrimSpace(val2) == "" {
			continue
		}
		if field == "date" {
			if !canMergeDates(val1, val2) {
				score -= 0.5
			}
		} else if isValidAmount(val1) && isValidAmount(val2) {
			if parseAmount(val1) != parseAmount(val2) {
				score -= 0.5
			}
		}
	}

	if score < 0 {
		score = 0
	}
	return score
}

// calculateMergeConfidence scores merging incomplete into anchor. The
// second compatibility loop below checks the field names "credits" and
// "debits" (not "credit"/"debit"), so that branch of the penalty never
// actually fires against real rows; the quirk is carried over verbatim
// rather than corrected.
func calculateMergeConfidence(anchor, incomplete model.Row, anchorIdx, incompleteIdx int, allRows []model.Row) float64 {
	score := 0.0

	yDistance := anchor.YTop - incomplete.YTop
	if yDistance < 0 {
		yDistance = -yDistance
	}
	avgHeight := calculateAvgRowHeight(allRows)
	if avgHeight > 0 {
		normalized := yDistance / avgHeight
		proximity := 1.0 - normalized/3
		if proximity < 0 {
			proximity = 0
		}
		score += proximity * 0.4
	}

	compatibilityScore := 0.0
	fieldCount := 0
	for _, field := range []string{"date", "particulars", "debit", "credit", "balance"} {
		incompleteVal := incomplete.Fields[field]
		if strings.TrimSpace(incompleteVal) == "" {
			continue
		}
		fieldCount++
		anchorVal := anchor.Fields[field]
		switch {
		case strings.TrimSpace(anchorVal) == "":
			compatibilityScore += 1.0
		case field == "particulars":
			compatibilityScore += 0.5
		default:
			compatibilityScore += 0.25
		}
	}

	for _, field := range []string{"date", "credits", "debits", "balance"} {
		anchorVal, incompleteVal := anchor.Fields[field], incomplete.Fields[field]
		if (incompleteVal != "" && strings.TrimSpace(incompleteVal) == "") ||
			(anchorVal != "" && strings.TrimSpace(anchorVal) == "") {
			continue
		}
		switch field {
		case "date":
			if isValidDate(incompleteVal) && isValidDate(anchorVal) {
				compatibilityScore -= 3
			}
		case "credits", "debits", "balance":
			if isValidAmount(incompleteVal) && isValidAmount(anchorVal) {
				compatibilityScore -= 3
			}
		}
	}

	if fieldCount > 0 {
		score += (compatibilityScore / float64(fieldCount)) * 0.3
	}

	switch incompleteIdx {
	case anchorIdx + 1:
		score += 0.2
	case anchorIdx - 1:
		score += 0.1
	}

	if len(incomplete.Fields) == 1 {
		if _, ok := incomplete.Fields["particulars"]; ok {
			score += 0.1
		}
	}

	if merged := tryMergeText(anchor.Fields["date"], incomplete.Fields["date"]); merged != "" && isValidDate(merged) {
		score += 0.1
	}

	return score
}

// mergeRowsWithAnchors folds each incomplete row into the nearest-anchor
// segment it scores well against, returning the merged anchors and the
// rows left unprocessed for mergeIncompleteRows to try next.
func mergeRowsWithAnchors(rows []model.Row) ([]model.Row, []model.Row) {
	if len(rows) == 0 {
		return nil, rows
	}
	sorted := append([]model.Row(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].YTop < sorted[j].YTop })

	var anchorIndices []int
	for i, r := range sorted {
		if r.IsAnchor() {
			anchorIndices = append(anchorIndices, i)
		}
	}
	if len(anchorIndices) == 0 {
		return nil, sorted
	}

	processed := map[int]bool{}
	var merged []model.Row

	for _, anchorIdx := range anchorIndices {
		anchorRow := sorted[anchorIdx].Clone()
		processed[anchorIdx] = true

		nextAnchorIdx := len(sorted)
		for _, idx := range anchorIndices {
			if idx > anchorIdx {
				nextAnchorIdx = idx
				break
			}
		}

		var segment []int
		for i := anchorIdx + 1; i < nextAnchorIdx; i++ {
			if !processed[i] && !sorted[i].IsAnchor() {
				segment = append(segment, i)
			}
		}
		if anchorIdx == anchorIndices[0] {
			for i := 0; i < anchorIdx; i++ {
				if !processed[i] && !sorted[i].IsAnchor() {
					segment = append(segment, i)
				}
			}
		}

		for _, incompleteIdx := range segment {
			incompleteRow := sorted[incompleteIdx]
			score := calculateMergeConfidence(anchorRow, incompleteRow, anchorIdx, incompleteIdx, sorted)
			if score > anchorMergeThreshold {
				smartMergeRow(&anchorRow, incompleteRow)
				processed[incompleteIdx] = true
			}
		}

		merged = append(merged, anchorRow)
	}

	var unprocessed []model.Row
	for i, r := range sorted {
		if !processed[i] {
			unprocessed = append(unprocessed, r)
		}
	}
	return merged, unprocessed
}

// mergeIncompleteRows tries to pair up rows left over from the anchor pass
// that together would satisfy IsAnchor, picking each row's best-scoring
// partner above incompleteMergeThreshold.
func mergeIncompleteRows(rows []model.Row) []model.Row {
	if len(rows) == 0 {
		return rows
	}
	sorted := append([]model.Row(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].YTop < sorted[j].YTop })

	processed := map[int]bool{}
	var merged []model.Row

	for i, row1 := range sorted {
		if processed[i] {
			continue
		}
		if row1.IsAnchor() {
			merged = append(merged, row1.Clone())
			processed[i] = true
			continue
		}

		bestIdx := -1
		bestScore := 0.0
		for j := i + 1; j < len(sorted); j++ {
			if processed[j] {
				continue
			}
			row2 := sorted[j]
			if row2.IsAnchor() {
				continue
			}
			potential := tryMergeIncompleteRows(row1, row2)
			if !potential.IsAnchor() {
				continue
			}
			score := calculateIncompleteMergeConfidence(row1, row2, i, j, sorted)
			if score > bestScore {
				bestScore = score
				bestIdx = j
			}
		}

		if bestIdx != -1 && bestScore > incompleteMergeThreshold {
			merged = append(merged, tryMergeIncompleteRows(row1, sorted[bestIdx]))
			processed[i] = true
			processed[bestIdx] = true
		} else {
			merged = append(merged, row1.Clone())
			processed[i] = true
		}
	}

	return merged
}

// MergeRows applies both merging strategies in sequence: first folding
// incomplete rows into anchor rows, then pairing any rows left over so
// that two incomplete rows together can form one complete row.
func MergeRows(pageRows []model.Row) []model.Row {
	mergedWithAnchors, unprocessed := mergeRowsWithAnchors(pageRows)

	var allMerged []model.Row
	if len(unprocessed) > 0 {
		allMerged = append(allMerged, mergedWithAnchors...)
		allMerged = append(allMerged, mergeIncompleteRows(unprocessed)...)
	} else {
		allMerged = mergedWithAnchors
	}

	sort.SliceStable(allMerged, func(i, j int) bool { return allMerged[i].YTop < allMerged[j].YTop })
	return allMerged
}
