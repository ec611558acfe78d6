// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package header

import (
	"sort"
	"strings"

	"github.com/sassoftware/statement-ledger/ledger/model"
	"github.com/sassoftware/statement-ledger/logger"
)

// PageWords is one page's words plus its width, the only input
// ExtractHeaders needs per page.
type PageWords struct {
	Words     []model.Word
	PageWidth float64
}

// rowTolerance is the vertical clustering tolerance used to group words
// into candidate header rows.
const rowTolerance = 5.0

// ExtractHeaders scans pages in order and returns the header row found on
// the first page that has extractable words. It fails with
// KindPdfImageBased if no page in the document has any words at all, and
// with KindHeadersNotFound if the first page with words yields zero header
// candidates; later pages are not tried.
func ExtractHeaders(pages []PageWords) (model.HeaderResult, error) {
	totalWords := 0

	for i, page := range pages {
		totalWords += len(page.Words)
		if len(page.Words) == 0 {
			continue
		}

		logger.Debug("extracting headers from first page with content", "page", i)
		words := append([]model.Word(nil), page.Words...)
		sort.SliceStable(words, func(a, b int) bool {
			if words[a].Top != words[b].Top {
				return words[a].Top < words[b].Top
			}
			return words[a].X0 < words[b].X0
		})

		hdrs, ok := extractHeaders(words, page.PageWidth)
		if ok {
			return model.HeaderResult{Headers: hdrs, SourcePage: i, TotalWords: totalWords}, nil
		}
		// The first page with content yielded no candidates; stop there
		// rather than trying subsequent pages.
		break
	}

	if totalWords == 0 {
		return model.HeaderResult{}, model.NewError(model.KindPdfImageBased, "HeaderExtract",
			"PDF is likely image-based - no extractable text found", nil)
	}
	return model.HeaderResult{}, model.NewError(model.KindHeadersNotFound, "HeaderExtract",
		"no header row candidates found", nil)
}

type candidateRow struct {
	score float64
	top   float64
	words []model.Word
}

func extractHeaders(words []model.Word, pageWidth float64) ([]model.Header, bool) {
	if len(words) == 0 {
		return nil, false
	}
	if pageWidth <= 0 {
		pageWidth = 600
	}

	rows := groupWordsIntoRows(words, rowTolerance)

	var candidates []candidateRow
	for top, rowWords := range rows {
		sort.SliceStable(rowWords, func(a, b int) bool { return rowWords[a].X0 < rowWords[b].X0 })
		hasKeyword := false
		for _, w := range rowWords {
			if keywords[strings.ToLower(w.Text)] {
				hasKeyword = true
				break
			}
		}
		if !hasKeyword && len(rowWords) < 3 {
			continue
		}
		score := scoreHeaderRow(rowWords, pageWidth)
		if score > 0 {
			candidates = append(candidates, candidateRow{score: score, top: top, words: rowWords})
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}
	sort.SliceStable(candidates, func(a, b int) bool { return candidates[a].score > candidates[b].score })
	best := candidates[0]

	var finalWords []model.Word
	if best.score > 30 {
		extended := detectMultilineHeaderRegion(words, best.words)
		merged := mergeHeaderTextHorizontally(extended, true)
		if len(extended) > len(best.words) {
			finalWords = mergeMultilineHeadersByColumn(merged)
		} else {
			finalWords = merged
		}
	} else {
		finalWords = mergeHeaderTextHorizontally(best.words, true)
	}

	return filterAndCleanHeaders(finalWords), true
}

// groupWordsIntoRows clusters words by top within tolerance, single-linkage
// against any row already opened; the first matching existing top wins.
func groupWordsIntoRows(words []model.Word, tolerance float64) map[float64][]model.Word {
	sorted := append([]model.Word(nil), words...)
	sort.SliceStable(sorted, func(a, b int) bool { return sorted[a].Top < sorted[b].Top })

	rows := map[float64][]model.Word{}
	var tops []float64
	for _, w := range sorted {
		assigned := false
		for _, t := range tops {
			if absf(w.Top-t) <= tolerance {
				rows[t] = append(rows[t], w)
				assigned = true
				break
			}
		}
		if !assigned {
			rows[w.Top] = []model.Word{w}
			tops = append(tops, w.Top)
		}
	}
	return rows
}

func scoreHeaderRow(rowWords []model.Word, pageWidth float64) float64 {
	score := 0.0
	keywordMatches := 0
	for _, w := range rowWords {
		text := strings.ToLower(w.Text)
		if keywords[text] {
			keywordMatches += 2
			continue
		}
		for kw := range keywords {
			if strings.Contains(text, kw) {
				keywordMatches++
				break
			}
		}
	}
	score += float64(keywordMatches) * 10

	n := len(rowWords)
	switch {
	case n >= 3 && n <= 8:
		score += 15
	case n > 8:
		score -= 5
	}

	if n >= 2 {
		minX, maxX := rowWords[0].X0, rowWords[0].X0
		for _, w := range rowWords {
			if w.X0 < minX {
				minX = w.X0
			}
			if w.X0 > maxX {
				maxX = w.X0
			}
		}
		if (maxX-minX)/pageWidth > 0.6 {
			score += 10
		}
	}

	rowText := wordsText(rowWords)
	if strings.Contains(rowText, "date") &&
		(strings.Contains(rowText, "amount") || strings.Contains(rowText, "debit") || strings.Contains(rowText, "credit")) {
		score += 20
	}
	if strings.Contains(rowText, "balance") {
		score += 10
	}

	numbersCount := 0
	dateCount := 0
	for _, w := range rowWords {
		if rePureNumber.MatchString(w.Text) {
			numbersCount++
		}
		if reDateStrict2.MatchString(w.Text) {
			dateCount++
		}
	}
	if float64(numbersCount) > float64(n)*0.5 {
		score -= 15
	}
	if dateCount > 1 {
		score -= 20
	}
	return score
}

func wordsText(words []model.Word) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = strings.ToLower(w.Text)
	}
	return strings.Join(parts, " ")
}

// detectMultilineHeaderRegion looks for words directly above (within 0.8x
// average line height) or directly below (within 0.3x, heavily filtered to
// exclude data) the seed row and appends any that look like legitimate
// header continuations.
func detectMultilineHeaderRegion(words, seedRow []model.Word) []model.Word {
	if len(seedRow) == 0 {
		return seedRow
	}
	seedTop, seedBottom := seedRow[0].Top, seedRow[0].Bottom
	var heightSum float64
	for _, w := range seedRow {
		if w.Top < seedTop {
			seedTop = w.Top
		}
		if w.Bottom > seedBottom {
			seedBottom = w.Bottom
		}
		heightSum += w.Height
	}
	avgHeight := heightSum / float64(len(seedRow))

	result := append([]model.Word(nil), seedRow...)
	for _, w := range words {
		text := strings.TrimSpace(w.Text)
		switch {
		case seedTop-avgHeight*0.8 <= w.Top && w.Top < seedTop-2:
			if isLikelyHeaderWord(w) {
				result = append(result, w)
			}
		case seedBottom+2 < w.Top && w.Top <= seedBottom+avgHeight*0.3:
			if isNumberLike(text) || isDateLikeLoose(text) || isCurrencyLike(text) || reDrCr.MatchString(text) {
				continue
			}
			lower := strings.ToLower(text)
			contextual := false
			for _, p := range dataPrefixes[:4] {
				if strings.Contains(lower, p) {
					contextual = true
					break
				}
			}
			if contextual {
				continue
			}
			center := (w.X0 + w.X1) / 2
			aligned := false
			for _, sw := range seedRow {
				if absf(center-(sw.X0+sw.X1)/2) < avgHeight*2 {
					aligned = true
					break
				}
			}
			if aligned && isLikelyHeaderWord(w) && reHasAlpha.MatchString(text) && len(text) < 20 {
				result = append(result, w)
			}
		}
	}
	return result
}

func isNumberLike(text string) bool { return reNumber.MatchString(text) }

// isDateLikeLoose also accepts single-digit day/month forms ("3-4-24");
// the multiline-header region checks use it so a short date just below or
// beside the seed row still reads as data. isLikelyHeaderWord keeps the
// stricter two-digit shape.
func isDateLikeLoose(text string) bool { return reDateLoose.MatchString(text) }
func isCurrencyLike(text string) bool {
	return reCurrency.MatchString(text)
}

func isLikelyHeaderWord(w model.Word) bool {
	text := strings.ToLower(w.Text)
	original := w.Text

	if reDrCr.MatchString(original) && !strings.Contains(original, "/") {
		return false
	}
	if reDate.MatchString(original) || reCurrency.MatchString(original) ||
		reNumber.MatchString(original) || isDigitsOnly(original) {
		return false
	}

	if contains(dataPrefixes, text) {
		return false
	}
	for _, prefix := range dataPrefixes {
		if strings.HasPrefix(text, prefix+" ") && (strings.Contains(text, "balance") || strings.Contains(text, "amount")) {
			return false
		}
	}

	if keywords[text] && !strings.Contains(text, " ") {
		return true
	}

	if strings.Contains(text, " ") {
		return headerPhrases[text]
	}

	for kw := range keywords {
		if wordBoundaryContains(text, kw) && len(strings.Fields(text)) == 1 {
			return true
		}
	}

	if reNumberIndic.MatchString(text) {
		return true
	}
	if reParenthetical.MatchString(text) && !reParenNumber.MatchString(original) {
		return true
	}
	return false
}

func isDigitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func wordBoundaryContains(text, kw string) bool {
	idx := strings.Index(text, kw)
	if idx < 0 {
		return false
	}
	before := idx == 0 || !isWordChar(rune(text[idx-1]))
	after := idx+len(kw) >= len(text) || !isWordChar(rune(text[idx+len(kw)]))
	return before && after
}

func isWordChar(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func absf(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// mergeHeaderTextHorizontally merges adjacent header words whose gap is
// within an adaptive tolerance of twice the average character width.
func mergeHeaderTextHorizontally(hdrs []model.Word, adaptive bool) []model.Word {
	if len(hdrs) == 0 {
		return hdrs
	}
	sorted := append([]model.Word(nil), hdrs...)
	sort.SliceStable(sorted, func(a, b int) bool { return sorted[a].X0 < sorted[b].X0 })

	tolerance := 6.0
	if adaptive && len(hdrs) > 1 {
		var sum float64
		for _, h := range hdrs {
			n := len([]rune(h.Text))
			if n < 1 {
				n = 1
			}
			sum += (h.X1 - h.X0) / float64(n)
		}
		tolerance = (sum / float64(len(hdrs))) * 2
	}

	var merged []model.Word
	cur := sorted[0]
	for i := 1; i < len(sorted); i++ {
		h := sorted[i]
		gap := h.X0 - cur.X1
		if gap <= tolerance && gap >= -2 {
			cur.Text = cur.Text + " " + h.Text
			cur.X1 = h.X1
		} else {
			merged = append(merged, cur)
			cur = h
		}
	}
	merged = append(merged, cur)
	return merged
}

// mergeMultilineHeadersByColumn buckets headers into natural column
// boundaries derived from the widest x-gaps, then merges vertically
// adjacent headers within each column unless the candidate looks like
// data.
func mergeMultilineHeadersByColumn(hdrs []model.Word) []model.Word {
	if len(hdrs) == 0 {
		return hdrs
	}
	boundaries := columnBoundaries(hdrs)
	columns := map[int][]model.Word{}
	for _, h := range hdrs {
		center := (h.X0 + h.X1) / 2
		for i, b := range boundaries {
			if b[0] <= center && center <= b[1] {
				columns[i] = append(columns[i], h)
				break
			}
		}
	}

	colIdx := make([]int, 0, len(columns))
	for i := range columns {
		colIdx = append(colIdx, i)
	}
	sort.Ints(colIdx)

	var result []model.Word
	for _, i := range colIdx {
		col := columns[i]
		if len(col) == 0 {
			continue
		}
		sort.SliceStable(col, func(a, b int) bool { return col[a].Top < col[b].Top })
		cur := col[0]
		for j := 1; j < len(col); j++ {
			h := col[j]
			text := strings.TrimSpace(h.Text)
			if isNumberLike(text) || isDateLikeLoose(text) || isCurrencyLike(text) ||
				reSingleDigit.MatchString(text) || reDrCr.MatchString(text) {
				result = append(result, cur)
				cur = h
				continue
			}
			gap := h.Top - cur.Bottom
			avgHeight := (cur.Height + h.Height) / 2
			if gap >= 0 && gap <= avgHeight*0.5 {
				if len(text) > 1 && text != "/" && text != "-" && text != "|" && text != "(" && text != ")" {
					cur.Text = cur.Text + " " + h.Text
				}
			} else {
				result = append(result, cur)
				cur = h
			}
		}
		result = append(result, cur)
	}
	return result
}

// columnBoundaries detects natural column x-ranges by finding gaps between
// sorted x-positions that are significantly larger (1.5x) than the median
// gap.
func columnBoundaries(words []model.Word) [][2]float64 {
	if len(words) == 0 {
		return nil
	}
	var xs []float64
	for _, w := range words {
		xs = append(xs, w.X0, w.X1)
	}
	sort.Float64s(xs)

	type gap struct{ start, end, size float64 }
	var gaps []gap
	for i := 1; i < len(xs); i++ {
		size := xs[i] - xs[i-1]
		if size > 10 {
			gaps = append(gaps, gap{xs[i-1], xs[i], size})
		}
	}
	if len(gaps) == 0 {
		return [][2]float64{{xs[0], xs[len(xs)-1]}}
	}

	sizes := make([]float64, len(gaps))
	for i, g := range gaps {
		sizes[i] = g.size
	}
	sort.Float64s(sizes)
	median := sizes[len(sizes)/2]

	var boundaries [][2]float64
	lastEnd := 0.0
	for _, g := range gaps {
		if g.size > median*1.5 {
			boundaries = append(boundaries, [2]float64{lastEnd, g.start})
			lastEnd = g.end
		}
	}
	boundaries = append(boundaries, [2]float64{lastEnd, xs[len(xs)-1]})
	return boundaries
}

// filterAndCleanHeaders drops tokens without alphabetic content, pure
// numbers, or text longer than 50 characters.
func filterAndCleanHeaders(hdrs []model.Word) []model.Header {
	var out []model.Header
	for _, h := range hdrs {
		text := strings.TrimSpace(h.Text)
		if !reHasAlpha.MatchString(text) {
			continue
		}
		if rePureNumber.MatchString(text) {
			continue
		}
		if len(text) > 50 {
			continue
		}
		out = append(out, model.Header{
			Text:         text,
			OriginalText: text,
			X0:           h.X0,
			X1:           h.X1,
			Top:          h.Top,
			Bottom:       h.Bottom,
		})
	}
	return out
}
