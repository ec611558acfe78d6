// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package header

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/sassoftware/statement-ledger/ledger/model"
	"github.com/sassoftware/statement-ledger/logger"
)

// canonicalVariants is the fuzzy-matching vocabulary used at
// header-geometry time. It is intentionally richer than format's headerVariants,
// which canonicalizes at column-name time with a simpler substring rule;
// the two vocabularies are deliberately distinct.
var canonicalVariants = map[string][]string{
	"date":        {"date", "txn date", "tran date", "transaction date", "value date"},
	"particulars": {"particulars", "transaction details", "description", "remarks", "narration", "details", "reference"},
	"credit":      {"deposits", "credit", "credits", "deposit", "money in", "credit amount", "in"},
	"debit":       {"withdrawals", "debit", "debits", "withdrawal", "money out", "debit amount", "out"},
	"balance":     {"balance", "running balance", "closing balance"},
	"amount":      {"amount"},
}

var reNonAlpha = regexp.MustCompile(`[^a-z]`)

// deaccent strips combining marks so headers like "Débito" survive the
// alphabetic-only normalization below.
var deaccent = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func normalize(text string) string {
	folded, _, err := transform.String(deaccent, text)
	if err != nil {
		folded = text
	}
	return reNonAlpha.ReplaceAllString(strings.ToLower(folded), "")
}

// tokenSortRatio approximates fuzzywuzzy's token_sort_ratio: sort each
// string's whitespace tokens alphabetically, join them, and score the
// Levenshtein similarity of the result as a percentage.
func tokenSortRatio(a, b string) int {
	sa := sortedTokens(a)
	sb := sortedTokens(b)
	if sa == "" && sb == "" {
		return 100
	}
	dist := levenshtein.ComputeDistance(sa, sb)
	maxLen := len(sa)
	if len(sb) > maxLen {
		maxLen = len(sb)
	}
	if maxLen == 0 {
		return 100
	}
	ratio := 100.0 * (1.0 - float64(dist)/float64(maxLen))
	if ratio < 0 {
		ratio = 0
	}
	return int(ratio + 0.5)
}

func sortedTokens(s string) string {
	fields := strings.Fields(s)
	sort.Strings(fields)
	return strings.Join(fields, "")
}

// mapHeader returns the best canonical label for a header's text and the
// winning fuzzy score (or -1, header unchanged, if no variant scored >=50).
func mapHeader(headerText string) (string, int) {
	normalized := normalize(headerText)
	bestScore := 0
	bestKey := headerText

	canonKeys := make([]string, 0, len(canonicalVariants))
	for k := range canonicalVariants {
		canonKeys = append(canonKeys, k)
	}
	sort.Strings(canonKeys)

	for _, key := range canonKeys {
		variants := canonicalVariants[key]
		best := 0
		for _, v := range variants {
			if s := tokenSortRatio(normalized, normalize(v)); s > best {
				best = s
			}
		}
		if best > bestScore {
			bestScore = best
			bestKey = key
		}
	}

	if bestScore >= 50 {
		return bestKey, bestScore
	}
	return headerText, -1
}

// RecognizeHeaders canonicalizes each header's text to the closed
// vocabulary. When two headers would map to the same canonical label, only
// the highest-scoring claimant adopts it; the rest keep their original
// text. OriginalText is always preserved.
func RecognizeHeaders(result model.HeaderResult) model.HeaderResult {
	headers := result.Headers
	type claim struct {
		canonical string
		score     int
	}
	headerToCanonical := make([]claim, len(headers))
	canonicalBestIdx := map[string]int{}
	canonicalBestScore := map[string]int{}

	for i, h := range headers {
		canonical, score := mapHeader(h.Text)
		headerToCanonical[i] = claim{canonical, score}
		if best, ok := canonicalBestScore[canonical]; !ok || score > best {
			canonicalBestScore[canonical] = score
			canonicalBestIdx[canonical] = i
		}
	}

	out := make([]model.Header, len(headers))
	for i, h := range headers {
		c := headerToCanonical[i]
		out[i] = model.Header{
			OriginalText: h.Text,
			X0:           h.X0,
			X1:           h.X1,
			Top:          h.Top,
			Bottom:       h.Bottom,
		}
		if canonicalBestIdx[c.canonical] == i && c.score >= 70 {
			out[i].Text = c.canonical
			logger.Debug("header mapped", "original", h.Text, "mapped", c.canonical, "score", c.score)
		} else {
			out[i].Text = h.Text
		}
	}

	result.Headers = out
	return result
}
