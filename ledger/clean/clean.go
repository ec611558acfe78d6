// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

// Package clean implements CleanData: splitting dotted/hyphen filler words,
// dropping footer boilerplate, and removing words above the header on the
// header's source page.
package clean

import (
	"regexp"
	"sort"
	"strings"

	"github.com/sassoftware/statement-ledger/ledger/model"
)

var (
	reDotRun       = regexp.MustCompile(`\.{3,}`)
	rePureDots     = regexp.MustCompile(`^\.+$`)
	reIFiller      = regexp.MustCompile(`(?i)^i+$`)
	reHyphenFiller = regexp.MustCompile(`(?i)^-+\s*$`)
)

// footerPatterns are phrase-shaped on purpose: a bare numeric pattern
// here would also match real table data (a date cell like "01/02/2024"
// contains "01/02"), so only wording that cannot appear in a
// transaction row qualifies.
var footerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`page\s*\d+\s*of\s*\d+`),
	regexp.MustCompile(`continued on next page`),
	regexp.MustCompile(`member fdic`),
	regexp.MustCompile(`customer service`),
	regexp.MustCompile(`statement period`),
}

// isFooterContent reports whether a word's text is bank-statement
// boilerplate (page counters, continuation notices, regulatory footers)
// rather than table data.
func isFooterContent(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, p := range footerPatterns {
		if p.MatchString(t) {
			return true
		}
	}
	return false
}

func isFakeIFiller(text string) bool { return reIFiller.MatchString(text) }

func isFakeHyphenFiller(text string) bool {
	return reHyphenFiller.MatchString(strings.TrimSpace(text))
}

// smartSplitWithDots splits a word's text on runs of 3+ dots, keeping the
// dot run as its own segment, and drops empty/whitespace-only segments.
func smartSplitWithDots(text string) []string {
	idxs := reDotRun.FindAllStringIndex(text, -1)
	if len(idxs) == 0 {
		return []string{text}
	}
	var parts []string
	last := 0
	for _, m := range idxs {
		if m[0] > last {
			parts = append(parts, text[last:m[0]])
		}
		parts = append(parts, text[m[0]:m[1]])
		last = m[1]
	}
	if last < len(text) {
		parts = append(parts, text[last:])
	}
	var out []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// estimateBoundingBoxes distributes a word's box evenly across its split
// parts by character count.
func estimateBoundingBoxes(w model.Word, parts []string) []model.Word {
	width := w.X1 - w.X0
	totalChars := 0
	for _, p := range parts {
		totalChars += len([]rune(p))
	}
	if totalChars == 0 {
		return nil
	}
	charWidth := width / float64(totalChars)
	x := w.X0
	out := make([]model.Word, 0, len(parts))
	for _, p := range parts {
		pw := float64(len([]rune(p))) * charWidth
		out = append(out, model.Word{
			Text: p, X0: x, X1: x + pw, Top: w.Top, Bottom: w.Bottom, Height: w.Height,
		})
		x += pw
	}
	return out
}

// cleanDotPaddedWords splits words containing a long dot run into their
// constituent parts, drops pure dot, pure "i" and pure hyphen filler words
// entirely, and drops footer boilerplate.
func cleanDotPaddedWords(words []model.Word) []model.Word {
	out := make([]model.Word, 0, len(words))
	for _, w := range words {
		if isFakeHyphenFiller(w.Text) {
			continue
		}
		if reDotRun.MatchString(w.Text) || isFakeIFiller(w.Text) {
			if rePureDots.MatchString(w.Text) || isFakeIFiller(w.Text) {
				continue
			}
			parts := smartSplitWithDots(w.Text)
			if len(parts) > 1 {
				for _, sub := range estimateBoundingBoxes(w, parts) {
					// The dot runs themselves (and i-filler fragments) only
					// existed to pad the line; the boxes on either side keep
					// their estimated positions.
					if rePureDots.MatchString(sub.Text) || isFakeIFiller(sub.Text) {
						continue
					}
					out = append(out, sub)
				}
			} else {
				out = append(out, w)
			}
			continue
		}
		if isFooterContent(w.Text) {
			continue
		}
		out = append(out, w)
	}
	return out
}

// removeDataAboveTable drops words at or above headerY, applied only on
// the header's own source page.
func removeDataAboveTable(words []model.Word, headerY float64) []model.Word {
	out := make([]model.Word, 0, len(words))
	for _, w := range words {
		if w.Top <= headerY {
			continue
		}
		out = append(out, w)
	}
	return out
}

// CleanPage cleans one page's words. pageNumber is compared against
// headers.SourcePage to decide whether above-header words are stripped.
func CleanPage(pageNumber int, words []model.Word, headers model.HeaderResult) model.PageWords {
	cleaned := cleanDotPaddedWords(words)

	if pageNumber == headers.SourcePage && len(headers.Headers) > 0 {
		sort.SliceStable(cleaned, func(i, j int) bool { return cleaned[i].Top < cleaned[j].Top })
		cleaned = removeDataAboveTable(cleaned, headers.Headers[0].Top)
	}

	return model.PageWords{PageNumber: pageNumber, Words: cleaned, WordCount: len(cleaned)}
}
