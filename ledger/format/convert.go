// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package format

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reAmount      = regexp.MustCompile(`[-+]?\d[\d,]*\.?\d*`)
	reParenAmount = regexp.MustCompile(`\(\s*[^)]*\d[\d,]*\.?\d*\s*\)`)
)

// currencyStringToFloat extracts the last float-like run of digits in s
// (the one most likely to be the actual amount in a messy cell such as
// "Rs. 1,234.56") and parses it, returning nil on any failure. An amount
// wrapped in parentheses is the accounting convention for a negative
// value.
func currencyStringToFloat(s string) *float64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	matches := reAmount.FindAllStringIndex(s, -1)
	if len(matches) == 0 {
		return nil
	}
	last := matches[len(matches)-1]
	numStr := strings.ReplaceAll(s[last[0]:last[1]], ",", "")
	v, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return nil
	}
	if v > 0 {
		for _, p := range reParenAmount.FindAllStringIndex(s, -1) {
			if p[0] <= last[0] && last[1] <= p[1] {
				v = -v
				break
			}
		}
	}
	return &v
}
