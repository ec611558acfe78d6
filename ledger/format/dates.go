// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package format

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
)

const isoDateFormat = "2006-01-02"

// localeVariants maps a date format to the country codes that imply it.
var localeVariants = map[string][]string{
	"US": {"US"},
	"EU": {"EU", "IN"},
}

// parseDateUSFormat parses date assuming month-first ordering.
func parseDateUSFormat(date string) string {
	t, err := dateparse.ParseAny(date, dateparse.PreferMonthFirst(true))
	if err != nil {
		return ""
	}
	return t.Format(isoDateFormat)
}

// parseDateEUFormat parses date assuming day-first ordering.
func parseDateEUFormat(date string) string {
	t, err := dateparse.ParseAny(date, dateparse.PreferMonthFirst(false))
	if err != nil {
		return ""
	}
	return t.Format(isoDateFormat)
}

var reDateHead = regexp.MustCompile(`^\s*(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})\b`)

// inferDayFirst inspects the leading numeric date head and returns
// whether the statement appears to be day-first, or ok=false if the
// first two tokens are both <=12 (ambiguous).
func inferDayFirst(date string) (dayFirst bool, ok bool) {
	m := reDateHead.FindStringSubmatch(date)
	if m == nil {
		return false, false
	}
	a, errA := strconv.Atoi(m[1])
	b, errB := strconv.Atoi(m[2])
	if errA != nil || errB != nil {
		return false, false
	}
	switch {
	case a > 12 && b <= 12:
		return true, true
	case b > 12 && a <= 12:
		return false, true
	default:
		return false, false
	}
}

// smartDateParser infers whether date is day-first or month-first from
// its own leading digits, falling back to defaultLocale when ambiguous.
// It returns the ISO-formatted value and the locale ("US" or "EU") used,
// or the original string and "US" if parsing fails entirely.
func smartDateParser(date, defaultLocale string) (string, string) {
	dayFirst, unambiguous := inferDayFirst(date)
	locale := defaultLocale
	if unambiguous {
		if dayFirst {
			locale = "EU"
		} else {
			locale = "US"
		}
	}
	t, err := dateparse.ParseAny(date, dateparse.PreferMonthFirst(locale != "EU"))
	if err != nil {
		return date, "US"
	}
	return t.Format(isoDateFormat), locale
}

// getDateCountryFormat picks "US" or "EU" for a statement: an explicit
// country override wins outright; otherwise the sample dates are each
// run through smartDateParser and the last non-US verdict wins; with no
// evidence either way, US is the default.
func getDateCountryFormat(sampleDates []string, country string) string {
	for format, aliases := range localeVariants {
		for _, alias := range aliases {
			if strings.EqualFold(alias, country) {
				return format
			}
		}
	}
	detected := ""
	for _, d := range sampleDates {
		_, locale := smartDateParser(d, "US")
		if locale != "US" {
			detected = locale
		}
	}
	if detected == "" {
		return "US"
	}
	return detected
}
