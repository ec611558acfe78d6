// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package xtract

// ParsingMode selects how page-level extraction failures are treated:
// Strict aborts the whole document on the first bad page, BestEffort
// keeps the failed page's slot and goes on.
type ParsingMode string

const (
	Strict     ParsingMode = "strict"
	BestEffort ParsingMode = "best-effort"
)
