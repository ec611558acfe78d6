// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

// Package rows implements BuildRows and MergeRows: the core geometric
// reconstruction of table rows from column-grouped words.
package rows

import (
	"math"
	"sort"

	"github.com/sassoftware/statement-ledger/ledger/model"
)

const (
	minGapSamples    = 10
	defaultTolerance = 3.0
)

// CalculateYMergeTolerance computes the dynamic vertical merge tolerance
// τ_y from the gap distribution between consecutive words (sorted by top).
// No pack library offers the summary-statistics primitives this needs
// (mean/median/stdev/percentile/mode).
func CalculateYMergeTolerance(words []model.Word) float64 {
	if len(words) < 2 {
		return defaultTolerance
	}
	sorted := append([]model.Word(nil), words...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Top < sorted[j].Top })

	var gaps, heights []float64
	for i := 0; i < len(sorted)-1; i++ {
		cur, next := sorted[i], sorted[i+1]
		if h := cur.Bottom - cur.Top; h > 0 {
			heights = append(heights, h)
		}
		if h := next.Bottom - next.Top; h > 0 {
			heights = append(heights, h)
		}
		if gap := next.Top - cur.Bottom; gap > 0 {
			gaps = append(gaps, gap)
		}
	}
	if len(gaps) < minGapSamples {
		return defaultTolerance
	}

	sort.Float64s(gaps)
	mean := meanOf(gaps)
	median := percentile(gaps, 50)
	std := stddev(gaps, mean)
	p25 := percentile(gaps, 25)
	p75 := percentile(gaps, 75)
	iqr := p75 - p25
	modeVal := modeOf(gaps)

	avgLineHeight := 10.0
	if len(heights) > 0 {
		avgLineHeight = meanOf(heights)
	}

	normalizedIQR := iqr / avgLineHeight
	tightlyPacked := normalizedIQR < 0.5 || modeVal < iqr

	if tightlyPacked {
		return 0
	}
	tol := math.Round(median*10) / 10
	tol += std * 0.2
	if tol < 2 {
		tol = 2
	}
	if tol > mean {
		tol = mean
	}
	if tol > 7 {
		tol = 7
	}
	return tol
}

func meanOf(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func stddev(xs []float64, mean float64) float64 {
	sum := 0.0
	for _, x := range xs {
		d := x - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)))
}

// percentile expects xs sorted ascending and uses linear interpolation,
// matching numpy's default percentile behavior.
func percentile(xs []float64, p float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	if len(xs) == 1 {
		return xs[0]
	}
	rank := (p / 100.0) * float64(len(xs)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return xs[lo]
	}
	frac := rank - float64(lo)
	return xs[lo] + (xs[hi]-xs[lo])*frac
}

// modeOf returns the most frequently occurring value; ties break toward
// the smallest value, matching Python's statistics.mode on the first
// encountered maximum when iterating a sorted sequence.
func modeOf(xs []float64) float64 {
	counts := map[float64]int{}
	for _, x := range xs {
		counts[x]++
	}
	best := xs[0]
	bestCount := 0
	for _, x := range xs {
		if counts[x] > bestCount {
			bestCount = counts[x]
			best = x
		}
	}
	return best
}
