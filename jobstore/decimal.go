// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package jobstore

import "math/big"

// Decimal is an arbitrary-precision fixed-point number. The wide-column
// backend stores amounts through it because its underlying store only
// carries strings and arbitrary-precision numbers, not Go floats.
type Decimal struct {
	rat *big.Rat
}

// NewDecimal builds a Decimal from a float64 result score.
func NewDecimal(f float64) Decimal {
	r := new(big.Rat)
	r.SetFloat64(f)
	return Decimal{rat: r}
}

// Float64 returns the nearest float64 representation.
func (d Decimal) Float64() float64 {
	if d.rat == nil {
		return 0
	}
	f, _ := d.rat.Float64()
	return f
}

// String renders the decimal in base-10 with exactly 4 fractional digits,
// enough precision for the stored result score.
func (d Decimal) String() string {
	if d.rat == nil {
		return "0"
	}
	return d.rat.FloatString(4)
}

// IsZero reports whether the decimal is unset or exactly zero.
func (d Decimal) IsZero() bool {
	return d.rat == nil || d.rat.Sign() == 0
}
