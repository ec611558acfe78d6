// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrencyStringToFloat(t *testing.T) {
	v := currencyStringToFloat("$1,234.56")
	require.NotNil(t, v)
	assert.InDelta(t, 1234.56, *v, 0.001)
}

func TestCurrencyStringToFloat_EmptyReturnsNil(t *testing.T) {
	assert.Nil(t, currencyStringToFloat("   "))
}

func TestCurrencyStringToFloat_NoDigitsReturnsNil(t *testing.T) {
	assert.Nil(t, currencyStringToFloat("Dr"))
}

func TestCurrencyStringToFloat_PicksLastNumericRun(t *testing.T) {
	v := currencyStringToFloat("Cheque 1023 Amount 540.00")
	require.NotNil(t, v)
	assert.InDelta(t, 540.00, *v, 0.001)
}

func TestCurrencyStringToFloat_ParenthesesMeanNegative(t *testing.T) {
	v := currencyStringToFloat("(1,234.56)")
	require.NotNil(t, v)
	assert.InDelta(t, -1234.56, *v, 0.001)

	v = currencyStringToFloat("($ 25.00)")
	require.NotNil(t, v)
	assert.InDelta(t, -25.00, *v, 0.001)
}
