// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSink struct {
	samples []Sample
}

func (c *captureSink) Put(s Sample) error {
	c.samples = append(c.samples, s)
	return nil
}

func TestPutResultScore_EmitsTaggedGauge(t *testing.T) {
	sink := &captureSink{}
	now := time.Unix(0, 0)

	PutResultScore(sink, 87.5, now)

	require.Len(t, sink.samples, 1)
	s := sink.samples[0]
	assert.Equal(t, "ResultScorev2", s.Name)
	assert.Equal(t, 87.5, s.Value)
	assert.Equal(t, UnitPercent, s.Unit)
	assert.Equal(t, "GenericV4", s.Dimensions["Pipeline"])
	assert.Equal(t, now, s.Timestamp)
}

func TestPutResultScore_NilSinkUsesNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		PutResultScore(nil, 100, time.Now())
	})
}

func TestNoopSink(t *testing.T) {
	var s NoopSink
	assert.NoError(t, s.Put(Sample{}))
}
