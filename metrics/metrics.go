// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

// Package metrics emits the pipeline's single quality gauge,
// ResultScorev2. The sink is a small interface so deployments can plug in
// whatever metrics client they run with.
package metrics

import (
	"time"

	"github.com/sassoftware/statement-ledger/logger"
)

// Unit mirrors CloudWatch's MetricUnit constants, kept narrow to the
// one unit this pipeline ever emits.
type Unit string

const UnitPercent Unit = "Percent"

// Sample is one point the Sink receives.
type Sample struct {
	Name       string
	Value      float64
	Unit       Unit
	Dimensions map[string]string
	Timestamp  time.Time
}

// Sink is the capability a metrics backend must implement. The pipeline
// only ever constructs Samples; it never talks to a transport directly.
type Sink interface {
	Put(s Sample) error
}

// NoopSink discards every sample; used when no metrics backend is
// configured (e.g. cmd/ledgerctl single-file runs).
type NoopSink struct{}

func (NoopSink) Put(Sample) error { return nil }

// resultScoreMetric is the gauge name downstream dashboards key on.
const resultScoreMetric = "ResultScorev2"

// PutResultScore emits the percent-scale result score tagged
// Pipeline=GenericV4 (name, unit, dimension, and the convention of
// stamping "now" at emission time rather than job-completion time).
func PutResultScore(sink Sink, scorePercent float64, now time.Time) {
	if sink == nil {
		sink = NoopSink{}
	}
	err := sink.Put(Sample{
		Name:       resultScoreMetric,
		Value:      scorePercent,
		Unit:       UnitPercent,
		Dimensions: map[string]string{"Pipeline": "GenericV4"},
		Timestamp:  now,
	})
	if err != nil {
		logger.Error("metrics: failed to emit result score", "err", err)
	}
}
