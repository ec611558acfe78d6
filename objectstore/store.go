// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

// Package objectstore abstracts the object-store backend every pipeline
// stage spills its output to, and that final outputs (csv/json/jsonl/xlsx)
// are written alongside the source PDF. Two backends are provided: a GCS
// implementation for production and a local-disk implementation for tests
// and single-file CLI runs.
package objectstore

import (
	"context"
	"encoding/json"
	"io"
)

// Store is the capability every stage and the final-output writer need:
// byte-stream get/put plus a JSON-Lines convenience pair for the
// per-stage spill records.
type Store interface {
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Put(ctx context.Context, key string, r io.Reader) error
	PutJSONL(ctx context.Context, key string, records <-chan any) error
	GetJSONL(ctx context.Context, key string) (<-chan json.RawMessage, <-chan error)
}

// StageKey builds the spill key for one stage's output:
// <prefix>/<user?>/<job_id>/<stage>.jsonl.
func StageKey(prefix, userID, jobID, stage string) string {
	if userID == "" {
		return prefix + "/" + jobID + "/" + stage + ".jsonl"
	}
	return prefix + "/" + userID + "/" + jobID + "/" + stage + ".jsonl"
}

// OutputKey builds a final-output key: the source PDF key with its
// extension replaced by ext (one of csv, json, xlsx, jsonl).
func OutputKey(sourceKey, ext string) string {
	i := len(sourceKey) - 1
	for i >= 0 && sourceKey[i] != '.' {
		i--
	}
	if i < 0 {
		return sourceKey + "." + ext
	}
	return sourceKey[:i+1] + ext
}
