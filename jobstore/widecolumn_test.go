// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package jobstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWideColumnStore_AddAndGetJob(t *testing.T) {
	store := NewWideColumnStore(time.Hour)
	defer store.Stop()

	ctx := context.Background()
	err := store.AddJob(ctx, Job{JobID: "job-1", UserID: "anon", Filename: "statement.pdf"})
	require.NoError(t, err)

	job, err := store.GetJob(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, "job-1", job.JobID)
	assert.Equal(t, StatusPending, job.Status)
}

func TestWideColumnStore_AddJobRequiresID(t *testing.T) {
	store := NewWideColumnStore(time.Hour)
	defer store.Stop()

	err := store.AddJob(context.Background(), Job{})
	assert.Error(t, err)
}

func TestWideColumnStore_UpdateJobStatus(t *testing.T) {
	store := NewWideColumnStore(time.Hour)
	defer store.Stop()

	ctx := context.Background()
	require.NoError(t, store.AddJob(ctx, Job{JobID: "job-2"}))

	err := store.UpdateJobStatus(ctx, "job-2", StatusFailed, map[string]any{
		"failed_stage": "HeaderExtract",
		"error_type":   "headers_not_found",
		"message":      "no header row candidates found",
	})
	require.NoError(t, err)

	job, err := store.GetJob(ctx, "job-2")
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, job.Status)
	assert.Equal(t, "HeaderExtract", job.FailedStage)
	assert.Equal(t, "headers_not_found", job.ErrorType)
}

func TestWideColumnStore_UpdateUnknownJobFails(t *testing.T) {
	store := NewWideColumnStore(time.Hour)
	defer store.Stop()

	err := store.UpdateJobStatus(context.Background(), "missing", StatusFailed, nil)
	assert.Error(t, err)
}

func TestWideColumnStore_GetUserJobs(t *testing.T) {
	store := NewWideColumnStore(time.Hour)
	defer store.Stop()

	ctx := context.Background()
	require.NoError(t, store.AddJob(ctx, Job{JobID: "a", UserID: "u1"}))
	require.NoError(t, store.AddJob(ctx, Job{JobID: "b", UserID: "u1"}))
	require.NoError(t, store.AddJob(ctx, Job{JobID: "c", UserID: "u2"}))

	jobs, err := store.GetUserJobs(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
}

func TestDecimal_RoundTrip(t *testing.T) {
	d := NewDecimal(42.5)
	assert.InDelta(t, 42.5, d.Float64(), 0.0001)
	assert.False(t, d.IsZero())
	assert.True(t, NewDecimal(0).IsZero())
}
