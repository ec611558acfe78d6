// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

// Package jobstore implements two-backend job persistence:
// a relational-shaped Firestore store for logged-in users and an
// in-process, mutex-guarded wide-column store for anonymous ones. Both
// implement the same JobStore capability interface, selected once at
// construction by a boolean, per the "dynamic dispatch over job backends"
// design note.
package jobstore

import (
	"context"
	"time"
)

// Status is the job lifecycle state.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusSuccess    Status = "success"
	StatusFailed     Status = "failed"
)

// Job is the persisted unit of work: the intake message plus its
// current lifecycle state and result fields.
type Job struct {
	JobID       string
	UserID      string
	Filename    string
	Mode        string
	SourceKey   string
	Pages       int
	Status      Status
	ResultScore Decimal
	FailedStage string
	ErrorType   string
	ErrorMsg    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// JobStore is the capability both backends implement.
type JobStore interface {
	AddJob(ctx context.Context, job Job) error
	GetJob(ctx context.Context, jobID string) (Job, error)
	UpdateJobStatus(ctx context.Context, jobID string, status Status, fields map[string]any) error
	GetUserJobs(ctx context.Context, userID string) ([]Job, error)
}

// New selects the backend: logged-in users get the
// relational (Firestore) backend, anonymous users get the in-process
// wide-column backend. No runtime polymorphism beyond this switch is
// required.
func New(isLoggedIn bool, fs *FirestoreStore, wc *WideColumnStore) JobStore {
	if isLoggedIn {
		return fs
	}
	return wc
}
