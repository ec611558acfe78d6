// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package jobstore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

const jobsCollection = "statementJobs"

// firestoreDoc is the wire shape stored in Firestore; Decimal isn't
// itself Firestore-serializable, so the result score travels as a plain
// float64 and is rehydrated into a Decimal on read.
type firestoreDoc struct {
	JobID       string
	UserID      string
	Filename    string
	Mode        string
	SourceKey   string
	Pages       int
	Status      string
	ResultScore float64
	FailedStage string
	ErrorType   string
	ErrorMsg    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func toDoc(j Job) firestoreDoc {
	return firestoreDoc{
		JobID: j.JobID, UserID: j.UserID, Filename: j.Filename, Mode: j.Mode,
		SourceKey: j.SourceKey, Pages: j.Pages, Status: string(j.Status),
		ResultScore: j.ResultScore.Float64(), FailedStage: j.FailedStage,
		ErrorType: j.ErrorType, ErrorMsg: j.ErrorMsg,
		CreatedAt: j.CreatedAt, UpdatedAt: j.UpdatedAt,
	}
}

func fromDoc(d firestoreDoc) Job {
	return Job{
		JobID: d.JobID, UserID: d.UserID, Filename: d.Filename, Mode: d.Mode,
		SourceKey: d.SourceKey, Pages: d.Pages, Status: Status(d.Status),
		ResultScore: NewDecimal(d.ResultScore), FailedStage: d.FailedStage,
		ErrorType: d.ErrorType, ErrorMsg: d.ErrorMsg,
		CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

// FirestoreStore is the logged-in-user job backend: a thin
// client.Collection(...).Doc(id).Set/Get/Where wrapper.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore wraps an already-constructed Firestore client.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) AddJob(ctx context.Context, job Job) error {
	if job.JobID == "" {
		return fmt.Errorf("jobstore: job id is required")
	}
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt
	if job.Status == "" {
		job.Status = StatusPending
	}
	_, err := s.client.Collection(jobsCollection).Doc(job.JobID).Set(ctx, toDoc(job))
	return err
}

func (s *FirestoreStore) GetJob(ctx context.Context, jobID string) (Job, error) {
	doc, err := s.client.Collection(jobsCollection).Doc(jobID).Get(ctx)
	if err != nil {
		return Job{}, fmt.Errorf("jobstore: get job %s: %w", jobID, err)
	}
	var d firestoreDoc
	if err := doc.DataTo(&d); err != nil {
		return Job{}, fmt.Errorf("jobstore: decode job %s: %w", jobID, err)
	}
	return fromDoc(d), nil
}

func (s *FirestoreStore) UpdateJobStatus(ctx context.Context, jobID string, status Status, fields map[string]any) error {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return err
	}
	job.Status = status
	job.UpdatedAt = time.Now()
	applyFields(&job, fields)
	_, err = s.client.Collection(jobsCollection).Doc(jobID).Set(ctx, toDoc(job))
	return err
}

func (s *FirestoreStore) GetUserJobs(ctx context.Context, userID string) ([]Job, error) {
	iter := s.client.Collection(jobsCollection).Where("UserID", "==", userID).Documents(ctx)
	defer iter.Stop()

	var out []Job
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("jobstore: list jobs for user %s: %w", userID, err)
		}
		var d firestoreDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, fmt.Errorf("jobstore: decode job: %w", err)
		}
		out = append(out, fromDoc(d))
	}
	return out, nil
}
