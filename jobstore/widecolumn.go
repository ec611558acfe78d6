// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package jobstore

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// WideColumnStore is the anonymous-user job backend: an in-process,
// mutex-guarded key/value table with background TTL cleanup
// (sync.RWMutex + ticker cleanup over a map). Anonymous jobs are
// short-lived and disposable, so they never touch the relational
// backend.
type WideColumnStore struct {
	mu   sync.RWMutex
	jobs map[string]Job
	ttl  time.Duration
	done chan struct{}
}

// NewWideColumnStore starts a store whose entries expire ttl after
// creation, swept by a background goroutine every 5 minutes.
func NewWideColumnStore(ttl time.Duration) *WideColumnStore {
	s := &WideColumnStore{
		jobs: make(map[string]Job),
		ttl:  ttl,
		done: make(chan struct{}),
	}
	go s.cleanup()
	return s
}

// Stop ends the background cleanup goroutine.
func (s *WideColumnStore) Stop() { close(s.done) }

func (s *WideColumnStore) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			now := time.Now()
			for id, job := range s.jobs {
				if now.Sub(job.CreatedAt) > s.ttl {
					delete(s.jobs, id)
				}
			}
			s.mu.Unlock()
		}
	}
}

func (s *WideColumnStore) AddJob(_ context.Context, job Job) error {
	if job.JobID == "" {
		return fmt.Errorf("jobstore: job id is required")
	}
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt
	if job.Status == "" {
		job.Status = StatusPending
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.JobID] = job
	return nil
}

func (s *WideColumnStore) GetJob(_ context.Context, jobID string) (Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return Job{}, fmt.Errorf("jobstore: job not found: %s", jobID)
	}
	return job, nil
}

func (s *WideColumnStore) UpdateJobStatus(_ context.Context, jobID string, status Status, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return fmt.Errorf("jobstore: job not found: %s", jobID)
	}
	job.Status = status
	job.UpdatedAt = time.Now()
	applyFields(&job, fields)
	s.jobs[jobID] = job
	return nil
}

func (s *WideColumnStore) GetUserJobs(_ context.Context, userID string) ([]Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Job
	for _, job := range s.jobs {
		if job.UserID == userID {
			out = append(out, job)
		}
	}
	return out, nil
}

// applyFields copies the subset of job fields the pipeline boundary and
// the Score stage update: failed_stage/error_type/message on failure,
// result_score on success. Floats are stored as Decimal to honor this
// backend's arbitrary-precision number constraint.
func applyFields(job *Job, fields map[string]any) {
	if v, ok := fields["failed_stage"].(string); ok {
		job.FailedStage = v
	}
	if v, ok := fields["error_type"].(string); ok {
		job.ErrorType = v
	}
	if v, ok := fields["message"].(string); ok {
		job.ErrorMsg = v
	}
	if v, ok := fields["result_score"].(float64); ok {
		job.ResultScore = NewDecimal(v)
	}
}
