// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package objectstore

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	gcsstorage "cloud.google.com/go/storage"

	"github.com/sassoftware/statement-ledger/logger"
)

// GCSStore implements Store against a single GCS bucket, the production
// backend for pipeline spill and final output writes.
type GCSStore struct {
	bucket *gcsstorage.BucketHandle
}

// NewGCSStore wraps an already-resolved bucket handle, mirroring
// FinanceService.SetStorageClient's bucket-handle-by-value pattern.
func NewGCSStore(bucket *gcsstorage.BucketHandle) *GCSStore {
	return &GCSStore{bucket: bucket}
}

func (s *GCSStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	r, err := s.bucket.Object(key).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("objectstore: get %s: %w", key, err)
	}
	return r, nil
}

func (s *GCSStore) Put(ctx context.Context, key string, r io.Reader) error {
	w := s.bucket.Object(key).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("objectstore: put %s: %w", key, err)
	}
	return w.Close()
}

// PutJSONL drains records onto a single GCS object, one JSON value per
// line, UTF-8, no BOM.
func (s *GCSStore) PutJSONL(ctx context.Context, key string, records <-chan any) error {
	w := s.bucket.Object(key).NewWriter(ctx)
	enc := json.NewEncoder(w)
	for rec := range records {
		if err := enc.Encode(rec); err != nil {
			_ = w.Close()
			return fmt.Errorf("objectstore: encode %s: %w", key, err)
		}
	}
	return w.Close()
}

func (s *GCSStore) GetJSONL(ctx context.Context, key string) (<-chan json.RawMessage, <-chan error) {
	out := make(chan json.RawMessage)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		r, err := s.Get(ctx, key)
		if err != nil {
			errc <- err
			return
		}
		defer r.Close()
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}
			raw := make(json.RawMessage, len(line))
			copy(raw, line)
			out <- raw
		}
		if err := scanner.Err(); err != nil {
			logger.Error("objectstore: scan failed", "key", key, "err", err)
			errc <- err
		}
	}()
	return out, errc
}
