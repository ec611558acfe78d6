// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package objectstore

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DiskStore is a local-filesystem Store rooted under a base directory.
// cmd/ledgerctl uses it for single-file runs with no bucket configured,
// and tests use it in place of GCSStore. Every key is scoped under the
// same base directory the caller supplies, which cmd/ledgerctl sets to a
// job-id-specific subdirectory so concurrent jobs never share temp paths.
type DiskStore struct {
	base string
}

// NewDiskStore returns a Store rooted at base, creating it if necessary.
func NewDiskStore(base string) (*DiskStore, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("objectstore: create base dir: %w", err)
	}
	return &DiskStore{base: base}, nil
}

func (s *DiskStore) path(key string) string {
	return filepath.Join(s.base, filepath.FromSlash(key))
}

func (s *DiskStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(key))
	if err != nil {
		return nil, fmt.Errorf("objectstore: get %s: %w", key, err)
	}
	return f, nil
}

func (s *DiskStore) Put(_ context.Context, key string, r io.Reader) error {
	p := s.path(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("objectstore: create dir for %s: %w", key, err)
	}
	f, err := os.Create(p)
	if err != nil {
		return fmt.Errorf("objectstore: put %s: %w", key, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("objectstore: write %s: %w", key, err)
	}
	return nil
}

func (s *DiskStore) PutJSONL(_ context.Context, key string, records <-chan any) error {
	p := s.path(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("objectstore: create dir for %s: %w", key, err)
	}
	f, err := os.Create(p)
	if err != nil {
		return fmt.Errorf("objectstore: put %s: %w", key, err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	for rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("objectstore: encode %s: %w", key, err)
		}
	}
	return nil
}

func (s *DiskStore) GetJSONL(_ context.Context, key string) (<-chan json.RawMessage, <-chan error) {
	out := make(chan json.RawMessage)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		f, err := os.Open(s.path(key))
		if err != nil {
			errc <- fmt.Errorf("objectstore: get %s: %w", key, err)
			return
		}
		defer f.Close()
		scanner := bufio.NewScanner(f)
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
			errc <- err
		}
	}()
	return out, errc
}
