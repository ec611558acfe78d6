// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xtract "github.com/sassoftware/statement-ledger/pdfxtract"
)

func TestNewDefaultConfig_Validates(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	content := "pages: 25\nmode: strict\nbucket: statements-prod\njob_ttl: 1h\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Pages)
	assert.Equal(t, xtract.Strict, cfg.Mode)
	assert.Equal(t, "statements-prod", cfg.Bucket)
	assert.Equal(t, time.Hour, cfg.JobTTL)
	// untouched fields keep their defaults
	assert.Equal(t, "pipeline", cfg.SpillPrefix)
	assert.Equal(t, 4, cfg.MaxWorkersPerPDF)
}

func TestLoad_RejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: weird\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestPipelineConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *PipelineConfig
		shouldErr bool
	}{
		{
			name: "valid",
			cfg: &PipelineConfig{
				Pages: 10, Mode: xtract.BestEffort, Bucket: "b", SpillPrefix: "p",
				JobTTL: time.Hour, MaxConcurrentJobs: 5, MaxWorkersPerPDF: 4,
			},
			shouldErr: false,
		},
		{
			name: "missing bucket",
			cfg: &PipelineConfig{
				Pages: 10, Mode: xtract.BestEffort, SpillPrefix: "p", JobTTL: time.Hour,
				MaxConcurrentJobs: 5, MaxWorkersPerPDF: 4,
			},
			shouldErr: true,
		},
		{
			name: "bad mode",
			cfg: &PipelineConfig{
				Pages: 10, Mode: "weird", Bucket: "b", SpillPrefix: "p", JobTTL: time.Hour,
				MaxConcurrentJobs: 5, MaxWorkersPerPDF: 4,
			},
			shouldErr: true,
		},
		{
			name: "zero pages",
			cfg: &PipelineConfig{
				Pages: 0, Mode: xtract.BestEffort, Bucket: "b", SpillPrefix: "p", JobTTL: time.Hour,
				MaxConcurrentJobs: 5, MaxWorkersPerPDF: 4,
			},
			shouldErr: true,
		},
		{
			name: "zero max workers",
			cfg: &PipelineConfig{
				Pages: 10, Mode: xtract.BestEffort, Bucket: "b", SpillPrefix: "p", JobTTL: time.Hour,
				MaxConcurrentJobs: 5, MaxWorkersPerPDF: 0,
			},
			shouldErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
