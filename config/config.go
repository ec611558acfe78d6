// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

// Package config carries the pipeline's runtime configuration, validated
// with a struct-tag-driven pass through go-playground/validator.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	xtract "github.com/sassoftware/statement-ledger/pdfxtract"
)

// PipelineConfig governs one pipeline run: how many pages to read off the
// intake message, which PDF parsing mode to use, the locale fallback for
// ambiguous dates, and where spill/output lands.
type PipelineConfig struct {
	Pages           int                `validate:"min=1,max=10000"`
	Mode            xtract.ParsingMode `validate:"oneof=strict best-effort"`
	CountryOverride string             `validate:"omitempty,len=2"`
	Bucket          string             `validate:"required"`
	SpillPrefix     string             `validate:"required"`
	IsLoggedIn      bool
	JobTTL          time.Duration `validate:"required"`

	// MaxConcurrentJobs bounds how many Pipeline.Run calls may be in
	// flight at once; MaxWorkersPerPDF bounds how many of one PDF's pages
	// are extracted in parallel.
	MaxConcurrentJobs int `validate:"min=1,max=50"`
	MaxWorkersPerPDF  int `validate:"min=1,max=10"`
}

// NewDefaultConfig returns sane defaults for a job message that doesn't
// specify otherwise.
func NewDefaultConfig() *PipelineConfig {
	return &PipelineConfig{
		Pages:             10,
		Mode:              xtract.BestEffort,
		Bucket:            "statement-ledger",
		SpillPrefix:       "pipeline",
		JobTTL:            24 * time.Hour,
		MaxConcurrentJobs: 5,
		MaxWorkersPerPDF:  4,
	}
}

// yamlConfig mirrors PipelineConfig for file decoding. Pointer fields
// distinguish "unset, keep the default" from an explicit zero, and JobTTL
// is a duration string ("24h") rather than raw nanoseconds.
type yamlConfig struct {
	Pages             *int    `yaml:"pages"`
	Mode              *string `yaml:"mode"`
	CountryOverride   *string `yaml:"country_override"`
	Bucket            *string `yaml:"bucket"`
	SpillPrefix       *string `yaml:"spill_prefix"`
	IsLoggedIn        *bool   `yaml:"is_logged_in"`
	JobTTL            *string `yaml:"job_ttl"`
	MaxConcurrentJobs *int    `yaml:"max_concurrent_jobs"`
	MaxWorkersPerPDF  *int    `yaml:"max_workers_per_pdf"`
}

// Load reads a YAML pipeline configuration from path. Fields the file
// leaves unset keep their defaults; the merged result is validated before
// it is returned.
func Load(path string) (*PipelineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var file yamlConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg := NewDefaultConfig()
	if file.Pages != nil {
		cfg.Pages = *file.Pages
	}
	if file.Mode != nil {
		cfg.Mode = xtract.ParsingMode(*file.Mode)
	}
	if file.CountryOverride != nil {
		cfg.CountryOverride = *file.CountryOverride
	}
	if file.Bucket != nil {
		cfg.Bucket = *file.Bucket
	}
	if file.SpillPrefix != nil {
		cfg.SpillPrefix = *file.SpillPrefix
	}
	if file.IsLoggedIn != nil {
		cfg.IsLoggedIn = *file.IsLoggedIn
	}
	if file.JobTTL != nil {
		ttl, err := time.ParseDuration(*file.JobTTL)
		if err != nil {
			return nil, fmt.Errorf("config: parse %s: job_ttl: %w", path, err)
		}
		cfg.JobTTL = ttl
	}
	if file.MaxConcurrentJobs != nil {
		cfg.MaxConcurrentJobs = *file.MaxConcurrentJobs
	}
	if file.MaxWorkersPerPDF != nil {
		cfg.MaxWorkersPerPDF = *file.MaxWorkersPerPDF
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the config against its struct tags.
func (c *PipelineConfig) Validate() error {
	return validator.New().Struct(c)
}
