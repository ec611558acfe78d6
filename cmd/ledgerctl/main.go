// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

// Command ledgerctl drives the statement-ledger pipeline against a local
// PDF or a queued job message, writing results through a job-scoped disk
// store. It is a small flag-driven entrypoint with a no-op logger by
// default.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/sassoftware/statement-ledger/config"
	"github.com/sassoftware/statement-ledger/jobstore"
	"github.com/sassoftware/statement-ledger/ledger"
	"github.com/sassoftware/statement-ledger/logger"
	"github.com/sassoftware/statement-ledger/metrics"
	"github.com/sassoftware/statement-ledger/objectstore"
	xtract "github.com/sassoftware/statement-ledger/pdfxtract"
)

// jobMessage is the on-disk/stdin shape of the job intake message,
// read from -job when set.
type jobMessage struct {
	Filename  string `json:"filename"`
	Mode      string `json:"mode"`
	JobID     string `json:"job_id"`
	SourceKey string `json:"source_key"`
	UserID    string `json:"user_id"`
	Pages     int    `json:"pages"`
}

func main() {
	var (
		pdfPath   = flag.String("pdf", "", "path to a local PDF to parse")
		jobPath   = flag.String("job", "", "path to a job message JSON file (overrides -pdf)")
		cfgPath   = flag.String("config", "", "path to a YAML pipeline config file")
		pagesFlag = flag.Int("pages", 10, "maximum pages to process")
		modeFlag  = flag.String("mode", "best-effort", "PDF parsing mode: strict or best-effort")
		country   = flag.String("country", "", "country override for date-locale detection (e.g. IN, US, EU)")
	)
	flag.Parse()

	logger.SetLogger(func(level logger.LogLevel, msg string, keyvals ...interface{}) {
		// no-op by default; wire a real sink for production runs.
	})

	msg, err := resolveIntake(*jobPath, *pdfPath, *pagesFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ledgerctl:", err)
		os.Exit(1)
	}

	jobID := msg.JobID
	if jobID == "" {
		jobID = uuid.NewString()
	}
	baseDir := filepath.Join(os.TempDir(), "statement-ledger", jobID)
	store, err := objectstore.NewDiskStore(baseDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ledgerctl: create disk store:", err)
		os.Exit(1)
	}

	// A -pdf run names a file outside the store; stage it under a
	// store-relative source key so the pipeline reads it like any other
	// job input.
	if *jobPath == "" {
		src, err := os.Open(msg.SourceKey)
		if err != nil {
			fmt.Fprintln(os.Stderr, "ledgerctl: open pdf:", err)
			os.Exit(1)
		}
		key := "input/" + msg.Filename
		err = store.Put(context.Background(), key, src)
		src.Close()
		if err != nil {
			fmt.Fprintln(os.Stderr, "ledgerctl: stage pdf:", err)
			os.Exit(1)
		}
		msg.SourceKey = key
	}

	cfg := config.NewDefaultConfig()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "ledgerctl:", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	cfg.Pages = msg.Pages
	cfg.CountryOverride = *country
	cfg.Bucket = baseDir
	if *modeFlag == "strict" {
		cfg.Mode = xtract.Strict
	}

	jobs := jobstore.NewWideColumnStore(24 * time.Hour)
	pipeline := ledger.NewPipeline(store, jobs, metrics.NoopSink{}, cfg)

	result, err := pipeline.Run(context.Background(), ledger.Intake{
		Filename: msg.Filename, Mode: msg.Mode, JobID: jobID,
		SourceKey: msg.SourceKey, UserID: msg.UserID, Pages: msg.Pages,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "ledgerctl: pipeline failed:", err)
		os.Exit(1)
	}

	fmt.Printf("job %s: %d transactions across %d pages, score %.2f (mode=%s)\n",
		result.JobID, len(result.Transactions), result.TotalPages, result.Score.Score, result.Score.Mode)
	fmt.Printf("outputs written alongside %s as .csv/.json/.jsonl/.xlsx under %s\n", msg.SourceKey, baseDir)
}

func resolveIntake(jobPath, pdfPath string, pages int) (jobMessage, error) {
	if jobPath != "" {
		f, err := os.Open(jobPath)
		if err != nil {
			return jobMessage{}, fmt.Errorf("open job message: %w", err)
		}
		defer f.Close()
		var msg jobMessage
		if err := json.NewDecoder(f).Decode(&msg); err != nil {
			return jobMessage{}, fmt.Errorf("decode job message: %w", err)
		}
		if msg.Pages == 0 {
			msg.Pages = pages
		}
		if msg.Mode == "" {
			msg.Mode = "generic"
		}
		return msg, nil
	}
	if pdfPath == "" {
		return jobMessage{}, fmt.Errorf("one of -pdf or -job is required")
	}
	abs, err := filepath.Abs(pdfPath)
	if err != nil {
		return jobMessage{}, fmt.Errorf("resolve pdf path: %w", err)
	}
	return jobMessage{
		Filename: filepath.Base(abs), Mode: "generic",
		SourceKey: abs, Pages: pages,
	}, nil
}
