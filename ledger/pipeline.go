// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

// Package ledger wires the eight geometric table-reconstruction stages
// (header, clean, columns, rows, format) plus the Score stage into one
// sequential pipeline, and is the pipeline's error boundary: it persists
// every stage's output to the object store, classifies failures into
// structured errors, and updates job status.
package ledger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/sassoftware/statement-ledger/config"
	"github.com/sassoftware/statement-ledger/jobstore"
	"github.com/sassoftware/statement-ledger/ledger/clean"
	"github.com/sassoftware/statement-ledger/ledger/columns"
	"github.com/sassoftware/statement-ledger/ledger/format"
	"github.com/sassoftware/statement-ledger/ledger/header"
	"github.com/sassoftware/statement-ledger/ledger/model"
	"github.com/sassoftware/statement-ledger/ledger/rows"
	"github.com/sassoftware/statement-ledger/ledger/score"
	"github.com/sassoftware/statement-ledger/logger"
	"github.com/sassoftware/statement-ledger/metrics"
	"github.com/sassoftware/statement-ledger/objectstore"
	xtract "github.com/sassoftware/statement-ledger/pdfxtract"
	"github.com/sassoftware/statement-ledger/words"
)

// Intake is the job intake message: filename, parsing
// mode, optional job/user id, the PDF's object-store location, and the
// page budget.
type Intake struct {
	Filename  string
	Mode      string // "generic" or "simple"
	JobID     string
	SourceKey string
	UserID    string
	Pages     int
}

// gcEveryPages bounds resident memory on very long statements by
// prompting a collection at a fixed page cadence.
const gcEveryPages = 50

// Pipeline drives one statement end to end.
type Pipeline struct {
	Store   objectstore.Store
	Jobs    jobstore.JobStore
	Metrics metrics.Sink
	Config  *config.PipelineConfig

	// runSlots bounds how many Run calls may execute concurrently,
	// protecting memory on hosts that run many statements at once.
	runSlots *semaphore.Weighted
}

// NewPipeline wires the pipeline's external collaborators: object
// storage, job persistence, and metrics.
func NewPipeline(store objectstore.Store, jobs jobstore.JobStore, sink metrics.Sink, cfg *config.PipelineConfig) *Pipeline {
	if sink == nil {
		sink = metrics.NoopSink{}
	}
	maxJobs := 5
	if cfg != nil && cfg.MaxConcurrentJobs > 0 {
		maxJobs = cfg.MaxConcurrentJobs
	}
	return &Pipeline{
		Store: store, Jobs: jobs, Metrics: sink, Config: cfg,
		runSlots: semaphore.NewWeighted(int64(maxJobs)),
	}
}

// Result is what Run returns on success: the typed transactions plus the
// balance-consistency score and page-count summary.
type Result struct {
	JobID        string
	Transactions []model.Transaction
	Score        score.Result
	TotalPages   int
}

// Run executes the full pipeline for one intake message: extract words,
// discover and canonicalize the header, clean/reconstruct/merge rows per
// page, type and validate transactions, score balance consistency, write
// outputs, and update job status.
func (p *Pipeline) Run(ctx context.Context, in Intake) (Result, error) {
	if p.runSlots != nil {
		if err := p.runSlots.Acquire(ctx, 1); err != nil {
			return Result{}, fmt.Errorf("ledger: acquire run slot: %w", err)
		}
		defer p.runSlots.Release(1)
	}

	jobID := in.JobID
	if jobID == "" {
		jobID = uuid.NewString()
	}

	if p.Jobs != nil {
		if err := p.Jobs.AddJob(ctx, jobstore.Job{
			JobID: jobID, UserID: in.UserID, Filename: in.Filename,
			Mode: in.Mode, SourceKey: in.SourceKey, Pages: p.pagesFor(in),
			Status: jobstore.StatusProcessing,
		}); err != nil {
			return Result{}, fmt.Errorf("ledger: add job: %w", err)
		}
	}

	res, err := p.run(ctx, jobID, in)
	if err != nil {
		p.markFailed(ctx, jobID, err)
		return Result{}, err
	}

	if p.Jobs != nil {
		if err := p.Jobs.UpdateJobStatus(ctx, jobID, jobstore.StatusSuccess, map[string]any{
			"result_score": res.Score.Score / 10.0,
		}); err != nil {
			logger.Error("ledger: failed to mark job success", "job_id", jobID, "err", err)
		}
	}
	return res, nil
}

func (p *Pipeline) pagesFor(in Intake) int {
	if in.Pages > 0 {
		return in.Pages
	}
	if p.Config != nil && p.Config.Pages > 0 {
		return p.Config.Pages
	}
	return 10
}

// markFailed catches a structured error at the pipeline boundary, records
// {failed_stage, error_type, message} on the job, and the caller still
// sees the original error.
func (p *Pipeline) markFailed(ctx context.Context, jobID string, err error) {
	if p.Jobs == nil {
		return
	}
	kind := "UNKNOWN_ERROR"
	stage := "pipeline"
	var le *model.Error
	if errors.As(err, &le) {
		kind = string(le.Kind)
		stage = le.Stage
	}
	updateErr := p.Jobs.UpdateJobStatus(ctx, jobID, jobstore.StatusFailed, map[string]any{
		"failed_stage": stage,
		"error_type":   kind,
		"message":      err.Error(),
	})
	if updateErr != nil {
		logger.Error("ledger: failed to mark job failed", "job_id", jobID, "err", updateErr)
	}
}

func (p *Pipeline) run(ctx context.Context, jobID string, in Intake) (Result, error) {
	in.JobID = jobID
	pages, err := p.extractPages(ctx, in)
	if err != nil {
		return Result{}, err
	}

	headerPages := make([]header.PageWords, len(pages))
	for i, pg := range pages {
		headerPages[i] = header.PageWords{Words: pg.Words, PageWidth: pageWidth(pg)}
	}
	headers, err := header.ExtractHeaders(headerPages)
	if err != nil {
		return Result{}, err
	}
	headers = header.RecognizeHeaders(headers)
	p.spill(ctx, in, "header_extract", []any{headers})

	cleanedPages := make([]model.PageWords, len(pages))
	for i, pg := range pages {
		cleanedPages[i] = clean.CleanPage(i, pg.Words, headers)
	}
	p.spillPages(ctx, in, "clean_data", cleanedPages)

	var prevRanges model.ColumnRange
	columnRanges := make([]model.PageColumnRange, len(pages))
	for i, pg := range pages {
		r := columns.ComputeColumnRange(i, cleanedPages[i].Words, headers, pg.VerticalLines, pg.Height, prevRanges)
		columnRanges[i] = model.PageColumnRange{PageNumber: i, Ranges: r}
		prevRanges = r
	}
	p.spillRanges(ctx, in, "column_range", columnRanges)

	buffer := columns.NewColumnRangeBuffer()
	for _, cr := range columnRanges {
		buffer.Put(cr.PageNumber, cr.Ranges)
	}
	columnGroups := make([]model.PageColumnGroup, len(pages))
	for i := range pages {
		r, ok := buffer.Take(i)
		if !ok {
			logger.Error("ledger: column_range missing for page, assuming empty", "page", i)
			r = model.ColumnRange{}
		}
		columnGroups[i] = model.PageColumnGroup{PageNumber: i, Groups: columns.GroupByColumn(headers.Headers, cleanedPages[i].Words, r)}
	}
	p.spillGroups(ctx, in, "column_groups", columnGroups)

	builtRows := make([]model.PageRows, len(pages))
	for i, pg := range pages {
		builtRows[i] = model.PageRows{PageNumber: i, Rows: rows.BuildRows(i, columnGroups[i].Groups, pg.HorizontalLines)}
		if i > 0 && i%gcEveryPages == 0 {
			runtime.GC()
		}
	}
	p.spillRows(ctx, in, "build_rows", builtRows)

	mergedRows := make([]model.PageRows, len(pages))
	for i, pr := range builtRows {
		mergedRows[i] = model.PageRows{PageNumber: pr.PageNumber, Rows: rows.MergeRows(pr.Rows)}
	}
	p.spillRows(ctx, in, "merge_rows", mergedRows)

	cleaner := format.NewCleaner(p.countryOverride())
	dateFormat := cleaner.DetectDateFormat(mergedRows)
	var txns []model.Transaction
	for _, pr := range mergedRows {
		txns = append(txns, cleaner.FormatPage(pr, dateFormat)...)
	}
	p.spillTxns(ctx, in, "format_clean", txns)

	scoreResult := p.scoreSafely(txns)
	p.spill(ctx, in, "score", []any{scoreResult})

	if err := p.writeOutputs(ctx, in, txns); err != nil {
		logger.Error("ledger: failed to write outputs", "job_id", jobID, "err", err)
	}

	metrics.PutResultScore(p.Metrics, scoreResult.Score*10, timeNow())

	return Result{
		JobID:        jobID,
		Transactions: txns,
		Score:        scoreResult,
		TotalPages:   len(pages),
	}, nil
}

// scoreSafely keeps the Score stage non-fatal: a panic or failure here
// never changes job status, it just degrades to the zero-value result.
// The main result is already persisted by the time scoring runs.
func (p *Pipeline) scoreSafely(txns []model.Transaction) (result score.Result) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("ledger: score stage panicked, returning zero score", "panic", r)
			result = score.Result{Score: 0, Mode: "post"}
		}
	}()
	return score.Score(txns)
}

func (p *Pipeline) countryOverride() string {
	if p.Config != nil {
		return p.Config.CountryOverride
	}
	return ""
}

// pageWithRules bundles one page's words with the rule lines BuildRows
// and ColumnRange need, the shape words.Extract already returns.
type pageWithRules = words.Page

func pageWidth(pg pageWithRules) float64 {
	maxX := 0.0
	for _, w := range pg.Words {
		if w.X1 > maxX {
			maxX = w.X1
		}
	}
	return maxX
}

// extractPages reads the source PDF from the object store under SourceKey
// (a CLI run first stages its local file into its DiskStore) up to the
// configured page budget, converting each page to a words.Page via the
// words adapter.
func (p *Pipeline) extractPages(ctx context.Context, in Intake) (pages []pageWithRules, err error) {
	// The PDF reader panics on structurally broken files it cannot limp
	// past; surface those as corrupted-input errors instead.
	defer func() {
		if rec := recover(); rec != nil {
			pages = nil
			err = model.NewError(model.KindPdfCorrupted, "HeaderExtract", fmt.Sprint(rec), nil)
		}
	}()

	r, err := p.Store.Get(ctx, in.SourceKey)
	if err != nil {
		return nil, model.NewError(model.KindPdfUnreadable, "HeaderExtract", "failed to read source PDF", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, model.NewError(model.KindPdfUnreadable, "HeaderExtract", "failed to buffer source PDF", err)
	}

	reader, err := xtract.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, model.NewError(model.KindPdfCorrupted, "HeaderExtract", "failed to parse PDF structure", err)
	}

	if meta, err := reader.MetadataFull(); err == nil && meta.Encrypted {
		return nil, model.NewError(model.KindPdfLocked, "HeaderExtract", "PDF is password-protected", nil)
	}

	limit := p.pagesFor(in)
	total := reader.NumPage()
	if total > limit {
		total = limit
	}
	if total == 0 {
		return nil, nil
	}

	strict := p.Config != nil && p.Config.Mode == xtract.Strict
	workers := 4
	if p.Config != nil && p.Config.MaxWorkersPerPDF > 0 {
		workers = p.Config.MaxWorkersPerPDF
	}
	return extractPagesConcurrently(ctx, reader, total, workers, strict)
}

func mediaBoxHeight(p xtract.Page) float64 {
	box := p.MediaBox()
	if box.IsNull() || box.Len() < 4 {
		return 792 // US Letter default, points
	}
	y0 := box.Index(1).Float64()
	y1 := box.Index(3).Float64()
	h := y1 - y0
	if h <= 0 {
		return 792
	}
	return h
}

func timeNow() time.Time { return time.Now() }
