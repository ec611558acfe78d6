// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package ledger

import (
	"context"

	"github.com/sassoftware/statement-ledger/ledger/model"
	"github.com/sassoftware/statement-ledger/logger"
	"github.com/sassoftware/statement-ledger/objectstore"
)

// spillKey builds the per-stage spill key, rooted under the pipeline's
// configured object-store prefix.
func (p *Pipeline) spillKey(in Intake, jobID, stage string) string {
	prefix := "pipeline"
	if p.Config != nil && p.Config.SpillPrefix != "" {
		prefix = p.Config.SpillPrefix
	}
	return objectstore.StageKey(prefix, in.UserID, jobID, stage)
}

// spill persists a small fixed record set (e.g. the single HeaderExtract
// result) as one-record-per-line JSONL.
func (p *Pipeline) spill(ctx context.Context, in Intake, stage string, records []any) {
	p.spillGeneric(ctx, in, stage, records)
}

func (p *Pipeline) spillGeneric(ctx context.Context, in Intake, stage string, records []any) {
	if p.Store == nil {
		return
	}
	ch := make(chan any, len(records))
	for _, r := range records {
		ch <- r
	}
	close(ch)
	key := p.spillKey(in, in.JobID, stage)
	if err := p.Store.PutJSONL(ctx, key, ch); err != nil {
		logger.Error("ledger: failed to spill stage output", "stage", stage, "err", err)
	}
}

func (p *Pipeline) spillPages(ctx context.Context, in Intake, stage string, pages []model.PageWords) {
	recs := make([]any, len(pages))
	for i, pg := range pages {
		recs[i] = pg
	}
	p.spillGeneric(ctx, in, stage, recs)
}

func (p *Pipeline) spillRanges(ctx context.Context, in Intake, stage string, ranges []model.PageColumnRange) {
	recs := make([]any, len(ranges))
	for i, r := range ranges {
		recs[i] = r
	}
	p.spillGeneric(ctx, in, stage, recs)
}

func (p *Pipeline) spillGroups(ctx context.Context, in Intake, stage string, groups []model.PageColumnGroup) {
	recs := make([]any, len(groups))
	for i, g := range groups {
		recs[i] = g
	}
	p.spillGeneric(ctx, in, stage, recs)
}

func (p *Pipeline) spillRows(ctx context.Context, in Intake, stage string, pageRows []model.PageRows) {
	recs := make([]any, len(pageRows))
	for i, pr := range pageRows {
		recs[i] = pr
	}
	p.spillGeneric(ctx, in, stage, recs)
}

func (p *Pipeline) spillTxns(ctx context.Context, in Intake, stage string, txns []model.Transaction) {
	recs := make([]any, len(txns))
	for i, t := range txns {
		recs[i] = t
	}
	p.spillGeneric(ctx, in, stage, recs)
}
