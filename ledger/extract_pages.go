// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/sassoftware/statement-ledger/ledger/model"
	"github.com/sassoftware/statement-ledger/logger"
	xtract "github.com/sassoftware/statement-ledger/pdfxtract"
	"github.com/sassoftware/statement-ledger/words"
)

// pageExtractionResult is one worker's outcome for a single page, buffered
// by index so pages can be re-ordered after a concurrent worker pool races
// them.
type pageExtractionResult struct {
	index int
	page  words.Page
	err   error
}

// extractPagesConcurrently fans a PDF's pages out across a bounded worker
// pool and re-assembles the geometry-preserving words.Page values strictly
// in page order, so column reconstruction downstream never sees a shuffled
// page sequence. In strict mode one page's extraction error fails the
// whole run; otherwise the failed page is kept as a placeholder in its
// slot.
func extractPagesConcurrently(ctx context.Context, reader *xtract.Reader, total, workers int, strict bool) ([]words.Page, error) {
	if workers < 1 {
		workers = 1
	}
	if workers > total {
		workers = total
	}

	jobs := make(chan int, total)
	results := make(chan pageExtractionResult, total)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := range jobs {
				select {
				case <-ctx.Done():
					results <- pageExtractionResult{index: i, err: ctx.Err()}
					continue
				default:
				}
				pdfPage := reader.Page(i + 1)
				height := mediaBoxHeight(pdfPage)
				wp, err := words.Extract(pdfPage, i, height)
				if err != nil {
					logger.Debug("worker: page extraction error", "worker_id", workerID, "page", i+1, "err", err)
				}
				results <- pageExtractionResult{index: i, page: wp, err: err}
			}
		}(w)
	}

	for i := 0; i < total; i++ {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	buffered := make(map[int]pageExtractionResult, total)
	for res := range results {
		buffered[res.index] = res
	}

	out := make([]words.Page, 0, total)
	for i := 0; i < total; i++ {
		res, ok := buffered[i]
		if !ok {
			continue
		}
		if res.err != nil {
			if strict {
				return nil, model.NewError(model.KindStageInternal, "HeaderExtract",
					fmt.Sprintf("failed to extract page %d", i+1), res.err)
			}
			// Keep the page as an empty placeholder so downstream page
			// numbering stays aligned with the document.
			logger.Debug("best-effort: keeping empty page after extraction error", "page", i+1, "err", res.err)
		}
		out = append(out, res.page)
	}
	return out, nil
}
