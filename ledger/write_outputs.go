// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package ledger

import (
	"bytes"
	"context"
	"fmt"

	"github.com/sassoftware/statement-ledger/ledger/model"
	"github.com/sassoftware/statement-ledger/objectstore"
	"github.com/sassoftware/statement-ledger/output"
)

// writeOutputs writes the final transaction stream in all four delivery
// formats, alongside the source PDF key with its extension swapped for
// each.
func (p *Pipeline) writeOutputs(ctx context.Context, in Intake, txns []model.Transaction) error {
	if p.Store == nil {
		return nil
	}
	rows, _ := output.FromTransactions(txns, nil)

	writers := map[string]func(buf *bytes.Buffer) error{
		"csv":   func(buf *bytes.Buffer) error { return output.WriteCSV(buf, rows) },
		"json":  func(buf *bytes.Buffer) error { return output.WriteJSON(buf, rows) },
		"jsonl": func(buf *bytes.Buffer) error { return output.WriteJSONL(buf, rows) },
		"xlsx":  func(buf *bytes.Buffer) error { return output.WriteXLSX(buf, rows) },
	}

	for ext, write := range writers {
		var buf bytes.Buffer
		if err := write(&buf); err != nil {
			return fmt.Errorf("ledger: render %s output: %w", ext, err)
		}
		key := objectstore.OutputKey(in.SourceKey, ext)
		if err := p.Store.Put(ctx, key, &buf); err != nil {
			return fmt.Errorf("ledger: write %s output: %w", ext, err)
		}
	}
	return nil
}
